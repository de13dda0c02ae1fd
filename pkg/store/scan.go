package store

import (
	"context"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"

	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/store/keys"
)

// scanStrategy represents the index selection strategy for Scan operations.
type scanStrategy struct {
	prefix []byte
	index  byte // SPOPrefix, OPSPrefix, or PSOPrefix
}

// selectScanStrategy determines the best index and prefix for a scan.
//
//   - subject bound -> SPO (prefix S or S|P)
//   - object bound  -> OPS (prefix O or O|P)
//   - predicate only -> PSO (prefix P)
//   - nothing bound -> full SPO scan
func selectScanStrategy(sID, pID, oID uint64) scanStrategy {
	switch {
	case sID != 0:
		return scanStrategy{prefix: keys.EncodePrefix(keys.SPOPrefix, sID, pID), index: keys.SPOPrefix}
	case oID != 0:
		return scanStrategy{prefix: keys.EncodePrefix(keys.OPSPrefix, oID, pID), index: keys.OPSPrefix}
	case pID != 0:
		return scanStrategy{prefix: keys.EncodePrefix(keys.PSOPrefix, pID, 0), index: keys.PSOPrefix}
	}
	return scanStrategy{prefix: []byte{keys.SPOPrefix}, index: keys.SPOPrefix}
}

// resolveScanIDs resolves bound pattern positions to dictionary IDs. A bound
// term missing from the dictionary cannot match anything; ok is then false.
func (g *Graph) resolveScanIDs(s, p, o graph.Node) (ids [3]uint64, ok bool) {
	for i, n := range []graph.Node{s, p, o} {
		if n.IsAny() {
			continue
		}
		id, err := g.dict.GetID(n.String())
		if err != nil {
			return ids, false
		}
		ids[i] = id
	}
	return ids, true
}

// Scan returns an iterator over triples matching the pattern. graph.Any
// positions are wildcards. The iteration runs inside one read transaction,
// so writes made while iterating are not observed.
func (g *Graph) Scan(ctx context.Context, s, p, o graph.Node) iter.Seq2[graph.Triple, error] {
	return func(yield func(graph.Triple, error) bool) {
		ids, ok := g.resolveScanIDs(s, p, o)
		if !ok {
			return
		}
		sID, pID, oID := ids[0], ids[1], ids[2]
		strategy := selectScanStrategy(sID, pID, oID)

		txn := g.db.NewTransaction(false)
		defer txn.Discard()

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // keys only
		opts.Prefix = strategy.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(strategy.prefix); it.ValidForPrefix(strategy.prefix); it.Next() {
			select {
			case <-ctx.Done():
				yield(graph.Triple{}, ctx.Err())
				return
			default:
			}

			fs, fp, fo, ok := keys.DecodeKey(it.Item().Key())
			if !ok {
				continue
			}
			// The prefix covers at most two positions; filter the rest.
			if (sID != 0 && fs != sID) || (pID != 0 && fp != pID) || (oID != 0 && fo != oID) {
				continue
			}

			t, err := g.resolveTriple(fs, fp, fo)
			if err != nil {
				yield(graph.Triple{}, err)
				return
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (g *Graph) resolveTriple(s, p, o uint64) (graph.Triple, error) {
	var nodes [3]graph.Node
	for i, id := range []uint64{s, p, o} {
		str, err := g.dict.GetString(id)
		if err != nil {
			return graph.Triple{}, fmt.Errorf("failed to resolve term ID %d: %w", id, err)
		}
		n, err := graph.ParseNode(str)
		if err != nil {
			return graph.Triple{}, fmt.Errorf("corrupt term ID %d: %w", id, err)
		}
		nodes[i] = n
	}
	return graph.NewTriple(nodes[0], nodes[1], nodes[2]), nil
}
