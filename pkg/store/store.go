// Package store persists a triple graph in BadgerDB.
//
// Every triple is written under three 25-byte keys (SPO, OPS, PSO) whose
// components are dictionary IDs of the N-Triples rendering of each term.
// Pattern queries pick the index from the bound positions and run as prefix
// scans.
package store

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/store/dict"
	"github.com/duynguyendang/ontograph/pkg/store/keys"
)

// Graph is a graph.Graph backed by BadgerDB.
type Graph struct {
	db       *badger.DB
	dict     *dict.Encoder
	readOnly bool
	size     atomic.Int64

	// wmu serializes writes so existence checks and index updates stay consistent.
	wmu sync.Mutex

	lmu       sync.Mutex
	listeners map[int]graph.Listener
	nextID    int
}

var _ graph.Graph = (*Graph)(nil)

// Open opens (or creates) the graph described by cfg.
func Open(cfg *Config) (*Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	db, err := badger.Open(buildBadgerOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	enc, err := dict.NewEncoder(db, cfg.LRUCacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create dictionary: %w", err)
	}

	g := &Graph{
		db:        db,
		dict:      enc,
		readOnly:  cfg.ReadOnly,
		listeners: make(map[int]graph.Listener),
	}
	n, err := g.countTriples()
	if err != nil {
		g.Close()
		return nil, err
	}
	g.size.Store(n)

	slog.Info("triple store opened",
		"dataDir", cfg.DataDir,
		"inMemory", cfg.InMemory,
		"readOnly", cfg.ReadOnly,
		"triples", n,
	)
	return g, nil
}

// Close flushes the dictionary and closes the database.
func (g *Graph) Close() error {
	dictErr := g.dict.Close()
	if err := g.db.Close(); err != nil {
		return err
	}
	return dictErr
}

func (g *Graph) countTriples() (int64, error) {
	var n int64
	err := g.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte{keys.SPOPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Find yields the triples matching the pattern.
func (g *Graph) Find(s, p, o graph.Node) iter.Seq[graph.Triple] {
	return func(yield func(graph.Triple) bool) {
		for t, err := range g.Scan(context.Background(), s, p, o) {
			if err != nil {
				slog.Error("triple scan failed", "error", err)
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Contains reports whether t is stored.
func (g *Graph) Contains(t graph.Triple) bool {
	ids, ok := g.lookupIDs(t)
	if !ok {
		return false
	}
	err := g.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(keys.EncodeSPOKey(ids[0], ids[1], ids[2]))
		return err
	})
	return err == nil
}

func (g *Graph) lookupIDs(t graph.Triple) ([3]uint64, bool) {
	var ids [3]uint64
	for i, n := range []graph.Node{t.S, t.P, t.O} {
		id, err := g.dict.GetID(n.String())
		if err != nil {
			return ids, false
		}
		ids[i] = id
	}
	return ids, true
}

// Add stores t under all three indexes and notifies listeners if it was new.
func (g *Graph) Add(t graph.Triple) error {
	if g.readOnly {
		return errors.Denied("add " + t.String())
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}

	g.wmu.Lock()
	added, err := g.write(t, true)
	g.wmu.Unlock()
	if err != nil {
		return err
	}
	if added {
		for _, l := range g.snapshotListeners() {
			l.OnAdd(t)
		}
	}
	return nil
}

// Delete removes t from all three indexes and notifies listeners if it was present.
func (g *Graph) Delete(t graph.Triple) error {
	if g.readOnly {
		return errors.Denied("delete " + t.String())
	}

	g.wmu.Lock()
	removed, err := g.write(t, false)
	g.wmu.Unlock()
	if err != nil {
		return err
	}
	if removed {
		for _, l := range g.snapshotListeners() {
			l.OnDelete(t)
		}
	}
	return nil
}

// write inserts or removes t and reports whether the store changed.
func (g *Graph) write(t graph.Triple, insert bool) (bool, error) {
	var ids [3]uint64
	if insert {
		for i, n := range []graph.Node{t.S, t.P, t.O} {
			id, err := g.dict.GetOrCreateID(n.String())
			if err != nil {
				return false, fmt.Errorf("failed to encode %s: %w", n, err)
			}
			ids[i] = id
		}
	} else {
		var ok bool
		if ids, ok = g.lookupIDs(t); !ok {
			return false, nil
		}
	}

	s, p, o := ids[0], ids[1], ids[2]
	changed := false
	err := g.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(keys.EncodeSPOKey(s, p, o))
		present := err == nil
		if err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if present == insert {
			return nil
		}
		changed = true
		for _, key := range [][]byte{
			keys.EncodeSPOKey(s, p, o),
			keys.EncodeOPSKey(s, p, o),
			keys.EncodePSOKey(s, p, o),
		} {
			if insert {
				err = txn.Set(key, nil)
			} else {
				err = txn.Delete(key)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to write %s: %w", t, err)
	}
	if changed {
		if insert {
			g.size.Add(1)
		} else {
			g.size.Add(-1)
		}
	}
	return changed, nil
}

// Subscribe registers l for change notifications.
func (g *Graph) Subscribe(l graph.Listener) func() {
	g.lmu.Lock()
	defer g.lmu.Unlock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = l
	return func() {
		g.lmu.Lock()
		defer g.lmu.Unlock()
		delete(g.listeners, id)
	}
}

func (g *Graph) snapshotListeners() []graph.Listener {
	g.lmu.Lock()
	defer g.lmu.Unlock()
	out := make([]graph.Listener, 0, len(g.listeners))
	for id := 0; id < g.nextID; id++ {
		if l, ok := g.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// NewBlank returns a blank node labelled with a random UUID.
func (g *Graph) NewBlank() graph.Node {
	return graph.Blank("b" + uuid.NewString())
}

// Len returns the number of stored triples.
func (g *Graph) Len() int {
	return int(g.size.Load())
}
