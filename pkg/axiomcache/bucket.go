package axiomcache

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// Bucket caches the axioms of one shape together with the triples each one
// was decoded from or written as. It is filled lazily from the graph on
// first access and dropped whenever an edit cannot be attributed.
type Bucket struct {
	c      *Controller
	tr     translate.Translator
	index  objectIndex
	loaded atomic.Bool
	group  *singleflight.Group
}

func newBucket(c *Controller, tr translate.Translator) *Bucket {
	b := &Bucket{c: c, tr: tr, index: newIndex(c.opts)}
	if c.opts.Concurrent {
		b.group = new(singleflight.Group)
	}
	return b
}

// Shape returns the shape of the cached axioms.
func (b *Bucket) Shape() owl.Shape { return b.tr.Shape() }

// IsLoaded reports whether the bucket currently mirrors the graph.
func (b *Bucket) IsLoaded() bool { return b.loaded.Load() }

// Len returns the number of cached axioms; zero until the bucket is loaded.
func (b *Bucket) Len() int { return b.index.len() }

func (b *Bucket) load() error {
	if b.loaded.Load() {
		return nil
	}
	if b.group == nil {
		return b.read()
	}
	_, err, _ := b.group.Do("load", func() (any, error) {
		if b.loaded.Load() {
			return nil, nil
		}
		return nil, b.read()
	})
	return err
}

func (b *Bucket) read() error {
	ds, err := b.c.reg.Load(b.c.g, b.Shape())
	if err != nil {
		return err
	}
	b.index.reset()
	for _, d := range ds {
		b.index.put(d.Axiom, d.Triples)
	}
	b.loaded.Store(true)
	b.c.metrics.load(b.Shape().String())
	slog.Debug("bucket loaded", "shape", b.Shape(), "axioms", len(ds))
	return nil
}

func (b *Bucket) check(ax *owl.Axiom) error {
	if ax == nil {
		return fmt.Errorf("%w: nil axiom", errors.ErrInvalidInput)
	}
	if ax.Shape() != b.Shape() {
		return fmt.Errorf("%w: %s does not belong to the %s bucket", errors.ErrInvalidInput, ax, b.Shape())
	}
	return nil
}

// Contains reports whether ax is asserted in the graph. An axiom the graph
// stores in another form, such as an n-ary equivalence written as pairs, is
// asserted when every form it reads back as is cached.
func (b *Bucket) Contains(ax *owl.Axiom) (bool, error) {
	if err := b.check(ax); err != nil {
		return false, err
	}
	if err := b.load(); err != nil {
		return false, err
	}
	keys, err := b.resolve(ax)
	return len(keys) > 0, err
}

// Objects returns the cached axioms in the form they read back from the
// graph.
func (b *Bucket) Objects() ([]*owl.Axiom, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	return b.index.axioms(), nil
}

// TriplesOf returns a copy of the triples that make up ax.
func (b *Bucket) TriplesOf(ax *owl.Axiom) (translate.TripleSet, error) {
	if err := b.check(ax); err != nil {
		return nil, err
	}
	if err := b.load(); err != nil {
		return nil, err
	}
	keys, err := b.resolve(ax)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrNotFound, ax)
	}
	out := translate.NewTripleSet()
	for _, k := range keys {
		e, _ := b.index.lookup(k)
		out.Union(e.triples)
	}
	return out, nil
}

// resolve returns the cache keys ax stands for: its own key when cached,
// otherwise the keys of its read-back forms if all of them are cached.
func (b *Bucket) resolve(ax *owl.Axiom) ([]string, error) {
	if b.index.has(ax.Key()) {
		return []string{ax.Key()}, nil
	}
	forms, err := b.readBack(ax)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(forms))
	for _, d := range forms {
		if d.Axiom.Key() == ax.Key() || !b.index.has(d.Axiom.Key()) {
			return nil, nil
		}
		keys = append(keys, d.Axiom.Key())
	}
	return keys, nil
}

// readBack encodes ax into a scratch graph layered over the live one and
// decodes the head triples it wrote. A form that also draws on live triples,
// such as annotations another axiom reified on the same head, is not one ax
// reads back as, so readBack returns nil. The live graph is not modified.
func (b *Bucket) readBack(ax *owl.Axiom) ([]translate.Decoded, error) {
	scratch := graph.NewMem()
	view := graph.NewUnion(scratch, b.c.g)
	if err := b.tr.Encode(view, ax); err != nil {
		return nil, err
	}
	forms, err := b.decodeRoots(view, graph.Collect(scratch.Find(graph.Any, graph.Any, graph.Any)))
	if err != nil {
		return nil, err
	}
	for _, d := range forms {
		for t := range d.Triples {
			if !scratch.Contains(t) {
				return nil, nil
			}
		}
	}
	return forms, nil
}

// decodeRoots decodes every head triple among ts against g, merging
// decodings of the same axiom.
func (b *Bucket) decodeRoots(g graph.Graph, ts []graph.Triple) ([]translate.Decoded, error) {
	var (
		out   []translate.Decoded
		index = make(map[string]int)
	)
	seen := translate.NewTripleSet()
	for _, t := range ts {
		if seen.Has(t) || !b.tr.Matches(t) {
			continue
		}
		seen.Add(t)
		ds, err := b.tr.Decode(g, t)
		if err != nil {
			return nil, err
		}
		for _, d := range ds {
			if i, ok := index[d.Axiom.Key()]; ok {
				out[i].Triples.Union(d.Triples)
				continue
			}
			index[d.Axiom.Key()] = len(out)
			out = append(out, d)
		}
	}
	return out, nil
}

// Add writes ax into the graph and caches what the written head triples
// decode to, so the bucket holds the same axioms a reload would. For most
// axioms that is ax itself with exactly the triples its encoding asserted;
// an n-ary equivalence written as pairs is cached as those pairs.
//
// A failed encoding may leave some triples in the graph. The bucket is
// dropped so the next read reflects whatever was written.
func (b *Bucket) Add(ax *owl.Axiom) error {
	if err := b.check(ax); err != nil {
		return err
	}
	if err := b.load(); err != nil {
		return err
	}
	cs, err := b.c.write(b, func(g graph.Graph) error {
		return b.tr.Encode(g, ax)
	})
	if err != nil {
		b.drop("encode failed")
		return err
	}
	ds, err := b.decodeRoots(b.c.g, cs.Added)
	if err != nil {
		b.drop("decode failed")
		return err
	}
	if len(ds) == 0 {
		slog.Debug("added axiom does not read back", "shape", b.Shape(), "axiom", ax)
	}
	for _, d := range ds {
		b.index.put(d.Axiom, d.Triples)
	}
	b.c.metrics.add(b.Shape().String())
	return nil
}

// Remove detaches ax and deletes every one of its triples that no other
// cached axiom of any shape still owns. Removing an axiom that is not
// asserted does nothing.
func (b *Bucket) Remove(ax *owl.Axiom) error {
	if err := b.check(ax); err != nil {
		return err
	}
	if err := b.load(); err != nil {
		return err
	}
	keys, err := b.resolve(ax)
	if err != nil || len(keys) == 0 {
		return err
	}

	var detached []entry
	for _, k := range keys {
		if e, ok := b.index.remove(k); ok {
			detached = append(detached, e)
		}
	}
	owned := translate.NewTripleSet()
	for _, e := range detached {
		owned.Union(e.triples)
	}

	var doomed []graph.Triple
	for _, t := range owned.Sorted() {
		free, err := b.c.CanDelete(t)
		if err != nil {
			for _, e := range detached {
				b.index.put(e.axiom, e.triples)
			}
			return err
		}
		if !free {
			b.c.metrics.deny()
			continue
		}
		doomed = append(doomed, t)
	}

	_, err = b.c.write(b, func(g graph.Graph) error {
		for _, t := range doomed {
			if err := g.Delete(t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		b.drop("delete failed")
		return err
	}
	b.c.metrics.remove(b.Shape().String())
	return nil
}

// Invalidate drops the bucket if t can take part in any of its axioms.
func (b *Bucket) Invalidate(t graph.Triple) {
	if !b.IsLoaded() {
		return
	}
	if b.index.owned(t) || b.tr.Matches(t) || b.tr.Affects(t) {
		b.drop("invalidated")
	}
}

// Clear empties the bucket; it is reloaded on next access.
func (b *Bucket) Clear() {
	b.loaded.Store(false)
	b.index.reset()
}

func (b *Bucket) drop(reason string) {
	b.Clear()
	b.c.metrics.invalidate(b.Shape().String())
	slog.Debug("bucket dropped", "shape", b.Shape(), "reason", reason)
}

// added handles a triple asserted outside the cache. Head triples over
// named resources are decoded in place; anything that may change nested
// structure drops the bucket.
func (b *Bucket) added(t graph.Triple) {
	if b.tr.Affects(t) {
		b.drop("structural triple added")
		return
	}
	if !b.tr.Matches(t) {
		return
	}
	ds, err := b.tr.Decode(b.c.g, t)
	if err != nil {
		b.drop("decode failed")
		return
	}
	for _, d := range ds {
		b.index.put(d.Axiom, d.Triples)
	}
}

// deleted handles a triple retracted outside the cache. Owners of t are
// removed and, for shapes with a single encoding, re-read from their
// remaining head triples so that losing an annotation keeps the axiom.
func (b *Bucket) deleted(t graph.Triple) {
	owners := b.index.owners(t)
	if len(owners) == 0 {
		if b.tr.Affects(t) {
			b.drop("structural triple deleted")
		}
		return
	}
	if !b.Shape().Distinct() {
		b.drop("owned triple deleted")
		return
	}

	roots := translate.NewTripleSet()
	for _, ax := range owners {
		e, _ := b.index.remove(ax.Key())
		for r := range e.triples {
			if r != t && b.tr.Matches(r) && b.c.g.Contains(r) {
				roots.Add(r)
			}
		}
	}
	for _, r := range roots.Sorted() {
		ds, err := b.tr.Decode(b.c.g, r)
		if err != nil {
			b.drop("decode failed")
			return
		}
		for _, d := range ds {
			b.index.put(d.Axiom, d.Triples)
		}
	}
}
