package axiomcache

import (
	"slices"
	"sort"
	"sync"

	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// entry is one cached axiom and the triples that justify it.
type entry struct {
	axiom   *owl.Axiom
	triples translate.TripleSet
}

// objectIndex maps axiom keys to entries and triples back to the keys of
// the axioms that own them.
type objectIndex interface {
	has(key string) bool
	// lookup returns a copy of the entry for key.
	lookup(key string) (entry, bool)
	// put merges triples into the entry for ax, creating it if needed.
	put(ax *owl.Axiom, triples translate.TripleSet)
	remove(key string) (entry, bool)
	// owners returns the axioms that own t, in key order.
	owners(t graph.Triple) []*owl.Axiom
	owned(t graph.Triple) bool
	// axioms returns the cached axioms in insertion order when the index
	// keeps one, otherwise in key order.
	axioms() []*owl.Axiom
	len() int
	reset()
}

func newIndex(opts Options) objectIndex {
	p := newPlainIndex(opts.KeepOrder)
	if opts.Concurrent {
		return &syncIndex{p: p}
	}
	return p
}

// plainIndex assumes serialized access.
type plainIndex struct {
	keepOrder bool
	byKey     map[string]*entry
	byTriple  map[graph.Triple]map[string]struct{}
	order     []string
}

func newPlainIndex(keepOrder bool) *plainIndex {
	return &plainIndex{
		keepOrder: keepOrder,
		byKey:     make(map[string]*entry),
		byTriple:  make(map[graph.Triple]map[string]struct{}),
	}
}

func (x *plainIndex) has(key string) bool {
	_, ok := x.byKey[key]
	return ok
}

func (x *plainIndex) lookup(key string) (entry, bool) {
	e, ok := x.byKey[key]
	if !ok {
		return entry{}, false
	}
	return entry{axiom: e.axiom, triples: e.triples.Clone()}, true
}

func (x *plainIndex) put(ax *owl.Axiom, triples translate.TripleSet) {
	key := ax.Key()
	e, ok := x.byKey[key]
	if !ok {
		e = &entry{axiom: ax, triples: translate.NewTripleSet()}
		x.byKey[key] = e
		if x.keepOrder {
			x.order = append(x.order, key)
		}
	}
	for t := range triples {
		e.triples.Add(t)
		keys, ok := x.byTriple[t]
		if !ok {
			keys = make(map[string]struct{}, 1)
			x.byTriple[t] = keys
		}
		keys[key] = struct{}{}
	}
}

func (x *plainIndex) remove(key string) (entry, bool) {
	e, ok := x.byKey[key]
	if !ok {
		return entry{}, false
	}
	delete(x.byKey, key)
	for t := range e.triples {
		keys := x.byTriple[t]
		delete(keys, key)
		if len(keys) == 0 {
			delete(x.byTriple, t)
		}
	}
	if x.keepOrder {
		if i := slices.Index(x.order, key); i >= 0 {
			x.order = slices.Delete(x.order, i, i+1)
		}
	}
	return *e, true
}

func (x *plainIndex) owners(t graph.Triple) []*owl.Axiom {
	keys := x.byTriple[t]
	if len(keys) == 0 {
		return nil
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	out := make([]*owl.Axiom, len(sorted))
	for i, k := range sorted {
		out[i] = x.byKey[k].axiom
	}
	return out
}

func (x *plainIndex) owned(t graph.Triple) bool {
	return len(x.byTriple[t]) > 0
}

func (x *plainIndex) axioms() []*owl.Axiom {
	keys := x.order
	if !x.keepOrder {
		keys = make([]string, 0, len(x.byKey))
		for k := range x.byKey {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	out := make([]*owl.Axiom, len(keys))
	for i, k := range keys {
		out[i] = x.byKey[k].axiom
	}
	return out
}

func (x *plainIndex) len() int { return len(x.byKey) }

func (x *plainIndex) reset() {
	clear(x.byKey)
	clear(x.byTriple)
	x.order = nil
}

// syncIndex guards a plainIndex for parallel readers.
type syncIndex struct {
	mu sync.RWMutex
	p  *plainIndex
}

func (x *syncIndex) has(key string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.has(key)
}

func (x *syncIndex) lookup(key string) (entry, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.lookup(key)
}

func (x *syncIndex) put(ax *owl.Axiom, triples translate.TripleSet) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.p.put(ax, triples)
}

func (x *syncIndex) remove(key string) (entry, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.p.remove(key)
}

func (x *syncIndex) owners(t graph.Triple) []*owl.Axiom {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.owners(t)
}

func (x *syncIndex) owned(t graph.Triple) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.owned(t)
}

func (x *syncIndex) axioms() []*owl.Axiom {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.axioms()
}

func (x *syncIndex) len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.p.len()
}

func (x *syncIndex) reset() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.p.reset()
}
