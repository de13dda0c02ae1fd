package translate

import (
	"sort"

	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

// TripleSet is the set of triples that justify one axiom.
type TripleSet map[graph.Triple]struct{}

// NewTripleSet returns a set holding ts.
func NewTripleSet(ts ...graph.Triple) TripleSet {
	s := make(TripleSet, len(ts))
	s.Add(ts...)
	return s
}

func (s TripleSet) Add(ts ...graph.Triple) {
	for _, t := range ts {
		s[t] = struct{}{}
	}
}

func (s TripleSet) Has(t graph.Triple) bool {
	_, ok := s[t]
	return ok
}

// Union adds every triple of o to s and returns s.
func (s TripleSet) Union(o TripleSet) TripleSet {
	for t := range o {
		s[t] = struct{}{}
	}
	return s
}

func (s TripleSet) Clone() TripleSet {
	return make(TripleSet, len(s)).Union(s)
}

// Sorted returns the triples ordered by their N-Triples rendering.
func (s TripleSet) Sorted() []graph.Triple {
	out := make([]graph.Triple, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Decoded is an axiom together with the triples it was read from.
type Decoded struct {
	Axiom   *owl.Axiom
	Triples TripleSet
}
