package graph

import (
	"iter"
)

// Graph is a mutable set of triples with pattern queries and synchronous
// change notification.
//
// Add and Delete call every subscribed listener before returning, once per
// triple that was actually inserted or removed. Find may be called while the
// graph is being modified by the same goroutine; implementations iterate over
// a snapshot or tolerate concurrent edits.
type Graph interface {
	// Find yields every triple matching the pattern. Any matches all terms.
	Find(s, p, o Node) iter.Seq[Triple]
	Contains(t Triple) bool
	Add(t Triple) error
	Delete(t Triple) error
	// Subscribe registers l and returns a function that removes it.
	Subscribe(l Listener) (cancel func())
	// NewBlank returns a blank node whose label is unused in the graph.
	NewBlank() Node
	Len() int
}

// Listener receives change notifications from a Graph.
type Listener interface {
	OnAdd(t Triple)
	OnDelete(t Triple)
}

// ListenerFuncs adapts two functions to the Listener interface. Nil
// functions are ignored.
type ListenerFuncs struct {
	Added   func(Triple)
	Deleted func(Triple)
}

func (l ListenerFuncs) OnAdd(t Triple) {
	if l.Added != nil {
		l.Added(t)
	}
}

func (l ListenerFuncs) OnDelete(t Triple) {
	if l.Deleted != nil {
		l.Deleted(t)
	}
}

// Collect drains a triple sequence into a slice.
func Collect(seq iter.Seq[Triple]) []Triple {
	var out []Triple
	for t := range seq {
		out = append(out, t)
	}
	return out
}

// First returns the first triple of seq.
func First(seq iter.Seq[Triple]) (Triple, bool) {
	for t := range seq {
		return t, true
	}
	return Triple{}, false
}

// Objects returns the objects of all (s, p, *) triples.
func Objects(g Graph, s, p Node) []Node {
	var out []Node
	for t := range g.Find(s, p, Any) {
		out = append(out, t.O)
	}
	return out
}

// Subjects returns the subjects of all (*, p, o) triples.
func Subjects(g Graph, p, o Node) []Node {
	var out []Node
	for t := range g.Find(Any, p, o) {
		out = append(out, t.S)
	}
	return out
}

// HasType reports whether (n rdf:type typ) is in g.
func HasType(g Graph, n Node, typ string) bool {
	return g.Contains(NewTriple(n, rdfType, IRI(typ)))
}

// Local returns the graph-local part of g: the base graph of a union, or g
// itself for plain graphs.
func Local(g Graph) Graph {
	if b, ok := g.(interface{ Base() Graph }); ok {
		return Local(b.Base())
	}
	return g
}
