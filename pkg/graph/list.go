package graph

import (
	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// ReadList walks the RDF collection starting at head and returns its items in
// order together with the rdf:first / rdf:rest triples that form it.
// A cell revisited during the walk is reported as ErrRecursiveStructure; a
// cell without exactly one rdf:first and one rdf:rest as ErrUnsupportedShape.
func ReadList(g Graph, head Node) ([]Node, []Triple, error) {
	var (
		items   []Node
		triples []Triple
	)
	seen := make(map[Node]struct{})
	cur := head
	for !cur.Is(rdfNil.Value) {
		if cur.IsLiteral() || cur.IsAny() {
			return nil, nil, errors.Unsupported("list cell %s is not a resource", cur)
		}
		if _, ok := seen[cur]; ok {
			return nil, nil, errors.Recursive(cur.String())
		}
		seen[cur] = struct{}{}

		first, err := single(g, cur, rdfFirst)
		if err != nil {
			return nil, nil, err
		}
		rest, err := single(g, cur, rdfRest)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, first.O)
		triples = append(triples, first, rest)
		cur = rest.O
	}
	return items, triples, nil
}

func single(g Graph, s, p Node) (Triple, error) {
	var found []Triple
	for t := range g.Find(s, p, Any) {
		found = append(found, t)
		if len(found) > 1 {
			break
		}
	}
	switch len(found) {
	case 0:
		return Triple{}, errors.Unsupported("%s has no %s", s, p)
	case 1:
		return found[0], nil
	}
	return Triple{}, errors.Unsupported("%s has several %s", s, p)
}

// Single returns the only (s, p, *) triple, or ErrUnsupportedShape when there
// is none or more than one.
func Single(g Graph, s, p Node) (Triple, error) {
	return single(g, s, p)
}

// WriteList adds an RDF collection holding items and returns its head.
// An empty collection is rdf:nil and writes nothing.
func WriteList(g Graph, items []Node) (Node, error) {
	if len(items) == 0 {
		return rdfNil, nil
	}
	cells := make([]Node, len(items))
	for i := range cells {
		cells[i] = g.NewBlank()
	}
	for i, item := range items {
		next := rdfNil
		if i+1 < len(cells) {
			next = cells[i+1]
		}
		if err := g.Add(NewTriple(cells[i], rdfFirst, item)); err != nil {
			return Node{}, err
		}
		if err := g.Add(NewTriple(cells[i], rdfRest, next)); err != nil {
			return Node{}, err
		}
	}
	return cells[0], nil
}
