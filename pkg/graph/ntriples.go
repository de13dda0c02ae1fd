package graph

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// ReadNTriples parses N-Triples from r and adds every statement to g.
// It returns the number of triples read.
func ReadNTriples(r io.Reader, g Graph) (int, error) {
	dec := rdf.NewTripleDecoder(r, rdf.NTriples)
	n := 0
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("failed to decode triple %d: %w", n+1, err)
		}
		t := NewTriple(fromTerm(tr.Subj), fromTerm(tr.Pred), fromTerm(tr.Obj))
		if err := g.Add(t); err != nil {
			return n, fmt.Errorf("failed to add triple %s: %w", t, err)
		}
		n++
	}
	slog.Debug("n-triples loaded", "count", n)
	return n, nil
}

// WriteNTriples serializes every triple of g to w, sorted for stable output.
func WriteNTriples(w io.Writer, g Graph) error {
	triples := Collect(g.Find(Any, Any, Any))
	sort.Slice(triples, func(i, j int) bool {
		return triples[i].String() < triples[j].String()
	})

	enc := rdf.NewTripleEncoder(w, rdf.NTriples)
	for _, t := range triples {
		tr, err := toTriple(t)
		if err != nil {
			return err
		}
		if err := enc.Encode(tr); err != nil {
			return fmt.Errorf("failed to encode %s: %w", t, err)
		}
	}
	return enc.Close()
}

func fromTerm(term rdf.Term) Node {
	switch term.Type() {
	case rdf.TermIRI:
		return IRI(term.String())
	case rdf.TermBlank:
		return Blank(strings.TrimPrefix(term.String(), "_:"))
	case rdf.TermLiteral:
		lit := term.(rdf.Literal)
		if lit.Lang() != "" {
			return LangLiteral(lit.String(), lit.Lang())
		}
		return Literal(lit.String(), lit.DataType.String())
	}
	return Any
}

func toTerm(n Node) (rdf.Term, error) {
	switch n.Kind {
	case KindIRI:
		return rdf.NewIRI(n.Value)
	case KindBlank:
		return rdf.NewBlank(n.Value)
	case KindLiteral:
		if n.Lang != "" {
			return rdf.NewLangLiteral(n.Value, n.Lang)
		}
		dt, err := rdf.NewIRI(n.Datatype)
		if err != nil {
			return nil, err
		}
		if n.Datatype == vocab.XSDString {
			return rdf.NewLiteral(n.Value)
		}
		return rdf.NewTypedLiteral(n.Value, dt), nil
	}
	return nil, fmt.Errorf("cannot serialize wildcard term")
}

func toTriple(t Triple) (rdf.Triple, error) {
	s, err := toTerm(t.S)
	if err != nil {
		return rdf.Triple{}, err
	}
	p, err := toTerm(t.P)
	if err != nil {
		return rdf.Triple{}, err
	}
	o, err := toTerm(t.O)
	if err != nil {
		return rdf.Triple{}, err
	}
	return rdf.Triple{
		Subj: s.(rdf.Subject),
		Pred: p.(rdf.Predicate),
		Obj:  o.(rdf.Object),
	}, nil
}
