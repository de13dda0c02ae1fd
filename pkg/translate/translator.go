package translate

import (
	"fmt"
	"iter"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// Translator reads and writes the axioms of one shape.
type Translator interface {
	Shape() owl.Shape

	// Matches reports whether t can be the head triple of an axiom of this
	// shape. It is a cheap syntactic test; Decode may still decline.
	Matches(t graph.Triple) bool

	// Affects reports whether a change to t can alter how axioms of this
	// shape decode without t being a head triple itself.
	Affects(t graph.Triple) bool

	// RootStatements yields the candidate head triples asserted locally in g.
	// Triples visible only through imports are never roots.
	RootStatements(g graph.Graph) iter.Seq[graph.Triple]

	// Decode reads the axioms rooted at root. It returns nothing when root
	// does not head an axiom of this shape, and more than one axiom only
	// when split axiom annotations are enabled.
	Decode(g graph.Graph, root graph.Triple) ([]Decoded, error)

	// Encode writes ax into g.
	Encode(g graph.Graph, ax *owl.Axiom) error
}

// pattern is a (*, p, o) query over the local graph; Any matches all.
type pattern struct {
	p, o graph.Node
}

func onPredicate(p string) pattern { return pattern{graph.IRI(p), graph.Any} }
func onType(typ string) pattern    { return pattern{rdfType, graph.IRI(typ)} }

var anyTriple = pattern{graph.Any, graph.Any}

// groupPredicates are the structural predicates of axiom nodes that carry
// their annotations directly.
var groupPredicates = map[string]bool{
	vocab.RDFType:              true,
	vocab.OWLMembers:           true,
	vocab.OWLDistinctMembers:   true,
	vocab.OWLSourceIndividual:  true,
	vocab.OWLAssertionProperty: true,
	vocab.OWLTargetIndividual:  true,
	vocab.OWLTargetValue:       true,
	vocab.SWRLBody:             true,
	vocab.SWRLHead:             true,
}

// translator is the table-driven Translator every shape is built from.
type translator struct {
	shape    owl.Shape
	opts     Options
	reg      *Registry
	patterns []pattern
	match    func(t graph.Triple) bool

	// decode returns the operands of the axiom rooted at root, or nil when
	// root does not head an axiom of this shape.
	decode func(rd *reader, root graph.Triple) ([]owl.Object, error)
	encode func(w *writer, ax *owl.Axiom)

	// grouped reports roots whose subject is an axiom node annotated
	// directly rather than through owl:Axiom reification.
	grouped func(root graph.Triple) bool

	affects func(t graph.Triple) bool
}

func (t *translator) Shape() owl.Shape { return t.shape }

func (t *translator) Matches(tr graph.Triple) bool { return t.match(tr) }

func (t *translator) Affects(tr graph.Triple) bool {
	if t.affects != nil {
		return t.affects(tr)
	}
	return defaultAffects(tr)
}

// defaultAffects reports the triples that change nested structure,
// reification or the kind of a resource.
func defaultAffects(t graph.Triple) bool {
	if t.S.IsBlank() || t.O.IsBlank() {
		return true
	}
	switch t.P.Value {
	case vocab.RDFFirst, vocab.RDFRest,
		vocab.OWLAnnotatedSource, vocab.OWLAnnotatedProperty, vocab.OWLAnnotatedTarget:
		return true
	case vocab.RDFType:
		return t.O.IsIRI() && vocab.IsReserved(t.O.Value)
	}
	return false
}

func (t *translator) RootStatements(g graph.Graph) iter.Seq[graph.Triple] {
	local := graph.Local(g)
	return func(yield func(graph.Triple) bool) {
		for _, pat := range t.patterns {
			for tr := range local.Find(graph.Any, pat.p, pat.o) {
				if t.match(tr) && !yield(tr) {
					return
				}
			}
		}
	}
}

func (t *translator) Decode(g graph.Graph, root graph.Triple) ([]Decoded, error) {
	if !t.match(root) {
		return nil, nil
	}
	rd := newReader(g, t.reg.ids, t.opts)
	rd.take(root)
	args, err := t.decode(rd, root)
	if err != nil || args == nil {
		return nil, err
	}

	var groups []annGroup
	if t.grouped != nil && t.grouped(root) {
		anns, err := rd.annotationsOn(root.S, groupPredicates)
		if err != nil {
			return nil, err
		}
		if len(anns) > 0 {
			groups = []annGroup{{anns: anns}}
		}
	} else {
		groups, err = rd.reified(root, vocab.OWLAxiom)
		if err != nil {
			return nil, err
		}
	}

	build := func(anns []owl.Annotation, triples TripleSet) (Decoded, error) {
		ax, err := owl.NewAxiom(t.shape, args, append(anns, rd.folded...)...)
		if err != nil {
			return Decoded{}, errors.Unsupported("%s at %s: %v", t.shape, root, err)
		}
		return Decoded{Axiom: ax, Triples: triples}, nil
	}

	if len(groups) == 0 || !t.opts.SplitAxiomAnnotations {
		var anns []owl.Annotation
		for _, grp := range groups {
			anns = append(anns, grp.anns...)
			rd.triples.Union(grp.triples)
		}
		d, err := build(anns, rd.triples)
		if err != nil {
			return nil, err
		}
		return []Decoded{d}, nil
	}

	out := make([]Decoded, 0, len(groups))
	for _, grp := range groups {
		d, err := build(grp.anns, rd.triples.Clone().Union(grp.triples))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (t *translator) Encode(g graph.Graph, ax *owl.Axiom) error {
	if ax == nil || ax.Shape() != t.shape {
		return fmt.Errorf("%w: %s translator cannot encode %v", errors.ErrInvalidInput, t.shape, ax)
	}
	w := &writer{g: g}
	t.encode(w, ax)
	if w.err != nil {
		return fmt.Errorf("failed to encode %s: %w", ax, w.err)
	}
	return nil
}
