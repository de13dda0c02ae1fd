package translate

import (
	"fmt"
	"strconv"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// writer encodes axioms into a graph. The first failed write is kept and
// every later call becomes a no-op, so encoders check w.err once at the end.
type writer struct {
	g   graph.Graph
	err error
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *writer) add(s, p, o graph.Node) {
	if w.err != nil {
		return
	}
	if err := w.g.Add(graph.NewTriple(s, p, o)); err != nil {
		w.fail(err)
	}
}

func (w *writer) blank() graph.Node {
	if w.err != nil {
		return graph.Blank("unused")
	}
	return w.g.NewBlank()
}

func (w *writer) typed(n graph.Node, typ string) { w.add(n, rdfType, graph.IRI(typ)) }

func (w *writer) list(items []graph.Node) graph.Node {
	if w.err != nil {
		return rdfNil
	}
	head, err := graph.WriteList(w.g, items)
	if err != nil {
		w.fail(err)
		return rdfNil
	}
	return head
}

func (w *writer) nodes(objs []owl.Object) []graph.Node {
	out := make([]graph.Node, len(objs))
	for i, o := range objs {
		out[i] = w.node(o)
	}
	return out
}

// assert writes (s p o) and reifies anns on it.
func (w *writer) assert(s, p, o graph.Node, anns []owl.Annotation) {
	w.add(s, p, o)
	w.reify(graph.NewTriple(s, p, o), vocab.OWLAxiom, anns)
}

func (w *writer) reify(t graph.Triple, typ string, anns []owl.Annotation) {
	if len(anns) == 0 {
		return
	}
	x := w.blank()
	w.typed(x, typ)
	w.add(x, graph.IRI(vocab.OWLAnnotatedSource), t.S)
	w.add(x, graph.IRI(vocab.OWLAnnotatedProperty), t.P)
	w.add(x, graph.IRI(vocab.OWLAnnotatedTarget), t.O)
	w.annotate(x, anns)
}

// annotate writes anns directly on subject. Nested annotations are reified
// with owl:Annotation nodes.
func (w *writer) annotate(subject graph.Node, anns []owl.Annotation) {
	for _, a := range anns {
		p := w.node(a.Property())
		v := w.node(a.Value())
		w.add(subject, p, v)
		w.reify(graph.NewTriple(subject, p, v), vocab.OWLAnnotation, a.Annotations())
	}
}

// node returns the graph node for o, writing the structure of anonymous
// expressions.
func (w *writer) node(o owl.Object) graph.Node {
	switch v := o.(type) {
	case *owl.Entity:
		return graph.IRI(string(v.IRI()))
	case owl.IRI:
		return graph.IRI(string(v))
	case owl.AnonymousIndividual:
		return graph.Blank(v.Label)
	case owl.Literal:
		if v.Lang != "" {
			return graph.LangLiteral(v.Lex, v.Lang)
		}
		return graph.Literal(v.Lex, string(v.Datatype))
	case *owl.Expr:
		return w.expr(v)
	}
	w.fail(fmt.Errorf("%w: cannot encode operand %T", errors.ErrInvalidInput, o))
	return graph.Any
}

var classConstructorPreds = map[owl.ExprKind]string{
	owl.ObjectIntersectionOf: vocab.OWLIntersectionOf,
	owl.ObjectUnionOf:        vocab.OWLUnionOf,
	owl.ObjectOneOf:          vocab.OWLOneOf,
	owl.DataIntersectionOf:   vocab.OWLIntersectionOf,
	owl.DataUnionOf:          vocab.OWLUnionOf,
	owl.DataOneOf:            vocab.OWLOneOf,
}

var restrictionPreds = map[owl.ExprKind]string{
	owl.ObjectSomeValuesFrom: vocab.OWLSomeValuesFrom,
	owl.ObjectAllValuesFrom:  vocab.OWLAllValuesFrom,
	owl.ObjectHasValue:       vocab.OWLHasValue,
	owl.DataSomeValuesFrom:   vocab.OWLSomeValuesFrom,
	owl.DataAllValuesFrom:    vocab.OWLAllValuesFrom,
	owl.DataHasValue:         vocab.OWLHasValue,
}

var cardinalityPreds = map[owl.ExprKind][2]string{
	owl.ObjectMinCardinality:   {vocab.OWLMinCardinality, vocab.OWLMinQualifiedCardinality},
	owl.ObjectMaxCardinality:   {vocab.OWLMaxCardinality, vocab.OWLMaxQualifiedCardinality},
	owl.ObjectExactCardinality: {vocab.OWLCardinality, vocab.OWLQualifiedCardinality},
	owl.DataMinCardinality:     {vocab.OWLMinCardinality, vocab.OWLMinQualifiedCardinality},
	owl.DataMaxCardinality:     {vocab.OWLMaxCardinality, vocab.OWLMaxQualifiedCardinality},
	owl.DataExactCardinality:   {vocab.OWLCardinality, vocab.OWLQualifiedCardinality},
}

var atomTypes = map[owl.ExprKind]string{
	owl.ClassAtom:                vocab.SWRLClassAtom,
	owl.DataRangeAtom:            vocab.SWRLDataRangeAtom,
	owl.ObjectPropertyAtom:       vocab.SWRLIndividualPropertyAtom,
	owl.DataPropertyAtom:         vocab.SWRLDatavaluedPropertyAtom,
	owl.BuiltInAtom:              vocab.SWRLBuiltinAtom,
	owl.SameIndividualAtom:       vocab.SWRLSameIndividualAtom,
	owl.DifferentIndividualsAtom: vocab.SWRLDifferentIndividualsAtom,
}

func (w *writer) expr(e *owl.Expr) graph.Node {
	k := e.Kind()
	args := e.Args()
	switch {
	case k == owl.Variable:
		v := w.node(args[0])
		w.typed(v, vocab.SWRLVariable)
		return v
	case k == owl.Seq, k == owl.Body, k == owl.Head:
		return w.list(w.nodes(args))
	case k == owl.FacetRestriction:
		f := w.blank()
		w.add(f, w.node(args[0]), w.node(args[1]))
		return f
	case k.IsAtom():
		return w.atom(e)
	}

	x := w.blank()
	switch k {
	case owl.ObjectIntersectionOf, owl.ObjectUnionOf, owl.ObjectOneOf:
		w.typed(x, vocab.OWLClass)
		w.add(x, graph.IRI(classConstructorPreds[k]), w.list(w.nodes(args)))
	case owl.ObjectComplementOf:
		w.typed(x, vocab.OWLClass)
		w.add(x, graph.IRI(vocab.OWLComplementOf), w.node(args[0]))
	case owl.ObjectInverseOf:
		w.add(x, graph.IRI(vocab.OWLInverseOf), w.node(args[0]))
	case owl.DataIntersectionOf, owl.DataUnionOf, owl.DataOneOf:
		w.typed(x, vocab.RDFSDatatype)
		w.add(x, graph.IRI(classConstructorPreds[k]), w.list(w.nodes(args)))
	case owl.DataComplementOf:
		w.typed(x, vocab.RDFSDatatype)
		w.add(x, graph.IRI(vocab.OWLDatatypeComplementOf), w.node(args[0]))
	case owl.DatatypeRestriction:
		w.typed(x, vocab.RDFSDatatype)
		w.add(x, graph.IRI(vocab.OWLOnDatatype), w.node(args[0]))
		w.add(x, graph.IRI(vocab.OWLWithRestrictions), w.list(w.nodes(args[1:])))
	case owl.ObjectHasSelf:
		w.typed(x, vocab.OWLRestriction)
		w.add(x, graph.IRI(vocab.OWLOnProperty), w.node(args[0]))
		w.add(x, graph.IRI(vocab.OWLHasSelf), trueLiteral)
	default:
		if pred, ok := restrictionPreds[k]; ok {
			w.typed(x, vocab.OWLRestriction)
			w.add(x, graph.IRI(vocab.OWLOnProperty), w.node(args[0]))
			w.add(x, graph.IRI(pred), w.node(args[1]))
			break
		}
		if preds, ok := cardinalityPreds[k]; ok {
			w.typed(x, vocab.OWLRestriction)
			w.add(x, graph.IRI(vocab.OWLOnProperty), w.node(args[0]))
			n := graph.Literal(strconv.Itoa(e.Cardinality()), cardinalityDT)
			if !e.Qualified() {
				w.add(x, graph.IRI(preds[0]), n)
				break
			}
			w.add(x, graph.IRI(preds[1]), n)
			filler := vocab.OWLOnClass
			if k >= owl.DataMinCardinality {
				filler = vocab.OWLOnDataRange
			}
			w.add(x, graph.IRI(filler), w.node(args[1]))
			break
		}
		w.fail(fmt.Errorf("%w: cannot encode %s", errors.ErrInvalidInput, k))
	}
	return x
}

func (w *writer) atom(e *owl.Expr) graph.Node {
	args := e.Args()
	x := w.blank()
	w.typed(x, atomTypes[e.Kind()])
	switch e.Kind() {
	case owl.ClassAtom:
		w.add(x, graph.IRI(vocab.SWRLClassPredicate), w.node(args[0]))
		w.add(x, graph.IRI(vocab.SWRLArgument1), w.node(args[1]))
	case owl.DataRangeAtom:
		w.add(x, graph.IRI(vocab.SWRLDataRange), w.node(args[0]))
		w.add(x, graph.IRI(vocab.SWRLArgument1), w.node(args[1]))
	case owl.ObjectPropertyAtom, owl.DataPropertyAtom:
		w.add(x, graph.IRI(vocab.SWRLPropertyPredicate), w.node(args[0]))
		w.add(x, graph.IRI(vocab.SWRLArgument1), w.node(args[1]))
		w.add(x, graph.IRI(vocab.SWRLArgument2), w.node(args[2]))
	case owl.SameIndividualAtom, owl.DifferentIndividualsAtom:
		w.add(x, graph.IRI(vocab.SWRLArgument1), w.node(args[0]))
		w.add(x, graph.IRI(vocab.SWRLArgument2), w.node(args[1]))
	case owl.BuiltInAtom:
		w.add(x, graph.IRI(vocab.SWRLBuiltin), w.node(args[0]))
		w.add(x, graph.IRI(vocab.SWRLArguments), w.list(w.nodes(args[1:])))
	}
	return x
}
