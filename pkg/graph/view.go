package graph

import (
	"strings"

	"github.com/duynguyendang/ontograph/pkg/vocab"
)

var (
	rdfType  = IRI(vocab.RDFType)
	rdfFirst = IRI(vocab.RDFFirst)
	rdfRest  = IRI(vocab.RDFRest)
	rdfNil   = IRI(vocab.RDFNil)
)

// View is a set of resource kinds a node can be narrowed to. A node may
// support several views at once: punning lets one IRI be both a class and an
// individual, or both an object and an annotation property.
type View uint32

const (
	ViewClass View = 1 << iota
	ViewDatatype
	ViewObjectProperty
	ViewDataProperty
	ViewAnnotationProperty
	ViewNamedIndividual
	ViewAnonymousIndividual
	ViewClassExpression
	ViewDataRange
	ViewObjectInverse
	ViewList
	ViewDisjointGroup
	ViewNegativeAssertion
	ViewRule
	ViewRuleAtom
	ViewRuleVariable
	ViewAxiomAnnotation
)

var viewNames = []string{
	"Class", "Datatype", "ObjectProperty", "DataProperty", "AnnotationProperty",
	"NamedIndividual", "AnonymousIndividual", "ClassExpression", "DataRange",
	"ObjectInverse", "List", "DisjointGroup", "NegativeAssertion", "Rule",
	"RuleAtom", "RuleVariable", "AxiomAnnotation",
}

// Has reports whether every view in x is in v.
func (v View) Has(x View) bool { return x != 0 && v&x == x }

// Any reports whether v shares at least one view with x.
func (v View) Any(x View) bool { return v&x != 0 }

func (v View) String() string {
	if v == 0 {
		return "None"
	}
	var parts []string
	for i, name := range viewNames {
		if v&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// Views grouped for convenience.
const (
	ViewEntity     = ViewClass | ViewDatatype | ViewObjectProperty | ViewDataProperty | ViewAnnotationProperty | ViewNamedIndividual
	ViewIndividual = ViewNamedIndividual | ViewAnonymousIndividual
	ViewAnyClass   = ViewClass | ViewClassExpression
	ViewAnyRange   = ViewDatatype | ViewDataRange
)

var objectPropertyTypes = map[string]bool{
	vocab.OWLObjectProperty:            true,
	vocab.OWLInverseFunctionalProperty: true,
	vocab.OWLReflexiveProperty:         true,
	vocab.OWLIrreflexiveProperty:       true,
	vocab.OWLSymmetricProperty:         true,
	vocab.OWLAsymmetricProperty:        true,
	vocab.OWLTransitiveProperty:        true,
}

var atomTypes = map[string]bool{
	vocab.SWRLClassAtom:                true,
	vocab.SWRLDataRangeAtom:            true,
	vocab.SWRLIndividualPropertyAtom:   true,
	vocab.SWRLDatavaluedPropertyAtom:   true,
	vocab.SWRLBuiltinAtom:              true,
	vocab.SWRLSameIndividualAtom:       true,
	vocab.SWRLDifferentIndividualsAtom: true,
}

// ViewOf computes every view n supports in g by inspecting its type triples,
// the built-in vocabulary and, for blank nodes, its structural predicates.
func ViewOf(g Graph, n Node) View {
	switch n.Kind {
	case KindIRI:
		return iriViews(g, n)
	case KindBlank:
		return blankViews(g, n)
	}
	return 0
}

// TryView reports whether n can be narrowed to every view in v.
func TryView(g Graph, n Node, v View) bool {
	return ViewOf(g, n).Has(v)
}

func iriViews(g Graph, n Node) View {
	var v View
	iri := n.Value
	switch {
	case vocab.IsBuiltinClass(iri):
		v |= ViewClass
	case vocab.IsBuiltinDatatype(iri):
		v |= ViewDatatype
	case vocab.IsBuiltinObjectProperty(iri):
		v |= ViewObjectProperty
	case vocab.IsBuiltinDataProperty(iri):
		v |= ViewDataProperty
	case vocab.IsBuiltinAnnotationProperty(iri):
		v |= ViewAnnotationProperty
	case iri == vocab.RDFNil:
		v |= ViewList
	}
	if vocab.IsReserved(iri) {
		return v
	}

	for t := range g.Find(n, rdfType, Any) {
		if !t.O.IsIRI() {
			v |= ViewNamedIndividual
			continue
		}
		typ := t.O.Value
		switch {
		case typ == vocab.OWLClass || typ == vocab.RDFSClass:
			v |= ViewClass
		case typ == vocab.RDFSDatatype:
			v |= ViewDatatype
		case objectPropertyTypes[typ]:
			v |= ViewObjectProperty
		case typ == vocab.OWLDatatypeProperty:
			v |= ViewDataProperty
		case typ == vocab.OWLAnnotationProperty:
			v |= ViewAnnotationProperty
		case typ == vocab.OWLNamedIndividual:
			v |= ViewNamedIndividual
		case typ == vocab.SWRLVariable:
			v |= ViewRuleVariable
		case !vocab.IsReserved(typ) || vocab.IsBuiltinClass(typ):
			// Typed by a user class: a class assertion makes n an individual.
			v |= ViewNamedIndividual
		}
	}
	return v
}

func blankViews(g Graph, n Node) View {
	var v View
	typed := false
	for t := range g.Find(n, rdfType, Any) {
		typed = true
		if !t.O.IsIRI() {
			v |= ViewAnonymousIndividual
			continue
		}
		typ := t.O.Value
		switch {
		case typ == vocab.OWLClass || typ == vocab.OWLRestriction:
			v |= ViewClassExpression
		case typ == vocab.RDFSDatatype:
			v |= ViewDataRange
		case typ == vocab.OWLAllDisjointClasses, typ == vocab.OWLAllDisjointProperties, typ == vocab.OWLAllDifferent:
			v |= ViewDisjointGroup
		case typ == vocab.OWLNegativePropertyAssertion:
			v |= ViewNegativeAssertion
		case typ == vocab.SWRLImp:
			v |= ViewRule
		case atomTypes[typ]:
			v |= ViewRuleAtom
		case typ == vocab.OWLAxiom || typ == vocab.OWLAnnotation:
			v |= ViewAxiomAnnotation
		case typ == vocab.RDFList || typ == vocab.SWRLAtomList:
			v |= ViewList
		case !vocab.IsReserved(typ) || vocab.IsBuiltinClass(typ):
			v |= ViewAnonymousIndividual
		}
	}
	if _, ok := First(g.Find(n, rdfFirst, Any)); ok {
		v |= ViewList
	}
	if _, ok := First(g.Find(n, IRI(vocab.OWLInverseOf), Any)); ok {
		v |= ViewObjectInverse
		v &^= ViewAnonymousIndividual
	}
	if v == 0 && !typed {
		// An untyped, structure-free blank node can only be an anonymous individual.
		v = ViewAnonymousIndividual
	}
	return v
}
