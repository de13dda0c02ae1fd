// Package translatetest holds axioms shared by the translator and cache
// tests. Each one must decode back from its own encoding as exactly one axiom
// with the same key.
package translatetest

import (
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

const ex = "http://example.org/"

// Case is an axiom together with the entities that must be declared before
// it is encoded.
type Case struct {
	Name string
	Decl []*owl.Entity
	Ax   *owl.Axiom
}

func entity(k owl.EntityKind, name string) *owl.Entity { return owl.NewEntity(k, owl.IRI(ex+name)) }
func class(name string) *owl.Entity                    { return entity(owl.Class, name) }
func oprop(name string) *owl.Entity                    { return entity(owl.ObjectProperty, name) }
func dprop(name string) *owl.Entity                    { return entity(owl.DataProperty, name) }
func aprop(name string) *owl.Entity                    { return entity(owl.AnnotationProperty, name) }
func ind(name string) *owl.Entity                      { return entity(owl.NamedIndividual, name) }

func xsd(iri string) *owl.Entity { return owl.NewEntity(owl.Datatype, owl.IRI(iri)) }

var (
	label   = owl.NewEntity(owl.AnnotationProperty, owl.IRI(vocab.RDFSLabel))
	comment = owl.NewEntity(owl.AnnotationProperty, owl.IRI(vocab.RDFSComment))
)

func lit(s string) owl.Literal { return owl.NewLiteral(s, "") }
func intLit(s string) owl.Literal {
	return owl.NewLiteral(s, owl.IRI(vocab.XSDInteger))
}

func card(k owl.ExprKind, n int, args ...owl.Object) *owl.Expr {
	e, err := owl.NewCardinality(k, n, args...)
	if err != nil {
		panic(err)
	}
	return e
}

func facet(f string, v owl.Literal) *owl.Expr {
	e, err := owl.Facet(owl.IRI(f), v)
	if err != nil {
		panic(err)
	}
	return e
}

func seq(args ...owl.Object) *owl.Expr { return owl.MustExpr(owl.Seq, args...) }

// RoundTrips returns one or more axioms of every shape.
func RoundTrips() []Case {
	x := owl.MustExpr(owl.Variable, owl.IRI(ex+"x"))
	y := owl.MustExpr(owl.Variable, owl.IRI(ex+"y"))
	note := owl.MustAnnotation(label, lit("note"), owl.MustAnnotation(comment, lit("nested")))

	return []Case{
		{Name: "declaration", Ax: owl.MustAxiom(owl.Declaration, []owl.Object{class("A")})},
		{Name: "annotated declaration", Ax: owl.MustAxiom(owl.Declaration, []owl.Object{dprop("age")}, owl.MustAnnotation(label, lit("age")))},
		{Name: "annotation assertion", Ax: owl.MustAxiom(owl.AnnotationAssertion, []owl.Object{label, owl.IRI(ex + "A"), owl.NewLangLiteral("Thing", "en")})},
		{
			Name: "sub annotation property",
			Decl: []*owl.Entity{aprop("a1"), aprop("a2")},
			Ax:   owl.MustAxiom(owl.SubAnnotationPropertyOf, []owl.Object{aprop("a1"), aprop("a2")}),
		},
		{
			Name: "annotation property range",
			Decl: []*owl.Entity{aprop("a1")},
			Ax:   owl.MustAxiom(owl.AnnotationPropertyRange, []owl.Object{aprop("a1"), owl.IRI(vocab.XSDString)}),
		},
		{
			Name: "annotation property domain",
			Decl: []*owl.Entity{aprop("a1")},
			Ax:   owl.MustAxiom(owl.AnnotationPropertyDomain, []owl.Object{aprop("a1"), owl.IRI(ex + "A")}),
		},
		{Name: "subclass", Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), class("B")})},
		{Name: "annotated subclass", Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), class("B")}, note)},
		{
			Name: "some values from",
			Ax:   owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), owl.MustExpr(owl.ObjectSomeValuesFrom, oprop("p"), class("B"))}),
		},
		{
			Name: "all values from inverse",
			Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"),
				owl.MustExpr(owl.ObjectAllValuesFrom, owl.MustExpr(owl.ObjectInverseOf, oprop("p")), class("B"))}),
		},
		{
			Name: "has value and has self",
			Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{
				owl.MustExpr(owl.ObjectHasValue, oprop("p"), ind("a")),
				owl.MustExpr(owl.ObjectHasSelf, oprop("q")),
			}),
		},
		{
			Name: "qualified object cardinality",
			Ax:   owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), card(owl.ObjectMinCardinality, 2, oprop("p"), class("B"))}),
		},
		{
			Name: "unqualified object cardinality",
			Ax:   owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), card(owl.ObjectExactCardinality, 1, oprop("p"))}),
		},
		{
			Name: "unqualified data cardinality",
			Decl: []*owl.Entity{dprop("age")},
			Ax:   owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"), card(owl.DataMaxCardinality, 1, dprop("age"))}),
		},
		{
			Name: "qualified data cardinality",
			Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{class("A"),
				card(owl.DataExactCardinality, 1, dprop("age"), xsd(vocab.XSDInteger))}),
		},
		{
			Name: "data restrictions",
			Decl: []*owl.Entity{dprop("age"), dprop("name")},
			Ax: owl.MustAxiom(owl.SubClassOf, []owl.Object{
				owl.MustExpr(owl.DataHasValue, dprop("age"), intLit("42")),
				owl.MustExpr(owl.DataSomeValuesFrom, dprop("name"), owl.MustExpr(owl.DataComplementOf, xsd(vocab.XSDInteger))),
			}),
		},
		{
			Name: "equivalent intersection",
			Ax: owl.MustAxiom(owl.EquivalentClasses, []owl.Object{class("A"),
				owl.MustExpr(owl.ObjectIntersectionOf, class("B"), owl.MustExpr(owl.ObjectComplementOf, class("C")))}),
		},
		{Name: "disjoint pair", Ax: owl.MustAxiom(owl.DisjointClasses, []owl.Object{class("A"), class("B")})},
		{
			Name: "disjoint group",
			Ax:   owl.MustAxiom(owl.DisjointClasses, []owl.Object{class("A"), class("B"), class("C")}, owl.MustAnnotation(label, lit("g"))),
		},
		{Name: "disjoint union", Ax: owl.MustAxiom(owl.DisjointUnion, []owl.Object{class("A"), seq(class("B"), class("C"))})},
		{Name: "sub object property", Ax: owl.MustAxiom(owl.SubObjectPropertyOf, []owl.Object{owl.MustExpr(owl.ObjectInverseOf, oprop("q")), oprop("p")})},
		{Name: "property chain", Ax: owl.MustAxiom(owl.SubPropertyChainOf, []owl.Object{seq(oprop("parent"), oprop("brother")), oprop("uncle")})},
		{Name: "equivalent object properties", Ax: owl.MustAxiom(owl.EquivalentObjectProperties, []owl.Object{oprop("p"), oprop("q")})},
		{Name: "disjoint object properties", Ax: owl.MustAxiom(owl.DisjointObjectProperties, []owl.Object{oprop("p"), oprop("q"), oprop("r")})},
		{Name: "inverse properties", Ax: owl.MustAxiom(owl.InverseObjectProperties, []owl.Object{oprop("q"), oprop("p")})},
		{Name: "object domain", Ax: owl.MustAxiom(owl.ObjectPropertyDomain, []owl.Object{oprop("p"), class("A")})},
		{Name: "object range", Ax: owl.MustAxiom(owl.ObjectPropertyRange, []owl.Object{oprop("p"), class("A")})},
		{Name: "functional object", Ax: owl.MustAxiom(owl.FunctionalObjectProperty, []owl.Object{oprop("p")})},
		{Name: "inverse functional", Ax: owl.MustAxiom(owl.InverseFunctionalObjectProperty, []owl.Object{oprop("p")})},
		{Name: "reflexive", Ax: owl.MustAxiom(owl.ReflexiveObjectProperty, []owl.Object{oprop("p")})},
		{Name: "symmetric", Ax: owl.MustAxiom(owl.SymmetricObjectProperty, []owl.Object{oprop("p")})},
		{Name: "asymmetric", Ax: owl.MustAxiom(owl.AsymmetricObjectProperty, []owl.Object{oprop("p")})},
		{Name: "transitive", Ax: owl.MustAxiom(owl.TransitiveObjectProperty, []owl.Object{oprop("p")})},
		{Name: "irreflexive inverse", Ax: owl.MustAxiom(owl.IrreflexiveObjectProperty, []owl.Object{owl.MustExpr(owl.ObjectInverseOf, oprop("p"))})},
		{
			Name: "sub data property",
			Decl: []*owl.Entity{dprop("d1"), dprop("d2")},
			Ax:   owl.MustAxiom(owl.SubDataPropertyOf, []owl.Object{dprop("d1"), dprop("d2")}),
		},
		{
			Name: "equivalent data properties",
			Decl: []*owl.Entity{dprop("d1"), dprop("d2")},
			Ax:   owl.MustAxiom(owl.EquivalentDataProperties, []owl.Object{dprop("d1"), dprop("d2")}),
		},
		{
			Name: "disjoint data properties",
			Decl: []*owl.Entity{dprop("d1"), dprop("d2")},
			Ax:   owl.MustAxiom(owl.DisjointDataProperties, []owl.Object{dprop("d1"), dprop("d2")}),
		},
		{
			Name: "data domain",
			Decl: []*owl.Entity{dprop("age")},
			Ax:   owl.MustAxiom(owl.DataPropertyDomain, []owl.Object{dprop("age"), class("Person")}),
		},
		{
			Name: "data range",
			Decl: []*owl.Entity{dprop("age")},
			Ax:   owl.MustAxiom(owl.DataPropertyRange, []owl.Object{dprop("age"), xsd(vocab.XSDInteger)}),
		},
		{
			Name: "data range one of",
			Ax: owl.MustAxiom(owl.DataPropertyRange, []owl.Object{dprop("size"),
				owl.MustExpr(owl.DataOneOf, lit("S"), lit("M"), lit("L"))}),
		},
		{
			Name: "functional data",
			Decl: []*owl.Entity{dprop("age")},
			Ax:   owl.MustAxiom(owl.FunctionalDataProperty, []owl.Object{dprop("age")}),
		},
		{
			Name: "datatype definition",
			Ax: owl.MustAxiom(owl.DatatypeDefinition, []owl.Object{entity(owl.Datatype, "adultAge"),
				owl.MustExpr(owl.DatatypeRestriction, xsd(vocab.XSDInteger), facet(vocab.XSDMinInclusive, intLit("18")))}),
		},
		{
			Name: "has key",
			Decl: []*owl.Entity{dprop("ssn")},
			Ax:   owl.MustAxiom(owl.HasKey, []owl.Object{class("Person"), seq(oprop("p")), seq(dprop("ssn"))}),
		},
		{Name: "same individual", Ax: owl.MustAxiom(owl.SameIndividual, []owl.Object{ind("a"), ind("b")})},
		{Name: "different individuals", Ax: owl.MustAxiom(owl.DifferentIndividuals, []owl.Object{ind("a"), ind("b"), ind("c")})},
		{Name: "class assertion", Ax: owl.MustAxiom(owl.ClassAssertion, []owl.Object{class("A"), ind("a")})},
		{
			Name: "class assertion one of",
			Ax:   owl.MustAxiom(owl.ClassAssertion, []owl.Object{owl.MustExpr(owl.ObjectOneOf, ind("a"), ind("b")), owl.AnonymousIndividual{Label: "anon"}}),
		},
		{
			Name: "object property assertion",
			Decl: []*owl.Entity{oprop("knows")},
			Ax:   owl.MustAxiom(owl.ObjectPropertyAssertion, []owl.Object{oprop("knows"), ind("a"), ind("b")}),
		},
		{
			Name: "undeclared object property assertion",
			Ax:   owl.MustAxiom(owl.ObjectPropertyAssertion, []owl.Object{oprop("likes"), ind("a"), ind("b")}),
		},
		{
			Name: "data property assertion",
			Decl: []*owl.Entity{dprop("age")},
			Ax:   owl.MustAxiom(owl.DataPropertyAssertion, []owl.Object{dprop("age"), ind("a"), intLit("7")}, owl.MustAnnotation(label, lit("src"))),
		},
		{
			Name: "negative object property assertion",
			Ax:   owl.MustAxiom(owl.NegativeObjectPropertyAssertion, []owl.Object{oprop("knows"), ind("a"), ind("b")}, owl.MustAnnotation(label, lit("neg"))),
		},
		{
			Name: "negative data property assertion",
			Ax:   owl.MustAxiom(owl.NegativeDataPropertyAssertion, []owl.Object{dprop("age"), ind("a"), intLit("7")}),
		},
		{
			Name: "rule",
			Ax: owl.MustAxiom(owl.Rule, []owl.Object{
				owl.MustExpr(owl.Body,
					owl.MustExpr(owl.ClassAtom, class("Person"), x),
					owl.MustExpr(owl.ObjectPropertyAtom, oprop("knows"), x, y),
					owl.MustExpr(owl.BuiltInAtom, owl.IRI("http://www.w3.org/2003/11/swrlb#greaterThan"), y, intLit("3")),
				),
				owl.MustExpr(owl.Head, owl.MustExpr(owl.ClassAtom, class("Social"), x)),
			}),
		},
	}

}
