package main

import (
	"fmt"
	"math/rand"

	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

const genNS = "http://example.org/stress#"

// Generator produces a synthetic ontology: a class tree with existential
// restrictions, sibling disjointness, and individuals with property
// assertions and labels.
type Generator struct {
	rng         *rand.Rand
	classes     []*owl.Entity
	properties  []*owl.Entity
	dataProps   []*owl.Entity
	individuals []*owl.Entity
	label       *owl.Entity
}

// NewGenerator creates a new generator with a fixed seed for reproducibility.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		label: owl.NewEntity(owl.AnnotationProperty, vocab.RDFSLabel),
	}
}

func entity(k owl.EntityKind, format string, i int) *owl.Entity {
	return owl.NewEntity(k, owl.IRI(genNS+fmt.Sprintf(format, i)))
}

// Ontology returns the axioms of an ontology with the given number of classes.
// Each class gets on average two individuals.
func (g *Generator) Ontology(numClasses int) []*owl.Axiom {
	var axioms []*owl.Axiom
	declare := func(e *owl.Entity) {
		axioms = append(axioms, owl.MustAxiom(owl.Declaration, []owl.Object{e}))
	}

	numProps := max(1, numClasses/20)
	for i := range numProps {
		p := entity(owl.ObjectProperty, "rel%d", i)
		g.properties = append(g.properties, p)
		declare(p)
		d := entity(owl.DataProperty, "attr%d", i)
		g.dataProps = append(g.dataProps, d)
		declare(d)
	}

	children := make(map[int][]*owl.Entity)
	for i := range numClasses {
		c := entity(owl.Class, "Class%d", i)
		g.classes = append(g.classes, c)
		declare(c)
		if i == 0 {
			continue
		}
		parent := g.rng.Intn(i)
		children[parent] = append(children[parent], c)
		axioms = append(axioms, owl.MustAxiom(owl.SubClassOf, []owl.Object{c, g.classes[parent]}))

		if g.rng.Intn(4) == 0 {
			some := owl.MustExpr(owl.ObjectSomeValuesFrom, g.pick(g.properties), g.pick(g.classes))
			axioms = append(axioms, owl.MustAxiom(owl.SubClassOf, []owl.Object{c, some}))
		}
	}

	for parent := range numClasses {
		sibs := children[parent]
		if len(sibs) >= 2 && g.rng.Intn(2) == 0 {
			axioms = append(axioms, owl.MustAxiom(owl.DisjointClasses, []owl.Object{sibs[0], sibs[1]}))
		}
	}

	for i := range numClasses * 2 {
		ind := entity(owl.NamedIndividual, "ind%d", i)
		g.individuals = append(g.individuals, ind)
		declare(ind)
		lbl := owl.NewLangLiteral(fmt.Sprintf("Individual %d", i), "en")
		axioms = append(axioms,
			owl.MustAxiom(owl.ClassAssertion, []owl.Object{g.pick(g.classes), ind}),
			owl.MustAxiom(owl.AnnotationAssertion, []owl.Object{g.label, ind.IRI(), lbl}),
			owl.MustAxiom(owl.DataPropertyAssertion, []owl.Object{
				g.pick(g.dataProps), ind, owl.NewLiteral(fmt.Sprint(g.rng.Intn(1000)), vocab.XSDInteger),
			}),
		)
		if i > 0 {
			axioms = append(axioms, owl.MustAxiom(owl.ObjectPropertyAssertion, []owl.Object{
				g.pick(g.properties), ind, g.individuals[g.rng.Intn(i)],
			}))
		}
	}
	return axioms
}

func (g *Generator) pick(from []*owl.Entity) *owl.Entity {
	return from[g.rng.Intn(len(from))]
}

// Sample returns n axioms drawn from axioms with replacement.
func (g *Generator) Sample(axioms []*owl.Axiom, n int) []*owl.Axiom {
	out := make([]*owl.Axiom, n)
	for i := range out {
		out[i] = axioms[g.rng.Intn(len(axioms))]
	}
	return out
}
