package axiomcache

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
	"github.com/duynguyendang/ontograph/pkg/translate/translatetest"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

const ex = "http://example.org/"

var (
	rdfType = graph.IRI(vocab.RDFType)
	label   = owl.NewEntity(owl.AnnotationProperty, owl.IRI(vocab.RDFSLabel))
)

func class(name string) *owl.Entity { return owl.NewEntity(owl.Class, owl.IRI(ex+name)) }
func oprop(name string) *owl.Entity { return owl.NewEntity(owl.ObjectProperty, owl.IRI(ex+name)) }
func dprop(name string) *owl.Entity { return owl.NewEntity(owl.DataProperty, owl.IRI(ex+name)) }
func ind(name string) *owl.Entity   { return owl.NewEntity(owl.NamedIndividual, owl.IRI(ex+name)) }
func node(name string) graph.Node   { return graph.IRI(ex + name) }

func declaration(e *owl.Entity, anns ...owl.Annotation) *owl.Axiom {
	return owl.MustAxiom(owl.Declaration, []owl.Object{e}, anns...)
}

func subClassOf(sub, sup owl.Object, anns ...owl.Annotation) *owl.Axiom {
	return owl.MustAxiom(owl.SubClassOf, []owl.Object{sub, sup}, anns...)
}

func someP(filler owl.Object) *owl.Expr {
	return owl.MustExpr(owl.ObjectSomeValuesFrom, oprop("p"), filler)
}

func keys(axs []*owl.Axiom) []string {
	out := make([]string, len(axs))
	for i, ax := range axs {
		out[i] = ax.Key()
	}
	return out
}

func newController(t *testing.T, g graph.Graph, opts Options) *Controller {
	t.Helper()
	reg, err := translate.NewRegistry(translate.DefaultOptions(), nil)
	require.NoError(t, err)
	c := New(g, reg, opts)
	t.Cleanup(c.Close)
	return c
}

func add(t *testing.T, g graph.Graph, s, p, o graph.Node) graph.Triple {
	t.Helper()
	tr := graph.NewTriple(s, p, o)
	require.NoError(t, g.Add(tr))
	return tr
}

func TestController_EndToEnd(t *testing.T) {
	g := graph.NewMem()
	add(t, g, node("A"), rdfType, graph.IRI(vocab.OWLClass))
	sub := add(t, g, node("A"), graph.IRI(vocab.RDFSSubClassOf), node("B"))
	add(t, g, node("B"), rdfType, graph.IRI(vocab.OWLClass))

	c := newController(t, g, Options{})

	decls, err := c.Axioms(owl.Declaration)
	require.NoError(t, err)
	assert.Equal(t, keys([]*owl.Axiom{declaration(class("A")), declaration(class("B"))}), keys(decls))

	subs, err := c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Equal(t, keys([]*owl.Axiom{subClassOf(class("A"), class("B"))}), keys(subs))

	require.NoError(t, g.Delete(sub))

	subs, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Empty(t, subs)

	b, err := c.Bucket(owl.Declaration)
	require.NoError(t, err)
	assert.True(t, b.IsLoaded(), "declarations must survive an unrelated delete")
	assert.Equal(t, 2, b.Len())
}

func TestBucket_AddCapturesWrittenTriples(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	ax := subClassOf(class("A"), someP(class("B")))

	require.NoError(t, c.Add(ax))

	ok, err := c.Contains(ax)
	require.NoError(t, err)
	assert.True(t, ok)

	ts, err := c.TriplesOf(ax)
	require.NoError(t, err)
	assert.Len(t, ts, 4)
	for tr := range ts {
		assert.True(t, g.Contains(tr), tr.String())
	}

	require.NoError(t, c.Remove(ax))
	assert.Zero(t, g.Len())
	ok, err = c.Contains(ax)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBucket_AddTwiceKeepsOneAxiom(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	ax := subClassOf(class("A"), class("B"))

	require.NoError(t, c.Add(ax))
	require.NoError(t, c.Add(ax))

	got, err := c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	c.Clear()
	got, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBucket_RemoveKeepsSharedTriples(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	plain := declaration(class("A"))
	annotated := declaration(class("A"), owl.MustAnnotation(label, owl.NewLiteral("A", "")))
	shared := graph.NewTriple(node("A"), rdfType, graph.IRI(vocab.OWLClass))

	require.NoError(t, c.Add(plain))
	require.NoError(t, c.Add(annotated))

	require.NoError(t, c.Remove(plain))
	assert.True(t, g.Contains(shared))
	ok, err := c.Contains(annotated)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Contains(plain)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Remove(annotated))
	assert.False(t, g.Contains(shared))
	assert.Zero(t, g.Len())
}

func TestBucket_RemoveSharedRestriction(t *testing.T) {
	g := graph.NewMem()
	r := g.NewBlank()
	add(t, g, node("A"), graph.IRI(vocab.RDFSSubClassOf), r)
	add(t, g, node("C"), graph.IRI(vocab.RDFSSubClassOf), r)
	add(t, g, r, rdfType, graph.IRI(vocab.OWLRestriction))
	add(t, g, r, graph.IRI(vocab.OWLOnProperty), node("p"))
	add(t, g, r, graph.IRI(vocab.OWLSomeValuesFrom), node("B"))

	c := newController(t, g, Options{})
	got, err := c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, c.Remove(subClassOf(class("A"), someP(class("B")))))
	assert.Equal(t, 4, g.Len())

	want := keys([]*owl.Axiom{subClassOf(class("C"), someP(class("B")))})
	got, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Equal(t, want, keys(got))

	c.Clear()
	got, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Equal(t, want, keys(got))
}

func TestBucket_RemoveAbsentIsNoop(t *testing.T) {
	g := graph.NewMem()
	add(t, g, node("A"), graph.IRI(vocab.RDFSSubClassOf), node("B"))
	c := newController(t, g, Options{})

	require.NoError(t, c.Remove(subClassOf(class("B"), class("A"))))
	assert.Equal(t, 1, g.Len())
}

func TestBucket_UndeclaredPropertyAssertionSurvivesClear(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	ax := owl.MustAxiom(owl.ObjectPropertyAssertion, []owl.Object{oprop("p"), ind("a"), ind("b")})

	require.NoError(t, c.Add(ax))
	assert.Equal(t, 1, g.Len())
	ok, err := c.Contains(ax)
	require.NoError(t, err)
	assert.True(t, ok)

	c.Clear()
	ok, err = c.Contains(ax)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Remove(ax))
	assert.Zero(t, g.Len())
}

func TestBucket_EquivalenceReadsBackAsPairs(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	abc := owl.MustAxiom(owl.EquivalentClasses, []owl.Object{class("A"), class("B"), class("C")})
	pairs := keys([]*owl.Axiom{
		owl.MustAxiom(owl.EquivalentClasses, []owl.Object{class("A"), class("B")}),
		owl.MustAxiom(owl.EquivalentClasses, []owl.Object{class("A"), class("C")}),
	})

	require.NoError(t, c.Add(abc))
	assert.Equal(t, 2, g.Len())

	for range 2 {
		got, err := c.Axioms(owl.EquivalentClasses)
		require.NoError(t, err)
		assert.Equal(t, pairs, keys(got))

		ok, err := c.Contains(abc)
		require.NoError(t, err)
		assert.True(t, ok)

		ts, err := c.TriplesOf(abc)
		require.NoError(t, err)
		assert.Len(t, ts, 2)

		c.Clear()
	}

	require.NoError(t, c.Remove(abc))
	assert.Zero(t, g.Len())
	ok, err := c.Contains(abc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBucket_ContainsIgnoresForeignAnnotations(t *testing.T) {
	g := graph.NewMem()
	c := newController(t, g, Options{})
	plain := declaration(class("A"))
	annotated := declaration(class("A"), owl.MustAnnotation(label, owl.NewLiteral("A", "")))

	require.NoError(t, c.Add(annotated))
	c.Clear()

	ok, err := c.Contains(plain)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Remove(plain))
	assert.Equal(t, 6, g.Len())
}

// Add must leave a bucket holding what a reload reads back.
func TestController_AddMatchesReload(t *testing.T) {
	axiom := func(shape owl.Shape, args ...owl.Object) *owl.Axiom { return owl.MustAxiom(shape, args) }
	cases := append(translatetest.RoundTrips(),
		translatetest.Case{Name: "equivalent star", Ax: axiom(owl.EquivalentClasses, class("A"), class("B"), class("C"))},
		translatetest.Case{Name: "same individual star", Ax: axiom(owl.SameIndividual, ind("a"), ind("b"), ind("c"))},
		translatetest.Case{Name: "equivalent property star", Ax: axiom(owl.EquivalentObjectProperties, oprop("p"), oprop("q"), oprop("r"))},
		translatetest.Case{
			Name: "equivalent data property star",
			Decl: []*owl.Entity{dprop("d1"), dprop("d2"), dprop("d3")},
			Ax:   axiom(owl.EquivalentDataProperties, dprop("d1"), dprop("d2"), dprop("d3")),
		},
	)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			c := newController(t, graph.NewMem(), Options{})
			for _, e := range tc.Decl {
				require.NoError(t, c.Add(declaration(e)))
			}
			require.NoError(t, c.Add(tc.Ax))

			before, err := c.Axioms(tc.Ax.Shape())
			require.NoError(t, err)
			require.NotEmpty(t, before)

			c.Clear()
			after, err := c.Axioms(tc.Ax.Shape())
			require.NoError(t, err)
			assert.Equal(t, keys(before), keys(after))

			ok, err := c.Contains(tc.Ax)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestController_ExternalEdits(t *testing.T) {
	g := graph.NewMem()
	add(t, g, node("A"), graph.IRI(vocab.RDFSSubClassOf), node("B"))
	c := newController(t, g, Options{})
	b, err := c.Bucket(owl.SubClassOf)
	require.NoError(t, err)

	_, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)

	t.Run("named head triple is decoded in place", func(t *testing.T) {
		add(t, g, node("C"), graph.IRI(vocab.RDFSSubClassOf), node("D"))
		assert.True(t, b.IsLoaded())
		ok, err := b.Contains(subClassOf(class("C"), class("D")))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("structural triple drops the bucket", func(t *testing.T) {
		add(t, g, g.NewBlank(), rdfType, graph.IRI(vocab.OWLRestriction))
		assert.False(t, b.IsLoaded())
		got, err := c.Axioms(owl.SubClassOf)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unrelated triple is ignored", func(t *testing.T) {
		add(t, g, node("x"), node("knows"), node("y"))
		assert.True(t, b.IsLoaded())
	})
}

func TestController_DeletedAnnotationKeepsAxiom(t *testing.T) {
	g := graph.NewMem()
	reg, err := translate.NewRegistry(translate.DefaultOptions(), nil)
	require.NoError(t, err)
	note := owl.MustAnnotation(label, owl.NewLiteral("note", ""))
	require.NoError(t, reg.Encode(g, subClassOf(class("A"), class("B"), note)))

	c := New(g, reg, Options{})
	defer c.Close()
	got, err := c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	labels := graph.Collect(g.Find(graph.Any, graph.IRI(vocab.RDFSLabel), graph.Any))
	require.Len(t, labels, 1)
	require.NoError(t, g.Delete(labels[0]))

	b, err := c.Bucket(owl.SubClassOf)
	require.NoError(t, err)
	assert.True(t, b.IsLoaded())
	got, err = c.Axioms(owl.SubClassOf)
	require.NoError(t, err)
	assert.Equal(t, keys([]*owl.Axiom{subClassOf(class("A"), class("B"))}), keys(got))
}

func TestController_CanDelete(t *testing.T) {
	g := graph.NewMem()
	decl := add(t, g, node("A"), rdfType, graph.IRI(vocab.OWLClass))
	c := newController(t, g, Options{})

	ok, err := c.CanDelete(decl)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.CanDelete(graph.NewTriple(node("x"), node("y"), node("z")))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, owl.NumShapes, c.Stats().LoadedBuckets)
}

func TestController_InvalidInput(t *testing.T) {
	c := newController(t, graph.NewMem(), Options{})

	assert.ErrorIs(t, c.Add(nil), errors.ErrInvalidInput)
	_, err := c.Axioms(owl.Shape(200))
	assert.ErrorIs(t, err, errors.ErrTranslatorNotFound)

	b, err := c.Bucket(owl.Declaration)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Add(subClassOf(class("A"), class("B"))), errors.ErrInvalidInput)

	_, err = c.TriplesOf(subClassOf(class("A"), class("B")))
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestController_ReadOnlyGraph(t *testing.T) {
	c := newController(t, graph.ReadOnly(graph.NewMem()), Options{})
	err := c.Add(subClassOf(class("A"), class("B")))
	assert.ErrorIs(t, err, errors.ErrModificationDenied)
}

func TestController_KeepOrder(t *testing.T) {
	for _, keep := range []bool{false, true} {
		c := newController(t, graph.NewMem(), Options{KeepOrder: keep})
		first := subClassOf(class("C"), class("D"))
		second := subClassOf(class("A"), class("B"))
		require.NoError(t, c.Add(first))
		require.NoError(t, c.Add(second))

		got, err := c.Axioms(owl.SubClassOf)
		require.NoError(t, err)
		if keep {
			assert.Equal(t, keys([]*owl.Axiom{first, second}), keys(got))
		} else {
			assert.Equal(t, keys([]*owl.Axiom{second, first}), keys(got))
		}
	}
}

func TestController_ConcurrentReaders(t *testing.T) {
	g := graph.NewMem()
	for _, n := range []string{"A", "B", "C", "D"} {
		add(t, g, node(n), rdfType, graph.IRI(vocab.OWLClass))
	}
	reg := prometheus.NewRegistry()
	c := newController(t, g, Options{Concurrent: true, Registerer: reg})

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			axs, err := c.Axioms(owl.Declaration)
			assert.NoError(t, err)
			results[i] = keys(axs)
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0], r)
		assert.Len(t, r, 4)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(c.metrics.loads.WithLabelValues("Declaration")))
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := graph.NewMem()
	first := newController(t, g, Options{Registerer: reg})
	second := newController(t, g, Options{Registerer: reg})

	require.NoError(t, first.Add(declaration(class("A"))))
	require.NoError(t, second.Add(declaration(class("B"))))
	assert.Equal(t, 2.0, testutil.ToFloat64(first.metrics.adds.WithLabelValues("Declaration")))

	plain := newController(t, g, Options{})
	assert.Nil(t, plain.metrics)
	require.NoError(t, plain.Add(declaration(class("C"))))
}
