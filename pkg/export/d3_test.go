package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

const ex = "http://example.org/pizza#"

func entity(k owl.EntityKind, name string) *owl.Entity { return owl.NewEntity(k, owl.IRI(ex+name)) }

func newTransformer(t *testing.T) *D3Transformer {
	t.Helper()
	ids, err := identity.New(identity.DefaultConfig())
	require.NoError(t, err)
	return NewD3Transformer(ids)
}

func TestD3Transformer(t *testing.T) {
	pizza := entity(owl.Class, "Pizza")
	margherita := entity(owl.Class, "Margherita")
	topping := entity(owl.Class, "Topping")
	hasTopping := entity(owl.ObjectProperty, "hasTopping")
	calories := entity(owl.DataProperty, "calories")
	mine := entity(owl.NamedIndividual, "myPizza")
	tomato := entity(owl.NamedIndividual, "tomato")
	label := owl.NewEntity(owl.AnnotationProperty, owl.IRI(vocab.RDFSLabel))

	axioms := []*owl.Axiom{
		owl.MustAxiom(owl.Declaration, []owl.Object{pizza}),
		owl.MustAxiom(owl.Declaration, []owl.Object{margherita}),
		owl.MustAxiom(owl.SubClassOf, []owl.Object{margherita, pizza}),
		owl.MustAxiom(owl.SubClassOf, []owl.Object{pizza, owl.MustExpr(owl.ObjectSomeValuesFrom, hasTopping, topping)}),
		owl.MustAxiom(owl.DisjointClasses, []owl.Object{topping, pizza}),
		owl.MustAxiom(owl.AnnotationAssertion, []owl.Object{label, owl.IRI(ex + "Pizza"), owl.NewLangLiteral("Pizza", "en")}),
		owl.MustAxiom(owl.ClassAssertion, []owl.Object{margherita, mine}),
		owl.MustAxiom(owl.ObjectPropertyAssertion, []owl.Object{hasTopping, mine, tomato}),
		owl.MustAxiom(owl.DataPropertyAssertion, []owl.Object{calories, mine, owl.NewLiteral("800", vocab.XSDInteger)}),
	}

	g := newTransformer(t).Transform(axioms)

	ids := make([]string, len(g.Nodes))
	byID := make(map[string]D3Node)
	for i, n := range g.Nodes {
		ids[i] = n.ID
		byID[n.ID] = n
	}
	assert.Equal(t, []string{ex + "Margherita", ex + "Pizza", ex + "Topping", ex + "myPizza", ex + "tomato"}, ids)

	p := byID[ex+"Pizza"]
	assert.Equal(t, "Pizza", p.Name)
	assert.Equal(t, "Class", p.Kind)
	assert.Equal(t, ex, p.Group)
	assert.Equal(t, map[string]string{"label": "Pizza"}, p.Metadata)
	assert.Equal(t, map[string]string{"calories": "800"}, byID[ex+"myPizza"].Metadata)
	assert.Equal(t, "NamedIndividual", byID[ex+"tomato"].Kind)

	assert.Equal(t, []D3Link{
		{Source: ex + "Margherita", Target: ex + "Pizza", Relation: "SubClassOf", Type: LinkSchema},
		{Source: ex + "Pizza", Target: ex + "Topping", Relation: "DisjointClasses", Type: LinkSchema},
		{Source: ex + "myPizza", Target: ex + "Margherita", Relation: "ClassAssertion", Type: LinkAssertion},
		{Source: ex + "myPizza", Target: ex + "tomato", Relation: "hasTopping", Type: LinkAssertion},
	}, g.Links)
}

func TestD3Transformer_Empty(t *testing.T) {
	g := newTransformer(t).Transform(nil)
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes": [], "links": []}`, string(data))
}

func TestD3Transformer_AnonymousIndividual(t *testing.T) {
	knows := entity(owl.ObjectProperty, "knows")
	a := entity(owl.NamedIndividual, "a")
	b := owl.AnonymousIndividual{Label: "b1"}
	g := newTransformer(t).Transform([]*owl.Axiom{
		owl.MustAxiom(owl.NegativeObjectPropertyAssertion, []owl.Object{knows, a, b}),
	})
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "_:b1", g.Nodes[0].ID)
	assert.Equal(t, []D3Link{{Source: ex + "a", Target: "_:b1", Relation: "not knows", Type: LinkAssertion}}, g.Links)
}

func TestSaveD3Graph(t *testing.T) {
	g := &D3Graph{
		Nodes: []D3Node{{ID: ex + "A", Name: "A"}},
		Links: []D3Link{},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteD3Graph(&buf, g))

	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, SaveD3Graph(g, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))

	var back D3Graph
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *g, back)
}
