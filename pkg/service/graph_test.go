package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/config"
	"github.com/duynguyendang/ontograph/pkg/export"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

const pizza = `<http://example.org/Margherita> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/NamedPizza> .
<http://example.org/NamedPizza> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/Pizza> .
<http://example.org/American> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/NamedPizza> .
<http://example.org/Topping> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/Pizza> <http://www.w3.org/2000/01/rdf-schema#label> "Pizza"@en .
`

func setupService(t *testing.T) *GraphService {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.MemoryProfile = config.MemoryProfileLow
	mgr, err := manager.NewStoreManager(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(mgr.CloseAll)

	p, err := mgr.CreateProject(manager.ProjectMetadata{ID: "pizza"})
	require.NoError(t, err)
	_, err = graph.ReadNTriples(strings.NewReader(pizza), p.Graph)
	require.NoError(t, err)
	return NewGraphService(mgr)
}

func ids(nodes []export.D3Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestExecuteQuery(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	res, err := s.ExecuteQuery(ctx, "pizza",
		`triples(A, <http://www.w3.org/2000/01/rdf-schema#subClassOf>, B), triples(B, <http://www.w3.org/2000/01/rdf-schema#subClassOf>, C)`, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, res.Vars)
	assert.ElementsMatch(t, []map[string]string{
		{"A": "<http://example.org/Margherita>", "B": "<http://example.org/NamedPizza>", "C": "<http://example.org/Pizza>"},
		{"A": "<http://example.org/American>", "B": "<http://example.org/NamedPizza>", "C": "<http://example.org/Pizza>"},
	}, res.Results)

	res, err = s.ExecuteQuery(ctx, "pizza", " ", 0)
	require.NoError(t, err)
	assert.Empty(t, res.Results)

	_, err = s.ExecuteQuery(ctx, "pizza", `nope(A)`, 0)
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, err = s.ExecuteQuery(ctx, "missing", `triples(A, B, C)`, 0)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestExportGraph(t *testing.T) {
	s := setupService(t)

	g, err := s.ExportGraph("pizza", owl.SubClassOf)
	require.NoError(t, err)
	assert.Len(t, g.Links, 3)
	assert.Equal(t, []string{
		"http://example.org/American",
		"http://example.org/Margherita",
		"http://example.org/NamedPizza",
		"http://example.org/Pizza",
	}, ids(g.Nodes))

	g, err = s.ExportGraph("pizza")
	require.NoError(t, err)
	assert.Contains(t, ids(g.Nodes), "http://example.org/Topping")
}

func TestDescribe(t *testing.T) {
	s := setupService(t)
	axioms, err := s.Describe("pizza", "http://example.org/Pizza")
	require.NoError(t, err)
	var got []string
	for _, ax := range axioms {
		got = append(got, ax.Shape().String())
	}
	assert.ElementsMatch(t, []string{"AnnotationAssertion", "SubClassOf"}, got)
}

func TestFindShortestPath(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	g, err := s.FindShortestPath(ctx, "pizza", "http://example.org/Margherita", "http://example.org/Pizza")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://example.org/Margherita",
		"http://example.org/NamedPizza",
		"http://example.org/Pizza",
	}, ids(g.Nodes))
	require.Len(t, g.Links, 2)
	assert.Equal(t, "SubClassOf", g.Links[0].Relation)

	// Siblings are joined through their shared parent against link direction.
	g, err = s.FindShortestPath(ctx, "pizza", "http://example.org/Margherita", "http://example.org/American")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, "http://example.org/American", g.Links[1].Source)

	g, err = s.FindShortestPath(ctx, "pizza", "http://example.org/Margherita", "http://example.org/Topping")
	require.NoError(t, err)
	assert.Empty(t, g.Nodes)
}

func TestShortestPath_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ShortestPath(ctx, &export.D3Graph{}, "a", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
