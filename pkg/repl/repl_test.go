package repl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/config"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/service"
)

const pizza = `<http://example.org/Margherita> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/Pizza> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/hasTopping> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#ObjectProperty> .
<http://example.org/Margherita> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/Pizza> .
`

func setupREPL(t *testing.T) (*REPL, *bytes.Buffer) {
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

	var out bytes.Buffer
	return New(service.NewGraphService(mgr), "pizza", &out), &out
}

func TestREPL_Session(t *testing.T) {
	r, out := setupREPL(t)
	in := strings.Join([]string{
		"axioms subclassof",
		"triples(C, a, <http://www.w3.org/2002/07/owl#ObjectProperty>)",
		"!!",
		"history",
		"exit",
		"shapes",
	}, "\n")
	require.NoError(t, r.Run(context.Background(), strings.NewReader(in)))

	got := out.String()
	assert.Contains(t, got, "SubClassOf(<http://example.org/Margherita> <http://example.org/Pizza>)")
	assert.Equal(t, 2, strings.Count(got, "- C=<http://example.org/hasTopping>"))
	assert.Contains(t, got, "triples(C, a, <http://www.w3.org/2002/07/owl#ObjectProperty>)  (1 results)")
	assert.NotContains(t, got, "DisjointUnion")
	assert.True(t, strings.HasSuffix(got, "👋 Bye!\n"))
}

func TestREPL_Commands(t *testing.T) {
	r, out := setupREPL(t)
	ctx := context.Background()

	require.NoError(t, r.Execute(ctx, "find topping"))
	assert.Contains(t, out.String(), "ObjectProperty       hasTopping <http://example.org/hasTopping>")

	out.Reset()
	require.NoError(t, r.Execute(ctx, "describe <http://example.org/Pizza>"))
	assert.Equal(t, "Declaration(Class(<http://example.org/Pizza>))\n"+
		"SubClassOf(<http://example.org/Margherita> <http://example.org/Pizza>)\n", out.String())

	out.Reset()
	require.NoError(t, r.Execute(ctx, "path http://example.org/Pizza http://example.org/Margherita"))
	assert.Equal(t, "<http://example.org/Margherita> --[SubClassOf]--> <http://example.org/Pizza>\n", out.String())

	out.Reset()
	file := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, r.Execute(ctx, "export "+file+" SubClassOf"))
	assert.Contains(t, out.String(), "Exported 2 nodes and 1 links")
	_, err := os.Stat(file)
	assert.NoError(t, err)

	out.Reset()
	require.NoError(t, r.Execute(ctx, "triples(C, a, <http://example.org/Nothing>)"))
	assert.Contains(t, out.String(), "[No results]")
}

func TestREPL_Errors(t *testing.T) {
	r, _ := setupREPL(t)
	ctx := context.Background()

	assert.Error(t, r.Execute(ctx, "!!"))
	assert.ErrorContains(t, r.Execute(ctx, "axioms SubClasOf"), "did you mean")
	assert.Error(t, r.Execute(ctx, "axioms"))
	assert.Error(t, r.Execute(ctx, "path only-one"))
	assert.Error(t, r.Execute(ctx, "not a query"))
}

func TestSessionContext_History(t *testing.T) {
	s := NewSessionContext()
	assert.False(t, s.HasContext())
	assert.Empty(t, s.LastQuery())
	for i := range MaxHistory + 2 {
		s.AddTurn(ConversationTurn{Query: string(rune('a' + i))})
	}
	assert.Len(t, s.ConversationHistory, MaxHistory)
	assert.Equal(t, "c", s.ConversationHistory[0].Query)
	assert.Equal(t, "g", s.LastQuery())
}
