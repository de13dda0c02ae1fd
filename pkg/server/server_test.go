package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/config"
	"github.com/duynguyendang/ontograph/pkg/export"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

const pizza = `<http://example.org/A> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/B> .
<http://example.org/B> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
`

const subClassTriple = "<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.org/B> .\n"

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.MemoryProfile = config.MemoryProfileLow
	reg := prometheus.NewRegistry()
	mgr, err := manager.NewStoreManager(cfg, reg)
	require.NoError(t, err)
	t.Cleanup(mgr.CloseAll)

	_, err = mgr.CreateProject(manager.ProjectMetadata{ID: "pizza", Name: "Pizza"})
	require.NoError(t, err)
	return NewServer(mgr, reg)
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	srv.Handler().ServeHTTP(w, req)
	return w
}

type axiomsBody struct {
	Shape  string          `json:"shape"`
	Count  int             `json:"count"`
	Axioms []AxiomResponse `json:"axioms"`
}

func axioms(t *testing.T, srv *Server, target string) axiomsBody {
	t.Helper()
	w := do(t, srv, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body axiomsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	srv := setupTestServer(t)
	w := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjects(t *testing.T) {
	srv := setupTestServer(t)

	w := do(t, srv, http.MethodPost, "/v1/projects", `{"id":"wine","name":"Wine"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, srv, http.MethodGet, "/v1/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	var projects []manager.ProjectMetadata
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Equal(t, []manager.ProjectMetadata{
		{ID: "pizza", Name: "Pizza"},
		{ID: "wine", Name: "Wine"},
	}, projects)

	w = do(t, srv, http.MethodPost, "/v1/projects", `{"id":"../etc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShapes(t *testing.T) {
	srv := setupTestServer(t)
	w := do(t, srv, http.MethodGet, "/v1/shapes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var shapes []ShapeInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &shapes))
	require.Len(t, shapes, owl.NumShapes)
	assert.Equal(t, "Declaration", shapes[0].Name)
	for _, s := range shapes {
		if s.Name == "EquivalentClasses" {
			assert.True(t, s.NAry)
			assert.False(t, s.Distinct)
		}
	}
}

func TestTriplesAndAxioms(t *testing.T) {
	srv := setupTestServer(t)

	w := do(t, srv, http.MethodPost, "/v1/triples?project=pizza", pizza)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"added":3,"triples":3}`, w.Body.String())

	decls := axioms(t, srv, "/v1/axioms/declaration?project=pizza")
	assert.Equal(t, "Declaration", decls.Shape)
	assert.Equal(t, 2, decls.Count)

	subs := axioms(t, srv, "/v1/axioms/SubClassOf?project=pizza&triples=true")
	require.Len(t, subs.Axioms, 1)
	assert.Equal(t, "SubClassOf(<http://example.org/A> <http://example.org/B>)", subs.Axioms[0].Axiom)
	assert.Len(t, subs.Axioms[0].Triples, 1)

	w = do(t, srv, http.MethodGet, "/v1/triples?project=pizza&p=<http://www.w3.org/2000/01/rdf-schema%23subClassOf>", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var triples []TripleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &triples))
	assert.Equal(t, []TripleResponse{{
		S: "<http://example.org/A>",
		P: "<http://www.w3.org/2000/01/rdf-schema#subClassOf>",
		O: "<http://example.org/B>",
	}}, triples)

	w = do(t, srv, http.MethodDelete, "/v1/triples?project=pizza", subClassTriple)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"deleted":1,"triples":2}`, w.Body.String())

	assert.Zero(t, axioms(t, srv, "/v1/axioms/SubClassOf?project=pizza").Count)
	assert.Equal(t, 2, axioms(t, srv, "/v1/axioms/Declaration?project=pizza").Count)

	w = do(t, srv, http.MethodGet, "/v1/triples?project=pizza&format=ntriples", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "\n"))
}

func TestAxioms_Compress(t *testing.T) {
	srv := setupTestServer(t)
	const eq = "<http://www.w3.org/2002/07/owl#equivalentClass>"
	body := "<http://example.org/A> " + eq + " <http://example.org/B> .\n" +
		"<http://example.org/B> " + eq + " <http://example.org/C> .\n" +
		"<http://example.org/A> " + eq + " <http://example.org/C> .\n"
	w := do(t, srv, http.MethodPost, "/v1/triples?project=pizza", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, 3, axioms(t, srv, "/v1/axioms/EquivalentClasses?project=pizza").Count)
	grouped := axioms(t, srv, "/v1/axioms/EquivalentClasses?project=pizza&compress=true")
	require.Len(t, grouped.Axioms, 1)
	assert.Equal(t,
		"EquivalentClasses(<http://example.org/A> <http://example.org/B> <http://example.org/C>)",
		grouped.Axioms[0].Axiom)
}

func TestErrors(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		code   int
	}{
		{"missing project", http.MethodGet, "/v1/axioms/SubClassOf", "", http.StatusBadRequest},
		{"unknown project", http.MethodGet, "/v1/axioms/SubClassOf?project=nope", "", http.StatusNotFound},
		{"unknown shape", http.MethodGet, "/v1/axioms/SubClasOf?project=pizza", "", http.StatusBadRequest},
		{"bad term", http.MethodGet, "/v1/triples?project=pizza&s=oops", "", http.StatusBadRequest},
		{"bad n-triples", http.MethodPost, "/v1/triples?project=pizza", "not a triple", http.StatusBadRequest},
		{"expression kind is not a shape", http.MethodGet, "/v1/axioms/ObjectUnionOf?project=pizza", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}

	w := do(t, srv, http.MethodGet, "/v1/axioms/SubClasOf?project=pizza", "")
	assert.Contains(t, w.Body.String(), "did you mean")
}

func TestRecursiveStructure(t *testing.T) {
	srv := setupTestServer(t)
	body := `<http://example.org/A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> _:u .
_:u <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
_:u <http://www.w3.org/2002/07/owl#unionOf> _:l .
_:l <http://www.w3.org/1999/02/22-rdf-syntax-ns#first> _:u .
_:l <http://www.w3.org/1999/02/22-rdf-syntax-ns#rest> <http://www.w3.org/1999/02/22-rdf-syntax-ns#nil> .
`
	w := do(t, srv, http.MethodPost, "/v1/triples?project=pizza", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, srv, http.MethodGet, "/v1/axioms/SubClassOf?project=pizza", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestStatsAndMetrics(t *testing.T) {
	srv := setupTestServer(t)
	do(t, srv, http.MethodPost, "/v1/triples?project=pizza", pizza)
	axioms(t, srv, "/v1/axioms/Declaration?project=pizza")

	w := do(t, srv, http.MethodGet, "/v1/stats?project=pizza", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Triples int `json:"triples"`
		Cache   struct {
			LoadedBuckets int            `json:"loaded_buckets"`
			Shapes        map[string]int `json:"shapes"`
		} `json:"cache"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Triples)
	assert.Equal(t, 2, stats.Cache.Shapes["Declaration"])

	w = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ontograph_axiomcache_bucket_loads_total{shape="Declaration"} 1`)
}

func TestQuery(t *testing.T) {
	srv := setupTestServer(t)
	do(t, srv, http.MethodPost, "/v1/triples?project=pizza", pizza)

	type queryBody struct {
		Vars    []string            `json:"vars"`
		Results []map[string]string `json:"results"`
	}
	query := func(body string) queryBody {
		t.Helper()
		w := do(t, srv, http.MethodPost, "/v1/query?project=pizza", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out queryBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	got := query(`{"query": "triples(?c, a, <http://www.w3.org/2002/07/owl#Class>), triples(?c, <http://www.w3.org/2000/01/rdf-schema#subClassOf>, ?d)"}`)
	assert.Equal(t, []string{"c", "d"}, got.Vars)
	assert.Equal(t, []map[string]string{{"c": "<http://example.org/A>", "d": "<http://example.org/B>"}}, got.Results)

	got = query(`{"query": "triples(C, a, <http://www.w3.org/2002/07/owl#Class>)", "limit": 1}`)
	assert.Len(t, got.Results, 1)

	got = query(`{"query": "  "}`)
	assert.Empty(t, got.Results)

	w := do(t, srv, http.MethodPost, "/v1/query?project=pizza", `{"query": "edges(A, B)"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	w = do(t, srv, http.MethodPost, "/v1/query?project=pizza", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestGraph(t *testing.T) {
	srv := setupTestServer(t)
	do(t, srv, http.MethodPost, "/v1/triples?project=pizza", pizza)

	w := do(t, srv, http.MethodGet, "/v1/graph?project=pizza", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var g export.D3Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "A", g.Nodes[0].Name)
	assert.Equal(t, "Class", g.Nodes[0].Kind)
	assert.Equal(t, []export.D3Link{{
		Source:   "http://example.org/A",
		Target:   "http://example.org/B",
		Relation: "SubClassOf",
		Type:     export.LinkSchema,
	}}, g.Links)

	w = do(t, srv, http.MethodGet, "/v1/graph?project=pizza&shape=Declaration", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	g = export.D3Graph{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Links)

	w = do(t, srv, http.MethodGet, "/v1/graph?project=pizza&shape=Bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathAndDescribe(t *testing.T) {
	srv := setupTestServer(t)
	do(t, srv, http.MethodPost, "/v1/triples?project=pizza", pizza)

	w := do(t, srv, http.MethodGet, "/v1/path?project=pizza&start=http://example.org/B&end=http://example.org/A", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var g export.D3Graph
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "http://example.org/B", g.Nodes[0].ID)
	assert.Equal(t, "http://example.org/A", g.Links[0].Source)

	w = do(t, srv, http.MethodGet, "/v1/path?project=pizza&start=http://example.org/B", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/v1/describe?project=pizza&iri=http://example.org/B", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"iri": "http://example.org/B",
		"axioms": [
			"Declaration(Class(<http://example.org/B>))",
			"SubClassOf(<http://example.org/A> <http://example.org/B>)"
		]
	}`, w.Body.String())
}
