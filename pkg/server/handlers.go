package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// ShapeInfo describes one axiom shape.
type ShapeInfo struct {
	Name     string `json:"name"`
	Arity    string `json:"arity"`
	Distinct bool   `json:"distinct"`
	NAry     bool   `json:"nary"`
}

// AxiomResponse is one cached axiom.
type AxiomResponse struct {
	Axiom   string   `json:"axiom"`
	Triples []string `json:"triples,omitempty"`
}

// TripleResponse is one triple with its terms in N-Triples syntax.
type TripleResponse struct {
	S string `json:"s"`
	P string `json:"p"`
	O string `json:"o"`
}

// DefaultQueryLimit caps query results when the request sets no limit.
const DefaultQueryLimit = 1000

func handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message, "detail": err.Error()})
}

// project resolves the ?project= parameter.
func (s *Server) project(c *gin.Context) (*manager.Project, bool) {
	id := c.Query("project")
	if id == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing project ID", nil))
		return nil, false
	}
	p, err := s.manager.GetProject(id)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	return p, true
}

// handleProjects returns a list of available projects.
func (s *Server) handleProjects(c *gin.Context) {
	projects, err := s.manager.ListProjects()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// handleCreateProject creates an empty project.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req manager.ProjectMetadata
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}
	if _, err := s.manager.CreateProject(req); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// handleShapes lists the axiom shapes the translators understand.
func (s *Server) handleShapes(c *gin.Context) {
	shapes := make([]ShapeInfo, 0, owl.NumShapes)
	for _, sh := range owl.Shapes() {
		shapes = append(shapes, ShapeInfo{
			Name:     sh.String(),
			Arity:    sh.Arity().String(),
			Distinct: sh.Distinct(),
			NAry:     sh.NAry(),
		})
	}
	c.JSON(http.StatusOK, shapes)
}

// handleAxioms returns the axioms of one shape. ?compress=true regroups
// binary n-ary axioms, ?triples=true includes each axiom's triples.
func (s *Server) handleAxioms(c *gin.Context) {
	shape, err := owl.ParseShape(c.Param("shape"))
	if err != nil {
		handleError(c, err)
		return
	}
	p, ok := s.project(c)
	if !ok {
		return
	}
	axioms, err := p.Cache.Axioms(shape)
	if err != nil {
		handleError(c, err)
		return
	}

	withTriples := c.Query("triples") == "true"
	if c.Query("compress") == "true" {
		axioms = translate.Compress(axioms)
		withTriples = false
	}

	out := make([]AxiomResponse, 0, len(axioms))
	for _, ax := range axioms {
		r := AxiomResponse{Axiom: ax.String()}
		if withTriples {
			ts, err := p.Cache.TriplesOf(ax)
			if err != nil {
				handleError(c, err)
				return
			}
			for _, t := range ts.Sorted() {
				r.Triples = append(r.Triples, t.String())
			}
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, gin.H{"shape": shape.String(), "count": len(out), "axioms": out})
}

// handleTriples matches a triple pattern. Each of ?s, ?p and ?o is an
// N-Triples term; omitted positions match anything. ?format=ntriples
// returns the whole graph as N-Triples.
func (s *Server) handleTriples(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	if c.Query("format") == "ntriples" {
		c.Header("Content-Type", "application/n-triples")
		c.Status(http.StatusOK)
		if err := graph.WriteNTriples(c.Writer, p.Graph); err != nil {
			_ = c.Error(err)
		}
		return
	}

	var pat [3]graph.Node
	for i, name := range []string{"s", "p", "o"} {
		pat[i] = graph.Any
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			n, err := graph.ParseNode(v)
			if err != nil {
				handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid term for "+name, err))
				return
			}
			pat[i] = n
		}
	}

	out := []TripleResponse{}
	for t := range p.Graph.Find(pat[0], pat[1], pat[2]) {
		out = append(out, TripleResponse{S: t.S.String(), P: t.P.String(), O: t.O.String()})
	}
	c.JSON(http.StatusOK, out)
}

// handleAddTriples adds the N-Triples in the request body.
func (s *Server) handleAddTriples(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	n, err := graph.ReadNTriples(c.Request.Body, p.Graph)
	if err != nil {
		if errors.Is(err, errors.ErrModificationDenied) {
			handleError(c, err)
			return
		}
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid N-Triples", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": n, "triples": p.Graph.Len()})
}

// handleDeleteTriples deletes the N-Triples in the request body.
func (s *Server) handleDeleteTriples(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	doomed := graph.NewMem()
	if _, err := graph.ReadNTriples(c.Request.Body, doomed); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid N-Triples", err))
		return
	}
	deleted := 0
	for t := range doomed.Find(graph.Any, graph.Any, graph.Any) {
		if !p.Graph.Contains(t) {
			continue
		}
		if err := p.Graph.Delete(t); err != nil {
			handleError(c, err)
			return
		}
		deleted++
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "triples": p.Graph.Len()})
}

// handleStats reports the size of a project and the cache state.
func (s *Server) handleStats(c *gin.Context) {
	p, ok := s.project(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"project":    p.ID,
		"triples":    p.Graph.Len(),
		"cache":      p.Cache.Stats(),
		"identities": s.manager.Registry().Identities().Stats(),
	})
}

// handleQuery evaluates a triple-pattern query. Each result maps variable
// names to N-Triples terms.
func (s *Server) handleQuery(c *gin.Context) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}
	projectID := c.Query("project")
	if projectID == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing project ID", nil))
		return
	}
	if req.Limit <= 0 {
		req.Limit = DefaultQueryLimit
	}
	res, err := s.graphService.ExecuteQuery(c.Request.Context(), projectID, req.Query, req.Limit)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleGraph renders the axioms of a project as a D3 graph. Repeated
// ?shape= parameters restrict the shapes; all shapes are used by default.
func (s *Server) handleGraph(c *gin.Context) {
	var shapes []owl.Shape
	for _, name := range c.QueryArray("shape") {
		sh, err := owl.ParseShape(name)
		if err != nil {
			handleError(c, err)
			return
		}
		shapes = append(shapes, sh)
	}
	projectID := c.Query("project")
	if projectID == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing project ID", nil))
		return
	}
	g, err := s.graphService.ExportGraph(projectID, shapes...)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// handlePath returns the shortest path between two entity IRIs.
func (s *Server) handlePath(c *gin.Context) {
	projectID := c.Query("project")
	start, end := c.Query("start"), c.Query("end")
	if projectID == "" || start == "" || end == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing project, start or end", nil))
		return
	}
	g, err := s.graphService.FindShortestPath(c.Request.Context(), projectID, start, end)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// handleDescribe lists the axioms that mention ?iri=.
func (s *Server) handleDescribe(c *gin.Context) {
	projectID, iri := c.Query("project"), c.Query("iri")
	if projectID == "" || iri == "" {
		handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing project or iri", nil))
		return
	}
	axioms, err := s.graphService.Describe(projectID, iri)
	if err != nil {
		handleError(c, err)
		return
	}
	out := make([]string, len(axioms))
	for i, ax := range axioms {
		out[i] = ax.String()
	}
	c.JSON(http.StatusOK, gin.H{"iri": iri, "axioms": out})
}
