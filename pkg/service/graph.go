// Package service implements the project-level graph operations shared by
// the REST and MCP front ends.
package service

import (
	"context"
	"strings"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/datalog"
	"github.com/duynguyendang/ontograph/pkg/export"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// ProjectManager is the part of manager.StoreManager the service needs.
type ProjectManager interface {
	GetProject(projectID string) (*manager.Project, error)
	ListProjects() ([]manager.ProjectMetadata, error)
	Registry() *translate.Registry
}

// GraphService handles query and export operations on projects.
type GraphService struct {
	manager ProjectManager
}

// NewGraphService creates a new GraphService.
func NewGraphService(manager ProjectManager) *GraphService {
	return &GraphService{manager: manager}
}

// ListProjects returns a list of available projects.
func (s *GraphService) ListProjects() ([]manager.ProjectMetadata, error) {
	return s.manager.ListProjects()
}

// QueryResult holds the variables of a query and its bindings rendered as
// N-Triples terms.
type QueryResult struct {
	Vars    []string            `json:"vars"`
	Results []map[string]string `json:"results"`
}

// ExecuteQuery evaluates a triple-pattern query on a project. A positive
// limit caps the number of results.
func (s *GraphService) ExecuteQuery(ctx context.Context, projectID, query string, limit int) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return &QueryResult{Vars: []string{}, Results: []map[string]string{}}, nil
	}
	q, err := datalog.Compile(query)
	if err != nil {
		return nil, err
	}
	p, err := s.manager.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	bindings, err := q.Eval(ctx, p.Graph, limit)
	if err != nil {
		return nil, err
	}
	res := &QueryResult{Vars: q.Vars(), Results: make([]map[string]string, 0, len(bindings))}
	for _, b := range bindings {
		row := make(map[string]string, len(b))
		for v, n := range b {
			row[v] = n.String()
		}
		res.Results = append(res.Results, row)
	}
	return res, nil
}

// Axioms returns the axioms of the given shapes, or of every shape when
// none is given.
func (s *GraphService) Axioms(projectID string, shapes ...owl.Shape) ([]*owl.Axiom, error) {
	p, err := s.manager.GetProject(projectID)
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		shapes = owl.Shapes()
	}
	var out []*owl.Axiom
	for _, sh := range shapes {
		axs, err := p.Cache.Axioms(sh)
		if err != nil {
			return nil, err
		}
		out = append(out, axs...)
	}
	return out, nil
}

// ExportGraph renders the axioms of the given shapes as a D3 graph.
func (s *GraphService) ExportGraph(projectID string, shapes ...owl.Shape) (*export.D3Graph, error) {
	axioms, err := s.Axioms(projectID, shapes...)
	if err != nil {
		return nil, err
	}
	return export.ExportD3(s.manager.Registry().Identities(), axioms), nil
}

// Describe returns every axiom that mentions iri.
func (s *GraphService) Describe(projectID, iri string) ([]*owl.Axiom, error) {
	axioms, err := s.Axioms(projectID)
	if err != nil {
		return nil, err
	}
	needle := owl.IRI(iri).Key()
	var out []*owl.Axiom
	for _, ax := range axioms {
		if strings.Contains(ax.Key(), needle) {
			out = append(out, ax)
		}
	}
	return out, nil
}
