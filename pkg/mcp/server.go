// Package mcp exposes ontology projects to language-model clients over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/service"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// Resource URIs.
const (
	ProjectsURI = "ontograph://projects"
	ShapesURI   = "ontograph://shapes"
)

// Version is reported to clients during initialization.
const Version = "0.1.0"

const maxToolResults = 50

// MCPServer serves the projects of a ProjectManager.
type MCPServer struct {
	graph *service.GraphService
}

// NewMCPServer creates a server over mgr.
func NewMCPServer(mgr service.ProjectManager) *MCPServer {
	return &MCPServer{graph: service.NewGraphService(mgr)}
}

// Run starts the MCP server on Stdio.
func Run(ctx context.Context, mgr service.ProjectManager) error {
	slog.Info("Starting MCP server on Stdio")
	return server.ServeStdio(NewMCPServer(mgr).Server())
}

// Server builds the protocol server with every resource and tool registered.
func (ms *MCPServer) Server() *server.MCPServer {
	s := server.NewMCPServer(
		"ontograph",
		Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
	)

	// --- Resources ---

	s.AddResource(
		mcp.NewResource(
			ProjectsURI,
			"Projects",
			mcp.WithResourceDescription("Ontology projects available on this server"),
			mcp.WithMIMEType("application/json"),
		),
		ms.handleProjects,
	)
	s.AddResource(
		mcp.NewResource(
			ShapesURI,
			"Axiom Shapes",
			mcp.WithResourceDescription("The axiom shapes that can be read from a project"),
			mcp.WithMIMEType("application/json"),
		),
		ms.handleShapes,
	)

	// --- Tools ---

	s.AddTool(
		mcp.NewTool(
			"get_axioms",
			mcp.WithDescription("List the axioms of one shape in functional syntax."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
			mcp.WithString("shape", mcp.Required(), mcp.Description("Axiom shape, e.g. SubClassOf")),
			mcp.WithBoolean("compress", mcp.Description("Merge pairwise n-ary axioms into groups")),
		),
		ms.handleGetAxioms,
	)
	s.AddTool(
		mcp.NewTool(
			"describe_entity",
			mcp.WithDescription("List every axiom that mentions an entity IRI."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
			mcp.WithString("iri", mcp.Required(), mcp.Description("Absolute IRI of the entity")),
		),
		ms.handleDescribeEntity,
	)
	s.AddTool(
		mcp.NewTool(
			"query",
			mcp.WithDescription("Match triple patterns, e.g. triples(C, a, <http://www.w3.org/2002/07/owl#Class>)."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
			mcp.WithString("query", mcp.Required(), mcp.Description("Conjunction of triples, neq and regex atoms")),
			mcp.WithNumber("limit", mcp.Description("Max number of results (default 50)")),
		),
		ms.handleQuery,
	)
	s.AddTool(
		mcp.NewTool(
			"trace_path",
			mcp.WithDescription("Find the shortest chain of axioms linking two entities."),
			mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
			mcp.WithString("start", mcp.Required(), mcp.Description("Start entity IRI")),
			mcp.WithString("end", mcp.Required(), mcp.Description("End entity IRI")),
		),
		ms.handleTracePath,
	)
	return s
}

// --- Resource Handlers ---

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (ms *MCPServer) handleProjects(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projects, err := ms.graph.ListProjects()
	if err != nil {
		return nil, err
	}
	return jsonResource(request.Params.URI, projects)
}

func (ms *MCPServer) handleShapes(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names := make([]string, 0, owl.NumShapes)
	for _, s := range owl.Shapes() {
		names = append(names, s.String())
	}
	return jsonResource(request.Params.URI, names)
}

// --- Tool Handlers ---

func stringArgs(request mcp.CallToolRequest, names ...string) ([]string, *mcp.CallToolResult) {
	args := request.GetArguments()
	out := make([]string, len(names))
	for i, name := range names {
		v, ok := args[name].(string)
		if !ok || v == "" {
			return nil, mcp.NewToolResultError(name + " argument required")
		}
		out[i] = v
	}
	return out, nil
}

func lines(items []string, empty string) *mcp.CallToolResult {
	if len(items) == 0 {
		return mcp.NewToolResultText(empty)
	}
	if len(items) > maxToolResults {
		items = append(items[:maxToolResults:maxToolResults], "... (truncated)")
	}
	return mcp.NewToolResultText(strings.Join(items, "\n"))
}

func (ms *MCPServer) handleGetAxioms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, bad := stringArgs(request, "project", "shape")
	if bad != nil {
		return bad, nil
	}
	shape, err := owl.ParseShape(args[1])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	axioms, err := ms.graph.Axioms(args[0], shape)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading axioms failed: %v", err)), nil
	}
	if compress, _ := request.GetArguments()["compress"].(bool); compress {
		axioms = translate.Compress(axioms)
	}
	out := make([]string, len(axioms))
	for i, ax := range axioms {
		out[i] = ax.String()
	}
	return lines(out, "No axioms found."), nil
}

func (ms *MCPServer) handleDescribeEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, bad := stringArgs(request, "project", "iri")
	if bad != nil {
		return bad, nil
	}
	axioms, err := ms.graph.Describe(args[0], args[1])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
	}
	out := make([]string, len(axioms))
	for i, ax := range axioms {
		out[i] = ax.String()
	}
	return lines(out, "No axioms mention "+args[1]+"."), nil
}

func (ms *MCPServer) handleQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, bad := stringArgs(request, "project", "query")
	if bad != nil {
		return bad, nil
	}
	limit := maxToolResults
	if l, ok := request.GetArguments()["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}
	res, err := ms.graph.ExecuteQuery(ctx, args[0], args[1], limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}
	out := make([]string, len(res.Results))
	for i, row := range res.Results {
		cols := make([]string, len(res.Vars))
		for j, v := range res.Vars {
			cols[j] = v + "=" + row[v]
		}
		out[i] = strings.Join(cols, " ")
	}
	return lines(out, "No results."), nil
}

func (ms *MCPServer) handleTracePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, bad := stringArgs(request, "project", "start", "end")
	if bad != nil {
		return bad, nil
	}
	g, err := ms.graph.FindShortestPath(ctx, args[0], args[1], args[2])
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("pathfinding failed: %v", err)), nil
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to marshal graph"), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
