package service

import (
	"context"
	"log/slog"

	"github.com/duynguyendang/ontograph/pkg/export"
)

// Pathfinder limits.
const (
	MaxPathDepth    = 50
	MaxVisitedNodes = 2000
)

type step struct {
	to   string
	link export.D3Link
}

// FindShortestPath runs a breadth-first search between two entities over
// the links of the project's axiom graph. Links are followed in either
// direction; the returned graph keeps their original direction. An empty
// graph means no path was found.
func (s *GraphService) FindShortestPath(ctx context.Context, projectID, startID, endID string) (*export.D3Graph, error) {
	full, err := s.ExportGraph(projectID)
	if err != nil {
		return nil, err
	}
	return ShortestPath(ctx, full, startID, endID)
}

// ShortestPath finds the shortest path from startID to endID in g.
func ShortestPath(ctx context.Context, g *export.D3Graph, startID, endID string) (*export.D3Graph, error) {
	adj := make(map[string][]step)
	for _, l := range g.Links {
		adj[l.Source] = append(adj[l.Source], step{to: l.Target, link: l})
		adj[l.Target] = append(adj[l.Target], step{to: l.Source, link: l})
	}

	type path struct {
		nodes []string
		links []export.D3Link
	}
	queue := []path{{nodes: []string{startID}}}
	visited := map[string]bool{startID: true}
	var found *path

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		last := cur.nodes[len(cur.nodes)-1]
		if last == endID {
			found = &cur
			break
		}
		if len(cur.nodes) >= MaxPathDepth {
			continue
		}
		if len(visited) > MaxVisitedNodes {
			slog.Warn("path search limit reached", "visited", len(visited), "start", startID, "end", endID)
			break
		}
		for _, st := range adj[last] {
			if visited[st.to] {
				continue
			}
			visited[st.to] = true
			next := path{
				nodes: append(append([]string(nil), cur.nodes...), st.to),
				links: append(append([]export.D3Link(nil), cur.links...), st.link),
			}
			queue = append(queue, next)
		}
	}

	out := &export.D3Graph{Nodes: []export.D3Node{}, Links: []export.D3Link{}}
	if found == nil {
		slog.Debug("path not found", "start", startID, "end", endID)
		return out, nil
	}

	byID := make(map[string]export.D3Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	for _, id := range found.nodes {
		n, ok := byID[id]
		if !ok {
			n = export.D3Node{ID: id, Name: id}
		}
		out.Nodes = append(out.Nodes, n)
	}
	out.Links = append(out.Links, found.links...)
	return out, nil
}
