// Package export renders axioms as a D3 force-directed graph: named
// entities and anonymous individuals become nodes, and axioms relating two
// of them become links.
package export

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

// Link types.
const (
	LinkSchema    = "schema"
	LinkAssertion = "assertion"
)

// D3Node represents a node in the D3 force-directed graph.
type D3Node struct {
	ID       string            `json:"id"`                 // IRI or blank node label
	Name     string            `json:"name"`               // Local name
	Kind     string            `json:"kind,omitempty"`     // e.g. "Class", "NamedIndividual"
	Group    string            `json:"group,omitempty"`    // Namespace
	Metadata map[string]string `json:"metadata,omitempty"` // Annotation and data values
}

// D3Link represents a link/edge in the D3 force-directed graph.
type D3Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
	Type     string `json:"type"` // "schema" or "assertion"
}

// D3Graph represents the full graph structure for D3.js.
type D3Graph struct {
	Nodes []D3Node `json:"nodes"`
	Links []D3Link `json:"links"`
}

// D3Transformer handles the conversion of axioms to D3 graph format.
type D3Transformer struct {
	ids   *identity.Cache
	nodes map[string]*D3Node
	links map[D3Link]struct{}
}

// NewD3Transformer creates a transformer that names nodes through ids.
func NewD3Transformer(ids *identity.Cache) *D3Transformer {
	return &D3Transformer{ids: ids}
}

// Transform converts axioms into a D3Graph. Axioms whose operands are
// anonymous expressions contribute only the nodes they declare.
func (t *D3Transformer) Transform(axioms []*owl.Axiom) *D3Graph {
	t.nodes = make(map[string]*D3Node)
	t.links = make(map[D3Link]struct{})

	for _, ax := range axioms {
		args := ax.Args()
		switch s := ax.Shape(); s {
		case owl.Declaration:
			t.node(args[0])
		case owl.AnnotationAssertion:
			t.annotate(args[0], args[1], args[2])
		case owl.ClassAssertion:
			t.link(args[1], args[0], s.String(), LinkAssertion)
		case owl.ObjectPropertyAssertion, owl.NegativeObjectPropertyAssertion:
			rel := t.name(args[0])
			if s == owl.NegativeObjectPropertyAssertion {
				rel = "not " + rel
			}
			t.link(args[1], args[2], rel, LinkAssertion)
		case owl.DataPropertyAssertion:
			t.annotate(args[0], args[1], args[2])
		case owl.SameIndividual, owl.DifferentIndividuals:
			for _, o := range args[1:] {
				t.link(args[0], o, s.String(), LinkAssertion)
			}
		default:
			if s.NAry() {
				for _, o := range args[1:] {
					t.link(args[0], o, s.String(), LinkSchema)
				}
			} else if len(args) == 2 {
				t.link(args[0], args[1], s.String(), LinkSchema)
			}
		}
	}

	g := &D3Graph{
		Nodes: make([]D3Node, 0, len(t.nodes)),
		Links: make([]D3Link, 0, len(t.links)),
	}
	for _, n := range t.nodes {
		g.Nodes = append(g.Nodes, *n)
	}
	for l := range t.links {
		g.Links = append(g.Links, l)
	}
	sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	sort.Slice(g.Links, func(i, j int) bool {
		a, b := g.Links[i], g.Links[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Relation < b.Relation
	})
	return g
}

// node returns the node for o, creating it on first use. Only entities,
// anonymous individuals and bare IRIs have nodes.
func (t *D3Transformer) node(o owl.Object) *D3Node {
	var id, kind string
	switch v := o.(type) {
	case *owl.Entity:
		id, kind = string(v.IRI()), v.Kind().String()
	case owl.IRI:
		id = string(v)
	case owl.AnonymousIndividual:
		id = v.Key()
	default:
		return nil
	}
	n, ok := t.nodes[id]
	if !ok {
		n = &D3Node{ID: id, Name: id}
		if ident, err := t.ids.Parse(id); err == nil && ident.LocalName != "" {
			n.Name, n.Group = ident.LocalName, ident.Namespace
		}
		t.nodes[id] = n
	}
	if n.Kind == "" {
		n.Kind = kind
	}
	return n
}

// name returns the local name of a property without adding it as a node.
func (t *D3Transformer) name(o owl.Object) string {
	e, ok := o.(*owl.Entity)
	if !ok {
		return o.Key()
	}
	if ident, err := t.ids.Parse(string(e.IRI())); err == nil && ident.LocalName != "" {
		return ident.LocalName
	}
	return string(e.IRI())
}

func (t *D3Transformer) link(src, dst owl.Object, relation, typ string) {
	s, d := t.node(src), t.node(dst)
	if s == nil || d == nil {
		return
	}
	t.links[D3Link{Source: s.ID, Target: d.ID, Relation: relation, Type: typ}] = struct{}{}
}

// annotate attaches a literal value to subject as metadata, or links
// subject to an IRI value.
func (t *D3Transformer) annotate(property, subject, value owl.Object) {
	key := t.name(property)
	if lit, ok := value.(owl.Literal); ok {
		n := t.node(subject)
		if n == nil {
			return
		}
		if n.Metadata == nil {
			n.Metadata = make(map[string]string)
		}
		if _, dup := n.Metadata[key]; !dup {
			n.Metadata[key] = lit.Lex
		}
		return
	}
	t.link(subject, value, key, LinkAssertion)
}

// ExportD3 is a convenience wrapper for D3Transformer.
func ExportD3(ids *identity.Cache, axioms []*owl.Axiom) *D3Graph {
	return NewD3Transformer(ids).Transform(axioms)
}

// WriteD3Graph writes the graph as indented JSON.
func WriteD3Graph(w io.Writer, graph *D3Graph) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(graph)
}

// SaveD3Graph writes the graph to a JSON file.
func SaveD3Graph(graph *D3Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteD3Graph(f, graph)
}
