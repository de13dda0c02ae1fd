package translate

import (
	"sort"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/owl"
)

type edge struct{ a, b string }

func newEdge(a, b string) edge {
	if b < a {
		a, b = b, a
	}
	return edge{a, b}
}

// cluster collects the binary axioms of one n-ary shape that carry the same
// annotations.
type cluster struct {
	shape    owl.Shape
	anns     []owl.Annotation
	operands map[string]owl.Object
	edges    map[edge]*owl.Axiom
}

// Compress merges binary axioms of n-ary shapes into larger n-ary axioms
// wherever every pairwise combination of the operands is present with the
// same annotations. Operands are visited in key order and grown greedily
// into cliques; a candidate that cannot join the current clique closes it
// and starts the next one. Pairs left uncovered stay binary. The grouping is
// valid but neither unique nor minimal.
//
// Axioms of other shapes, and n-ary axioms that already have more than two
// operands, are returned unchanged ahead of the compressed groups.
func Compress(axioms []*owl.Axiom) []*owl.Axiom {
	var (
		out      []*owl.Axiom
		order    []string
		clusters = make(map[string]*cluster)
	)
	for _, ax := range axioms {
		if !ax.Shape().NAry() || len(ax.Args()) != 2 {
			out = append(out, ax)
			continue
		}
		id := ax.Shape().String() + "|" + annotationsKey(ax.Annotations())
		c, ok := clusters[id]
		if !ok {
			c = &cluster{
				shape:    ax.Shape(),
				anns:     ax.Annotations(),
				operands: make(map[string]owl.Object),
				edges:    make(map[edge]*owl.Axiom),
			}
			clusters[id] = c
			order = append(order, id)
		}
		a, b := ax.Arg(0), ax.Arg(1)
		c.operands[a.Key()] = a
		c.operands[b.Key()] = b
		c.edges[newEdge(a.Key(), b.Key())] = ax
	}
	for _, id := range order {
		out = append(out, clusters[id].compress()...)
	}
	return out
}

func annotationsKey(anns []owl.Annotation) string {
	keys := make([]string, len(anns))
	for i, a := range anns {
		keys[i] = a.Key()
	}
	return strings.Join(keys, " ")
}

func (c *cluster) compress() []*owl.Axiom {
	nodes := make([]string, 0, len(c.operands))
	for k := range c.operands {
		nodes = append(nodes, k)
	}
	sort.Strings(nodes)

	var (
		cliques [][]string
		cur     []string
	)
	for _, n := range nodes {
		if c.joins(n, cur) {
			cur = append(cur, n)
			continue
		}
		if len(cur) >= 2 {
			cliques = append(cliques, cur)
		}
		cur = []string{n}
	}
	if len(cur) >= 2 {
		cliques = append(cliques, cur)
	}

	var out []*owl.Axiom
	covered := make(map[edge]bool)
	for _, q := range cliques {
		ops := make([]owl.Object, len(q))
		for i, k := range q {
			ops[i] = c.operands[k]
			for _, j := range q[:i] {
				covered[newEdge(j, k)] = true
			}
		}
		out = append(out, owl.MustAxiom(c.shape, ops, c.anns...))
	}

	rest := make([]edge, 0, len(c.edges))
	for e := range c.edges {
		if !covered[e] {
			rest = append(rest, e)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		if rest[i].a != rest[j].a {
			return rest[i].a < rest[j].a
		}
		return rest[i].b < rest[j].b
	})
	for _, e := range rest {
		out = append(out, c.edges[e])
	}
	return out
}

// joins reports whether n is paired with every member of clique.
func (c *cluster) joins(n string, clique []string) bool {
	for _, m := range clique {
		if _, ok := c.edges[newEdge(n, m)]; !ok {
			return false
		}
	}
	return true
}
