package graph

import (
	"iter"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// Union is a read view over a base graph and its imports. Writes, blank node
// allocation and subscriptions go to the base graph only.
type Union struct {
	base    Graph
	imports []Graph
}

// NewUnion combines base with imported graphs.
func NewUnion(base Graph, imports ...Graph) *Union {
	return &Union{base: base, imports: imports}
}

// Base returns the graph-local part of the union.
func (u *Union) Base() Graph { return u.base }

func (u *Union) Find(s, p, o Node) iter.Seq[Triple] {
	return func(yield func(Triple) bool) {
		seen := make(map[Triple]struct{})
		for _, g := range append([]Graph{u.base}, u.imports...) {
			for t := range g.Find(s, p, o) {
				if _, dup := seen[t]; dup {
					continue
				}
				seen[t] = struct{}{}
				if !yield(t) {
					return
				}
			}
		}
	}
}

func (u *Union) Contains(t Triple) bool {
	if u.base.Contains(t) {
		return true
	}
	for _, g := range u.imports {
		if g.Contains(t) {
			return true
		}
	}
	return false
}

func (u *Union) Add(t Triple) error                   { return u.base.Add(t) }
func (u *Union) Delete(t Triple) error                { return u.base.Delete(t) }
func (u *Union) Subscribe(l Listener) (cancel func()) { return u.base.Subscribe(l) }
func (u *Union) NewBlank() Node                       { return u.base.NewBlank() }

func (u *Union) Len() int {
	n := 0
	for range u.Find(Any, Any, Any) {
		n++
	}
	return n
}

type readOnly struct {
	Graph
}

// ReadOnly wraps g so that Add and Delete fail with ErrModificationDenied.
func ReadOnly(g Graph) Graph {
	return readOnly{Graph: g}
}

func (r readOnly) Base() Graph { return r.Graph }

func (r readOnly) Add(t Triple) error {
	return errors.Denied("add " + t.String())
}

func (r readOnly) Delete(t Triple) error {
	return errors.Denied("delete " + t.String())
}
