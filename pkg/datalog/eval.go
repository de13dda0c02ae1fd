package datalog

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"unicode"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// Binding maps variable names, without the leading '?', to nodes.
type Binding map[string]graph.Node

type term struct {
	v string
	n graph.Node
}

func (t term) resolve(b Binding) graph.Node {
	if t.v == "" {
		return t.n
	}
	if n, ok := b[t.v]; ok {
		return n
	}
	return graph.Any
}

type pattern [3]term

type filter struct {
	vars []string
	keep func(b Binding) bool
}

// Query is a compiled conjunction of triple patterns and filters.
type Query struct {
	patterns []pattern
	filters  []filter
	vars     []string
}

// Compile parses and checks query.
func Compile(query string) (*Query, error) {
	atoms, err := Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	q, err := compileAtoms(atoms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	return q, nil
}

func compileAtoms(atoms []Atom) (*Query, error) {
	q := &Query{}
	seen := make(map[string]bool)
	for _, a := range atoms {
		switch a.Predicate {
		case "triples":
			if len(a.Args) != 3 {
				return nil, fmt.Errorf("triples takes 3 arguments, got %d", len(a.Args))
			}
			var p pattern
			for i, arg := range a.Args {
				t, err := parseTerm(arg)
				if err != nil {
					return nil, err
				}
				if t.v != "" && !seen[t.v] {
					seen[t.v] = true
					q.vars = append(q.vars, t.v)
				}
				p[i] = t
			}
			q.patterns = append(q.patterns, p)
		case "neq":
			f, err := neq(a.Args)
			if err != nil {
				return nil, err
			}
			q.filters = append(q.filters, f)
		case "regex":
			f, err := regex(a.Args)
			if err != nil {
				return nil, err
			}
			q.filters = append(q.filters, f)
		default:
			return nil, fmt.Errorf("unknown predicate %q", a.Predicate)
		}
	}
	if len(q.patterns) == 0 {
		return nil, fmt.Errorf("query must contain a 'triples' predicate")
	}
	for _, f := range q.filters {
		for _, v := range f.vars {
			if !seen[v] {
				return nil, fmt.Errorf("variable ?%s is not bound by any triples atom", v)
			}
		}
	}
	return q, nil
}

func isVariable(s string) bool {
	if strings.HasPrefix(s, "?") {
		return len(s) > 1
	}
	r := []rune(s)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

func parseTerm(s string) (term, error) {
	switch {
	case isVariable(s):
		return term{v: strings.TrimPrefix(s, "?")}, nil
	case s == "a":
		return term{n: graph.IRI(vocab.RDFType)}, nil
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return term{n: graph.Literal(s[1:len(s)-1], "")}, nil
	}
	n, err := graph.ParseNode(s)
	if err != nil {
		return term{}, fmt.Errorf("invalid term %s: %v", s, err)
	}
	return term{n: n}, nil
}

func neq(args []string) (filter, error) {
	if len(args) != 2 {
		return filter{}, fmt.Errorf("neq takes 2 arguments, got %d", len(args))
	}
	l, err := parseTerm(args[0])
	if err != nil {
		return filter{}, err
	}
	r, err := parseTerm(args[1])
	if err != nil {
		return filter{}, err
	}
	return filter{
		vars: varsOf(l, r),
		keep: func(b Binding) bool { return l.resolve(b) != r.resolve(b) },
	}, nil
}

func regex(args []string) (filter, error) {
	if len(args) != 2 {
		return filter{}, fmt.Errorf("regex takes 2 arguments, got %d", len(args))
	}
	t, err := parseTerm(args[0])
	if err != nil {
		return filter{}, err
	}
	pat := strings.Trim(args[1], "\"'")
	re, err := regexp.Compile(pat)
	if err != nil {
		return filter{}, fmt.Errorf("invalid regex %q: %v", pat, err)
	}
	return filter{
		vars: varsOf(t),
		keep: func(b Binding) bool { return re.MatchString(t.resolve(b).Value) },
	}, nil
}

func varsOf(ts ...term) []string {
	var out []string
	for _, t := range ts {
		if t.v != "" {
			out = append(out, t.v)
		}
	}
	return out
}

// Vars returns the query variables in order of first appearance.
func (q *Query) Vars() []string { return q.vars }

// Eval joins the patterns left to right over g. Each filter runs as soon as
// its variables are bound. A positive limit stops after that many results.
func (q *Query) Eval(ctx context.Context, g graph.Graph, limit int) ([]Binding, error) {
	var out []Binding
	done := func() bool { return limit > 0 && len(out) >= limit }

	var walk func(i int, b Binding) error
	walk = func(i int, b Binding) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, f := range q.filters {
			if bound(b, f.vars) && !f.keep(b) {
				return nil
			}
		}
		if i == len(q.patterns) {
			out = append(out, maps.Clone(b))
			return nil
		}
		p := q.patterns[i]
		for t := range g.Find(p[0].resolve(b), p[1].resolve(b), p[2].resolve(b)) {
			next, ok := extend(b, p, t)
			if !ok {
				continue
			}
			if err := walk(i+1, next); err != nil {
				return err
			}
			if done() {
				return nil
			}
		}
		return nil
	}

	if err := walk(0, Binding{}); err != nil {
		return nil, err
	}
	return out, nil
}

func bound(b Binding, vars []string) bool {
	for _, v := range vars {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

// extend binds the variables of p to the terms of t. A variable used twice
// in p must match the same node both times.
func extend(b Binding, p pattern, t graph.Triple) (Binding, bool) {
	next := maps.Clone(b)
	for i, n := range [3]graph.Node{t.S, t.P, t.O} {
		v := p[i].v
		if v == "" {
			continue
		}
		if prev, ok := next[v]; ok {
			if prev != n {
				return nil, false
			}
			continue
		}
		next[v] = n
	}
	return next, true
}
