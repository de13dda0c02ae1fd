package datalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    []Atom
		wantErr bool
	}{
		{
			name:  "single triple",
			query: `triples(?c, <http://x/p>, ?d)`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"?c", "<http://x/p>", "?d"}},
			},
		},
		{
			name:  "join",
			query: `triples(A, a, B), triples(B, <http://x/p>, C)`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "a", "B"}},
				{Predicate: "triples", Args: []string{"B", "<http://x/p>", "C"}},
			},
		},
		{
			name:  "inequality sugar",
			query: `triples(A, a, B), A != B`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "a", "B"}},
				{Predicate: "neq", Args: []string{"A", "B"}},
			},
		},
		{
			name:  "regex constraint",
			query: `triples(A, a, B), regex(A, ".*Pizza")`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "a", "B"}},
				{Predicate: "regex", Args: []string{"A", `".*Pizza"`}},
			},
		},
		{
			name:  "quoted args keep their quotes",
			query: `triples(A, 'label', "x, y")`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "'label'", `"x, y"`}},
			},
		},
		{
			name:  "comma inside iri",
			query: `triples(A, <http://x/a,b>, B)`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "<http://x/a,b>", "B"}},
			},
		},
		{
			name:  "head and trailing dot",
			query: `q(A) :- triples(A, a, <http://x/C>).`,
			want: []Atom{
				{Predicate: "triples", Args: []string{"A", "a", "<http://x/C>"}},
			},
		},
		{name: "empty", query: "  ", wantErr: true},
		{name: "missing paren", query: `triples(A, a, B`, wantErr: true},
		{name: "missing predicate", query: `(A, a, B)`, wantErr: true},
		{name: "dangling inequality", query: `A !=`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSmartSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b, c", []string{"a", "b", "c"}},
		{"a, 'b,c', d", []string{"a", "'b,c'", "d"}},
		{`"it's", x`, []string{`"it's"`, "x"}},
		{"f(a, b), g(c)", []string{"f(a, b)", "g(c)"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SmartSplit(tt.in), tt.in)
	}
}
