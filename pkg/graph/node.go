// Package graph defines the triple graph the axiom layer reads from and writes
// to: RDF terms, triples, the Graph contract with synchronous change
// notification, an in-memory implementation, union and read-only views,
// mutation recording, RDF collections and typed node views.
package graph

import (
	"fmt"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// Kind tags the variant held by a Node.
type Kind uint8

const (
	// KindAny is the zero kind; a Node of this kind is a query wildcard.
	KindAny Kind = iota
	KindIRI
	KindBlank
	KindLiteral
)

// Node is an RDF term. Nodes are plain values and compare with ==.
type Node struct {
	Kind     Kind
	Value    string // IRI, blank label (without "_:") or lexical form
	Datatype string // literals only
	Lang     string // literals only
}

// Any matches every term in Find patterns.
var Any = Node{}

// IRI returns an IRI node.
func IRI(iri string) Node {
	return Node{Kind: KindIRI, Value: iri}
}

// Blank returns a blank node with the given label.
func Blank(label string) Node {
	return Node{Kind: KindBlank, Value: strings.TrimPrefix(label, "_:")}
}

// Literal returns a typed literal. An empty datatype means xsd:string.
func Literal(lex, datatype string) Node {
	if datatype == "" {
		datatype = vocab.XSDString
	}
	return Node{Kind: KindLiteral, Value: lex, Datatype: datatype}
}

// LangLiteral returns a language-tagged string literal.
func LangLiteral(lex, lang string) Node {
	return Node{Kind: KindLiteral, Value: lex, Datatype: vocab.RDFLangString, Lang: strings.ToLower(lang)}
}

func (n Node) IsAny() bool     { return n.Kind == KindAny }
func (n Node) IsIRI() bool     { return n.Kind == KindIRI }
func (n Node) IsBlank() bool   { return n.Kind == KindBlank }
func (n Node) IsLiteral() bool { return n.Kind == KindLiteral }

// Is reports whether n is the IRI iri.
func (n Node) Is(iri string) bool {
	return n.Kind == KindIRI && n.Value == iri
}

// String renders the node as an N-Triples term.
func (n Node) String() string {
	switch n.Kind {
	case KindIRI:
		return "<" + n.Value + ">"
	case KindBlank:
		return "_:" + n.Value
	case KindLiteral:
		lex := `"` + escapeLiteral(n.Value) + `"`
		if n.Lang != "" {
			return lex + "@" + n.Lang
		}
		if n.Datatype == vocab.XSDString {
			return lex
		}
		return lex + "^^<" + n.Datatype + ">"
	}
	return "*"
}

// ParseNode parses a term rendered by Node.String.
func ParseNode(s string) (Node, error) {
	switch {
	case s == "*" || s == "":
		return Any, nil
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return IRI(s[1 : len(s)-1]), nil
	case strings.HasPrefix(s, "_:"):
		return Blank(s[2:]), nil
	case strings.HasPrefix(s, `"`):
		return parseLiteral(s)
	}
	return Node{}, fmt.Errorf("malformed term %q", s)
}

func parseLiteral(s string) (Node, error) {
	var b strings.Builder
	i := 1
	for ; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			break
		}
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	if i >= len(s) {
		return Node{}, fmt.Errorf("unterminated literal %q", s)
	}
	rest := s[i+1:]
	switch {
	case rest == "":
		return Literal(b.String(), ""), nil
	case strings.HasPrefix(rest, "@"):
		return LangLiteral(b.String(), rest[1:]), nil
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		return Literal(b.String(), rest[3:len(rest)-1]), nil
	}
	return Node{}, fmt.Errorf("malformed literal suffix %q", rest)
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

// Triple is a (subject, predicate, object) statement.
type Triple struct {
	S, P, O Node
}

// NewTriple builds a triple.
func NewTriple(s, p, o Node) Triple {
	return Triple{S: s, P: p, O: o}
}

// String renders the triple as an N-Triples statement.
func (t Triple) String() string {
	return t.S.String() + " " + t.P.String() + " " + t.O.String() + " ."
}

// Matches reports whether t fits the pattern; Any positions match everything.
func (t Triple) Matches(s, p, o Node) bool {
	return (s.IsAny() || s == t.S) && (p.IsAny() || p == t.P) && (o.IsAny() || o == t.O)
}

// Validate checks the RDF position rules: no literal subject, IRI predicate,
// no wildcard anywhere.
func (t Triple) Validate() error {
	if t.S.IsAny() || t.P.IsAny() || t.O.IsAny() {
		return fmt.Errorf("triple %s has a wildcard position", t)
	}
	if t.S.IsLiteral() {
		return fmt.Errorf("triple %s has a literal subject", t)
	}
	if !t.P.IsIRI() {
		return fmt.Errorf("triple %s has a non-IRI predicate", t)
	}
	return nil
}
