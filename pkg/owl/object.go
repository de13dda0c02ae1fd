// Package owl is the structural object model of OWL 2 axioms: entities,
// literals, class and data-range expressions, SWRL atoms, annotations and
// the closed catalogue of axiom shapes.
//
// Every value is immutable and carries a canonical key, a functional-syntax
// rendering in which set-valued operands are sorted and de-duplicated. Two
// values are equal exactly when their keys are equal, whatever graph
// encoding produced them.
package owl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knakk/rdf"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// Object is an operand of an axiom or expression.
type Object interface {
	// Key is the canonical rendering used for equality and ordering.
	Key() string
	object()
}

// IRI is an absolute internationalized resource identifier. As an operand it
// is used where OWL takes a bare IRI: annotation subjects and values,
// annotation property domains and ranges, facets and SWRL built-ins.
type IRI string

// ParseIRI validates s as an absolute IRI.
func ParseIRI(s string) (IRI, error) {
	if _, err := rdf.NewIRI(s); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	colon := strings.IndexByte(s, ':')
	if colon <= 0 || !validScheme(s[:colon]) {
		return "", fmt.Errorf("%w: IRI %q is not absolute", errors.ErrInvalidInput, s)
	}
	return IRI(s), nil
}

func validScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

func (i IRI) Key() string    { return "<" + string(i) + ">" }
func (i IRI) String() string { return string(i) }
func (IRI) object()          {}

// AnonymousIndividual is an individual denoted by a blank node label.
type AnonymousIndividual struct {
	Label string
}

func (a AnonymousIndividual) Key() string    { return "_:" + a.Label }
func (a AnonymousIndividual) String() string { return a.Key() }
func (AnonymousIndividual) object()          {}

// Literal is a data value: lexical form plus datatype, or a language tag.
type Literal struct {
	Lex      string
	Datatype IRI
	Lang     string
}

// NewLiteral returns a typed literal; an empty datatype means xsd:string.
func NewLiteral(lex string, datatype IRI) Literal {
	if datatype == "" {
		datatype = vocab.XSDString
	}
	return Literal{Lex: lex, Datatype: datatype}
}

// NewLangLiteral returns a language-tagged string.
func NewLangLiteral(lex, lang string) Literal {
	return Literal{Lex: lex, Datatype: vocab.RDFLangString, Lang: strings.ToLower(lang)}
}

func (l Literal) Key() string {
	q := strconv.Quote(l.Lex)
	switch {
	case l.Lang != "":
		return q + "@" + l.Lang
	case l.Datatype == vocab.XSDString || l.Datatype == "":
		return q
	}
	return q + "^^" + l.Datatype.Key()
}

func (l Literal) String() string { return l.Key() }
func (Literal) object()          {}
