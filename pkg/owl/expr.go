package owl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// ExprKind tags the variant held by an Expr.
type ExprKind uint8

const (
	// Class expressions
	ObjectIntersectionOf ExprKind = iota
	ObjectUnionOf
	ObjectComplementOf
	ObjectOneOf
	ObjectSomeValuesFrom
	ObjectAllValuesFrom
	ObjectHasValue
	ObjectHasSelf
	ObjectMinCardinality
	ObjectMaxCardinality
	ObjectExactCardinality
	DataSomeValuesFrom
	DataAllValuesFrom
	DataHasValue
	DataMinCardinality
	DataMaxCardinality
	DataExactCardinality

	// Object property expression
	ObjectInverseOf

	// Data ranges
	DataIntersectionOf
	DataUnionOf
	DataComplementOf
	DataOneOf
	DatatypeRestriction
	FacetRestriction

	// SWRL
	ClassAtom
	DataRangeAtom
	ObjectPropertyAtom
	DataPropertyAtom
	BuiltInAtom
	SameIndividualAtom
	DifferentIndividualsAtom
	Variable
	Body
	Head

	// Seq is an ordered operand list (property chains, keys, disjoint unions).
	Seq

	numExprKinds
)

var exprKindNames = [...]string{
	ObjectIntersectionOf:     "ObjectIntersectionOf",
	ObjectUnionOf:            "ObjectUnionOf",
	ObjectComplementOf:       "ObjectComplementOf",
	ObjectOneOf:              "ObjectOneOf",
	ObjectSomeValuesFrom:     "ObjectSomeValuesFrom",
	ObjectAllValuesFrom:      "ObjectAllValuesFrom",
	ObjectHasValue:           "ObjectHasValue",
	ObjectHasSelf:            "ObjectHasSelf",
	ObjectMinCardinality:     "ObjectMinCardinality",
	ObjectMaxCardinality:     "ObjectMaxCardinality",
	ObjectExactCardinality:   "ObjectExactCardinality",
	DataSomeValuesFrom:       "DataSomeValuesFrom",
	DataAllValuesFrom:        "DataAllValuesFrom",
	DataHasValue:             "DataHasValue",
	DataMinCardinality:       "DataMinCardinality",
	DataMaxCardinality:       "DataMaxCardinality",
	DataExactCardinality:     "DataExactCardinality",
	ObjectInverseOf:          "ObjectInverseOf",
	DataIntersectionOf:       "DataIntersectionOf",
	DataUnionOf:              "DataUnionOf",
	DataComplementOf:         "DataComplementOf",
	DataOneOf:                "DataOneOf",
	DatatypeRestriction:      "DatatypeRestriction",
	FacetRestriction:         "FacetRestriction",
	ClassAtom:                "ClassAtom",
	DataRangeAtom:            "DataRangeAtom",
	ObjectPropertyAtom:       "ObjectPropertyAtom",
	DataPropertyAtom:         "DataPropertyAtom",
	BuiltInAtom:              "BuiltInAtom",
	SameIndividualAtom:       "SameIndividualAtom",
	DifferentIndividualsAtom: "DifferentIndividualsAtom",
	Variable:                 "Variable",
	Body:                     "Body",
	Head:                     "Head",
	Seq:                      "",
}

func (k ExprKind) String() string {
	if k < numExprKinds {
		return exprKindNames[k]
	}
	return fmt.Sprintf("ExprKind(%d)", k)
}

// IsClassExpression reports whether k builds an anonymous class expression.
func (k ExprKind) IsClassExpression() bool { return k <= DataExactCardinality }

// IsDataRange reports whether k builds an anonymous data range.
func (k ExprKind) IsDataRange() bool { return k >= DataIntersectionOf && k <= DatatypeRestriction }

// IsAtom reports whether k builds a SWRL atom.
func (k ExprKind) IsAtom() bool { return k >= ClassAtom && k <= DifferentIndividualsAtom }

// IsCardinality reports whether k carries a cardinality.
func (k ExprKind) IsCardinality() bool {
	switch k {
	case ObjectMinCardinality, ObjectMaxCardinality, ObjectExactCardinality,
		DataMinCardinality, DataMaxCardinality, DataExactCardinality:
		return true
	}
	return false
}

var exprSignatures = [numExprKinds]signature{
	ObjectIntersectionOf:     {variadic: roleClass, min: 2, set: true},
	ObjectUnionOf:            {variadic: roleClass, min: 2, set: true},
	ObjectComplementOf:       {fixed: []role{roleClass}},
	ObjectOneOf:              {variadic: roleIndividual, min: 1, set: true},
	ObjectSomeValuesFrom:     {fixed: []role{roleObjectProperty, roleClass}},
	ObjectAllValuesFrom:      {fixed: []role{roleObjectProperty, roleClass}},
	ObjectHasValue:           {fixed: []role{roleObjectProperty, roleIndividual}},
	ObjectHasSelf:            {fixed: []role{roleObjectProperty}},
	ObjectMinCardinality:     {fixed: []role{roleObjectProperty}, variadic: roleClass, max: 1},
	ObjectMaxCardinality:     {fixed: []role{roleObjectProperty}, variadic: roleClass, max: 1},
	ObjectExactCardinality:   {fixed: []role{roleObjectProperty}, variadic: roleClass, max: 1},
	DataSomeValuesFrom:       {fixed: []role{roleDataProperty, roleDataRange}},
	DataAllValuesFrom:        {fixed: []role{roleDataProperty, roleDataRange}},
	DataHasValue:             {fixed: []role{roleDataProperty, roleLiteral}},
	DataMinCardinality:       {fixed: []role{roleDataProperty}, variadic: roleDataRange, max: 1},
	DataMaxCardinality:       {fixed: []role{roleDataProperty}, variadic: roleDataRange, max: 1},
	DataExactCardinality:     {fixed: []role{roleDataProperty}, variadic: roleDataRange, max: 1},
	ObjectInverseOf:          {fixed: []role{roleNamedObjectProperty}},
	DataIntersectionOf:       {variadic: roleDataRange, min: 2, set: true},
	DataUnionOf:              {variadic: roleDataRange, min: 2, set: true},
	DataComplementOf:         {fixed: []role{roleDataRange}},
	DataOneOf:                {variadic: roleLiteral, min: 1, set: true},
	DatatypeRestriction:      {fixed: []role{roleDatatype}, variadic: roleFacet, min: 1, set: true},
	FacetRestriction:         {fixed: []role{roleFacetIRI, roleLiteral}},
	ClassAtom:                {fixed: []role{roleClass, roleIArg}},
	DataRangeAtom:            {fixed: []role{roleDataRange, roleDArg}},
	ObjectPropertyAtom:       {fixed: []role{roleObjectProperty, roleIArg, roleIArg}},
	DataPropertyAtom:         {fixed: []role{roleDataProperty, roleIArg, roleDArg}},
	BuiltInAtom:              {fixed: []role{roleIRI}, variadic: roleArg, min: 1},
	SameIndividualAtom:       {fixed: []role{roleIArg, roleIArg}},
	DifferentIndividualsAtom: {fixed: []role{roleIArg, roleIArg}},
	Variable:                 {fixed: []role{roleIRI}},
	Body:                     {variadic: roleAtom, set: true},
	Head:                     {variadic: roleAtom, set: true},
	Seq:                      {variadic: roleAny},
}

// Expr is an anonymous structured operand: a class expression, an inverse
// object property, a data range, a facet restriction, a SWRL atom or
// variable, a rule body or head, or an ordered operand list.
type Expr struct {
	kind ExprKind
	args []Object
	n    int
	key  string
}

// NewExpr builds an expression of kind k, validating operand kinds and
// counts. Set-valued operands are sorted and de-duplicated.
func NewExpr(k ExprKind, args ...Object) (*Expr, error) {
	if k >= numExprKinds {
		return nil, fmt.Errorf("%w: unknown expression kind %d", errors.ErrInvalidInput, k)
	}
	if k.IsCardinality() {
		return nil, fmt.Errorf("%w: %s needs a cardinality, use NewCardinality", errors.ErrInvalidInput, k)
	}
	return newExpr(k, 0, args)
}

// NewCardinality builds a cardinality restriction with an optional filler.
func NewCardinality(k ExprKind, n int, args ...Object) (*Expr, error) {
	if !k.IsCardinality() {
		return nil, fmt.Errorf("%w: %s is not a cardinality restriction", errors.ErrInvalidInput, k)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative cardinality %d", errors.ErrInvalidInput, n)
	}
	return newExpr(k, n, args)
}

// MustExpr is NewExpr that panics on invalid operands.
func MustExpr(k ExprKind, args ...Object) *Expr {
	e, err := NewExpr(k, args...)
	if err != nil {
		panic(err)
	}
	return e
}

func newExpr(k ExprKind, n int, args []Object) (*Expr, error) {
	norm, err := exprSignatures[k].check(k.String(), args)
	if err != nil {
		return nil, err
	}
	e := &Expr{kind: k, args: norm, n: n}
	e.key = e.render()
	return e, nil
}

func (e *Expr) render() string {
	var b strings.Builder
	b.WriteString(e.kind.String())
	b.WriteByte('(')
	sep := ""
	if e.kind.IsCardinality() {
		b.WriteString(strconv.Itoa(e.n))
		sep = " "
	}
	for _, a := range e.args {
		b.WriteString(sep)
		b.WriteString(a.Key())
		sep = " "
	}
	b.WriteByte(')')
	return b.String()
}

func (e *Expr) Kind() ExprKind { return e.kind }

// Args returns the operands. The slice must not be modified.
func (e *Expr) Args() []Object { return e.args }

// Arg returns the i-th operand, or nil if there is none.
func (e *Expr) Arg(i int) Object {
	if i < len(e.args) {
		return e.args[i]
	}
	return nil
}

// Cardinality returns the cardinality of a cardinality restriction.
func (e *Expr) Cardinality() int { return e.n }

// Qualified reports whether a cardinality restriction carries a filler.
func (e *Expr) Qualified() bool { return e.kind.IsCardinality() && len(e.args) == 2 }

func (e *Expr) Key() string    { return e.key }
func (e *Expr) String() string { return e.key }
func (*Expr) object()          {}

func isExpr(o Object, pred func(ExprKind) bool) bool {
	e, ok := o.(*Expr)
	return ok && pred(e.kind)
}

func isExprKind(o Object, k ExprKind) bool {
	e, ok := o.(*Expr)
	return ok && e.kind == k
}

// Facet builds FacetRestriction(facet value).
func Facet(facet IRI, value Literal) (*Expr, error) {
	if !vocab.IsFacet(string(facet)) {
		return nil, fmt.Errorf("%w: %s is not a facet", errors.ErrInvalidInput, facet)
	}
	return NewExpr(FacetRestriction, facet, value)
}
