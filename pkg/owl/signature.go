package owl

import (
	"fmt"
	"sort"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

// role is the kind of operand a position accepts.
type role uint8

const (
	roleNone role = iota
	roleAny
	roleClass
	roleNamedClass
	roleObjectProperty
	roleNamedObjectProperty
	roleDataProperty
	roleAnnotationProperty
	roleDataRange
	roleDatatype
	roleIndividual
	roleLiteral
	roleEntity
	roleAnnotationSubject
	roleAnnotationValue
	roleIRI
	roleFacetIRI
	roleFacet
	roleAtom
	roleIArg
	roleDArg
	roleArg
	roleBody
	roleHead
	rolePropertyChain
	roleClassList
	roleObjectPropertyList
	roleDataPropertyList
)

var roleNames = map[role]string{
	roleAny:                 "any operand",
	roleClass:               "class expression",
	roleNamedClass:          "class",
	roleObjectProperty:      "object property expression",
	roleNamedObjectProperty: "object property",
	roleDataProperty:        "data property",
	roleAnnotationProperty:  "annotation property",
	roleDataRange:           "data range",
	roleDatatype:            "datatype",
	roleIndividual:          "individual",
	roleLiteral:             "literal",
	roleEntity:              "entity",
	roleAnnotationSubject:   "IRI or anonymous individual",
	roleAnnotationValue:     "annotation value",
	roleIRI:                 "IRI",
	roleFacetIRI:            "facet",
	roleFacet:               "facet restriction",
	roleAtom:                "SWRL atom",
	roleIArg:                "individual argument",
	roleDArg:                "data argument",
	roleArg:                 "built-in argument",
	roleBody:                "rule body",
	roleHead:                "rule head",
	rolePropertyChain:       "property chain",
	roleClassList:           "class list",
	roleObjectPropertyList:  "object property list",
	roleDataPropertyList:    "data property list",
}

func (r role) String() string { return roleNames[r] }

func (r role) accepts(o Object) bool {
	if o == nil {
		return false
	}
	switch r {
	case roleAny:
		return true
	case roleClass:
		return isEntity(o, Class) || isExpr(o, ExprKind.IsClassExpression)
	case roleNamedClass:
		return isEntity(o, Class)
	case roleObjectProperty:
		return isEntity(o, ObjectProperty) || isExprKind(o, ObjectInverseOf)
	case roleNamedObjectProperty:
		return isEntity(o, ObjectProperty)
	case roleDataProperty:
		return isEntity(o, DataProperty)
	case roleAnnotationProperty:
		return isEntity(o, AnnotationProperty)
	case roleDataRange:
		return isEntity(o, Datatype) || isExpr(o, ExprKind.IsDataRange)
	case roleDatatype:
		return isEntity(o, Datatype)
	case roleIndividual:
		_, anon := o.(AnonymousIndividual)
		return anon || isEntity(o, NamedIndividual)
	case roleLiteral:
		_, ok := o.(Literal)
		return ok
	case roleEntity:
		_, ok := o.(*Entity)
		return ok
	case roleAnnotationSubject:
		switch o.(type) {
		case IRI, AnonymousIndividual:
			return true
		}
	case roleAnnotationValue:
		switch o.(type) {
		case IRI, AnonymousIndividual, Literal:
			return true
		}
	case roleIRI:
		_, ok := o.(IRI)
		return ok
	case roleFacetIRI:
		iri, ok := o.(IRI)
		return ok && vocab.IsFacet(string(iri))
	case roleFacet:
		return isExprKind(o, FacetRestriction)
	case roleAtom:
		return isExpr(o, ExprKind.IsAtom)
	case roleIArg:
		return isExprKind(o, Variable) || roleIndividual.accepts(o)
	case roleDArg:
		return isExprKind(o, Variable) || roleLiteral.accepts(o)
	case roleArg:
		return roleIArg.accepts(o) || roleLiteral.accepts(o)
	case roleBody:
		return isExprKind(o, Body)
	case roleHead:
		return isExprKind(o, Head)
	case rolePropertyChain:
		return seqOf(o, roleObjectProperty, 2)
	case roleClassList:
		return seqOf(o, roleClass, 2)
	case roleObjectPropertyList:
		return seqOf(o, roleObjectProperty, 0)
	case roleDataPropertyList:
		return seqOf(o, roleDataProperty, 0)
	}
	return false
}

func seqOf(o Object, elem role, min int) bool {
	e, ok := o.(*Expr)
	if !ok || e.kind != Seq || len(e.args) < min {
		return false
	}
	for _, a := range e.args {
		if !elem.accepts(a) {
			return false
		}
	}
	return true
}

// signature describes the operands a shape or expression kind accepts:
// fixed leading positions, then zero or more variadic operands.
type signature struct {
	fixed    []role
	variadic role
	min      int  // minimum variadic operands
	max      int  // maximum variadic operands; 0 is unbounded
	set      bool // variadic operands are sorted and de-duplicated
	sorted   bool // variadic operands are sorted but duplicates kept
}

// check validates args and returns them normalized.
func (s signature) check(name string, args []Object) ([]Object, error) {
	if len(args) < len(s.fixed) {
		return nil, fmt.Errorf("%w: %s takes %d leading operands, got %d",
			errors.ErrInvalidInput, name, len(s.fixed), len(args))
	}
	for i, r := range s.fixed {
		if !r.accepts(args[i]) {
			return nil, fmt.Errorf("%w: %s operand %d must be a %s, got %s",
				errors.ErrInvalidInput, name, i+1, r, keyOf(args[i]))
		}
	}

	rest := args[len(s.fixed):]
	if s.variadic == roleNone && len(rest) > 0 {
		return nil, fmt.Errorf("%w: %s takes %d operands, got %d",
			errors.ErrInvalidInput, name, len(s.fixed), len(args))
	}
	for _, a := range rest {
		if !s.variadic.accepts(a) {
			return nil, fmt.Errorf("%w: %s operands must be of kind %s, got %s",
				errors.ErrInvalidInput, name, s.variadic, keyOf(a))
		}
	}

	out := make([]Object, 0, len(args))
	out = append(out, args[:len(s.fixed)]...)
	tail := append([]Object(nil), rest...)
	if s.set || s.sorted {
		sort.SliceStable(tail, func(i, j int) bool { return tail[i].Key() < tail[j].Key() })
	}
	if s.set {
		tail = dedupe(tail)
	}
	if len(tail) < s.min {
		return nil, fmt.Errorf("%w: %s needs at least %d distinct operands, got %d",
			errors.ErrInvalidInput, name, s.min, len(tail))
	}
	if s.max > 0 && len(tail) > s.max {
		return nil, fmt.Errorf("%w: %s takes at most %d operands, got %d",
			errors.ErrInvalidInput, name, s.max, len(tail))
	}
	return append(out, tail...), nil
}

func dedupe(sorted []Object) []Object {
	var out []Object
	for _, o := range sorted {
		if len(out) > 0 && out[len(out)-1].Key() == o.Key() {
			continue
		}
		out = append(out, o)
	}
	return out
}

func keyOf(o Object) string {
	if o == nil {
		return "<nil>"
	}
	return o.Key()
}
