package owl

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// Shape is one of the axiom shapes the translation layer knows how to read
// and write.
type Shape uint8

const (
	Declaration Shape = iota
	AnnotationAssertion
	SubAnnotationPropertyOf
	AnnotationPropertyDomain
	AnnotationPropertyRange
	SubClassOf
	EquivalentClasses
	DisjointClasses
	DisjointUnion
	SubObjectPropertyOf
	SubPropertyChainOf
	EquivalentObjectProperties
	DisjointObjectProperties
	InverseObjectProperties
	ObjectPropertyDomain
	ObjectPropertyRange
	FunctionalObjectProperty
	InverseFunctionalObjectProperty
	ReflexiveObjectProperty
	IrreflexiveObjectProperty
	SymmetricObjectProperty
	AsymmetricObjectProperty
	TransitiveObjectProperty
	SubDataPropertyOf
	EquivalentDataProperties
	DisjointDataProperties
	DataPropertyDomain
	DataPropertyRange
	FunctionalDataProperty
	DatatypeDefinition
	HasKey
	SameIndividual
	DifferentIndividuals
	ClassAssertion
	ObjectPropertyAssertion
	NegativeObjectPropertyAssertion
	DataPropertyAssertion
	NegativeDataPropertyAssertion
	Rule

	NumShapes = int(Rule) + 1
)

// Arity classifies how a shape is laid out in the graph.
type Arity uint8

const (
	// Simple shapes are one head triple plus annotations.
	Simple Arity = iota
	// Compound shapes recurse into nested expressions or group nodes.
	Compound
	// Chained shapes carry an ordered list operand.
	Chained
)

func (a Arity) String() string {
	switch a {
	case Simple:
		return "simple"
	case Compound:
		return "compound"
	case Chained:
		return "chained"
	}
	return fmt.Sprintf("Arity(%d)", a)
}

type shapeInfo struct {
	name     string
	distinct bool
	arity    Arity
	sig      signature
}

var (
	oneObjectProperty = signature{fixed: []role{roleObjectProperty}}
	classSet          = signature{variadic: roleClass, min: 2, set: true}
	objectPropertySet = signature{variadic: roleObjectProperty, min: 2, set: true}
	dataPropertySet   = signature{variadic: roleDataProperty, min: 2, set: true}
	individualSet     = signature{variadic: roleIndividual, min: 2, set: true}
)

var shapeTable = [NumShapes]shapeInfo{
	Declaration:                     {"Declaration", true, Simple, signature{fixed: []role{roleEntity}}},
	AnnotationAssertion:             {"AnnotationAssertion", true, Simple, signature{fixed: []role{roleAnnotationProperty, roleAnnotationSubject, roleAnnotationValue}}},
	SubAnnotationPropertyOf:         {"SubAnnotationPropertyOf", true, Simple, signature{fixed: []role{roleAnnotationProperty, roleAnnotationProperty}}},
	AnnotationPropertyDomain:        {"AnnotationPropertyDomain", true, Simple, signature{fixed: []role{roleAnnotationProperty, roleIRI}}},
	AnnotationPropertyRange:         {"AnnotationPropertyRange", true, Simple, signature{fixed: []role{roleAnnotationProperty, roleIRI}}},
	SubClassOf:                      {"SubClassOf", true, Compound, signature{fixed: []role{roleClass, roleClass}}},
	EquivalentClasses:               {"EquivalentClasses", false, Compound, classSet},
	DisjointClasses:                 {"DisjointClasses", false, Compound, classSet},
	DisjointUnion:                   {"DisjointUnion", true, Chained, signature{fixed: []role{roleNamedClass, roleClassList}}},
	SubObjectPropertyOf:             {"SubObjectPropertyOf", true, Simple, signature{fixed: []role{roleObjectProperty, roleObjectProperty}}},
	SubPropertyChainOf:              {"SubPropertyChainOf", true, Chained, signature{fixed: []role{rolePropertyChain, roleObjectProperty}}},
	EquivalentObjectProperties:      {"EquivalentObjectProperties", false, Compound, objectPropertySet},
	DisjointObjectProperties:        {"DisjointObjectProperties", false, Compound, objectPropertySet},
	InverseObjectProperties:         {"InverseObjectProperties", false, Simple, signature{variadic: roleNamedObjectProperty, min: 2, max: 2, sorted: true}},
	ObjectPropertyDomain:            {"ObjectPropertyDomain", true, Compound, signature{fixed: []role{roleObjectProperty, roleClass}}},
	ObjectPropertyRange:             {"ObjectPropertyRange", true, Compound, signature{fixed: []role{roleObjectProperty, roleClass}}},
	FunctionalObjectProperty:        {"FunctionalObjectProperty", true, Simple, oneObjectProperty},
	InverseFunctionalObjectProperty: {"InverseFunctionalObjectProperty", true, Simple, oneObjectProperty},
	ReflexiveObjectProperty:         {"ReflexiveObjectProperty", true, Simple, oneObjectProperty},
	IrreflexiveObjectProperty:       {"IrreflexiveObjectProperty", true, Simple, oneObjectProperty},
	SymmetricObjectProperty:         {"SymmetricObjectProperty", true, Simple, oneObjectProperty},
	AsymmetricObjectProperty:        {"AsymmetricObjectProperty", true, Simple, oneObjectProperty},
	TransitiveObjectProperty:        {"TransitiveObjectProperty", true, Simple, oneObjectProperty},
	SubDataPropertyOf:               {"SubDataPropertyOf", true, Simple, signature{fixed: []role{roleDataProperty, roleDataProperty}}},
	EquivalentDataProperties:        {"EquivalentDataProperties", false, Compound, dataPropertySet},
	DisjointDataProperties:          {"DisjointDataProperties", false, Compound, dataPropertySet},
	DataPropertyDomain:              {"DataPropertyDomain", true, Compound, signature{fixed: []role{roleDataProperty, roleClass}}},
	DataPropertyRange:               {"DataPropertyRange", true, Compound, signature{fixed: []role{roleDataProperty, roleDataRange}}},
	FunctionalDataProperty:          {"FunctionalDataProperty", true, Simple, signature{fixed: []role{roleDataProperty}}},
	DatatypeDefinition:              {"DatatypeDefinition", true, Compound, signature{fixed: []role{roleDatatype, roleDataRange}}},
	HasKey:                          {"HasKey", true, Chained, signature{fixed: []role{roleClass, roleObjectPropertyList, roleDataPropertyList}}},
	SameIndividual:                  {"SameIndividual", false, Compound, individualSet},
	DifferentIndividuals:            {"DifferentIndividuals", false, Compound, individualSet},
	ClassAssertion:                  {"ClassAssertion", true, Compound, signature{fixed: []role{roleClass, roleIndividual}}},
	ObjectPropertyAssertion:         {"ObjectPropertyAssertion", true, Compound, signature{fixed: []role{roleNamedObjectProperty, roleIndividual, roleIndividual}}},
	NegativeObjectPropertyAssertion: {"NegativeObjectPropertyAssertion", true, Compound, signature{fixed: []role{roleObjectProperty, roleIndividual, roleIndividual}}},
	DataPropertyAssertion:           {"DataPropertyAssertion", true, Compound, signature{fixed: []role{roleDataProperty, roleIndividual, roleLiteral}}},
	NegativeDataPropertyAssertion:   {"NegativeDataPropertyAssertion", true, Compound, signature{fixed: []role{roleDataProperty, roleIndividual, roleLiteral}}},
	Rule:                            {"Rule", true, Compound, signature{fixed: []role{roleBody, roleHead}}},
}

// Shapes returns every shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, NumShapes)
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

func (s Shape) valid() bool { return int(s) < NumShapes }

func (s Shape) String() string {
	if s.valid() {
		return shapeTable[s].name
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// Distinct reports whether exactly one graph encoding produces an axiom of
// this shape. Non-distinct shapes admit pairwise and group encodings of the
// same axiom; their decodings are merged by value.
func (s Shape) Distinct() bool { return s.valid() && shapeTable[s].distinct }

// Arity returns the layout class of the shape.
func (s Shape) Arity() Arity {
	if s.valid() {
		return shapeTable[s].arity
	}
	return Simple
}

// NAry reports whether the shape takes an unordered operand set.
func (s Shape) NAry() bool { return s.valid() && shapeTable[s].sig.set }

// ParseShape resolves a shape name, ignoring case. On failure the error
// suggests the closest known name.
func ParseShape(name string) (Shape, error) {
	best, bestDist := Shape(0), -1
	for _, s := range Shapes() {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
		d := levenshtein.Distance(strings.ToLower(name), strings.ToLower(s.String()), nil)
		if bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}
	if bestDist >= 0 && bestDist <= len(name)/2 {
		return 0, fmt.Errorf("%w: unknown shape %q, did you mean %q?", errors.ErrInvalidInput, name, best)
	}
	return 0, fmt.Errorf("%w: unknown shape %q", errors.ErrInvalidInput, name)
}
