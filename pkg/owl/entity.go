package owl

import (
	"fmt"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// EntityKind is one of the six kinds of named OWL entity.
type EntityKind uint8

const (
	Class EntityKind = iota
	Datatype
	ObjectProperty
	DataProperty
	AnnotationProperty
	NamedIndividual

	NumEntityKinds = int(NamedIndividual) + 1
)

var entityKindNames = [...]string{
	Class:              "Class",
	Datatype:           "Datatype",
	ObjectProperty:     "ObjectProperty",
	DataProperty:       "DataProperty",
	AnnotationProperty: "AnnotationProperty",
	NamedIndividual:    "NamedIndividual",
}

func (k EntityKind) String() string {
	if int(k) < len(entityKindNames) {
		return entityKindNames[k]
	}
	return fmt.Sprintf("EntityKind(%d)", k)
}

// ParseEntityKind resolves a kind name as printed by EntityKind.String.
func ParseEntityKind(name string) (EntityKind, error) {
	for k, n := range entityKindNames {
		if n == name {
			return EntityKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown entity kind %q", errors.ErrInvalidInput, name)
}

// Entity is a named OWL entity. The same IRI may appear as entities of
// several kinds (punning); each is a distinct Entity.
type Entity struct {
	kind EntityKind
	iri  IRI
}

// NewEntity returns an entity of kind k named iri. Use identity.Cache to
// obtain memoized instances.
func NewEntity(k EntityKind, iri IRI) *Entity {
	return &Entity{kind: k, iri: iri}
}

func (e *Entity) Kind() EntityKind { return e.kind }
func (e *Entity) IRI() IRI         { return e.iri }

// Key renders the entity as its IRI; the kind is implied by the operand
// position except in declarations.
func (e *Entity) Key() string    { return e.iri.Key() }
func (e *Entity) String() string { return e.kind.String() + "(" + e.iri.Key() + ")" }
func (*Entity) object()          {}

func isEntity(o Object, k EntityKind) bool {
	e, ok := o.(*Entity)
	return ok && e.kind == k
}
