package owl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// Annotation is a property-value pair attached to an axiom or to another
// annotation.
type Annotation struct {
	property    *Entity
	value       Object
	annotations []Annotation
	key         string
}

// NewAnnotation builds an annotation. value must be an IRI, an anonymous
// individual or a literal.
func NewAnnotation(property *Entity, value Object, nested ...Annotation) (Annotation, error) {
	if !roleAnnotationProperty.accepts(property) {
		return Annotation{}, fmt.Errorf("%w: annotation property expected, got %s", errors.ErrInvalidInput, keyOf(property))
	}
	if !roleAnnotationValue.accepts(value) {
		return Annotation{}, fmt.Errorf("%w: annotation value expected, got %s", errors.ErrInvalidInput, keyOf(value))
	}
	a := Annotation{property: property, value: value, annotations: normalizeAnnotations(nested)}
	a.key = "Annotation(" + annotationPrefix(a.annotations) + property.Key() + " " + value.Key() + ")"
	return a, nil
}

// MustAnnotation is NewAnnotation that panics on invalid operands.
func MustAnnotation(property *Entity, value Object, nested ...Annotation) Annotation {
	a, err := NewAnnotation(property, value, nested...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Annotation) Property() *Entity { return a.property }
func (a Annotation) Value() Object     { return a.value }

// Annotations returns the annotations on this annotation.
func (a Annotation) Annotations() []Annotation { return a.annotations }

func (a Annotation) Key() string    { return a.key }
func (a Annotation) String() string { return a.key }

func normalizeAnnotations(in []Annotation) []Annotation {
	if len(in) == 0 {
		return nil
	}
	out := append([]Annotation(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i].key != out[n-1].key {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

func annotationPrefix(anns []Annotation) string {
	if len(anns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, a := range anns {
		b.WriteString(a.key)
		b.WriteByte(' ')
	}
	return b.String()
}
