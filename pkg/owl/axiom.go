package owl

import (
	"fmt"
	"strings"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
)

// Axiom is an immutable statement of one shape: operands plus a set of
// annotations. Axioms are content-addressed by Key.
type Axiom struct {
	shape Shape
	args  []Object
	anns  []Annotation
	key   string
}

// NewAxiom validates args against the shape's signature and builds the
// axiom. Operands of n-ary shapes are sorted and de-duplicated.
func NewAxiom(shape Shape, args []Object, anns ...Annotation) (*Axiom, error) {
	if !shape.valid() {
		return nil, fmt.Errorf("%w: unknown shape %d", errors.ErrInvalidInput, shape)
	}
	norm, err := shapeTable[shape].sig.check(shape.String(), args)
	if err != nil {
		return nil, err
	}
	if shape == HasKey && len(norm[1].(*Expr).args)+len(norm[2].(*Expr).args) == 0 {
		return nil, fmt.Errorf("%w: HasKey needs at least one key property", errors.ErrInvalidInput)
	}
	return newAxiom(shape, norm, normalizeAnnotations(anns)), nil
}

// MustAxiom is NewAxiom that panics on invalid operands.
func MustAxiom(shape Shape, args []Object, anns ...Annotation) *Axiom {
	ax, err := NewAxiom(shape, args, anns...)
	if err != nil {
		panic(err)
	}
	return ax
}

func newAxiom(shape Shape, args []Object, anns []Annotation) *Axiom {
	a := &Axiom{shape: shape, args: args, anns: anns}

	var b strings.Builder
	b.WriteString(shape.String())
	b.WriteByte('(')
	b.WriteString(annotationPrefix(anns))
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if e, ok := arg.(*Entity); ok && shape == Declaration {
			b.WriteString(e.String())
			continue
		}
		b.WriteString(arg.Key())
	}
	b.WriteByte(')')
	a.key = b.String()
	return a
}

func (a *Axiom) Shape() Shape { return a.shape }

// Args returns the operands. The slice must not be modified.
func (a *Axiom) Args() []Object { return a.args }

// Arg returns the i-th operand, or nil if there is none.
func (a *Axiom) Arg(i int) Object {
	if i < len(a.args) {
		return a.args[i]
	}
	return nil
}

// Annotations returns the axiom annotations sorted by key.
func (a *Axiom) Annotations() []Annotation { return a.anns }

// IsAnnotated reports whether the axiom carries annotations.
func (a *Axiom) IsAnnotated() bool { return len(a.anns) > 0 }

// WithAnnotations returns a copy of a with anns replacing its annotations.
func (a *Axiom) WithAnnotations(anns ...Annotation) *Axiom {
	return newAxiom(a.shape, a.args, normalizeAnnotations(anns))
}

// Key is the canonical functional-syntax rendering of the axiom.
func (a *Axiom) Key() string    { return a.key }
func (a *Axiom) String() string { return a.key }

// Equal reports structural equality.
func (a *Axiom) Equal(b *Axiom) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key == b.key
}

// Operands returns the operands of an n-ary axiom.
func (a *Axiom) Operands() []Object {
	if a.shape.NAry() || a.shape == InverseObjectProperties {
		return a.args
	}
	return nil
}
