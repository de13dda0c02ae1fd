// Package translate maps between RDF triples and OWL axioms. A Registry
// holds one Translator per axiom shape; each translator finds the head
// triples of its shape, decodes the graph fragment below them into axioms
// together with the triples that justify them, and encodes axioms back.
package translate

import (
	"fmt"
	"log/slog"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

// Registry is the immutable table of translators, one per shape.
type Registry struct {
	opts  Options
	ids   *identity.Cache
	table [owl.NumShapes]*translator
}

// NewRegistry builds the translators for every shape. A nil identity cache
// is replaced by one with default sizes.
func NewRegistry(opts Options, ids *identity.Cache) (*Registry, error) {
	if ids == nil {
		var err error
		ids, err = identity.New(identity.DefaultConfig())
		if err != nil {
			return nil, err
		}
	}
	r := &Registry{opts: opts, ids: ids}
	for _, t := range r.translators() {
		t.reg = r
		t.opts = opts
		if r.table[t.shape] != nil {
			return nil, fmt.Errorf("%w: duplicate translator for %s", errors.ErrInternal, t.shape)
		}
		r.table[t.shape] = t
	}
	for _, s := range owl.Shapes() {
		if r.table[s] == nil {
			return nil, fmt.Errorf("%w: no translator for %s", errors.ErrInternal, s)
		}
	}
	return r, nil
}

// Options returns the read options the registry was built with.
func (r *Registry) Options() Options { return r.opts }

// Identities returns the entity cache shared by all translators.
func (r *Registry) Identities() *identity.Cache { return r.ids }

// Get returns the translator for shape.
func (r *Registry) Get(shape owl.Shape) (Translator, error) {
	if int(shape) >= owl.NumShapes || r.table[shape] == nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrTranslatorNotFound, shape)
	}
	return r.table[shape], nil
}

// Translators returns every translator in shape order.
func (r *Registry) Translators() []Translator {
	out := make([]Translator, 0, owl.NumShapes)
	for _, t := range r.table {
		out = append(out, t)
	}
	return out
}

// Load decodes every axiom of one shape asserted locally in g. Decodings
// of the same axiom from different head triples are merged and their
// triple sets united; axioms keep the order in which they were first seen.
func (r *Registry) Load(g graph.Graph, shape owl.Shape) ([]Decoded, error) {
	tr, err := r.Get(shape)
	if err != nil {
		return nil, err
	}
	var (
		out   []Decoded
		index = make(map[string]int)
	)
	for root := range tr.RootStatements(g) {
		ds, err := tr.Decode(g, root)
		if err != nil {
			if r.skippable(err) {
				slog.Warn("skipping unreadable axiom", "shape", shape, "root", root, "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to decode %s at %s: %w", shape, root, err)
		}
		for _, d := range ds {
			if i, ok := index[d.Axiom.Key()]; ok {
				out[i].Triples.Union(d.Triples)
				continue
			}
			index[d.Axiom.Key()] = len(out)
			out = append(out, d)
		}
	}
	slog.Debug("shape loaded", "shape", shape, "axioms", len(out))
	return out, nil
}

// skippable reports whether a decode error may be downgraded to a warning.
func (r *Registry) skippable(err error) bool {
	return r.opts.IgnoreAxiomReadErrors &&
		errors.Is(err, errors.ErrUnsupportedShape) &&
		!errors.Is(err, errors.ErrRecursiveStructure)
}

// Encode writes ax into g with the translator of its shape.
func (r *Registry) Encode(g graph.Graph, ax *owl.Axiom) error {
	if ax == nil {
		return fmt.Errorf("%w: nil axiom", errors.ErrInvalidInput)
	}
	tr, err := r.Get(ax.Shape())
	if err != nil {
		return err
	}
	return tr.Encode(g, ax)
}
