// Package axiomcache keeps the axioms of a graph in per-shape buckets and
// keeps them consistent with the graph as axioms are added or removed
// through the cache and as triples are edited directly.
package axiomcache

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// Options configures a Controller.
type Options struct {
	// Concurrent guards each bucket index for parallel readers and collapses
	// concurrent loads of one bucket into a single graph scan. Writes must
	// still be serialized by the caller.
	Concurrent bool `yaml:"concurrent"`
	// KeepOrder lists axioms in insertion order instead of key order.
	KeepOrder bool `yaml:"keep_order"`
	// Registerer receives the cache counters; nil disables them.
	Registerer prometheus.Registerer `yaml:"-"`
}

// Stats describes the cached state.
type Stats struct {
	LoadedBuckets int            `json:"loaded_buckets"`
	Axioms        int            `json:"axioms"`
	Shapes        map[string]int `json:"shapes"`
}

type change struct {
	t     graph.Triple
	added bool
}

// Controller owns one Bucket per shape over a single graph.
//
// A Controller assumes one writer at a time. Every write goes through
// graph.Mutate; notifications raised by the controller's own writes are
// collected and replayed to the other buckets once the write returns.
type Controller struct {
	g       graph.Graph
	reg     *translate.Registry
	opts    Options
	buckets [owl.NumShapes]*Bucket
	metrics *metrics
	cancel  func()

	writing bool
	pending []change
}

// New builds a controller over g and subscribes it to g's changes.
func New(g graph.Graph, reg *translate.Registry, opts Options) *Controller {
	c := &Controller{
		g:       g,
		reg:     reg,
		opts:    opts,
		metrics: newMetrics(opts.Registerer),
	}
	for i, tr := range reg.Translators() {
		c.buckets[i] = newBucket(c, tr)
	}
	c.cancel = g.Subscribe(graph.ListenerFuncs{
		Added:   func(t graph.Triple) { c.notify(change{t: t, added: true}) },
		Deleted: func(t graph.Triple) { c.notify(change{t: t}) },
	})
	return c
}

// Close detaches the controller from the graph.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Graph returns the graph the controller mirrors.
func (c *Controller) Graph() graph.Graph { return c.g }

// Registry returns the translators in use.
func (c *Controller) Registry() *translate.Registry { return c.reg }

// Bucket returns the bucket for shape.
func (c *Controller) Bucket(shape owl.Shape) (*Bucket, error) {
	if _, err := c.reg.Get(shape); err != nil {
		return nil, err
	}
	return c.buckets[shape], nil
}

func (c *Controller) bucketOf(ax *owl.Axiom) (*Bucket, error) {
	if ax == nil {
		return nil, fmt.Errorf("%w: nil axiom", errors.ErrInvalidInput)
	}
	return c.Bucket(ax.Shape())
}

// Axioms returns every axiom of shape asserted in the graph.
func (c *Controller) Axioms(shape owl.Shape) ([]*owl.Axiom, error) {
	b, err := c.Bucket(shape)
	if err != nil {
		return nil, err
	}
	return b.Objects()
}

// Contains reports whether ax is asserted in the graph.
func (c *Controller) Contains(ax *owl.Axiom) (bool, error) {
	b, err := c.bucketOf(ax)
	if err != nil {
		return false, err
	}
	return b.Contains(ax)
}

// TriplesOf returns the triples that make up ax.
func (c *Controller) TriplesOf(ax *owl.Axiom) (translate.TripleSet, error) {
	b, err := c.bucketOf(ax)
	if err != nil {
		return nil, err
	}
	return b.TriplesOf(ax)
}

// Add writes ax into the graph.
func (c *Controller) Add(ax *owl.Axiom) error {
	b, err := c.bucketOf(ax)
	if err != nil {
		return err
	}
	return b.Add(ax)
}

// Remove deletes ax from the graph, keeping triples other axioms still use.
func (c *Controller) Remove(ax *owl.Axiom) error {
	b, err := c.bucketOf(ax)
	if err != nil {
		return err
	}
	return b.Remove(ax)
}

// CanDelete reports whether no cached axiom of any shape owns t. Buckets
// that are not loaded yet are loaded first.
func (c *Controller) CanDelete(t graph.Triple) (bool, error) {
	for _, b := range c.buckets {
		if err := b.load(); err != nil {
			return false, err
		}
		if b.index.owned(t) {
			return false, nil
		}
	}
	return true, nil
}

// Invalidate drops every bucket that t can affect.
func (c *Controller) Invalidate(t graph.Triple) {
	for _, b := range c.buckets {
		b.Invalidate(t)
	}
}

// Clear drops every bucket.
func (c *Controller) Clear() {
	for _, b := range c.buckets {
		b.Clear()
	}
}

// Stats reports the loaded buckets without loading any.
func (c *Controller) Stats() Stats {
	st := Stats{Shapes: make(map[string]int)}
	for _, b := range c.buckets {
		if !b.IsLoaded() {
			continue
		}
		n := b.Len()
		st.LoadedBuckets++
		st.Axioms += n
		st.Shapes[b.Shape().String()] = n
	}
	return st
}

// write runs op through graph.Mutate on behalf of origin. Changes the graph
// reported meanwhile are replayed to every loaded bucket afterwards, except
// that origin does not see the triples op wrote itself.
func (c *Controller) write(origin *Bucket, op func(graph.Graph) error) (graph.ChangeSet, error) {
	c.writing = true
	cs, err := graph.Mutate(c.g, op)
	c.writing = false

	pending := c.pending
	c.pending = nil
	own := translate.NewTripleSet(cs.Added...).Union(translate.NewTripleSet(cs.Removed...))
	for _, ch := range pending {
		for _, b := range c.buckets {
			if b == origin && own.Has(ch.t) {
				continue
			}
			c.dispatch(b, ch)
		}
	}
	return cs, err
}

func (c *Controller) notify(ch change) {
	if c.writing {
		c.pending = append(c.pending, ch)
		return
	}
	slog.Debug("external graph change", "triple", ch.t, "added", ch.added)
	for _, b := range c.buckets {
		c.dispatch(b, ch)
	}
}

func (c *Controller) dispatch(b *Bucket, ch change) {
	if !b.IsLoaded() {
		return
	}
	if ch.added {
		b.added(ch.t)
	} else {
		b.deleted(ch.t)
	}
}
