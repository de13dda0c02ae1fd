package graph

import (
	"iter"
	"sync"

	"github.com/google/uuid"
)

type index map[Node]map[Node]map[Node]struct{}

func (ix index) put(a, b, c Node) bool {
	l2, ok := ix[a]
	if !ok {
		l2 = make(map[Node]map[Node]struct{})
		ix[a] = l2
	}
	l3, ok := l2[b]
	if !ok {
		l3 = make(map[Node]struct{})
		l2[b] = l3
	}
	if _, ok := l3[c]; ok {
		return false
	}
	l3[c] = struct{}{}
	return true
}

func (ix index) remove(a, b, c Node) bool {
	l2, ok := ix[a]
	if !ok {
		return false
	}
	l3, ok := l2[b]
	if !ok {
		return false
	}
	if _, ok := l3[c]; !ok {
		return false
	}
	delete(l3, c)
	if len(l3) == 0 {
		delete(l2, b)
		if len(l2) == 0 {
			delete(ix, a)
		}
	}
	return true
}

// Mem is an in-memory Graph with SPO, POS and OSP indexes.
// Readers may run concurrently; writers must be serialized by the caller.
type Mem struct {
	mu   sync.RWMutex
	spo  index
	pos  index
	osp  index
	size int

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewMem returns an empty in-memory graph.
func NewMem() *Mem {
	return &Mem{
		spo:       make(index),
		pos:       make(index),
		osp:       make(index),
		listeners: make(map[int]Listener),
	}
}

// Find returns matching triples from a snapshot taken at call time. The index
// is chosen from the bound positions: subject, then predicate, then object.
func (m *Mem) Find(s, p, o Node) iter.Seq[Triple] {
	m.mu.RLock()
	var out []Triple
	switch {
	case !s.IsAny():
		for pp, objs := range m.spo[s] {
			if !p.IsAny() && pp != p {
				continue
			}
			for oo := range objs {
				if o.IsAny() || oo == o {
					out = append(out, Triple{s, pp, oo})
				}
			}
		}
	case !p.IsAny():
		for oo, subs := range m.pos[p] {
			if !o.IsAny() && oo != o {
				continue
			}
			for ss := range subs {
				out = append(out, Triple{ss, p, oo})
			}
		}
	case !o.IsAny():
		for ss, preds := range m.osp[o] {
			for pp := range preds {
				out = append(out, Triple{ss, pp, o})
			}
		}
	default:
		for ss, preds := range m.spo {
			for pp, objs := range preds {
				for oo := range objs {
					out = append(out, Triple{ss, pp, oo})
				}
			}
		}
	}
	m.mu.RUnlock()

	return func(yield func(Triple) bool) {
		for _, t := range out {
			if !yield(t) {
				return
			}
		}
	}
}

func (m *Mem) Contains(t Triple) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.spo[t.S][t.P][t.O]
	return ok
}

func (m *Mem) Add(t Triple) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	added := m.spo.put(t.S, t.P, t.O)
	if added {
		m.pos.put(t.P, t.O, t.S)
		m.osp.put(t.O, t.S, t.P)
		m.size++
	}
	m.mu.Unlock()

	if added {
		for _, l := range m.snapshotListeners() {
			l.OnAdd(t)
		}
	}
	return nil
}

func (m *Mem) Delete(t Triple) error {
	m.mu.Lock()
	removed := m.spo.remove(t.S, t.P, t.O)
	if removed {
		m.pos.remove(t.P, t.O, t.S)
		m.osp.remove(t.O, t.S, t.P)
		m.size--
	}
	m.mu.Unlock()

	if removed {
		for _, l := range m.snapshotListeners() {
			l.OnDelete(t)
		}
	}
	return nil
}

func (m *Mem) Subscribe(l Listener) func() {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.lmu.Lock()
		defer m.lmu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Mem) snapshotListeners() []Listener {
	m.lmu.Lock()
	defer m.lmu.Unlock()
	out := make([]Listener, 0, len(m.listeners))
	for id := 0; id < m.nextID; id++ {
		if l, ok := m.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// NewBlank returns a blank node labelled with a random UUID.
func (m *Mem) NewBlank() Node {
	return Blank("b" + uuid.NewString())
}

func (m *Mem) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}
