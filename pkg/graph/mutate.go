package graph

// ChangeSet is the exact delta produced by one Mutate call.
type ChangeSet struct {
	// Added lists every triple the operation asserted, in call order, whether
	// or not the graph already held it.
	Added []Triple
	// Removed lists every triple the operation retracted, in call order.
	Removed []Triple
}

// Empty reports whether the operation touched no triples.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Mutate runs op against a recording view of g and returns what op wrote.
// If op fails part-way, the returned ChangeSet still describes the writes
// that reached g before the failure; nothing is rolled back.
func Mutate(g Graph, op func(Graph) error) (ChangeSet, error) {
	rec := &recorder{Graph: g}
	err := op(rec)
	return rec.changes, err
}

type recorder struct {
	Graph
	changes ChangeSet
}

func (r *recorder) Base() Graph { return r.Graph }

func (r *recorder) Add(t Triple) error {
	if err := r.Graph.Add(t); err != nil {
		return err
	}
	r.changes.Added = append(r.changes.Added, t)
	return nil
}

func (r *recorder) Delete(t Triple) error {
	if err := r.Graph.Delete(t); err != nil {
		return err
	}
	r.changes.Removed = append(r.changes.Removed, t)
	return nil
}
