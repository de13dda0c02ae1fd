package translate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

var (
	rdfType       = graph.IRI(vocab.RDFType)
	rdfNil        = graph.IRI(vocab.RDFNil)
	trueLiteral   = graph.Literal("true", vocab.XSDBoolean)
	cardinalityDT = vocab.XSDNonNegativeInteger
)

// reader decodes one axiom: it resolves nested expressions and records every
// triple it consumes. Anonymous nodes on the current descent path are
// tracked so that a node reachable from itself fails instead of looping.
type reader struct {
	g       graph.Graph
	ids     *identity.Cache
	opts    Options
	triples TripleSet
	path    map[graph.Node]struct{}
	// folded holds annotations attached from outside the head triple, such
	// as annotation assertions folded into a declaration.
	folded []owl.Annotation
}

func newReader(g graph.Graph, ids *identity.Cache, opts Options) *reader {
	return &reader{
		g:       g,
		ids:     ids,
		opts:    opts,
		triples: make(TripleSet),
		path:    make(map[graph.Node]struct{}),
	}
}

func (r *reader) take(ts ...graph.Triple) { r.triples.Add(ts...) }

// capture runs fn with a fresh triple set and returns what fn consumed.
func (r *reader) capture(fn func() error) (TripleSet, error) {
	saved := r.triples
	r.triples = make(TripleSet)
	err := fn()
	got := r.triples
	r.triples = saved
	return got, err
}

func (r *reader) enter(n graph.Node) error {
	if !n.IsBlank() {
		return nil
	}
	if _, ok := r.path[n]; ok {
		return errors.Recursive(n.String())
	}
	r.path[n] = struct{}{}
	return nil
}

func (r *reader) leave(n graph.Node) { delete(r.path, n) }

// one returns the object of the single (s, p, *) triple.
func (r *reader) one(s graph.Node, p string) (graph.Node, error) {
	t, err := graph.Single(r.g, s, graph.IRI(p))
	if err != nil {
		return graph.Node{}, err
	}
	r.take(t)
	return t.O, nil
}

// opt returns the object of the (s, p, *) triple if there is exactly one.
func (r *reader) opt(s graph.Node, p string) (graph.Node, bool, error) {
	objs := graph.Objects(r.g, s, graph.IRI(p))
	switch len(objs) {
	case 0:
		return graph.Node{}, false, nil
	case 1:
		r.take(graph.NewTriple(s, graph.IRI(p), objs[0]))
		return objs[0], true, nil
	}
	return graph.Node{}, false, errors.Unsupported("%s has several %s", s, p)
}

// typed consumes (n rdf:type typ) if present.
func (r *reader) typed(n graph.Node, typ string) bool {
	t := graph.NewTriple(n, rdfType, graph.IRI(typ))
	if !r.g.Contains(t) {
		return false
	}
	r.take(t)
	return true
}

func (r *reader) list(head graph.Node) ([]graph.Node, error) {
	items, triples, err := graph.ReadList(r.g, head)
	if err != nil {
		return nil, err
	}
	r.take(triples...)
	for _, t := range triples {
		r.typed(t.S, vocab.RDFList)
		r.typed(t.S, vocab.SWRLAtomList)
	}
	return items, nil
}

func (r *reader) view(n graph.Node) graph.View { return graph.ViewOf(r.g, n) }

func (r *reader) entity(k owl.EntityKind, n graph.Node) (*owl.Entity, error) {
	if !n.IsIRI() {
		return nil, errors.Unsupported("%s is not a named %s", n, k)
	}
	e, err := r.ids.Entity(k, n.Value)
	if err != nil {
		return nil, errors.Unsupported("%s: %v", n, err)
	}
	return e, nil
}

// individual reads a named or anonymous individual.
func (r *reader) individual(n graph.Node) (owl.Object, error) {
	switch n.Kind {
	case graph.KindIRI:
		return r.entity(owl.NamedIndividual, n)
	case graph.KindBlank:
		return owl.AnonymousIndividual{Label: n.Value}, nil
	}
	return nil, errors.Unsupported("%s is not an individual", n)
}

func (r *reader) literal(n graph.Node) (owl.Literal, error) {
	if !n.IsLiteral() {
		return owl.Literal{}, errors.Unsupported("%s is not a literal", n)
	}
	return toLiteral(n), nil
}

func toLiteral(n graph.Node) owl.Literal {
	if n.Lang != "" {
		return owl.NewLangLiteral(n.Value, n.Lang)
	}
	return owl.NewLiteral(n.Value, owl.IRI(n.Datatype))
}

// annotationValue reads an IRI, anonymous individual or literal.
func (r *reader) annotationValue(n graph.Node) (owl.Object, error) {
	switch n.Kind {
	case graph.KindIRI:
		return owl.IRI(n.Value), nil
	case graph.KindBlank:
		return owl.AnonymousIndividual{Label: n.Value}, nil
	case graph.KindLiteral:
		return toLiteral(n), nil
	}
	return nil, errors.Unsupported("%s is not an annotation value", n)
}

func (r *reader) expr(k owl.ExprKind, args ...owl.Object) (*owl.Expr, error) {
	e, err := owl.NewExpr(k, args...)
	if err != nil {
		return nil, errors.Unsupported("%v", err)
	}
	return e, nil
}

var classConstructors = []struct {
	pred string
	kind owl.ExprKind
}{
	{vocab.OWLIntersectionOf, owl.ObjectIntersectionOf},
	{vocab.OWLUnionOf, owl.ObjectUnionOf},
	{vocab.OWLComplementOf, owl.ObjectComplementOf},
	{vocab.OWLOneOf, owl.ObjectOneOf},
}

// class reads a named class or an anonymous class expression.
func (r *reader) class(n graph.Node) (owl.Object, error) {
	switch {
	case n.IsIRI():
		return r.entity(owl.Class, n)
	case !n.IsBlank():
		return nil, errors.Unsupported("%s is not a class expression", n)
	}
	if err := r.enter(n); err != nil {
		return nil, err
	}
	defer r.leave(n)

	if r.typed(n, vocab.OWLRestriction) {
		return r.restriction(n)
	}
	r.typed(n, vocab.OWLClass)
	for _, c := range classConstructors {
		obj, ok, err := r.opt(n, c.pred)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		switch c.kind {
		case owl.ObjectComplementOf:
			op, err := r.class(obj)
			if err != nil {
				return nil, err
			}
			return r.expr(c.kind, op)
		case owl.ObjectOneOf:
			ops, err := r.listOf(obj, r.individual)
			if err != nil {
				return nil, err
			}
			return r.expr(c.kind, ops...)
		default:
			ops, err := r.listOf(obj, r.class)
			if err != nil {
				return nil, err
			}
			return r.expr(c.kind, ops...)
		}
	}
	return nil, errors.Unsupported("blank node %s is not a class expression", n)
}

// listOf reads a list whose items are decoded by item.
func (r *reader) listOf(head graph.Node, item func(graph.Node) (owl.Object, error)) ([]owl.Object, error) {
	if err := r.enter(head); err != nil {
		return nil, err
	}
	defer r.leave(head)
	nodes, err := r.list(head)
	if err != nil {
		return nil, err
	}
	out := make([]owl.Object, 0, len(nodes))
	for _, n := range nodes {
		o, err := item(n)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

var restrictionValues = []string{
	vocab.OWLSomeValuesFrom,
	vocab.OWLAllValuesFrom,
	vocab.OWLHasValue,
	vocab.OWLHasSelf,
	vocab.OWLMinCardinality,
	vocab.OWLMaxCardinality,
	vocab.OWLCardinality,
	vocab.OWLMinQualifiedCardinality,
	vocab.OWLMaxQualifiedCardinality,
	vocab.OWLQualifiedCardinality,
}

var cardinalityKinds = map[string][2]owl.ExprKind{
	vocab.OWLMinCardinality:          {owl.ObjectMinCardinality, owl.DataMinCardinality},
	vocab.OWLMaxCardinality:          {owl.ObjectMaxCardinality, owl.DataMaxCardinality},
	vocab.OWLCardinality:             {owl.ObjectExactCardinality, owl.DataExactCardinality},
	vocab.OWLMinQualifiedCardinality: {owl.ObjectMinCardinality, owl.DataMinCardinality},
	vocab.OWLMaxQualifiedCardinality: {owl.ObjectMaxCardinality, owl.DataMaxCardinality},
	vocab.OWLQualifiedCardinality:    {owl.ObjectExactCardinality, owl.DataExactCardinality},
}

func (r *reader) restriction(n graph.Node) (owl.Object, error) {
	prop, err := r.one(n, vocab.OWLOnProperty)
	if err != nil {
		return nil, err
	}
	var (
		pred  string
		value graph.Node
	)
	for _, p := range restrictionValues {
		v, ok, err := r.opt(n, p)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if pred != "" {
			return nil, errors.Unsupported("restriction %s has both %s and %s", n, pred, p)
		}
		pred, value = p, v
	}
	if pred == "" {
		return nil, errors.Unsupported("restriction %s has no value constraint", n)
	}

	switch pred {
	case vocab.OWLSomeValuesFrom, vocab.OWLAllValuesFrom:
		objKind, dataKind := owl.ObjectSomeValuesFrom, owl.DataSomeValuesFrom
		if pred == vocab.OWLAllValuesFrom {
			objKind, dataKind = owl.ObjectAllValuesFrom, owl.DataAllValuesFrom
		}
		if r.isDataRestriction(prop, value, pred) {
			dp, err := r.entity(owl.DataProperty, prop)
			if err != nil {
				return nil, err
			}
			dr, err := r.dataRange(value)
			if err != nil {
				return nil, err
			}
			return r.expr(dataKind, dp, dr)
		}
		op, err := r.objectProperty(prop)
		if err != nil {
			return nil, err
		}
		c, err := r.class(value)
		if err != nil {
			return nil, err
		}
		return r.expr(objKind, op, c)

	case vocab.OWLHasValue:
		if r.isDataRestriction(prop, value, pred) {
			dp, err := r.entity(owl.DataProperty, prop)
			if err != nil {
				return nil, err
			}
			lit, err := r.literal(value)
			if err != nil {
				return nil, err
			}
			return r.expr(owl.DataHasValue, dp, lit)
		}
		op, err := r.objectProperty(prop)
		if err != nil {
			return nil, err
		}
		ind, err := r.individual(value)
		if err != nil {
			return nil, err
		}
		return r.expr(owl.ObjectHasValue, op, ind)

	case vocab.OWLHasSelf:
		if !value.IsLiteral() || value.Value != "true" {
			return nil, errors.Unsupported("restriction %s has self value %s", n, value)
		}
		op, err := r.objectProperty(prop)
		if err != nil {
			return nil, err
		}
		return r.expr(owl.ObjectHasSelf, op)
	}
	return r.cardinality(n, prop, pred, value)
}

func (r *reader) cardinality(n, prop graph.Node, pred string, value graph.Node) (owl.Object, error) {
	if !value.IsLiteral() {
		return nil, errors.Unsupported("restriction %s has cardinality %s", n, value)
	}
	card, err := strconv.Atoi(value.Value)
	if err != nil || card < 0 {
		return nil, errors.Unsupported("restriction %s has cardinality %q", n, value.Value)
	}
	kinds := cardinalityKinds[pred]

	var filler graph.Node
	data, qualified := false, false
	switch pred {
	case vocab.OWLMinQualifiedCardinality, vocab.OWLMaxQualifiedCardinality, vocab.OWLQualifiedCardinality:
		qualified = true
		c, hasClass, err := r.opt(n, vocab.OWLOnClass)
		if err != nil {
			return nil, err
		}
		d, hasRange, err := r.opt(n, vocab.OWLOnDataRange)
		if err != nil {
			return nil, err
		}
		switch {
		case hasClass && hasRange:
			return nil, errors.Unsupported("restriction %s has both a class and a data range", n)
		case hasClass:
			filler = c
		case hasRange:
			filler, data = d, true
		default:
			return nil, errors.Unsupported("qualified restriction %s has no filler", n)
		}
	default:
		data = r.isDataRestriction(prop, graph.Any, pred)
	}

	var args []owl.Object
	kind := kinds[0]
	if data {
		kind = kinds[1]
		dp, err := r.entity(owl.DataProperty, prop)
		if err != nil {
			return nil, err
		}
		args = append(args, dp)
		if qualified {
			dr, err := r.dataRange(filler)
			if err != nil {
				return nil, err
			}
			args = append(args, dr)
		}
	} else {
		op, err := r.objectProperty(prop)
		if err != nil {
			return nil, err
		}
		args = append(args, op)
		if qualified {
			c, err := r.class(filler)
			if err != nil {
				return nil, err
			}
			args = append(args, c)
		}
	}
	e, err := owl.NewCardinality(kind, card, args...)
	if err != nil {
		return nil, errors.Unsupported("%v", err)
	}
	return e, nil
}

// isDataRestriction decides between the object and data variant of a
// restriction: by the declared kind of the property first, then by the
// filler. Undeclared properties default to object.
func (r *reader) isDataRestriction(prop, filler graph.Node, pred string) bool {
	v := r.view(prop)
	if v.Has(graph.ViewDataProperty) && !v.Has(graph.ViewObjectProperty) {
		return true
	}
	if v.Any(graph.ViewObjectProperty | graph.ViewObjectInverse) {
		return false
	}
	switch pred {
	case vocab.OWLHasValue:
		return filler.IsLiteral()
	case vocab.OWLSomeValuesFrom, vocab.OWLAllValuesFrom:
		return r.view(filler).Any(graph.ViewAnyRange)
	}
	return false
}

// objectProperty reads a named object property or ObjectInverseOf.
func (r *reader) objectProperty(n graph.Node) (owl.Object, error) {
	switch {
	case n.IsIRI():
		return r.entity(owl.ObjectProperty, n)
	case !n.IsBlank():
		return nil, errors.Unsupported("%s is not an object property", n)
	}
	if err := r.enter(n); err != nil {
		return nil, err
	}
	defer r.leave(n)
	inv, err := r.one(n, vocab.OWLInverseOf)
	if err != nil {
		return nil, err
	}
	op, err := r.entity(owl.ObjectProperty, inv)
	if err != nil {
		return nil, err
	}
	return r.expr(owl.ObjectInverseOf, op)
}

// dataRange reads a named datatype or an anonymous data range.
func (r *reader) dataRange(n graph.Node) (owl.Object, error) {
	switch {
	case n.IsIRI():
		return r.entity(owl.Datatype, n)
	case !n.IsBlank():
		return nil, errors.Unsupported("%s is not a data range", n)
	}
	if err := r.enter(n); err != nil {
		return nil, err
	}
	defer r.leave(n)
	r.typed(n, vocab.RDFSDatatype)

	for _, c := range []struct {
		pred string
		kind owl.ExprKind
	}{
		{vocab.OWLIntersectionOf, owl.DataIntersectionOf},
		{vocab.OWLUnionOf, owl.DataUnionOf},
	} {
		head, ok, err := r.opt(n, c.pred)
		if err != nil {
			return nil, err
		}
		if ok {
			ops, err := r.listOf(head, r.dataRange)
			if err != nil {
				return nil, err
			}
			return r.expr(c.kind, ops...)
		}
	}
	if c, ok, err := r.opt(n, vocab.OWLDatatypeComplementOf); err != nil {
		return nil, err
	} else if ok {
		op, err := r.dataRange(c)
		if err != nil {
			return nil, err
		}
		return r.expr(owl.DataComplementOf, op)
	}
	if head, ok, err := r.opt(n, vocab.OWLOneOf); err != nil {
		return nil, err
	} else if ok {
		lits, err := r.listOf(head, func(x graph.Node) (owl.Object, error) { return r.literal(x) })
		if err != nil {
			return nil, err
		}
		return r.expr(owl.DataOneOf, lits...)
	}
	if base, ok, err := r.opt(n, vocab.OWLOnDatatype); err != nil {
		return nil, err
	} else if ok {
		dt, err := r.entity(owl.Datatype, base)
		if err != nil {
			return nil, err
		}
		head, err := r.one(n, vocab.OWLWithRestrictions)
		if err != nil {
			return nil, err
		}
		facets, err := r.listOf(head, r.facet)
		if err != nil {
			return nil, err
		}
		return r.expr(owl.DatatypeRestriction, append([]owl.Object{dt}, facets...)...)
	}
	return nil, errors.Unsupported("blank node %s is not a data range", n)
}

// facet reads a facet node: exactly one (f facet literal) triple.
func (r *reader) facet(f graph.Node) (owl.Object, error) {
	if err := r.enter(f); err != nil {
		return nil, err
	}
	defer r.leave(f)
	ts := graph.Collect(r.g.Find(f, graph.Any, graph.Any))
	if len(ts) != 1 || !vocab.IsFacet(ts[0].P.Value) || !ts[0].O.IsLiteral() {
		return nil, errors.Unsupported("%s is not a facet restriction", f)
	}
	r.take(ts[0])
	e, err := owl.Facet(owl.IRI(ts[0].P.Value), toLiteral(ts[0].O))
	if err != nil {
		return nil, errors.Unsupported("%v", err)
	}
	return e, nil
}

// iarg reads a SWRL individual argument: a variable or an individual.
func (r *reader) iarg(n graph.Node) (owl.Object, error) {
	if n.IsIRI() && r.typed(n, vocab.SWRLVariable) {
		return r.expr(owl.Variable, owl.IRI(n.Value))
	}
	return r.individual(n)
}

// darg reads a SWRL data argument: a variable or a literal.
func (r *reader) darg(n graph.Node) (owl.Object, error) {
	if n.IsIRI() && r.typed(n, vocab.SWRLVariable) {
		return r.expr(owl.Variable, owl.IRI(n.Value))
	}
	return r.literal(n)
}

func (r *reader) arg(n graph.Node) (owl.Object, error) {
	if n.IsLiteral() {
		return r.literal(n)
	}
	return r.iarg(n)
}

func (r *reader) atom(n graph.Node) (owl.Object, error) {
	if !n.IsBlank() {
		return nil, errors.Unsupported("%s is not a SWRL atom", n)
	}
	if err := r.enter(n); err != nil {
		return nil, err
	}
	defer r.leave(n)

	arg := func(p string, read func(graph.Node) (owl.Object, error)) (owl.Object, error) {
		x, err := r.one(n, p)
		if err != nil {
			return nil, err
		}
		return read(x)
	}
	build := func(k owl.ExprKind, parts ...func() (owl.Object, error)) (owl.Object, error) {
		args := make([]owl.Object, 0, len(parts))
		for _, part := range parts {
			o, err := part()
			if err != nil {
				return nil, err
			}
			args = append(args, o)
		}
		return r.expr(k, args...)
	}
	bind := func(p string, read func(graph.Node) (owl.Object, error)) func() (owl.Object, error) {
		return func() (owl.Object, error) { return arg(p, read) }
	}

	switch {
	case r.typed(n, vocab.SWRLClassAtom):
		return build(owl.ClassAtom, bind(vocab.SWRLClassPredicate, r.class), bind(vocab.SWRLArgument1, r.iarg))
	case r.typed(n, vocab.SWRLDataRangeAtom):
		return build(owl.DataRangeAtom, bind(vocab.SWRLDataRange, r.dataRange), bind(vocab.SWRLArgument1, r.darg))
	case r.typed(n, vocab.SWRLIndividualPropertyAtom):
		return build(owl.ObjectPropertyAtom, bind(vocab.SWRLPropertyPredicate, r.objectProperty),
			bind(vocab.SWRLArgument1, r.iarg), bind(vocab.SWRLArgument2, r.iarg))
	case r.typed(n, vocab.SWRLDatavaluedPropertyAtom):
		dp := func(x graph.Node) (owl.Object, error) { return r.entity(owl.DataProperty, x) }
		return build(owl.DataPropertyAtom, bind(vocab.SWRLPropertyPredicate, dp),
			bind(vocab.SWRLArgument1, r.iarg), bind(vocab.SWRLArgument2, r.darg))
	case r.typed(n, vocab.SWRLSameIndividualAtom):
		return build(owl.SameIndividualAtom, bind(vocab.SWRLArgument1, r.iarg), bind(vocab.SWRLArgument2, r.iarg))
	case r.typed(n, vocab.SWRLDifferentIndividualsAtom):
		return build(owl.DifferentIndividualsAtom, bind(vocab.SWRLArgument1, r.iarg), bind(vocab.SWRLArgument2, r.iarg))
	case r.typed(n, vocab.SWRLBuiltinAtom):
		b, err := r.one(n, vocab.SWRLBuiltin)
		if err != nil {
			return nil, err
		}
		if !b.IsIRI() {
			return nil, errors.Unsupported("built-in %s is not an IRI", b)
		}
		head, err := r.one(n, vocab.SWRLArguments)
		if err != nil {
			return nil, err
		}
		args, err := r.listOf(head, r.arg)
		if err != nil {
			return nil, err
		}
		return r.expr(owl.BuiltInAtom, append([]owl.Object{owl.IRI(b.Value)}, args...)...)
	}
	return nil, errors.Unsupported("blank node %s is not a SWRL atom", n)
}

// seq wraps operands in an ordered Seq expression.
func (r *reader) seq(ops []owl.Object) (*owl.Expr, error) { return r.expr(owl.Seq, ops...) }

// annotationProperty reports whether p can be read as an annotation property.
func (r *reader) annotationProperty(p graph.Node) bool {
	return p.IsIRI() && r.view(p).Has(graph.ViewAnnotationProperty)
}

// isIndividualNode reports whether n is a plain individual: a non-reserved
// IRI, or a blank node that carries no structure of its own.
func (r *reader) isIndividualNode(n graph.Node) bool {
	switch n.Kind {
	case graph.KindIRI:
		return !vocab.IsReserved(n.Value)
	case graph.KindBlank:
		return r.view(n)&^graph.ViewAnonymousIndividual == 0
	}
	return false
}

var reificationPredicates = map[string]bool{
	vocab.RDFType:              true,
	vocab.OWLAnnotatedSource:   true,
	vocab.OWLAnnotatedProperty: true,
	vocab.OWLAnnotatedTarget:   true,
}

// annGroup is the content of one reification node.
type annGroup struct {
	anns    []owl.Annotation
	triples TripleSet
}

// reified reads every reification node of root typed with one of types,
// returning one group per node sorted by node label.
func (r *reader) reified(root graph.Triple, types ...string) ([]annGroup, error) {
	var groups []annGroup
	candidates := graph.Subjects(r.g, graph.IRI(vocab.OWLAnnotatedSource), root.S)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].String() < candidates[j].String() })
	for _, x := range candidates {
		if !x.IsBlank() ||
			!r.g.Contains(graph.NewTriple(x, graph.IRI(vocab.OWLAnnotatedProperty), root.P)) ||
			!r.g.Contains(graph.NewTriple(x, graph.IRI(vocab.OWLAnnotatedTarget), root.O)) {
			continue
		}
		var anns []owl.Annotation
		triples, err := r.capture(func() error {
			matched := false
			for _, typ := range types {
				if r.typed(x, typ) {
					matched = true
				}
			}
			if !matched {
				return errNotReified
			}
			r.take(
				graph.NewTriple(x, graph.IRI(vocab.OWLAnnotatedSource), root.S),
				graph.NewTriple(x, graph.IRI(vocab.OWLAnnotatedProperty), root.P),
				graph.NewTriple(x, graph.IRI(vocab.OWLAnnotatedTarget), root.O),
			)
			var err error
			anns, err = r.annotationsOn(x, reificationPredicates)
			return err
		})
		if err == errNotReified {
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, annGroup{anns: anns, triples: triples})
	}
	return groups, nil
}

var errNotReified = fmt.Errorf("not a reification node")

// annotationsOn reads the annotation triples on a blank node, skipping the
// structural predicates in skip. Each annotation triple may itself be
// annotated through an owl:Annotation or owl:Axiom node.
func (r *reader) annotationsOn(x graph.Node, skip map[string]bool) ([]owl.Annotation, error) {
	if err := r.enter(x); err != nil {
		return nil, err
	}
	defer r.leave(x)

	var anns []owl.Annotation
	for _, t := range graph.Collect(r.g.Find(x, graph.Any, graph.Any)) {
		if skip[t.P.Value] {
			continue
		}
		a, err := r.annotation(t)
		if err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, nil
}

// annotation reads the annotation asserted by t, including any nested
// annotations reified on t.
func (r *reader) annotation(t graph.Triple) (owl.Annotation, error) {
	prop, err := r.entity(owl.AnnotationProperty, t.P)
	if err != nil {
		return owl.Annotation{}, err
	}
	val, err := r.annotationValue(t.O)
	if err != nil {
		return owl.Annotation{}, err
	}
	groups, err := r.reified(t, vocab.OWLAnnotation, vocab.OWLAxiom)
	if err != nil {
		return owl.Annotation{}, err
	}
	var nested []owl.Annotation
	for _, g := range groups {
		nested = append(nested, g.anns...)
		r.triples.Union(g.triples)
	}
	r.take(t)
	a, err := owl.NewAnnotation(prop, val, nested...)
	if err != nil {
		return owl.Annotation{}, errors.Unsupported("%v", err)
	}
	return a, nil
}
