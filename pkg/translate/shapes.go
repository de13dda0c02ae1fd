package translate

import (
	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/graph"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

func typeIs(typ string) func(graph.Triple) bool {
	return func(t graph.Triple) bool { return t.P.Is(vocab.RDFType) && t.O.Is(typ) }
}

// resources reports whether t links two non-literal nodes.
func resources(t graph.Triple) bool { return !t.S.IsLiteral() && !t.O.IsLiteral() }

func iris(t graph.Triple) bool { return t.S.IsIRI() && t.O.IsIRI() }

type propertyKinds struct {
	object, data, annotation bool
}

func (k propertyKinds) none() bool { return !k.object && !k.data && !k.annotation }

// objectish reports whether properties of these kinds read as object
// properties. Undeclared properties default to object.
func (k propertyKinds) objectish() bool { return k.object || k.none() }

func (r *reader) kinds(nodes ...graph.Node) propertyKinds {
	var k propertyKinds
	for _, n := range nodes {
		v := r.view(n)
		k.object = k.object || v.Any(graph.ViewObjectProperty|graph.ViewObjectInverse)
		k.data = k.data || v.Has(graph.ViewDataProperty)
		k.annotation = k.annotation || v.Has(graph.ViewAnnotationProperty)
	}
	return k
}

func (r *reader) isRange(n graph.Node) bool { return r.view(n).Any(graph.ViewAnyRange) }

// peekList returns the items of a list without consuming its triples.
func (r *reader) peekList(head graph.Node) ([]graph.Node, error) {
	items, _, err := graph.ReadList(r.g, head)
	return items, err
}

// readAll applies read to each node.
func readAll(nodes []graph.Node, read func(graph.Node) (owl.Object, error)) ([]owl.Object, error) {
	out := make([]owl.Object, 0, len(nodes))
	for _, n := range nodes {
		o, err := read(n)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *reader) pair(root graph.Triple, read func(graph.Node) (owl.Object, error)) ([]owl.Object, error) {
	return readAll([]graph.Node{root.S, root.O}, read)
}

func (r *reader) objectPropertyEntity(n graph.Node) (owl.Object, error) {
	return r.entity(owl.ObjectProperty, n)
}

func (r *reader) dataProperty(n graph.Node) (owl.Object, error) {
	return r.entity(owl.DataProperty, n)
}

func (r *reader) annotationPropertyEntity(n graph.Node) (owl.Object, error) {
	return r.entity(owl.AnnotationProperty, n)
}

func (r *reader) namedClass(n graph.Node) (owl.Object, error) { return r.entity(owl.Class, n) }

// encoders

func iri(s string) graph.Node { return graph.IRI(s) }

// encodeTriple writes an axiom that is a single (s p o) triple built from
// operand positions.
func encodeTriple(s int, p string, o int) func(w *writer, ax *owl.Axiom) {
	return func(w *writer, ax *owl.Axiom) {
		w.assert(w.node(ax.Arg(s)), iri(p), w.node(ax.Arg(o)), ax.Annotations())
	}
}

// encodeType writes (operand0 rdf:type typ).
func encodeType(typ string) func(w *writer, ax *owl.Axiom) {
	return func(w *writer, ax *owl.Axiom) {
		w.assert(w.node(ax.Arg(0)), rdfType, iri(typ), ax.Annotations())
	}
}

// encodeStar writes an n-ary equivalence as pairwise triples from the first
// operand to every other one.
func encodeStar(p string) func(w *writer, ax *owl.Axiom) {
	return func(w *writer, ax *owl.Axiom) {
		ops := ax.Args()
		first := w.node(ops[0])
		for _, op := range ops[1:] {
			w.assert(first, iri(p), w.node(op), ax.Annotations())
		}
	}
}

// encodeGroup writes two operands as a single pairwise triple and more as
// a typed group node listing them.
func encodeGroup(p, groupType string) func(w *writer, ax *owl.Axiom) {
	return func(w *writer, ax *owl.Axiom) {
		ops := ax.Args()
		if len(ops) == 2 {
			w.assert(w.node(ops[0]), iri(p), w.node(ops[1]), ax.Annotations())
			return
		}
		x := w.blank()
		w.typed(x, groupType)
		w.add(x, iri(vocab.OWLMembers), w.list(w.nodes(ops)))
		w.annotate(x, ax.Annotations())
	}
}

var declarationTypes = [owl.NumEntityKinds]string{
	owl.Class:              vocab.OWLClass,
	owl.Datatype:           vocab.RDFSDatatype,
	owl.ObjectProperty:     vocab.OWLObjectProperty,
	owl.DataProperty:       vocab.OWLDatatypeProperty,
	owl.AnnotationProperty: vocab.OWLAnnotationProperty,
	owl.NamedIndividual:    vocab.OWLNamedIndividual,
}

func declarationKind(typ graph.Node) (owl.EntityKind, bool) {
	for k, t := range declarationTypes {
		if typ.Is(t) {
			return owl.EntityKind(k), true
		}
	}
	return 0, false
}

// declared reports whether n has any declaration triple in g.
func declared(g graph.Graph, n graph.Node) bool {
	for _, t := range declarationTypes {
		if graph.HasType(g, n, t) {
			return true
		}
	}
	return false
}

// annotationCandidate reports whether p may be an annotation property.
func annotationCandidate(p graph.Node) bool {
	return p.IsIRI() && (vocab.IsBuiltinAnnotationProperty(p.Value) || !vocab.IsReserved(p.Value))
}

func (r *Registry) translators() []*translator {
	opts := r.opts
	ts := []*translator{
		declaration(opts),
		annotationAssertion(opts),
		subAnnotationPropertyOf(opts),
		annotationPropertyDomainOrRange(owl.AnnotationPropertyDomain, vocab.RDFSDomain, opts),
		annotationPropertyDomainOrRange(owl.AnnotationPropertyRange, vocab.RDFSRange, opts),
		subClassOf(),
		equivalentClasses(),
		disjointClasses(),
		disjointUnion(),
		subObjectPropertyOf(),
		subPropertyChainOf(),
		equivalentProperties(owl.EquivalentObjectProperties),
		disjointProperties(owl.DisjointObjectProperties),
		inverseObjectProperties(),
		objectPropertyDomain(),
		objectPropertyRange(),
		functionalObjectProperty(),
		subDataPropertyOf(),
		equivalentProperties(owl.EquivalentDataProperties),
		disjointProperties(owl.DisjointDataProperties),
		dataPropertyDomain(),
		dataPropertyRange(),
		functionalDataProperty(),
		datatypeDefinition(),
		hasKey(),
		sameIndividual(),
		differentIndividuals(),
		classAssertion(),
		objectPropertyAssertion(),
		negativePropertyAssertion(owl.NegativeObjectPropertyAssertion),
		dataPropertyAssertion(),
		negativePropertyAssertion(owl.NegativeDataPropertyAssertion),
		rule(),
	}
	for _, c := range []struct {
		shape owl.Shape
		typ   string
	}{
		{owl.InverseFunctionalObjectProperty, vocab.OWLInverseFunctionalProperty},
		{owl.ReflexiveObjectProperty, vocab.OWLReflexiveProperty},
		{owl.IrreflexiveObjectProperty, vocab.OWLIrreflexiveProperty},
		{owl.SymmetricObjectProperty, vocab.OWLSymmetricProperty},
		{owl.AsymmetricObjectProperty, vocab.OWLAsymmetricProperty},
		{owl.TransitiveObjectProperty, vocab.OWLTransitiveProperty},
	} {
		ts = append(ts, characteristic(c.shape, c.typ))
	}
	return ts
}

func declaration(opts Options) *translator {
	t := &translator{
		shape: owl.Declaration,
		match: func(t graph.Triple) bool {
			if !opts.AllowReadDeclarations || !t.P.Is(vocab.RDFType) || !t.S.IsIRI() || vocab.IsReserved(t.S.Value) {
				return false
			}
			_, ok := declarationKind(t.O)
			return ok
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k, _ := declarationKind(root.O)
			e, err := rd.entity(k, root.S)
			if err != nil {
				return nil, err
			}
			if !opts.AllowBulkAnnotationAssertions {
				if err := rd.foldAnnotations(root.S); err != nil {
					return nil, err
				}
			}
			return []owl.Object{e}, nil
		},
		encode: func(w *writer, ax *owl.Axiom) {
			e := ax.Arg(0).(*owl.Entity)
			w.assert(w.node(e), rdfType, iri(declarationTypes[e.Kind()]), ax.Annotations())
		},
	}
	for _, typ := range declarationTypes {
		t.patterns = append(t.patterns, onType(typ))
	}
	if !opts.AllowBulkAnnotationAssertions {
		t.affects = func(tr graph.Triple) bool {
			return defaultAffects(tr) || (tr.S.IsIRI() && annotationCandidate(tr.P))
		}
	}
	return t
}

// foldAnnotations reads the annotation assertions on entity into the
// annotations of the axiom being decoded.
func (r *reader) foldAnnotations(entity graph.Node) error {
	for _, t := range graph.Collect(r.g.Find(entity, graph.Any, graph.Any)) {
		if !annotationCandidate(t.P) || !r.annotationProperty(t.P) {
			continue
		}
		a, err := r.annotation(t)
		if err != nil {
			return err
		}
		r.folded = append(r.folded, a)
	}
	return nil
}

func annotationAssertion(opts Options) *translator {
	return &translator{
		shape:    owl.AnnotationAssertion,
		patterns: []pattern{anyTriple},
		match: func(t graph.Triple) bool {
			return opts.LoadAnnotationAxioms && annotationCandidate(t.P) && !t.S.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.annotationProperty(root.P) {
				return nil, nil
			}
			var subject owl.Object
			switch {
			case root.S.IsIRI():
				if !opts.AllowBulkAnnotationAssertions && declared(rd.g, root.S) {
					return nil, nil
				}
				subject = owl.IRI(root.S.Value)
			case rd.isIndividualNode(root.S):
				subject = owl.AnonymousIndividual{Label: root.S.Value}
			default:
				return nil, nil
			}
			prop, err := rd.entity(owl.AnnotationProperty, root.P)
			if err != nil {
				return nil, err
			}
			val, err := rd.annotationValue(root.O)
			if err != nil {
				return nil, err
			}
			return []owl.Object{prop, subject, val}, nil
		},
		encode: func(w *writer, ax *owl.Axiom) {
			w.assert(w.node(ax.Arg(1)), w.node(ax.Arg(0)), w.node(ax.Arg(2)), ax.Annotations())
		},
	}
}

func subAnnotationPropertyOf(opts Options) *translator {
	return &translator{
		shape:    owl.SubAnnotationPropertyOf,
		patterns: []pattern{onPredicate(vocab.RDFSSubPropertyOf)},
		match: func(t graph.Triple) bool {
			return opts.LoadAnnotationAxioms && t.P.Is(vocab.RDFSSubPropertyOf) && iris(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k := rd.kinds(root.S, root.O)
			if !k.annotation || (opts.IgnoreAnnotationAxiomOverlaps && (k.object || k.data)) {
				return nil, nil
			}
			return rd.pair(root, rd.annotationPropertyEntity)
		},
		encode: encodeTriple(0, vocab.RDFSSubPropertyOf, 1),
	}
}

func annotationPropertyDomainOrRange(shape owl.Shape, pred string, opts Options) *translator {
	return &translator{
		shape:    shape,
		patterns: []pattern{onPredicate(pred)},
		match: func(t graph.Triple) bool {
			return opts.LoadAnnotationAxioms && t.P.Is(pred) && iris(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k := rd.kinds(root.S)
			if !k.annotation || (opts.IgnoreAnnotationAxiomOverlaps && (k.object || k.data)) {
				return nil, nil
			}
			prop, err := rd.entity(owl.AnnotationProperty, root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{prop, owl.IRI(root.O.Value)}, nil
		},
		encode: encodeTriple(0, pred, 1),
	}
}

func subClassOf() *translator {
	return &translator{
		shape:    owl.SubClassOf,
		patterns: []pattern{onPredicate(vocab.RDFSSubClassOf)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSSubClassOf) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			return rd.pair(root, rd.class)
		},
		encode: encodeTriple(0, vocab.RDFSSubClassOf, 1),
	}
}

// datatypeDefinitionCandidate reports whether an owl:equivalentClass triple
// relates data ranges rather than classes.
func (r *reader) datatypeDefinitionCandidate(root graph.Triple) bool {
	return r.view(root.S).Has(graph.ViewDatatype) || r.isRange(root.O)
}

func equivalentClasses() *translator {
	return &translator{
		shape:    owl.EquivalentClasses,
		patterns: []pattern{onPredicate(vocab.OWLEquivalentClass)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLEquivalentClass) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if rd.datatypeDefinitionCandidate(root) {
				return nil, nil
			}
			return rd.pair(root, rd.class)
		},
		encode: encodeStar(vocab.OWLEquivalentClass),
	}
}

func datatypeDefinition() *translator {
	return &translator{
		shape:    owl.DatatypeDefinition,
		patterns: []pattern{onPredicate(vocab.OWLEquivalentClass)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLEquivalentClass) && t.S.IsIRI() && !t.O.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.datatypeDefinitionCandidate(root) {
				return nil, nil
			}
			dt, err := rd.entity(owl.Datatype, root.S)
			if err != nil {
				return nil, err
			}
			dr, err := rd.dataRange(root.O)
			if err != nil {
				return nil, err
			}
			return []owl.Object{dt, dr}, nil
		},
		encode: encodeTriple(0, vocab.OWLEquivalentClass, 1),
	}
}

// grouping describes a shape read either from pairwise triples or from a
// typed group node listing its members.
type grouping struct {
	shape     owl.Shape
	pairwise  string
	groupType string
	// accept decides from the raw operand nodes whether the shape claims them.
	accept func(rd *reader, nodes []graph.Node) bool
	read   func(rd *reader) func(graph.Node) (owl.Object, error)
}

func grouped(g grouping) *translator {
	isGroup := typeIs(g.groupType)
	return &translator{
		shape:    g.shape,
		patterns: []pattern{onPredicate(g.pairwise), onType(g.groupType)},
		match: func(t graph.Triple) bool {
			return (t.P.Is(g.pairwise) && resources(t)) || (isGroup(t) && t.S.IsBlank())
		},
		grouped: isGroup,
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !isGroup(root) {
				if g.accept != nil && !g.accept(rd, []graph.Node{root.S, root.O}) {
					return nil, nil
				}
				return rd.pair(root, g.read(rd))
			}
			head, err := rd.groupMembers(root.S)
			if err != nil {
				return nil, err
			}
			if g.accept != nil {
				items, err := rd.peekList(head)
				if err != nil {
					return nil, err
				}
				if !g.accept(rd, items) {
					return nil, nil
				}
			}
			return rd.listOf(head, g.read(rd))
		},
		encode: encodeGroup(g.pairwise, g.groupType),
	}
}

// groupMembers returns the member list of a group node, which names it with
// owl:members or, for owl:AllDifferent, owl:distinctMembers.
func (r *reader) groupMembers(x graph.Node) (graph.Node, error) {
	if head, ok, err := r.opt(x, vocab.OWLMembers); err != nil || ok {
		return head, err
	}
	if head, ok, err := r.opt(x, vocab.OWLDistinctMembers); err != nil || ok {
		return head, err
	}
	return graph.Node{}, errors.Unsupported("group %s has no members", x)
}

func disjointClasses() *translator {
	return grouped(grouping{
		shape:     owl.DisjointClasses,
		pairwise:  vocab.OWLDisjointWith,
		groupType: vocab.OWLAllDisjointClasses,
		read:      func(rd *reader) func(graph.Node) (owl.Object, error) { return rd.class },
	})
}

func differentIndividuals() *translator {
	return grouped(grouping{
		shape:     owl.DifferentIndividuals,
		pairwise:  vocab.OWLDifferentFrom,
		groupType: vocab.OWLAllDifferent,
		read:      func(rd *reader) func(graph.Node) (owl.Object, error) { return rd.individual },
	})
}

func disjointProperties(shape owl.Shape) *translator {
	g := grouping{
		shape:     shape,
		pairwise:  vocab.OWLPropertyDisjointWith,
		groupType: vocab.OWLAllDisjointProperties,
	}
	if shape == owl.DisjointObjectProperties {
		g.accept = func(rd *reader, nodes []graph.Node) bool { return rd.kinds(nodes...).objectish() }
		g.read = func(rd *reader) func(graph.Node) (owl.Object, error) { return rd.objectProperty }
	} else {
		g.accept = func(rd *reader, nodes []graph.Node) bool { return rd.kinds(nodes...).data }
		g.read = func(rd *reader) func(graph.Node) (owl.Object, error) { return rd.dataProperty }
	}
	return grouped(g)
}

func disjointUnion() *translator {
	return &translator{
		shape:    owl.DisjointUnion,
		patterns: []pattern{onPredicate(vocab.OWLDisjointUnionOf)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLDisjointUnionOf) && t.S.IsIRI() && !t.O.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			c, err := rd.namedClass(root.S)
			if err != nil {
				return nil, err
			}
			ops, err := rd.listOf(root.O, rd.class)
			if err != nil {
				return nil, err
			}
			seq, err := rd.seq(ops)
			if err != nil {
				return nil, err
			}
			return []owl.Object{c, seq}, nil
		},
		encode: encodeTriple(0, vocab.OWLDisjointUnionOf, 1),
	}
}

func subObjectPropertyOf() *translator {
	return &translator{
		shape:    owl.SubObjectPropertyOf,
		patterns: []pattern{onPredicate(vocab.RDFSSubPropertyOf)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSSubPropertyOf) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.S, root.O).objectish() {
				return nil, nil
			}
			return rd.pair(root, rd.objectProperty)
		},
		encode: encodeTriple(0, vocab.RDFSSubPropertyOf, 1),
	}
}

func subDataPropertyOf() *translator {
	return &translator{
		shape:    owl.SubDataPropertyOf,
		patterns: []pattern{onPredicate(vocab.RDFSSubPropertyOf)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSSubPropertyOf) && iris(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.S, root.O).data {
				return nil, nil
			}
			return rd.pair(root, rd.dataProperty)
		},
		encode: encodeTriple(0, vocab.RDFSSubPropertyOf, 1),
	}
}

func subPropertyChainOf() *translator {
	return &translator{
		shape:    owl.SubPropertyChainOf,
		patterns: []pattern{onPredicate(vocab.OWLPropertyChainAxiom)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLPropertyChainAxiom) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			chain, err := rd.listOf(root.O, rd.objectProperty)
			if err != nil {
				return nil, err
			}
			seq, err := rd.seq(chain)
			if err != nil {
				return nil, err
			}
			sup, err := rd.objectProperty(root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{seq, sup}, nil
		},
		encode: encodeTriple(1, vocab.OWLPropertyChainAxiom, 0),
	}
}

func equivalentProperties(shape owl.Shape) *translator {
	object := shape == owl.EquivalentObjectProperties
	return &translator{
		shape:    shape,
		patterns: []pattern{onPredicate(vocab.OWLEquivalentProperty)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLEquivalentProperty) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k := rd.kinds(root.S, root.O)
			if object {
				if !k.objectish() {
					return nil, nil
				}
				return rd.pair(root, rd.objectProperty)
			}
			if !k.data {
				return nil, nil
			}
			return rd.pair(root, rd.dataProperty)
		},
		encode: encodeStar(vocab.OWLEquivalentProperty),
	}
}

func inverseObjectProperties() *translator {
	return &translator{
		shape:    owl.InverseObjectProperties,
		patterns: []pattern{onPredicate(vocab.OWLInverseOf)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLInverseOf) && iris(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			return rd.pair(root, rd.objectPropertyEntity)
		},
		encode: encodeTriple(0, vocab.OWLInverseOf, 1),
	}
}

func objectPropertyDomain() *translator {
	return &translator{
		shape:    owl.ObjectPropertyDomain,
		patterns: []pattern{onPredicate(vocab.RDFSDomain)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSDomain) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.S).objectish() {
				return nil, nil
			}
			return rd.propertyAnd(root, rd.objectProperty, rd.class)
		},
		encode: encodeTriple(0, vocab.RDFSDomain, 1),
	}
}

func objectPropertyRange() *translator {
	return &translator{
		shape:    owl.ObjectPropertyRange,
		patterns: []pattern{onPredicate(vocab.RDFSRange)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSRange) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k := rd.kinds(root.S)
			if !k.object && !(k.none() && !rd.isRange(root.O)) {
				return nil, nil
			}
			return rd.propertyAnd(root, rd.objectProperty, rd.class)
		},
		encode: encodeTriple(0, vocab.RDFSRange, 1),
	}
}

func dataPropertyDomain() *translator {
	return &translator{
		shape:    owl.DataPropertyDomain,
		patterns: []pattern{onPredicate(vocab.RDFSDomain)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSDomain) && t.S.IsIRI() && !t.O.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.S).data {
				return nil, nil
			}
			return rd.propertyAnd(root, rd.dataProperty, rd.class)
		},
		encode: encodeTriple(0, vocab.RDFSDomain, 1),
	}
}

func dataPropertyRange() *translator {
	return &translator{
		shape:    owl.DataPropertyRange,
		patterns: []pattern{onPredicate(vocab.RDFSRange)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.RDFSRange) && t.S.IsIRI() && !t.O.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			k := rd.kinds(root.S)
			if !k.data && !(k.none() && rd.isRange(root.O)) {
				return nil, nil
			}
			return rd.propertyAnd(root, rd.dataProperty, rd.dataRange)
		},
		encode: encodeTriple(0, vocab.RDFSRange, 1),
	}
}

func (r *reader) propertyAnd(root graph.Triple, prop, value func(graph.Node) (owl.Object, error)) ([]owl.Object, error) {
	p, err := prop(root.S)
	if err != nil {
		return nil, err
	}
	v, err := value(root.O)
	if err != nil {
		return nil, err
	}
	return []owl.Object{p, v}, nil
}

func functionalObjectProperty() *translator {
	t := characteristic(owl.FunctionalObjectProperty, vocab.OWLFunctionalProperty)
	decode := t.decode
	t.decode = func(rd *reader, root graph.Triple) ([]owl.Object, error) {
		if !rd.kinds(root.S).objectish() {
			return nil, nil
		}
		return decode(rd, root)
	}
	return t
}

func characteristic(shape owl.Shape, typ string) *translator {
	return &translator{
		shape:    shape,
		patterns: []pattern{onType(typ)},
		match: func(t graph.Triple) bool {
			return typeIs(typ)(t) && !t.S.IsLiteral()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			p, err := rd.objectProperty(root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{p}, nil
		},
		encode: encodeType(typ),
	}
}

func functionalDataProperty() *translator {
	return &translator{
		shape:    owl.FunctionalDataProperty,
		patterns: []pattern{onType(vocab.OWLFunctionalProperty)},
		match: func(t graph.Triple) bool {
			return typeIs(vocab.OWLFunctionalProperty)(t) && t.S.IsIRI()
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.S).data {
				return nil, nil
			}
			p, err := rd.dataProperty(root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{p}, nil
		},
		encode: encodeType(vocab.OWLFunctionalProperty),
	}
}

func hasKey() *translator {
	return &translator{
		shape:    owl.HasKey,
		patterns: []pattern{onPredicate(vocab.OWLHasKey)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLHasKey) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			c, err := rd.class(root.S)
			if err != nil {
				return nil, err
			}
			keys, err := rd.listOf(root.O, func(n graph.Node) (owl.Object, error) {
				if k := rd.kinds(n); k.data && !k.object {
					return rd.dataProperty(n)
				}
				return rd.objectProperty(n)
			})
			if err != nil {
				return nil, err
			}
			var ops, dps []owl.Object
			for _, key := range keys {
				if e, ok := key.(*owl.Entity); ok && e.Kind() == owl.DataProperty {
					dps = append(dps, key)
				} else {
					ops = append(ops, key)
				}
			}
			opSeq, err := rd.seq(ops)
			if err != nil {
				return nil, err
			}
			dpSeq, err := rd.seq(dps)
			if err != nil {
				return nil, err
			}
			return []owl.Object{c, opSeq, dpSeq}, nil
		},
		encode: func(w *writer, ax *owl.Axiom) {
			keys := append(append([]owl.Object(nil), ax.Arg(1).(*owl.Expr).Args()...), ax.Arg(2).(*owl.Expr).Args()...)
			w.assert(w.node(ax.Arg(0)), iri(vocab.OWLHasKey), w.list(w.nodes(keys)), ax.Annotations())
		},
	}
}

func sameIndividual() *translator {
	return &translator{
		shape:    owl.SameIndividual,
		patterns: []pattern{onPredicate(vocab.OWLSameAs)},
		match: func(t graph.Triple) bool {
			return t.P.Is(vocab.OWLSameAs) && resources(t)
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			return rd.pair(root, rd.individual)
		},
		encode: encodeStar(vocab.OWLSameAs),
	}
}

func classAssertion() *translator {
	return &translator{
		shape:    owl.ClassAssertion,
		patterns: []pattern{onPredicate(vocab.RDFType)},
		match: func(t graph.Triple) bool {
			if !t.P.Is(vocab.RDFType) || t.S.IsLiteral() {
				return false
			}
			return t.O.IsBlank() || (t.O.IsIRI() && (!vocab.IsReserved(t.O.Value) || vocab.IsBuiltinClass(t.O.Value)))
		},
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.isIndividualNode(root.S) {
				return nil, nil
			}
			c, err := rd.class(root.O)
			if err != nil {
				return nil, err
			}
			ind, err := rd.individual(root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{c, ind}, nil
		},
		encode: encodeTriple(1, vocab.RDFType, 0),
	}
}

// propertyAssertion matches (s p o) with a user or built-in property p. A
// user property with no declaration reads as an object property when o is a
// resource.
func propertyAssertion(builtin func(string) bool, literal bool) func(graph.Triple) bool {
	return func(t graph.Triple) bool {
		if !t.P.IsIRI() || t.S.IsLiteral() || t.O.IsLiteral() != literal {
			return false
		}
		return builtin(t.P.Value) || !vocab.IsReserved(t.P.Value)
	}
}

func encodeAssertion(w *writer, ax *owl.Axiom) {
	w.assert(w.node(ax.Arg(1)), w.node(ax.Arg(0)), w.node(ax.Arg(2)), ax.Annotations())
}

func objectPropertyAssertion() *translator {
	return &translator{
		shape:    owl.ObjectPropertyAssertion,
		patterns: []pattern{anyTriple},
		match:    propertyAssertion(vocab.IsBuiltinObjectProperty, false),
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.kinds(root.P).objectish() ||
				!rd.isIndividualNode(root.S) || !rd.isIndividualNode(root.O) {
				return nil, nil
			}
			p, err := rd.objectPropertyEntity(root.P)
			if err != nil {
				return nil, err
			}
			inds, err := rd.pair(root, rd.individual)
			if err != nil {
				return nil, err
			}
			return append([]owl.Object{p}, inds...), nil
		},
		encode: encodeAssertion,
	}
}

func dataPropertyAssertion() *translator {
	return &translator{
		shape:    owl.DataPropertyAssertion,
		patterns: []pattern{anyTriple},
		match:    propertyAssertion(vocab.IsBuiltinDataProperty, true),
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if !rd.view(root.P).Has(graph.ViewDataProperty) || !rd.isIndividualNode(root.S) {
				return nil, nil
			}
			p, err := rd.dataProperty(root.P)
			if err != nil {
				return nil, err
			}
			ind, err := rd.individual(root.S)
			if err != nil {
				return nil, err
			}
			return []owl.Object{p, ind, toLiteral(root.O)}, nil
		},
		encode: encodeAssertion,
	}
}

func negativePropertyAssertion(shape owl.Shape) *translator {
	object := shape == owl.NegativeObjectPropertyAssertion
	isNPA := typeIs(vocab.OWLNegativePropertyAssertion)
	return &translator{
		shape:    shape,
		patterns: []pattern{onType(vocab.OWLNegativePropertyAssertion)},
		match: func(t graph.Triple) bool {
			return isNPA(t) && !t.S.IsLiteral()
		},
		grouped: isNPA,
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			target := vocab.OWLTargetValue
			if object {
				target = vocab.OWLTargetIndividual
			}
			if len(graph.Objects(rd.g, root.S, iri(target))) == 0 {
				return nil, nil
			}
			src, err := rd.one(root.S, vocab.OWLSourceIndividual)
			if err != nil {
				return nil, err
			}
			prop, err := rd.one(root.S, vocab.OWLAssertionProperty)
			if err != nil {
				return nil, err
			}
			tgt, err := rd.one(root.S, target)
			if err != nil {
				return nil, err
			}
			ind, err := rd.individual(src)
			if err != nil {
				return nil, err
			}
			if object {
				p, err := rd.objectProperty(prop)
				if err != nil {
					return nil, err
				}
				o, err := rd.individual(tgt)
				if err != nil {
					return nil, err
				}
				return []owl.Object{p, ind, o}, nil
			}
			p, err := rd.dataProperty(prop)
			if err != nil {
				return nil, err
			}
			lit, err := rd.literal(tgt)
			if err != nil {
				return nil, err
			}
			return []owl.Object{p, ind, lit}, nil
		},
		encode: func(w *writer, ax *owl.Axiom) {
			target := vocab.OWLTargetValue
			if object {
				target = vocab.OWLTargetIndividual
			}
			x := w.blank()
			w.typed(x, vocab.OWLNegativePropertyAssertion)
			w.add(x, iri(vocab.OWLSourceIndividual), w.node(ax.Arg(1)))
			w.add(x, iri(vocab.OWLAssertionProperty), w.node(ax.Arg(0)))
			w.add(x, iri(target), w.node(ax.Arg(2)))
			w.annotate(x, ax.Annotations())
		},
	}
}

func rule() *translator {
	isRule := typeIs(vocab.SWRLImp)
	return &translator{
		shape:    owl.Rule,
		patterns: []pattern{onType(vocab.SWRLImp)},
		match: func(t graph.Triple) bool {
			return isRule(t) && !t.S.IsLiteral()
		},
		grouped: isRule,
		decode: func(rd *reader, root graph.Triple) ([]owl.Object, error) {
			if err := rd.enter(root.S); err != nil {
				return nil, err
			}
			defer rd.leave(root.S)
			var parts [2]owl.Object
			for i, p := range []struct {
				pred string
				kind owl.ExprKind
			}{
				{vocab.SWRLBody, owl.Body},
				{vocab.SWRLHead, owl.Head},
			} {
				head, err := rd.one(root.S, p.pred)
				if err != nil {
					return nil, err
				}
				atoms, err := rd.listOf(head, rd.atom)
				if err != nil {
					return nil, err
				}
				if parts[i], err = rd.expr(p.kind, atoms...); err != nil {
					return nil, err
				}
			}
			return parts[:], nil
		},
		encode: func(w *writer, ax *owl.Axiom) {
			x := w.blank()
			w.typed(x, vocab.SWRLImp)
			w.add(x, iri(vocab.SWRLBody), w.node(ax.Arg(0)))
			w.add(x, iri(vocab.SWRLHead), w.node(ax.Arg(1)))
			w.annotate(x, ax.Annotations())
		},
	}
}
