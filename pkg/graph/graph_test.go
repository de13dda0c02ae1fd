package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/vocab"
)

const ex = "http://example.org/"

func TestParseNode_RoundTrip(t *testing.T) {
	nodes := []Node{
		IRI(ex + "A"),
		Blank("b1"),
		Literal("plain", ""),
		Literal("42", vocab.XSDInteger),
		LangLiteral("chat", "FR"),
		Literal("line\nbreak \"quoted\" \\", ""),
	}
	for _, n := range nodes {
		t.Run(n.String(), func(t *testing.T) {
			got, err := ParseNode(n.String())
			require.NoError(t, err)
			assert.Equal(t, n, got)
		})
	}

	_, err := ParseNode(`"open`)
	assert.Error(t, err)
	_, err = ParseNode("bare")
	assert.Error(t, err)
}

func TestLiteralDefaults(t *testing.T) {
	assert.Equal(t, vocab.XSDString, Literal("x", "").Datatype)
	lit := LangLiteral("x", "EN-gb")
	assert.Equal(t, "en-gb", lit.Lang)
	assert.Equal(t, vocab.RDFLangString, lit.Datatype)
	assert.Equal(t, "b1", Blank("_:b1").Value)
}

func TestTripleValidate(t *testing.T) {
	a, p := IRI(ex+"a"), IRI(ex+"p")
	assert.NoError(t, NewTriple(a, p, Literal("v", "")).Validate())
	assert.Error(t, NewTriple(Literal("v", ""), p, a).Validate())
	assert.Error(t, NewTriple(a, Blank("x"), a).Validate())
	assert.Error(t, NewTriple(a, p, Any).Validate())
}

func TestMem_FindPatterns(t *testing.T) {
	g := NewMem()
	a, b, c := IRI(ex+"a"), IRI(ex+"b"), IRI(ex+"c")
	p, q := IRI(ex+"p"), IRI(ex+"q")
	for _, tr := range []Triple{
		NewTriple(a, p, b),
		NewTriple(a, q, c),
		NewTriple(b, p, c),
	} {
		require.NoError(t, g.Add(tr))
	}

	assert.Equal(t, 3, g.Len())
	assert.Len(t, Collect(g.Find(a, Any, Any)), 2)
	assert.Len(t, Collect(g.Find(Any, p, Any)), 2)
	assert.Len(t, Collect(g.Find(Any, Any, c)), 2)
	assert.Len(t, Collect(g.Find(Any, p, c)), 1)
	assert.Len(t, Collect(g.Find(a, p, b)), 1)
	assert.Len(t, Collect(g.Find(Any, Any, Any)), 3)
	assert.Empty(t, Collect(g.Find(c, Any, Any)))

	require.NoError(t, g.Delete(NewTriple(a, p, b)))
	assert.False(t, g.Contains(NewTriple(a, p, b)))
	assert.Equal(t, 2, g.Len())
}

func TestMem_ListenersSeeOnlyRealChanges(t *testing.T) {
	g := NewMem()
	var added, deleted []Triple
	cancel := g.Subscribe(ListenerFuncs{
		Added:   func(t Triple) { added = append(added, t) },
		Deleted: func(t Triple) { deleted = append(deleted, t) },
	})

	tr := NewTriple(IRI(ex+"a"), IRI(ex+"p"), IRI(ex+"b"))
	require.NoError(t, g.Add(tr))
	require.NoError(t, g.Add(tr))
	require.NoError(t, g.Delete(tr))
	require.NoError(t, g.Delete(tr))
	assert.Equal(t, []Triple{tr}, added)
	assert.Equal(t, []Triple{tr}, deleted)

	cancel()
	require.NoError(t, g.Add(tr))
	assert.Len(t, added, 1)
}

func TestMem_FindToleratesWrites(t *testing.T) {
	g := NewMem()
	p := IRI(ex + "p")
	require.NoError(t, g.Add(NewTriple(IRI(ex+"a"), p, IRI(ex+"b"))))
	for tr := range g.Find(Any, p, Any) {
		require.NoError(t, g.Add(NewTriple(tr.O, p, IRI(ex+"c"))))
	}
	assert.Equal(t, 2, g.Len())
}

func TestUnion(t *testing.T) {
	base, imp := NewMem(), NewMem()
	a, p := IRI(ex+"a"), IRI(ex+"p")
	shared := NewTriple(a, p, IRI(ex+"s"))
	require.NoError(t, base.Add(shared))
	require.NoError(t, imp.Add(shared))
	require.NoError(t, imp.Add(NewTriple(a, p, IRI(ex+"i"))))

	u := NewUnion(base, imp)
	assert.Equal(t, 2, u.Len())
	assert.True(t, u.Contains(NewTriple(a, p, IRI(ex+"i"))))

	require.NoError(t, u.Add(NewTriple(a, p, IRI(ex+"new"))))
	assert.Equal(t, 2, base.Len())
	assert.Equal(t, 2, imp.Len())
	assert.Same(t, base, Local(u))
}

func TestReadOnly(t *testing.T) {
	g := NewMem()
	tr := NewTriple(IRI(ex+"a"), IRI(ex+"p"), IRI(ex+"b"))
	require.NoError(t, g.Add(tr))

	ro := ReadOnly(g)
	assert.ErrorIs(t, ro.Add(tr), errors.ErrModificationDenied)
	assert.ErrorIs(t, ro.Delete(tr), errors.ErrModificationDenied)
	assert.True(t, ro.Contains(tr))
	assert.Same(t, g, Local(ro))
}

func TestMutate_RecordsChanges(t *testing.T) {
	g := NewMem()
	a, p := IRI(ex+"a"), IRI(ex+"p")
	old := NewTriple(a, p, IRI(ex+"old"))
	require.NoError(t, g.Add(old))

	cs, err := Mutate(g, func(w Graph) error {
		if err := w.Delete(old); err != nil {
			return err
		}
		return w.Add(NewTriple(a, p, IRI(ex+"new")))
	})
	require.NoError(t, err)
	assert.Equal(t, []Triple{old}, cs.Removed)
	assert.Equal(t, []Triple{NewTriple(a, p, IRI(ex+"new"))}, cs.Added)
	assert.False(t, cs.Empty())

	cs, err = Mutate(ReadOnly(g), func(w Graph) error {
		return w.Add(old)
	})
	assert.ErrorIs(t, err, errors.ErrModificationDenied)
	assert.True(t, cs.Empty())
}

func TestLists(t *testing.T) {
	g := NewMem()
	items := []Node{IRI(ex + "a"), IRI(ex + "b"), Literal("c", "")}
	head, err := WriteList(g, items)
	require.NoError(t, err)
	assert.True(t, head.IsBlank())

	got, triples, err := ReadList(g, head)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Len(t, triples, 6)
	assert.True(t, TryView(g, head, ViewList))

	empty, err := WriteList(g, nil)
	require.NoError(t, err)
	assert.True(t, empty.Is(vocab.RDFNil))
	got, _, err = ReadList(g, empty)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadList_Malformed(t *testing.T) {
	g := NewMem()
	first, rest := IRI(vocab.RDFFirst), IRI(vocab.RDFRest)

	cyc := Blank("cyc")
	require.NoError(t, g.Add(NewTriple(cyc, first, IRI(ex+"a"))))
	require.NoError(t, g.Add(NewTriple(cyc, rest, cyc)))
	_, _, err := ReadList(g, cyc)
	assert.ErrorIs(t, err, errors.ErrRecursiveStructure)

	open := Blank("open")
	require.NoError(t, g.Add(NewTriple(open, first, IRI(ex+"a"))))
	_, _, err = ReadList(g, open)
	assert.ErrorIs(t, err, errors.ErrUnsupportedShape)

	fork := Blank("fork")
	require.NoError(t, g.Add(NewTriple(fork, first, IRI(ex+"a"))))
	require.NoError(t, g.Add(NewTriple(fork, first, IRI(ex+"b"))))
	require.NoError(t, g.Add(NewTriple(fork, rest, IRI(vocab.RDFNil))))
	_, _, err = ReadList(g, fork)
	assert.ErrorIs(t, err, errors.ErrUnsupportedShape)
}

func TestViewOf(t *testing.T) {
	g := NewMem()
	typ := IRI(vocab.RDFType)
	add := func(s, p, o Node) { require.NoError(t, g.Add(NewTriple(s, p, o))) }

	person := IRI(ex + "Person")
	add(person, typ, IRI(vocab.OWLClass))
	add(person, typ, IRI(vocab.OWLNamedIndividual))
	knows := IRI(ex + "knows")
	add(knows, typ, IRI(vocab.OWLTransitiveProperty))
	alice := IRI(ex + "alice")
	add(alice, typ, person)

	restriction := Blank("r")
	add(restriction, typ, IRI(vocab.OWLRestriction))
	inverse := Blank("inv")
	add(inverse, IRI(vocab.OWLInverseOf), knows)

	assert.True(t, ViewOf(g, person).Has(ViewClass|ViewNamedIndividual))
	assert.True(t, TryView(g, knows, ViewObjectProperty))
	assert.True(t, TryView(g, alice, ViewNamedIndividual))
	assert.False(t, TryView(g, alice, ViewClass))
	assert.True(t, TryView(g, IRI(vocab.OWLThing), ViewClass))
	assert.True(t, TryView(g, IRI(vocab.XSDInteger), ViewDatatype))
	assert.True(t, TryView(g, restriction, ViewClassExpression))
	assert.True(t, TryView(g, inverse, ViewObjectInverse))
	assert.Equal(t, ViewAnonymousIndividual, ViewOf(g, Blank("lonely")))
	assert.Equal(t, View(0), ViewOf(g, Literal("x", "")))
	assert.Equal(t, "Class|NamedIndividual", ViewOf(g, person).String())
}

func TestNTriples_RoundTrip(t *testing.T) {
	src := strings.Join([]string{
		`<http://example.org/a> <http://example.org/p> <http://example.org/b> .`,
		`<http://example.org/a> <http://example.org/label> "hello"@en .`,
		`<http://example.org/a> <http://example.org/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`,
		`_:x <http://example.org/p> "plain" .`,
	}, "\n") + "\n"

	g := NewMem()
	n, err := ReadNTriples(strings.NewReader(src), g)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.True(t, g.Contains(NewTriple(IRI(ex+"a"), IRI(ex+"label"), LangLiteral("hello", "en"))))
	assert.True(t, g.Contains(NewTriple(Blank("x"), IRI(ex+"p"), Literal("plain", ""))))

	var buf bytes.Buffer
	require.NoError(t, WriteNTriples(&buf, g))

	back := NewMem()
	_, err = ReadNTriples(&buf, back)
	require.NoError(t, err)
	assert.ElementsMatch(t, Collect(g.Find(Any, Any, Any)), Collect(back.Find(Any, Any, Any)))
}
