package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

const ex = "http://example.org/onto#"

func newCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	return c
}

func TestEntity_IsStable(t *testing.T) {
	c := newCache(t)
	a, err := c.Class(ex + "A")
	require.NoError(t, err)
	b, err := c.Class(ex + "A")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, owl.Class, a.Kind())
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestEntity_PunningKeepsKindsApart(t *testing.T) {
	c := newCache(t)
	asClass, err := c.Class(ex + "A")
	require.NoError(t, err)
	asIndividual, err := c.NamedIndividual(ex + "A")
	require.NoError(t, err)
	assert.NotSame(t, asClass, asIndividual)
	assert.Equal(t, owl.NamedIndividual, asIndividual.Kind())
	assert.Equal(t, 2, c.Stats().Entities)
}

func TestEntity_SurvivesPurge(t *testing.T) {
	c := newCache(t)
	before, err := c.ObjectProperty(ex + "p")
	require.NoError(t, err)
	c.Purge()
	assert.Zero(t, c.Stats().Entities)

	after, err := c.ObjectProperty(ex + "p")
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Key(), after.Key())
}

func TestEntity_EvictionIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EntityCacheSize = 2
	c, err := New(cfg)
	require.NoError(t, err)
	for _, n := range []string{"a", "b", "c", "d"} {
		_, err := c.DataProperty(ex + n)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Stats().Entities)
}

func TestParse(t *testing.T) {
	c := newCache(t)
	id, err := c.Parse(ex + "Person")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/onto#", id.Namespace)
	assert.Equal(t, "Person", id.LocalName)

	id, err = c.Parse("http://example.org/people/alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.LocalName)

	id, err = c.Parse("urn:isbn:0451450523")
	require.NoError(t, err)
	assert.Equal(t, "urn:isbn:", id.Namespace)

	_, err = c.Parse("not an iri")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
	_, err = c.Class("relative")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestParse_Expires(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IdentifierTTL = 10 * time.Millisecond
	c, err := New(cfg)
	require.NoError(t, err)

	_, err = c.Parse(ex + "A")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Stats().Identifiers)
	assert.Eventually(t, func() bool { return c.Stats().Identifiers == 0 }, time.Second, 5*time.Millisecond)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	bad := DefaultConfig()
	bad.EntityCacheSize = 0
	_, err := New(bad)
	assert.Error(t, err)
}
