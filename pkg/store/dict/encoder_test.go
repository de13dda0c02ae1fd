package dict

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("")
	opts.InMemory = true
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEncoder_GetOrCreateID(t *testing.T) {
	enc, err := NewEncoder(openDB(t), 16)
	require.NoError(t, err)
	defer enc.Close()

	a, err := enc.GetOrCreateID("<http://example.org/a>")
	require.NoError(t, err)
	assert.NotZero(t, a)

	again, err := enc.GetOrCreateID("<http://example.org/a>")
	require.NoError(t, err)
	assert.Equal(t, a, again)

	b, err := enc.GetOrCreateID(`"b"`)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	s, err := enc.GetString(b)
	require.NoError(t, err)
	assert.Equal(t, `"b"`, s)
}

func TestEncoder_MissesAreReported(t *testing.T) {
	enc, err := NewEncoder(openDB(t), 1)
	require.NoError(t, err)
	defer enc.Close()

	_, err = enc.GetID("absent")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = enc.GetString(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEncoder_SurvivesCacheEviction(t *testing.T) {
	enc, err := NewEncoder(openDB(t), 1)
	require.NoError(t, err)
	defer enc.Close()

	ids := make(map[string]uint64)
	for _, s := range []string{"x", "y", "z"} {
		id, err := enc.GetOrCreateID(s)
		require.NoError(t, err)
		ids[s] = id
	}
	for s, id := range ids {
		got, err := enc.GetID(s)
		require.NoError(t, err)
		assert.Equal(t, id, got)
		back, err := enc.GetString(id)
		require.NoError(t, err)
		assert.Equal(t, s, back)
	}
}
