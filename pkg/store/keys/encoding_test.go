package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeKey_AllIndexes(t *testing.T) {
	for _, key := range [][]byte{
		EncodeSPOKey(1, 2, 3),
		EncodeOPSKey(1, 2, 3),
		EncodePSOKey(1, 2, 3),
	} {
		s, p, o, ok := DecodeKey(key)
		assert.True(t, ok)
		assert.Equal(t, []uint64{1, 2, 3}, []uint64{s, p, o})
	}

	_, _, _, ok := DecodeKey(KeyTermSequence)
	assert.False(t, ok)
}

func TestEncodePrefix(t *testing.T) {
	assert.Equal(t, []byte{SPOPrefix}, EncodePrefix(SPOPrefix, 0, 7))
	assert.Len(t, EncodePrefix(OPSPrefix, 3, 0), PrefixSize+IDSize)
	assert.Len(t, EncodePrefix(PSOPrefix, 3, 4), PrefixSize+2*IDSize)

	key := EncodeSPOKey(5, 6, 7)
	assert.True(t, bytes.HasPrefix(key, EncodePrefix(SPOPrefix, 5, 6)))
	assert.False(t, bytes.HasPrefix(key, EncodePrefix(SPOPrefix, 5, 8)))
	assert.True(t, bytes.HasPrefix(EncodeOPSKey(5, 6, 7), EncodePrefix(OPSPrefix, 7, 6)))
	assert.True(t, bytes.HasPrefix(EncodePSOKey(5, 6, 7), EncodePrefix(PSOPrefix, 6, 5)))
}

func TestKeysSortNumerically(t *testing.T) {
	assert.Equal(t, -1, bytes.Compare(EncodeSPOKey(1, 9, 9), EncodeSPOKey(256, 0, 0)))
}
