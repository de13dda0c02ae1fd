// Package keys lays out the Badger keys of the triple indexes.
package keys

import (
	"encoding/binary"
)

// Prefix constants for the triple indexes.
const (
	SPOPrefix byte = 0x01 // Subject-Predicate-Object index
	OPSPrefix byte = 0x02 // Object-Predicate-Subject index
	PSOPrefix byte = 0x03 // Predicate-Subject-Object index

	// System keys (0xFF reserved for system metadata)
	SystemPrefix byte = 0xFF
)

// Key size constants
const (
	PrefixSize = 1 // Size of key prefix byte
	IDSize     = 8 // Size of each uint64 ID component

	// Triple key sizes: prefix(1) + 3*ID(8) = 25 bytes
	TripleKeySize = PrefixSize + 3*IDSize
)

// KeyTermSequence is the Badger sequence that hands out term IDs.
var KeyTermSequence = []byte{SystemPrefix, 0x02}

// Triple encoding format:
// SPO: [prefix(1) | subject(8) | predicate(8) | object(8)] = 25 bytes
// OPS: [prefix(1) | object(8) | predicate(8) | subject(8)] = 25 bytes
// PSO: [prefix(1) | predicate(8) | subject(8) | object(8)] = 25 bytes

func encode(prefix byte, a, b, c uint64) []byte {
	key := make([]byte, TripleKeySize)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:9], a)
	binary.BigEndian.PutUint64(key[9:17], b)
	binary.BigEndian.PutUint64(key[17:25], c)
	return key
}

func decode(prefix byte, key []byte) (a, b, c uint64, ok bool) {
	if len(key) != TripleKeySize || key[0] != prefix {
		return 0, 0, 0, false
	}
	return binary.BigEndian.Uint64(key[1:9]),
		binary.BigEndian.Uint64(key[9:17]),
		binary.BigEndian.Uint64(key[17:25]),
		true
}

// EncodeSPOKey encodes a triple into an SPO key.
// BigEndian keeps lexicographic key order equal to numeric order.
func EncodeSPOKey(subject, predicate, object uint64) []byte {
	return encode(SPOPrefix, subject, predicate, object)
}

// EncodeOPSKey encodes a triple into an OPS key.
func EncodeOPSKey(subject, predicate, object uint64) []byte {
	return encode(OPSPrefix, object, predicate, subject)
}

// EncodePSOKey encodes a triple into a PSO key.
func EncodePSOKey(subject, predicate, object uint64) []byte {
	return encode(PSOPrefix, predicate, subject, object)
}

// DecodeKey decodes a key of any triple index back into subject, predicate
// and object IDs. ok is false for keys that are not triple keys.
func DecodeKey(key []byte) (subject, predicate, object uint64, ok bool) {
	if len(key) != TripleKeySize {
		return 0, 0, 0, false
	}
	switch key[0] {
	case SPOPrefix:
		subject, predicate, object, ok = decode(SPOPrefix, key)
	case OPSPrefix:
		object, predicate, subject, ok = decode(OPSPrefix, key)
	case PSOPrefix:
		predicate, subject, object, ok = decode(PSOPrefix, key)
	}
	return
}

// EncodePrefix builds a range-scan prefix for index from the leading bound
// IDs. Zero IDs end the prefix: (s, 0) scans all of s, (0, _) the whole index.
func EncodePrefix(index byte, first, second uint64) []byte {
	if first == 0 {
		return []byte{index}
	}
	if second == 0 {
		prefix := make([]byte, PrefixSize+IDSize) // 9 bytes
		prefix[0] = index
		binary.BigEndian.PutUint64(prefix[1:9], first)
		return prefix
	}
	prefix := make([]byte, PrefixSize+2*IDSize) // 17 bytes
	prefix[0] = index
	binary.BigEndian.PutUint64(prefix[1:9], first)
	binary.BigEndian.PutUint64(prefix[9:17], second)
	return prefix
}
