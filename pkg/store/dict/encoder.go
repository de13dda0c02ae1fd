// Package dict maps RDF terms to compact uint64 IDs persisted in Badger.
package dict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/duynguyendang/ontograph/pkg/store/keys"
)

var (
	ErrNotFound = errors.New("key not found in dictionary")
)

// Key prefixes for dictionary storage in BadgerDB
const (
	dictForwardPrefix = byte(0x80) // String -> ID
	dictReversePrefix = byte(0x81) // ID -> String
)

// sequenceBandwidth is how many IDs the Badger sequence leases at a time.
const sequenceBandwidth = 1000

// Encoder implements bi-directional String <-> Uint64 mapping with LRU cache.
// It uses BadgerDB for persistent storage and an in-memory LRU cache for fast lookups.
type Encoder struct {
	db *badger.DB

	// In-memory LRU caches (expirable LRU with no expiration)
	forwardCache *lruCache[string, uint64]
	reverseCache *lruCache[uint64, string]

	// mu serializes ID allocation so a term never gets two IDs.
	mu  sync.Mutex
	seq *badger.Sequence
}

// lruCache wraps expirable.LRU for a simpler API
type lruCache[K comparable, V any] struct {
	cache *expirable.LRU[K, V]
}

func newLRUCache[K comparable, V any](size int) *lruCache[K, V] {
	return &lruCache[K, V]{
		cache: expirable.NewLRU[K, V](size, nil, 0),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	return c.cache.Get(key)
}

func (c *lruCache[K, V]) Add(key K, value V) {
	c.cache.Add(key, value)
}

// NewEncoder creates a dictionary encoder over db. A read-only database gets
// no ID sequence; GetOrCreateID then fails for unknown terms.
func NewEncoder(db *badger.DB, cacheSize int) (*Encoder, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	enc := &Encoder{
		db:           db,
		forwardCache: newLRUCache[string, uint64](cacheSize),
		reverseCache: newLRUCache[uint64, string](cacheSize),
	}
	if !db.Opts().ReadOnly {
		seq, err := db.GetSequence(keys.KeyTermSequence, sequenceBandwidth)
		if err != nil {
			return nil, fmt.Errorf("failed to open term sequence: %w", err)
		}
		enc.seq = seq
	}
	return enc, nil
}

// GetOrCreateID gets the ID for a string, creating a new ID if it doesn't exist.
// Thread-safe for concurrent access.
func (e *Encoder) GetOrCreateID(s string) (uint64, error) {
	id, err := e.GetID(s)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	// Re-check under the allocation lock.
	if id, err := e.lookupForward(s); err == nil {
		return id, nil
	}
	return e.allocateNewID(s)
}

func (e *Encoder) allocateNewID(s string) (uint64, error) {
	if e.seq == nil {
		return 0, fmt.Errorf("cannot allocate ID for %q: dictionary is read-only", s)
	}
	newID, err := e.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate ID: %w", err)
	}
	// ID 0 means "unbound" in scan prefixes.
	if newID == 0 {
		if newID, err = e.seq.Next(); err != nil {
			return 0, fmt.Errorf("failed to allocate ID: %w", err)
		}
	}

	err = e.db.Update(func(txn *badger.Txn) error {
		idBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(idBytes, newID)
		if err := txn.Set(makeDictForwardKey(s), idBytes); err != nil {
			return err
		}
		return txn.Set(makeDictReverseKey(newID), []byte(s))
	})
	if err != nil {
		return 0, err
	}

	e.forwardCache.Add(s, newID)
	e.reverseCache.Add(newID, s)
	return newID, nil
}

// GetID gets the ID for a string without creating a new one.
// Returns ErrNotFound if the string doesn't exist.
func (e *Encoder) GetID(s string) (uint64, error) {
	if id, ok := e.forwardCache.Get(s); ok && id != 0 {
		return id, nil
	}
	return e.lookupForward(s)
}

func (e *Encoder) lookupForward(s string) (uint64, error) {
	var id uint64
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeDictForwardKey(s))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	e.forwardCache.Add(s, id)
	return id, nil
}

// GetString gets the string for an ID.
// Returns ErrNotFound if the ID doesn't exist.
func (e *Encoder) GetString(id uint64) (string, error) {
	if s, ok := e.reverseCache.Get(id); ok && s != "" {
		return s, nil
	}

	var s string
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeDictReverseKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			s = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	e.reverseCache.Add(id, s)
	return s, nil
}

// makeDictForwardKey creates a BadgerDB key for string -> ID lookup.
func makeDictForwardKey(s string) []byte {
	// Format: [0x80 | string_bytes]
	key := make([]byte, 1+len(s))
	key[0] = dictForwardPrefix
	copy(key[1:], s)
	return key
}

// makeDictReverseKey creates a BadgerDB key for ID -> string lookup.
func makeDictReverseKey(id uint64) []byte {
	// Format: [0x81 | id(8)]
	key := make([]byte, 9)
	key[0] = dictReversePrefix
	binary.BigEndian.PutUint64(key[1:9], id)
	return key
}

// Close releases the unused part of the leased ID range.
func (e *Encoder) Close() error {
	slog.Info("dictionary closed",
		"forwardCacheLen", e.forwardCache.cache.Len(),
		"reverseCacheLen", e.reverseCache.cache.Len(),
	)
	if e.seq != nil {
		return e.seq.Release()
	}
	return nil
}
