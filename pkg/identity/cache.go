// Package identity memoizes OWL entities and parsed identifiers so repeated
// look-ups of one IRI return the same value. The caches are bounded and
// never authoritative: every entry can be rebuilt from the IRI alone.
package identity

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/duynguyendang/ontograph/pkg/owl"
)

// Config sizes the caches.
type Config struct {
	// EntityCacheSize bounds each per-kind entity cache.
	EntityCacheSize int `yaml:"entity_cache_size"`
	// IdentifierCacheSize bounds the parsed identifier cache.
	IdentifierCacheSize int `yaml:"identifier_cache_size"`
	// IdentifierTTL expires parsed identifiers; zero keeps them until evicted.
	IdentifierTTL time.Duration `yaml:"identifier_ttl"`
}

// DefaultConfig returns the default cache sizes.
func DefaultConfig() Config {
	return Config{
		EntityCacheSize:     10000,
		IdentifierCacheSize: 50000,
		IdentifierTTL:       10 * time.Minute,
	}
}

// Validate checks the sizes.
func (c Config) Validate() error {
	if c.EntityCacheSize <= 0 {
		return fmt.Errorf("EntityCacheSize must be positive, got %d", c.EntityCacheSize)
	}
	if c.IdentifierCacheSize <= 0 {
		return fmt.Errorf("IdentifierCacheSize must be positive, got %d", c.IdentifierCacheSize)
	}
	if c.IdentifierTTL < 0 {
		return fmt.Errorf("IdentifierTTL must be non-negative, got %s", c.IdentifierTTL)
	}
	return nil
}

// Identifier is a validated IRI split into namespace and local name.
type Identifier struct {
	IRI       owl.IRI
	Namespace string
	LocalName string
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Entities    int   `json:"entities"`
	Identifiers int   `json:"identifiers"`
}

// Cache holds one entity cache per kind, so a punned IRI gets an
// independent entity for each kind it is used as.
type Cache struct {
	entities [owl.NumEntityKinds]*lru.Cache[owl.IRI, *owl.Entity]
	ids      *expirable.LRU[string, Identifier]

	hits   atomic.Int64
	misses atomic.Int64
}

// New builds a cache.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Cache{
		ids: expirable.NewLRU[string, Identifier](cfg.IdentifierCacheSize, nil, cfg.IdentifierTTL),
	}
	for k := range c.entities {
		cache, err := lru.New[owl.IRI, *owl.Entity](cfg.EntityCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s cache: %w", owl.EntityKind(k), err)
		}
		c.entities[k] = cache
	}
	return c, nil
}

// Parse validates raw as an absolute IRI and splits it at the last '#',
// '/' or ':'.
func (c *Cache) Parse(raw string) (Identifier, error) {
	if id, ok := c.ids.Get(raw); ok {
		c.hits.Add(1)
		return id, nil
	}
	c.misses.Add(1)

	iri, err := owl.ParseIRI(raw)
	if err != nil {
		return Identifier{}, err
	}
	id := Identifier{IRI: iri, Namespace: raw}
	if i := strings.LastIndexAny(raw, "#/:"); i >= 0 && i < len(raw)-1 {
		id.Namespace, id.LocalName = raw[:i+1], raw[i+1:]
	}
	c.ids.Add(raw, id)
	return id, nil
}

// Entity returns the canonical entity of kind k for iri.
func (c *Cache) Entity(k owl.EntityKind, iri string) (*owl.Entity, error) {
	if int(k) >= len(c.entities) {
		return nil, fmt.Errorf("unknown entity kind %d", k)
	}
	cache := c.entities[k]
	if e, ok := cache.Get(owl.IRI(iri)); ok {
		c.hits.Add(1)
		return e, nil
	}
	id, err := c.Parse(iri)
	if err != nil {
		return nil, err
	}
	e := owl.NewEntity(k, id.IRI)
	// Another goroutine may have stored one first; keep the stored value.
	if prev, ok, _ := cache.PeekOrAdd(id.IRI, e); ok {
		return prev, nil
	}
	return e, nil
}

func (c *Cache) Class(iri string) (*owl.Entity, error)    { return c.Entity(owl.Class, iri) }
func (c *Cache) Datatype(iri string) (*owl.Entity, error) { return c.Entity(owl.Datatype, iri) }
func (c *Cache) ObjectProperty(iri string) (*owl.Entity, error) {
	return c.Entity(owl.ObjectProperty, iri)
}
func (c *Cache) DataProperty(iri string) (*owl.Entity, error) {
	return c.Entity(owl.DataProperty, iri)
}
func (c *Cache) AnnotationProperty(iri string) (*owl.Entity, error) {
	return c.Entity(owl.AnnotationProperty, iri)
}
func (c *Cache) NamedIndividual(iri string) (*owl.Entity, error) {
	return c.Entity(owl.NamedIndividual, iri)
}

// Purge drops every cached entry.
func (c *Cache) Purge() {
	for _, cache := range c.entities {
		cache.Purge()
	}
	c.ids.Purge()
	slog.Debug("identity cache purged")
}

// Stats returns hit and size counters.
func (c *Cache) Stats() Stats {
	s := Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Identifiers: c.ids.Len(),
	}
	for _, cache := range c.entities {
		s.Entities += cache.Len()
	}
	return s
}
