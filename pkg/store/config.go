package store

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Resource profiles understood by buildBadgerOptions.
const (
	ProfileIngestHeavy = "Ingest-Heavy"
	ProfileSafeServing = "Safe-Serving"
	ProfileLowMem      = "Cloud-Run-LowMem"
)

// Config holds the configuration for the Badger-backed graph.
type Config struct {
	// DataDir is the directory where BadgerDB will store its data.
	DataDir string `yaml:"data_dir"`

	// InMemory enables in-memory mode (useful for testing).
	InMemory bool `yaml:"in_memory"`

	// BlockCacheSize is the size of the block cache in bytes.
	BlockCacheSize int64 `yaml:"block_cache_size"`

	// IndexCacheSize is the size of the index cache in bytes.
	IndexCacheSize int64 `yaml:"index_cache_size"`

	// LRUCacheSize is the size of the term dictionary LRU cache.
	LRUCacheSize int `yaml:"lru_cache_size"`

	// Compression enables ZSTD compression.
	Compression bool `yaml:"compression"`

	// SyncWrites enables synchronous writes.
	// Disabled for performance, but may lose recent writes on crash.
	SyncWrites bool `yaml:"sync_writes"`

	// Profile specifies the resource profile ("Ingest-Heavy", "Safe-Serving", "Cloud-Run-LowMem").
	// Defaults to "Ingest-Heavy" if empty.
	Profile string `yaml:"profile"`

	// ReadOnly opens the database read-only; mutations fail with ErrModificationDenied.
	ReadOnly bool `yaml:"read_only"`
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.DataDir == "" && !c.InMemory {
		return fmt.Errorf("DataDir must be specified when InMemory is false")
	}
	if c.InMemory && c.ReadOnly {
		return fmt.Errorf("an in-memory store cannot be read-only")
	}
	if c.BlockCacheSize <= 0 {
		return fmt.Errorf("BlockCacheSize must be positive, got %d", c.BlockCacheSize)
	}
	if c.IndexCacheSize <= 0 {
		return fmt.Errorf("IndexCacheSize must be positive, got %d", c.IndexCacheSize)
	}
	if c.LRUCacheSize < 0 {
		return fmt.Errorf("LRUCacheSize must be non-negative, got %d", c.LRUCacheSize)
	}
	switch c.Profile {
	case "", ProfileIngestHeavy, ProfileSafeServing, ProfileLowMem:
	default:
		return fmt.Errorf("unknown profile %q", c.Profile)
	}
	return nil
}

// DefaultConfig returns a configuration sized for a single ontology server.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:        dataDir,
		BlockCacheSize: 256 << 20, // 256MB
		IndexCacheSize: 64 << 20,  // 64MB
		LRUCacheSize:   100000,
		Compression:    true,
		Profile:        ProfileSafeServing,
	}
}

// buildBadgerOptions converts Config to badger.Options based on Profile.
func buildBadgerOptions(cfg *Config) badger.Options {
	if cfg.InMemory {
		opts := badger.DefaultOptions("")
		opts.InMemory = true
		opts.Logger = nil
		return opts
	}

	opts := badger.DefaultOptions(filepath.Join(cfg.DataDir, "badger"))

	// Writes are serialized per graph; SPO/OPS/PSO consistency is kept by the store.
	opts.DetectConflicts = false
	opts.BloomFalsePositive = 0.01
	opts.ReadOnly = cfg.ReadOnly

	if cfg.Compression {
		opts.Compression = options.ZSTD
	} else {
		opts.Compression = options.None
	}

	switch cfg.Profile {
	case ProfileLowMem:
		opts.ValueLogFileSize = 32 << 20 // 32MB
		opts.NumCompactors = 2
	case ProfileSafeServing:
		opts.ValueLogFileSize = 64 << 20 // 64MB
		// Badger v4 requires at least 2 compactors.
		opts.NumCompactors = 2
	default:
		opts.ValueLogFileSize = 1 << 30 // 1GB
		opts.NumCompactors = 4
	}

	opts.BlockCacheSize = cfg.BlockCacheSize
	opts.IndexCacheSize = cfg.IndexCacheSize
	opts.SyncWrites = cfg.SyncWrites
	return opts
}
