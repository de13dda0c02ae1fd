// Package config loads the server and CLI configuration from a YAML file,
// a .env file and ONTOGRAPH_* environment variables, in increasing order of
// precedence.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/duynguyendang/ontograph/pkg/axiomcache"
	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/store"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ONTOGRAPH_"

// Memory profiles for the project manager.
const (
	MemoryProfileDefault = "default"
	MemoryProfileLow     = "low"
)

// Config is the complete runtime configuration.
type Config struct {
	// DataDir holds one sub-directory per project.
	DataDir string `yaml:"data_dir"`
	// Addr is the listen address of the REST server.
	Addr string `yaml:"addr"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ReadOnly opens every project store read-only.
	ReadOnly bool `yaml:"read_only"`
	// MaxOpenProjects bounds the projects kept open at once.
	MaxOpenProjects int `yaml:"max_open_projects"`
	// MemoryProfile selects the store cache sizes ("default" or "low").
	MemoryProfile string `yaml:"memory_profile"`

	Store     store.Config       `yaml:"store"`
	Translate translate.Options  `yaml:"translate"`
	Cache     axiomcache.Options `yaml:"cache"`
	Identity  identity.Config    `yaml:"identity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:         "./data",
		Addr:            ":8080",
		LogLevel:        "info",
		MaxOpenProjects: 10,
		MemoryProfile:   MemoryProfileDefault,
		Store:           *store.DefaultConfig(""),
		Translate:       translate.DefaultOptions(),
		Identity:        identity.DefaultConfig(),
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty), a .env file in the working directory if one
// exists, and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must be specified")
	}
	if c.MaxOpenProjects <= 0 {
		return fmt.Errorf("max_open_projects must be positive, got %d", c.MaxOpenProjects)
	}
	switch c.MemoryProfile {
	case MemoryProfileDefault, MemoryProfileLow:
	default:
		return fmt.Errorf("unknown memory_profile %q", c.MemoryProfile)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.StoreConfig(c.DataDir).Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Identity.Validate(); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	return nil
}

// StoreConfig returns the store settings for one project directory,
// adjusted for the memory profile and read-only flag.
func (c *Config) StoreConfig(dir string) *store.Config {
	sc := c.Store
	sc.DataDir = dir
	sc.ReadOnly = c.ReadOnly
	if c.MemoryProfile == MemoryProfileLow {
		sc.BlockCacheSize = 64 << 20 // 64 MB
		sc.IndexCacheSize = 64 << 20 // 64 MB
		sc.Profile = store.ProfileLowMem
	}
	return &sc
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log_level %q", s)
	}
	return l, nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv overrides fields from ONTOGRAPH_* variables. PORT is honoured
// as well when ONTOGRAPH_ADDR is unset.
func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"DATA_DIR":       &c.DataDir,
		"ADDR":           &c.Addr,
		"LOG_LEVEL":      &c.LogLevel,
		"MEMORY_PROFILE": &c.MemoryProfile,
		"STORE_PROFILE":  &c.Store.Profile,
	}
	bools := map[string]*bool{
		"READ_ONLY":                        &c.ReadOnly,
		"STORE_SYNC_WRITES":                &c.Store.SyncWrites,
		"STORE_COMPRESSION":                &c.Store.Compression,
		"LOAD_ANNOTATION_AXIOMS":           &c.Translate.LoadAnnotationAxioms,
		"ALLOW_BULK_ANNOTATION_ASSERTIONS": &c.Translate.AllowBulkAnnotationAssertions,
		"IGNORE_ANNOTATION_AXIOM_OVERLAPS": &c.Translate.IgnoreAnnotationAxiomOverlaps,
		"ALLOW_READ_DECLARATIONS":          &c.Translate.AllowReadDeclarations,
		"SPLIT_AXIOM_ANNOTATIONS":          &c.Translate.SplitAxiomAnnotations,
		"IGNORE_AXIOM_READ_ERRORS":         &c.Translate.IgnoreAxiomReadErrors,
		"CACHE_CONCURRENT":                 &c.Cache.Concurrent,
		"CACHE_KEEP_ORDER":                 &c.Cache.KeepOrder,
	}
	ints := map[string]*int{
		"MAX_OPEN_PROJECTS":     &c.MaxOpenProjects,
		"ENTITY_CACHE_SIZE":     &c.Identity.EntityCacheSize,
		"IDENTIFIER_CACHE_SIZE": &c.Identity.IdentifierCacheSize,
	}

	if _, ok := lookup(EnvPrefix + "ADDR"); !ok {
		if port, ok := lookup("PORT"); ok && port != "" {
			c.Addr = ":" + port
		}
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	for name, dst := range bools {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}
	for name, dst := range ints {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}
	return nil
}
