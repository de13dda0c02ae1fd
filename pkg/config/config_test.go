package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/store"
)

func env(vars map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Translate.LoadAnnotationAxioms)
	assert.True(t, cfg.Translate.AllowReadDeclarations)
	assert.False(t, cfg.Translate.IgnoreAxiomReadErrors)
	assert.False(t, cfg.Cache.Concurrent)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ontograph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /srv/ontologies
addr: ":9090"
log_level: debug
max_open_projects: 3
translate:
  split_axiom_annotations: true
  ignore_axiom_read_errors: true
cache:
  concurrent: true
identity:
  identifier_ttl: 30s
store:
  profile: Ingest-Heavy
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ontologies", cfg.DataDir)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3, cfg.MaxOpenProjects)
	assert.True(t, cfg.Translate.SplitAxiomAnnotations)
	assert.True(t, cfg.Translate.IgnoreAxiomReadErrors)
	assert.True(t, cfg.Translate.LoadAnnotationAxioms, "unset fields keep their defaults")
	assert.True(t, cfg.Cache.Concurrent)
	assert.Equal(t, 30*time.Second, cfg.Identity.IdentifierTTL)
	assert.Equal(t, store.ProfileIngestHeavy, cfg.Store.Profile)
	assert.Equal(t, 10000, cfg.Identity.EntityCacheSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ontograph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o644))
	t.Setenv("ONTOGRAPH_ADDR", ":7070")
	t.Setenv("ONTOGRAPH_READ_ONLY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.True(t, cfg.ReadOnly)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Run("typed overrides", func(t *testing.T) {
		cfg := Default()
		err := cfg.applyEnv(env(map[string]string{
			"ONTOGRAPH_DATA_DIR":                 " /tmp/o ",
			"ONTOGRAPH_IGNORE_AXIOM_READ_ERRORS": "1",
			"ONTOGRAPH_LOAD_ANNOTATION_AXIOMS":   "false",
			"ONTOGRAPH_MAX_OPEN_PROJECTS":        "4",
			"ONTOGRAPH_CACHE_KEEP_ORDER":         "true",
		}))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/o", cfg.DataDir)
		assert.True(t, cfg.Translate.IgnoreAxiomReadErrors)
		assert.False(t, cfg.Translate.LoadAnnotationAxioms)
		assert.Equal(t, 4, cfg.MaxOpenProjects)
		assert.True(t, cfg.Cache.KeepOrder)
	})

	t.Run("PORT fallback", func(t *testing.T) {
		cfg := Default()
		require.NoError(t, cfg.applyEnv(env(map[string]string{"PORT": "3000"})))
		assert.Equal(t, ":3000", cfg.Addr)

		cfg = Default()
		require.NoError(t, cfg.applyEnv(env(map[string]string{"PORT": "3000", "ONTOGRAPH_ADDR": ":1"})))
		assert.Equal(t, ":1", cfg.Addr)
	})

	t.Run("malformed values", func(t *testing.T) {
		assert.ErrorContains(t, Default().applyEnv(env(map[string]string{"ONTOGRAPH_READ_ONLY": "maybe"})), "ONTOGRAPH_READ_ONLY")
		assert.ErrorContains(t, Default().applyEnv(env(map[string]string{"ONTOGRAPH_MAX_OPEN_PROJECTS": "x"})), "ONTOGRAPH_MAX_OPEN_PROJECTS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"no projects", func(c *Config) { c.MaxOpenProjects = 0 }, "max_open_projects"},
		{"bad profile", func(c *Config) { c.MemoryProfile = "huge" }, "memory_profile"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad store profile", func(c *Config) { c.Store.Profile = "fast" }, "store"},
		{"bad identity", func(c *Config) { c.Identity.EntityCacheSize = 0 }, "identity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()
	cfg.ReadOnly = true
	cfg.MemoryProfile = MemoryProfileLow

	sc := cfg.StoreConfig("/data/p1")
	assert.Equal(t, "/data/p1", sc.DataDir)
	assert.True(t, sc.ReadOnly)
	assert.Equal(t, store.ProfileLowMem, sc.Profile)
	assert.Equal(t, int64(64<<20), sc.BlockCacheSize)
	assert.Empty(t, cfg.Store.DataDir, "the template is not modified")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
