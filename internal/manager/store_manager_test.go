package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/config"
	"github.com/duynguyendang/ontograph/pkg/owl"
)

func newManager(t *testing.T, mutate func(*config.Config)) *StoreManager {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.MemoryProfile = config.MemoryProfileLow
	if mutate != nil {
		mutate(cfg)
	}
	sm, err := NewStoreManager(cfg, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(sm.CloseAll)
	return sm
}

func TestStoreManager_LRU(t *testing.T) {
	sm := newManager(t, func(c *config.Config) { c.MaxOpenProjects = 1 })

	p1, err := sm.CreateProject(ProjectMetadata{ID: "p1"})
	require.NoError(t, err)
	p1Again, err := sm.GetProject("p1")
	require.NoError(t, err)
	assert.Same(t, p1, p1Again, "expected same instance for p1")

	ax := owl.MustAxiom(owl.Declaration, []owl.Object{owl.NewEntity(owl.Class, "http://example.org/A")})
	require.NoError(t, p1.Cache.Add(ax))

	// Opening p2 evicts and closes p1.
	_, err = sm.CreateProject(ProjectMetadata{ID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, 1, sm.projects.Len())

	reopened, err := sm.GetProject("p1")
	require.NoError(t, err)
	assert.NotSame(t, p1, reopened)
	ok, err := reopened.Cache.Contains(ax)
	require.NoError(t, err)
	assert.True(t, ok, "axioms persist across reopen")
}

func TestStoreManager_GetProject_Errors(t *testing.T) {
	sm := newManager(t, nil)

	_, err := sm.GetProject("missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	for _, id := range []string{"", "..", "a/b", ".hidden"} {
		_, err := sm.GetProject(id)
		assert.ErrorIs(t, err, errors.ErrInvalidInput, id)
	}
}

func TestStoreManager_CreateProject_ReadOnly(t *testing.T) {
	sm := newManager(t, func(c *config.Config) { c.ReadOnly = true })
	_, err := sm.CreateProject(ProjectMetadata{ID: "p1"})
	assert.ErrorIs(t, err, errors.ErrModificationDenied)
}

func TestStoreManager_ListProjects_Caching(t *testing.T) {
	sm := newManager(t, nil)
	dir := sm.cfg.DataDir

	require.NoError(t, os.Mkdir(filepath.Join(dir, "p1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p1", metadataFile),
		[]byte(`{"name":"Pizza","description":"toppings"}`), 0o644))

	projects, err := sm.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []ProjectMetadata{{ID: "p1", Name: "Pizza", Description: "toppings"}}, projects)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "p2"), 0o755))

	// Served from cache.
	projects, err = sm.ListProjects()
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	sm.mu.Lock()
	sm.lastListBuild = time.Now().Add(-2 * ProjectListTTL)
	sm.mu.Unlock()

	projects, err = sm.ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p2", projects[1].Name)
}

func TestStoreManager_CreateProject_ResetsListing(t *testing.T) {
	sm := newManager(t, nil)

	projects, err := sm.ListProjects()
	require.NoError(t, err)
	assert.Empty(t, projects)

	_, err = sm.CreateProject(ProjectMetadata{ID: "wine", Name: "Wine"})
	require.NoError(t, err)

	projects, err = sm.ListProjects()
	require.NoError(t, err)
	assert.Equal(t, []ProjectMetadata{{ID: "wine", Name: "Wine"}}, projects)
}
