package manager

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/duynguyendang/ontograph/pkg/axiomcache"
	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/config"
	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/store"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

// ProjectListTTL is how long ListProjects serves its cached listing.
const ProjectListTTL = 1 * time.Minute

const metadataFile = "metadata.json"

// ProjectMetadata represents the project information exposed by the API.
type ProjectMetadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Project is one open ontology: its persistent graph and the axiom cache
// over it.
type Project struct {
	ID    string
	Graph *store.Graph
	Cache *axiomcache.Controller
}

// Close detaches the cache and closes the graph.
func (p *Project) Close() error {
	p.Cache.Close()
	return p.Graph.Close()
}

// StoreManager keeps a bounded set of projects open. Projects evicted from
// the LRU are closed.
type StoreManager struct {
	cfg      *config.Config
	reg      *translate.Registry
	metrics  prometheus.Registerer
	projects *lru.Cache[string, *Project]

	mu            sync.RWMutex
	cachedList    []ProjectMetadata
	lastListBuild time.Time
}

// NewStoreManager creates a manager for the projects under cfg.DataDir. All
// projects share one translator registry and identity cache. A nil metrics
// registerer disables the cache counters.
func NewStoreManager(cfg *config.Config, metrics prometheus.Registerer) (*StoreManager, error) {
	ids, err := identity.New(cfg.Identity)
	if err != nil {
		return nil, err
	}
	reg, err := translate.NewRegistry(cfg.Translate, ids)
	if err != nil {
		return nil, err
	}
	cache, err := lru.NewWithEvict[string, *Project](cfg.MaxOpenProjects, func(id string, p *Project) {
		if err := p.Close(); err != nil {
			slog.Warn("failed to close project", "project", id, "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return &StoreManager{
		cfg:      cfg,
		reg:      reg,
		metrics:  metrics,
		projects: cache,
	}, nil
}

// Registry returns the translator registry shared by every project.
func (sm *StoreManager) Registry() *translate.Registry { return sm.reg }

func validID(id string) error {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: invalid project id %q", errors.ErrInvalidInput, id)
	}
	return nil
}

// GetProject returns the project with the given ID, opening it if necessary.
func (sm *StoreManager) GetProject(id string) (*Project, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if p, ok := sm.projects.Get(id); ok {
		return p, nil
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Double-check under lock
	if p, ok := sm.projects.Get(id); ok {
		return p, nil
	}

	dir := filepath.Join(sm.cfg.DataDir, id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: project %s", errors.ErrNotFound, id)
	}

	g, err := store.Open(sm.cfg.StoreConfig(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open store for project %s: %w", id, err)
	}
	opts := sm.cfg.Cache
	opts.Registerer = sm.metrics
	p := &Project{ID: id, Graph: g, Cache: axiomcache.New(g, sm.reg, opts)}

	sm.projects.Add(id, p)
	slog.Info("project opened", "project", id, "triples", g.Len())
	return p, nil
}

// CreateProject creates an empty project directory and opens it.
func (sm *StoreManager) CreateProject(meta ProjectMetadata) (*Project, error) {
	if sm.cfg.ReadOnly {
		return nil, errors.Denied("create project")
	}
	if err := validID(meta.ID); err != nil {
		return nil, err
	}
	dir := filepath.Join(sm.cfg.DataDir, meta.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project %s: %w", meta.ID, err)
	}
	if meta.Name != "" || meta.Description != "" {
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write project metadata: %w", err)
		}
	}

	sm.mu.Lock()
	sm.cachedList = nil
	sm.mu.Unlock()

	return sm.GetProject(meta.ID)
}

// ListProjects returns a list of available projects.
func (sm *StoreManager) ListProjects() ([]ProjectMetadata, error) {
	sm.mu.RLock()
	if time.Since(sm.lastListBuild) < ProjectListTTL && sm.cachedList != nil {
		list := make([]ProjectMetadata, len(sm.cachedList))
		copy(list, sm.cachedList)
		sm.mu.RUnlock()
		return list, nil
	}
	sm.mu.RUnlock()

	sm.mu.Lock()
	defer sm.mu.Unlock()

	// Double-check
	if time.Since(sm.lastListBuild) < ProjectListTTL && sm.cachedList != nil {
		list := make([]ProjectMetadata, len(sm.cachedList))
		copy(list, sm.cachedList)
		return list, nil
	}

	entries, err := os.ReadDir(sm.cfg.DataDir)
	if err != nil {
		return nil, err
	}

	projects := []ProjectMetadata{}
	for _, entry := range entries {
		if !entry.IsDir() || validID(entry.Name()) != nil {
			continue
		}
		id := entry.Name()
		meta := ProjectMetadata{ID: id, Name: id}

		if data, err := os.ReadFile(filepath.Join(sm.cfg.DataDir, id, metadataFile)); err == nil {
			var jsonMeta ProjectMetadata
			if err := json.Unmarshal(data, &jsonMeta); err == nil {
				if jsonMeta.Name != "" {
					meta.Name = jsonMeta.Name
				}
				meta.Description = jsonMeta.Description
			}
		}
		projects = append(projects, meta)
	}

	sm.cachedList = projects
	sm.lastListBuild = time.Now()

	list := make([]ProjectMetadata, len(projects))
	copy(list, projects)
	return list, nil
}

// CloseAll closes all open projects.
func (sm *StoreManager) CloseAll() {
	sm.projects.Purge()
}
