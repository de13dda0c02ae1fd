// Package cli implements the ontograph command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/duynguyendang/ontograph/internal/manager"
	"github.com/duynguyendang/ontograph/pkg/common/errors"
	"github.com/duynguyendang/ontograph/pkg/config"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	configPath string
	dataDir    string
	logLevel   string
	cfg        *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "ontograph",
		Short: "Read and edit OWL ontologies stored as RDF graphs",
		Long: `ontograph keeps OWL ontologies as RDF triples in per-project BadgerDB
stores and reads them back as axioms through a per-shape axiom cache.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Directory holding one sub-directory per project")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(a.loadCmd(), a.axiomsCmd(), a.queryCmd(), a.exportCmd(), a.serveCmd(), a.mcpCmd(), a.replCmd())
	return cmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	a.cfg = cfg
	return nil
}

func (a *app) manager(metrics prometheus.Registerer) (*manager.StoreManager, error) {
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return manager.NewStoreManager(a.cfg, metrics)
}

// openOrCreate opens a project, creating it when it does not exist yet.
func openOrCreate(mgr *manager.StoreManager, id string) (*manager.Project, error) {
	p, err := mgr.GetProject(id)
	if errors.Is(err, errors.ErrNotFound) {
		return mgr.CreateProject(manager.ProjectMetadata{ID: id})
	}
	return p, err
}
