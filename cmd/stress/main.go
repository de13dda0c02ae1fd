// Command stress loads a synthetic ontology into a Badger-backed graph through
// the axiom cache and reports ingestion, cold load and warm lookup timings.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/duynguyendang/ontograph/pkg/axiomcache"
	"github.com/duynguyendang/ontograph/pkg/identity"
	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/store"
	"github.com/duynguyendang/ontograph/pkg/translate"
)

type options struct {
	classes    int
	samples    int
	seed       int64
	dataDir    string
	report     string
	profile    string
	concurrent bool
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:          "stress",
		Short:        "Benchmark the axiom cache over a synthetic ontology",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := run(o)
			if err != nil {
				return err
			}
			f, err := os.Create(o.report)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := writeReport(f, stats); err != nil {
				return err
			}
			slog.Info("report written", "file", o.report)
			return nil
		},
	}
	cmd.Flags().IntVarP(&o.classes, "classes", "n", 10_000, "Number of classes to generate")
	cmd.Flags().IntVarP(&o.samples, "samples", "q", 10_000, "Number of samples for warm benchmarks")
	cmd.Flags().Int64Var(&o.seed, "seed", 42, "Random seed")
	cmd.Flags().StringVar(&o.dataDir, "dir", "./stress_data", "Data directory for the database")
	cmd.Flags().StringVar(&o.report, "report", "stress_report.md", "Output report file")
	cmd.Flags().StringVar(&o.profile, "profile", store.ProfileIngestHeavy, "Store profile")
	cmd.Flags().BoolVar(&o.concurrent, "concurrent", false, "Use the concurrent bucket index")
	return cmd
}

func run(o *options) (*Stats, error) {
	slog.Info("=== Axiom Cache Stress Test ===", "classes", o.classes, "samples", o.samples, "dir", o.dataDir)

	// Clean start
	if err := os.RemoveAll(o.dataDir); err != nil {
		return nil, err
	}
	cfg := store.DefaultConfig(o.dataDir)
	cfg.Profile = o.profile
	g, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	ids, err := identity.New(identity.DefaultConfig())
	if err != nil {
		return nil, err
	}
	reg, err := translate.NewRegistry(translate.DefaultOptions(), ids)
	if err != nil {
		return nil, err
	}
	cache := axiomcache.New(g, reg, axiomcache.Options{Concurrent: o.concurrent})
	defer cache.Close()

	gen := NewGenerator(o.seed)
	axioms := gen.Ontology(o.classes)
	stats := &Stats{Classes: o.classes, TotalAxioms: len(axioms), Samples: o.samples}

	collector := NewStatsCollector()
	collector.Start(time.Second)
	defer collector.Stop()

	// 1. Ingestion
	start := time.Now()
	for i, ax := range axioms {
		if err := cache.Add(ax); err != nil {
			return nil, fmt.Errorf("add %s: %w", ax, err)
		}
		if (i+1)%50_000 == 0 {
			slog.Info("ingestion progress", "axioms", i+1, "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}
	stats.IngestionDuration = time.Since(start)
	stats.TotalTriples = g.Len()
	if secs := stats.IngestionDuration.Seconds(); secs > 0 {
		stats.IngestionAxiomsPerSec = float64(len(axioms)) / secs
		stats.IngestionTriplesPerSec = float64(stats.TotalTriples) / secs
	}
	slog.Info("ingestion complete", "duration", stats.IngestionDuration.Round(time.Millisecond), "triples", stats.TotalTriples)

	// 2. Cold loads
	cache.Clear()
	debug.FreeOSMemory()
	start = time.Now()
	for _, shape := range owl.Shapes() {
		t := time.Now()
		loaded, err := cache.Axioms(shape)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", shape, err)
		}
		if len(loaded) > 0 {
			stats.ColdLoads = append(stats.ColdLoads, ShapeLoad{Shape: shape.String(), Axioms: len(loaded), Duration: time.Since(t)})
		}
	}
	stats.ColdLoadTotal = time.Since(start)
	slog.Info("cold loads complete", "duration", stats.ColdLoadTotal.Round(time.Millisecond))

	// 3. Warm lookups
	durations := make([]time.Duration, 0, o.samples)
	for _, ax := range gen.Sample(axioms, o.samples) {
		t := time.Now()
		ok, err := cache.Contains(ax)
		durations = append(durations, time.Since(t))
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", ax, err)
		}
		if !ok {
			stats.Misses++
		}
	}
	stats.Contains = summarize(durations)
	if stats.Misses > 0 {
		slog.Warn("axioms missing after reload", "misses", stats.Misses)
	}

	// 4. Edit churn
	durations = durations[:0]
	for _, ax := range gen.Sample(axioms, o.samples) {
		t := time.Now()
		if err := cache.Remove(ax); err != nil {
			return nil, fmt.Errorf("remove %s: %w", ax, err)
		}
		if err := cache.Add(ax); err != nil {
			return nil, fmt.Errorf("re-add %s: %w", ax, err)
		}
		durations = append(durations, time.Since(t))
	}
	stats.Churn = summarize(durations)

	collector.Stop()
	stats.PeakRAMBytes = collector.GetPeakRAM()
	slog.Info("stress test complete", "peak_ram_mb", stats.PeakRAMBytes/(1024*1024))
	return stats, nil
}
