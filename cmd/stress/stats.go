package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

// StatsCollector tracks memory usage during the stress test
type StatsCollector struct {
	peakRAM  uint64
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewStatsCollector creates a new stats collector
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		stopChan: make(chan struct{}),
	}
}

// Start begins monitoring memory usage
func (sc *StatsCollector) Start(every time.Duration) {
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sc.sample()
			case <-sc.stopChan:
				sc.sample()
				return
			}
		}
	}()
}

func (sc *StatsCollector) sample() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	sc.mu.Lock()
	if m.Alloc > sc.peakRAM {
		sc.peakRAM = m.Alloc
	}
	sc.mu.Unlock()
}

// Stop stops monitoring memory usage. It is safe to call more than once.
func (sc *StatsCollector) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopChan) })
	sc.wg.Wait()
}

// GetPeakRAM returns the peak RAM usage in bytes
func (sc *StatsCollector) GetPeakRAM() uint64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.peakRAM
}

// Latency summarises a set of timed operations in milliseconds.
type Latency struct {
	P50, P95, P99 float64
	OpsPerSec     float64
}

func summarize(samples []time.Duration) Latency {
	if len(samples) == 0 {
		return Latency{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	at := func(q float64) float64 {
		i := min(int(q*float64(len(sorted))), len(sorted)-1)
		return float64(sorted[i].Microseconds()) / 1000
	}
	l := Latency{P50: at(0.50), P95: at(0.95), P99: at(0.99)}
	if l.P50 > 0 {
		l.OpsPerSec = 1000 / l.P50
	}
	return l
}

// ShapeLoad records the cold load of one shape bucket.
type ShapeLoad struct {
	Shape    string
	Axioms   int
	Duration time.Duration
}

// Stats holds all metrics collected during the stress test
type Stats struct {
	Classes      int
	TotalAxioms  int
	TotalTriples int
	PeakRAMBytes uint64
	Samples      int

	IngestionDuration      time.Duration
	IngestionAxiomsPerSec  float64
	IngestionTriplesPerSec float64

	ColdLoads     []ShapeLoad
	ColdLoadTotal time.Duration

	Contains Latency
	Misses   int
	Churn    Latency
}

// writeReport renders a markdown report of the test results.
func writeReport(w io.Writer, stats *Stats) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Axiom Cache Stress Test Report\n\n")
	fmt.Fprintf(&b, "**Date:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Hardware:** %s / %s / %d Cores\n\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	fmt.Fprintf(&b, "## 1. Ontology\n")
	fmt.Fprintf(&b, "* **Classes:** %d\n", stats.Classes)
	fmt.Fprintf(&b, "* **Axioms:** %d\n", stats.TotalAxioms)
	fmt.Fprintf(&b, "* **Triples:** %d\n", stats.TotalTriples)
	fmt.Fprintf(&b, "* **Peak RAM Usage:** %.2f MB\n\n", float64(stats.PeakRAMBytes)/(1024*1024))

	fmt.Fprintf(&b, "## 2. Ingestion Performance\n")
	fmt.Fprintf(&b, "* **Total Time:** %s\n", stats.IngestionDuration.Round(time.Millisecond))
	fmt.Fprintf(&b, "* **Throughput:** %.0f axioms/s\n", stats.IngestionAxiomsPerSec)
	fmt.Fprintf(&b, "* **Triple Throughput:** %.0f triples/s\n\n", stats.IngestionTriplesPerSec)

	fmt.Fprintf(&b, "## 3. Cold Bucket Loads (total %s)\n\n", stats.ColdLoadTotal.Round(time.Millisecond))
	fmt.Fprintf(&b, "| Shape | Axioms | Load (ms) |\n| :--- | :--- | :--- |\n")
	for _, l := range stats.ColdLoads {
		fmt.Fprintf(&b, "| %s | %d | %.2f |\n", l.Shape, l.Axioms, float64(l.Duration.Microseconds())/1000)
	}

	fmt.Fprintf(&b, "\n## 4. Warm Operations (%d samples)\n\n", stats.Samples)
	fmt.Fprintf(&b, "| Operation | P50 (ms) | P95 (ms) | P99 (ms) | Ops/sec |\n| :--- | :--- | :--- | :--- | :--- |\n")
	for _, row := range []struct {
		name string
		l    Latency
	}{{"**Contains**", stats.Contains}, {"**Remove + Add**", stats.Churn}} {
		fmt.Fprintf(&b, "| %s | %.3f | %.3f | %.3f | %.0f |\n", row.name, row.l.P50, row.l.P95, row.l.P99, row.l.OpsPerSec)
	}

	fmt.Fprintf(&b, "\n## 5. Observations\n%s", generateObservations(stats))
	fmt.Fprintf(&b, "\n---\n\n**Notes:**\n")
	fmt.Fprintf(&b, "* P50/P95/P99: 50th/95th/99th percentile latencies (lower is better)\n")
	fmt.Fprintf(&b, "* Ops/sec: Estimated operations per second based on P50 latency\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateObservations creates auto-generated comments based on performance thresholds
func generateObservations(stats *Stats) string {
	var obs strings.Builder

	switch p95 := stats.Contains.P95; {
	case p95 < 0.05:
		obs.WriteString("* **Contains:** Excellent speed (P95 < 50µs)\n")
	case p95 < 1:
		obs.WriteString("* **Contains:** Good performance (P95 < 1ms)\n")
	default:
		fmt.Fprintf(&obs, "* **Contains:** Consider optimization (P95 = %.2fms)\n", p95)
	}

	switch p95 := stats.Churn.P95; {
	case p95 < 1:
		obs.WriteString("* **Remove + Add:** Excellent speed (P95 < 1ms)\n")
	case p95 < 10:
		obs.WriteString("* **Remove + Add:** Good performance (P95 < 10ms)\n")
	default:
		fmt.Fprintf(&obs, "* **Remove + Add:** Consider optimization (P95 = %.2fms)\n", p95)
	}

	switch rate := stats.IngestionAxiomsPerSec; {
	case rate > 10000:
		obs.WriteString("* **Ingestion:** Excellent throughput (>10K axioms/sec)\n")
	case rate > 1000:
		obs.WriteString("* **Ingestion:** Acceptable throughput (>1K axioms/sec)\n")
	default:
		fmt.Fprintf(&obs, "* **Ingestion:** Consider optimization (%.0f axioms/sec)\n", rate)
	}

	if stats.Misses > 0 {
		fmt.Fprintf(&obs, "* **Round Trip:** %d sampled axioms were not found after reload\n", stats.Misses)
	}
	if stats.TotalAxioms > 0 {
		fmt.Fprintf(&obs, "* **Memory Efficiency:** %.0f bytes/axiom\n", float64(stats.PeakRAMBytes)/float64(stats.TotalAxioms))
	}
	return obs.String()
}
