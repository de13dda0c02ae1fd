package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynguyendang/ontograph/pkg/owl"
	"github.com/duynguyendang/ontograph/pkg/store"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(7).Ontology(50)
	b := NewGenerator(7).Ontology(50)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Key(), b[i].Key())
	}

	shapes := make(map[owl.Shape]int)
	for _, ax := range a {
		shapes[ax.Shape()]++
	}
	// 50 classes, 2+2 properties, 100 individuals
	assert.Equal(t, 50+2+2+100, shapes[owl.Declaration])
	assert.GreaterOrEqual(t, shapes[owl.SubClassOf], 49)
	assert.Equal(t, 100, shapes[owl.ClassAssertion])
	assert.Equal(t, 100, shapes[owl.AnnotationAssertion])
	assert.Equal(t, 99, shapes[owl.ObjectPropertyAssertion])
}

func TestSummarize(t *testing.T) {
	var samples []time.Duration
	for i := 1; i <= 100; i++ {
		samples = append(samples, time.Duration(i)*time.Millisecond)
	}
	l := summarize(samples)
	assert.InDelta(t, 51, l.P50, 0.001)
	assert.InDelta(t, 96, l.P95, 0.001)
	assert.InDelta(t, 100, l.P99, 0.001)
	assert.InDelta(t, 1000.0/51, l.OpsPerSec, 0.001)

	assert.Equal(t, Latency{}, summarize(nil))
}

func TestRun(t *testing.T) {
	o := &options{
		classes: 40,
		samples: 20,
		seed:    1,
		dataDir: filepath.Join(t.TempDir(), "db"),
		profile: store.ProfileSafeServing,
	}
	stats, err := run(o)
	require.NoError(t, err)
	assert.Positive(t, stats.TotalTriples)
	assert.NotEmpty(t, stats.ColdLoads)
	assert.Zero(t, stats.Misses)

	var sb strings.Builder
	require.NoError(t, writeReport(&sb, stats))
	assert.Contains(t, sb.String(), "# Axiom Cache Stress Test Report")
	assert.Contains(t, sb.String(), "| Declaration |")
}
