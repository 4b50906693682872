package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration(StageTopics, 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult(StageTopics, ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.AddFilesWritten(FileKindTopic, 3)
	pr.AddFilesWritten(FileKindSpecial, 1)
	pr.AddFilesRemoved(2)
	pr.SetRenderConcurrency(4)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	assert.InDelta(t, 3, testutil.ToFloat64(pr.filesWritten.WithLabelValues(FileKindTopic)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.filesWritten.WithLabelValues(FileKindSpecial)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.filesRemoved), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(pr.renderConcurrency), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues(string(BuildOutcomeSuccess))), 0)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration(StageLoad, time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.AddFilesRemoved(1)
	})
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "wikibook.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wikibook_build_outcomes_total{outcome="success"} 1`)
}
