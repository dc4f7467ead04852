package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"web-assistant/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_ObserveTurn(t *testing.T) {
	r := NewPrometheusRecorder()

	r.ObserveTurn(entity.IntentOpenURL, entity.BucketRunning)
	r.ObserveTurn(entity.IntentOpenURL, entity.BucketRunning)
	r.ObserveTurn(entity.IntentUnknown, entity.BucketError)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.turnsTotal.WithLabelValues("open_url", "running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.turnsTotal.WithLabelValues("unknown", "error")))
}

func TestPrometheusRecorder_ObserveFill(t *testing.T) {
	r := NewPrometheusRecorder()

	r.ObserveFill(entity.StrategyName, entity.OutcomeNotFound)
	r.ObserveFill(entity.StrategyID, entity.OutcomeFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.fillAttempts.WithLabelValues("name", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.fillAttempts))
}

func TestPrometheusRecorder_WriteFile(t *testing.T) {
	r := NewPrometheusRecorder()
	r.ObserveTurn(entity.IntentSearch, entity.BucketDone)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, r.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `assistant_turns_total{bucket="done",intent="search"} 1`)
}
