// Package metrics records turn and form-fill counters with Prometheus.
package metrics

import (
	"fmt"
	"os"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var _ output.MetricsPort = (*PrometheusRecorder)(nil)

type PrometheusRecorder struct {
	gatherer     prometheus.Gatherer
	turnsTotal   *prometheus.CounterVec
	fillAttempts *prometheus.CounterVec
}

// NewPrometheusRecorder registers its collectors on a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	r := &PrometheusRecorder{
		turnsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_turns_total",
				Help: "Total number of handled turns by intent and status bucket",
			},
			[]string{"intent", "bucket"},
		),
		fillAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_fill_attempts_total",
				Help: "Total number of field fill attempts by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
	}
	reg.MustRegister(r.turnsTotal, r.fillAttempts)
	r.gatherer = reg
	return r
}

func (p *PrometheusRecorder) ObserveTurn(intent entity.Intent, bucket entity.Bucket) {
	p.turnsTotal.WithLabelValues(string(intent), string(bucket)).Inc()
}

func (p *PrometheusRecorder) ObserveFill(strategy entity.Strategy, outcome entity.Outcome) {
	p.fillAttempts.WithLabelValues(string(strategy), string(outcome)).Inc()
}

// WriteFile dumps the current values in the Prometheus text format.
func (p *PrometheusRecorder) WriteFile(path string) error {
	families, err := p.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

var _ output.MetricsPort = Nop{}

// Nop discards all observations.
type Nop struct{}

func (Nop) ObserveTurn(entity.Intent, entity.Bucket)     {}
func (Nop) ObserveFill(entity.Strategy, entity.Outcome) {}
