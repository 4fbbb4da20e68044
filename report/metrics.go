package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/c360studio/sitecheck/imagemeta"
	"github.com/c360studio/sitecheck/suite"
)

// Image kinds counted by Metrics.
const (
	ImageLocal      = "local"
	ImageExempt     = "exempt"
	ImageHotlink    = "hotlink"
	ImageUnreadable = "unreadable"
)

// Metrics collects run metrics in a private registry so repeated passes in
// one process (watch mode) accumulate into the same series.
type Metrics struct {
	registry *prometheus.Registry

	AssertionsTotal *prometheus.CounterVec
	ImagesTotal     *prometheus.CounterVec
	RunsTotal       prometheus.Counter
	RunPassed       prometheus.Gauge
	RunDuration     prometheus.Gauge
}

// NewMetrics registers the sitecheck series in a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AssertionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecheck_assertions_total",
				Help: "Assertions evaluated, by group and status.",
			},
			[]string{"group", "status"}, // status: passed, failed, warning
		),
		ImagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecheck_images_total",
				Help: "Image records resolved, by kind.",
			},
			[]string{"kind"},
		),
		RunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitecheck_runs_total",
				Help: "Check passes completed.",
			},
		),
		RunPassed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecheck_run_passed",
				Help: "1 when the last pass had no failing required assertion.",
			},
		),
		RunDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecheck_run_duration_seconds",
				Help: "Duration of the last pass.",
			},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one pass.
func (m *Metrics) Observe(r *suite.Report, images []imagemeta.ImageRecord) {
	for _, res := range r.Results {
		m.AssertionsTotal.WithLabelValues(res.Group, status(res)).Inc()
	}
	for _, rec := range images {
		m.ImagesTotal.WithLabelValues(imageKind(rec)).Inc()
	}
	m.RunsTotal.Inc()
	if r.Passed {
		m.RunPassed.Set(1)
	} else {
		m.RunPassed.Set(0)
	}
	m.RunDuration.Set(r.Duration.Seconds())
}

// WriteFile writes the registry in the node-exporter textfile format.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func imageKind(rec imagemeta.ImageRecord) string {
	switch {
	case rec.Hotlink:
		return ImageHotlink
	case rec.Err != nil:
		return ImageUnreadable
	case !rec.CheckDimensions:
		return ImageExempt
	default:
		return ImageLocal
	}
}
