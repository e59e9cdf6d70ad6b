package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "supercollider"

// PrometheusRecorder implements Recorder using Prometheus collectors.
type PrometheusRecorder struct {
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	filesScanned    *prom.CounterVec
	recordsParsed   *prom.CounterVec
	warnings        *prom.CounterVec
	adapterDuration *prom.HistogramVec
	adapterResults  *prom.CounterVec
	runOutcome      *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages (scan, parse, process, build)",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		}),
		filesScanned: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Source files handed to the parser by source type",
		}, []string{"source_type"}),
		recordsParsed: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Documentation records extracted by source type",
		}, []string{"source_type"}),
		warnings: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "warnings_total",
			Help:      "Non-fatal problems reported during a run by category",
		}, []string{"category"}),
		adapterDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "adapter_duration_seconds",
			Help:      "Duration of individual adapter invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"adapter"}),
		adapterResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "adapter_results_total",
			Help:      "Adapter invocation results",
		}, []string{"adapter", "result"}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Pipeline run outcomes",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.filesScanned, pr.recordsParsed,
		pr.warnings, pr.adapterDuration, pr.adapterResults, pr.runOutcome)
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

// WriteTextfile writes all collected metrics in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddFilesScanned(sourceType string, n int) {
	p.filesScanned.WithLabelValues(sourceType).Add(float64(n))
}

func (p *PrometheusRecorder) AddRecordsParsed(sourceType string, n int) {
	p.recordsParsed.WithLabelValues(sourceType).Add(float64(n))
}

func (p *PrometheusRecorder) IncWarning(category string) {
	p.warnings.WithLabelValues(category).Inc()
}

func (p *PrometheusRecorder) ObserveAdapterDuration(adapter string, d time.Duration) {
	p.adapterDuration.WithLabelValues(adapter).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAdapterResult(adapter string, result ResultLabel) {
	p.adapterResults.WithLabelValues(adapter, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	p.runOutcome.WithLabelValues(outcome).Inc()
}
