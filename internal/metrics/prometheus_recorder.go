package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	stageResults  *prom.CounterVec
	buildOutcome  *prom.CounterVec
	toolDuration  *prom.HistogramVec
	pagesRendered prom.Counter
	pagesSkipped  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "refman",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "refman",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refman",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "refman",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.toolDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "refman",
			Name:      "tool_duration_seconds",
			Help:      "Duration of external toolchain invocations (npm, yarn)",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"tool", "result"})
		pr.pagesRendered = prom.NewCounter(prom.CounterOpts{
			Namespace: "refman",
			Name:      "pages_rendered_total",
			Help:      "Documentation pages rendered to HTML",
		})
		pr.pagesSkipped = prom.NewCounter(prom.CounterOpts{
			Namespace: "refman",
			Name:      "pages_skipped_total",
			Help:      "Documentation pages skipped because their fingerprint was unchanged",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.toolDuration, pr.pagesRendered, pr.pagesSkipped)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveToolDuration(tool string, d time.Duration, success bool) {
	if p == nil || p.toolDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.toolDuration.WithLabelValues(tool, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddPagesRendered(n int) {
	if p == nil || p.pagesRendered == nil {
		return
	}
	p.pagesRendered.Add(float64(n))
}

func (p *PrometheusRecorder) AddPagesSkipped(n int) {
	if p == nil || p.pagesSkipped == nil {
		return
	}
	p.pagesSkipped.Add(float64(n))
}
