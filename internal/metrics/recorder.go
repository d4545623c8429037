package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build, stage and toolchain metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	ObserveToolDuration(tool string, d time.Duration, success bool)
	AddPagesRendered(n int)
	AddPagesSkipped(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)       {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)               {}
func (NoopRecorder) IncStageResult(string, ResultLabel)               {}
func (NoopRecorder) IncBuildOutcome(string)                           {}
func (NoopRecorder) ObserveToolDuration(string, time.Duration, bool)  {}
func (NoopRecorder) AddPagesRendered(int)                             {}
func (NoopRecorder) AddPagesSkipped(int)                              {}
