package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("api_docs", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("api_docs", ResultSuccess)
	pr.IncBuildOutcome("success")
	pr.ObserveToolDuration("yarn", 30*time.Second, true)
	pr.AddPagesRendered(12)
	pr.AddPagesSkipped(3)
	// Basic scrape to ensure metrics encode without panic
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}
}

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("examples", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncStageResult("examples", ResultFatal)
	r.IncBuildOutcome("failed")
	r.ObserveToolDuration("npm", time.Second, false)
	r.AddPagesRendered(1)
	r.AddPagesSkipped(1)
}
