package site

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/metrics"
)

// runStages executes stages in order, recording timing and classification,
// stopping on the first fatal or canceled error. Warnings are recorded and
// execution continues.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(st.Name, ctx.Err())
			bs.recordError(st.Name, se)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		bs.Report.StageDurations[st.Name] = dur
		bs.Builder.recorder.ObserveStageDuration(string(st.Name), dur)
		bs.Builder.notifyStageComplete(st.Name, dur, err)
		slog.Debug("Stage finished",
			logfields.Stage(string(st.Name)),
			logfields.DurationMS(float64(dur.Milliseconds())))

		if err == nil {
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultSuccess)
			continue
		}

		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = NewFatalStageError(st.Name, err)
		}
		bs.Report.StageErrorKinds[st.Name] = se.Kind

		switch se.Kind {
		case StageErrorWarning:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultWarning)
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			slog.Warn("Stage completed with warning",
				logfields.Stage(string(st.Name)),
				logfields.Error(se))
			continue
		case StageErrorCanceled:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultCanceled)
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		default:
			bs.Builder.recorder.IncStageResult(string(st.Name), metrics.ResultFatal)
			bs.Report.Errors = append(bs.Report.Errors, se)
			return se
		}
	}
	return nil
}

// recordError registers a terminal stage error on the report.
func (bs *BuildState) recordError(stage StageName, se *StageError) {
	bs.Report.StageErrorKinds[stage] = se.Kind
	bs.Report.Errors = append(bs.Report.Errors, se)
}
