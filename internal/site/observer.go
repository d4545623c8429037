package site

import "time"

// BuildObserver receives lifecycle notifications during a manual build.
// Implementations must be safe to call from the build goroutine and should
// never block it; failures inside an observer must be swallowed or logged
// by the observer itself.
type BuildObserver interface {
	// OnBuildStart fires after the report is created, before the first stage.
	OnBuildStart(report *BuildReport)
	// OnStageComplete fires after every stage attempt, err nil on success.
	OnStageComplete(stage StageName, d time.Duration, err error)
	// OnBuildComplete fires once with the finished report, including aborted
	// and canceled builds.
	OnBuildComplete(report *BuildReport)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) OnBuildStart(*BuildReport)                       {}
func (NoopObserver) OnStageComplete(StageName, time.Duration, error) {}
func (NoopObserver) OnBuildComplete(*BuildReport)                    {}

// ObserverFuncs adapts plain functions to the BuildObserver interface so
// callers can register just the hooks they care about.
type ObserverFuncs struct {
	BuildStart    func(*BuildReport)
	StageComplete func(StageName, time.Duration, error)
	BuildComplete func(*BuildReport)
}

func (o ObserverFuncs) OnBuildStart(r *BuildReport) {
	if o.BuildStart != nil {
		o.BuildStart(r)
	}
}

func (o ObserverFuncs) OnStageComplete(s StageName, d time.Duration, err error) {
	if o.StageComplete != nil {
		o.StageComplete(s, d, err)
	}
}

func (o ObserverFuncs) OnBuildComplete(r *BuildReport) {
	if o.BuildComplete != nil {
		o.BuildComplete(r)
	}
}
