package site

import "time"

// BuildState carries mutable state across stages of one build.
type BuildState struct {
	Builder *Builder
	Report  *BuildReport
	Timings map[StageName]time.Duration
}

func newBuildState(b *Builder, report *BuildReport) *BuildState {
	return &BuildState{
		Builder: b,
		Report:  report,
		Timings: make(map[StageName]time.Duration),
	}
}
