package toolchain

import (
	"context"
	"sync"
)

// Call captures a single recorded command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line renders the call as "name arg arg" for assertion convenience.
func (c Call) Line() string {
	return commandLine(c.Name, c.Args)
}

// RecordingRunner is a Runner for tests. It records invocations in order and
// can simulate missing tools or failing commands.
type RecordingRunner struct {
	mu sync.Mutex

	// MissingTools lists tool names LookPath should reject.
	MissingTools map[string]bool
	// FailOn maps a rendered command line (see Call.Line) to the error Run
	// should return for it.
	FailOn map[string]error

	calls []Call
}

func (r *RecordingRunner) LookPath(tool string) (string, error) {
	if r.MissingTools[tool] {
		return "", ErrToolNotFound
	}
	return "/usr/bin/" + tool, nil
}

func (r *RecordingRunner) Run(_ context.Context, dir string, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	call := Call{Dir: dir, Name: name, Args: args}
	r.calls = append(r.calls, call)
	if err, ok := r.FailOn[call.Line()]; ok {
		return err
	}
	return nil
}

// Calls returns a copy of the recorded invocations in execution order.
func (r *RecordingRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Lines returns the recorded invocations rendered as command lines.
func (r *RecordingRunner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}
