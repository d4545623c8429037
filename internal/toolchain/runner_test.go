package toolchain

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecRunner_LookPathMissingTool(t *testing.T) {
	_, err := ExecRunner{}.LookPath("refman-no-such-tool")
	require.ErrorIs(t, err, ErrToolNotFound)
}

func TestExecRunner_RunMissingTool(t *testing.T) {
	err := ExecRunner{}.Run(context.Background(), t.TempDir(), "refman-no-such-tool")
	require.ErrorIs(t, err, ErrToolNotFound)
}

func TestExecRunner_CapturesFailureOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	err := ExecRunner{}.Run(context.Background(), t.TempDir(), "sh", "-c", "echo boom >&2; exit 3")
	require.ErrorIs(t, err, ErrCommandFailed)
	require.Contains(t, err.Error(), "boom")
}

func TestExecRunner_Success(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	require.NoError(t, ExecRunner{}.Run(context.Background(), t.TempDir(), "sh", "-c", "true"))
}

func TestRecordingRunner_RecordsAndFails(t *testing.T) {
	boom := errors.New("boom")
	r := &RecordingRunner{FailOn: map[string]error{"yarn build": boom}}

	require.NoError(t, r.Run(context.Background(), "/repo", "yarn"))
	err := r.Run(context.Background(), "/repo", "yarn", "build")
	require.ErrorIs(t, err, boom)

	require.Equal(t, []string{"yarn", "yarn build"}, r.Lines())
	require.Equal(t, "/repo", r.Calls()[0].Dir)
}

func TestYarn_BootstrapCommandOrder(t *testing.T) {
	r := &RecordingRunner{}
	y := NewYarn(r)

	require.NoError(t, y.Bootstrap(context.Background(), "/repo", "docs"))
	require.Equal(t, []string{
		"npm install -g yarn",
		"yarn",
		"yarn docs",
	}, r.Lines())
	for _, call := range r.Calls() {
		require.Equal(t, "/repo", call.Dir)
	}
}

func TestYarn_BootstrapMultipleScripts(t *testing.T) {
	r := &RecordingRunner{}
	y := NewYarn(r)

	require.NoError(t, y.Bootstrap(context.Background(), "/repo", "build", "build:examples"))
	require.Equal(t, []string{
		"npm install -g yarn",
		"yarn",
		"yarn build",
		"yarn build:examples",
	}, r.Lines())
}

func TestYarn_BootstrapRequiresNpm(t *testing.T) {
	r := &RecordingRunner{MissingTools: map[string]bool{"npm": true}}
	y := NewYarn(r)

	err := y.Bootstrap(context.Background(), "/repo")
	require.ErrorIs(t, err, ErrToolNotFound)
	require.Empty(t, r.Calls())
}

func TestYarn_BootstrapStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("install failed")
	r := &RecordingRunner{FailOn: map[string]error{"yarn": boom}}
	y := NewYarn(r)

	err := y.Bootstrap(context.Background(), "/repo", "docs")
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"npm install -g yarn", "yarn"}, r.Lines())
}
