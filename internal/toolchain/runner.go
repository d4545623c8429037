// Package toolchain runs the external JavaScript build tools (npm, yarn)
// that produce the API reference and the example bundles. Command execution
// sits behind the Runner interface so build stages can be tested without a
// Node installation.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/refman/internal/logfields"
)

var (
	// ErrToolNotFound indicates the executable was not detected on PATH.
	ErrToolNotFound = errors.New("tool not found")
	// ErrCommandFailed indicates a command returned a non-zero exit status.
	ErrCommandFailed = errors.New("command failed")
)

// Runner abstracts external command execution.
//
// Contract:
//
//	LookPath(tool) -> resolve an executable on PATH, ErrToolNotFound otherwise.
//	Run(ctx, dir, name, args...) -> execute inside dir, honoring ctx cancellation.
type Runner interface {
	LookPath(tool string) (string, error)
	Run(ctx context.Context, dir string, name string, args ...string) error
}

// ExecRunner invokes real binaries through os/exec.
type ExecRunner struct{}

func (ExecRunner) LookPath(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrToolNotFound, tool, err)
	}
	return path, nil
}

func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) error {
	if _, err := r.LookPath(name); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Running external command",
		logfields.Command(commandLine(name, args)),
		logfields.Dir(dir))

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		// The kill signal error masks the real cause; surface cancellation.
		err = ctx.Err()
	}

	outStr := stdout.String()
	errStr := stderr.String()
	if outStr != "" {
		slog.Debug("Command stdout", logfields.Tool(name), "output", outStr)
	}
	if errStr != "" {
		slog.Warn("Command stderr", logfields.Tool(name), "error_output", errStr)
	}

	if err != nil {
		// Fold both streams into the error; tools write diagnostics to either.
		output := errStr
		if output == "" {
			output = outStr
		} else if outStr != "" {
			output = outStr + "\n" + errStr
		}

		if output != "" {
			return fmt.Errorf("%w: %s in %s: %w: %s", ErrCommandFailed, commandLine(name, args), dir, err, output)
		}
		return fmt.Errorf("%w: %s in %s: %w", ErrCommandFailed, commandLine(name, args), dir, err)
	}
	return nil
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
