package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
)

// ProcessError reports a failed Graphviz invocation.
type ProcessError struct {
	Path     string // executable as configured
	ExitCode int    // -1 when the process never ran
	Stderr   string // trimmed diagnostic output
	Err      error
}

// Error implements the error interface.
func (e *ProcessError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Path, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Unwrap returns the underlying exec error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// runGraphviz shells out to the Graphviz executable at bin.
func runGraphviz(ctx context.Context, bin, format, dotPath, imagePath string) error {
	if bin == "" {
		return &ProcessError{Path: bin, ExitCode: -1, Err: stderrors.New("no graphviz executable configured")}
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return &ProcessError{Path: bin, ExitCode: -1, Err: err}
	}

	cmd := exec.CommandContext(ctx, path, "-T"+format, dotPath, "-o", imagePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		perr := &ProcessError{
			Path:     bin,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			perr.ExitCode = exitErr.ExitCode()
		}
		return perr
	}
	return nil
}
