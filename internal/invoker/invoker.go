// Package invoker launches the external validation core as a subprocess and
// captures everything the decoder needs: exit code, stdout, stderr, elapsed
// time, and whether the run hit its timeout.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Precondition and pipeline errors. These are never folded into a
// ValidationResult: they mean the call itself was invalid or the pipeline is
// misconfigured, not that the document has problems.
var (
	// ErrUnsupportedFormat: the input file is missing, unreadable, or not a
	// .pdf/.docx. Detected before any process is spawned.
	ErrUnsupportedFormat = errors.New("unsupported input document")

	// ErrExecutableNotFound: the core path does not resolve to a runnable
	// binary or script.
	ErrExecutableNotFound = errors.New("validation core not found")

	// ErrSpawnFailed: the OS refused to launch the core (permissions,
	// missing interpreter, resource limits).
	ErrSpawnFailed = errors.New("launching validation core")
)

// Outcome records one subprocess execution. When TimedOut is true the child
// was forcibly terminated and ExitCode is undefined; it must not be
// interpreted.
type Outcome struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
	TimedOut bool
}

// Opts configures a single core invocation.
type Opts struct {
	// CorePath is the validation core executable.
	CorePath string
	// InputPath is the document to validate, passed as the sole argument.
	InputPath string
	// Timeout bounds the child's lifetime; zero means no limit.
	Timeout time.Duration
}

// Invoke runs the core against the input document and captures its output.
// Non-zero exit codes and timeouts are captured in the Outcome, not returned
// as errors; the decoder folds them into the result. Stdout and stderr are
// accumulated fully in memory; the contract expects results of a few KB.
//
// Each call spawns an independent child process and holds no shared state, so
// concurrent calls for different documents are safe.
func Invoke(ctx context.Context, opts Opts) (*Outcome, error) {
	if err := checkInput(opts.InputPath); err != nil {
		return nil, err
	}
	if err := checkExecutable(opts.CorePath); err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, opts.CorePath, opts.InputPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	outcome := &Outcome{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: duration,
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			outcome.TimedOut = true
			return outcome, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			return outcome, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrSpawnFailed, err)
	}

	return outcome, nil
}

// SupportedExtension reports whether path names a document type the pipeline
// accepts. Matching is case-insensitive.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

func checkInput(path string) error {
	if !SupportedExtension(path) {
		return fmt.Errorf("%w: %s (want .pdf or .docx)", ErrUnsupportedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnsupportedFormat, path, err)
	}
	f.Close()
	return nil
}

func checkExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("%w: no core path configured", ErrExecutableNotFound)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrExecutableNotFound, path)
	}
	if info.Mode()&0111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrExecutableNotFound, path)
	}
	return nil
}
