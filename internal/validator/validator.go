// Package validator ties core invocation and result decoding into the one
// call a front-end uses.
package validator

import (
	"context"
	"log/slog"
	"time"

	"github.com/docverify/docverify/internal/invoker"
	"github.com/docverify/docverify/internal/schema"
)

// DefaultTimeout bounds a core run when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Options is the explicit configuration of a Validator. There is no ambient
// default: tests and multi-core setups construct as many validators as they
// need.
type Options struct {
	// CorePath is the validation core executable.
	CorePath string
	// Timeout per document; DefaultTimeout when zero.
	Timeout time.Duration
	// Logger for per-stage progress; slog.Default() when nil.
	Logger *slog.Logger
}

// Validator runs documents through the invoke → decode pipeline. It holds no
// mutable state and is safe for concurrent use; each call owns its outcome
// and result exclusively.
type Validator struct {
	corePath string
	timeout  time.Duration
	logger   *slog.Logger
}

func New(opts Options) *Validator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		corePath: opts.CorePath,
		timeout:  timeout,
		logger:   logger,
	}
}

// CorePath returns the configured core executable.
func (v *Validator) CorePath() string { return v.corePath }

// Validate runs the core against one document and returns the decoded
// result. It blocks until the core exits or the timeout elapses, so callers
// driving an interactive surface must dispatch it off the interaction loop.
//
// Core-level failures (timeout, non-zero exit, malformed output) are folded
// into the result as schema.StatusError. A non-nil error means the pipeline
// itself is unusable: invoker.ErrUnsupportedFormat, ErrExecutableNotFound, or
// ErrSpawnFailed. Those must be surfaced as setup problems, not validation
// outcomes.
func (v *Validator) Validate(ctx context.Context, inputPath string) (schema.ValidationResult, error) {
	log := v.logger.With("file", inputPath)

	log.Info("invoking core", "core", v.corePath, "timeout", v.timeout)
	outcome, err := invoker.Invoke(ctx, invoker.Opts{
		CorePath:  v.corePath,
		InputPath: inputPath,
		Timeout:   v.timeout,
	})
	if err != nil {
		log.Error("invocation failed", "error", err)
		return schema.ValidationResult{}, err
	}
	log.Debug("core finished",
		"exit_code", outcome.ExitCode,
		"timed_out", outcome.TimedOut,
		"duration", outcome.Duration,
		"stdout_bytes", len(outcome.Stdout),
		"stderr_bytes", len(outcome.Stderr))

	result := schema.Decode(outcome)
	log.Info("validation completed",
		"status", result.Status,
		"issues", len(result.Issues),
		"duration", outcome.Duration)
	return result, nil
}
