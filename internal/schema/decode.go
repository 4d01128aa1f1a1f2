package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docverify/docverify/internal/invoker"
)

// excerptLen bounds how much of an offending payload a diagnostic message may
// quote, so a runaway core cannot blow up error messages.
const excerptLen = 200

// payload mirrors the JSON contract on the core's stdout. Unknown top-level
// fields are ignored for forward compatibility; status is the only required
// field.
type payload struct {
	Status   *Status        `json:"status"`
	Issues   []Issue        `json:"issues"`
	Metadata map[string]any `json:"metadata"`
}

// Decode maps a captured core invocation to a ValidationResult. It is total:
// any Outcome (timed out, crashed, emitting garbage) yields a result,
// never an error. It performs no I/O and is deterministic.
func Decode(outcome *invoker.Outcome) ValidationResult {
	if outcome.TimedOut {
		return errorResult(fmt.Sprintf("validation timed out after %s", outcome.Duration.Round(time.Millisecond)))
	}

	if outcome.ExitCode != 0 {
		reason := strings.TrimSpace(string(outcome.Stderr))
		if reason == "" {
			reason = "core reported no reason"
		}
		return errorResult(fmt.Sprintf("core exited with code %d: %s", outcome.ExitCode, reason))
	}

	var p payload
	dec := json.NewDecoder(bytes.NewReader(outcome.Stdout))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return errorResult(fmt.Sprintf("core output is not valid JSON: %v (output: %q)",
			err, excerpt(outcome.Stdout, excerptLen)))
	}

	// The contract is exactly one JSON document on stdout; a core that
	// streams additional fragments is out of contract.
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); err != io.EOF {
		return errorResult(fmt.Sprintf("core emitted trailing content after its JSON document (output: %q)",
			excerpt(outcome.Stdout, excerptLen)))
	}

	if p.Status == nil {
		return errorResult(fmt.Sprintf("core output is missing required field \"status\" (output: %q)",
			excerpt(outcome.Stdout, excerptLen)))
	}

	status := *p.Status
	switch status {
	case StatusOK, StatusIssuesFound, StatusError:
	default:
		return errorResult(fmt.Sprintf("core reported unknown status %q (output: %q)",
			status, excerpt(outcome.Stdout, excerptLen)))
	}

	result := ValidationResult{
		Status:   status,
		Issues:   p.Issues,
		Metadata: p.Metadata,
	}

	// The invariant wins over the label: a core that says "ok" but lists
	// issues is treated as issues_found, and an "error" verdict never
	// carries issues.
	if result.Status == StatusOK && len(result.Issues) > 0 {
		result.Status = StatusIssuesFound
	}
	if result.Status == StatusError {
		result.Issues = nil
		if result.Metadata == nil {
			result.Metadata = map[string]any{}
		}
		if _, ok := result.Metadata[MetaKeyError].(string); !ok {
			result.Metadata[MetaKeyError] = "core reported an error without explanation"
		}
	}

	return result
}

// excerpt returns at most n bytes of b as a string, cut on a rune boundary,
// with an ellipsis when truncated.
func excerpt(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	cut := b[:n]
	for len(cut) > 0 && !utf8.Valid(cut) {
		cut = cut[:len(cut)-1]
	}
	return string(cut) + "…"
}
