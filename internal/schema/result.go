// Package schema defines the validation result contract shared with the
// external validation core, and decodes core output into it.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the overall verdict of a validation run.
type Status string

const (
	StatusOK          Status = "ok"
	StatusIssuesFound Status = "issues_found"
	StatusError       Status = "error"
)

// Severity of a single issue. Unknown values coming from the core are kept
// as-is so the result round-trips verbatim.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MetaKeyError is the reserved metadata key holding the explanation when
// Status is StatusError.
const MetaKeyError = "error"

// MetaKeySource marks results synthesized by the front-end (timeout, crash,
// decode failure) as opposed to an error status reported by the core itself.
const MetaKeySource = "source"

// Location points into the source document: a page label, a byte offset, or
// whatever reference the core emits. The core may send it as a JSON string,
// number, or null; the zero value means "document-level, no specific
// location".
type Location struct {
	Value string
	Set   bool
}

// UnmarshalJSON accepts a string, a number, or null.
func (l *Location) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Location{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Location{Value: s, Set: true}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Location{Value: n.String(), Set: true}
		return nil
	}

	return fmt.Errorf("location: must be a string, number, or null, got %s", excerpt(data, 40))
}

// MarshalJSON emits null for an unset location and the original string form
// otherwise. Numeric-looking values are re-emitted as numbers.
func (l Location) MarshalJSON() ([]byte, error) {
	if !l.Set {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseFloat(l.Value, 64); err == nil {
		return []byte(l.Value), nil
	}
	return json.Marshal(l.Value)
}

func (l Location) String() string {
	if !l.Set {
		return ""
	}
	return l.Value
}

// Issue is one discrete problem found in a document.
type Issue struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Location Location `json:"location,omitzero"`
	Severity Severity `json:"severity"`
}

// ValidationResult is the decoded outcome of one validation run. It is
// constructed fresh per run and owned exclusively by the caller.
//
// Invariants: StatusOK implies Issues is empty; StatusError implies Issues is
// empty and Metadata[MetaKeyError] holds an explanatory message.
type ValidationResult struct {
	Status   Status         `json:"status"`
	Issues   []Issue        `json:"issues"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Counts tallies issues per severity.
type Counts struct {
	Errors   int
	Warnings int
	Info     int
}

func (r ValidationResult) Counts() Counts {
	var c Counts
	for _, is := range r.Issues {
		switch is.Severity {
		case SeverityError:
			c.Errors++
		case SeverityWarning:
			c.Warnings++
		default:
			c.Info++
		}
	}
	return c
}

// ErrorMessage returns the reserved error explanation, or "" when the result
// is not an error (or the core violated the contract and omitted it).
func (r ValidationResult) ErrorMessage() string {
	if r.Status != StatusError {
		return ""
	}
	msg, _ := r.Metadata[MetaKeyError].(string)
	return msg
}

// errorResult builds a StatusError result synthesized by the front-end.
func errorResult(msg string) ValidationResult {
	return ValidationResult{
		Status: StatusError,
		Metadata: map[string]any{
			MetaKeyError:  msg,
			MetaKeySource: "frontend",
		},
	}
}
