package tui

import (
	"strings"
	"testing"

	"github.com/docverify/docverify/internal/schema"
)

func TestRenderResult_Clean(t *testing.T) {
	out := RenderResult("report.pdf", schema.ValidationResult{Status: schema.StatusOK})

	if !strings.Contains(out, "report.pdf") {
		t.Errorf("output missing file name:\n%s", out)
	}
	if !strings.Contains(out, "no issues found") {
		t.Errorf("output missing clean verdict:\n%s", out)
	}
}

func TestRenderResult_Issues(t *testing.T) {
	result := schema.ValidationResult{
		Status: schema.StatusIssuesFound,
		Issues: []schema.Issue{
			{Code: "E01", Message: "missing signature block", Location: schema.Location{Value: "page 3", Set: true}, Severity: schema.SeverityError},
			{Code: "I05", Message: "document-level note", Severity: schema.SeverityInfo},
		},
		Metadata: map[string]any{"pages": "12"},
	}

	out := RenderResult("thesis.docx", result)

	for _, want := range []string{
		"missing signature block",
		"page 3",
		"[E01]",
		"document-level note",
		"1 error(s)",
		"pages: 12",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult_Error(t *testing.T) {
	result := schema.ValidationResult{
		Status: schema.StatusError,
		Metadata: map[string]any{
			schema.MetaKeyError:  "validation timed out after 30s",
			schema.MetaKeySource: "frontend",
		},
	}

	out := RenderResult("report.pdf", result)

	if !strings.Contains(out, "validation failed") {
		t.Errorf("output missing error banner:\n%s", out)
	}
	if !strings.Contains(out, "validation timed out after 30s") {
		t.Errorf("output missing explanation:\n%s", out)
	}
	// The reserved keys are part of the banner, not the metadata listing.
	if strings.Contains(out, "source: frontend") {
		t.Errorf("reserved metadata keys leaked into listing:\n%s", out)
	}
}

func TestRenderResult_UnknownSeverityShown(t *testing.T) {
	result := schema.ValidationResult{
		Status: schema.StatusIssuesFound,
		Issues: []schema.Issue{{Code: "X1", Message: "odd", Severity: schema.Severity("notice")}},
	}

	out := RenderResult("a.pdf", result)
	if !strings.Contains(out, "NOTICE") {
		t.Errorf("unknown severity not surfaced:\n%s", out)
	}
}
