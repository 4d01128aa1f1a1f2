package notify

import (
	"strings"
	"testing"

	"github.com/docverify/docverify/internal/schema"
)

func sampleResult() schema.ValidationResult {
	return schema.ValidationResult{
		Status: schema.StatusIssuesFound,
		Issues: []schema.Issue{
			{Code: "E01", Message: "missing signature block", Severity: schema.SeverityError},
			{Code: "W02", Message: "caption format", Severity: schema.SeverityWarning},
		},
		Metadata: map[string]any{"pages": "12"},
	}
}

func TestBuildTemplateData(t *testing.T) {
	data := BuildTemplateData("host-1", "/srv/docs/thesis.docx", sampleResult())

	if data.Result["status"] != "issues_found" {
		t.Errorf("status = %q", data.Result["status"])
	}
	if data.Result["errors"] != "1" || data.Result["warnings"] != "1" {
		t.Errorf("counts = errors %q warnings %q", data.Result["errors"], data.Result["warnings"])
	}
	if data.Result["meta_pages"] != "12" {
		t.Errorf("meta_pages = %q", data.Result["meta_pages"])
	}
	if data.Doc["name"] != "thesis.docx" {
		t.Errorf("doc name = %q", data.Doc["name"])
	}
	if data.Globals["hostname"] != "host-1" {
		t.Errorf("hostname = %v", data.Globals["hostname"])
	}
}

func TestBuildTemplateData_ErrorResult(t *testing.T) {
	result := schema.ValidationResult{
		Status:   schema.StatusError,
		Metadata: map[string]any{schema.MetaKeyError: "validation timed out"},
	}
	data := BuildTemplateData("h", "a.pdf", result)

	if data.Result["error"] != "validation timed out" {
		t.Errorf("error = %q", data.Result["error"])
	}
	if data.Result["status_emoji"] != "\U0001f534" {
		t.Errorf("emoji = %q", data.Result["status_emoji"])
	}
}

func TestRender_Accessors(t *testing.T) {
	data := BuildTemplateData("host-1", "/srv/docs/thesis.docx", sampleResult())

	msg, err := Render("{{result.status}} on {{globals.hostname}}: {{doc.name}} ({{result.issues}} issues)", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "issues_found on host-1: thesis.docx (2 issues)"
	if msg != want {
		t.Errorf("rendered = %q, want %q", msg, want)
	}
}

func TestRender_SprigFunctions(t *testing.T) {
	data := BuildTemplateData("h", "a.pdf", sampleResult())

	msg, err := Render("{{result.status | upper}}", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "ISSUES_FOUND" {
		t.Errorf("rendered = %q", msg)
	}
}

func TestRender_BadTemplate(t *testing.T) {
	data := BuildTemplateData("h", "a.pdf", sampleResult())

	if _, err := Render("{{unclosed", data); err == nil {
		t.Error("bad template accepted")
	}
}

func TestRender_StatusEmojiPerStatus(t *testing.T) {
	for status, want := range map[schema.Status]string{
		schema.StatusOK:          "\U0001f7e2",
		schema.StatusIssuesFound: "\U0001f7e1",
		schema.StatusError:       "\U0001f534",
	} {
		data := BuildTemplateData("h", "a.pdf", schema.ValidationResult{Status: status})
		msg, err := Render("{{result.status_emoji}}", data)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(msg, want) {
			t.Errorf("status %s: emoji = %q, want %q", status, msg, want)
		}
	}
}
