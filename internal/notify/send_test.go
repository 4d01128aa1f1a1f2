package notify

import (
	"strings"
	"testing"

	"github.com/docverify/docverify/internal/schema"
)

func TestResolveTargets(t *testing.T) {
	data := BuildTemplateData("host-1", "/srv/docs/report.pdf", schema.ValidationResult{
		Status: schema.StatusIssuesFound,
		Issues: []schema.Issue{{Code: "E01", Message: "m", Severity: schema.SeverityError}},
	})

	targets, err := ResolveTargets(
		[]Ref{
			{ServiceName: "chat"},
			{ServiceName: "chat", Template: "override {{doc.name}}", Params: map[string]string{"title": "{{result.status}}"}},
		},
		map[string]ServiceDef{
			"chat": {URL: "logger://", Params: map[string]string{"title": "default"}},
		},
		"default {{result.errors}} error(s)",
		data,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(targets))
	}

	if targets[0].Message != "default 1 error(s)" {
		t.Errorf("targets[0].Message = %q", targets[0].Message)
	}
	if targets[0].Params["title"] != "default" {
		t.Errorf("targets[0] params = %v", targets[0].Params)
	}

	if targets[1].Message != "override report.pdf" {
		t.Errorf("targets[1].Message = %q", targets[1].Message)
	}
	// Per-target params override the service base and are themselves rendered.
	if targets[1].Params["title"] != "issues_found" {
		t.Errorf("targets[1] params = %v", targets[1].Params)
	}
}

func TestResolveTargets_UnknownService(t *testing.T) {
	_, err := ResolveTargets(
		[]Ref{{ServiceName: "ghost"}},
		map[string]ServiceDef{},
		"tmpl",
		TemplateData{},
	)
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error = %v", err)
	}
}

func TestResolveTargets_BadTemplate(t *testing.T) {
	_, err := ResolveTargets(
		[]Ref{{ServiceName: "chat"}},
		map[string]ServiceDef{"chat": {URL: "logger://"}},
		"{{unclosed",
		TemplateData{},
	)
	if err == nil {
		t.Error("bad template accepted")
	}
}

func TestValidate_Target(t *testing.T) {
	if err := Validate(Target{ServiceName: "chat", URL: "logger://"}); err != nil {
		t.Errorf("logger target rejected: %v", err)
	}
	if err := Validate(Target{ServiceName: "chat", URL: "no-such-scheme://x"}); err == nil {
		t.Error("bogus service URL accepted")
	}
}

func TestSend_LoggerService(t *testing.T) {
	err := Send(Target{
		ServiceName: "log",
		URL:         "logger://",
		Message:     "issues_found report.pdf",
	})
	if err != nil {
		t.Errorf("logger send failed: %v", err)
	}
}
