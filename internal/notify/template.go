package notify

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/docverify/docverify/internal/schema"
)

// TemplateData holds all data available to notification templates.
type TemplateData struct {
	Globals map[string]any
	Doc     map[string]string
	Result  map[string]string
}

// BuildTemplateData flattens a validation outcome for templating. Metadata
// values are stringified so templates can treat everything uniformly.
func BuildTemplateData(hostname, docPath string, result schema.ValidationResult) TemplateData {
	counts := result.Counts()

	res := map[string]string{
		"status":       string(result.Status),
		"status_emoji": statusEmoji(result.Status),
		"errors":       fmt.Sprint(counts.Errors),
		"warnings":     fmt.Sprint(counts.Warnings),
		"info":         fmt.Sprint(counts.Info),
		"issues":       fmt.Sprint(len(result.Issues)),
	}
	if msg := result.ErrorMessage(); msg != "" {
		res["error"] = msg
	}
	for k, v := range result.Metadata {
		res["meta_"+k] = fmt.Sprint(v)
	}

	doc := map[string]string{
		"path": docPath,
		"name": filepath.Base(docPath),
	}

	return TemplateData{
		Globals: map[string]any{"hostname": hostname},
		Doc:     doc,
		Result:  res,
	}
}

func statusEmoji(status schema.Status) string {
	switch status {
	case schema.StatusError:
		return "\U0001f534" // 🔴
	case schema.StatusIssuesFound:
		return "\U0001f7e1" // 🟡
	case schema.StatusOK:
		return "\U0001f7e2" // 🟢
	default:
		return "❓" // ❓
	}
}

// Render executes a Go text/template string with Sprig functions and the
// custom accessor functions (result, doc, globals).
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()

	// Register accessor functions so {{result.status}} works: "result"
	// returns the result map, then ".status" accesses a key.
	funcMap["result"] = func() map[string]string { return data.Result }
	funcMap["doc"] = func() map[string]string { return data.Doc }
	funcMap["globals"] = func() map[string]any { return data.Globals }

	t, err := template.New("notify").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
