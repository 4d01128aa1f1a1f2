// Package tui renders validation results for the terminal and hosts the
// interactive front-end.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docverify/docverify/internal/schema"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	infoCol = lipgloss.Color("#8B949E")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	okStyle       = lipgloss.NewStyle().Bold(true).Foreground(success)
	errStyle      = lipgloss.NewStyle().Bold(true).Foreground(danger)
	issuesStyle   = lipgloss.NewStyle().Bold(true).Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(infoCol)
	codeStyle     = lipgloss.NewStyle().Foreground(dim)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

// RenderResult renders one validation outcome as a styled report.
func RenderResult(path string, result schema.ValidationResult) string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(titleStyle.Render(path) + "  " + statusBadge(result)))
	b.WriteString("\n")

	switch result.Status {
	case schema.StatusError:
		b.WriteString("\n  " + errStyle.Render("validation failed") + "\n")
		if msg := result.ErrorMessage(); msg != "" {
			b.WriteString("  " + msg + "\n")
		}
	case schema.StatusIssuesFound:
		b.WriteString("\n")
		for _, issue := range result.Issues {
			b.WriteString(renderIssue(issue))
		}
	case schema.StatusOK:
		b.WriteString("\n  " + okStyle.Render("✓") + " no issues found\n")
	}

	if md := renderMetadata(result.Metadata); md != "" {
		b.WriteString("\n" + md)
	}

	return b.String()
}

func statusBadge(result schema.ValidationResult) string {
	switch result.Status {
	case schema.StatusOK:
		return okStyle.Render("OK")
	case schema.StatusError:
		return errStyle.Render("ERROR")
	default:
		c := result.Counts()
		parts := []string{}
		if c.Errors > 0 {
			parts = append(parts, fmt.Sprintf("%d error(s)", c.Errors))
		}
		if c.Warnings > 0 {
			parts = append(parts, fmt.Sprintf("%d warning(s)", c.Warnings))
		}
		if c.Info > 0 {
			parts = append(parts, fmt.Sprintf("%d info", c.Info))
		}
		return issuesStyle.Render(strings.Join(parts, ", "))
	}
}

func renderIssue(issue schema.Issue) string {
	tag := severityTag(issue.Severity)

	line := fmt.Sprintf("  %s %s", tag, issue.Message)
	if issue.Location.Set {
		line += dimStyle.Render(" @ " + issue.Location.Value)
	}
	if issue.Code != "" {
		line += "  " + codeStyle.Render("["+issue.Code+"]")
	}
	return line + "\n"
}

func severityTag(sev schema.Severity) string {
	switch sev {
	case schema.SeverityError:
		return errorTagStyle.Render("ERROR")
	case schema.SeverityWarning:
		return warnTagStyle.Render("WARN ")
	case schema.SeverityInfo:
		return infoTagStyle.Render("INFO ")
	default:
		return infoTagStyle.Render(strings.ToUpper(string(sev)))
	}
}

func renderMetadata(metadata map[string]any) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		if k == schema.MetaKeyError || k == schema.MetaKeySource {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s: %v", k, metadata[k])) + "\n")
	}
	return b.String()
}
