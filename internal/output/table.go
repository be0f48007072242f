package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"
)

// ANSI color codes for severity and status output (used when Colored=true).
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[0;31m"
	ansiYellow = "\033[0;33m"
	ansiBlue   = "\033[0;34m"
	ansiGreen  = "\033[0;32m"
)

// TableOptions controls how RenderIssueTable and RenderComplianceTable colour
// their output.
type TableOptions struct {
	// Colored wraps severity and status labels with ANSI codes.
	// Default false (CI-safe).
	Colored bool
}

// ColorSeverity wraps a severity string with ANSI codes when colored is true.
// When colored is false the string is returned unchanged (CI-safe default).
func ColorSeverity(sev models.Severity, colored bool) string {
	s := string(sev)
	if !colored {
		return s
	}
	switch sev {
	case models.SeverityHigh:
		return ansiRed + s + ansiReset
	case models.SeverityMedium:
		return ansiYellow + s + ansiReset
	case models.SeverityLow:
		return ansiBlue + s + ansiReset
	default:
		return s
	}
}

// ShortenMessage truncates msg to at most max runes, appending "..." when truncated.
// max is treated as at least 4 to guarantee space for the ellipsis.
func ShortenMessage(msg string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max-3]) + "..."
}

// severityCell returns the severity padded to width characters.
// When colored, ANSI codes wrap only the text; trailing padding spaces are plain
// so subsequent columns stay visually aligned regardless of terminal ANSI support.
func severityCell(sev models.Severity, width int, colored bool) string {
	text := string(sev)
	if !colored {
		return fmt.Sprintf("%-*s", width, text)
	}
	var code string
	switch sev {
	case models.SeverityHigh:
		code = ansiRed
	case models.SeverityMedium:
		code = ansiYellow
	case models.SeverityLow:
		code = ansiBlue
	default:
		return fmt.Sprintf("%-*s", width, text)
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// statusCell returns a Compliant/Non-Compliant label padded to width.
func statusCell(compliant bool, width int, colored bool) string {
	text := "Non-Compliant"
	code := ansiRed
	if compliant {
		text = "Compliant"
		code = ansiGreen
	}
	if !colored {
		return fmt.Sprintf("%-*s", width, text)
	}
	spaces := width - len(text)
	if spaces < 0 {
		spaces = 0
	}
	return code + text + ansiReset + strings.Repeat(" ", spaces)
}

// truncateField shortens s to at most max bytes for label columns.
// A single-char ellipsis replaces the last byte when truncation occurs.
func truncateField(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// RenderIssueTable writes a formatted issue table to w, one row per issue in
// report service order. The separator line width is derived from the header
// row so all rows align correctly.
//
// Column order:
//
//	SERVICE  SEVERITY  PCI REF  ISSUE
func RenderIssueTable(w io.Writer, issues []models.ServiceIssue, opts TableOptions) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No issues found.")
		return
	}

	const (
		wService  = 16
		wSeverity = 10
		wRef      = 15
		wIssue    = 60
	)

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		wService, "SERVICE", wSeverity, "SEVERITY", wRef, "PCI REF", wIssue, "ISSUE")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, si := range issues {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wService, truncateField(si.Service, wService)))
		rb.WriteString("  " + severityCell(si.Severity, wSeverity, opts.Colored))
		rb.WriteString(fmt.Sprintf("  %-*s", wRef, truncateField(si.PCIReference, wRef)))
		rb.WriteString(fmt.Sprintf("  %-*s", wIssue, ShortenMessage(si.Description, wIssue)))
		fmt.Fprintln(w, rb.String())
	}
}

// RenderComplianceTable writes the per-run PCI DSS compliance table to w in
// catalogue order.
//
// Column order:
//
//	REQUIREMENT  STATUS  DESCRIPTION
func RenderComplianceTable(w io.Writer, table []pci.RequirementStatus, opts TableOptions) {
	const (
		wReq    = 15
		wStatus = 14
		wDesc   = 70
	)

	header := fmt.Sprintf("%-*s  %-*s  %-*s",
		wReq, "REQUIREMENT", wStatus, "STATUS", wDesc, "DESCRIPTION")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for _, row := range table {
		var rb strings.Builder
		rb.WriteString(fmt.Sprintf("%-*s", wReq, row.ID))
		rb.WriteString("  " + statusCell(row.Compliant, wStatus, opts.Colored))
		rb.WriteString(fmt.Sprintf("  %-*s", wDesc, ShortenMessage(row.Description, wDesc)))
		fmt.Fprintln(w, rb.String())
	}
}
