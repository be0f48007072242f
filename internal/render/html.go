package render

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"
)

// htmlView is the template context for the HTML report. It extends the
// persisted report with the flattened issue list, the compliance table, and
// the names of any generated remediation scripts.
type htmlView struct {
	ReportData
	AllIssues        []models.ServiceIssue
	ComplianceTable  []pci.RequirementStatus
	GeneratedScripts []string
}

// WriteHTML renders the HTML report for data to w. templatePath overrides the
// embedded default template; a path that cannot be read or parsed is an
// error, never a silent fallback.
func WriteHTML(w io.Writer, data ReportData, templatePath string, scriptFiles []string) error {
	tmpl := defaultHTMLTmpl
	if templatePath != "" {
		custom, err := template.ParseFiles(templatePath)
		if err != nil {
			return fmt.Errorf("loading HTML template %s: %w", templatePath, err)
		}
		tmpl = custom
	}

	var scripts []string
	for _, f := range scriptFiles {
		scripts = append(scripts, filepath.Base(f))
	}

	view := htmlView{
		ReportData:       data,
		AllIssues:        data.Findings.AllIssues(),
		ComplianceTable:  pci.BuildComplianceTable(data.Findings),
		GeneratedScripts: scripts,
	}
	if err := tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("rendering HTML report: %w", err)
	}
	return nil
}

var defaultHTMLTmpl = template.Must(template.New("report").Parse(defaultHTMLTemplate))

const defaultHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AWS Log Management Review - PCI DSS Compliance Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 960px; color: #1c2733; }
h1 { border-bottom: 3px solid #1a6fb5; padding-bottom: .4rem; }
h2 { margin-top: 2rem; color: #1a6fb5; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
th, td { border: 1px solid #cfd8e0; padding: .45rem .6rem; text-align: left; font-size: .92rem; }
th { background: #eef3f7; }
.summary { display: flex; gap: 1rem; flex-wrap: wrap; }
.card { flex: 1 1 180px; border: 1px solid #cfd8e0; border-radius: 6px; padding: 1rem; text-align: center; }
.card .value { font-size: 1.8rem; font-weight: 700; }
.sev-HIGH { color: #b3261e; font-weight: 700; }
.sev-MEDIUM { color: #9a6700; font-weight: 600; }
.sev-LOW { color: #1a6fb5; }
.compliant { color: #1d7a37; }
.non-compliant { color: #b3261e; font-weight: 600; }
.meta { color: #5a6a78; font-size: .85rem; }
pre { background: #f4f6f8; padding: .8rem; border-radius: 4px; overflow-x: auto; font-size: .82rem; }
</style>
</head>
<body>
<h1>AWS Log Management Review</h1>
<p class="meta">Generated {{.Metadata.GeneratedAt}} · tool {{.Metadata.ToolVersion}} · PCI DSS {{.Metadata.PCIDSSVersion}}</p>

<h2>Executive Summary</h2>
<div class="summary">
<div class="card"><div class="value">{{.Summary.ComplianceScore}}</div>Compliance Score</div>
<div class="card"><div class="value">{{.Summary.TotalIssues}}</div>Issues Found</div>
<div class="card"><div class="value">{{.Summary.TotalRecommendations}}</div>Recommendations</div>
<div class="card"><div class="value">{{.Summary.EstimatedMonthlyCost}}</div>Est. Monthly Cost</div>
</div>

<h2>Findings</h2>
<table>
<tr><th>Service</th><th>Status</th></tr>
<tr><td>CloudTrail</td><td>{{if .Findings.CloudTrail.Enabled}}Enabled{{if .Findings.CloudTrail.MultiRegion}}, multi-region{{else}}, single-region{{end}}{{else}}Not enabled{{end}}</td></tr>
<tr><td>S3 Access Logging</td><td>{{.Findings.S3Logging.BucketsWithLogging}}/{{.Findings.S3Logging.BucketsAnalyzed}} buckets enabled</td></tr>
<tr><td>CloudWatch Logs Retention</td><td>{{.Findings.CloudWatchLogs.LogGroupsWithRetention}}/{{.Findings.CloudWatchLogs.LogGroups}} log groups covered</td></tr>
<tr><td>RDS CloudWatch Logging</td><td>{{.Findings.RDSLogging.InstancesWithLogging}}/{{.Findings.RDSLogging.Instances}} instances enabled</td></tr>
</table>

<h2>Issues ({{.Summary.TotalIssues}})</h2>
{{if .AllIssues}}
<table>
<tr><th>Service</th><th>Severity</th><th>Description</th><th>PCI Reference</th></tr>
{{range .AllIssues}}
<tr><td>{{.Service}}</td><td class="sev-{{.Severity}}">{{.Severity}}</td><td>{{.Description}}</td><td>{{.PCIReference}}</td></tr>
{{end}}
</table>
{{else}}
<p class="compliant">No issues found.</p>
{{end}}

<h2>Recommendations</h2>
{{if .Recommendations}}
<table>
<tr><th>Priority</th><th>Title</th><th>Description</th><th>PCI Reference</th><th>Estimated Cost</th></tr>
{{range .Recommendations}}
<tr><td class="sev-{{.Priority}}">{{.Priority}}</td><td>{{.Title}}</td><td>{{.Description}}</td><td>{{.PCIReference}}</td><td>{{.EstimatedCost}}</td></tr>
{{end}}
</table>
{{else}}
<p class="compliant">No remediation required.</p>
{{end}}

<h2>PCI DSS Compliance</h2>
<table>
<tr><th>Requirement</th><th>Description</th><th>Status</th></tr>
{{range .ComplianceTable}}
<tr><td>{{.ID}}</td><td>{{.Description}}</td>{{if .Compliant}}<td class="compliant">Compliant</td>{{else}}<td class="non-compliant">Non-Compliant</td>{{end}}</tr>
{{end}}
</table>

{{if .GeneratedScripts}}
<h2>Generated Remediation Scripts</h2>
<ul>
{{range .GeneratedScripts}}<li><code>{{.}}</code></li>
{{end}}</ul>
<p class="meta">Review each script before running it against a production account.</p>
{{end}}

</body>
</html>
`
