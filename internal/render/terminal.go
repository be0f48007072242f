package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/output"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"
)

// ConsoleOptions controls the console report rendering.
type ConsoleOptions struct {
	// Colored enables ANSI colouring of severity and status labels.
	Colored bool

	// ScriptFiles lists remediation scripts written during this run; when
	// non-empty a scripts section is appended.
	ScriptFiles []string
}

// Fixed cost-optimization guidance printed at the end of every console report.
var costOptimizationTips = []string{
	"Use S3 Lifecycle policies to transition logs to cheaper storage tiers",
	"Implement log filtering to reduce storage costs",
	"Consider CloudWatch Logs Insights for efficient log analysis",
	"Use CloudTrail Insights to reduce CloudTrail costs",
	"Implement log retention policies to automatically delete old logs",
}

func check(ok bool, yes, no string) string {
	if ok {
		return "✓ " + yes
	}
	return "✗ " + no
}

// WriteConsoleReport writes the full human-readable report to w: executive
// summary, per-service findings summary, issue table, numbered
// recommendations, compliance table, and cost guidance.
func WriteConsoleReport(w io.Writer, data ReportData, opts ConsoleOptions) {
	rule := strings.Repeat("=", 80)
	findings := data.Findings

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "AWS LOG MANAGEMENT REVIEW REPORT")
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nEXECUTIVE SUMMARY")
	fmt.Fprintf(w, "Analysis Date: %s\n", data.Metadata.GeneratedAt)
	if findings.AccountID != "" {
		fmt.Fprintf(w, "Account: %s", findings.AccountID)
		if findings.Region != "" {
			fmt.Fprintf(w, " (%s)", findings.Region)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Total Issues Found: %d\n", data.Summary.TotalIssues)
	fmt.Fprintf(w, "Recommendations Generated: %d\n", data.Summary.TotalRecommendations)
	fmt.Fprintf(w, "Compliance Score: %d/100\n", data.Summary.ComplianceScore)
	fmt.Fprintf(w, "Estimated Monthly Cost: %s\n", data.Summary.EstimatedMonthlyCost)

	fmt.Fprintln(w, "\nFINDINGS SUMMARY")
	ct := findings.CloudTrail
	fmt.Fprintf(w, "CloudTrail: %s\n", check(ct.Enabled, "Enabled", "Not Enabled"))
	if ct.Enabled {
		fmt.Fprintf(w, "  - Multi-Region: %s\n", check(ct.MultiRegion, "Yes", "No"))
		fmt.Fprintf(w, "  - Log Validation: %s\n", check(ct.LogFileValidation, "Enabled", "Disabled"))
	}
	fmt.Fprintf(w, "S3 Access Logging: %d/%d buckets enabled\n",
		findings.S3Logging.BucketsWithLogging, findings.S3Logging.BucketsAnalyzed)
	fmt.Fprintf(w, "CloudWatch Logs: %d/%d log groups have retention policies\n",
		findings.CloudWatchLogs.LogGroupsWithRetention, findings.CloudWatchLogs.LogGroups)
	fmt.Fprintf(w, "RDS CloudWatch Logging: %d/%d instances enabled\n",
		findings.RDSLogging.InstancesWithLogging, findings.RDSLogging.Instances)
	fmt.Fprintf(w, "IAM Credential Reports: %s\n",
		check(findings.IAMMonitoring.CredentialReportEnabled, "Enabled", "Not Enabled"))
	fmt.Fprintf(w, "IAM Access Analyzer: %s\n",
		check(findings.IAMMonitoring.AccessAnalyzerEnabled, "Enabled", "Not Enabled"))
	if findings.ELBLogging != nil {
		fmt.Fprintf(w, "ELB Access Logging: %d/%d load balancers enabled\n",
			findings.ELBLogging.LoadBalancersWithLogging, findings.ELBLogging.LoadBalancers)
	}
	if findings.Monitoring != nil {
		fmt.Fprintf(w, "CloudWatch Alarms: %d configured\n", findings.Monitoring.AlarmsConfigured)
	}

	fmt.Fprintln(w, "\nDETAILED ISSUES")
	issues := findings.AllIssues()
	if len(issues) == 0 {
		fmt.Fprintln(w, "✓ No issues found!")
	} else {
		output.RenderIssueTable(w, issues, output.TableOptions{Colored: opts.Colored})
	}

	fmt.Fprintln(w, "\nRECOMMENDATIONS")
	if len(data.Recommendations) == 0 {
		fmt.Fprintln(w, "✓ No recommendations - your logging setup looks good!")
	}
	for i, rec := range data.Recommendations {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, rec.Title)
		fmt.Fprintf(w, "   Priority: %s\n", output.ColorSeverity(rec.Priority, opts.Colored))
		fmt.Fprintf(w, "   Category: %s\n", rec.Category)
		fmt.Fprintf(w, "   Description: %s\n", rec.Description)
		fmt.Fprintf(w, "   PCI Reference: %s\n", rec.PCIReference)
		fmt.Fprintf(w, "   Estimated Cost: %s\n", rec.EstimatedCost)
	}

	fmt.Fprintln(w, "\nPCI DSS COMPLIANCE SUMMARY")
	output.RenderComplianceTable(w, pci.BuildComplianceTable(findings), output.TableOptions{Colored: opts.Colored})

	if findings.Cost != nil {
		fmt.Fprintln(w, "\nLOGGING COST SUMMARY (last month)")
		fmt.Fprintf(w, "Period: %s to %s\n", findings.Cost.PeriodStart, findings.Cost.PeriodEnd)
		for _, svc := range findings.Cost.ServiceBreakdown {
			fmt.Fprintf(w, "  %-40s $%.2f\n", svc.Service, svc.CostUSD)
		}
		fmt.Fprintf(w, "Total: $%.2f\n", findings.Cost.TotalCostUSD)
	}

	fmt.Fprintln(w, "\nCOST OPTIMIZATION RECOMMENDATIONS")
	for _, tip := range costOptimizationTips {
		fmt.Fprintf(w, "• %s\n", tip)
	}

	if len(opts.ScriptFiles) > 0 {
		fmt.Fprintln(w, "\nGENERATED REMEDIATION SCRIPTS")
		for _, f := range opts.ScriptFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "Report generation complete!")
	fmt.Fprintln(w, rule)
}
