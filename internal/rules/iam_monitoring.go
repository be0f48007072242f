package rules

import (
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// IAMMonitoringRule recommends enabling IAM access monitoring when either
// credential reports or IAM Access Analyzer is unavailable. Both capabilities
// are set up by the same script, so one recommendation covers both gaps.
type IAMMonitoringRule struct{}

func (r IAMMonitoringRule) ID() string       { return "IAM_MONITORING" }
func (r IAMMonitoringRule) Category() string { return "IAM" }

// Evaluate returns one MEDIUM recommendation when any IAM monitoring
// capability is missing.
func (r IAMMonitoringRule) Evaluate(ctx RuleContext) *models.Recommendation {
	iam := ctx.Report.IAMMonitoring
	if iam.CredentialReportEnabled && iam.AccessAnalyzerEnabled {
		return nil
	}
	script, _ := ctx.Scripts.IAMMonitoringScript()
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Enable IAM Monitoring",
		Description:   "Enable credential reports and IAM Access Analyzer for access monitoring",
		PCIReference:  "10.2.1",
		Script:        script,
		EstimatedCost: "Low",
	}
}
