package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// CloudWatchRetentionRule recommends setting a retention policy on every log
// group that has none. PCI DSS requires at least one year of audit history;
// the script applies the retention configured in the policy file.
type CloudWatchRetentionRule struct{}

func (r CloudWatchRetentionRule) ID() string       { return "CLOUDWATCH_RETENTION" }
func (r CloudWatchRetentionRule) Category() string { return "CloudWatch" }

// Evaluate returns one MEDIUM recommendation when groups without retention exist.
func (r CloudWatchRetentionRule) Evaluate(ctx RuleContext) *models.Recommendation {
	groups := ctx.Report.CloudWatchLogs.LogGroupsWithoutRetention
	if len(groups) == 0 {
		return nil
	}
	script, _ := ctx.Scripts.CloudWatchRetentionScript(groups)
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Set Log Retention Policies",
		Description:   fmt.Sprintf("Set retention policies for %d log groups", len(groups)),
		PCIReference:  "10.5.1.2",
		Script:        script,
		EstimatedCost: "Low (reduces storage costs)",
	}
}
