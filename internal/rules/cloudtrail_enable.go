package rules

import (
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// CloudTrailEnableRule recommends creating a trail when no trail in the
// account is delivering logs. Without CloudTrail there is no API audit trail
// at all, so this is the highest-priority remediation.
type CloudTrailEnableRule struct{}

func (r CloudTrailEnableRule) ID() string       { return "CLOUDTRAIL_ENABLE" }
func (r CloudTrailEnableRule) Category() string { return "CloudTrail" }

// Evaluate returns one HIGH recommendation when CloudTrail is not enabled.
func (r CloudTrailEnableRule) Evaluate(ctx RuleContext) *models.Recommendation {
	if ctx.Report.CloudTrail.Enabled {
		return nil
	}
	script, _ := ctx.Scripts.CloudTrailScript()
	return &models.Recommendation{
		Priority:      models.SeverityHigh,
		Category:      r.Category(),
		Title:         "Enable CloudTrail",
		Description:   "Enable CloudTrail for comprehensive API activity logging",
		PCIReference:  "10.2.1-10.2.7",
		Script:        script,
		EstimatedCost: "Low (CloudTrail is free for first 5GB/month)",
	}
}
