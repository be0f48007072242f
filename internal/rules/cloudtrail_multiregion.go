package rules

import (
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// CloudTrailMultiRegionRule recommends converting an active single-region
// trail to multi-region. It fires only when CloudTrail is enabled: a fully
// disabled CloudTrail is covered by CloudTrailEnableRule, whose script
// already creates a multi-region trail.
type CloudTrailMultiRegionRule struct{}

func (r CloudTrailMultiRegionRule) ID() string       { return "CLOUDTRAIL_MULTI_REGION" }
func (r CloudTrailMultiRegionRule) Category() string { return "CloudTrail" }

// Evaluate returns one MEDIUM recommendation for an enabled but
// single-region CloudTrail.
func (r CloudTrailMultiRegionRule) Evaluate(ctx RuleContext) *models.Recommendation {
	ct := ctx.Report.CloudTrail
	if !ct.Enabled || ct.MultiRegion {
		return nil
	}
	script, _ := ctx.Scripts.MultiRegionScript()
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Enable Multi-Region CloudTrail",
		Description:   "Enable multi-region CloudTrail for comprehensive coverage",
		PCIReference:  "10.2.1-10.2.7",
		Script:        script,
		EstimatedCost: "Low",
	}
}
