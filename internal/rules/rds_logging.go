package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// RDSLoggingRule recommends enabling CloudWatch log exports on every RDS
// instance that writes logs only to local instance storage.
type RDSLoggingRule struct{}

func (r RDSLoggingRule) ID() string       { return "RDS_CLOUDWATCH_LOGGING" }
func (r RDSLoggingRule) Category() string { return "RDS" }

// Evaluate returns one MEDIUM recommendation when unlogged instances exist.
func (r RDSLoggingRule) Evaluate(ctx RuleContext) *models.Recommendation {
	instances := ctx.Report.RDSLogging.InstancesWithoutLogging
	if len(instances) == 0 {
		return nil
	}
	script, _ := ctx.Scripts.RDSLoggingScript(instances)
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Enable RDS CloudWatch Logging",
		Description:   fmt.Sprintf("Enable CloudWatch logging for %d RDS instances", len(instances)),
		PCIReference:  "10.2.1",
		Script:        script,
		EstimatedCost: "Low",
	}
}
