package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// ELBAccessLoggingRule recommends enabling access logging on load balancers
// that lack it. The ELB probe is optional; when it did not run the rule
// stays silent rather than guessing.
type ELBAccessLoggingRule struct{}

func (r ELBAccessLoggingRule) ID() string       { return "ELB_ACCESS_LOGGING" }
func (r ELBAccessLoggingRule) Category() string { return "ELB" }

// Evaluate returns one MEDIUM recommendation when unlogged load balancers exist.
func (r ELBAccessLoggingRule) Evaluate(ctx RuleContext) *models.Recommendation {
	elb := ctx.Report.ELBLogging
	if elb == nil || len(elb.LoadBalancersWithoutLogging) == 0 {
		return nil
	}
	script, _ := ctx.Scripts.ELBLoggingScript(elb.LoadBalancersWithoutLogging)
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Enable Load Balancer Access Logging",
		Description:   fmt.Sprintf("Enable access logging for %d load balancers", len(elb.LoadBalancersWithoutLogging)),
		PCIReference:  "10.2.1",
		Script:        script,
		EstimatedCost: "Low (access logs are stored in S3)",
	}
}
