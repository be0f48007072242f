package rules

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// S3AccessLoggingRule recommends enabling server access logging on every
// bucket that lacks it. One recommendation covers all offending buckets; its
// script emits one put-bucket-logging call per bucket in finding order.
type S3AccessLoggingRule struct{}

func (r S3AccessLoggingRule) ID() string       { return "S3_ACCESS_LOGGING" }
func (r S3AccessLoggingRule) Category() string { return "S3" }

// Evaluate returns one MEDIUM recommendation when unlogged buckets exist.
func (r S3AccessLoggingRule) Evaluate(ctx RuleContext) *models.Recommendation {
	buckets := ctx.Report.S3Logging.BucketsWithoutLogging
	if len(buckets) == 0 {
		return nil
	}
	script, _ := ctx.Scripts.S3LoggingScript(buckets)
	return &models.Recommendation{
		Priority:      models.SeverityMedium,
		Category:      r.Category(),
		Title:         "Enable S3 Access Logging",
		Description:   fmt.Sprintf("Enable access logging for %d S3 buckets", len(buckets)),
		PCIReference:  "10.2.1",
		Script:        script,
		EstimatedCost: "Low (S3 access logs are inexpensive)",
	}
}
