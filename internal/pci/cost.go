package pci

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// Per-resource monthly cost estimates in USD. Rough heuristics for the report
// summary only; actual spend comes from the optional Cost Explorer probe.
const (
	costBaseline          = 50
	costCloudTrailMissing = 5
	costPerBucket         = 2
	costPerLogGroup       = 1
	costPerRDSInstance    = 3
)

// EstimateMonthlyCost returns a rough monthly log-management cost estimate
// for the account described by report, formatted as a dollar string.
func EstimateMonthlyCost(report *models.FindingsReport) string {
	cost := costBaseline
	if !report.CloudTrail.Enabled {
		cost += costCloudTrailMissing
	}
	cost += report.S3Logging.BucketsAnalyzed * costPerBucket
	cost += report.CloudWatchLogs.LogGroups * costPerLogGroup
	cost += report.RDSLogging.Instances * costPerRDSInstance
	return fmt.Sprintf("$%d", cost)
}
