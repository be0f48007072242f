package awslogging

import (
	"context"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
)

// LoggingCollector collects raw logging configuration data from an AWS
// account. Each method returns the state of a single service; the results
// are passed to the review engine for normalisation into findings.
//
// Implementations must never apply compliance logic. A method returning an
// error means the service could not be inspected at all; the engine records
// that as its own finding rather than aborting the review.
type LoggingCollector interface {
	CollectCloudTrail(ctx context.Context, profile *common.ProfileConfig) (*models.CloudTrailData, error)
	CollectS3Logging(ctx context.Context, profile *common.ProfileConfig) (*models.S3LoggingData, error)
	CollectCloudWatchLogs(ctx context.Context, profile *common.ProfileConfig) (*models.CloudWatchLogsData, error)
	CollectRDSLogging(ctx context.Context, profile *common.ProfileConfig) (*models.RDSLoggingData, error)
	CollectIAMMonitoring(ctx context.Context, profile *common.ProfileConfig) (*models.IAMMonitoringData, error)
	CollectELBLogging(ctx context.Context, profile *common.ProfileConfig) (*models.ELBLoggingData, error)
	CollectMonitoring(ctx context.Context, profile *common.ProfileConfig) (*models.MonitoringData, error)
	CollectLoggingCost(ctx context.Context, profile *common.ProfileConfig) (*models.LoggingCostSummary, error)
}
