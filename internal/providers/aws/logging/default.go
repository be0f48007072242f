package awslogging

import (
	"context"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
)

// DefaultLoggingCollector is the production LoggingCollector. All probes run
// against the profile's configured region; CloudTrail, S3, and IAM are global
// services but the SDK routes them correctly from any regional config.
type DefaultLoggingCollector struct {
	factory logClientFactory
}

// NewDefaultLoggingCollector returns a DefaultLoggingCollector wired to
// production AWS SDK clients.
func NewDefaultLoggingCollector() *DefaultLoggingCollector {
	return &DefaultLoggingCollector{factory: newDefaultLogClients}
}

// NewDefaultLoggingCollectorWithFactory returns a DefaultLoggingCollector
// that uses the supplied factory, allowing tests to inject fake clients.
func NewDefaultLoggingCollectorWithFactory(f logClientFactory) *DefaultLoggingCollector {
	return &DefaultLoggingCollector{factory: f}
}

func (c *DefaultLoggingCollector) clients(profile *common.ProfileConfig) *logClients {
	return c.factory(profile.Config)
}

// CollectCloudTrail returns the configuration and delivery status of every
// trail visible to the account.
func (c *DefaultLoggingCollector) CollectCloudTrail(ctx context.Context, profile *common.ProfileConfig) (*models.CloudTrailData, error) {
	return collectCloudTrail(ctx, c.clients(profile).CloudTrail)
}

// CollectS3Logging returns the server access logging status of every bucket
// in the account.
func (c *DefaultLoggingCollector) CollectS3Logging(ctx context.Context, profile *common.ProfileConfig) (*models.S3LoggingData, error) {
	return collectS3Logging(ctx, c.clients(profile).S3)
}

// CollectCloudWatchLogs returns the retention configuration of every log
// group in the profile's region.
func (c *DefaultLoggingCollector) CollectCloudWatchLogs(ctx context.Context, profile *common.ProfileConfig) (*models.CloudWatchLogsData, error) {
	return collectCloudWatchLogs(ctx, c.clients(profile).CloudWatchLogs)
}

// CollectRDSLogging returns the CloudWatch log export configuration of every
// RDS instance in the profile's region.
func (c *DefaultLoggingCollector) CollectRDSLogging(ctx context.Context, profile *common.ProfileConfig) (*models.RDSLoggingData, error) {
	return collectRDSLogging(ctx, c.clients(profile).RDS)
}

// CollectIAMMonitoring returns the availability of the IAM credential report
// and whether any IAM Access Analyzer is configured.
func (c *DefaultLoggingCollector) CollectIAMMonitoring(ctx context.Context, profile *common.ProfileConfig) (*models.IAMMonitoringData, error) {
	clients := c.clients(profile)
	return collectIAMMonitoring(ctx, clients.IAM, clients.AccessAnalyzer)
}

// CollectELBLogging returns the access-log configuration of every
// application and network load balancer in the profile's region.
func (c *DefaultLoggingCollector) CollectELBLogging(ctx context.Context, profile *common.ProfileConfig) (*models.ELBLoggingData, error) {
	return collectELBLogging(ctx, c.clients(profile).ELBv2)
}

// CollectMonitoring returns the number of CloudWatch metric alarms
// configured in the profile's region.
func (c *DefaultLoggingCollector) CollectMonitoring(ctx context.Context, profile *common.ProfileConfig) (*models.MonitoringData, error) {
	return collectMonitoring(ctx, c.clients(profile).CloudWatch)
}

// CollectLoggingCost returns last month's spend on logging-related services
// from Cost Explorer.
func (c *DefaultLoggingCollector) CollectLoggingCost(ctx context.Context, profile *common.ProfileConfig) (*models.LoggingCostSummary, error) {
	return collectLoggingCost(ctx, c.clients(profile).CostExplorer)
}
