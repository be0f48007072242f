package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
	awslogging "github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/logging"
)

// DefaultReviewEngine is the production ReviewEngine. It loads AWS
// credentials through the client provider, runs every logging probe through
// the collector, and normalizes the raw payloads into a FindingsReport.
type DefaultReviewEngine struct {
	provider  common.AWSClientProvider
	collector awslogging.LoggingCollector
}

// NewDefaultReviewEngine constructs a DefaultReviewEngine wired to the
// supplied provider and logging collector.
func NewDefaultReviewEngine(
	provider common.AWSClientProvider,
	collector awslogging.LoggingCollector,
) *DefaultReviewEngine {
	return &DefaultReviewEngine{provider: provider, collector: collector}
}

// RunReview implements ReviewEngine. Probes run sequentially; a probe failure
// becomes a HIGH issue on that service's finding and the review continues.
// Only a credential or profile loading failure aborts the run.
func (e *DefaultReviewEngine) RunReview(ctx context.Context, opts ReviewOptions) (*models.FindingsReport, error) {
	profile, err := e.provider.LoadProfile(ctx, opts.Profile)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if opts.Region != "" {
		profile.Region = opts.Region
		profile.Config.Region = opts.Region
	}

	ctData, ctErr := e.collector.CollectCloudTrail(ctx, profile)
	s3Data, s3Err := e.collector.CollectS3Logging(ctx, profile)
	cwData, cwErr := e.collector.CollectCloudWatchLogs(ctx, profile)
	rdsData, rdsErr := e.collector.CollectRDSLogging(ctx, profile)
	iamData, iamErr := e.collector.CollectIAMMonitoring(ctx, profile)
	elbData, elbErr := e.collector.CollectELBLogging(ctx, profile)
	monData, monErr := e.collector.CollectMonitoring(ctx, profile)

	report := &models.FindingsReport{
		CloudTrail:     NormalizeCloudTrail(ctData, ctErr),
		S3Logging:      NormalizeS3Logging(s3Data, s3Err),
		CloudWatchLogs: NormalizeCloudWatchLogs(cwData, cwErr),
		RDSLogging:     NormalizeRDSLogging(rdsData, rdsErr),
		IAMMonitoring:  NormalizeIAMMonitoring(iamData, iamErr),
		ELBLogging:     NormalizeELBLogging(elbData, elbErr),
		Monitoring:     NormalizeMonitoring(monData, monErr),

		GeneratedAt: time.Now().UTC(),
		AccountID:   profile.AccountID,
		Profile:     profile.ProfileName,
		Region:      profile.Region,
	}

	// Cost Explorer is opt-in and non-fatal: many accounts never enable it,
	// so a failure simply leaves the summary out of the report.
	if opts.WithCost {
		if cost, err := e.collector.CollectLoggingCost(ctx, profile); err == nil {
			report.Cost = cost
		}
	}

	report.TotalIssues = report.CountIssues()
	return report, nil
}
