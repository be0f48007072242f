package awslogging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	aasvc "github.com/aws/aws-sdk-go-v2/service/accessanalyzer"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	cloudwatchsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwlogssvc "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cesvc "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	iamsvc "github.com/aws/aws-sdk-go-v2/service/iam"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"
)

// cloudTrailAPIClient is the narrow CloudTrail interface used by the logging
// collector. DescribeTrails returns all trails visible to the account;
// GetTrailStatus reports whether a specific trail is delivering logs.
type cloudTrailAPIClient interface {
	DescribeTrails(ctx context.Context, params *cloudtrailsvc.DescribeTrailsInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.DescribeTrailsOutput, error)
	GetTrailStatus(ctx context.Context, params *cloudtrailsvc.GetTrailStatusInput, optFns ...func(*cloudtrailsvc.Options)) (*cloudtrailsvc.GetTrailStatusOutput, error)
}

// s3APIClient is the narrow S3 interface for access-logging inspection.
type s3APIClient interface {
	ListBuckets(ctx context.Context, params *s3svc.ListBucketsInput, optFns ...func(*s3svc.Options)) (*s3svc.ListBucketsOutput, error)
	GetBucketLogging(ctx context.Context, params *s3svc.GetBucketLoggingInput, optFns ...func(*s3svc.Options)) (*s3svc.GetBucketLoggingOutput, error)
}

// cwLogsAPIClient embeds the SDK paginator interface so DescribeLogGroups can
// be paginated across accounts with many log groups.
type cwLogsAPIClient interface {
	cwlogssvc.DescribeLogGroupsAPIClient
}

// rdsAPIClient embeds the SDK paginator interface for DescribeDBInstances.
type rdsAPIClient interface {
	rdssvc.DescribeDBInstancesAPIClient
}

// iamAPIClient is the narrow IAM interface for monitoring checks.
// GenerateCredentialReport doubles as an availability probe: it fails when
// the caller lacks iam:GenerateCredentialReport.
type iamAPIClient interface {
	GenerateCredentialReport(ctx context.Context, params *iamsvc.GenerateCredentialReportInput, optFns ...func(*iamsvc.Options)) (*iamsvc.GenerateCredentialReportOutput, error)
}

// accessAnalyzerAPIClient is the narrow IAM Access Analyzer interface for
// checking whether any analyzer is configured.
type accessAnalyzerAPIClient interface {
	ListAnalyzers(ctx context.Context, params *aasvc.ListAnalyzersInput, optFns ...func(*aasvc.Options)) (*aasvc.ListAnalyzersOutput, error)
}

// cloudWatchAPIClient is the narrow CloudWatch interface for counting
// configured metric alarms.
type cloudWatchAPIClient interface {
	DescribeAlarms(ctx context.Context, params *cloudwatchsvc.DescribeAlarmsInput, optFns ...func(*cloudwatchsvc.Options)) (*cloudwatchsvc.DescribeAlarmsOutput, error)
}

// elbv2APIClient is the narrow ELBv2 interface for checking load balancer
// access-log configuration.
type elbv2APIClient interface {
	DescribeLoadBalancers(ctx context.Context, params *elbv2svc.DescribeLoadBalancersInput, optFns ...func(*elbv2svc.Options)) (*elbv2svc.DescribeLoadBalancersOutput, error)
	DescribeLoadBalancerAttributes(ctx context.Context, params *elbv2svc.DescribeLoadBalancerAttributesInput, optFns ...func(*elbv2svc.Options)) (*elbv2svc.DescribeLoadBalancerAttributesOutput, error)
}

// costExplorerAPIClient is the narrow Cost Explorer interface for the
// optional logging-spend summary.
type costExplorerAPIClient interface {
	GetCostAndUsage(ctx context.Context, params *cesvc.GetCostAndUsageInput, optFns ...func(*cesvc.Options)) (*cesvc.GetCostAndUsageOutput, error)
}

// logClients bundles all AWS service clients used by the logging collector.
type logClients struct {
	CloudTrail     cloudTrailAPIClient
	S3             s3APIClient
	CloudWatchLogs cwLogsAPIClient
	RDS            rdsAPIClient
	IAM            iamAPIClient
	AccessAnalyzer accessAnalyzerAPIClient
	CloudWatch     cloudWatchAPIClient
	ELBv2          elbv2APIClient
	CostExplorer   costExplorerAPIClient
}

// logClientFactory creates logClients from an AWS config.
// Injection point: tests replace this with a function returning fake clients.
type logClientFactory func(cfg aws.Config) *logClients

// newDefaultLogClients creates production AWS SDK clients from the given config.
func newDefaultLogClients(cfg aws.Config) *logClients {
	return &logClients{
		CloudTrail:     cloudtrailsvc.NewFromConfig(cfg),
		S3:             s3svc.NewFromConfig(cfg),
		CloudWatchLogs: cwlogssvc.NewFromConfig(cfg),
		RDS:            rdssvc.NewFromConfig(cfg),
		IAM:            iamsvc.NewFromConfig(cfg),
		AccessAnalyzer: aasvc.NewFromConfig(cfg),
		CloudWatch:     cloudwatchsvc.NewFromConfig(cfg),
		ELBv2:          elbv2svc.NewFromConfig(cfg),
		CostExplorer:   cesvc.NewFromConfig(cfg),
	}
}
