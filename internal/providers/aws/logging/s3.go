package awslogging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3svc "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectS3Logging lists all buckets in the account and checks whether each
// has server access logging enabled via GetBucketLogging.
func collectS3Logging(ctx context.Context, client s3APIClient) (*models.S3LoggingData, error) {
	out, err := client.ListBuckets(ctx, &s3svc.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("list S3 buckets: %w", err)
	}

	buckets := make([]models.BucketLoggingStatus, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		name := aws.ToString(b.Name)
		status := models.BucketLoggingStatus{Name: name}
		if target, ok := bucketLoggingTarget(ctx, client, name); ok {
			status.LoggingEnabled = true
			status.TargetBucket = target
		}
		buckets = append(buckets, status)
	}
	return &models.S3LoggingData{Buckets: buckets}, nil
}

// bucketLoggingTarget returns the target bucket for server access logging
// when logging is enabled. Errors (e.g. access denied on a cross-account
// bucket) are treated as "logging not enabled" so the bucket gets flagged.
func bucketLoggingTarget(ctx context.Context, client s3APIClient, name string) (string, bool) {
	out, err := client.GetBucketLogging(ctx, &s3svc.GetBucketLoggingInput{
		Bucket: aws.String(name),
	})
	if err != nil || out.LoggingEnabled == nil {
		return "", false
	}
	return aws.ToString(out.LoggingEnabled.TargetBucket), true
}
