package awslogging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cloudtrailsvc "github.com/aws/aws-sdk-go-v2/service/cloudtrail"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectCloudTrail describes every trail visible to the account and fetches
// each trail's delivery status. A trail that exists but is not logging is
// still returned, with IsLogging false, so the engine can flag it.
func collectCloudTrail(ctx context.Context, client cloudTrailAPIClient) (*models.CloudTrailData, error) {
	out, err := client.DescribeTrails(ctx, &cloudtrailsvc.DescribeTrailsInput{})
	if err != nil {
		return nil, fmt.Errorf("describe CloudTrail trails: %w", err)
	}

	trails := make([]models.TrailStatus, 0, len(out.TrailList))
	for _, t := range out.TrailList {
		trails = append(trails, models.TrailStatus{
			Name:              aws.ToString(t.Name),
			S3BucketName:      aws.ToString(t.S3BucketName),
			IsLogging:         trailIsLogging(ctx, client, t.TrailARN),
			IsMultiRegion:     aws.ToBool(t.IsMultiRegionTrail),
			LogFileValidation: aws.ToBool(t.LogFileValidationEnabled),
			HomeRegion:        aws.ToString(t.HomeRegion),
		})
	}
	return &models.CloudTrailData{Trails: trails}, nil
}

// trailIsLogging returns true when GetTrailStatus reports the trail as
// actively delivering logs. Errors are treated as "not logging" so a trail
// whose status cannot be read is surfaced as a gap rather than hidden.
func trailIsLogging(ctx context.Context, client cloudTrailAPIClient, trailARN *string) bool {
	out, err := client.GetTrailStatus(ctx, &cloudtrailsvc.GetTrailStatusInput{
		Name: trailARN,
	})
	if err != nil {
		return false
	}
	return aws.ToBool(out.IsLogging)
}
