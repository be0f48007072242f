package awslogging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cwlogssvc "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectCloudWatchLogs pages through every log group in the region and
// records whether a retention policy is set. Groups without a retention
// policy keep logs forever, which usually means nobody has thought about
// the retention requirement at all.
func collectCloudWatchLogs(ctx context.Context, client cwLogsAPIClient) (*models.CloudWatchLogsData, error) {
	paginator := cwlogssvc.NewDescribeLogGroupsPaginator(client, &cwlogssvc.DescribeLogGroupsInput{})
	var groups []models.LogGroupRetention
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe log groups: %w", err)
		}
		for _, g := range page.LogGroups {
			groups = append(groups, models.LogGroupRetention{
				Name:          aws.ToString(g.LogGroupName),
				HasRetention:  g.RetentionInDays != nil,
				RetentionDays: aws.ToInt32(g.RetentionInDays),
			})
		}
	}
	return &models.CloudWatchLogsData{LogGroups: groups}, nil
}
