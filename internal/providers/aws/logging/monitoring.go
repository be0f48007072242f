package awslogging

import (
	"context"
	"fmt"

	cloudwatchsvc "github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectMonitoring counts the CloudWatch metric alarms configured in the
// region. Zero alarms means nothing is watching the logging pipeline.
func collectMonitoring(ctx context.Context, client cloudWatchAPIClient) (*models.MonitoringData, error) {
	out, err := client.DescribeAlarms(ctx, &cloudwatchsvc.DescribeAlarmsInput{})
	if err != nil {
		return nil, fmt.Errorf("describe CloudWatch alarms: %w", err)
	}
	return &models.MonitoringData{AlarmCount: len(out.MetricAlarms)}, nil
}
