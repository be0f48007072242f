package awslogging

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cesvc "github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// loggingServices are the Cost Explorer SERVICE dimension values that make
// up the account's logging spend.
var loggingServices = []string{
	"AWS CloudTrail",
	"AmazonCloudWatch",
	"Amazon Simple Storage Service",
}

// collectLoggingCost queries Cost Explorer for last month's unblended cost
// of the logging-related services, grouped by service.
func collectLoggingCost(ctx context.Context, client costExplorerAPIClient) (*models.LoggingCostSummary, error) {
	now := time.Now().UTC()
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodStart := periodEnd.AddDate(0, -1, 0)

	out, err := client.GetCostAndUsage(ctx, &cesvc.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(periodStart.Format("2006-01-02")),
			End:   aws.String(periodEnd.Format("2006-01-02")),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")},
		},
		Filter: &cetypes.Expression{
			Dimensions: &cetypes.DimensionValues{
				Key:    cetypes.DimensionService,
				Values: loggingServices,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get cost and usage: %w", err)
	}

	summary := &models.LoggingCostSummary{
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
	}
	for _, result := range out.ResultsByTime {
		for _, group := range result.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			amount := parseCostAmount(group.Metrics["UnblendedCost"])
			summary.ServiceBreakdown = append(summary.ServiceBreakdown, models.ServiceCost{
				Service: group.Keys[0],
				CostUSD: amount,
			})
			summary.TotalCostUSD += amount
		}
	}
	return summary, nil
}

// parseCostAmount converts a Cost Explorer metric value to a float.
// Unparseable amounts count as zero.
func parseCostAmount(metric cetypes.MetricValue) float64 {
	amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
	if err != nil {
		return 0
	}
	return amount
}
