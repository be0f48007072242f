package awslogging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	rdssvc "github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectRDSLogging pages through every RDS instance in the region and
// records which log types are exported to CloudWatch Logs. An instance with
// an empty export list writes its logs only to local instance storage.
func collectRDSLogging(ctx context.Context, client rdsAPIClient) (*models.RDSLoggingData, error) {
	paginator := rdssvc.NewDescribeDBInstancesPaginator(client, &rdssvc.DescribeDBInstancesInput{})
	var instances []models.DBInstanceLogging
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe RDS instances: %w", err)
		}
		for _, db := range page.DBInstances {
			instances = append(instances, models.DBInstanceLogging{
				Identifier:     aws.ToString(db.DBInstanceIdentifier),
				Engine:         aws.ToString(db.Engine),
				EnabledExports: db.EnabledCloudwatchLogsExports,
			})
		}
	}
	return &models.RDSLoggingData{Instances: instances}, nil
}
