package awslogging

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	elbv2svc "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// collectELBLogging lists every v2 load balancer in the region and reads the
// access_logs.s3.enabled attribute from each. Load balancers handling
// cardholder traffic without access logs leave a gap in the audit trail.
func collectELBLogging(ctx context.Context, client elbv2APIClient) (*models.ELBLoggingData, error) {
	out, err := client.DescribeLoadBalancers(ctx, &elbv2svc.DescribeLoadBalancersInput{})
	if err != nil {
		return nil, fmt.Errorf("describe load balancers: %w", err)
	}

	lbs := make([]models.LoadBalancerLogging, 0, len(out.LoadBalancers))
	for _, lb := range out.LoadBalancers {
		lbs = append(lbs, models.LoadBalancerLogging{
			Name:              aws.ToString(lb.LoadBalancerName),
			ARN:               aws.ToString(lb.LoadBalancerArn),
			Type:              string(lb.Type),
			AccessLogsEnabled: loadBalancerAccessLogsEnabled(ctx, client, lb.LoadBalancerArn),
		})
	}
	return &models.ELBLoggingData{LoadBalancers: lbs}, nil
}

// loadBalancerAccessLogsEnabled returns true when the load balancer's
// access_logs.s3.enabled attribute is "true". Errors are treated as
// "logging disabled" so an unreadable load balancer is surfaced as a gap.
func loadBalancerAccessLogsEnabled(ctx context.Context, client elbv2APIClient, arn *string) bool {
	out, err := client.DescribeLoadBalancerAttributes(ctx, &elbv2svc.DescribeLoadBalancerAttributesInput{
		LoadBalancerArn: arn,
	})
	if err != nil {
		return false
	}
	for _, attr := range out.Attributes {
		if aws.ToString(attr.Key) == "access_logs.s3.enabled" {
			return aws.ToString(attr.Value) == "true"
		}
	}
	return false
}
