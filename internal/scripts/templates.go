package scripts

import (
	"fmt"
	"strings"
	"text/template"
)

// Every remediation script starts with a header naming the generation time
// and the PCI DSS requirement it addresses, then runs under set -e so a
// partial remediation stops instead of silently skipping steps.

const cloudTrailTemplate = `#!/bin/bash
# CloudTrail Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up CloudTrail for PCI DSS compliance..."

# Variables
TRAIL_NAME="{{.TrailName}}"
S3_BUCKET="{{.LogBucket}}"
CLOUDWATCH_LOG_GROUP="{{.LogGroup}}"

# Create S3 bucket if it doesn't exist
if ! aws s3 ls "s3://$S3_BUCKET" 2>&1 > /dev/null; then
    echo "Creating S3 bucket: $S3_BUCKET"
    aws s3 mb "s3://$S3_BUCKET" --region {{.Region}}

    aws s3api put-bucket-versioning --bucket "$S3_BUCKET" --versioning-configuration Status=Enabled

    aws s3api put-bucket-encryption --bucket "$S3_BUCKET" --server-side-encryption-configuration '{
        "Rules": [
            {
                "ApplyServerSideEncryptionByDefault": {
                    "SSEAlgorithm": "AES256"
                }
            }
        ]
    }'

    # Bucket policy allowing CloudTrail delivery
    aws s3api put-bucket-policy --bucket "$S3_BUCKET" --policy '{
        "Version": "2012-10-17",
        "Statement": [
            {
                "Sid": "AWSCloudTrailAclCheck",
                "Effect": "Allow",
                "Principal": {
                    "Service": "cloudtrail.amazonaws.com"
                },
                "Action": "s3:GetBucketAcl",
                "Resource": "arn:aws:s3:::'$S3_BUCKET'"
            },
            {
                "Sid": "AWSCloudTrailWrite",
                "Effect": "Allow",
                "Principal": {
                    "Service": "cloudtrail.amazonaws.com"
                },
                "Action": "s3:PutObject",
                "Resource": "arn:aws:s3:::'$S3_BUCKET'/AWSLogs/*",
                "Condition": {
                    "StringEquals": {
                        "s3:x-amz-acl": "bucket-owner-full-control"
                    }
                }
            }
        ]
    }'
fi

# Create CloudWatch Log Group if it doesn't exist
if ! aws logs describe-log-groups --log-group-name-prefix "$CLOUDWATCH_LOG_GROUP" --query 'logGroups[?logGroupName==` + "`" + `'$CLOUDWATCH_LOG_GROUP'` + "`" + `]' --output text | grep -q "$CLOUDWATCH_LOG_GROUP"; then
    echo "Creating CloudWatch Log Group: $CLOUDWATCH_LOG_GROUP"
    aws logs create-log-group --log-group-name "$CLOUDWATCH_LOG_GROUP"
    aws logs put-retention-policy --log-group-name "$CLOUDWATCH_LOG_GROUP" --retention-in-days {{.RetentionDays}}
fi

# Create CloudTrail
echo "Creating CloudTrail: $TRAIL_NAME"
aws cloudtrail create-trail \
    --name "$TRAIL_NAME" \
    --s3-bucket-name "$S3_BUCKET" \
    --is-multi-region-trail \
    --enable-log-file-validation \
    --cloud-watch-logs-log-group-arn "arn:aws:logs:{{.Region}}:{{.AccountID}}:log-group:$CLOUDWATCH_LOG_GROUP:*" \
    --cloud-watch-logs-role-arn "arn:aws:iam::{{.AccountID}}:role/CloudTrail-CloudWatchLogs-Role"

# Start logging
aws cloudtrail start-logging --name "$TRAIL_NAME"

echo "CloudTrail setup complete!"
echo "Trail Name: $TRAIL_NAME"
echo "S3 Bucket: $S3_BUCKET"
echo "CloudWatch Log Group: $CLOUDWATCH_LOG_GROUP"
`

const multiRegionTemplate = `#!/bin/bash
# Multi-Region CloudTrail Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Enabling multi-region CloudTrail..."

aws cloudtrail update-trail \
    --name "{{.TrailName}}" \
    --is-multi-region-trail

echo "Multi-region CloudTrail enabled"
`

const s3LoggingTemplate = `#!/bin/bash
# S3 Access Logging Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up S3 access logging for PCI DSS compliance..."

# Variables
LOG_BUCKET="{{.AccessLogBucket}}"
LOG_PREFIX="{{.AccessLogPrefix}}"

# Create log bucket if it doesn't exist
if ! aws s3 ls "s3://$LOG_BUCKET" 2>&1 > /dev/null; then
    echo "Creating log bucket: $LOG_BUCKET"
    aws s3 mb "s3://$LOG_BUCKET" --region {{.Region}}

    aws s3api put-bucket-versioning --bucket "$LOG_BUCKET" --versioning-configuration Status=Enabled

    aws s3api put-bucket-encryption --bucket "$LOG_BUCKET" --server-side-encryption-configuration '{
        "Rules": [
            {
                "ApplyServerSideEncryptionByDefault": {
                    "SSEAlgorithm": "AES256"
                }
            }
        ]
    }'

    # Lifecycle policy keeps log storage costs down
    aws s3api put-bucket-lifecycle-configuration --bucket "$LOG_BUCKET" --lifecycle-configuration '{
        "Rules": [
            {
                "ID": "LogRetention",
                "Status": "Enabled",
                "Filter": {
                    "Prefix": ""
                },
                "Transitions": [
                    {
                        "Days": 30,
                        "StorageClass": "STANDARD_IA"
                    },
                    {
                        "Days": 90,
                        "StorageClass": "GLACIER"
                    }
                ],
                "Expiration": {
                    "Days": 365
                }
            }
        ]
    }'
fi

# Enable access logging for each bucket
{{range .Buckets}}echo "Enabling access logging for bucket: {{.}}"
aws s3api put-bucket-logging \
    --bucket "{{.}}" \
    --bucket-logging-status '{
        "LoggingEnabled": {
            "TargetBucket": "'$LOG_BUCKET'",
            "TargetPrefix": "'$LOG_PREFIX'/{{.}}/"
        }
    }'

{{end}}echo "S3 access logging setup complete!"
echo "Log bucket: $LOG_BUCKET"
echo "Log prefix: $LOG_PREFIX"
`

const cloudWatchRetentionTemplate = `#!/bin/bash
# CloudWatch Logs Retention Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up CloudWatch Logs retention policies for PCI DSS compliance..."

{{range .LogGroups}}echo "Setting retention policy for: {{.}}"
aws logs put-retention-policy \
    --log-group-name "{{.}}" \
    --retention-in-days {{$.RetentionDays}}

{{end}}echo "CloudWatch Logs retention policies set successfully!"
`

const rdsLoggingTemplate = `#!/bin/bash
# RDS CloudWatch Logging Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up RDS CloudWatch logging for PCI DSS compliance..."

{{range .Instances}}echo "Enabling CloudWatch logging for RDS instance: {{.}}"
aws rds modify-db-instance \
    --db-instance-identifier "{{.}}" \
    --enable-cloudwatch-logs-exports "{{$.LogExports}}" \
    --apply-immediately

{{end}}echo "RDS CloudWatch logging setup complete!"
`

const elbLoggingTemplate = `#!/bin/bash
# ELB Access Logging Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up load balancer access logging for PCI DSS compliance..."

LOG_BUCKET="{{.AccessLogBucket}}"

{{range .LoadBalancers}}echo "Enabling access logging for load balancer: {{.}}"
LB_ARN=$(aws elbv2 describe-load-balancers --names "{{.}}" --query 'LoadBalancers[0].LoadBalancerArn' --output text)
aws elbv2 modify-load-balancer-attributes \
    --load-balancer-arn "$LB_ARN" \
    --attributes Key=access_logs.s3.enabled,Value=true Key=access_logs.s3.bucket,Value="$LOG_BUCKET" Key=access_logs.s3.prefix,Value="elb/{{.}}"

{{end}}echo "Load balancer access logging setup complete!"
echo "Log bucket: $LOG_BUCKET"
`

const iamMonitoringTemplate = `#!/bin/bash
# IAM Monitoring Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up IAM monitoring for PCI DSS compliance..."

# Enable credential reports
echo "Enabling IAM credential reports..."
aws iam generate-credential-report

# Create CloudWatch dashboard for IAM monitoring
DASHBOARD_NAME="IAM-Monitoring-Dashboard"
DASHBOARD_BODY='{
    "widgets": [
        {
            "type": "metric",
            "x": 0,
            "y": 0,
            "width": 12,
            "height": 6,
            "properties": {
                "metrics": [
                    ["AWS/IAM", "AccessDenied", "Service", "IAM"],
                    [".", "AccessKeyUsage", ".", "."],
                    [".", "CredentialUsage", ".", "."]
                ],
                "view": "timeSeries",
                "stacked": false,
                "region": "{{.Region}}",
                "title": "IAM Access Metrics"
            }
        }
    ]
}'

aws cloudwatch put-dashboard \
    --dashboard-name "$DASHBOARD_NAME" \
    --dashboard-body "$DASHBOARD_BODY"

echo "IAM monitoring setup complete!"
echo "Dashboard created: $DASHBOARD_NAME"
`

const monitoringAlertsTemplate = `#!/bin/bash
# Monitoring and Alerting Setup Script
# Generated on {{.Timestamp}}
# PCI DSS Requirement: {{.PCIReference}}

set -e

echo "Setting up monitoring and alerting for PCI DSS compliance..."

# Create SNS topic for alerts
TOPIC_NAME="PCI-Compliance-Alerts"
TOPIC_ARN=$(aws sns create-topic --name "$TOPIC_NAME" --query 'TopicArn' --output text)

echo "Created SNS topic: $TOPIC_ARN"

{{range .Alerts}}echo "Creating alarm: {{.Name}}"
aws cloudwatch put-metric-alarm \
    --alarm-name "{{.Name}}" \
    --alarm-description "{{.Description}}" \
    --metric-name "{{.MetricName}}" \
    --namespace "{{.Namespace}}" \
    --statistic "{{.Statistic}}" \
    --period {{.Period}} \
    --threshold {{.Threshold}} \
    --comparison-operator "{{.ComparisonOperator}}" \
    --evaluation-periods {{.EvaluationPeriods}} \
    --alarm-actions "$TOPIC_ARN" \
    --region {{$.Region}}

{{end}}echo "Monitoring and alerting setup complete!"
echo "SNS Topic: $TOPIC_ARN"
`

const costOptimizationTemplate = `#!/bin/bash
# Cost Optimization Setup Script
# Generated on {{.Timestamp}}

set -e

echo "Setting up cost optimization for log management..."

# Create budget for log costs
BUDGET_NAME="Log-Management-Budget"
BUDGET_CONFIG='{
    "BudgetName": "'$BUDGET_NAME'",
    "BudgetLimit": {
        "Amount": "{{.BudgetAmount}}",
        "Unit": "USD"
    },
    "TimeUnit": "MONTHLY",
    "BudgetType": "COST",
    "CostFilters": {
        "Service": ["Amazon S3", "Amazon CloudWatch", "AWS CloudTrail"]
    },
    "NotificationsWithSubscribers": [
        {
            "Notification": {
                "ComparisonOperator": "GREATER_THAN",
                "NotificationType": "ACTUAL",
                "Threshold": 80,
                "ThresholdType": "PERCENTAGE"
            },
            "Subscribers": [
                {
                    "Address": "{{.AlertEmail}}",
                    "SubscriptionType": "EMAIL"
                }
            ]
        }
    ]
}'

aws budgets create-budget \
    --account-id {{.AccountID}} \
    --budget "$BUDGET_CONFIG"

echo "Cost optimization setup complete!"
echo "Budget created: $BUDGET_NAME"
`

const masterTemplate = `#!/bin/bash
# Master Remediation Script
# Generated on {{.Timestamp}}
# PCI DSS Log Management Compliance

set -e

echo "Starting PCI DSS Log Management Remediation..."
echo "=============================================="

# Check AWS CLI is installed
if ! command -v aws &> /dev/null; then
    echo "Error: AWS CLI is not installed. Please install it first."
    exit 1
fi

# Check AWS credentials
if ! aws sts get-caller-identity &> /dev/null; then
    echo "Error: AWS credentials not configured. Please run 'aws configure' first."
    exit 1
fi
{{if .NeedsCloudTrail}}
echo "Setting up CloudTrail..."
./setup_cloudtrail.sh
{{end}}{{if .NeedsS3Logging}}
echo "Setting up S3 access logging..."
./setup_s3_logging.sh
{{end}}{{if .NeedsRetention}}
echo "Setting up CloudWatch retention policies..."
./setup_cloudwatch_retention.sh
{{end}}{{if .NeedsRDSLogging}}
echo "Setting up RDS CloudWatch logging..."
./setup_rds_logging.sh
{{end}}{{if .NeedsELBLogging}}
echo "Setting up load balancer access logging..."
./setup_elb_logging.sh
{{end}}
echo "Setting up IAM monitoring..."
./setup_iam_monitoring.sh

echo "Setting up monitoring and alerting..."
./setup_monitoring_alerts.sh

echo "Setting up cost optimization..."
./setup_cost_optimization.sh

echo "=============================================="
echo "PCI DSS Log Management Remediation Complete!"
echo "=============================================="
echo ""
echo "Next steps:"
echo "1. Review the generated configurations"
echo "2. Test the logging and monitoring setup"
echo "3. Update the scripts with your specific values (bucket names, etc.)"
echo "4. Run the scripts in your AWS environment"
echo "5. Document the implementation for compliance"
`

var templates = map[string]*template.Template{
	"cloudtrail":           template.Must(template.New("cloudtrail").Parse(cloudTrailTemplate)),
	"multiregion":          template.Must(template.New("multiregion").Parse(multiRegionTemplate)),
	"s3_logging":           template.Must(template.New("s3_logging").Parse(s3LoggingTemplate)),
	"cloudwatch_retention": template.Must(template.New("cloudwatch_retention").Parse(cloudWatchRetentionTemplate)),
	"rds_logging":          template.Must(template.New("rds_logging").Parse(rdsLoggingTemplate)),
	"elb_logging":          template.Must(template.New("elb_logging").Parse(elbLoggingTemplate)),
	"iam_monitoring":       template.Must(template.New("iam_monitoring").Parse(iamMonitoringTemplate)),
	"monitoring_alerts":    template.Must(template.New("monitoring_alerts").Parse(monitoringAlertsTemplate)),
	"cost_optimization":    template.Must(template.New("cost_optimization").Parse(costOptimizationTemplate)),
	"master":               template.Must(template.New("master").Parse(masterTemplate)),
}

func render(name string, data any) (string, error) {
	tpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown script template %q", name)
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render script template %q: %w", name, err)
	}
	return sb.String(), nil
}
