package scripts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
)

// alertSpec describes one CloudWatch alarm written by the monitoring script.
type alertSpec struct {
	Name               string
	Description        string
	MetricName         string
	Namespace          string
	Statistic          string
	Period             int
	Threshold          int
	ComparisonOperator string
	EvaluationPeriods  int
}

// defaultAlerts covers the two delivery-pipeline failure modes every PCI
// logging setup should alarm on.
var defaultAlerts = []alertSpec{
	{
		Name:               "CloudTrail-Delivery-Failure",
		Description:        "CloudTrail log delivery failure",
		MetricName:         "DeliveryErrors",
		Namespace:          "AWS/CloudTrail",
		Statistic:          "Sum",
		Period:             300,
		Threshold:          1,
		ComparisonOperator: "GreaterThanThreshold",
		EvaluationPeriods:  1,
	},
	{
		Name:               "S3-Access-Denied",
		Description:        "S3 access denied attempts",
		MetricName:         "4xxError",
		Namespace:          "AWS/S3",
		Statistic:          "Sum",
		Period:             300,
		Threshold:          10,
		ComparisonOperator: "GreaterThanThreshold",
		EvaluationPeriods:  2,
	},
}

// Generator renders remediation shell scripts from review findings and the
// remediation parameters in the policy config. The same rendered content is
// embedded in recommendations and written to disk as setup_*.sh files.
type Generator struct {
	cfg       policy.RemediationConfig
	region    string
	accountID string
	now       func() time.Time
}

// NewGenerator returns a Generator for the given remediation parameters.
// Region and account ID appear in rendered scripts; empty values fall back
// to placeholders the operator is told to replace.
func NewGenerator(cfg policy.RemediationConfig, region, accountID string) *Generator {
	if region == "" {
		region = "us-east-1"
	}
	if accountID == "" {
		accountID = "123456789012"
	}
	return &Generator{cfg: cfg, region: region, accountID: accountID, now: time.Now}
}

func (g *Generator) timestamp() string {
	return g.now().UTC().Format(time.RFC3339)
}

// CloudTrailScript bootstraps the log bucket and log group, creates a
// multi-region trail with log file validation, and starts logging.
func (g *Generator) CloudTrailScript() (string, error) {
	return render("cloudtrail", map[string]any{
		"Timestamp":     g.timestamp(),
		"PCIReference":  "10.2.1-10.2.7",
		"TrailName":     g.cfg.TrailName,
		"LogBucket":     g.cfg.LogBucket,
		"LogGroup":      g.cfg.CloudWatchLogGroup,
		"RetentionDays": g.cfg.RetentionDays,
		"Region":        g.region,
		"AccountID":     g.accountID,
	})
}

// MultiRegionScript converts an existing single-region trail to multi-region.
func (g *Generator) MultiRegionScript() (string, error) {
	return render("multiregion", map[string]any{
		"Timestamp":    g.timestamp(),
		"PCIReference": "10.2.1-10.2.7",
		"TrailName":    g.cfg.TrailName,
	})
}

// S3LoggingScript bootstraps the access-log bucket and emits one
// put-bucket-logging call per unlogged bucket, in input order.
func (g *Generator) S3LoggingScript(buckets []string) (string, error) {
	return render("s3_logging", map[string]any{
		"Timestamp":       g.timestamp(),
		"PCIReference":    "10.2.1",
		"AccessLogBucket": g.cfg.AccessLogBucket,
		"AccessLogPrefix": g.cfg.AccessLogPrefix,
		"Region":          g.region,
		"Buckets":         buckets,
	})
}

// CloudWatchRetentionScript emits one put-retention-policy call per log group.
func (g *Generator) CloudWatchRetentionScript(logGroups []string) (string, error) {
	return render("cloudwatch_retention", map[string]any{
		"Timestamp":     g.timestamp(),
		"PCIReference":  "10.5.1.2",
		"LogGroups":     logGroups,
		"RetentionDays": g.cfg.RetentionDays,
	})
}

// RDSLoggingScript emits one modify-db-instance call per instance.
func (g *Generator) RDSLoggingScript(instances []string) (string, error) {
	return render("rds_logging", map[string]any{
		"Timestamp":    g.timestamp(),
		"PCIReference": "10.2.1",
		"Instances":    instances,
		"LogExports":   g.cfg.RDSLogExports,
	})
}

// ELBLoggingScript resolves each load balancer's ARN by name and enables
// access logging to the access-log bucket.
func (g *Generator) ELBLoggingScript(loadBalancers []string) (string, error) {
	return render("elb_logging", map[string]any{
		"Timestamp":       g.timestamp(),
		"PCIReference":    "10.2.1",
		"AccessLogBucket": g.cfg.AccessLogBucket,
		"LoadBalancers":   loadBalancers,
	})
}

// IAMMonitoringScript enables credential reports and creates the IAM
// monitoring dashboard.
func (g *Generator) IAMMonitoringScript() (string, error) {
	return render("iam_monitoring", map[string]any{
		"Timestamp":    g.timestamp(),
		"PCIReference": "10.2.1",
		"Region":       g.region,
	})
}

// MonitoringAlertsScript creates the alert SNS topic and the default alarms.
func (g *Generator) MonitoringAlertsScript() (string, error) {
	return render("monitoring_alerts", map[string]any{
		"Timestamp":    g.timestamp(),
		"PCIReference": "10.4.1",
		"Region":       g.region,
		"Alerts":       defaultAlerts,
	})
}

// CostOptimizationScript creates a monthly budget covering the logging
// services with an 80% email alert.
func (g *Generator) CostOptimizationScript() (string, error) {
	return render("cost_optimization", map[string]any{
		"Timestamp":    g.timestamp(),
		"BudgetAmount": g.cfg.BudgetAmount,
		"AlertEmail":   g.cfg.AlertEmail,
		"AccountID":    g.accountID,
	})
}

// MasterScript runs all generated remediations, preceded by an aws CLI and
// credential preflight. Per-service sections appear only when the report
// shows the corresponding gap.
func (g *Generator) MasterScript(report *models.FindingsReport) (string, error) {
	return render("master", map[string]any{
		"Timestamp":       g.timestamp(),
		"NeedsCloudTrail": !report.CloudTrail.Enabled,
		"NeedsS3Logging":  len(report.S3Logging.BucketsWithoutLogging) > 0,
		"NeedsRetention":  len(report.CloudWatchLogs.LogGroupsWithoutRetention) > 0,
		"NeedsRDSLogging": len(report.RDSLogging.InstancesWithoutLogging) > 0,
		"NeedsELBLogging": report.ELBLogging != nil && len(report.ELBLogging.LoadBalancersWithoutLogging) > 0,
	})
}

// WriteAll renders and writes every applicable remediation script to
// outputDir, returning the written paths in generation order. Service
// scripts are written only when the report shows the gap; the IAM,
// monitoring, cost, and master scripts are always written.
func (g *Generator) WriteAll(report *models.FindingsReport, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create script directory: %w", err)
	}

	var written []string
	write := func(name string, renderFn func() (string, error)) error {
		content, err := renderFn()
		if err != nil {
			return err
		}
		path := filepath.Join(outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if !report.CloudTrail.Enabled {
		if err := write("setup_cloudtrail.sh", g.CloudTrailScript); err != nil {
			return written, err
		}
	}
	if buckets := report.S3Logging.BucketsWithoutLogging; len(buckets) > 0 {
		if err := write("setup_s3_logging.sh", func() (string, error) {
			return g.S3LoggingScript(buckets)
		}); err != nil {
			return written, err
		}
	}
	if groups := report.CloudWatchLogs.LogGroupsWithoutRetention; len(groups) > 0 {
		if err := write("setup_cloudwatch_retention.sh", func() (string, error) {
			return g.CloudWatchRetentionScript(groups)
		}); err != nil {
			return written, err
		}
	}
	if instances := report.RDSLogging.InstancesWithoutLogging; len(instances) > 0 {
		if err := write("setup_rds_logging.sh", func() (string, error) {
			return g.RDSLoggingScript(instances)
		}); err != nil {
			return written, err
		}
	}

	if report.ELBLogging != nil {
		if lbs := report.ELBLogging.LoadBalancersWithoutLogging; len(lbs) > 0 {
			if err := write("setup_elb_logging.sh", func() (string, error) {
				return g.ELBLoggingScript(lbs)
			}); err != nil {
				return written, err
			}
		}
	}

	if err := write("setup_iam_monitoring.sh", g.IAMMonitoringScript); err != nil {
		return written, err
	}
	if err := write("setup_monitoring_alerts.sh", g.MonitoringAlertsScript); err != nil {
		return written, err
	}
	if err := write("setup_cost_optimization.sh", g.CostOptimizationScript); err != nil {
		return written, err
	}
	if err := write("run_all_remediation.sh", func() (string, error) {
		return g.MasterScript(report)
	}); err != nil {
		return written, err
	}

	return written, nil
}
