package engine

import (
	"fmt"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

// Normalizers convert raw probe payloads into per-service findings. They are
// pure functions: the same payload always yields the same finding. A probe
// error collapses into exactly one synthetic HIGH issue carrying the
// service-level PCI reference; no structured error survives normalization,
// so a failed probe never aborts the review.

// NormalizeCloudTrail converts raw trail data into a CloudTrailFinding.
// Enabled is true when at least one trail is delivering logs; S3Bucket is the
// destination of the first such trail. A logging trail without log file
// validation gets a MEDIUM issue; a trail that exists but is not logging gets
// a HIGH issue.
func NormalizeCloudTrail(data *models.CloudTrailData, err error) models.CloudTrailFinding {
	finding := models.CloudTrailFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing CloudTrail: %v", err),
			PCIReference:   "10.2.1-10.2.7",
			Recommendation: "Check CloudTrail permissions and configuration",
		})
		return finding
	}

	if len(data.Trails) == 0 {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    "No CloudTrail trails found",
			PCIReference:   "10.2.1-10.2.7",
			Recommendation: "Enable CloudTrail for API activity logging",
		})
		return finding
	}

	for _, trail := range data.Trails {
		if !trail.IsLogging {
			finding.Issues = append(finding.Issues, models.Issue{
				Severity:       models.SeverityHigh,
				Description:    fmt.Sprintf("CloudTrail %s is not logging", trail.Name),
				PCIReference:   "10.2.1-10.2.7",
				Recommendation: "Enable logging for CloudTrail",
			})
			continue
		}

		finding.Enabled = true
		if finding.S3Bucket == "" {
			finding.S3Bucket = trail.S3BucketName
		}
		if trail.IsMultiRegion {
			finding.MultiRegion = true
		}
		if trail.LogFileValidation {
			finding.LogFileValidation = true
		} else {
			finding.Issues = append(finding.Issues, models.Issue{
				Severity:       models.SeverityMedium,
				Description:    fmt.Sprintf("Log file validation not enabled for trail %s", trail.Name),
				PCIReference:   "10.5.2",
				Recommendation: "Enable log file validation for integrity checking",
			})
		}
	}
	return finding
}

// NormalizeS3Logging converts raw bucket data into an S3LoggingFinding.
// Each unlogged bucket yields one MEDIUM issue; BucketsWithoutLogging
// preserves the ListBuckets order for the remediation deriver.
func NormalizeS3Logging(data *models.S3LoggingData, err error) models.S3LoggingFinding {
	finding := models.S3LoggingFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing S3 logging: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check S3 permissions and configuration",
		})
		return finding
	}

	for _, bucket := range data.Buckets {
		finding.BucketsAnalyzed++
		if bucket.LoggingEnabled {
			finding.BucketsWithLogging++
			continue
		}
		finding.BucketsWithoutLogging = append(finding.BucketsWithoutLogging, bucket.Name)
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("S3 bucket %s does not have access logging enabled", bucket.Name),
			PCIReference:   "10.2.1",
			Recommendation: fmt.Sprintf("Enable access logging for bucket %s", bucket.Name),
		})
	}
	return finding
}

// NormalizeCloudWatchLogs converts raw log-group data into a
// CloudWatchLogsFinding. Each group without a retention policy yields one
// MEDIUM issue.
func NormalizeCloudWatchLogs(data *models.CloudWatchLogsData, err error) models.CloudWatchLogsFinding {
	finding := models.CloudWatchLogsFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing CloudWatch Logs: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check CloudWatch Logs permissions and configuration",
		})
		return finding
	}

	for _, group := range data.LogGroups {
		finding.LogGroups++
		if group.HasRetention {
			finding.LogGroupsWithRetention++
			continue
		}
		finding.LogGroupsWithoutRetention = append(finding.LogGroupsWithoutRetention, group.Name)
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("CloudWatch Log Group %s has no retention policy", group.Name),
			PCIReference:   "10.5.1.2",
			Recommendation: fmt.Sprintf("Set retention policy for log group %s", group.Name),
		})
	}
	return finding
}

// NormalizeRDSLogging converts raw instance data into an RDSLoggingFinding.
// An instance with no CloudWatch log exports yields one MEDIUM issue.
func NormalizeRDSLogging(data *models.RDSLoggingData, err error) models.RDSLoggingFinding {
	finding := models.RDSLoggingFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing RDS logging: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check RDS permissions and configuration",
		})
		return finding
	}

	for _, instance := range data.Instances {
		finding.Instances++
		if len(instance.EnabledExports) > 0 {
			finding.InstancesWithLogging++
			continue
		}
		finding.InstancesWithoutLogging = append(finding.InstancesWithoutLogging, instance.Identifier)
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("RDS instance %s does not have CloudWatch logging enabled", instance.Identifier),
			PCIReference:   "10.2.1",
			Recommendation: fmt.Sprintf("Enable CloudWatch logging for RDS instance %s", instance.Identifier),
		})
	}
	return finding
}

// NormalizeIAMMonitoring converts raw IAM monitoring data into an
// IAMMonitoringFinding. Each unavailable capability yields one MEDIUM issue.
func NormalizeIAMMonitoring(data *models.IAMMonitoringData, err error) models.IAMMonitoringFinding {
	finding := models.IAMMonitoringFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing IAM logging: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check IAM permissions and configuration",
		})
		return finding
	}

	if data.CredentialReportAvailable {
		finding.CredentialReportEnabled = true
	} else {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    "IAM credential reports not enabled",
			PCIReference:   "10.2.1",
			Recommendation: "Enable IAM credential reports for access monitoring",
		})
	}

	if data.AccessAnalyzerPresent {
		finding.AccessAnalyzerEnabled = true
	} else {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    "IAM Access Analyzer not enabled",
			PCIReference:   "10.2.1",
			Recommendation: "Enable IAM Access Analyzer for policy analysis",
		})
	}
	return finding
}

// NormalizeELBLogging converts raw load-balancer data into an
// ELBLoggingFinding. Each load balancer without access logs yields one
// MEDIUM issue.
func NormalizeELBLogging(data *models.ELBLoggingData, err error) *models.ELBLoggingFinding {
	finding := &models.ELBLoggingFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing ELB logging: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check ELB permissions and configuration",
		})
		return finding
	}

	for _, lb := range data.LoadBalancers {
		finding.LoadBalancers++
		if lb.AccessLogsEnabled {
			finding.LoadBalancersWithLogging++
			continue
		}
		finding.LoadBalancersWithoutLogging = append(finding.LoadBalancersWithoutLogging, lb.Name)
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    fmt.Sprintf("Load balancer %s does not have access logging enabled", lb.Name),
			PCIReference:   "10.2.1",
			Recommendation: fmt.Sprintf("Enable access logging for load balancer %s", lb.Name),
		})
	}
	return finding
}

// NormalizeMonitoring converts raw alarm data into a MonitoringFinding.
// An account with zero CloudWatch alarms yields one MEDIUM issue.
func NormalizeMonitoring(data *models.MonitoringData, err error) *models.MonitoringFinding {
	finding := &models.MonitoringFinding{Issues: []models.Issue{}}

	if err != nil {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityHigh,
			Description:    fmt.Sprintf("Error analyzing CloudWatch alarms: %v", err),
			PCIReference:   "10.2.1",
			Recommendation: "Check CloudWatch permissions and configuration",
		})
		return finding
	}

	finding.AlarmsConfigured = data.AlarmCount
	if data.AlarmCount == 0 {
		finding.Issues = append(finding.Issues, models.Issue{
			Severity:       models.SeverityMedium,
			Description:    "No CloudWatch alarms configured",
			PCIReference:   "10.4.1",
			Recommendation: "Create CloudWatch alarms for security and logging events",
		})
	}
	return finding
}
