package models

import "time"

// Severity represents the impact level of an issue.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Issue is a single non-compliant observation about one AWS service's logging
// configuration. It is the atomic output unit of the finding normalizer and
// is immutable once created.
type Issue struct {
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	PCIReference   string   `json:"pci_reference"`
	Recommendation string   `json:"recommendation"`
}

// CloudTrailFinding holds the normalized CloudTrail posture for the account.
// Enabled is true when at least one trail is actively logging. S3Bucket is
// the destination bucket of the first logging trail found.
type CloudTrailFinding struct {
	Enabled           bool    `json:"enabled"`
	MultiRegion       bool    `json:"multi_region"`
	LogFileValidation bool    `json:"log_file_validation"`
	S3Bucket          string  `json:"s3_bucket,omitempty"`
	Issues            []Issue `json:"issues"`
}

// S3LoggingFinding holds per-bucket access-logging coverage.
// BucketsWithoutLogging preserves the ListBuckets order; the remediation
// deriver loops over it to build one put-bucket-logging call per bucket.
type S3LoggingFinding struct {
	BucketsAnalyzed       int      `json:"buckets_analyzed"`
	BucketsWithLogging    int      `json:"buckets_with_logging"`
	BucketsWithoutLogging []string `json:"buckets_without_logging"`
	Issues                []Issue  `json:"issues"`
}

// CloudWatchLogsFinding holds log-group retention coverage.
type CloudWatchLogsFinding struct {
	LogGroups                 int      `json:"log_groups"`
	LogGroupsWithRetention    int      `json:"log_groups_with_retention"`
	LogGroupsWithoutRetention []string `json:"log_groups_without_retention"`
	Issues                    []Issue  `json:"issues"`
}

// RDSLoggingFinding holds per-instance CloudWatch log-export coverage.
type RDSLoggingFinding struct {
	Instances               int      `json:"instances"`
	InstancesWithLogging    int      `json:"instances_with_logging"`
	InstancesWithoutLogging []string `json:"instances_without_logging"`
	Issues                  []Issue  `json:"issues"`
}

// IAMMonitoringFinding holds the IAM access-monitoring posture:
// whether credential reports can be generated and whether at least one
// IAM Access Analyzer exists.
type IAMMonitoringFinding struct {
	CredentialReportEnabled bool    `json:"credential_reports_enabled"`
	AccessAnalyzerEnabled   bool    `json:"access_analyzer_enabled"`
	Issues                  []Issue `json:"issues"`
}

// ELBLoggingFinding holds load-balancer access-logging coverage.
// Collected only when the ELB probe runs; nil in FindingsReport otherwise.
type ELBLoggingFinding struct {
	LoadBalancers               int      `json:"load_balancers"`
	LoadBalancersWithLogging    int      `json:"load_balancers_with_logging"`
	LoadBalancersWithoutLogging []string `json:"load_balancers_without_logging"`
	Issues                      []Issue  `json:"issues"`
}

// MonitoringFinding holds CloudWatch alarm coverage for the account.
// Collected only when the monitoring probe runs; nil otherwise.
type MonitoringFinding struct {
	AlarmsConfigured int     `json:"alarms_configured"`
	Issues           []Issue `json:"issues"`
}

// FindingsReport is the full output of one analysis run: one normalized
// finding per probed service plus run attribution. It is owned by a single
// run and never mutated after normalization.
//
// ELBLogging, Monitoring, and Cost are optional probes; they are nil when the
// corresponding collection did not run, and downstream consumers must treat
// nil as "not probed" rather than "compliant".
type FindingsReport struct {
	CloudTrail     CloudTrailFinding     `json:"cloudtrail"`
	S3Logging      S3LoggingFinding      `json:"s3_logging"`
	CloudWatchLogs CloudWatchLogsFinding `json:"cloudwatch_logs"`
	RDSLogging     RDSLoggingFinding     `json:"rds_logging"`
	IAMMonitoring  IAMMonitoringFinding  `json:"iam_logging"`

	ELBLogging *ELBLoggingFinding `json:"elb_logging,omitempty"`
	Monitoring *MonitoringFinding `json:"monitoring,omitempty"`

	Cost *LoggingCostSummary `json:"cost_summary,omitempty"`

	GeneratedAt time.Time `json:"timestamp"`
	TotalIssues int       `json:"total_issues"`

	AccountID string `json:"account_id,omitempty"`
	Profile   string `json:"profile,omitempty"`
	Region    string `json:"region,omitempty"`
}

// ServiceIssue pairs an Issue with the service it was observed on.
// Used by renderers and the compliance table builder.
type ServiceIssue struct {
	Service string `json:"service"`
	Issue
}

// AllIssues returns every issue across all probed services in fixed service
// order (CloudTrail, S3, CloudWatch Logs, RDS, IAM, then optional probes),
// preserving per-service issue order.
func (r *FindingsReport) AllIssues() []ServiceIssue {
	var all []ServiceIssue
	appendIssues := func(service string, issues []Issue) {
		for _, iss := range issues {
			all = append(all, ServiceIssue{Service: service, Issue: iss})
		}
	}
	appendIssues("CLOUDTRAIL", r.CloudTrail.Issues)
	appendIssues("S3 LOGGING", r.S3Logging.Issues)
	appendIssues("CLOUDWATCH LOGS", r.CloudWatchLogs.Issues)
	appendIssues("RDS LOGGING", r.RDSLogging.Issues)
	appendIssues("IAM LOGGING", r.IAMMonitoring.Issues)
	if r.ELBLogging != nil {
		appendIssues("ELB LOGGING", r.ELBLogging.Issues)
	}
	if r.Monitoring != nil {
		appendIssues("MONITORING", r.Monitoring.Issues)
	}
	return all
}

// CountIssues returns the total issue count across all probed services.
// FindingsReport.TotalIssues is stamped with this value at assembly time; the
// method exists so consumers of deserialized reports can recompute it.
func (r *FindingsReport) CountIssues() int {
	return len(r.AllIssues())
}

// Recommendation is a prioritized remediation action paired with a generated
// shell script. Recommendations are derived from a FindingsReport and are
// regenerated on each run; they are never independently stored as state.
type Recommendation struct {
	Priority      Severity `json:"priority"`
	Category      string   `json:"category"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	PCIReference  string   `json:"pci_reference"`
	Script        string   `json:"script"`
	EstimatedCost string   `json:"estimated_cost"`
}
