// Package policy loads and validates the optional plr.yaml policy file.
// The policy carries the replaceable constants of the compliance scorer and
// the parameters substituted into generated remediation scripts. All values
// have working defaults; the file is optional.
package policy

import "github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"

// Config is the top-level policy configuration.
type Config struct {
	Version     int               `yaml:"version"`
	Scoring     pci.ScoringPolicy `yaml:"scoring"`
	Remediation RemediationConfig `yaml:"remediation"`
}

// RemediationConfig holds the values substituted into generated remediation
// scripts. Bucket and trail names are placeholders the operator is expected
// to review before running a script against a real account.
type RemediationConfig struct {
	// TrailName is the CloudTrail trail created by setup_cloudtrail.sh.
	TrailName string `yaml:"trail_name"`

	// LogBucket receives CloudTrail logs; created when missing.
	LogBucket string `yaml:"log_bucket"`

	// AccessLogBucket receives S3 server access logs.
	AccessLogBucket string `yaml:"access_log_bucket"`

	// AccessLogPrefix is the key prefix for S3 server access logs.
	AccessLogPrefix string `yaml:"access_log_prefix"`

	// CloudWatchLogGroup is the log group CloudTrail delivers to.
	CloudWatchLogGroup string `yaml:"cloudwatch_log_group"`

	// RetentionDays is applied by setup_cloudwatch_retention.sh.
	// PCI DSS 10.5.1.2 requires at least one year.
	RetentionDays int `yaml:"retention_days"`

	// RDSLogExports is the comma-separated export list passed to
	// modify-db-instance.
	RDSLogExports string `yaml:"rds_log_exports"`

	// BudgetAmount is the monthly USD limit for the log-management budget
	// created by setup_cost_optimization.sh.
	BudgetAmount string `yaml:"budget_amount"`

	// AlertEmail subscribes to budget and alarm notifications.
	AlertEmail string `yaml:"alert_email"`
}

// Default returns the stock policy used when no plr.yaml is present.
func Default() *Config {
	return &Config{
		Version: 1,
		Scoring: pci.DefaultScoringPolicy(),
		Remediation: RemediationConfig{
			TrailName:          "pci-compliance-trail",
			LogBucket:          "pci-logs-bucket",
			AccessLogBucket:    "pci-s3-logs-bucket",
			AccessLogPrefix:    "s3-access-logs",
			CloudWatchLogGroup: "/aws/cloudtrail/pci-compliance",
			RetentionDays:      365,
			RDSLogExports:      "error,general,slow-query",
			BudgetAmount:       "100",
			AlertEmail:         "admin@example.com",
		},
	}
}
