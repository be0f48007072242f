package models

// ---------------------------------------------------------------------------
// Raw AWS payload models (collected by probes, consumed by the normalizer)
// ---------------------------------------------------------------------------

// TrailStatus represents a single collected CloudTrail trail.
type TrailStatus struct {
	Name              string `json:"name"`
	S3BucketName      string `json:"s3_bucket_name"`
	IsLogging         bool   `json:"is_logging"`
	IsMultiRegion     bool   `json:"is_multi_region"`
	LogFileValidation bool   `json:"log_file_validation"`
	HomeRegion        string `json:"home_region,omitempty"`
}

// CloudTrailData holds all trails owned by the account.
type CloudTrailData struct {
	Trails []TrailStatus `json:"trails"`
}

// BucketLoggingStatus represents one S3 bucket and its access-logging state.
// TargetBucket is empty when server access logging is disabled.
type BucketLoggingStatus struct {
	Name           string `json:"name"`
	LoggingEnabled bool   `json:"logging_enabled"`
	TargetBucket   string `json:"target_bucket,omitempty"`
}

// S3LoggingData holds the logging state of every bucket in the account.
type S3LoggingData struct {
	Buckets []BucketLoggingStatus `json:"buckets"`
}

// LogGroupRetention represents one CloudWatch log group and its retention
// policy. HasRetention is false when no retention policy is set (the group
// keeps data forever, which also means it is never provably retained for the
// PCI-mandated window).
type LogGroupRetention struct {
	Name          string `json:"name"`
	HasRetention  bool   `json:"has_retention"`
	RetentionDays int32  `json:"retention_days,omitempty"`
}

// CloudWatchLogsData holds every log group in the probed region.
type CloudWatchLogsData struct {
	LogGroups []LogGroupRetention `json:"log_groups"`
}

// DBInstanceLogging represents one RDS instance and its CloudWatch log
// exports. An empty EnabledExports slice means no logs are shipped.
type DBInstanceLogging struct {
	Identifier     string   `json:"identifier"`
	Engine         string   `json:"engine,omitempty"`
	EnabledExports []string `json:"enabled_exports,omitempty"`
}

// RDSLoggingData holds every RDS instance in the probed region.
type RDSLoggingData struct {
	Instances []DBInstanceLogging `json:"instances"`
}

// IAMMonitoringData holds the account's IAM monitoring posture as observed by
// the probe. Both fields are data, not errors: a failed GenerateCredentialReport
// or an empty analyzer list means the feature is unavailable, and the probe
// itself still succeeded.
type IAMMonitoringData struct {
	CredentialReportAvailable bool `json:"credential_report_available"`
	AccessAnalyzerPresent     bool `json:"access_analyzer_present"`
}

// LoadBalancerLogging represents one ELBv2 load balancer and whether its
// access logs are delivered to S3 (attribute access_logs.s3.enabled).
type LoadBalancerLogging struct {
	Name              string `json:"name"`
	ARN               string `json:"arn"`
	Type              string `json:"type,omitempty"`
	AccessLogsEnabled bool   `json:"access_logs_enabled"`
}

// ELBLoggingData holds every load balancer in the probed region.
type ELBLoggingData struct {
	LoadBalancers []LoadBalancerLogging `json:"load_balancers"`
}

// MonitoringData holds the account's CloudWatch alarm inventory size.
type MonitoringData struct {
	AlarmCount int `json:"alarm_count"`
}

// ---------------------------------------------------------------------------
// Cost Explorer models
// ---------------------------------------------------------------------------

// ServiceCost holds the aggregated spend for a single AWS service.
type ServiceCost struct {
	Service string  `json:"service"`
	CostUSD float64 `json:"cost_usd"`
}

// LoggingCostSummary holds actual spend on the logging-related services
// (CloudTrail, S3, CloudWatch) for a billing period. Optional: populated only
// when the cost probe runs and Cost Explorer is reachable.
type LoggingCostSummary struct {
	PeriodStart      string        `json:"period_start"`
	PeriodEnd        string        `json:"period_end"`
	TotalCostUSD     float64       `json:"total_cost_usd"`
	ServiceBreakdown []ServiceCost `json:"service_breakdown"`
}
