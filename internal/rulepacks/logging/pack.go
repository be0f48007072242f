// Package logging provides the log-management review rule pack.
// New returns every remediation rule in derivation order; callers register
// them into a RuleRegistry via a loop rather than listing each rule
// explicitly.
//
// Adding a new rule:
//  1. Implement the rule in internal/rules/ following the Rule interface.
//  2. Append it to the slice returned by New().
//  3. No other files need to change.
package logging

import "github.com/pankaj-dahiya-devops/pci-log-review/internal/rules"

// New returns all log-management rules in the order their recommendations
// appear in reports: core services first, optional probes last.
func New() []rules.Rule {
	return []rules.Rule{
		rules.CloudTrailEnableRule{},      // HIGH:   no trail delivering logs
		rules.CloudTrailMultiRegionRule{}, // MEDIUM: active trail is single-region
		rules.S3AccessLoggingRule{},       // MEDIUM: buckets without access logging
		rules.CloudWatchRetentionRule{},   // MEDIUM: log groups without retention
		rules.RDSLoggingRule{},            // MEDIUM: instances without log exports
		rules.IAMMonitoringRule{},         // MEDIUM: credential reports / analyzer missing
		rules.ELBAccessLoggingRule{},      // MEDIUM: load balancers without access logs
		rules.MonitoringAlertsRule{},      // MEDIUM: no CloudWatch alarms
	}
}
