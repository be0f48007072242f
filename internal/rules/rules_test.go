package rules

import (
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
)

func newTestContext(report *models.FindingsReport) RuleContext {
	return RuleContext{
		Report:  report,
		Scripts: scripts.NewGenerator(policy.Default().Remediation, "us-east-1", "111122223333"),
	}
}

// ── CloudTrail rules ──────────────────────────────────────────────────────────

// TestCloudTrailEnableRule_FiresWhenDisabled verifies the HIGH recommendation
// when no trail is delivering logs.
func TestCloudTrailEnableRule_FiresWhenDisabled(t *testing.T) {
	rec := CloudTrailEnableRule{}.Evaluate(newTestContext(&models.FindingsReport{}))
	if rec == nil {
		t.Fatal("expected recommendation; got nil")
	}
	if rec.Priority != models.SeverityHigh {
		t.Errorf("Priority = %q; want HIGH", rec.Priority)
	}
	if rec.Title != "Enable CloudTrail" || rec.PCIReference != "10.2.1-10.2.7" {
		t.Errorf("rec = %q / %q", rec.Title, rec.PCIReference)
	}
	if !strings.Contains(rec.Script, "aws cloudtrail create-trail") {
		t.Error("script missing create-trail call")
	}
	if !strings.Contains(rec.Script, "start-logging") {
		t.Error("script missing start-logging call")
	}
}

// TestCloudTrailEnableRule_SilentWhenEnabled verifies no recommendation for
// an active trail.
func TestCloudTrailEnableRule_SilentWhenEnabled(t *testing.T) {
	report := &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{Enabled: true},
	}
	if rec := (CloudTrailEnableRule{}).Evaluate(newTestContext(report)); rec != nil {
		t.Errorf("expected nil; got %+v", rec)
	}
}

// TestCloudTrailMultiRegionRule_RequiresEnabledTrail verifies the rule fires
// only for an enabled single-region trail. A fully disabled CloudTrail must
// yield a single CloudTrail recommendation (the enable rule), not two.
func TestCloudTrailMultiRegionRule_RequiresEnabledTrail(t *testing.T) {
	rule := CloudTrailMultiRegionRule{}

	// Disabled: multi-region rule stays silent.
	if rec := rule.Evaluate(newTestContext(&models.FindingsReport{})); rec != nil {
		t.Errorf("fired for disabled CloudTrail; got %+v", rec)
	}

	// Enabled, single-region: fires.
	report := &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{Enabled: true},
	}
	rec := rule.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation for single-region trail; got nil")
	}
	if rec.Priority != models.SeverityMedium || rec.Title != "Enable Multi-Region CloudTrail" {
		t.Errorf("rec = %+v", rec)
	}
	if !strings.Contains(rec.Script, "update-trail") {
		t.Error("script missing update-trail call")
	}

	// Enabled, multi-region: silent.
	report.CloudTrail.MultiRegion = true
	if rec := rule.Evaluate(newTestContext(report)); rec != nil {
		t.Errorf("fired for multi-region trail; got %+v", rec)
	}
}

// ── S3 rule ───────────────────────────────────────────────────────────────────

// TestS3AccessLoggingRule_OneRecommendationPerRun verifies that N unlogged
// buckets produce a single recommendation whose script loops over all N in
// finding order.
func TestS3AccessLoggingRule_OneRecommendationPerRun(t *testing.T) {
	buckets := []string{"app-data", "audit-archive", "backups", "exports"}
	report := &models.FindingsReport{
		S3Logging: models.S3LoggingFinding{BucketsWithoutLogging: buckets},
	}

	rec := S3AccessLoggingRule{}.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation; got nil")
	}
	if rec.Description != "Enable access logging for 4 S3 buckets" {
		t.Errorf("Description = %q", rec.Description)
	}
	if got := strings.Count(rec.Script, "put-bucket-logging"); got != len(buckets) {
		t.Errorf("put-bucket-logging count = %d; want %d", got, len(buckets))
	}
	last := -1
	for _, b := range buckets {
		idx := strings.Index(rec.Script, `--bucket "`+b+`"`)
		if idx < 0 || idx < last {
			t.Errorf("bucket %q missing or out of order", b)
		}
		last = idx
	}
}

// TestS3AccessLoggingRule_SilentWhenAllLogged verifies no recommendation
// when every bucket logs.
func TestS3AccessLoggingRule_SilentWhenAllLogged(t *testing.T) {
	report := &models.FindingsReport{
		S3Logging: models.S3LoggingFinding{BucketsAnalyzed: 3, BucketsWithLogging: 3},
	}
	if rec := (S3AccessLoggingRule{}).Evaluate(newTestContext(report)); rec != nil {
		t.Errorf("expected nil; got %+v", rec)
	}
}

// ── CloudWatch / RDS rules ────────────────────────────────────────────────────

// TestCloudWatchRetentionRule verifies the retention recommendation and its
// per-group script.
func TestCloudWatchRetentionRule(t *testing.T) {
	report := &models.FindingsReport{
		CloudWatchLogs: models.CloudWatchLogsFinding{
			LogGroupsWithoutRetention: []string{"/app/api", "/app/worker"},
		},
	}
	rec := CloudWatchRetentionRule{}.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation; got nil")
	}
	if rec.PCIReference != "10.5.1.2" {
		t.Errorf("PCIReference = %q; want 10.5.1.2", rec.PCIReference)
	}
	if got := strings.Count(rec.Script, "put-retention-policy"); got != 2 {
		t.Errorf("put-retention-policy count = %d; want 2", got)
	}
}

// TestRDSLoggingRule verifies the RDS recommendation and its per-instance script.
func TestRDSLoggingRule(t *testing.T) {
	report := &models.FindingsReport{
		RDSLogging: models.RDSLoggingFinding{
			InstancesWithoutLogging: []string{"orders-db", "staging-db"},
		},
	}
	rec := RDSLoggingRule{}.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation; got nil")
	}
	if rec.Description != "Enable CloudWatch logging for 2 RDS instances" {
		t.Errorf("Description = %q", rec.Description)
	}
	if got := strings.Count(rec.Script, "modify-db-instance"); got != 2 {
		t.Errorf("modify-db-instance count = %d; want 2", got)
	}
}

// ── IAM rule ──────────────────────────────────────────────────────────────────

// TestIAMMonitoringRule_FiresOnAnyGap verifies the recommendation appears
// when either monitoring capability is missing and not when both are present.
func TestIAMMonitoringRule_FiresOnAnyGap(t *testing.T) {
	rule := IAMMonitoringRule{}

	cases := []struct {
		credReport, analyzer bool
		want                 bool
	}{
		{false, false, true},
		{true, false, true},
		{false, true, true},
		{true, true, false},
	}
	for _, tc := range cases {
		report := &models.FindingsReport{
			IAMMonitoring: models.IAMMonitoringFinding{
				CredentialReportEnabled: tc.credReport,
				AccessAnalyzerEnabled:   tc.analyzer,
			},
		}
		rec := rule.Evaluate(newTestContext(report))
		if (rec != nil) != tc.want {
			t.Errorf("credReport=%v analyzer=%v: fired=%v; want %v",
				tc.credReport, tc.analyzer, rec != nil, tc.want)
		}
	}
}

// ── optional probe rules ──────────────────────────────────────────────────────

// TestELBAccessLoggingRule_NilSafe verifies the rule stays silent when the
// ELB probe did not run.
func TestELBAccessLoggingRule_NilSafe(t *testing.T) {
	if rec := (ELBAccessLoggingRule{}).Evaluate(newTestContext(&models.FindingsReport{})); rec != nil {
		t.Errorf("fired without ELB finding; got %+v", rec)
	}

	report := &models.FindingsReport{
		ELBLogging: &models.ELBLoggingFinding{
			LoadBalancersWithoutLogging: []string{"api-alb"},
		},
	}
	rec := ELBAccessLoggingRule{}.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation; got nil")
	}
	if !strings.Contains(rec.Script, "modify-load-balancer-attributes") {
		t.Error("script missing modify-load-balancer-attributes call")
	}
}

// TestMonitoringAlertsRule_NilSafe verifies the rule fires only when the
// monitoring probe ran and found zero alarms.
func TestMonitoringAlertsRule_NilSafe(t *testing.T) {
	rule := MonitoringAlertsRule{}

	if rec := rule.Evaluate(newTestContext(&models.FindingsReport{})); rec != nil {
		t.Errorf("fired without monitoring finding; got %+v", rec)
	}

	report := &models.FindingsReport{
		Monitoring: &models.MonitoringFinding{AlarmsConfigured: 0},
	}
	rec := rule.Evaluate(newTestContext(report))
	if rec == nil {
		t.Fatal("expected recommendation for zero alarms; got nil")
	}
	if rec.PCIReference != "10.4.1" {
		t.Errorf("PCIReference = %q; want 10.4.1", rec.PCIReference)
	}

	report.Monitoring.AlarmsConfigured = 2
	if rec := rule.Evaluate(newTestContext(report)); rec != nil {
		t.Errorf("fired with alarms present; got %+v", rec)
	}
}

// ── registry ──────────────────────────────────────────────────────────────────

// TestRegistry_DuplicateIDPanics verifies duplicate registration is a wiring
// bug caught at startup.
func TestRegistry_DuplicateIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate rule ID")
		}
	}()
	reg := NewDefaultRuleRegistry()
	reg.Register(S3AccessLoggingRule{})
	reg.Register(S3AccessLoggingRule{})
}

// TestRegistry_EvaluationOrder verifies recommendations come back in
// registration order.
func TestRegistry_EvaluationOrder(t *testing.T) {
	reg := NewDefaultRuleRegistry()
	reg.Register(CloudTrailEnableRule{})
	reg.Register(S3AccessLoggingRule{})
	reg.Register(RDSLoggingRule{})

	report := &models.FindingsReport{
		S3Logging:  models.S3LoggingFinding{BucketsWithoutLogging: []string{"b"}},
		RDSLogging: models.RDSLoggingFinding{InstancesWithoutLogging: []string{"db"}},
	}
	recs := reg.EvaluateAll(newTestContext(report))

	wantCategories := []string{"CloudTrail", "S3", "RDS"}
	if len(recs) != len(wantCategories) {
		t.Fatalf("got %d recommendations; want %d", len(recs), len(wantCategories))
	}
	for i, want := range wantCategories {
		if recs[i].Category != want {
			t.Errorf("recs[%d].Category = %q; want %q", i, recs[i].Category, want)
		}
	}
}
