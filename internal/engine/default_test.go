package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/providers/aws/common"
)

// ── test doubles ──────────────────────────────────────────────────────────────

// stubProvider returns a fixed profile (or error) from LoadProfile.
type stubProvider struct {
	profile *common.ProfileConfig
	err     error
}

func (s *stubProvider) LoadProfile(_ context.Context, _ string) (*common.ProfileConfig, error) {
	return s.profile, s.err
}

func (s *stubProvider) ProfileNames() ([]string, error) { return nil, nil }

func (s *stubProvider) GetActiveRegions(_ context.Context, _ *common.ProfileConfig) ([]string, error) {
	return []string{"us-east-1"}, nil
}

func (s *stubProvider) ConfigForRegion(cfg *common.ProfileConfig, _ string) aws.Config {
	return cfg.Config
}

// stubCollector returns canned payloads per service.
type stubCollector struct {
	cloudTrail models.CloudTrailData
	s3         models.S3LoggingData
	cwLogs     models.CloudWatchLogsData
	rds        models.RDSLoggingData
	iam        models.IAMMonitoringData
	elb        models.ELBLoggingData
	monitoring models.MonitoringData
	cost       *models.LoggingCostSummary
	costErr    error
	s3Err      error
}

func (s *stubCollector) CollectCloudTrail(_ context.Context, _ *common.ProfileConfig) (*models.CloudTrailData, error) {
	return &s.cloudTrail, nil
}

func (s *stubCollector) CollectS3Logging(_ context.Context, _ *common.ProfileConfig) (*models.S3LoggingData, error) {
	if s.s3Err != nil {
		return nil, s.s3Err
	}
	return &s.s3, nil
}

func (s *stubCollector) CollectCloudWatchLogs(_ context.Context, _ *common.ProfileConfig) (*models.CloudWatchLogsData, error) {
	return &s.cwLogs, nil
}

func (s *stubCollector) CollectRDSLogging(_ context.Context, _ *common.ProfileConfig) (*models.RDSLoggingData, error) {
	return &s.rds, nil
}

func (s *stubCollector) CollectIAMMonitoring(_ context.Context, _ *common.ProfileConfig) (*models.IAMMonitoringData, error) {
	return &s.iam, nil
}

func (s *stubCollector) CollectELBLogging(_ context.Context, _ *common.ProfileConfig) (*models.ELBLoggingData, error) {
	return &s.elb, nil
}

func (s *stubCollector) CollectMonitoring(_ context.Context, _ *common.ProfileConfig) (*models.MonitoringData, error) {
	return &s.monitoring, nil
}

func (s *stubCollector) CollectLoggingCost(_ context.Context, _ *common.ProfileConfig) (*models.LoggingCostSummary, error) {
	return s.cost, s.costErr
}

func testProfile() *common.ProfileConfig {
	return &common.ProfileConfig{
		ProfileName: "test",
		AccountID:   "111122223333",
		Region:      "us-east-1",
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

// TestRunReview_AssemblesReport verifies profile attribution, issue counting,
// and that per-service findings land on the right report fields.
func TestRunReview_AssemblesReport(t *testing.T) {
	collector := &stubCollector{
		s3: models.S3LoggingData{
			Buckets: []models.BucketLoggingStatus{{Name: "unlogged"}},
		},
		iam:        models.IAMMonitoringData{CredentialReportAvailable: true, AccessAnalyzerPresent: true},
		monitoring: models.MonitoringData{AlarmCount: 2},
	}
	eng := NewDefaultReviewEngine(&stubProvider{profile: testProfile()}, collector)

	report, err := eng.RunReview(context.Background(), ReviewOptions{Profile: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.AccountID != "111122223333" || report.Profile != "test" || report.Region != "us-east-1" {
		t.Errorf("attribution = %s/%s/%s", report.AccountID, report.Profile, report.Region)
	}
	// Empty CloudTrail data yields the "no trails" issue; one unlogged bucket
	// adds a second issue.
	if len(report.CloudTrail.Issues) != 1 {
		t.Errorf("CloudTrail issues = %d; want 1", len(report.CloudTrail.Issues))
	}
	if len(report.S3Logging.Issues) != 1 {
		t.Errorf("S3 issues = %d; want 1", len(report.S3Logging.Issues))
	}
	if report.TotalIssues != report.CountIssues() {
		t.Errorf("TotalIssues = %d; CountIssues = %d", report.TotalIssues, report.CountIssues())
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}
	if report.ELBLogging == nil || report.Monitoring == nil {
		t.Error("expected ELB and monitoring findings to be populated")
	}
	if report.Cost != nil {
		t.Error("cost summary present without WithCost")
	}
}

// TestRunReview_ProbeFailureBecomesIssue verifies that a failed probe turns
// into a finding issue instead of aborting the review.
func TestRunReview_ProbeFailureBecomesIssue(t *testing.T) {
	collector := &stubCollector{s3Err: errors.New("AccessDenied")}
	eng := NewDefaultReviewEngine(&stubProvider{profile: testProfile()}, collector)

	report, err := eng.RunReview(context.Background(), ReviewOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.S3Logging.Issues) != 1 {
		t.Fatalf("S3 issues = %d; want 1", len(report.S3Logging.Issues))
	}
	if report.S3Logging.Issues[0].Severity != models.SeverityHigh {
		t.Errorf("probe failure severity = %q; want HIGH", report.S3Logging.Issues[0].Severity)
	}
}

// TestRunReview_ProfileFailureAborts verifies that a credential loading
// failure aborts the run.
func TestRunReview_ProfileFailureAborts(t *testing.T) {
	eng := NewDefaultReviewEngine(&stubProvider{err: errors.New("no credentials")}, &stubCollector{})
	if _, err := eng.RunReview(context.Background(), ReviewOptions{}); err == nil {
		t.Fatal("expected error from profile loading failure; got nil")
	}
}

// TestRunReview_CostOptIn verifies the cost summary is attached only when
// requested, and that a Cost Explorer failure is silently skipped.
func TestRunReview_CostOptIn(t *testing.T) {
	collector := &stubCollector{
		cost: &models.LoggingCostSummary{TotalCostUSD: 19.75},
	}
	eng := NewDefaultReviewEngine(&stubProvider{profile: testProfile()}, collector)

	report, err := eng.RunReview(context.Background(), ReviewOptions{WithCost: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Cost == nil || report.Cost.TotalCostUSD != 19.75 {
		t.Errorf("Cost = %+v; want total 19.75", report.Cost)
	}

	collector.costErr = errors.New("ce not enabled")
	report, err = eng.RunReview(context.Background(), ReviewOptions{WithCost: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Cost != nil {
		t.Error("Cost set despite collection failure; want nil")
	}
}

// TestRunReview_RegionOverride verifies that an explicit region flows into
// the report attribution.
func TestRunReview_RegionOverride(t *testing.T) {
	eng := NewDefaultReviewEngine(&stubProvider{profile: testProfile()}, &stubCollector{})
	report, err := eng.RunReview(context.Background(), ReviewOptions{Region: "eu-west-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Region != "eu-west-1" {
		t.Errorf("Region = %q; want eu-west-1", report.Region)
	}
}
