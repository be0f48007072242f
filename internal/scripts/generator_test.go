package scripts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/policy"
)

func testGenerator() *Generator {
	return NewGenerator(policy.Default().Remediation, "us-east-1", "111122223333")
}

// TestS3LoggingScript_OnePutPerBucket verifies that the script contains
// exactly one put-bucket-logging invocation per bucket, in input order.
func TestS3LoggingScript_OnePutPerBucket(t *testing.T) {
	buckets := []string{"app-data", "audit-archive", "backups"}
	script, err := testGenerator().S3LoggingScript(buckets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Count(script, "put-bucket-logging"); got != len(buckets) {
		t.Errorf("put-bucket-logging count = %d; want %d", got, len(buckets))
	}
	// Buckets must appear in input order.
	last := -1
	for _, b := range buckets {
		idx := strings.Index(script, `--bucket "`+b+`"`)
		if idx < 0 {
			t.Errorf("bucket %q missing from script", b)
			continue
		}
		if idx < last {
			t.Errorf("bucket %q out of order", b)
		}
		last = idx
	}
	if !strings.HasPrefix(script, "#!/bin/bash") {
		t.Error("script missing shebang")
	}
	if !strings.Contains(script, "set -e") {
		t.Error("script missing set -e")
	}
}

// TestCloudTrailScript_UsesPolicyParameters verifies the trail name, bucket,
// and log group come from the remediation config.
func TestCloudTrailScript_UsesPolicyParameters(t *testing.T) {
	cfg := policy.Default().Remediation
	cfg.TrailName = "corp-trail"
	cfg.LogBucket = "corp-logs"
	g := NewGenerator(cfg, "eu-west-1", "111122223333")

	script, err := g.CloudTrailScript()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, `TRAIL_NAME="corp-trail"`) {
		t.Error("trail name not substituted")
	}
	if !strings.Contains(script, `S3_BUCKET="corp-logs"`) {
		t.Error("log bucket not substituted")
	}
	if !strings.Contains(script, "arn:aws:logs:eu-west-1:111122223333:") {
		t.Error("region/account not substituted into log group ARN")
	}
	if !strings.Contains(script, "--is-multi-region-trail") {
		t.Error("multi-region flag missing")
	}
	if !strings.Contains(script, "PCI DSS Requirement: 10.2.1-10.2.7") {
		t.Error("PCI reference header missing")
	}
}

// TestCloudWatchRetentionScript_RetentionDays verifies the configured
// retention is applied to every group.
func TestCloudWatchRetentionScript_RetentionDays(t *testing.T) {
	cfg := policy.Default().Remediation
	cfg.RetentionDays = 400
	g := NewGenerator(cfg, "", "")

	script, err := g.CloudWatchRetentionScript([]string{"/app/api", "/app/worker"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(script, "--retention-in-days 400"); got != 2 {
		t.Errorf("retention flag count = %d; want 2", got)
	}
}

// TestRDSLoggingScript_ExportsFromPolicy verifies the export list comes from
// the remediation config.
func TestRDSLoggingScript_ExportsFromPolicy(t *testing.T) {
	script, err := testGenerator().RDSLoggingScript([]string{"orders-db"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(script, `--enable-cloudwatch-logs-exports "error,general,slow-query"`) {
		t.Error("log exports not substituted")
	}
	if !strings.Contains(script, "--apply-immediately") {
		t.Error("apply-immediately flag missing")
	}
}

// TestMasterScript_ConditionalSections verifies per-service sections appear
// only for present gaps, while the always-on sections are unconditional.
func TestMasterScript_ConditionalSections(t *testing.T) {
	report := &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{Enabled: true},
		S3Logging: models.S3LoggingFinding{
			BucketsWithoutLogging: []string{"b"},
		},
	}

	script, err := testGenerator().MasterScript(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(script, "./setup_cloudtrail.sh") {
		t.Error("CloudTrail section present despite enabled trail")
	}
	if !strings.Contains(script, "./setup_s3_logging.sh") {
		t.Error("S3 section missing despite unlogged buckets")
	}
	if strings.Contains(script, "./setup_rds_logging.sh") {
		t.Error("RDS section present despite no gaps")
	}
	for _, always := range []string{
		"./setup_iam_monitoring.sh",
		"./setup_monitoring_alerts.sh",
		"./setup_cost_optimization.sh",
		"aws sts get-caller-identity",
		"run 'aws configure'",
	} {
		if !strings.Contains(script, always) {
			t.Errorf("master script missing %q", always)
		}
	}
}

// TestWriteAll_FilesAndModes verifies conditional file generation and the
// executable mode on every written script.
func TestWriteAll_FilesAndModes(t *testing.T) {
	dir := t.TempDir()
	report := &models.FindingsReport{
		S3Logging: models.S3LoggingFinding{
			BucketsWithoutLogging: []string{"b1", "b2"},
		},
		CloudWatchLogs: models.CloudWatchLogsFinding{
			LogGroupsWithoutRetention: []string{"/app/api"},
		},
	}

	written, err := testGenerator().WriteAll(report, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"setup_cloudtrail.sh",
		"setup_s3_logging.sh",
		"setup_cloudwatch_retention.sh",
		"setup_iam_monitoring.sh",
		"setup_monitoring_alerts.sh",
		"setup_cost_optimization.sh",
		"run_all_remediation.sh",
	}
	if len(written) != len(want) {
		t.Fatalf("wrote %d scripts; want %d (%v)", len(written), len(want), written)
	}
	for i, name := range want {
		if filepath.Base(written[i]) != name {
			t.Errorf("written[%d] = %s; want %s", i, filepath.Base(written[i]), name)
		}
		info, err := os.Stat(written[i])
		if err != nil {
			t.Fatalf("stat %s: %v", written[i], err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("%s mode = %v; want 0755", name, info.Mode().Perm())
		}
	}

	// RDS had no gaps, so no RDS script.
	if _, err := os.Stat(filepath.Join(dir, "setup_rds_logging.sh")); !os.IsNotExist(err) {
		t.Error("setup_rds_logging.sh written despite no RDS gaps")
	}
}
