package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"
)

func sampleFindings() *models.FindingsReport {
	r := &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{
			Enabled: false,
			Issues: []models.Issue{{
				Severity:       models.SeverityHigh,
				Description:    "No CloudTrail trails found",
				PCIReference:   "10.2.1-10.2.7",
				Recommendation: "Enable CloudTrail for comprehensive API activity logging",
			}},
		},
		S3Logging: models.S3LoggingFinding{
			BucketsAnalyzed:       2,
			BucketsWithLogging:    1,
			BucketsWithoutLogging: []string{"app-data"},
			Issues: []models.Issue{{
				Severity:     models.SeverityMedium,
				Description:  "S3 bucket app-data does not have access logging enabled",
				PCIReference: "10.2.1",
			}},
		},
		CloudWatchLogs: models.CloudWatchLogsFinding{LogGroups: 3, LogGroupsWithRetention: 3, Issues: []models.Issue{}},
		RDSLogging:     models.RDSLoggingFinding{Instances: 1, InstancesWithLogging: 1, Issues: []models.Issue{}},
		IAMMonitoring: models.IAMMonitoringFinding{
			CredentialReportEnabled: true,
			AccessAnalyzerEnabled:   true,
			Issues:                  []models.Issue{},
		},
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		AccountID:   "111122223333",
		Region:      "us-east-1",
	}
	r.TotalIssues = r.CountIssues()
	return r
}

func sampleRecommendations() []models.Recommendation {
	return []models.Recommendation{{
		Priority:      models.SeverityHigh,
		Category:      "CloudTrail",
		Title:         "Enable CloudTrail",
		Description:   "Enable CloudTrail for comprehensive API activity logging",
		PCIReference:  "10.2.1-10.2.7",
		Script:        "#!/bin/bash\nset -e\n",
		EstimatedCost: "Low (CloudTrail is free for first 5GB/month)",
	}}
}

// ── report assembly ───────────────────────────────────────────────────────────

// TestBuildReportData_SummaryAndMetadata verifies the derived summary block
// and run metadata.
func TestBuildReportData_SummaryAndMetadata(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	data := BuildReportData(sampleFindings(), sampleRecommendations(), pci.DefaultScoringPolicy(), at)

	if data.Metadata.GeneratedAt != "2025-06-01T12:30:00Z" {
		t.Errorf("GeneratedAt = %q", data.Metadata.GeneratedAt)
	}
	if data.Metadata.PCIDSSVersion != "v4.0.1" {
		t.Errorf("PCIDSSVersion = %q", data.Metadata.PCIDSSVersion)
	}
	if data.Summary.TotalIssues != 2 || data.Summary.TotalRecommendations != 1 {
		t.Errorf("summary counts = %d issues / %d recs", data.Summary.TotalIssues, data.Summary.TotalRecommendations)
	}
	// 1 HIGH + 1 MEDIUM = 5 weighted, 100 - 10 = 90.
	if data.Summary.ComplianceScore != 90 {
		t.Errorf("ComplianceScore = %d; want 90", data.Summary.ComplianceScore)
	}
	// 50 + 5 (no CloudTrail) + 2*2 + 3*1 + 1*3 = 62.
	if data.Summary.EstimatedMonthlyCost != "$62" {
		t.Errorf("EstimatedMonthlyCost = %q; want $62", data.Summary.EstimatedMonthlyCost)
	}
	want := []string{"10.2.1-10.2.7", "10.2.1"}
	if !reflect.DeepEqual(data.PCICompliance.NonCompliantRequirements, want) {
		t.Errorf("NonCompliantRequirements = %v; want %v", data.PCICompliance.NonCompliantRequirements, want)
	}
}

// TestBuildReportData_EmptySlicesNotNull verifies persisted reports never
// contain JSON null where a consumer expects a list.
func TestBuildReportData_EmptySlicesNotNull(t *testing.T) {
	report := sampleFindings()
	report.CloudTrail.Issues = []models.Issue{}
	report.S3Logging.Issues = []models.Issue{}
	data := BuildReportData(report, nil, pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{`"recommendations": null`, `"non_compliant_requirements": null`} {
		if strings.Contains(buf.String(), bad) {
			t.Errorf("output contains %s", bad)
		}
	}
}

// ── JSON / YAML writers ───────────────────────────────────────────────────────

// TestWriteJSON_RoundTrip verifies a persisted report decodes back to an
// equivalent structure, including nested issues and omitted optional probes.
func TestWriteJSON_RoundTrip(t *testing.T) {
	data := BuildReportData(sampleFindings(), sampleRecommendations(), pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteJSON(&buf, data); err != nil {
		t.Fatal(err)
	}

	var decoded ReportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if !reflect.DeepEqual(decoded, data) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, data)
	}
	if strings.Contains(buf.String(), `"elb_logging"`) {
		t.Error("nil optional probe should be omitted from JSON")
	}
}

// TestWriteYAML_SameKeysAsJSON verifies the YAML writer uses the JSON key
// names rather than Go field names.
func TestWriteYAML_SameKeysAsJSON(t *testing.T) {
	data := BuildReportData(sampleFindings(), sampleRecommendations(), pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteYAML(&buf, data); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decoding YAML: %v", err)
	}
	for _, key := range []string{"metadata", "summary", "findings", "recommendations", "pci_compliance"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	summary, ok := doc["summary"].(map[string]any)
	if !ok {
		t.Fatalf("summary is %T", doc["summary"])
	}
	if _, ok := summary["compliance_score"]; !ok {
		t.Error("summary missing compliance_score key")
	}
}

// ── HTML writer ───────────────────────────────────────────────────────────────

// TestWriteHTML_DefaultTemplate verifies the embedded template renders the
// summary, issues, and compliance rows.
func TestWriteHTML_DefaultTemplate(t *testing.T) {
	data := BuildReportData(sampleFindings(), sampleRecommendations(), pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteHTML(&buf, data, "", []string{"out/setup_cloudtrail.sh"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"No CloudTrail trails found",
		"Enable CloudTrail",
		"10.2.1-10.2.7",
		"Non-Compliant",
		"setup_cloudtrail.sh",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

// TestWriteHTML_EscapesContent verifies untrusted resource names cannot
// inject markup into the report.
func TestWriteHTML_EscapesContent(t *testing.T) {
	report := sampleFindings()
	report.S3Logging.Issues[0].Description = `S3 bucket <script>alert(1)</script> does not have access logging enabled`
	data := BuildReportData(report, nil, pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteHTML(&buf, data, "", nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("issue description was not HTML-escaped")
	}
}

// TestWriteHTML_CustomTemplate verifies the --template override and that a
// missing file is an error rather than a silent fallback.
func TestWriteHTML_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.html")
	if err := os.WriteFile(path, []byte("<p>score {{.Summary.ComplianceScore}}</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	data := BuildReportData(sampleFindings(), nil, pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	if err := WriteHTML(&buf, data, path, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "score 90") {
		t.Errorf("custom template output = %q", buf.String())
	}

	if err := WriteHTML(&buf, data, filepath.Join(dir, "missing.html"), nil); err == nil {
		t.Error("expected error for missing template file")
	}
}

// ── console writer ────────────────────────────────────────────────────────────

// TestWriteConsoleReport_Sections verifies every report section appears in
// order for a report with findings.
func TestWriteConsoleReport_Sections(t *testing.T) {
	data := BuildReportData(sampleFindings(), sampleRecommendations(), pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	WriteConsoleReport(&buf, data, ConsoleOptions{})
	out := buf.String()

	sections := []string{
		"AWS LOG MANAGEMENT REVIEW REPORT",
		"EXECUTIVE SUMMARY",
		"FINDINGS SUMMARY",
		"DETAILED ISSUES",
		"RECOMMENDATIONS",
		"PCI DSS COMPLIANCE SUMMARY",
		"COST OPTIMIZATION RECOMMENDATIONS",
		"Report generation complete!",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Errorf("missing section %q", s)
			continue
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}

	if !strings.Contains(out, "CloudTrail: ✗ Not Enabled") {
		t.Error("missing CloudTrail status line")
	}
	if !strings.Contains(out, "S3 Access Logging: 1/2 buckets enabled") {
		t.Error("missing S3 coverage line")
	}
	if !strings.Contains(out, "1. Enable CloudTrail") {
		t.Error("missing numbered recommendation")
	}
}

// TestWriteConsoleReport_CleanAccount verifies the empty states.
func TestWriteConsoleReport_CleanAccount(t *testing.T) {
	report := sampleFindings()
	report.CloudTrail = models.CloudTrailFinding{Enabled: true, MultiRegion: true, LogFileValidation: true, Issues: []models.Issue{}}
	report.S3Logging.Issues = []models.Issue{}
	report.S3Logging.BucketsWithLogging = 2
	report.S3Logging.BucketsWithoutLogging = nil
	report.TotalIssues = report.CountIssues()

	data := BuildReportData(report, nil, pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	WriteConsoleReport(&buf, data, ConsoleOptions{})
	out := buf.String()

	if !strings.Contains(out, "✓ No issues found!") {
		t.Error("missing empty issues state")
	}
	if !strings.Contains(out, "No recommendations") {
		t.Error("missing empty recommendations state")
	}
	if !strings.Contains(out, "Multi-Region: ✓ Yes") {
		t.Error("missing multi-region detail line")
	}
}

// TestWriteConsoleReport_CostSummary verifies the optional cost section.
func TestWriteConsoleReport_CostSummary(t *testing.T) {
	report := sampleFindings()
	report.Cost = &models.LoggingCostSummary{
		PeriodStart:  "2025-05-01",
		PeriodEnd:    "2025-06-01",
		TotalCostUSD: 19.75,
		ServiceBreakdown: []models.ServiceCost{
			{Service: "AWS CloudTrail", CostUSD: 4.25},
			{Service: "AmazonCloudWatch", CostUSD: 15.50},
		},
	}
	data := BuildReportData(report, nil, pci.DefaultScoringPolicy(), time.Now())

	var buf bytes.Buffer
	WriteConsoleReport(&buf, data, ConsoleOptions{})
	out := buf.String()

	if !strings.Contains(out, "LOGGING COST SUMMARY") {
		t.Error("missing cost section")
	}
	if !strings.Contains(out, "Total: $19.75") {
		t.Error("missing cost total")
	}
}
