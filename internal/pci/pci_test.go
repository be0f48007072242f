package pci

import (
	"testing"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
)

func reportWithIssues(issues ...models.Issue) *models.FindingsReport {
	return &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{Issues: issues},
	}
}

// ── scorer ────────────────────────────────────────────────────────────────────

// TestScore_CleanReportIsPerfect verifies a report with zero issues scores 100.
func TestScore_CleanReportIsPerfect(t *testing.T) {
	if got := Score(&models.FindingsReport{}, DefaultScoringPolicy()); got != 100 {
		t.Errorf("Score = %d; want 100", got)
	}
}

// TestScore_SeverityWeights verifies the default weighting against hand
// computed values.
func TestScore_SeverityWeights(t *testing.T) {
	cases := []struct {
		name   string
		issues []models.Issue
		want   int
	}{
		// 3/50 of the baseline: 100 - 6 = 94.
		{"one high", []models.Issue{{Severity: models.SeverityHigh}}, 94},
		// 2 + 1 = 3 weighted.
		{"medium plus low", []models.Issue{
			{Severity: models.SeverityMedium},
			{Severity: models.SeverityLow},
		}, 94},
		// 3 + 3*2 = 9 weighted, 100 - 18 = 82.
		{"mixed", []models.Issue{
			{Severity: models.SeverityHigh},
			{Severity: models.SeverityMedium},
			{Severity: models.SeverityMedium},
			{Severity: models.SeverityMedium},
		}, 82},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(reportWithIssues(tc.issues...), DefaultScoringPolicy()); got != tc.want {
				t.Errorf("Score = %d; want %d", got, tc.want)
			}
		})
	}
}

// TestScore_FloorsAtZero verifies the score never goes negative, however bad
// the account.
func TestScore_FloorsAtZero(t *testing.T) {
	issues := make([]models.Issue, 30)
	for i := range issues {
		issues[i] = models.Issue{Severity: models.SeverityHigh}
	}
	if got := Score(reportWithIssues(issues...), DefaultScoringPolicy()); got != 0 {
		t.Errorf("Score = %d; want 0", got)
	}
}

// TestScore_Monotonic verifies adding an issue never raises the score.
func TestScore_Monotonic(t *testing.T) {
	var issues []models.Issue
	prev := 100
	for i := 0; i < 20; i++ {
		issues = append(issues, models.Issue{Severity: models.SeverityMedium})
		got := Score(reportWithIssues(issues...), DefaultScoringPolicy())
		if got > prev {
			t.Fatalf("score rose from %d to %d after adding issue %d", prev, got, i+1)
		}
		prev = got
	}
}

// TestScore_InvalidPolicyFallsBack verifies a zero baseline uses the stock
// policy instead of dividing by zero.
func TestScore_InvalidPolicyFallsBack(t *testing.T) {
	report := reportWithIssues(models.Issue{Severity: models.SeverityHigh})
	if got := Score(report, ScoringPolicy{}); got != 94 {
		t.Errorf("Score = %d; want 94", got)
	}
}

// ── compliance table ──────────────────────────────────────────────────────────

// TestBuildComplianceTable_VerbatimMatching verifies a range reference marks
// only the range row non-compliant, never its sub-clauses.
func TestBuildComplianceTable_VerbatimMatching(t *testing.T) {
	report := reportWithIssues(
		models.Issue{Severity: models.SeverityHigh, PCIReference: "10.2.1-10.2.7"},
		models.Issue{Severity: models.SeverityMedium, PCIReference: "10.5.2"},
	)

	table := BuildComplianceTable(report)
	if len(table) != len(Requirements()) {
		t.Fatalf("table has %d rows; want %d", len(table), len(Requirements()))
	}

	status := make(map[string]bool, len(table))
	for _, row := range table {
		status[row.ID] = row.Compliant
	}
	if status["10.2.1-10.2.7"] {
		t.Error("range row should be non-compliant")
	}
	if status["10.5.2"] {
		t.Error("10.5.2 should be non-compliant")
	}
	// Sub-clauses of the flagged range stay compliant.
	for _, id := range []string{"10.2.1", "10.2.7", "10.5.1.2", "10.5.3"} {
		if !status[id] {
			t.Errorf("%s should be compliant", id)
		}
	}
}

// TestBuildComplianceTable_CatalogueOrder verifies row order matches the
// catalogue regardless of issue order.
func TestBuildComplianceTable_CatalogueOrder(t *testing.T) {
	table := BuildComplianceTable(reportWithIssues(
		models.Issue{PCIReference: "10.5.3"},
		models.Issue{PCIReference: "10.2.1"},
	))
	for i, req := range Requirements() {
		if table[i].ID != req.ID {
			t.Errorf("table[%d].ID = %q; want %q", i, table[i].ID, req.ID)
		}
	}
}

// TestNonCompliantReferences verifies dedup and first-seen order, including
// references outside the catalogue.
func TestNonCompliantReferences(t *testing.T) {
	report := &models.FindingsReport{
		CloudTrail: models.CloudTrailFinding{Issues: []models.Issue{
			{PCIReference: "10.2.1-10.2.7"},
			{PCIReference: "10.5.2"},
		}},
		Monitoring: &models.MonitoringFinding{Issues: []models.Issue{
			{PCIReference: "10.4.1"},
			{PCIReference: "10.5.2"},
		}},
	}

	got := NonCompliantReferences(report)
	want := []string{"10.2.1-10.2.7", "10.5.2", "10.4.1"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("refs[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

// ── cost estimate ─────────────────────────────────────────────────────────────

// TestEstimateMonthlyCost verifies the per-resource heuristic.
func TestEstimateMonthlyCost(t *testing.T) {
	report := &models.FindingsReport{
		CloudTrail:     models.CloudTrailFinding{Enabled: false},
		S3Logging:      models.S3LoggingFinding{BucketsAnalyzed: 5},
		CloudWatchLogs: models.CloudWatchLogsFinding{LogGroups: 8},
		RDSLogging:     models.RDSLoggingFinding{Instances: 3},
	}
	// 50 + 5 + 5*2 + 8*1 + 3*3 = 82.
	if got := EstimateMonthlyCost(report); got != "$82" {
		t.Errorf("EstimateMonthlyCost = %q; want $82", got)
	}

	report.CloudTrail.Enabled = true
	if got := EstimateMonthlyCost(report); got != "$77" {
		t.Errorf("EstimateMonthlyCost = %q; want $77", got)
	}
}
