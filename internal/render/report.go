// Package render provides presentation-layer output for plr: the persisted
// JSON/YAML report structure, the HTML report, and the console report. It is
// a pure rendering package, no probing, scoring logic, or AWS API calls.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/pci"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/version"
)

// ReportMetadata identifies the run that produced a report.
type ReportMetadata struct {
	GeneratedAt   string `json:"generated_at"`
	ToolVersion   string `json:"tool_version"`
	PCIDSSVersion string `json:"pci_dss_version"`
}

// ReportSummary is the headline block of a persisted report.
type ReportSummary struct {
	TotalIssues          int    `json:"total_issues"`
	TotalRecommendations int    `json:"total_recommendations"`
	ComplianceScore      int    `json:"compliance_score"`
	EstimatedMonthlyCost string `json:"estimated_monthly_cost"`
}

// PCICompliance pairs the static requirement catalogue with the references
// this run found non-compliant.
type PCICompliance struct {
	Requirements             map[string]string `json:"requirements"`
	NonCompliantRequirements []string          `json:"non_compliant_requirements"`
}

// ReportData is the full persisted report: metadata, summary, raw findings,
// derived recommendations, and the compliance rollup. JSON and YAML writers
// emit this structure with identical keys; the HTML writer renders it.
type ReportData struct {
	Metadata        ReportMetadata          `json:"metadata"`
	Summary         ReportSummary           `json:"summary"`
	Findings        *models.FindingsReport  `json:"findings"`
	Recommendations []models.Recommendation `json:"recommendations"`
	PCICompliance   PCICompliance           `json:"pci_compliance"`
}

// BuildReportData assembles the persisted report from a findings report and
// its derived recommendations. generatedAt stamps the metadata block; pass
// time.Now() outside tests.
func BuildReportData(report *models.FindingsReport, recs []models.Recommendation, scoring pci.ScoringPolicy, generatedAt time.Time) ReportData {
	if recs == nil {
		recs = []models.Recommendation{}
	}
	refs := pci.NonCompliantReferences(report)
	if refs == nil {
		refs = []string{}
	}
	return ReportData{
		Metadata: ReportMetadata{
			GeneratedAt:   generatedAt.UTC().Format(time.RFC3339),
			ToolVersion:   version.Version,
			PCIDSSVersion: pci.Version,
		},
		Summary: ReportSummary{
			TotalIssues:          report.CountIssues(),
			TotalRecommendations: len(recs),
			ComplianceScore:      pci.Score(report, scoring),
			EstimatedMonthlyCost: pci.EstimateMonthlyCost(report),
		},
		Findings:        report,
		Recommendations: recs,
		PCICompliance: PCICompliance{
			Requirements:             pci.RequirementMap(),
			NonCompliantRequirements: refs,
		},
	}
}

// WriteJSON writes data to w as indented JSON.
func WriteJSON(w io.Writer, data ReportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

// WriteYAML writes data to w as YAML with the same key names as WriteJSON.
// The structs carry only json tags, so the data is round-tripped through a
// generic document before yaml encoding to reuse them.
func WriteYAML(w io.Writer, data ReportData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML report: %w", err)
	}
	return enc.Close()
}
