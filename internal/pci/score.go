package pci

import "github.com/pankaj-dahiya-devops/pci-log-review/internal/models"

// ScoringPolicy holds the severity weights and baseline used by Score.
// The values are a heuristic, not a certified compliance calculation; they
// are kept as a replaceable table so deployments can tune them via the
// policy config rather than treating the defaults as authoritative.
type ScoringPolicy struct {
	WeightHigh   int `yaml:"weight_high" json:"weight_high"`
	WeightMedium int `yaml:"weight_medium" json:"weight_medium"`
	WeightLow    int `yaml:"weight_low" json:"weight_low"`

	// Baseline is the weighted-issue total that maps to a score of 0.
	Baseline int `yaml:"baseline" json:"baseline"`
}

// DefaultScoringPolicy returns the stock weights (HIGH=3, MEDIUM=2, LOW=1)
// and baseline (50).
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		WeightHigh:   3,
		WeightMedium: 2,
		WeightLow:    1,
		Baseline:     50,
	}
}

// weight returns the policy weight for sev. Unknown severities count as LOW.
func (p ScoringPolicy) weight(sev models.Severity) int {
	switch sev {
	case models.SeverityHigh:
		return p.WeightHigh
	case models.SeverityMedium:
		return p.WeightMedium
	default:
		return p.WeightLow
	}
}

// Score computes the compliance score for report in [0, 100]:
// 100 minus the severity-weighted issue total as a percentage of the policy
// baseline, floored at 0 and truncated to an integer. A report with zero
// issues scores 100; adding issues never increases the score.
func Score(report *models.FindingsReport, policy ScoringPolicy) int {
	if policy.Baseline <= 0 {
		policy = DefaultScoringPolicy()
	}

	weighted := 0
	for _, si := range report.AllIssues() {
		weighted += policy.weight(si.Severity)
	}

	score := 100 - (float64(weighted)/float64(policy.Baseline))*100
	if score < 0 {
		return 0
	}
	return int(score)
}
