package policy

import "fmt"

// Validate checks cfg for values that would produce nonsensical scores or
// broken remediation scripts. It returns all problems found, not just the
// first, so the doctor command can report them together.
func Validate(cfg *Config) []error {
	var errs []error

	if cfg.Scoring.Baseline <= 0 {
		errs = append(errs, fmt.Errorf("scoring.baseline must be positive, got %d", cfg.Scoring.Baseline))
	}
	if cfg.Scoring.WeightHigh <= 0 || cfg.Scoring.WeightMedium <= 0 || cfg.Scoring.WeightLow <= 0 {
		errs = append(errs, fmt.Errorf("scoring weights must be positive"))
	}
	if cfg.Scoring.WeightHigh < cfg.Scoring.WeightMedium || cfg.Scoring.WeightMedium < cfg.Scoring.WeightLow {
		errs = append(errs, fmt.Errorf("scoring weights must be ordered high >= medium >= low"))
	}

	if cfg.Remediation.TrailName == "" {
		errs = append(errs, fmt.Errorf("remediation.trail_name must not be empty"))
	}
	if cfg.Remediation.LogBucket == "" {
		errs = append(errs, fmt.Errorf("remediation.log_bucket must not be empty"))
	}
	if cfg.Remediation.AccessLogBucket == "" {
		errs = append(errs, fmt.Errorf("remediation.access_log_bucket must not be empty"))
	}
	if cfg.Remediation.RetentionDays < 365 {
		errs = append(errs, fmt.Errorf("remediation.retention_days must be at least 365 (PCI DSS 10.5.1.2), got %d", cfg.Remediation.RetentionDays))
	}

	return errs
}
