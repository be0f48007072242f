package rules

import (
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/models"
	"github.com/pankaj-dahiya-devops/pci-log-review/internal/scripts"
)

// RuleContext carries the normalized findings and the script generator for
// a single derivation run. It is the sole input to Rule.Evaluate; rules must
// never make network calls or read external state.
type RuleContext struct {
	// Report is the full findings report under evaluation. Never nil.
	Report *models.FindingsReport

	// Scripts renders the remediation script embedded in a recommendation.
	Scripts *scripts.Generator
}

// Rule derives at most one remediation recommendation from a findings
// report. Rules must be stateless and deterministic: the same report always
// yields the same recommendation (or nil when the condition does not hold).
// When a rule covers N offending resources it emits one recommendation whose
// script loops over all N in finding order.
type Rule interface {
	// ID returns the unique, stable identifier for this rule (e.g. "S3_ACCESS_LOGGING").
	ID() string

	// Category returns the service category shown on the recommendation.
	Category() string

	// Evaluate inspects the report and returns one recommendation, or nil
	// when the rule's condition does not hold.
	Evaluate(ctx RuleContext) *models.Recommendation
}

// RuleRegistry manages the set of active rules and drives derivation.
type RuleRegistry interface {
	// Register adds a rule to the registry. Panics on duplicate ID.
	Register(rule Rule)

	// All returns all registered rules in registration order.
	All() []Rule

	// EvaluateAll runs every registered rule against ctx and collects the
	// non-nil recommendations in registration order.
	EvaluateAll(ctx RuleContext) []models.Recommendation
}
