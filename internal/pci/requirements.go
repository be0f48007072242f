// Package pci holds the PCI DSS requirement catalogue, the compliance scorer,
// and the per-run compliance table builder. Requirement ids are referenced as
// string tags; they are not validated against the published standard.
package pci

// Version is the PCI DSS revision the requirement catalogue is written
// against. Reported in generated report metadata.
const Version = "v4.0.1"

// Requirement is one entry of the static PCI DSS requirement catalogue.
type Requirement struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// requirements is the fixed catalogue of logging-related PCI DSS clauses this
// tool evaluates. Order is the presentation order of the compliance table.
// The first entry is a range id; it matches only issues carrying the exact
// range string, not individual sub-clauses.
var requirements = []Requirement{
	{ID: "10.2.1-10.2.7", Description: "Comprehensive audit trail coverage for all required event types"},
	{ID: "10.2.1", Description: "All individual access to cardholder data"},
	{ID: "10.2.2", Description: "All actions taken by any individual with root or administrative privileges"},
	{ID: "10.2.3", Description: "Access to all audit trails"},
	{ID: "10.2.4", Description: "Invalid logical access attempts"},
	{ID: "10.2.5", Description: "Use of identification and authentication mechanisms"},
	{ID: "10.2.6", Description: "Initialization of the audit logs"},
	{ID: "10.2.7", Description: "Creation and deletion of system-level objects"},
	{ID: "10.5.1.2", Description: "Retain audit trail history for at least one year"},
	{ID: "10.5.2", Description: "Protect audit trail files from unauthorized modifications"},
	{ID: "10.5.3", Description: "Promptly back up audit trail files to a centralized log server"},
}

// Requirements returns the static requirement catalogue in presentation order.
// Callers must not modify the returned slice.
func Requirements() []Requirement {
	return requirements
}

// RequirementMap returns the catalogue as an id → description map, the shape
// persisted in JSON/YAML report output.
func RequirementMap() map[string]string {
	m := make(map[string]string, len(requirements))
	for _, r := range requirements {
		m[r.ID] = r.Description
	}
	return m
}
