package pci

import "github.com/pankaj-dahiya-devops/pci-log-review/internal/models"

// RequirementStatus is one row of the per-run compliance table.
type RequirementStatus struct {
	Requirement
	Compliant bool `json:"compliant"`
}

// BuildComplianceTable annotates the static requirement catalogue with the
// per-run compliance status: a requirement is Non-Compliant iff its id
// appears verbatim as some issue's pci_reference. Range ids such as
// "10.2.1-10.2.7" match only issues carrying that exact range string, not
// individual sub-clauses. Row order equals catalogue order.
func BuildComplianceTable(report *models.FindingsReport) []RequirementStatus {
	referenced := make(map[string]bool)
	for _, si := range report.AllIssues() {
		referenced[si.PCIReference] = true
	}

	table := make([]RequirementStatus, 0, len(requirements))
	for _, req := range requirements {
		table = append(table, RequirementStatus{
			Requirement: req,
			Compliant:   !referenced[req.ID],
		})
	}
	return table
}

// NonCompliantReferences returns the deduplicated list of pci_reference tags
// carried by the report's issues, in first-seen order. This is the
// "non_compliant_requirements" list persisted in JSON/YAML reports; unlike
// the compliance table it includes range tags and references outside the
// catalogue.
func NonCompliantReferences(report *models.FindingsReport) []string {
	seen := make(map[string]bool)
	var refs []string
	for _, si := range report.AllIssues() {
		if si.PCIReference == "" || seen[si.PCIReference] {
			continue
		}
		seen[si.PCIReference] = true
		refs = append(refs, si.PCIReference)
	}
	return refs
}
