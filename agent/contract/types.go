package contract

import (
	catalogx "github.com/iquotehq/iquote/agent/catalog"
)

// Intent is the structured reading of a free-text requirement.
type Intent struct {
	UseCases    []string `json:"use_cases"`
	BranchCount int      `json:"branch_count"`
	Budget      *float64 `json:"budget,omitempty"`
}

// Solution is the base recommendation: the matched products in catalog order
// plus the use cases that selected them. Cost figures are always derived from
// the products, never stored.
type Solution struct {
	Products []catalogx.Product `json:"products"`
	UseCases []string           `json:"use_cases"`
}

func (s Solution) IsEmpty() bool {
	return len(s.Products) == 0
}

// CostPerBranch sums the full unit prices of the matched products. The volume
// discount schedule is carried in the data but not applied here.
func (s Solution) CostPerBranch() float64 {
	total := 0.0
	for _, p := range s.Products {
		total += p.Price
	}
	return total
}

// CostTotal is the per-branch cost multiplied by the branch count.
func (s Solution) CostTotal(branchCount int) float64 {
	return s.CostPerBranch() * float64(branchCount)
}

// CollaboratorRequest is the payload sent to an external collaborator agent.
type CollaboratorRequest struct {
	Text    string         `json:"text"`
	Context map[string]any `json:"context,omitempty"`
}

// CollaboratorResult carries either enrichment content or the absence marker.
// A collaborator that is unreachable, errors, or times out yields an absent
// result; it never surfaces as an error to the caller.
type CollaboratorResult struct {
	Collaborator string `json:"collaborator"`
	Content      string `json:"content,omitempty"`
	Absent       bool   `json:"absent,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// NarrativeRequest is what the solution architect model receives to write the
// customer-facing narrative.
type NarrativeRequest struct {
	Requirements string   `json:"requirements"`
	Solution     Solution `json:"solution"`
	BranchCount  int      `json:"branch_count"`
	Budget       *float64 `json:"budget,omitempty"`
}

// ProposalResponse is the unified result returned for one inbound request.
type ProposalResponse struct {
	RequestID     string             `json:"request_id"`
	ProposalText  string             `json:"proposal_text"`
	Products      []catalogx.Product `json:"products"`
	CostPerBranch float64            `json:"cost_per_branch"`
	CostTotal     float64            `json:"cost_total"`
	Bundles       []catalogx.Bundle  `json:"bundles"`
	Enhancements  []string           `json:"enhancements"`
}
