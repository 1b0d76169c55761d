package recommend

import (
	"fmt"
	"strings"

	contractx "github.com/iquotehq/iquote/agent/contract"
)

// NeedMoreInfoTemplate is returned when no product matched the requirement.
// It is a valid response, not an error.
const NeedMoreInfoTemplate = `We could not match any products to your requirement. To put together the best solution, please share more detail:

- Specific network needs (SD-WAN, switching, wireless, security, ...)
- Number and size of branch locations
- Budget range
- Existing network environment
- Business priorities

Example: "I need SD-WAN for 20 branches with security and wireless coverage, budget 1,000,000"`

// FormatProposal renders the deterministic, human-readable proposal for a
// solution. It is the fallback when no architect model is wired or the model
// call fails.
func FormatProposal(sol contractx.Solution, branchCount int, budget *float64) string {
	if sol.IsEmpty() {
		return NeedMoreInfoTemplate
	}

	var b strings.Builder
	b.WriteString("Network Solution Proposal\n\n")

	b.WriteString("Project analysis\n")
	fmt.Fprintf(&b, "- Branches: %d\n", branchCount)
	fmt.Fprintf(&b, "- Use cases: %s\n", strings.Join(sol.UseCases, ", "))
	if budget != nil {
		fmt.Fprintf(&b, "- Budget: %.2f\n", *budget)
	}

	b.WriteString("\nRecommended products\n")
	for i, p := range sol.Products {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, p.Name, p.SKU)
		fmt.Fprintf(&b, "   Unit price: %.2f\n", p.Price)
		fmt.Fprintf(&b, "   Use cases: %s\n", strings.Join(p.UseCases, ", "))
		fmt.Fprintf(&b, "   %s\n", p.Description)
	}

	perBranch := sol.CostPerBranch()
	total := sol.CostTotal(branchCount)
	b.WriteString("\nCost analysis\n")
	fmt.Fprintf(&b, "- Cost per branch: %.2f\n", perBranch)
	fmt.Fprintf(&b, "- Total cost (%d branches): %.2f\n", branchCount, total)
	if budget != nil {
		if total <= *budget {
			b.WriteString("- Within budget\n")
		} else {
			fmt.Fprintf(&b, "- Over budget by %.2f\n", total-*budget)
		}
	}

	if len(sol.UseCases) > 1 {
		b.WriteString("\nYour requirement spans several use cases; an integrated bundle gives better value, unified management, and consistent security across branches.\n")
	}

	return b.String()
}
