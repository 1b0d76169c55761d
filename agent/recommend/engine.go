// Package recommend maps an extracted Intent onto the catalog: product
// matching, cost roll-up, and use-case bundle selection.
package recommend

import (
	"errors"
	"strings"

	catalogx "github.com/iquotehq/iquote/agent/catalog"
	contractx "github.com/iquotehq/iquote/agent/contract"
)

type Engine struct {
	catalog *catalogx.Catalog
}

func New(catalog *catalogx.Catalog) (*Engine, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	return &Engine{catalog: catalog}, nil
}

var _ contractx.Recommender = (*Engine)(nil)

// Recommend iterates the catalog once, in catalog order, and includes every
// product whose use cases intersect the intent's. An intent with no use cases
// yields an empty solution, never an error.
func (e *Engine) Recommend(intent contractx.Intent) contractx.Solution {
	var products []catalogx.Product
	for _, p := range e.catalog.All() {
		if p.MatchesAny(intent.UseCases) {
			products = append(products, p)
		}
	}

	return contractx.Solution{
		Products: products,
		UseCases: intent.UseCases,
	}
}

// MatchBundles selects bundles whose description contains any mentioned
// use-case name as a substring, in bundle-table order. The substring rule is
// the deployed matching behavior: a use-case name appearing in unrelated
// bundle prose selects that bundle too.
func (e *Engine) MatchBundles(useCases []string) []catalogx.Bundle {
	var matched []catalogx.Bundle
	for _, bundle := range e.catalog.Bundles() {
		for _, useCase := range useCases {
			if strings.Contains(bundle.Description, useCase) {
				matched = append(matched, bundle)
				break
			}
		}
	}
	return matched
}
