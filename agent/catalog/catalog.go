package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultAsset []byte

var ErrSKUNotFound = errors.New("sku not found")

// DiscountTier grants a discount fraction once the ordered quantity reaches
// MinQuantity. Tiers are kept sorted by ascending threshold.
type DiscountTier struct {
	MinQuantity int     `yaml:"min_quantity" json:"min_quantity"`
	Discount    float64 `yaml:"discount" json:"discount"`
}

type Product struct {
	SKU             string         `yaml:"sku" json:"sku"`
	Name            string         `yaml:"name" json:"name"`
	Description     string         `yaml:"description" json:"description"`
	UseCases        []string       `yaml:"use_cases" json:"use_cases"`
	Price           float64        `yaml:"price" json:"price"`
	VolumeDiscounts []DiscountTier `yaml:"volume_discounts" json:"volume_discounts,omitempty"`
}

// MatchesAny reports whether the product serves at least one of the given use
// cases.
func (p Product) MatchesAny(useCases []string) bool {
	for _, want := range useCases {
		for _, have := range p.UseCases {
			if want == have {
				return true
			}
		}
	}
	return false
}

// DiscountFor returns the discount fraction of the highest tier whose
// threshold is satisfied by quantity, or 0 when no tier applies. The quoted
// totals do not apply it; it is exposed for downstream pricing work.
func (p Product) DiscountFor(quantity int) float64 {
	discount := 0.0
	for _, tier := range p.VolumeDiscounts {
		if quantity >= tier.MinQuantity {
			discount = tier.Discount
		}
	}
	return discount
}

type Bundle struct {
	ID          string   `yaml:"id" json:"bundle_id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	SKUs        []string `yaml:"skus" json:"skus"`
}

// Catalog is the read-only product and bundle table. It is loaded once at
// process start and shared by reference; no mutation API is exposed.
type Catalog struct {
	products []Product
	bySKU    map[string]int
	bundles  []Bundle
}

type assetFile struct {
	Products []Product `yaml:"products"`
	Bundles  []Bundle  `yaml:"bundles"`
}

// Load parses and validates the embedded catalog asset.
func Load() (*Catalog, error) {
	return Parse(defaultAsset)
}

func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Catalog from raw YAML, validating product and bundle
// integrity before anything is served.
func Parse(raw []byte) (*Catalog, error) {
	var file assetFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode catalog asset: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, errors.New("catalog asset has no products")
	}

	bySKU := make(map[string]int, len(file.Products))
	for i, p := range file.Products {
		if p.SKU == "" {
			return nil, fmt.Errorf("product at index %d has empty sku", i)
		}
		if _, dup := bySKU[p.SKU]; dup {
			return nil, fmt.Errorf("duplicate sku %s", p.SKU)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s has negative price", p.SKU)
		}
		prevThreshold := 0
		for _, tier := range p.VolumeDiscounts {
			if tier.MinQuantity <= prevThreshold {
				return nil, fmt.Errorf("product %s: discount thresholds must be strictly increasing", p.SKU)
			}
			if tier.Discount < 0 || tier.Discount >= 1 {
				return nil, fmt.Errorf("product %s: discount must be in [0,1)", p.SKU)
			}
			prevThreshold = tier.MinQuantity
		}
		bySKU[p.SKU] = i
	}

	bundleIDs := make(map[string]struct{}, len(file.Bundles))
	for _, b := range file.Bundles {
		if b.ID == "" {
			return nil, errors.New("bundle has empty id")
		}
		if _, dup := bundleIDs[b.ID]; dup {
			return nil, fmt.Errorf("duplicate bundle id %s", b.ID)
		}
		bundleIDs[b.ID] = struct{}{}
		for _, sku := range b.SKUs {
			if _, ok := bySKU[sku]; !ok {
				return nil, fmt.Errorf("bundle %s references unknown sku %s", b.ID, sku)
			}
		}
	}

	return &Catalog{
		products: file.Products,
		bySKU:    bySKU,
		bundles:  file.Bundles,
	}, nil
}

// Lookup returns the product for sku.
func (c *Catalog) Lookup(sku string) (Product, bool) {
	idx, ok := c.bySKU[sku]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// All returns the products in catalog order. The returned slice is a copy;
// callers cannot mutate the table through it.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Bundles returns the use-case bundles in asset order.
func (c *Catalog) Bundles() []Bundle {
	out := make([]Bundle, len(c.bundles))
	copy(out, c.bundles)
	return out
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
