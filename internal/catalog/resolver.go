// Package catalog resolves unit prices and offerable sizes for catalog products.
//
// A product carries six shared price slots. Its stored size scheme decides how
// size identifiers map onto those slots: the standard six tiers, a single fixed
// price, or one of the named custom tier tables. A resolved price of 0 always
// means the size is not offered.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"catering-service/internal/models"
)

var (
	// ErrAmbiguousScheme is returned when a product name matches more than one custom scheme
	ErrAmbiguousScheme = errors.New("product name matches more than one custom size scheme")
	// ErrNoPrice is returned when a tiered product has no positive price
	ErrNoPrice = errors.New("product has no positive price for any size")
)

// Size describes one offerable size of a product
type Size struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Serving string `json:"serving"`
	Price   int64  `json:"price"`
}

// ResolvePrice returns the unit price of product p at sizeID, or 0 when the size is unavailable
func ResolvePrice(p *models.Product, sizeID string) int64 {
	if p.SizeScheme == models.SchemeFixed {
		if sizeID == FixedSizeID {
			return p.Price
		}
		return 0
	}
	for _, t := range tiersFor(p) {
		if t.id == sizeID {
			return slotPrice(p, t.slot)
		}
	}
	return 0
}

// AvailableSizes lists the sizes of p in display order, keeping only positive prices.
// Fixed-price products always report their single size.
func AvailableSizes(p *models.Product) []Size {
	if p.SizeScheme == models.SchemeFixed {
		return []Size{{ID: FixedSizeID, Name: "Regular", Serving: "", Price: p.Price}}
	}

	tiers := tiersFor(p)
	sizes := make([]Size, 0, len(tiers))
	for _, t := range tiers {
		price := slotPrice(p, t.slot)
		if price <= 0 {
			continue
		}
		sizes = append(sizes, Size{ID: t.id, Name: t.name, Serving: t.serving, Price: price})
	}
	return sizes
}

// LookupSize returns the descriptor for sizeID if p offers it
func LookupSize(p *models.Product, sizeID string) (Size, bool) {
	for _, s := range AvailableSizes(p) {
		if s.ID == sizeID {
			return s, true
		}
	}
	return Size{}, false
}

// DetectScheme picks the size scheme for a new product from its name and category.
// Name patterns win over category so that e.g. a bingcava dessert keeps its bilao sizes.
func DetectScheme(name string, category models.Category) (models.SizeScheme, string, error) {
	matches := matchSchemes(name)
	switch {
	case len(matches) > 1:
		return "", "", fmt.Errorf("%w: %q matches %s", ErrAmbiguousScheme, name, strings.Join(matches, ", "))
	case len(matches) == 1:
		return models.SchemeCustom, matches[0], nil
	case category.IsFixedPrice():
		return models.SchemeFixed, "", nil
	}
	return models.SchemeStandard, "", nil
}

// Validate checks the stored scheme tag and prices of p
func Validate(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}

	for _, price := range []int64{p.Price, p.PriceSolo, p.PriceSmall, p.PriceMedium, p.PriceLarge, p.PriceXL, p.PriceParty} {
		if price < 0 {
			return fmt.Errorf("product %q has a negative price", p.Name)
		}
	}

	slots := p.PriceSolo + p.PriceSmall + p.PriceMedium + p.PriceLarge + p.PriceXL + p.PriceParty

	switch p.SizeScheme {
	case models.SchemeFixed:
		if slots > 0 {
			return fmt.Errorf("fixed-price product %q must not carry size prices", p.Name)
		}
		return nil
	case models.SchemeCustom:
		if _, ok := findScheme(p.CustomScheme); !ok {
			return fmt.Errorf("unknown custom size scheme %q", p.CustomScheme)
		}
	case models.SchemeStandard:
	default:
		return fmt.Errorf("unknown size scheme %q", p.SizeScheme)
	}

	if p.Price > 0 {
		return fmt.Errorf("sized product %q must not carry a single price", p.Name)
	}
	if len(AvailableSizes(p)) == 0 {
		return fmt.Errorf("%w: %q", ErrNoPrice, p.Name)
	}
	return nil
}
