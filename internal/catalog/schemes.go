package catalog

import (
	"strings"

	"catering-service/internal/models"
)

// FixedSizeID is the only size offered by fixed-price products
const FixedSizeID = "fixed"

// slot names one of the six price columns shared by all tiered schemes
type slot int

const (
	slotSolo slot = iota
	slotSmall
	slotMedium
	slotLarge
	slotXL
	slotParty
)

func slotPrice(p *models.Product, s slot) int64 {
	switch s {
	case slotSolo:
		return p.PriceSolo
	case slotSmall:
		return p.PriceSmall
	case slotMedium:
		return p.PriceMedium
	case slotLarge:
		return p.PriceLarge
	case slotXL:
		return p.PriceXL
	case slotParty:
		return p.PriceParty
	}
	return 0
}

type tier struct {
	id      string
	name    string
	serving string
	slot    slot
}

var standardTiers = []tier{
	{id: "solo", name: "Solo", serving: "Good for 1-2", slot: slotSolo},
	{id: "small", name: "Small Tray", serving: "Good for 3-5", slot: slotSmall},
	{id: "medium", name: "Medium Tray", serving: "Good for 6-8", slot: slotMedium},
	{id: "large", name: "Large Tray", serving: "Good for 10-12", slot: slotLarge},
	{id: "xl", name: "Extra Large Tray", serving: "Good for 15-20", slot: slotXL},
	{id: "party", name: "Party Tray", serving: "Good for 25-30", slot: slotParty},
}

type customScheme struct {
	id       string
	patterns []string
	tiers    []tier
}

var customSchemes = []customScheme{
	{
		id:       "lumpia",
		patterns: []string{"lumpia"},
		tiers: []tier{
			{id: "10pcs", name: "10 pieces", serving: "10 rolls", slot: slotSmall},
			{id: "25pcs", name: "25 pieces", serving: "25 rolls", slot: slotMedium},
			{id: "50pcs", name: "50 pieces", serving: "50 rolls", slot: slotLarge},
			{id: "100pcs", name: "100 pieces", serving: "100 rolls", slot: slotXL},
		},
	},
	{
		id:       "bingcava",
		patterns: []string{"bingcava"},
		tiers: []tier{
			{id: "half", name: "Half Bilao", serving: "Good for 8-10", slot: slotSmall},
			{id: "whole", name: "Whole Bilao", serving: "Good for 16-20", slot: slotMedium},
		},
	},
	{
		id:       "pancit",
		patterns: []string{"pancit", "bihon", "canton"},
		tiers: []tier{
			{id: "small_bilao", name: "Small Bilao", serving: "Good for 5-7", slot: slotSmall},
			{id: "medium_bilao", name: "Medium Bilao", serving: "Good for 10-12", slot: slotMedium},
			{id: "large_bilao", name: "Large Bilao", serving: "Good for 18-20", slot: slotLarge},
		},
	},
}

func findScheme(id string) (*customScheme, bool) {
	for i := range customSchemes {
		if customSchemes[i].id == id {
			return &customSchemes[i], true
		}
	}
	return nil, false
}

// matchSchemes returns every custom scheme whose pattern appears in name
func matchSchemes(name string) []string {
	lower := strings.ToLower(name)
	var ids []string
	for _, cs := range customSchemes {
		for _, pattern := range cs.patterns {
			if strings.Contains(lower, pattern) {
				ids = append(ids, cs.id)
				break
			}
		}
	}
	return ids
}

// tiersFor returns the tier table the product's stored scheme points at
func tiersFor(p *models.Product) []tier {
	switch p.SizeScheme {
	case models.SchemeStandard:
		return standardTiers
	case models.SchemeCustom:
		if cs, ok := findScheme(p.CustomScheme); ok {
			return cs.tiers
		}
	}
	return nil
}

// CustomSchemeIDs lists the recognised custom scheme identifiers
func CustomSchemeIDs() []string {
	ids := make([]string, 0, len(customSchemes))
	for _, cs := range customSchemes {
		ids = append(ids, cs.id)
	}
	return ids
}
