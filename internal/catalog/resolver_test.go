package catalog

import (
	"testing"

	"catering-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardProduct() *models.Product {
	return &models.Product{
		ID:          1,
		Name:        "Chicken Adobo",
		Category:    models.CategoryMain,
		SizeScheme:  models.SchemeStandard,
		PriceSmall:  850,
		PriceMedium: 1450,
		PriceLarge:  0,
		PriceParty:  4200,
	}
}

func TestResolvePriceStandard(t *testing.T) {
	p := standardProduct()

	assert.Equal(t, int64(850), ResolvePrice(p, "small"))
	assert.Equal(t, int64(1450), ResolvePrice(p, "medium"))
	assert.Equal(t, int64(4200), ResolvePrice(p, "party"))
	assert.Equal(t, int64(0), ResolvePrice(p, "large"))
	assert.Equal(t, int64(0), ResolvePrice(p, "solo"))
	assert.Equal(t, int64(0), ResolvePrice(p, "jumbo"))
}

func TestUnpricedSizesNeverOffered(t *testing.T) {
	p := standardProduct()

	offered := map[string]bool{}
	for _, s := range AvailableSizes(p) {
		offered[s.ID] = true
		assert.Positive(t, s.Price)
	}

	for _, id := range []string{"solo", "small", "medium", "large", "xl", "party", "jumbo"} {
		if ResolvePrice(p, id) == 0 {
			assert.False(t, offered[id], "size %s has no price but is offered", id)
		} else {
			assert.True(t, offered[id], "size %s has a price but is not offered", id)
		}
	}
}

func TestAvailableSizesOrder(t *testing.T) {
	sizes := AvailableSizes(standardProduct())

	ids := make([]string, 0, len(sizes))
	for _, s := range sizes {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"small", "medium", "party"}, ids)
	assert.Equal(t, "Small Tray", sizes[0].Name)
}

func TestFixedScheme(t *testing.T) {
	p := &models.Product{Name: "Leche Flan", Category: models.CategoryDessert, SizeScheme: models.SchemeFixed, Price: 350}

	assert.Equal(t, int64(350), ResolvePrice(p, FixedSizeID))

	sizes := AvailableSizes(p)
	require.Len(t, sizes, 1)
	assert.Equal(t, FixedSizeID, sizes[0].ID)

	p.Price = 0
	sizes = AvailableSizes(p)
	require.Len(t, sizes, 1, "fixed products always expose their single size")
	assert.Equal(t, int64(0), sizes[0].Price)
}

func TestSchemeDispatchIgnoresForeignSlots(t *testing.T) {
	flan := &models.Product{Name: "Leche Flan", Category: models.CategoryDessert, SizeScheme: models.SchemeFixed, Price: 350, PriceSmall: 900}
	assert.Equal(t, int64(0), ResolvePrice(flan, "small"))
	assert.Equal(t, int64(350), ResolvePrice(flan, FixedSizeID))
	_, ok := LookupSize(flan, "small")
	assert.False(t, ok)

	adobo := standardProduct()
	adobo.Price = 500
	assert.Equal(t, int64(0), ResolvePrice(adobo, FixedSizeID))
	_, ok = LookupSize(adobo, FixedSizeID)
	assert.False(t, ok)
}

func TestChineseLumpiaUsesCustomScheme(t *testing.T) {
	scheme, custom, err := DetectScheme("Chinese Lumpia", models.CategoryAppetizer)
	require.NoError(t, err)
	assert.Equal(t, models.SchemeCustom, scheme)
	assert.Equal(t, "lumpia", custom)

	p := &models.Product{
		Name:         "Chinese Lumpia",
		Category:     models.CategoryAppetizer,
		SizeScheme:   scheme,
		CustomScheme: custom,
		PriceSmall:   300,
		PriceMedium:  700,
		PriceLarge:   1350,
	}

	assert.Equal(t, int64(300), ResolvePrice(p, "10pcs"))
	assert.Equal(t, int64(700), ResolvePrice(p, "25pcs"))
	assert.Equal(t, int64(1350), ResolvePrice(p, "50pcs"))
	assert.Equal(t, int64(0), ResolvePrice(p, "100pcs"))

	// same price column, but the standard tier id is not part of the lumpia scheme
	assert.Equal(t, int64(0), ResolvePrice(p, "small"))

	sizes := AvailableSizes(p)
	require.Len(t, sizes, 3)
	assert.Equal(t, "10 pieces", sizes[0].Name)
}

func TestDetectScheme(t *testing.T) {
	tests := []struct {
		name     string
		category models.Category
		scheme   models.SizeScheme
		custom   string
	}{
		{"Pork Sinigang", models.CategoryMain, models.SchemeStandard, ""},
		{"Buko Pandan", models.CategoryDessert, models.SchemeFixed, ""},
		{"Chef's Lechon Belly", models.CategorySpecial, models.SchemeFixed, ""},
		{"Cassava Bingcava", models.CategoryDessert, models.SchemeCustom, "bingcava"},
		{"Pancit Canton", models.CategoryNoodles, models.SchemeCustom, "pancit"},
		{"Lumpiang Shanghai", models.CategoryAppetizer, models.SchemeCustom, "lumpia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, custom, err := DetectScheme(tt.name, tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.custom, custom)
		})
	}
}

func TestDetectSchemeAmbiguous(t *testing.T) {
	_, _, err := DetectScheme("Lumpia and Pancit Combo", models.CategoryMain)
	assert.ErrorIs(t, err, ErrAmbiguousScheme)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(standardProduct()))

	empty := &models.Product{Name: "Menudo", SizeScheme: models.SchemeStandard}
	assert.ErrorIs(t, Validate(empty), ErrNoPrice)

	negative := standardProduct()
	negative.PriceSolo = -5
	assert.Error(t, Validate(negative))

	unknown := &models.Product{Name: "Mystery", SizeScheme: models.SchemeCustom, CustomScheme: "nope", PriceSmall: 10}
	assert.Error(t, Validate(unknown))

	fixedNoPrice := &models.Product{Name: "Ube Halaya", SizeScheme: models.SchemeFixed}
	assert.NoError(t, Validate(fixedNoPrice))

	assert.Error(t, Validate(&models.Product{SizeScheme: models.SchemeFixed}))

	fixedWithSlots := &models.Product{Name: "Leche Flan", SizeScheme: models.SchemeFixed, Price: 350, PriceSmall: 900}
	assert.Error(t, Validate(fixedWithSlots))

	standardWithPrice := standardProduct()
	standardWithPrice.Price = 500
	assert.Error(t, Validate(standardWithPrice))
}

func TestLookupSize(t *testing.T) {
	p := standardProduct()

	s, ok := LookupSize(p, "medium")
	require.True(t, ok)
	assert.Equal(t, "Good for 6-8", s.Serving)

	_, ok = LookupSize(p, "large")
	assert.False(t, ok)
}
