package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dune_tours/internal/domain"
)

func TestMapActivity_NestedShape(t *testing.T) {
	p := map[string]any{
		"id":         "desert-safari",
		"category":   "Adventure",
		"duration":   3.0,
		"group_size": "2-8",
		"cover":      map[string]any{"url": "https://img/1.jpg"},
		"title":      map[string]any{"en": "Desert Safari", "FR": "Safari", "es": "Safari del desierto"},
		"highlights": map[string]any{"en": []any{"4x4", " ", map[string]any{"text": "Sunset"}}},
		"prices":     map[string]any{"usd": 30.0, "TND": "80", "GBP": 25.0, "EUR": 0.0},
		"sort_order": "4",
	}
	a := mapActivity(p)

	assert.Equal(t, "desert-safari", a.ID)
	assert.Equal(t, "adventure", a.Category)
	assert.Equal(t, "3", a.Duration)
	assert.Equal(t, "https://img/1.jpg", a.Image)
	assert.Equal(t, domain.LocalizedText{"en": "Desert Safari", "fr": "Safari"}, a.Title)
	assert.Equal(t, []string{"4x4", "Sunset"}, a.Highlights["en"])
	assert.Equal(t, domain.PriceRecord{"USD": 30, "TND": 80}, a.Prices)
	assert.Equal(t, 4, a.Position)
}

func TestMapActivity_FlatShape(t *testing.T) {
	p := map[string]any{
		"slug":           "camel-ride",
		"name":           "Camel ride",
		"description_fr": "Balade à dos de chameau",
		"highlights":     []any{"Dunes"},
		"highlights_ar":  []any{"كثبان"},
		"price":          "20,5",
		"price_tnd":      60.0,
		"images":         []any{map[string]any{"src": "a.jpg"}, "b.jpg"},
	}
	a := mapActivity(p)

	assert.Equal(t, "camel-ride", a.ID)
	assert.Equal(t, domain.LocalizedText{"en": "Camel ride"}, a.Title)
	assert.Equal(t, domain.LocalizedText{"fr": "Balade à dos de chameau"}, a.Description)
	assert.Equal(t, domain.Highlights{"en": {"Dunes"}, "ar": {"كثبان"}}, a.Highlights)
	assert.Equal(t, domain.PriceRecord{"USD": 20.5, "TND": 60}, a.Prices)
	assert.Equal(t, "a.jpg", a.Image)
}

func TestMapActivity_Empty(t *testing.T) {
	a := mapActivity(map[string]any{})
	assert.Equal(t, "", a.ID)
	assert.Empty(t, a.Title)
	assert.Empty(t, a.Prices)
	assert.Error(t, a.Validate())
}
