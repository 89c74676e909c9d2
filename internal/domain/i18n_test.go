package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dune_tours/internal/domain"
)

func TestResolvePrice_FallbackChain(t *testing.T) {
	cases := []struct {
		name string
		rec  domain.PriceRecord
		cur  domain.Currency
		want float64
		res  domain.Resolution
	}{
		{"exact", domain.PriceRecord{"TND": 80, "USD": 30}, domain.CurTND, 80, domain.Exact},
		{"usd fallback", domain.PriceRecord{"TND": 80, "USD": 30}, domain.CurEUR, 30, domain.ViaDefault},
		{"nil record", nil, domain.CurEUR, 0, domain.ViaZero},
		{"empty record", domain.PriceRecord{}, domain.CurUSD, 0, domain.ViaZero},
		{"no usd", domain.PriceRecord{"TND": 80}, domain.CurEUR, 0, domain.ViaZero},
		{"unknown code", domain.PriceRecord{"USD": 12.5}, domain.Currency("GBP"), 12.5, domain.ViaDefault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, res := tc.rec.Resolve(tc.cur)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.res, res)
			assert.Equal(t, tc.want, domain.ResolvePrice(tc.rec, tc.cur))
		})
	}
}

func TestResolveText_FallsBackToEnglish(t *testing.T) {
	title := domain.LocalizedText{"en": "Desert Safari"}
	assert.Equal(t, "Desert Safari", domain.ResolveText(title, domain.LangDE, ""))

	title["de"] = "Wüstensafari"
	assert.Equal(t, "Wüstensafari", domain.ResolveText(title, domain.LangDE, ""))

	title["fr"] = ""
	s, res := title.Resolve(domain.LangFR, "")
	assert.Equal(t, "Desert Safari", s)
	assert.Equal(t, domain.ViaDefault, res)

	// present values are returned as stored; blanks are stripped on write
	title["fr"] = "   "
	s, res = title.Resolve(domain.LangFR, "")
	assert.Equal(t, "   ", s)
	assert.Equal(t, domain.Exact, res)
}

func TestResolveText_TerminalFallback(t *testing.T) {
	assert.Equal(t, "", domain.ResolveText(nil, domain.LangAR, ""))
	assert.Equal(t, "n/a", domain.ResolveText(domain.LocalizedText{"fr": "Oasis"}, domain.LangDE, "n/a"))
}

func TestResolveHighlights(t *testing.T) {
	h := domain.Highlights{"en": {"Camel ride", "Sunset"}}

	got := domain.ResolveHighlights(h, domain.LangFR)
	assert.Equal(t, []string{"Camel ride", "Sunset"}, got)

	// callers may not alias the stored slice
	got[0] = "changed"
	assert.Equal(t, "Camel ride", h["en"][0])

	empty := domain.ResolveHighlights(nil, domain.LangEN)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestLanguageDirection(t *testing.T) {
	for _, l := range domain.Languages {
		assert.Equal(t, l == domain.LangAR, l.RTL(), string(l))
	}
	assert.Equal(t, "rtl", domain.LangAR.Dir())
	assert.Equal(t, "ltr", domain.Language("xx").Dir())
}
