package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
)

func TestLookup_UnknownCodesReturnEnglish(t *testing.T) {
	en := locale.Lookup("en")
	for _, code := range []string{"", "es", "xx", "EN-", "pt-BR", "klingon", "fr-CA", "DE", "ar_TN", " fr ", "EN"} {
		assert.Equal(t, en, locale.Lookup(code), "code %q", code)
	}
}

func TestLookup_KnownCodes(t *testing.T) {
	assert.Equal(t, "Book now", locale.Lookup("en").BookNow)
	assert.Equal(t, "Réserver", locale.Lookup("fr").BookNow)
	assert.Equal(t, "Jetzt buchen", locale.Lookup("de").BookNow)
	assert.Equal(t, "احجز الآن", locale.Lookup("ar").BookNow)
}

func TestLookup_RawInputNeedsParse(t *testing.T) {
	l, ok := locale.Parse("fr-CA")
	require.True(t, ok)
	assert.Equal(t, "Réserver", locale.Lookup(string(l)).BookNow)
}

func TestTablesAreComplete(t *testing.T) {
	for _, l := range domain.Languages {
		s := locale.For(l)
		require.NotEmpty(t, s.Duration, l)
		require.NotEmpty(t, s.GroupSize, l)
		require.NotEmpty(t, s.BookNow, l)
		require.NotEmpty(t, s.Highlights, l)
		require.NotEmpty(t, s.ChatGreeting, l)
		require.NotEmpty(t, s.ChatReply, l)
		require.NotEmpty(t, s.MapLabel, l)
	}
}

func TestParse(t *testing.T) {
	cases := map[string]domain.Language{
		"fr":    domain.LangFR,
		" DE ":  domain.LangDE,
		"de-AT": domain.LangDE,
		"ar_TN": domain.LangAR,
		"en-US": domain.LangEN,
	}
	for in, want := range cases {
		got, ok := locale.Parse(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "es", "zz-top", "123"} {
		_, ok := locale.Parse(in)
		assert.False(t, ok, in)
	}
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, domain.LangFR, locale.Negotiate("fr-CH, fr;q=0.9, en;q=0.8"))
	assert.Equal(t, domain.LangAR, locale.Negotiate("ar"))
	assert.Equal(t, domain.LangEN, locale.Negotiate("ja"))
	assert.Equal(t, domain.LangEN, locale.Negotiate(""))
	assert.Equal(t, domain.LangEN, locale.Negotiate(";;;"))
}
