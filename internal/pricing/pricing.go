// Package pricing resolves and formats per-currency activity prices.
package pricing

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dune_tours/internal/domain"
)

// ParseCurrency normalizes s (" usd ", "Eur") to a supported currency.
func ParseCurrency(s string) (domain.Currency, bool) {
	c := domain.Currency(strings.ToUpper(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Resolve returns the display amount for cur: cur, then USD, then 0.
func Resolve(p domain.PriceRecord, cur domain.Currency) float64 {
	return domain.ResolvePrice(p, cur)
}

// Format renders amount in cur using lang's number conventions, e.g.
// "US$ 30.00" or "30,000 TND". Unknown currencies fall back to USD.
func Format(amount float64, cur domain.Currency, lang domain.Language) string {
	unit, err := currency.ParseISO(string(cur))
	if err != nil {
		unit = currency.USD
	}
	tag, err := language.Parse(string(lang))
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
