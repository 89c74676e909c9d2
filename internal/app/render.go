package app

import (
	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
	"dune_tours/internal/pricing"
)

type CardLabels struct {
	Duration   string `json:"duration"`
	GroupSize  string `json:"group_size"`
	BookNow    string `json:"book_now"`
	Highlights string `json:"highlights"`
	PriceFrom  string `json:"price_from"`
	PerPerson  string `json:"per_person"`
}

// ActivityCard is the display projection of one activity.
type ActivityCard struct {
	ID           string          `json:"id"`
	Category     string          `json:"category"`
	Duration     string          `json:"duration"`
	GroupSize    string          `json:"group_size"`
	Image        string          `json:"image"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Highlights   []string        `json:"highlights"`
	Price        float64         `json:"price"`
	Currency     domain.Currency `json:"currency"`
	PriceDisplay string          `json:"price_display"`
	Labels       CardLabels      `json:"labels"`
	Language     domain.Language `json:"language"`
	Dir          string          `json:"dir"`
	RTL          bool            `json:"rtl"`
}

// FallbackFunc is told about every fallback used while rendering.
type FallbackFunc func(activityID, field string, res domain.Resolution)

type Renderer struct {
	onFallback FallbackFunc
}

func NewRenderer(onFallback FallbackFunc) *Renderer {
	return &Renderer{onFallback: onFallback}
}

// RenderCard projects a onto lang and cur. It reads a only and cannot fail:
// missing text, highlights and prices degrade through their fallback chains.
func (r *Renderer) RenderCard(a domain.Activity, lang domain.Language, cur domain.Currency) ActivityCard {
	if !lang.Valid() {
		lang = domain.DefaultLanguage
	}
	strs := locale.For(lang)

	title, tRes := a.Title.Resolve(lang, "")
	desc, dRes := a.Description.Resolve(lang, "")
	highlights, hRes := a.Highlights.Resolve(lang)
	price, pRes := a.Prices.Resolve(cur)

	r.note(a.ID, "title", tRes)
	r.note(a.ID, "description", dRes)
	r.note(a.ID, "highlights", hRes)
	r.note(a.ID, "price", pRes)

	// The amount shown is in whatever currency actually resolved.
	shown := cur
	if pRes == domain.ViaDefault || !shown.Valid() {
		shown = domain.DefaultCurrency
	}

	return ActivityCard{
		ID:           a.ID,
		Category:     a.Category,
		Duration:     a.Duration,
		GroupSize:    a.GroupSize,
		Image:        a.Image,
		Title:        title,
		Description:  desc,
		Highlights:   highlights,
		Price:        price,
		Currency:     shown,
		PriceDisplay: pricing.Format(price, shown, lang),
		Labels: CardLabels{
			Duration:   strs.Duration,
			GroupSize:  strs.GroupSize,
			BookNow:    strs.BookNow,
			Highlights: strs.Highlights,
			PriceFrom:  strs.PriceFrom,
			PerPerson:  strs.PerPerson,
		},
		Language: lang,
		Dir:      lang.Dir(),
		RTL:      lang.RTL(),
	}
}

func (r *Renderer) RenderCards(as []domain.Activity, lang domain.Language, cur domain.Currency) []ActivityCard {
	out := make([]ActivityCard, 0, len(as))
	for _, a := range as {
		out = append(out, r.RenderCard(a, lang, cur))
	}
	return out
}

func (r *Renderer) note(id, field string, res domain.Resolution) {
	if res != domain.Exact && r != nil && r.onFallback != nil {
		r.onFallback(id, field, res)
	}
}
