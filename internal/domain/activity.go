package domain

import (
	"fmt"
	"strings"
	"time"
)

type Activity struct {
	ID          string        `json:"id"`
	Category    string        `json:"category"`
	Duration    string        `json:"duration"`
	GroupSize   string        `json:"group_size"`
	Image       string        `json:"image"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	Highlights  Highlights    `json:"highlights"`
	Prices      PriceRecord   `json:"prices"`
	Position    int           `json:"position"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty"`
}

// Normalize trims text and drops blank translations and highlight entries,
// so the read-side fallback chains only ever see real values.
func (a Activity) Normalize() Activity {
	a.ID = strings.TrimSpace(a.ID)
	a.Category = strings.ToLower(strings.TrimSpace(a.Category))
	a.Title = trimText(a.Title)
	a.Description = trimText(a.Description)
	if a.Highlights != nil {
		hs := make(Highlights, len(a.Highlights))
		for l, xs := range a.Highlights {
			kept := make([]string, 0, len(xs))
			for _, x := range xs {
				if x = strings.TrimSpace(x); x != "" {
					kept = append(kept, x)
				}
			}
			if len(kept) > 0 {
				hs[l] = kept
			}
		}
		a.Highlights = hs
	}
	return a
}

func trimText(t LocalizedText) LocalizedText {
	if t == nil {
		return nil
	}
	out := make(LocalizedText, len(t))
	for l, s := range t {
		if s = strings.TrimSpace(s); s != "" {
			out[l] = s
		}
	}
	return out
}

// Validate enforces what stored activities need for every fallback chain to
// resolve: an id, an English title and a USD price.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidActivity)
	}
	if strings.TrimSpace(a.Title[DefaultLanguage]) == "" {
		return fmt.Errorf("%w: title.%s is required", ErrInvalidActivity, DefaultLanguage)
	}
	if a.Prices[DefaultCurrency] <= 0 {
		return fmt.Errorf("%w: prices.%s must be positive", ErrInvalidActivity, DefaultCurrency)
	}
	for l := range a.Title {
		if !l.Valid() {
			return fmt.Errorf("%w: title has unsupported language %q", ErrInvalidActivity, l)
		}
	}
	for l := range a.Description {
		if !l.Valid() {
			return fmt.Errorf("%w: description has unsupported language %q", ErrInvalidActivity, l)
		}
	}
	for l := range a.Highlights {
		if !l.Valid() {
			return fmt.Errorf("%w: highlights has unsupported language %q", ErrInvalidActivity, l)
		}
	}
	for c, v := range a.Prices {
		if !c.Valid() {
			return fmt.Errorf("%w: prices has unsupported currency %q", ErrInvalidActivity, c)
		}
		if v < 0 {
			return fmt.Errorf("%w: prices.%s is negative", ErrInvalidActivity, c)
		}
	}
	return nil
}
