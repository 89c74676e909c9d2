package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"dune_tours/internal/domain"
	"dune_tours/internal/locale"
	"dune_tours/internal/pricing"
)

/********** alias registries (single source of truth) **********/

var activityAliases = map[string][]string{
	"id":          {"id", "slug", "activity_id"},
	"category":    {"category", "type", "kind"},
	"duration":    {"duration", "duration_text", "length"},
	"group_size":  {"group_size", "groupSize", "max_group", "capacity"},
	"image":       {"image", "image_url", "imageUrl", "cover.url", "photo"},
	"title":       {"title", "name", "translations.title"},
	"description": {"description", "summary", "translations.description"},
	"highlights":  {"highlights", "features", "translations.highlights"},
	"prices":      {"prices", "price_map", "pricing"},
	"position":    {"position", "sort_order", "order"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupText returns a string at path, formatting numbers (duration: 3 -> "3").
func lookupText(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstText: first non-empty text for a named alias set.
func firstText(m map[string]any, key string) string {
	for _, p := range activityAliases[key] {
		if s := lookupText(m, p); s != "" {
			return s
		}
	}
	return ""
}

// firstValue: first present value for a named alias set.
func firstValue(m map[string]any, key string) any {
	for _, p := range activityAliases[key] {
		if v := lookupAny(m, p); v != nil {
			return v
		}
	}
	return nil
}

// toFloat: number from float64/int/string like "8,5".
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, ",", "."))
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// toStrings: accept []any with either strings or {url/src/text/title/name}.
func toStrings(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return []string{strings.TrimSpace(s)}
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			for _, k := range []string{"url", "src", "text", "title", "name"} {
				if s, ok := t[k].(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
					break
				}
			}
		}
	}
	return out
}

/********** localized fields **********/

// mapLocalized accepts {"en": "...", "fr": "..."}, a bare string (English),
// or flattened columns such as title_en / title_fr.
func mapLocalized(p map[string]any, key string) domain.LocalizedText {
	out := domain.LocalizedText{}
	switch v := firstValue(p, key).(type) {
	case map[string]any:
		for k, raw := range v {
			l, ok := locale.Parse(k)
			if !ok {
				log.Debug().Str("field", key).Str("lang", k).Msg("dropping unsupported language")
				continue
			}
			if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
				out[l] = strings.TrimSpace(s)
			}
		}
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out[domain.DefaultLanguage] = s
		}
	}
	for _, l := range domain.Languages {
		if _, done := out[l]; done {
			continue
		}
		if s := lookupText(p, fmt.Sprintf("%s_%s", key, l)); s != "" {
			out[l] = s
		}
	}
	return out
}

func mapHighlights(p map[string]any) domain.Highlights {
	out := domain.Highlights{}
	switch v := firstValue(p, "highlights").(type) {
	case map[string]any:
		for k, raw := range v {
			l, ok := locale.Parse(k)
			if !ok {
				continue
			}
			if xs := toStrings(raw); len(xs) > 0 {
				out[l] = xs
			}
		}
	case []any:
		if xs := toStrings(v); len(xs) > 0 {
			out[domain.DefaultLanguage] = xs
		}
	}
	for _, l := range domain.Languages {
		if _, done := out[l]; done {
			continue
		}
		if xs := toStrings(lookupAny(p, "highlights_"+string(l))); len(xs) > 0 {
			out[l] = xs
		}
	}
	return out
}

// mapPrices accepts {"USD": 30, "TND": "80"}, flattened price_usd columns,
// or a single "price" that is taken as USD.
func mapPrices(p map[string]any) domain.PriceRecord {
	out := domain.PriceRecord{}
	if m, ok := firstValue(p, "prices").(map[string]any); ok {
		for k, raw := range m {
			c, ok := pricing.ParseCurrency(k)
			if !ok {
				log.Debug().Str("currency", k).Msg("dropping unsupported currency")
				continue
			}
			if f, ok := toFloat(raw); ok && f > 0 {
				out[c] = f
			}
		}
	}
	for _, c := range domain.Currencies {
		if _, done := out[c]; done {
			continue
		}
		if f, ok := toFloat(lookupAny(p, "price_"+strings.ToLower(string(c)))); ok && f > 0 {
			out[c] = f
		}
	}
	if _, ok := out[domain.DefaultCurrency]; !ok {
		if f, ok := toFloat(lookupAny(p, "price")); ok && f > 0 {
			out[domain.DefaultCurrency] = f
		}
	}
	return out
}

/********** activity mapper **********/

func mapActivity(p map[string]any) domain.Activity {
	a := domain.Activity{
		ID:          firstText(p, "id"),
		Category:    strings.ToLower(firstText(p, "category")),
		Duration:    firstText(p, "duration"),
		GroupSize:   firstText(p, "group_size"),
		Image:       firstText(p, "image"),
		Title:       mapLocalized(p, "title"),
		Description: mapLocalized(p, "description"),
		Highlights:  mapHighlights(p),
		Prices:      mapPrices(p),
	}
	if a.Image == "" {
		if imgs := toStrings(lookupAny(p, "images")); len(imgs) > 0 {
			a.Image = imgs[0]
		}
	}
	if f, ok := toFloat(firstValue(p, "position")); ok {
		a.Position = int(f)
	}
	return a
}
