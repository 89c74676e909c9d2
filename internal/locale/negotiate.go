package locale

import (
	"strings"

	"golang.org/x/text/language"

	"dune_tours/internal/domain"
)

var (
	supportedTags = func() []language.Tag {
		tags := make([]language.Tag, 0, len(domain.Languages))
		for _, l := range domain.Languages {
			tags = append(tags, language.MustParse(string(l)))
		}
		return tags
	}()
	matcher = language.NewMatcher(supportedTags)
)

// Parse normalizes s ("FR", " de-AT ", "ar_TN") to a supported language.
func Parse(s string) (domain.Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if l := domain.Language(s); l.Valid() {
		return l, true
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	l := domain.Language(base.String())
	return l, l.Valid()
}

// Negotiate picks the best supported language for an Accept-Language header.
// An empty, malformed or unmatched header yields English.
func Negotiate(acceptLanguage string) domain.Language {
	if strings.TrimSpace(acceptLanguage) == "" {
		return domain.DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLanguage
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return domain.DefaultLanguage
	}
	return domain.Languages[idx]
}
