// Package locale holds the static UI string tables and language negotiation.
package locale

import "dune_tours/internal/domain"

// Strings is one language's worth of UI copy.
type Strings struct {
	NavHome       string `json:"nav_home"`
	NavActivities string `json:"nav_activities"`
	NavGallery    string `json:"nav_gallery"`
	NavContact    string `json:"nav_contact"`

	HeroTitle    string `json:"hero_title"`
	HeroSubtitle string `json:"hero_subtitle"`
	ExploreCTA   string `json:"explore_cta"`

	Duration      string `json:"duration"`
	GroupSize     string `json:"group_size"`
	BookNow       string `json:"book_now"`
	Highlights    string `json:"highlights"`
	PriceFrom     string `json:"price_from"`
	PerPerson     string `json:"per_person"`
	NoActivities  string `json:"no_activities"`
	LanguageLabel string `json:"language_label"`
	CurrencyLabel string `json:"currency_label"`

	ChatTitle       string `json:"chat_title"`
	ChatPlaceholder string `json:"chat_placeholder"`
	ChatSend        string `json:"chat_send"`
	ChatTyping      string `json:"chat_typing"`
	ChatGreeting    string `json:"chat_greeting"`
	ChatReply       string `json:"chat_reply"`

	MapTitle string `json:"map_title"`
	MapLabel string `json:"map_label"`

	FooterRights string `json:"footer_rights"`
}

var table = map[domain.Language]Strings{
	domain.LangEN: {
		NavHome:       "Home",
		NavActivities: "Activities",
		NavGallery:    "Gallery",
		NavContact:    "Contact",

		HeroTitle:    "Discover the Sahara",
		HeroSubtitle: "Unforgettable desert adventures in southern Tunisia",
		ExploreCTA:   "Explore activities",

		Duration:      "Duration",
		GroupSize:     "Group size",
		BookNow:       "Book now",
		Highlights:    "Highlights",
		PriceFrom:     "From",
		PerPerson:     "per person",
		NoActivities:  "No activities available yet.",
		LanguageLabel: "Language",
		CurrencyLabel: "Currency",

		ChatTitle:       "Desert assistant",
		ChatPlaceholder: "Type your message...",
		ChatSend:        "Send",
		ChatTyping:      "Typing...",
		ChatGreeting:    "Hello! How can we help you plan your desert adventure?",
		ChatReply:       "Thank you for your message! Our team will get back to you shortly.",

		MapTitle: "Find us",
		MapLabel: "Our base camp in Douz",

		FooterRights: "All rights reserved.",
	},
	domain.LangFR: {
		NavHome:       "Accueil",
		NavActivities: "Activités",
		NavGallery:    "Galerie",
		NavContact:    "Contact",

		HeroTitle:    "Découvrez le Sahara",
		HeroSubtitle: "Des aventures inoubliables dans le désert du sud tunisien",
		ExploreCTA:   "Voir les activités",

		Duration:      "Durée",
		GroupSize:     "Taille du groupe",
		BookNow:       "Réserver",
		Highlights:    "Points forts",
		PriceFrom:     "À partir de",
		PerPerson:     "par personne",
		NoActivities:  "Aucune activité disponible pour le moment.",
		LanguageLabel: "Langue",
		CurrencyLabel: "Devise",

		ChatTitle:       "Assistant du désert",
		ChatPlaceholder: "Écrivez votre message...",
		ChatSend:        "Envoyer",
		ChatTyping:      "En train d'écrire...",
		ChatGreeting:    "Bonjour ! Comment pouvons-nous vous aider à préparer votre aventure ?",
		ChatReply:       "Merci pour votre message ! Notre équipe vous répondra très bientôt.",

		MapTitle: "Nous trouver",
		MapLabel: "Notre camp de base à Douz",

		FooterRights: "Tous droits réservés.",
	},
	domain.LangDE: {
		NavHome:       "Startseite",
		NavActivities: "Aktivitäten",
		NavGallery:    "Galerie",
		NavContact:    "Kontakt",

		HeroTitle:    "Entdecken Sie die Sahara",
		HeroSubtitle: "Unvergessliche Wüstenabenteuer im Süden Tunesiens",
		ExploreCTA:   "Aktivitäten ansehen",

		Duration:      "Dauer",
		GroupSize:     "Gruppengröße",
		BookNow:       "Jetzt buchen",
		Highlights:    "Höhepunkte",
		PriceFrom:     "Ab",
		PerPerson:     "pro Person",
		NoActivities:  "Noch keine Aktivitäten verfügbar.",
		LanguageLabel: "Sprache",
		CurrencyLabel: "Währung",

		ChatTitle:       "Wüstenassistent",
		ChatPlaceholder: "Nachricht eingeben...",
		ChatSend:        "Senden",
		ChatTyping:      "Schreibt...",
		ChatGreeting:    "Hallo! Wie können wir Ihnen bei Ihrem Wüstenabenteuer helfen?",
		ChatReply:       "Vielen Dank für Ihre Nachricht! Unser Team meldet sich in Kürze.",

		MapTitle: "So finden Sie uns",
		MapLabel: "Unser Basislager in Douz",

		FooterRights: "Alle Rechte vorbehalten.",
	},
	domain.LangAR: {
		NavHome:       "الرئيسية",
		NavActivities: "الأنشطة",
		NavGallery:    "المعرض",
		NavContact:    "اتصل بنا",

		HeroTitle:    "اكتشف الصحراء",
		HeroSubtitle: "مغامرات صحراوية لا تنسى في جنوب تونس",
		ExploreCTA:   "استكشف الأنشطة",

		Duration:      "المدة",
		GroupSize:     "حجم المجموعة",
		BookNow:       "احجز الآن",
		Highlights:    "أبرز المميزات",
		PriceFrom:     "ابتداءً من",
		PerPerson:     "للشخص",
		NoActivities:  "لا توجد أنشطة متاحة حاليًا.",
		LanguageLabel: "اللغة",
		CurrencyLabel: "العملة",

		ChatTitle:       "مساعد الصحراء",
		ChatPlaceholder: "اكتب رسالتك...",
		ChatSend:        "إرسال",
		ChatTyping:      "يكتب...",
		ChatGreeting:    "مرحبًا! كيف يمكننا مساعدتك في التخطيط لمغامرتك الصحراوية؟",
		ChatReply:       "شكرًا على رسالتك! سيتواصل معك فريقنا قريبًا.",

		MapTitle: "موقعنا",
		MapLabel: "مخيمنا في دوز",

		FooterRights: "جميع الحقوق محفوظة.",
	},
}

// Lookup returns the string table for code, or the English one when code is
// not exactly one of the supported codes. It never fails. Callers holding raw
// user input normalize it with Parse or Negotiate first.
func Lookup(code string) Strings {
	if l := domain.Language(code); l.Valid() {
		return table[l]
	}
	return table[domain.DefaultLanguage]
}

// For is Lookup for an already-typed language.
func For(l domain.Language) Strings {
	if s, ok := table[l]; ok {
		return s
	}
	return table[domain.DefaultLanguage]
}
