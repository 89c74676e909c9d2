package domain

type Language string

const (
	LangEN Language = "en"
	LangFR Language = "fr"
	LangDE Language = "de"
	LangAR Language = "ar"

	DefaultLanguage = LangEN
)

// Languages is the fixed, ordered set of supported UI/content languages.
var Languages = []Language{LangEN, LangFR, LangDE, LangAR}

func (l Language) Valid() bool {
	switch l {
	case LangEN, LangFR, LangDE, LangAR:
		return true
	}
	return false
}

// RTL reports whether text in l is written right-to-left.
func (l Language) RTL() bool { return l == LangAR }

// Dir returns the HTML dir attribute value for l.
func (l Language) Dir() string {
	if l.RTL() {
		return "rtl"
	}
	return "ltr"
}

type Currency string

const (
	CurTND Currency = "TND"
	CurUSD Currency = "USD"
	CurEUR Currency = "EUR"

	DefaultCurrency = CurUSD
)

var Currencies = []Currency{CurTND, CurUSD, CurEUR}

func (c Currency) Valid() bool {
	switch c {
	case CurTND, CurUSD, CurEUR:
		return true
	}
	return false
}

// Resolution tells which link of a fallback chain produced a value.
type Resolution uint8

const (
	Exact      Resolution = iota // requested key
	ViaDefault                   // en / USD
	ViaZero                      // terminal default
)

func (r Resolution) String() string {
	switch r {
	case Exact:
		return "exact"
	case ViaDefault:
		return "default"
	default:
		return "zero"
	}
}

// LocalizedText maps a language to a string. Empty values count as absent;
// blanks are stripped on write (see Activity.Normalize), not here.
type LocalizedText map[Language]string

func (t LocalizedText) Resolve(lang Language, fallback string) (string, Resolution) {
	if s := t[lang]; s != "" {
		return s, Exact
	}
	if s := t[DefaultLanguage]; s != "" {
		return s, ViaDefault
	}
	return fallback, ViaZero
}

// Highlights maps a language to an ordered list of short selling points.
type Highlights map[Language][]string

func (h Highlights) Resolve(lang Language) ([]string, Resolution) {
	if xs := h[lang]; len(xs) > 0 {
		return cloneStrings(xs), Exact
	}
	if xs := h[DefaultLanguage]; len(xs) > 0 {
		return cloneStrings(xs), ViaDefault
	}
	return []string{}, ViaZero
}

// PriceRecord maps a currency to an amount. Zero amounts count as absent.
type PriceRecord map[Currency]float64

func (p PriceRecord) Resolve(cur Currency) (float64, Resolution) {
	if len(p) == 0 {
		return 0, ViaZero
	}
	if v := p[cur]; v > 0 {
		return v, Exact
	}
	if v := p[DefaultCurrency]; v > 0 {
		return v, ViaDefault
	}
	return 0, ViaZero
}

func ResolveText(t LocalizedText, lang Language, fallback string) string {
	s, _ := t.Resolve(lang, fallback)
	return s
}

func ResolveHighlights(h Highlights, lang Language) []string {
	xs, _ := h.Resolve(lang)
	return xs
}

func ResolvePrice(p PriceRecord, cur Currency) float64 {
	v, _ := p.Resolve(cur)
	return v
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
