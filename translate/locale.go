// BCP-47 locale resolution and locale-aware number formatting (components K/L)

package translate

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResolveLang picks the best available language name out of a File's bundles for the requested
// BCP-47 tag. Exact (case-insensitive) name matches win first, matching the plain-string lookup
// the core engine performs everywhere else; only when no exact match exists does this fall back
// to BCP-47 tag-distance matching so a caller can ask for "en-US" and still hit "English".
func ResolveLang(requested string, available []string) string {
	for _, name := range available {
		if strings.EqualFold(name, requested) {
			return name
		}
	}

	want, err := language.Parse(requested)
	if err != nil {
		return englishLanguageName
	}

	tags := make([]language.Tag, 0, len(available))
	names := make([]string, 0, len(available))
	for _, name := range available {
		if tag, err := language.Parse(name); err == nil {
			tags = append(tags, tag)
			names = append(names, name)
		}
	}
	if len(tags) == 0 {
		return englishLanguageName
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(want)
	if confidence == language.No {
		return englishLanguageName
	}
	return names[index]
}

// LocalizedOptions wraps Options with an opt-in BCP-47 locale used to format rendered numbers
// with locale-appropriate grouping and decimal separators, per spec.md §6's Configuration note
// that number localization is a caller-opted-in behavior layered on top of the core engine.
type LocalizedOptions struct {
	Options
	NumberLocale string //BCP-47 tag; empty disables locale-aware number formatting
}

// localizeNumbers rewrites every %N%/%N$+d substitution already present in text using the
// original (pre-format) numberPair values, re-rendering each with locale grouping/decimals via
// golang.org/x/text/message. Only Literal-mode text is rewritten; Placeholder/ValuesOnly modes
// carry no locale-sensitive numeric text to rewrite.
func localizeNumbers(text string, pairs []numberPair, locale string) string {
	if locale == "" {
		return text
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return text
	}
	p := message.NewPrinter(tag)

	for _, pair := range pairs {
		plain := pair.literalText(false)
		if !strings.Contains(text, plain) {
			continue
		}
		text = strings.ReplaceAll(text, plain, localizedNumberText(p, pair))
	}
	return text
}

func localizedNumberText(p *message.Printer, pair numberPair) string {
	if !pair.isRange {
		return localizedOne(p, pair.lo)
	}
	return "(" + localizedOne(p, pair.lo) + " to " + localizedOne(p, pair.hi) + ")"
}

func localizedOne(p *message.Printer, n number) string {
	if n.forceDecimals >= 0 {
		return p.Sprintf("%.*f", n.forceDecimals, n.v)
	}
	if n.v == float64(int64(n.v)) {
		return p.Sprintf("%d", int64(n.v))
	}
	return p.Sprintf("%v", n.v)
}

// ParseLocaleTag is a thin validating wrapper so callers (CLI, settings file) can reject a bad
// --number-locale flag early instead of silently disabling localization later.
func ParseLocaleTag(s string) (language.Tag, error) {
	return language.Parse(s)
}
