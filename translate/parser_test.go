package translate

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// toUTF16LE is a test-only fixture helper: it encodes s as UTF-16LE bytes, optionally prefixed
// with a BOM, so parser tests can exercise the real encoding the file format requires without
// hand-maintaining binary literals.
func toUTF16LE(s string, withBOM bool) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2+2)
	if withBOM {
		out = append(out, 0xFF, 0xFE)
	}
	buf := make([]byte, 2)
	for _, u := range units {
		binary.LittleEndian.PutUint16(buf, u)
		out = append(out, buf...)
	}
	return out
}

func parseText(t *testing.T, text string) *File {
	t.Helper()
	p := newParser(nil, "", "test")
	f, err := p.parse(toUTF16LE(text, true))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	return f
}

func TestParseWildcardVariant(t *testing.T) {
	f := parseText(t, `description
1 life_regen
1
# "%1% life regen"
`)
	if len(f.Translations) != 1 {
		t.Fatalf("expected 1 translation, got %d", len(f.Translations))
	}
	tr := f.Translations[0]
	if !idsEqual(tr.Ids, []string{"life_regen"}) {
		t.Fatalf("unexpected ids: %v", tr.Ids)
	}
	eng := tr.englishBundle()
	if eng == nil || len(eng.Variants) != 1 {
		t.Fatalf("expected one English variant")
	}
}

func TestParseNonEnglishLanguageSection(t *testing.T) {
	f := parseText(t, `description
1 some_stat
1
# "%1% stat"
lang "Russian"
1
# "%1% статы"
`)
	tr := f.Translations[0]
	ru, ok := tr.bundleFor("Russian")
	if !ok || ru.Name != "Russian" {
		t.Fatalf("expected Russian bundle to be found")
	}
	if len(ru.Variants) != 1 {
		t.Fatalf("expected 1 Russian variant, got %d", len(ru.Variants))
	}
}

func TestParseCountMismatchWarns(t *testing.T) {
	f := parseText(t, `description
2 only_one_id
1
# "%1%"
`)
	found := false
	for _, d := range f.Diagnostics {
		if IsKind(d, DK_CountMismatch) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CountMismatch diagnostic, got %v", f.Diagnostics)
	}
}

func TestParseUnknownQuantifierWarnsAndDrops(t *testing.T) {
	f := parseText(t, `description
1 some_stat
1
# "%1%" made_up_quantifier 1
`)
	found := false
	for _, d := range f.Diagnostics {
		if IsKind(d, DK_InvalidQuantifier) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an InvalidQuantifier diagnostic")
	}
	v := f.Translations[0].englishBundle().Variants[0]
	if len(v.Quantifiers) != 0 {
		t.Fatalf("expected unknown quantifier to be dropped, got %v", v.Quantifiers)
	}
}

func TestParseRangeTokenForms(t *testing.T) {
	f := parseText(t, `description
1 chance_to_freeze
3
# "{0}% chance to freeze"
100|# "Always Freezes"
#|0 "Cannot Freeze"
`)
	variants := f.Translations[0].englishBundle().Variants
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(variants))
	}
	if !variants[0].Ranges[0].wildcard() {
		t.Fatalf("expected first variant's range to be a wildcard")
	}
	if variants[1].Ranges[0].Min == nil || *variants[1].Ranges[0].Min != 100 || variants[1].Ranges[0].Max != nil {
		t.Fatalf("expected second variant range 100|#, got %+v", variants[1].Ranges[0])
	}
	if variants[2].Ranges[0].Max == nil || *variants[2].Ranges[0].Max != 0 || variants[2].Ranges[0].Min != nil {
		t.Fatalf("expected third variant range #|0, got %+v", variants[2].Ranges[0])
	}
}

func TestParseNoBOM(t *testing.T) {
	p := newParser(nil, "", "test")
	_, err := p.parse(toUTF16LE("description\n1 x\n1\n# \"%1%\"\n", false))
	if err != nil {
		t.Fatalf("parse without BOM should still succeed (defaults to LE): %s", err)
	}
}
