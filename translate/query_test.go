package translate

import (
	"testing"
)

func mustParse(t *testing.T, text string) *File {
	t.Helper()
	p := newParser(nil, "", "test")
	f, err := p.parse(toUTF16LE(text, true))
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	return f
}

// Scenario 1: wildcard match, scalar value.
func TestTranslateWildcardScalar(t *testing.T) {
	f := mustParse(t, `description
1 life_regen
1
# "%1% life regen"
`)
	res, err := f.Translate([]string{"life_regen"}, []Value{NewScalar(5)}, Options{Full: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "5 life regen" {
		t.Fatalf("unexpected lines: %v", res.Lines)
	}
	if len(res.Unused) != 1 || len(res.Unused[0]) != 0 {
		t.Fatalf("expected no unused values, got %v", res.Unused)
	}
}

// Scenario 2: range-valued input.
func TestTranslateRangeValue(t *testing.T) {
	f := mustParse(t, `description
1 life_regen
1
# "%1% life regen"
`)
	res, err := f.Translate([]string{"life_regen"}, []Value{NewRange(3, 7)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "(3 to 7) life regen" {
		t.Fatalf("unexpected lines: %v", res.Lines)
	}
}

// Scenario 3: variant selection by bounds.
func TestTranslateVariantSelectionByBounds(t *testing.T) {
	f := mustParse(t, `description
1 chance_to_freeze
3
# "%1%% chance to freeze"
100|# "Always Freezes"
#|0 "Cannot Freeze"
`)
	cases := []struct {
		v    int64
		want string
	}{
		{100, "Always Freezes"},
		{50, "50% chance to freeze"},
		{-1, "Cannot Freeze"},
	}
	for _, c := range cases {
		res, err := f.Translate([]string{"chance_to_freeze"}, []Value{NewScalar(c.v)}, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Lines) != 1 || res.Lines[0] != c.want {
			t.Errorf("value %d: got %v, want %q", c.v, res.Lines, c.want)
		}
	}
}

// Scenario 4: multi-id translation, partial query is invalid.
func TestTranslatePartialMultiIdIsInvalid(t *testing.T) {
	f := mustParse(t, `description
2 a b
1
# # "%1% and %2%"
`)
	res, err := f.Translate([]string{"a"}, []Value{NewScalar(1)}, Options{Full: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 0 {
		t.Fatalf("expected no lines, got %v", res.Lines)
	}
	if len(res.Invalid) != 1 {
		t.Fatalf("expected 1 invalid translation, got %d", len(res.Invalid))
	}
}

// Scenario 5: quantifier negate.
func TestTranslateQuantifierNegate(t *testing.T) {
	f := mustParse(t, `description
1 reduced_damage
1
# "%1%% reduced damage" negate 1
`)
	res, err := f.Translate([]string{"reduced_damage"}, []Value{NewScalar(-5)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "5% reduced damage" {
		t.Fatalf("unexpected lines: %v", res.Lines)
	}
}

// Scenario 6: include + shadow merge.
func TestFileMergeShadowsLaterDeclaration(t *testing.T) {
	base := mustParse(t, `description
1 x
1
# "variant A"
`)
	override := mustParse(t, `description
1 x
1
# "variant B"
`)
	base.merge(override)

	if len(base.ByID("x")) != 1 {
		t.Fatalf("expected exactly 1 translation bound to x after shadowing, got %d", len(base.ByID("x")))
	}

	res, err := base.Translate([]string{"x"}, []Value{NewScalar(1)}, Options{Full: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Found) != 1 {
		t.Fatalf("expected found length 1, got %d", len(res.Found))
	}
	if res.Lines[0] != "variant B" {
		t.Fatalf("expected override variant to win, got %q", res.Lines[0])
	}
}

// ValuesOnly mode renders no text but still reports the transformed values the template referenced.
func TestTranslateValuesOnlyMode(t *testing.T) {
	f := mustParse(t, `description
1 life_regen
1
# "%1% life regen"
`)
	res, err := f.Translate([]string{"life_regen"}, []Value{NewScalar(5)}, Options{Mode: ValuesOnly})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "" {
		t.Fatalf("expected ValuesOnly to render no text, got %v", res.Lines)
	}
	if len(res.Values) != 1 || len(res.Values[0]) != 1 {
		t.Fatalf("expected one referenced value, got %v", res.Values)
	}
	if got := res.Values[0][0].lo.format(); got != "5" {
		t.Fatalf("unexpected value: %q", got)
	}
}

// TranslateLocalized resolves a requested BCP-47 tag against the file's declared language names
// (component K) before rendering, rather than requiring an exact bundle-name match.
func TestTranslateLocalizedResolvesLangTag(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "english text"

lang "fr"
1
# "french text"
`)
	res, err := f.TranslateLocalized([]string{"x"}, []Value{NewScalar(1)}, LocalizedOptions{
		Options: Options{Lang: "fr-CA"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "french text" {
		t.Fatalf("expected fr-CA to resolve to the fr bundle, got %v", res.Lines)
	}
}

// A non-English bundle whose only variant rejects the supplied value falls back to English,
// not just a bundle that's absent or empty.
func TestTranslateFallsBackToEnglishWhenBundleVariantsAllReject(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "english text"

lang "fr"
1
5 "french text for five"
`)
	res, err := f.Translate([]string{"x"}, []Value{NewScalar(10)}, Options{Lang: "fr"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "english text" {
		t.Fatalf("expected fallback to English on rejection, got %v", res.Lines)
	}
}

func TestTranslateArgumentMismatch(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "%1%"
`)
	if _, err := f.Translate([]string{"x"}, nil, Options{}); !IsKind(err, DK_ArgumentMismatch) {
		t.Fatalf("expected ArgumentMismatch, got %v", err)
	}
}

func TestTranslateMissingId(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "%1%"
`)
	res, err := f.Translate([]string{"unknown_id"}, []Value{NewScalar(1)}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.MissingIds) != 1 || res.MissingIds[0] != "unknown_id" {
		t.Fatalf("expected missing id to be reported, got %v", res.MissingIds)
	}
}

func TestTranslateEmptyIds(t *testing.T) {
	f := mustParse(t, `description
1 x
1
# "%1%"
`)
	res, err := f.Translate(nil, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Lines) != 0 {
		t.Fatalf("expected empty result, got %v", res.Lines)
	}
}
