// Ordered tuple of stat ids plus its per-language bundles (component E)

package translate

import "strings"

// Translation is the unit the file format declares under a "description" block: an ordered
// tuple of stat ids (arity >= 1) and the language bundles describing their combined effect.
// Id order is structural — it determines which supplied value lands in which Range slot.
type Translation struct {
	Ids       []string
	Languages []*LanguageBundle

	//Cached once on construction; merge() deduplication relies on it repeatedly.
	hash uint64
}

const englishLanguageName = "English"

// englishBundle returns the mandatory English bundle, or nil if somehow absent (parser always
// constructs one, even if empty).
func (t *Translation) englishBundle() *LanguageBundle {
	for _, b := range t.Languages {
		if b.Name == englishLanguageName {
			return b
		}
	}
	return nil
}

// bundleFor returns the bundle matching lang, falling back to English per spec.md §4.E.
func (t *Translation) bundleFor(lang string) (*LanguageBundle, bool) {
	for _, b := range t.Languages {
		if b.Name == lang {
			return b, true
		}
	}
	return t.englishBundle(), false
}

// bundleByName returns the exact bundle named name, without any English fallback. Used by the
// parser to find (or decide to create) the bundle a language section should append to.
func (t *Translation) bundleByName(name string) *LanguageBundle {
	for _, b := range t.Languages {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// render locates the requested language's bundle and delegates to LanguageBundle.render, falling
// back to the English bundle per spec.md §4.D whenever the requested bundle is absent, empty, or
// every one of its variants rejects the supplied values (not merely when it's missing outright).
func (t *Translation) render(values []Value, present []int, lang string, mode FormatMode) (FormatResult, bool, error) {
	bundle, _ := t.bundleFor(lang)
	if bundle != nil {
		if res, ok, err := bundle.render(values, present, mode); ok || err != nil {
			return res, ok, err
		}
	}

	eng := t.englishBundle()
	if eng == nil || eng == bundle {
		return FormatResult{}, false, nil
	}
	return eng.render(values, present, mode)
}

// idsEqual reports structural equality of two id tuples, order-sensitive (id order is
// structural per spec.md §3).
func idsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameIdTuple reports whether two translations share the same ordered id tuple (used by the
// shadowing rule in File.merge).
func (t *Translation) sameIdTuple(other *Translation) bool {
	return idsEqual(t.Ids, other.Ids)
}

// structurallyEqual reports full (ids, languages) structural equality, used to decide whether a
// merge candidate is a no-op duplicate rather than a shadowing replacement.
func (t *Translation) structurallyEqual(other *Translation) bool {
	if t == other {
		return true
	}
	if t.hash != other.hash {
		return false
	}
	if !idsEqual(t.Ids, other.Ids) || len(t.Languages) != len(other.Languages) {
		return false
	}
	for i, b := range t.Languages {
		ob := other.Languages[i]
		if b.Name != ob.Name || len(b.Variants) != len(ob.Variants) {
			return false
		}
		for j, v := range b.Variants {
			ov := ob.Variants[j]
			if v.Template != ov.Template || !rangesEqual(v.Ranges, ov.Ranges) || !bindingsEqual(v.Quantifiers, ov.Quantifiers) {
				return false
			}
		}
	}
	return true
}

func rangesEqual(a, b []Range) bool {
	if len(a) != len(b) {
		return false
	}
	eqPtr := func(x, y *int64) bool {
		if x == nil || y == nil {
			return x == y
		}
		return *x == *y
	}
	for i := range a {
		if !eqPtr(a[i].Min, b[i].Min) || !eqPtr(a[i].Max, b[i].Max) {
			return false
		}
	}
	return true
}

func bindingsEqual(a, b []quantifierBinding) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].name != b[i].name || len(a[i].indices) != len(b[i].indices) {
			return false
		}
		for j := range a[i].indices {
			if a[i].indices[j] != b[i].indices[j] {
				return false
			}
		}
	}
	return true
}

// computeHash builds a cheap structural hash, memoized at parse/merge time so merge's
// deduplication doesn't rehash on every comparison.
func computeHash(t *Translation) uint64 {
	var h uint64 = 1469598103934665603 //FNV-1a offset basis
	const prime = 1099511628211
	mix := func(s string) {
		for i := 0; i < len(s); i++ {
			h ^= uint64(s[i])
			h *= prime
		}
	}
	mix(strings.Join(t.Ids, "\x00"))
	for _, b := range t.Languages {
		mix(b.Name)
		for _, v := range b.Variants {
			mix(v.Template)
			for _, r := range v.Ranges {
				if r.Min != nil {
					mix(itoa64(*r.Min))
				}
				mix("|")
				if r.Max != nil {
					mix(itoa64(*r.Max))
				}
			}
			for _, qb := range v.Quantifiers {
				mix(qb.name)
			}
		}
	}
	return h
}

func itoa64(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}
