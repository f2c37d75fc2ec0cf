// Ordered collection of variants for one language belonging to one translation (component D)

package translate

// LanguageBundle holds the ordered variants for a single declared language name (e.g.
// "English", "Russian") within one Translation. All variants share the parent Translation's
// arity.
type LanguageBundle struct {
	Name     string
	Variants []*Variant
}

// selectVariant picks the Variant with the maximum matchScore over the present indices, ties
// broken by earliest declaration order. Returns ok=false if every variant rejects (scores 0 on
// some present index) or there are no variants at all.
func (b *LanguageBundle) selectVariant(values []Value, present []int) (*Variant, bool) {
	var best *Variant
	bestScore := -1
	for _, v := range b.Variants {
		score, rejected := v.matchScore(values, present)
		if rejected {
			continue
		}
		if score > bestScore {
			best, bestScore = v, score
		}
	}
	return best, best != nil
}

// render selects the best matching variant and delegates formatting to it.
func (b *LanguageBundle) render(values []Value, present []int, mode FormatMode) (FormatResult, bool, error) {
	v, ok := b.selectVariant(values, present)
	if !ok {
		return FormatResult{}, false, nil
	}
	res, err := v.format(values, mode)
	return res, true, err
}
