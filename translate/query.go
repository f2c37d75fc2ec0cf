// The public translate() entry point orchestrating C-G (component I)

package translate

// Options controls how Translate formats and reports its result.
type Options struct {
	Lang string     //Defaults to englishLanguageName if empty
	Mode FormatMode //Defaults to Literal
	Full bool       //If false, Found, Indexes, FoundValues and Unused are left empty
}

// Result is the full structured outcome of a Translate call, per spec.md §4.I and §6.
type Result struct {
	Lines []string

	Found         []*Translation
	Indexes       [][]int //present-index list per entry in Found, same order
	FoundValues   [][]Value
	Unused        [][]Value //per Found entry, values the selected variant did not reference
	MissingIds    []string
	MissingValues []Value
	Invalid       []*Translation

	// Values holds, for ValuesOnly mode, the transformed values the selected variant's template
	// referenced (one slice per Lines entry, in index order). Empty in Literal/Placeholder mode.
	Values [][]numberPair
}

// queryEntry accumulates the per-translation state while scanning the supplied ids/values.
// set[p] tracks which positions of values have actually been filled in, playing the role of the
// spec's 0xFFFF_FFFF sentinel without risking collision with a legitimate supplied value.
type queryEntry struct {
	t       *Translation
	present []int
	values  []Value
	set     []bool
}

// Translate resolves ids/values against f's index and renders each fully-covered translation.
// It never returns an error for data gaps (missing ids, partial coverage, unused values): those
// surface in Result. It does return ArgumentMismatch if len(ids) != len(values), and
// InvalidQuantifier if a selected variant binds a quantifier that is not in the registry.
func (f *File) Translate(ids []string, values []Value, opts Options) (Result, error) {
	result, _, err := f.translate(ids, values, opts)
	return result, err
}

// TranslateLocalized behaves like Translate but first resolves opts.Lang against f's declared
// language names via BCP-47 tag-distance matching (component K), so a caller can pass "en-US" and
// still hit a bundle named "English". When NumberLocale is set, it also re-renders every
// Literal-mode line's numeric substitutions using locale-appropriate grouping and decimal marks
// (component L). Placeholder/ValuesOnly modes are unaffected since they carry no locale-
// sensitive numeric text.
func (f *File) TranslateLocalized(ids []string, values []Value, opts LocalizedOptions) (Result, error) {
	if opts.Lang != "" {
		opts.Lang = ResolveLang(opts.Lang, f.LanguageNames())
	}
	result, perLine, err := f.translate(ids, values, opts.Options)
	if err != nil || opts.NumberLocale == "" || opts.Options.Mode != Literal {
		return result, err
	}
	for i := range result.Lines {
		result.Lines[i] = localizeNumbers(result.Lines[i], perLine[i], opts.NumberLocale)
	}
	return result, nil
}

func (f *File) translate(ids []string, values []Value, opts Options) (Result, [][]numberPair, error) {
	if len(ids) != len(values) {
		return Result{}, nil, newDiag(DK_ArgumentMismatch, "", 0,
			"ids has %d entries but values has %d", len(ids), len(values))
	}
	if len(ids) == 0 {
		return Result{}, nil, nil
	}

	lang := opts.Lang
	if lang == "" {
		lang = englishLanguageName
	}

	var order []*Translation
	entries := make(map[*Translation]*queryEntry)

	var missingIds []string
	var missingValues []Value

	for i, id := range ids {
		bucket := f.ByID(id)
		if len(bucket) == 0 {
			missingIds = append(missingIds, id)
			missingValues = append(missingValues, values[i])
			continue
		}
		for _, t := range bucket {
			pos := indexOf(t.Ids, id)
			if pos < 0 {
				continue
			}
			e, ok := entries[t]
			if !ok {
				e = &queryEntry{t: t, values: make([]Value, len(t.Ids)), set: make([]bool, len(t.Ids))}
				entries[t] = e
				order = append(order, t)
			}
			e.present = append(e.present, pos)
			e.values[pos] = values[i]
			e.set[pos] = true
		}
	}

	var result Result
	result.MissingIds = missingIds
	result.MissingValues = missingValues
	var perLine [][]numberPair

	for _, t := range order {
		e := entries[t]
		if !allSet(e.set) {
			result.Invalid = append(result.Invalid, t)
			continue
		}

		res, ok, err := t.render(e.values, e.present, lang, opts.Mode)
		if err != nil {
			return Result{}, nil, err
		}
		if !ok {
			result.Invalid = append(result.Invalid, t)
			continue
		}

		var line string
		if opts.Mode == ValuesOnly {
			result.Values = append(result.Values, res.Values)
		} else {
			line = res.Text
		}
		result.Lines = append(result.Lines, line)
		perLine = append(perLine, res.AllValues)

		if opts.Full {
			result.Found = append(result.Found, t)
			result.Indexes = append(result.Indexes, e.present)
			result.FoundValues = append(result.FoundValues, e.values)
			result.Unused = append(result.Unused, res.Unused)
		}
	}

	return result, perLine, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func allSet(set []bool) bool {
	for _, s := range set {
		if !s {
			return false
		}
	}
	return true
}
