// One phrase template within a language, guarded by ranges and quantifier bindings (component C)

package translate

import "strings"

// FormatMode selects how a Variant's placeholders are rendered.
type FormatMode uint8

const (
	// Literal substitutes %N% and %N$+d with their rendered text directly in the template.
	Literal FormatMode = iota
	// Placeholder substitutes with a short deterministic letter code instead of the value.
	Placeholder
	// ValuesOnly emits the transformed values referenced by the template, in index order.
	ValuesOnly
)

var placeholderLetters = []byte("xyzabcdefghijklmnopqrstuvw")

func placeholderLetter(index int) string {
	if index < len(placeholderLetters) {
		return string(placeholderLetters[index])
	}
	//Beyond the 26 single letters, fall back to a numbered form; unspecified by source data.
	return string(placeholderLetters[index%len(placeholderLetters)]) + itoa(index/len(placeholderLetters))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 4)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// Variant is one phrase template guarded by a Range per id and an optional set of quantifier
// bindings. Arity equals the parent Translation's id count. Declaration order is not stored
// explicitly: it is implicit in Variants' slice position, which selectVariant relies on for
// tie-breaking.
type Variant struct {
	Template    string
	Ranges      []Range
	Quantifiers []quantifierBinding
}

// matchScore sums per-index range scores over the present indices only; absent indices act as
// wildcards and do not contribute. A zero score on any present index rejects the variant.
func (v *Variant) matchScore(values []Value, present []int) (score int, rejected bool) {
	for _, idx := range present {
		if idx < 0 || idx >= len(v.Ranges) {
			continue
		}
		s := v.Ranges[idx].scoreValue(values[idx])
		if s == 0 {
			return 0, true
		}
		score += s
	}
	return score, false
}

// FormatResult is what Variant.format returns: Text for Literal/Placeholder mode, Values for
// ValuesOnly mode, and the original (pre-quantifier) Values that had no placeholder in the
// template either way.
type FormatResult struct {
	Text   string
	Values []numberPair
	Unused []Value

	//Transformed pairs for every index, regardless of mode or whether the template referenced
	//it; used by locale-aware re-rendering (components K/L), which needs the post-quantifier
	//numbers even in Literal mode.
	AllValues []numberPair
}

// format applies the variant's quantifier bindings and substitutes the template per mode.
func (v *Variant) format(values []Value, mode FormatMode) (FormatResult, error) {
	pairs := make([]numberPair, len(values))
	for i, val := range values {
		pairs[i] = valueToPair(val)
	}
	var err error
	if pairs, err = applyQuantifiers(v.Quantifiers, pairs); err != nil {
		return FormatResult{}, err
	}

	referenced := make([]bool, len(values))

	var out strings.Builder
	out.Grow(len(v.Template))
	template := v.Template
	for i := 0; i < len(template); {
		c := template[i]
		if c != '%' {
			out.WriteByte(c)
			i++
			continue
		}

		//Try to match a placeholder: '%' digits ('%' | "$+d")
		if idx, signed, consumed, ok := matchPlaceholder(template[i:], len(values)); ok {
			referenced[idx] = true
			switch mode {
			case Literal:
				out.WriteString(pairs[idx].literalText(signed))
			case Placeholder:
				out.WriteString(placeholderLetter(idx))
			case ValuesOnly:
				//Nothing written to Text; collected below.
			}
			i += consumed
			continue
		}

		//Literal %% -> %
		if i+1 < len(template) && template[i+1] == '%' {
			out.WriteByte('%')
			i += 2
			continue
		}

		//Lone %, not part of an escape or a recognized placeholder
		out.WriteByte('%')
		i++
	}

	result := FormatResult{AllValues: pairs}
	if mode == ValuesOnly {
		for i, ref := range referenced {
			if ref {
				result.Values = append(result.Values, pairs[i])
			} else {
				result.Unused = append(result.Unused, values[i])
			}
		}
	} else {
		result.Text = out.String()
		for i, ref := range referenced {
			if !ref {
				result.Unused = append(result.Unused, values[i])
			}
		}
	}
	return result, nil
}

// matchPlaceholder attempts to parse a %N% or %N$+d token starting at s[0]=='%'. numValues
// bounds the accepted index: a token whose N is outside [1, numValues] is not a placeholder, and
// the caller then writes its '%' literally.
func matchPlaceholder(s string, numValues int) (index int, signed bool, consumed int, ok bool) {
	if len(s) < 2 || s[0] != '%' {
		return 0, false, 0, false
	}
	j := 1
	start := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == start {
		return 0, false, 0, false
	}
	n := 0
	for k := start; k < j; k++ {
		n = n*10 + int(s[k]-'0')
	}
	if n < 1 || n > numValues {
		return 0, false, 0, false
	}

	//%N%
	if j < len(s) && s[j] == '%' {
		return n - 1, false, j + 1, true
	}

	//%N$+d
	const suffix = "$+d"
	if j+len(suffix) <= len(s) && s[j:j+len(suffix)] == suffix {
		return n - 1, true, j + len(suffix), true
	}

	return 0, false, 0, false
}
