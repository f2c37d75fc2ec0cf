// The fixed, process-wide registry of named numeric transforms ("quantifiers")

package translate

import "math"

// quantifierFunc is a pure pointwise transform applied to one endpoint of a value.
type quantifierFunc func(number) number

func scale(factor float64) quantifierFunc {
	return func(n number) number {
		return number{v: n.v * factor, forceDecimals: -1}
	}
}

func roundTo(decimals int) quantifierFunc {
	return func(n number) number {
		mult := math.Pow(10, float64(decimals))
		return number{v: math.Round(n.v*mult) / mult, forceDecimals: decimals}
	}
}

// quantifierRegistry is the fixed table from spec.md §3. It is immutable once initialized and
// shared by every Variant in the process, matching the teacher's process-wide dictionary model.
var quantifierRegistry = map[string]quantifierFunc{
	"deciseconds_to_seconds":            scale(10),
	"divide_by_one_hundred":             scale(1.0 / 100),
	"per_minute_to_per_second":          scale(1.0 / 60),
	"milliseconds_to_seconds":           scale(1.0 / 1000),
	"negate":                            scale(-1),
	"divide_by_one_hundred_and_negate":  scale(-1.0 / 100),
	"old_leech_percent":                 scale(1.0 / 5),
	"old_leech_permyriad":               scale(1.0 / 50),
	"per_minute_to_per_second_0dp":      compose(scale(1.0/60), roundTo(0)),
	"per_minute_to_per_second_2dp":      compose(scale(1.0/60), roundTo(2)),
	"milliseconds_to_seconds_0dp":       compose(scale(1.0/1000), roundTo(0)),
	"milliseconds_to_seconds_2dp":       compose(scale(1.0/1000), roundTo(2)),
}

func compose(first, second quantifierFunc) quantifierFunc {
	return func(n number) number {
		return second(first(n))
	}
}

// isKnownQuantifier reports whether name belongs to the fixed registry.
func isKnownQuantifier(name string) bool {
	_, ok := quantifierRegistry[name]
	return ok
}

// quantifierBinding maps a registered transform name to the ordered 1-based value indices it
// applies to within one Variant.
type quantifierBinding struct {
	name    string
	indices []int //1-based, as declared in the source file
}

// applyQuantifiers runs every bound transform over the supplied value pairs (1-based indices converted to
// 0-based), pointwise on ranges. Returns InvalidQuantifier if a bound name somehow is not in the
// registry (unreachable if the parser validated names at load time, per §4.B).
func applyQuantifiers(bindings []quantifierBinding, values []numberPair) ([]numberPair, error) {
	out := make([]numberPair, len(values))
	copy(out, values)
	for _, b := range bindings {
		fn, ok := quantifierRegistry[b.name]
		if !ok {
			return nil, newDiag(DK_InvalidQuantifier, "", 0, "unknown quantifier %q", b.name)
		}
		for _, idx1 := range b.indices {
			idx := idx1 - 1
			if idx < 0 || idx >= len(out) {
				continue
			}
			p := out[idx]
			p.lo = fn(p.lo)
			if p.isRange {
				p.hi = fn(p.hi)
			}
			out[idx] = p
		}
	}
	return out, nil
}
