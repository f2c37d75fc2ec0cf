// Value representation and numeric formatting (narrowest lossless representation, §9)

package translate

import (
	"math"
	"strconv"
)

// Value is a single id's supplied argument: either a scalar or a closed 2-tuple range. Equal
// endpoints collapse to a scalar, per spec.
type Value struct {
	Lo, Hi  int64
	IsRange bool
}

// NewScalar builds a scalar Value.
func NewScalar(v int64) Value {
	return Value{Lo: v}
}

// NewRange builds a range Value, collapsing to a scalar when the endpoints are equal.
func NewRange(lo, hi int64) Value {
	if lo == hi {
		return NewScalar(lo)
	}
	return Value{Lo: lo, Hi: hi, IsRange: true}
}

// number is a post-quantifier value. Quantifiers promote integers to floats; forceDecimals
// pins the rendered decimal-place count (used by the *_0dp and *_2dp transforms), and -1 means
// "use the narrowest lossless representation" (integral values render with no decimal point).
type number struct {
	v             float64
	forceDecimals int
}

func intNumber(v int64) number { return number{v: float64(v), forceDecimals: -1} }

func (n number) format() string {
	if n.forceDecimals >= 0 {
		return strconv.FormatFloat(n.v, 'f', n.forceDecimals, 64)
	}
	if n.v == math.Trunc(n.v) && math.Abs(n.v) < 1e15 {
		return strconv.FormatInt(int64(n.v), 10)
	}
	return strconv.FormatFloat(n.v, 'f', -1, 64)
}

// signed formats the value with an explicit leading sign, used for the %N$+d placeholder form.
func (n number) signed() string {
	s := n.format()
	if n.v >= 0 && (len(s) == 0 || s[0] != '+') {
		return "+" + s
	}
	return s
}

// numberPair is the transformed form of a Value: either one number, or a (lo, hi) pair when the
// source Value was a range. Quantifiers apply pointwise to each endpoint independently.
type numberPair struct {
	lo, hi  number
	isRange bool
}

func scalarPair(v int64) numberPair {
	return numberPair{lo: intNumber(v)}
}

func valueToPair(v Value) numberPair {
	if !v.IsRange {
		return scalarPair(v.Lo)
	}
	return numberPair{lo: intNumber(v.Lo), hi: intNumber(v.Hi), isRange: true}
}

// literalText renders the (lo to hi) or scalar text for Literal mode substitution.
func (p numberPair) literalText(forceSign bool) string {
	if !p.isRange {
		if forceSign {
			return p.lo.signed()
		}
		return p.lo.format()
	}
	return "(" + p.lo.format() + " to " + p.hi.format() + ")"
}
