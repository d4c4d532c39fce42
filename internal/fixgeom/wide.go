package fixgeom

import (
	"math"
	"math/bits"
)

// Wide is a signed 128-bit integer in two's complement. It holds products of
// int64 values exactly, which is what comparing two such products (or a
// product against a square) needs.
type Wide struct {
	Hi int64
	Lo uint64
}

// WideOf sign-extends v.
func WideOf(v int64) Wide {
	w := Wide{Lo: uint64(v)}
	if v < 0 {
		w.Hi = -1
	}
	return w
}

func uabs(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func bitLen(v uint64) int { return bits.Len64(v) }

// MulWide returns the exact product a*b.
func MulWide(a, b int64) Wide {
	hi, lo := bits.Mul64(uabs(a), uabs(b))
	w := Wide{Hi: int64(hi), Lo: lo}
	if (a < 0) != (b < 0) {
		return w.Neg()
	}
	return w
}

func (w Wide) Add(v Wide) Wide {
	lo, carry := bits.Add64(w.Lo, v.Lo, 0)
	return Wide{Hi: w.Hi + v.Hi + int64(carry), Lo: lo}
}

func (w Wide) Sub(v Wide) Wide {
	lo, borrow := bits.Sub64(w.Lo, v.Lo, 0)
	return Wide{Hi: w.Hi - v.Hi - int64(borrow), Lo: lo}
}

func (w Wide) Neg() Wide { return Wide{}.Sub(w) }

// Cmp returns -1, 0 or 1 as w is less than, equal to or greater than v.
func (w Wide) Cmp(v Wide) int {
	switch {
	case w.Hi < v.Hi:
		return -1
	case w.Hi > v.Hi:
		return 1
	case w.Lo < v.Lo:
		return -1
	case w.Lo > v.Lo:
		return 1
	}
	return 0
}

func (w Wide) Sign() int { return w.Cmp(Wide{}) }

// Float returns the nearest float64, for placement math only.
func (w Wide) Float() float64 {
	if w.Hi < 0 {
		return -w.Neg().Float()
	}
	return float64(uint64(w.Hi))*0x1p64 + float64(w.Lo)
}

// MulDivRound computes a*b/c with a 128-bit intermediate, rounding half away
// from zero and saturating to the int64 range. A zero divisor yields zero.
func MulDivRound(a, b, c int64) int64 { return mulDiv(a, b, c, true) }

// MulDivTrunc computes a*b/c with a 128-bit intermediate, truncating toward
// zero and saturating to the int64 range. A zero divisor yields zero.
func MulDivTrunc(a, b, c int64) int64 { return mulDiv(a, b, c, false) }

func mulDiv(a, b, c int64, round bool) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	uc := uabs(c)
	hi, lo := bits.Mul64(uabs(a), uabs(b))
	if round {
		var carry uint64
		lo, carry = bits.Add64(lo, uc/2, 0)
		hi += carry
	}
	if hi >= uc {
		// Quotient does not fit in 64 bits.
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, uc)
	if q > math.MaxInt64 {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	if neg {
		return -int64(q)
	}
	return int64(q)
}

// Isqrt returns floor(sqrt(x)) exactly, by Newton iteration from a power of
// two no smaller than the root.
func Isqrt(x uint64) uint64 {
	if x < 2 {
		return x
	}
	r := uint64(1) << uint((bits.Len64(x)+1)/2)
	for {
		next := (r + x/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}
