package setcat

import (
	"math/bits"
	"strconv"
)

// Cardinality is either a finite count or unknown. The zero value is unknown.
type Cardinality struct {
	n      uint64
	finite bool
}

// Finite is the cardinality of an n-element carrier.
func Finite(n uint64) Cardinality { return Cardinality{n: n, finite: true} }

// Unknown marks an infinite or uncounted carrier.
func Unknown() Cardinality { return Cardinality{} }

func (c Cardinality) IsFinite() bool { return c.finite }

// Count returns the finite count; ok is false for unknown cardinalities.
func (c Cardinality) Count() (n uint64, ok bool) { return c.n, c.finite }

func (c Cardinality) String() string {
	if !c.finite {
		return "unknown"
	}
	return strconv.FormatUint(c.n, 10)
}

// mulCardinality is unknown when either side is unknown or the product overflows.
func mulCardinality(a, b Cardinality) Cardinality {
	if !a.finite || !b.finite {
		return Unknown()
	}
	hi, lo := bits.Mul64(a.n, b.n)
	if hi != 0 {
		return Unknown()
	}
	return Finite(lo)
}

func addCardinality(a, b Cardinality) Cardinality {
	if !a.finite || !b.finite {
		return Unknown()
	}
	sum, carry := bits.Add64(a.n, b.n, 0)
	if carry != 0 {
		return Unknown()
	}
	return Finite(sum)
}

// powCardinality computes base^exp, unknown on overflow. 0^0 is 1.
func powCardinality(base, exp Cardinality) Cardinality {
	if !base.finite || !exp.finite {
		return Unknown()
	}
	result := Finite(1)
	if exp.n == 0 {
		return result
	}
	if base.n <= 1 {
		return Finite(base.n)
	}
	for i := uint64(0); i < exp.n; i++ {
		result = mulCardinality(result, base)
		if !result.finite {
			return result
		}
	}
	return result
}

// fits reports whether c is finite and no larger than limit.
func (c Cardinality) fits(limit uint64) bool {
	return c.finite && c.n <= limit
}
