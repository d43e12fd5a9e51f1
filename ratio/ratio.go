// Package ratio finds rational approximations of floating-point numbers.
//
// Approx walks the Stern-Brocot tree toward a value, narrowing a lower and an
// upper bound fraction by their mediants until a mediant lands within
// Tolerance of the value or the denominators outgrow the given bound.
package ratio

import (
	"math"
	"strconv"
)

// Tolerance is the absolute error at which Approx accepts a mediant without
// searching further.
const Tolerance = 1e-6

// Fraction is a ratio of integers. Fractions returned by Approx are reduced
// and have a positive denominator.
type Fraction struct {
	Num int64
	Den int64
}

// String formats f as "num/den".
func (f Fraction) String() string {
	return strconv.FormatInt(f.Num, 10) + "/" + strconv.FormatInt(f.Den, 10)
}

// Float64 returns the quotient of f.
func (f Fraction) Float64() float64 {
	return float64(f.Num) / float64(f.Den)
}

// limit bounds the numerators the search may build.
const limit = 1 << 62

// Approx returns a best rational approximation to v having a denominator no
// larger than maxDen. The sign of v is carried on the numerator, and 0 is
// 0/1.
func Approx(v float64, maxDen int64) (Fraction, error) {
	if maxDen < 1 {
		return Fraction{}, &DenominatorError{Max: maxDen}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fraction{}, &RangeError{X: v, Max: maxDen}
	}
	if v == 0 {
		return Fraction{Num: 0, Den: 1}, nil
	}
	sign := int64(1)
	if v < 0 {
		sign, v = -1, -v
	}
	// Mediants probed past the bound can have denominators up to 2*maxDen.
	if (v+1)*2*float64(maxDen) >= limit {
		return Fraction{}, &RangeError{X: float64(sign) * v, Max: maxDen}
	}
	s := search{v: v, max: maxDen, lo: Fraction{0, 1}, hi: Fraction{1, 0}}
	r := s.run()
	r.Num *= sign
	return r, nil
}

// search is the state of one approximation. hi starts at 1/0, which stands
// for infinity and is only ever added to lo, never divided.
type search struct {
	v      float64
	max    int64
	lo, hi Fraction
}

func (s *search) run() Fraction {
	for {
		m := Fraction{s.lo.Num + s.hi.Num, s.lo.Den + s.hi.Den}
		if m.Den > s.max {
			break
		}
		below := s.below(m)
		// A run of mediants on one side of v all move the same bound. The
		// j-th mediant of the run is base + j*step.
		base, step := s.lo, s.hi
		if !below {
			base, step = s.hi, s.lo
		}
		next := func(j int64) Fraction {
			return Fraction{base.Num + j*step.Num, base.Den + j*step.Den}
		}
		var jmax int64
		if step.Den == 0 {
			// Walking up the integers from 0/1 toward 1/0.
			jmax = int64(s.v) + 2
		} else {
			jmax = (s.max - base.Den) / step.Den
		}
		k := first(jmax, func(j int64) bool { return s.below(next(j)) != below }) - 1
		if j := first(k, func(j int64) bool { return s.close(next(j)) }); j <= k {
			return next(j)
		}
		if below {
			s.lo = next(k)
		} else {
			s.hi = next(k)
		}
	}
	if s.hi.Den == 0 {
		return s.lo
	}
	if math.Abs(s.v-s.lo.Float64()) < math.Abs(s.v-s.hi.Float64()) {
		return s.lo
	}
	return s.hi
}

func (s *search) below(f Fraction) bool {
	return f.Float64() < s.v
}

func (s *search) close(f Fraction) bool {
	return math.Abs(s.v-f.Float64()) < Tolerance
}

// first returns the smallest j in [1, n] for which f(j) holds, or n+1 if there
// is none. f must be monotone over [1, n].
func first(n int64, f func(int64) bool) int64 {
	lo, hi := int64(1), n+1
	for lo < hi {
		mid := lo + (hi-lo)/2
		if f(mid) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// DenominatorError is an error indicating a maximum denominator that is not
// positive.
type DenominatorError struct {
	// Max is the rejected bound.
	Max int64
}

func (err *DenominatorError) Error() string {
	return "ratio: maximum denominator " + strconv.FormatInt(err.Max, 10) + " is not positive"
}

// RangeError is an error indicating a value that has no fraction under the
// given bound representable with int64 parts, including NaN and infinities.
type RangeError struct {
	// X is the value that was approximated.
	X float64
	// Max is the maximum denominator requested.
	Max int64
}

func (err *RangeError) Error() string {
	return "ratio: cannot approximate " + strconv.FormatFloat(err.X, 'g', -1, 64) +
		" with denominator at most " + strconv.FormatInt(err.Max, 10)
}
