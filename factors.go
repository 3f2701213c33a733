package facalc

import "math"

// The standard interest factors, as functions of the effective interest rate
// i per period (a decimal, not a percentage) and the period count n. Each
// handles the i == 0 case with the closed-form limit instead of dividing by
// zero. Exact equality is the right test: i derives deterministically from
// the input text, so an intended zero is exactly zero.
//
// n is conventionally an integer period count, but fractional n is permitted
// and computed literally.

// pow1p is (1+i)^n.
func pow1p(i, n float64) float64 {
	return math.Pow(1+i, n)
}

// FP is the single-payment compound-amount factor, F given P.
func FP(i, n float64) float64 {
	return pow1p(i, n)
}

// PF is the single-payment present-worth factor, P given F.
func PF(i, n float64) float64 {
	return pow1p(i, -n)
}

// PA is the uniform-series present-worth factor, P given A.
func PA(i, n float64) float64 {
	if i == 0 {
		return n
	}
	return (1 - pow1p(i, -n)) / i
}

// AP is the capital-recovery factor, A given P.
func AP(i, n float64) float64 {
	if i == 0 {
		if n == 0 {
			return math.Inf(1)
		}
		return 1 / n
	}
	x := pow1p(i, n)
	return i * x / (x - 1)
}

// FA is the uniform-series compound-amount factor, F given A.
func FA(i, n float64) float64 {
	if i == 0 {
		return n
	}
	return (pow1p(i, n) - 1) / i
}

// AF is the sinking-fund factor, A given F.
func AF(i, n float64) float64 {
	if i == 0 {
		if n == 0 {
			return math.Inf(1)
		}
		return 1 / n
	}
	return i / (pow1p(i, n) - 1)
}

// AG is the arithmetic-gradient uniform-series factor, A given G, for the
// gradient series 0, G, 2G, ..., (n-1)G at periods 1..n.
func AG(i, n float64) float64 {
	if i == 0 {
		return (n - 1) / 2
	}
	return 1/i - n/(pow1p(i, n)-1)
}

// PG is the arithmetic-gradient present-worth factor, P given G. It is
// computed as AG*PA for numerical stability; the i == 0 limit follows from
// the limits of the two factors.
func PG(i, n float64) float64 {
	return AG(i, n) * PA(i, n)
}
