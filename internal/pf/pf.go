// Package pf implements the probability/counting-generating function (PF):
// a finite sequence of non-negative weights indexed by mine count, used by
// internal/eval to represent (and combine) per-component mine-count
// distributions.
package pf

import "gonum.org/v1/gonum/stat/combin"

// PF is a polynomial over non-negative reals indexed by mine count: PF[i]
// is the weight of configurations contributing exactly i mines. A nil or
// empty PF is the zero polynomial.
type PF []float64

// OneHot returns the PF of length k+1 with weight 1 at index k and zero
// elsewhere: "exactly k mines, one configuration."
func OneHot(k int) PF {
	p := make(PF, k+1)
	p[k] = 1
	return p
}

// Zero returns the zero polynomial.
func Zero() PF {
	return PF{0}
}

func zipWithLongest(a, b PF, f func(x, y float64) float64) PF {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(PF, n)
	for i := 0; i < n; i++ {
		var x, y float64
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		out[i] = f(x, y)
	}
	return out
}

// Add performs index-wise sum; missing entries on the shorter side are
// treated as zero. Used to merge alternative assignments at a branch point.
func Add(a, b PF) PF {
	return zipWithLongest(a, b, func(x, y float64) float64 { return x + y })
}

// Mul performs index-wise (not convolved) product; used when conditioning
// an inner PF by an outer weight PF, e.g. the hypergeometric reweighting in
// Weighted.
func Mul(a, b PF) PF {
	return zipWithLongest(a, b, func(x, y float64) float64 { return x * y })
}

// Convolve combines two independent components' mine-count distributions:
// c[i+j] += a[i]*b[j]. Mine counts of independent components add.
func Convolve(a, b PF) PF {
	if len(a) == 0 || len(b) == 0 {
		return Zero()
	}
	out := make(PF, len(a)+len(b)-1)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

// EV returns the (possibly unnormalised) expected mine count: sum(i*p[i]).
func (p PF) EV() float64 {
	var ev float64
	for i, x := range p {
		ev += float64(i) * x
	}
	return ev
}

// Sum returns sum(p[i]).
func (p PF) Sum() float64 {
	var s float64
	for _, x := range p {
		s += x
	}
	return s
}

// Normalize scales p so that Sum()==1; a no-op on the zero vector (division
// is guarded, so PF never panics on a degenerate input).
func (p PF) Normalize() PF {
	s := p.Sum()
	if s == 0 {
		return p
	}
	out := make(PF, len(p))
	for i, x := range p {
		out[i] = x / s
	}
	return out
}

// Weighted reweights p — the component's unconditional mine distribution —
// by the global mine-budget hypergeometric factor: p[i] *= C(nOutside,
// flagsRemaining-i) for i in [max(0,flagsRemaining-nOutside),
// min(len(p)-1,flagsRemaining)], zero elsewhere, then normalises. nOutside
// is the number of Unknown cells outside this component (the remainder plus
// every other component's unknowns).
func (p PF) Weighted(flagsRemaining, nOutside int) PF {
	out := make(PF, len(p))
	lo := flagsRemaining - nOutside
	if lo < 0 {
		lo = 0
	}
	hi := flagsRemaining
	if hi > len(p)-1 {
		hi = len(p) - 1
	}
	for i := lo; i <= hi; i++ {
		out[i] = p[i] * combin.GeneralizedBinomial(float64(nOutside), float64(flagsRemaining-i))
	}
	return out.Normalize()
}

// IsCertainlyMine reports whether every positive-index entry equals 1,
// meaning the cell this PF tracks is flagged in every consistent
// configuration that has at least one mine recorded.
func (p PF) IsCertainlyMine() bool {
	if len(p) <= 1 {
		return false
	}
	for _, x := range p[1:] {
		if x != 1 {
			return false
		}
	}
	return true
}

// IsNeverMine reports whether every entry is zero, meaning the cell this PF
// tracks is never flagged in any consistent configuration.
func (p PF) IsNeverMine() bool {
	for _, x := range p {
		if x != 0 {
			return false
		}
	}
	return true
}

// TruncateDegree drops weights past the given maximum mine count. Used by
// the branching evaluator to prune configurations that exceed the global
// mine budget after each component merge, bounding memory on Expert-scale
// frontiers (spec's design note: "bound PF length early").
func (p PF) TruncateDegree(max int) PF {
	if max+1 >= len(p) {
		return p
	}
	out := make(PF, max+1)
	copy(out, p[:max+1])
	return out
}
