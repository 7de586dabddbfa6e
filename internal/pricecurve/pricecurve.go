// Package pricecurve builds the twelve-month USD price trajectory used to
// value token rewards.
package pricecurve

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rovshanmuradov/gls-tokenomics/internal/mathutil"
)

// Months is the length of every generated curve.
const Months = 12

// Pattern names the shape of a price curve.
type Pattern string

const (
	Linear   Pattern = "linear"
	U        Pattern = "u"
	InverseU Pattern = "inverse_u"
	Random   Pattern = "random"
)

// ErrDegenerateCurve is returned when a random walk has no spread to
// normalize against.
var ErrDegenerateCurve = errors.New("degenerate price curve: random walk has zero range")

// ErrNonPositivePrice is returned when a shape dips to zero or below, as
// inverse_u does once end-start reaches twice the start price.
var ErrNonPositivePrice = errors.New("price curve has a non-positive price")

// zeroTolerance is relative to the larger endpoint. Prices within it of
// zero count as zero.
const zeroTolerance = 1e-12

// Patterns returns the known shapes in display order.
func Patterns() []Pattern {
	return []Pattern{Linear, U, InverseU, Random}
}

// Known reports whether p is one of the supported shapes. Unknown names
// still produce a curve (flat at the start price).
func Known(p Pattern) bool {
	switch p {
	case Linear, U, InverseU, Random:
		return true
	default:
		return false
	}
}

// Next returns the shape following p in Patterns order, wrapping around.
// Unknown patterns move to Linear.
func Next(p Pattern) Pattern {
	all := Patterns()
	for i, candidate := range all {
		if candidate == p {
			return all[(i+1)%len(all)]
		}
	}
	return Linear
}

// Linspace returns num evenly spaced values from start to end inclusive.
// The final element is pinned to end so the endpoint is exact.
func Linspace(start, end float64, num int) []float64 {
	if num <= 0 {
		return nil
	}
	if num == 1 {
		return []float64{start}
	}

	step := (end - start) / float64(num-1)
	out := make([]float64, num)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[num-1] = end
	return out
}

// Generate builds a Months-long price curve from start to end following
// pattern p. rng is only consulted for Random and may be nil otherwise.
func Generate(start, end float64, p Pattern, rng *rand.Rand) ([]float64, error) {
	curve, err := shape(start, end, p, rng)
	if err != nil {
		return nil, err
	}

	floor := zeroTolerance * math.Max(math.Abs(start), math.Abs(end))
	for i, price := range curve {
		if price <= floor {
			return nil, fmt.Errorf("%w: %s month %d = %g", ErrNonPositivePrice, p, i+1, price)
		}
	}
	return curve, nil
}

func shape(start, end float64, p Pattern, rng *rand.Rand) ([]float64, error) {
	span := end - start

	switch p {
	case Linear:
		return Linspace(start, end, Months), nil

	case U:
		x := Linspace(0, 1, Months)
		out := make([]float64, Months)
		for i, t := range x {
			out[i] = start + span*(1-math.Cos(math.Pi*t))/2
		}
		return out, nil

	case InverseU:
		x := Linspace(0, 1, Months)
		out := make([]float64, Months)
		for i, t := range x {
			out[i] = start + span*math.Cos(math.Pi*t)/2
		}
		return out, nil

	case Random:
		if rng == nil {
			return nil, fmt.Errorf("random pattern requires a random source")
		}
		return randomWalk(start, span, rng)

	default:
		return mathutil.Filled(Months, start), nil
	}
}

// randomWalk normalizes the cumulative sum of uniform draws into [0,1] and
// maps it onto the price range.
func randomWalk(start, span float64, rng *rand.Rand) ([]float64, error) {
	steps := make([]float64, Months)
	for i := range steps {
		steps[i] = rng.Float64()
		if i > 0 {
			steps[i] += steps[i-1]
		}
	}

	lo, hi := mathutil.MinMax(steps)
	if hi == lo {
		return nil, ErrDegenerateCurve
	}

	out := make([]float64, Months)
	for i, s := range steps {
		out[i] = start + (s-lo)/(hi-lo)*span
	}
	return out, nil
}
