package pricecurve

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{5}, Linspace(5, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	vals := Linspace(0, 1, 5)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, vals)
}

func TestGenerateLinear(t *testing.T) {
	curve, err := Generate(0.03, 0.05, Linear, nil)
	require.NoError(t, err)
	require.Len(t, curve, Months)

	assert.Equal(t, 0.03, curve[0])
	assert.Equal(t, 0.05, curve[Months-1])
	for i := 1; i < Months; i++ {
		assert.Greater(t, curve[i], curve[i-1], "month %d", i+1)
	}
}

func TestGenerateLinearDecreasing(t *testing.T) {
	curve, err := Generate(0.05, 0.01, Linear, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.05, curve[0])
	assert.Equal(t, 0.01, curve[Months-1])
	for i := 1; i < Months; i++ {
		assert.Less(t, curve[i], curve[i-1])
	}
}

func TestGenerateU(t *testing.T) {
	// cos(0) = 1 and cos(pi) = -1 pin the endpoints.
	assert.Equal(t, 1.0, math.Cos(0))
	assert.Equal(t, -1.0, math.Cos(math.Pi))

	curve, err := Generate(0.03, 0.05, U, nil)
	require.NoError(t, err)
	require.Len(t, curve, Months)

	assert.InDelta(t, 0.03, curve[0], 1e-15)
	assert.InDelta(t, 0.05, curve[Months-1], 1e-15)
	for i := 1; i < Months; i++ {
		assert.GreaterOrEqual(t, curve[i], curve[i-1])
	}
}

func TestGenerateInverseUMirrorsU(t *testing.T) {
	start, end := 0.03, 0.05
	u, err := Generate(start, end, U, nil)
	require.NoError(t, err)
	inv, err := Generate(start, end, InverseU, nil)
	require.NoError(t, err)

	// The cosine term enters the two shapes with opposite signs, so their
	// sum is constant: 2*start + span/2.
	for i := range u {
		assert.InDelta(t, 2*start+(end-start)/2, u[i]+inv[i], 1e-15, "month %d", i+1)
	}
	assert.InDelta(t, start+(end-start)/2, inv[0], 1e-15)
	assert.InDelta(t, start-(end-start)/2, inv[Months-1], 1e-15)
}

func TestGenerateInverseURejectsNonPositivePrices(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		firstBad   string
	}{
		{name: "dips below zero", start: 0.01, end: 0.05, firstBad: "month 9 "},
		{name: "touches zero", start: 0.01, end: 0.03, firstBad: "month 12 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curve, err := Generate(tt.start, tt.end, InverseU, nil)
			assert.ErrorIs(t, err, ErrNonPositivePrice)
			assert.Nil(t, curve)
			assert.Contains(t, err.Error(), tt.firstBad)
		})
	}

	curve, err := Generate(0.01, 0.029, InverseU, nil)
	require.NoError(t, err)
	assert.Greater(t, curve[Months-1], 0.0)
}

func TestGenerateRandomStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	start, end := 0.03, 0.05

	for run := 0; run < 50; run++ {
		curve, err := Generate(start, end, Random, rng)
		require.NoError(t, err)
		require.Len(t, curve, Months)
		for i, p := range curve {
			assert.GreaterOrEqual(t, p, start-1e-15, "run %d month %d", run, i+1)
			assert.LessOrEqual(t, p, end+1e-15, "run %d month %d", run, i+1)
		}
	}
}

func TestGenerateRandomVaries(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	first, err := Generate(0.03, 0.05, Random, rng)
	require.NoError(t, err)
	second, err := Generate(0.03, 0.05, Random, rng)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateRandomSeedIsReproducible(t *testing.T) {
	a, err := Generate(0.03, 0.05, Random, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := Generate(0.03, 0.05, Random, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateRandomRequiresSource(t *testing.T) {
	_, err := Generate(0.03, 0.05, Random, nil)
	assert.Error(t, err)
}

func TestGenerateUnknownPatternIsFlat(t *testing.T) {
	curve, err := Generate(0.03, 0.05, Pattern("sideways"), nil)
	require.NoError(t, err)
	require.Len(t, curve, Months)
	for _, p := range curve {
		assert.Equal(t, 0.03, p)
	}
	assert.False(t, Known("sideways"))
}

func TestNextCyclesPatterns(t *testing.T) {
	assert.Equal(t, U, Next(Linear))
	assert.Equal(t, InverseU, Next(U))
	assert.Equal(t, Random, Next(InverseU))
	assert.Equal(t, Linear, Next(Random))
	assert.Equal(t, Linear, Next("flat"))
}
