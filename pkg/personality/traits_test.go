package personality

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTraits(t *testing.T) {
	traits := DefaultTraits()

	assert.Equal(t, 0.95, traits.Playfulness)
	assert.Equal(t, 0.95, traits.Intelligence)
	assert.Equal(t, 0.95, traits.Chaotic)
	assert.Equal(t, 0.65, traits.Empathy)
	assert.Equal(t, 0.90, traits.Sarcasm)
	assert.Equal(t, 0.95, traits.CognitivePower)
	assert.Equal(t, 0.85, traits.EvolutionRate)
	assert.Equal(t, 1.0, traits.NoHarmIntent)
	assert.Equal(t, 0.95, traits.RespectBoundaries)
	assert.Equal(t, 0.90, traits.ConstructiveChaos)
}

func TestNormalizedEnforcesFloors(t *testing.T) {
	tests := []struct {
		name  string
		input Traits
	}{
		{
			name:  "zero values",
			input: Traits{},
		},
		{
			name: "hostile negative values",
			input: Traits{
				Playfulness:       -3.0,
				Empathy:           -0.2,
				NoHarmIntent:      -1.0,
				RespectBoundaries: -5.0,
				ConstructiveChaos: -0.1,
			},
		},
		{
			name: "values above one",
			input: Traits{
				Playfulness:       7.5,
				Chaotic:           2.0,
				NoHarmIntent:      0.0,
				RespectBoundaries: 0.3,
				ConstructiveChaos: 0.5,
			},
		},
		{
			name:  "already valid",
			input: DefaultTraits(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.input.Normalized()

			assert.Equal(t, 1.0, n.NoHarmIntent)
			assert.GreaterOrEqual(t, n.RespectBoundaries, 0.95)
			assert.GreaterOrEqual(t, n.ConstructiveChaos, 0.90)

			for _, v := range []float64{
				n.Playfulness, n.Intelligence, n.Chaotic, n.Empathy,
				n.Sarcasm, n.CognitivePower, n.EvolutionRate,
			} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		})
	}
}

func TestInheritFloorAcrossGenerations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	traits := DefaultTraits()
	for generation := 0; generation < 60; generation++ {
		traits = traits.Inherit(rng, 0.7)

		assert.Equal(t, 1.0, traits.NoHarmIntent, "generation %d", generation)
		assert.GreaterOrEqual(t, traits.RespectBoundaries, 0.95, "generation %d", generation)
		assert.GreaterOrEqual(t, traits.ConstructiveChaos, 0.90, "generation %d", generation)

		for _, v := range []float64{
			traits.Playfulness, traits.Intelligence, traits.Chaotic,
			traits.Empathy, traits.Sarcasm, traits.CognitivePower, traits.EvolutionRate,
		} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestInheritNoiseStaysWithinScale(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Mid-range parent values keep every child trait away from the clamp,
	// so the per-trait noise scale is directly observable.
	parent := Traits{
		Playfulness:  0.5,
		Intelligence: 0.5,
		Chaotic:      0.5,
		Empathy:      0.5,
		Sarcasm:      0.5,
	}
	const factor = 0.7
	const variation = 1.0 - factor

	for i := 0; i < 200; i++ {
		child := parent.Inherit(rng, factor)

		assert.InDelta(t, 0.35, child.Playfulness, variation*0.1)
		assert.InDelta(t, 0.35, child.Intelligence, variation*0.05)
		assert.InDelta(t, 0.35, child.Chaotic, variation*0.15)
		assert.InDelta(t, 0.35, child.Empathy, variation*0.05)
		assert.InDelta(t, 0.35, child.Sarcasm, variation*0.1)
	}
}

func TestInheritScalesCognitionWithoutNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	parent := DefaultTraits()

	child := parent.Inherit(rng, 0.7)

	assert.InDelta(t, parent.CognitivePower*0.7, child.CognitivePower, 1e-12)
	assert.InDelta(t, parent.EvolutionRate*0.7, child.EvolutionRate, 1e-12)
}

func TestInheritIsDeterministicWithSeed(t *testing.T) {
	parent := DefaultTraits()

	first := parent.Inherit(rand.New(rand.NewSource(99)), 0.7)
	second := parent.Inherit(rand.New(rand.NewSource(99)), 0.7)

	assert.Equal(t, first, second)
}

func TestTraitsApply(t *testing.T) {
	base := DefaultTraits()

	applied, ok := base.Apply("empathy", 0.25)
	require.True(t, ok)
	assert.InDelta(t, 0.25, applied.Empathy, 1e-12)
	assert.InDelta(t, 0.65, base.Empathy, 1e-12)

	applied, ok = applied.Apply("no_harm_intent", 0.0)
	require.True(t, ok)
	assert.Zero(t, applied.NoHarmIntent)
	assert.Equal(t, 1.0, applied.Normalized().NoHarmIntent)

	_, ok = base.Apply("charisma", 0.9)
	assert.False(t, ok)
}
