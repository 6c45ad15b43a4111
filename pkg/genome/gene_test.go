package genome

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogpy/agent-neuro/pkg/errors"
)

func TestGeneMutateStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	gene := Gene{
		Kind:         Threshold,
		Name:         "transcend_threshold",
		Value:        0.75,
		Min:          0.5,
		Max:          0.95,
		MutationRate: 0.1,
	}

	// Hammer the gene across a sweep of intensities, including ones well
	// above the usual range, and check the bounds hold after every step.
	for i := 0; i < 2000; i++ {
		intensity := rng.Float64() * 2.0
		gene = gene.Mutate(rng, intensity)

		assert.GreaterOrEqual(t, gene.Value, gene.Min)
		assert.LessOrEqual(t, gene.Value, gene.Max)
	}
}

func TestGeneMutateCopiesMetadata(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	original := Gene{
		Kind:         Probability,
		Name:         "subordinate_spawn_prob",
		Value:        0.4,
		Min:          0.1,
		Max:          0.8,
		MutationRate: 0.1,
	}

	mutated := original.Mutate(rng, 1.0)

	assert.Equal(t, original.Kind, mutated.Kind)
	assert.Equal(t, original.Name, mutated.Name)
	assert.Equal(t, original.Min, mutated.Min)
	assert.Equal(t, original.Max, mutated.Max)
	assert.Equal(t, original.MutationRate, mutated.MutationRate)

	// The input gene is a value and must be untouched
	assert.Equal(t, 0.4, original.Value)
}

func TestGeneMutateDeterministicWithSeed(t *testing.T) {
	gene := Gene{Kind: Coefficient, Name: "chaos_coefficient", Value: 0.95, Min: 0, Max: 1, MutationRate: 0.1}

	first := gene.Mutate(rand.New(rand.NewSource(99)), 1.0)
	second := gene.Mutate(rand.New(rand.NewSource(99)), 1.0)

	assert.Equal(t, first.Value, second.Value)
}

func TestGeneZeroMutationRateIsFixedPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	gene := Gene{Kind: Coefficient, Name: "learning_rate", Value: 0.05, Min: 0.01, Max: 0.2, MutationRate: 0}

	for i := 0; i < 100; i++ {
		gene = gene.Mutate(rng, 2.0)
	}

	assert.Equal(t, 0.05, gene.Value)
}

func TestGeneKindRoundTrip(t *testing.T) {
	kinds := []GeneKind{Coefficient, Threshold, Probability, Operator, Structure}
	names := []string{"coefficient", "threshold", "probability", "operator", "structure"}

	for i, kind := range kinds {
		t.Run(names[i], func(t *testing.T) {
			assert.Equal(t, names[i], kind.String())

			parsed, err := ParseGeneKind(names[i])
			require.NoError(t, err)
			assert.Equal(t, kind, parsed)
		})
	}
}

func TestParseGeneKindUnknown(t *testing.T) {
	_, err := ParseGeneKind("chromosome")
	require.Error(t, err)

	var customErr *errors.Error
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, errors.InvalidInput, customErr.Code())
	assert.Equal(t, "chromosome", customErr.Fields()["kind"])
}

func TestGeneJSONDefaults(t *testing.T) {
	// Hand-written records may omit bounds and mutation rate
	var gene Gene
	err := json.Unmarshal([]byte(`{"type":"coefficient","name":"sarcasm_coefficient","value":0.9}`), &gene)
	require.NoError(t, err)

	assert.Equal(t, Coefficient, gene.Kind)
	assert.Equal(t, 0.9, gene.Value)
	assert.Equal(t, 0.0, gene.Min)
	assert.Equal(t, 1.0, gene.Max)
	assert.Equal(t, 0.1, gene.MutationRate)
}

func TestGeneJSONUnknownKind(t *testing.T) {
	var gene Gene
	err := json.Unmarshal([]byte(`{"type":"chromosome","name":"x","value":0.5}`), &gene)
	assert.Error(t, err)
}
