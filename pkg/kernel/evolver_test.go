package kernel

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/genome"
)

// buildPopulation creates kernels with distinct genome IDs, a shared seeded
// source and strictly descending fitness.
func buildPopulation(t *testing.T, size int, seed int64) []*Kernel {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	population := make([]*Kernel, size)
	for i := range population {
		population[i] = New(genome.New(genome.Default().Genes), WithRand(rng))
		population[i].Genome().Fitness = float64(size-i) / float64(size+1)
	}
	return population
}

func TestNewEvolverDefaults(t *testing.T) {
	e := NewEvolver(EvolverConfig{
		Generations:  -1,
		MutationRate: -0.5,
		EliteSize:    -3,
		Concurrency:  0,
	})

	cfg := e.Config()
	assert.Equal(t, 10, cfg.Generations)
	assert.Equal(t, 0.15, cfg.MutationRate)
	assert.Equal(t, 2, cfg.EliteSize)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestNewEvolverKeepsZeroGates(t *testing.T) {
	e := NewEvolver(EvolverConfig{Generations: 5, MutationRate: 0, EliteSize: 0, Concurrency: 1})

	cfg := e.Config()
	assert.Zero(t, cfg.MutationRate)
	assert.Zero(t, cfg.EliteSize)
}

func TestEvolveEmptyPopulation(t *testing.T) {
	e := NewEvolver(DefaultEvolverConfig())

	result, err := e.Evolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestEvolvePreservesElite(t *testing.T) {
	population := buildPopulation(t, 6, 19)

	e := NewEvolver(EvolverConfig{Generations: 3, EliteSize: 2, MutationRate: 0, Seed: 9, Concurrency: 1})
	result, err := e.Evolve(context.Background(), population)
	require.NoError(t, err)
	require.Len(t, result, 6)

	assert.Same(t, population[0], result[0])
	assert.Same(t, population[1], result[1])
	assert.Equal(t, population[0].Genome().Fitness, result[0].Genome().Fitness)
	assert.Equal(t, population[1].Genome().Fitness, result[1].Genome().Fitness)
}

func TestEvolveOffspringLineage(t *testing.T) {
	population := buildPopulation(t, 4, 21)
	topIDs := []string{population[0].Genome().ID, population[1].Genome().ID}

	e := NewEvolver(EvolverConfig{Generations: 1, EliteSize: 2, MutationRate: 0, Seed: 5, Concurrency: 1})
	result, err := e.Evolve(context.Background(), population)
	require.NoError(t, err)
	require.Len(t, result, 4)

	for _, offspring := range result[2:] {
		g := offspring.Genome()
		assert.Equal(t, 2, g.Generation)
		assert.Zero(t, g.Fitness)
		require.Len(t, g.ParentIDs, 2)
		for _, parentID := range g.ParentIDs {
			assert.Contains(t, topIDs, parentID)
		}
	}
}

func TestEvolveMutationGateAlwaysOn(t *testing.T) {
	population := buildPopulation(t, 4, 23)

	e := NewEvolver(EvolverConfig{Generations: 1, EliteSize: 2, MutationRate: 1.0, Seed: 13, Concurrency: 1})
	result, err := e.Evolve(context.Background(), population)
	require.NoError(t, err)

	for _, offspring := range result[2:] {
		g := offspring.Genome()
		assert.Equal(t, 3, g.Generation)
		require.Len(t, g.ParentIDs, 1)
	}
}

func TestEvolveMaintainsSizeAndBounds(t *testing.T) {
	population := buildPopulation(t, 5, 33)
	snapshot := append([]*Kernel(nil), population...)

	e := NewEvolver(EvolverConfig{Generations: 8, EliteSize: 2, MutationRate: 0.5, Seed: 17, Concurrency: 1})
	result, err := e.Evolve(context.Background(), population)
	require.NoError(t, err)
	require.Len(t, result, 5)

	assert.Equal(t, snapshot, population)

	for _, k := range result {
		for _, gene := range k.Genome().Genes {
			assert.GreaterOrEqual(t, gene.Value, gene.Min, "gene %s", gene.Name)
			assert.LessOrEqual(t, gene.Value, gene.Max, "gene %s", gene.Name)
		}
	}
}

func TestEvolveDeterministicUnderSeed(t *testing.T) {
	run := func() []*Kernel {
		population := buildPopulation(t, 6, 4)
		e := NewEvolver(EvolverConfig{Generations: 5, EliteSize: 2, MutationRate: 0.3, Seed: 8, Concurrency: 1})
		result, err := e.Evolve(context.Background(), population)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	require.Len(t, second, len(first))
	for i := range first {
		g1, g2 := first[i].Genome(), second[i].Genome()
		assert.Equal(t, g1.Generation, g2.Generation, "kernel %d", i)
		require.Len(t, g2.Genes, len(g1.Genes))
		for j := range g1.Genes {
			assert.Equal(t, g1.Genes[j].Value, g2.Genes[j].Value, "kernel %d gene %d", i, j)
		}
	}
}

func TestEvolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEvolver(DefaultEvolverConfig())
	result, err := e.Evolve(ctx, []*Kernel{New(genome.Default())})

	require.Error(t, err)
	assert.Nil(t, result)

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errors.Canceled, coded.Code())
}

func TestEvolveStructuralMismatchAborts(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	population := make([]*Kernel, 12)
	for i := range population {
		g := genome.New(genome.Default().Genes)
		if i%2 == 1 {
			g = genome.New(genome.Default().Genes[:5])
		}
		population[i] = New(g, WithRand(rng))
		population[i].Genome().Fitness = 1.0 - float64(i)/100.0
	}

	e := NewEvolver(EvolverConfig{Generations: 50, EliteSize: 0, MutationRate: 0, Seed: 3, Concurrency: 1})
	result, err := e.Evolve(context.Background(), population)

	require.Error(t, err)
	assert.Nil(t, result)

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errors.StructuralMismatch, coded.Code())
}

func TestEvaluatePopulation(t *testing.T) {
	population := make([]*Kernel, 9)
	for i := range population {
		population[i] = New(genome.New(genome.Default().Genes), WithRand(rand.New(rand.NewSource(int64(i)))))
	}

	var mu sync.Mutex
	calls := 0
	source := func(*Kernel) Metrics {
		mu.Lock()
		calls++
		mu.Unlock()
		return Metrics{
			MetricSuccessRate:   0.85,
			MetricEntertainment: 0.92,
			MetricChaosLevel:    0.75,
			MetricTranscendRate: 0.3,
		}
	}

	e := NewEvolver(EvolverConfig{Concurrency: 3})
	err := e.EvaluatePopulation(context.Background(), population, source)
	require.NoError(t, err)

	assert.Equal(t, 9, calls)
	for _, k := range population {
		assert.InDelta(t, 0.8387142857142857, k.Genome().Fitness, 1e-9)
		assert.Len(t, k.History(), 1)
	}
}

func TestEvaluatePopulationNilSource(t *testing.T) {
	e := NewEvolver(DefaultEvolverConfig())

	err := e.EvaluatePopulation(context.Background(), nil, nil)
	require.Error(t, err)

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errors.InvalidInput, coded.Code())
}

func TestEvaluatePopulationCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEvolver(DefaultEvolverConfig())
	err := e.EvaluatePopulation(ctx, []*Kernel{New(genome.Default())}, func(*Kernel) Metrics {
		return Metrics{}
	})

	require.Error(t, err)

	var coded *errors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errors.Canceled, coded.Code())
}
