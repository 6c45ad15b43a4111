package kernel

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/logging"
)

// EvolverConfig controls population evolution.
type EvolverConfig struct {
	// Generations is the number of selection/reproduction cycles per
	// Evolve call.
	Generations int `json:"generations"`
	// MutationRate is both the probability that a fresh offspring gets
	// mutated and the intensity handed to the mutation itself. Zero
	// disables the gate.
	MutationRate float64 `json:"mutation_rate"`
	// EliteSize is how many top kernels survive each generation
	// unchanged. Zero disables elitism.
	EliteSize int `json:"elite_size"`
	// Seed fixes the evolver's random source. Zero means time-seeded.
	Seed int64 `json:"seed"`
	// Concurrency bounds the worker pool used by EvaluatePopulation.
	Concurrency int `json:"concurrency"`
}

// DefaultEvolverConfig returns the stock evolution parameters.
func DefaultEvolverConfig() EvolverConfig {
	return EvolverConfig{
		Generations:  10,
		MutationRate: 0.15,
		EliteSize:    2,
		Concurrency:  4,
	}
}

// Evolver drives a population of kernels through repeated selection,
// reproduction and mutation cycles. It keeps no state between calls beyond
// its seeded random source.
type Evolver struct {
	config EvolverConfig
	rng    *rand.Rand
}

// NewEvolver builds an evolver, replacing out-of-range config values with
// defaults. The evolver's source covers parent sampling and the mutation
// gate; crossover and inheritance draw from each parent kernel's own
// source, so seed those too (WithRand) when full determinism matters.
func NewEvolver(config EvolverConfig) *Evolver {
	def := DefaultEvolverConfig()
	if config.Generations <= 0 {
		config.Generations = def.Generations
	}
	if config.MutationRate < 0 || config.MutationRate > 1 {
		config.MutationRate = def.MutationRate
	}
	if config.EliteSize < 0 {
		config.EliteSize = def.EliteSize
	}
	if config.Concurrency <= 0 {
		config.Concurrency = def.Concurrency
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Evolver{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Config returns the effective configuration after default substitution.
func (e *Evolver) Config() EvolverConfig { return e.config }

// Evolve runs the configured number of generations over the population.
// Each generation sorts by fitness, carries the elite unchanged, refills by
// reproducing parent pairs sampled uniformly from the top half, and mutates
// fresh offspring with probability MutationRate. The returned population
// has the input's size; the input slice is left untouched. Cancellation is
// checked between generations. A gene structure mismatch between sampled
// parents aborts the run.
func (e *Evolver) Evolve(ctx context.Context, population []*Kernel) ([]*Kernel, error) {
	if len(population) == 0 {
		return []*Kernel{}, nil
	}

	logger := logging.GetLogger()

	current := append([]*Kernel(nil), population...)
	for gen := 0; gen < e.config.Generations; gen++ {
		if err := errors.CheckContext(ctx, "population evolution"); err != nil {
			return nil, err
		}

		genCtx := logging.WithGeneration(ctx, gen+1)

		sort.SliceStable(current, func(i, j int) bool {
			return current[i].genome.Fitness > current[j].genome.Fitness
		})
		logger.Debug(genCtx, "generation %d/%d: best fitness %.4f",
			gen+1, e.config.Generations, current[0].genome.Fitness)

		eliteSize := e.config.EliteSize
		if eliteSize > len(current) {
			eliteSize = len(current)
		}
		next := append([]*Kernel(nil), current[:eliteSize]...)

		poolSize := len(current) / 2
		if poolSize < 1 {
			poolSize = 1
		}

		for len(next) < len(current) {
			parent1 := current[e.rng.Intn(poolSize)]
			parent2 := current[e.rng.Intn(poolSize)]

			offspring, err := parent1.Reproduce(parent2)
			if err != nil {
				return nil, errors.WithFields(
					errors.Wrap(err, errors.StructuralMismatch, "population evolution aborted"),
					errors.Fields{"generation": gen + 1})
			}

			if e.rng.Float64() < e.config.MutationRate {
				offspring.ReplaceGenome(offspring.Genome().Mutate(e.rng, e.config.MutationRate))
			}

			next = append(next, offspring)
		}

		current = next
	}

	logger.Info(ctx, "evolution completed: %d generations over %d kernels",
		e.config.Generations, len(current))

	return current, nil
}

// EvaluatePopulation scores every kernel against metrics drawn from source,
// using a worker pool bounded by the configured concurrency. Population
// members are independent, so each kernel is touched by exactly one worker.
func (e *Evolver) EvaluatePopulation(ctx context.Context, population []*Kernel, source func(*Kernel) Metrics) error {
	if source == nil {
		return errors.New(errors.InvalidInput, "nil metrics source")
	}
	if err := errors.CheckContext(ctx, "population evaluation"); err != nil {
		return err
	}

	logger := logging.GetLogger()

	p := pool.New().WithMaxGoroutines(e.config.Concurrency)

	var mu sync.Mutex
	evaluated := 0

	for _, k := range population {
		k := k // Capture loop variable
		p.Go(func() {
			fitness := k.EvaluateFitness(source(k))

			mu.Lock()
			evaluated++
			if evaluated%5 == 0 {
				logger.Debug(ctx, "evaluation progress: %d/%d, last fitness %.4f",
					evaluated, len(population), fitness)
			}
			mu.Unlock()
		})
	}

	p.Wait()

	return nil
}
