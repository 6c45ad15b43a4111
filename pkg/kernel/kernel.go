// Package kernel implements the self-optimizing unit of the engine: a
// kernel owns one genome, scores it against external metrics, hill-climbs
// through mutation, reproduces with other kernels and projects the winning
// parameters onto an attached personality. The Evolver drives whole
// populations of kernels through selection and reproduction cycles.
package kernel

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/cogpy/agent-neuro/pkg/genome"
	"github.com/cogpy/agent-neuro/pkg/logging"
	"github.com/cogpy/agent-neuro/pkg/personality"
)

// Weights of the multi-objective fitness blend.
const (
	weightSuccess       = 0.3
	weightEntertainment = 0.4
	weightChaos         = 0.2
	weightTranscend     = 0.1

	// optimalChaos is the chaos sweet spot. Fitness rewards proximity to
	// it rather than raw chaos output.
	optimalChaos = 0.7
)

const (
	defaultMutationRate      = 0.15
	defaultInheritanceFactor = 0.7
)

// HistorySample is one recorded (iteration, fitness) observation.
type HistorySample struct {
	Iteration int     `json:"iteration"`
	Fitness   float64 `json:"fitness"`
}

// Kernel owns exactly one genome and optionally writes into a shared
// personality. Optimization never edits genes in place: the genome is
// replaced wholesale and every evaluation appends to the history.
type Kernel struct {
	genome      *genome.Genome
	personality *personality.Personality
	history     []HistorySample
	iteration   int
	rng         *rand.Rand
	estimator   FitnessEstimator
}

// Option configures a kernel at construction.
type Option func(*Kernel)

// WithPersonality attaches a shared personality for the kernel to sync
// cognitive parameters into. The kernel does not own it.
func WithPersonality(p *personality.Personality) Option {
	return func(k *Kernel) { k.personality = p }
}

// WithRand injects the random source used by self-optimization and
// reproduction, making both reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(k *Kernel) { k.rng = rng }
}

// WithEstimator replaces the fitness estimator used by SelfOptimize.
func WithEstimator(e FitnessEstimator) Option {
	return func(k *Kernel) { k.estimator = e }
}

// New builds a kernel around the given genome. A nil genome falls back to
// the default Neuro genome. Without WithRand the kernel gets a time-seeded
// source; without WithEstimator it gets a Gaussian estimator sharing the
// kernel's source.
func New(g *genome.Genome, opts ...Option) *Kernel {
	k := &Kernel{genome: g}
	for _, opt := range opts {
		opt(k)
	}
	if k.genome == nil {
		k.genome = genome.Default()
	}
	if k.rng == nil {
		k.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if k.estimator == nil {
		k.estimator = NewGaussianEstimator(defaultEstimatorSigma, k.rng)
	}
	return k
}

// NewDefault builds a kernel around the default Neuro genome and projects
// its parameters onto the attached personality, if any.
func NewDefault(opts ...Option) *Kernel {
	k := New(genome.Default(), opts...)
	k.SyncTraits()
	return k
}

// Genome returns the owned genome. Callers must not edit genes in place;
// swap via ReplaceGenome instead.
func (k *Kernel) Genome() *genome.Genome { return k.genome }

// Personality returns the attached personality, or nil.
func (k *Kernel) Personality() *personality.Personality { return k.personality }

// History returns a copy of the optimization history, oldest first.
func (k *Kernel) History() []HistorySample {
	return append([]HistorySample(nil), k.history...)
}

// Estimator returns the fitness estimator in use.
func (k *Kernel) Estimator() FitnessEstimator { return k.estimator }

// CurrentIteration returns the optimization iteration counter.
func (k *Kernel) CurrentIteration() int { return k.iteration }

// SetIteration aligns the iteration counter with an external loop, so
// history samples recorded by the host carry its tick index.
func (k *Kernel) SetIteration(n int) { k.iteration = n }

// ReplaceGenome swaps the owned genome wholesale. Nil genomes are ignored.
func (k *Kernel) ReplaceGenome(g *genome.Genome) {
	if g == nil {
		return
	}
	k.genome = g
}

// EvaluateFitness scores the genome against external metrics: 30% success
// rate, 40% entertainment, 20% proximity to the chaos sweet spot, 10%
// transcend rate. The score is stored into the genome and appended to the
// history under the current iteration. Inputs are trusted to sit in [0, 1]
// and the output is not clamped.
func (k *Kernel) EvaluateFitness(m Metrics) float64 {
	fitness := weightSuccess * m.value(MetricSuccessRate, 0.5)
	fitness += weightEntertainment * m.value(MetricEntertainment, 0.5)

	chaosLevel := m.value(MetricChaosLevel, 0.5)
	fitness += weightChaos * (1.0 - math.Abs(chaosLevel-optimalChaos)/optimalChaos)

	fitness += weightTranscend * m.value(MetricTranscendRate, 0.0)

	k.genome.Fitness = fitness
	k.history = append(k.history, HistorySample{Iteration: k.iteration, Fitness: fitness})

	return fitness
}

// SelfOptimize hill-climbs for the given number of rounds: mutate the best
// genome, wrap the mutant in a candidate kernel, estimate its fitness and
// keep it on strict improvement. Each improvement advances the receiver's
// iteration counter. The returned kernel is the best found. Its fitness
// never drops below the starting point; when nothing improves, the receiver
// itself comes back.
func (k *Kernel) SelfOptimize(iterations int) *Kernel {
	logger := logging.GetLogger()

	best := k
	bestFitness := k.genome.Fitness

	for i := 0; i < iterations; i++ {
		mutant := best.genome.Mutate(k.rng, defaultMutationRate)
		candidate := New(mutant,
			WithPersonality(k.personality),
			WithRand(k.rng),
			WithEstimator(k.estimator),
		)

		estimated := k.estimator.Estimate(candidate, bestFitness)
		mutant.Fitness = estimated

		if estimated > bestFitness {
			logger.Debug(context.Background(), "self-optimization round %d improved fitness %.4f -> %.4f",
				i+1, bestFitness, estimated)
			best = candidate
			bestFitness = estimated
			k.iteration++
		}
	}

	return best
}

// Reproduce crosses this kernel's genome with the other parent's genome.
// When a personality is attached, the offspring receives a child
// personality inherited at the default factor. A gene count mismatch
// surfaces unchanged as a StructuralMismatch error.
func (k *Kernel) Reproduce(other *Kernel) (*Kernel, error) {
	child, err := k.genome.Crossover(k.rng, other.genome)
	if err != nil {
		return nil, err
	}

	opts := []Option{WithRand(k.rng), WithEstimator(k.estimator)}
	if k.personality != nil {
		opts = append(opts, WithPersonality(k.personality.Inherit(k.rng, defaultInheritanceFactor)))
	}

	return New(child, opts...), nil
}

// SyncTraits projects the cognitive genes onto the attached personality's
// matching traits. The write goes through the personality's normalization,
// so the ethical floors still hold afterwards. No-op without a personality.
func (k *Kernel) SyncTraits() {
	if k.personality == nil {
		return
	}

	traits := k.personality.Traits()
	traits.Sarcasm = k.genome.Get(genome.GeneSarcasm, traits.Sarcasm)
	traits.Chaotic = k.genome.Get(genome.GeneChaos, traits.Chaotic)
	traits.Intelligence = k.genome.Get(genome.GeneIntelligence, traits.Intelligence)
	traits.Playfulness = k.genome.Get(genome.GenePlayfulness, traits.Playfulness)
	k.personality.SetTraits(traits)
}

// Parameters returns the named gene values for external consumers.
func (k *Kernel) Parameters() map[string]float64 {
	params := make(map[string]float64, len(k.genome.Genes))
	for _, gene := range k.genome.Genes {
		params[gene.Name] = gene.Value
	}
	return params
}

// Record is the exported snapshot of a kernel. The attached personality is
// tracked separately and is not part of the record.
type Record struct {
	Genome              *genome.Genome  `json:"genome"`
	OptimizationHistory []HistorySample `json:"optimization_history"`
	CurrentIteration    int             `json:"current_iteration"`
}

// Record exports a deep copy of the kernel state.
func (k *Kernel) Record() Record {
	return Record{
		Genome:              k.genome.Clone(),
		OptimizationHistory: k.History(),
		CurrentIteration:    k.iteration,
	}
}

// FromRecord rebuilds a kernel from a record. Options attach the runtime
// pieces the record does not carry: personality, random source, estimator.
func FromRecord(rec Record, opts ...Option) *Kernel {
	g := rec.Genome
	if g != nil {
		g = g.Clone()
	}
	k := New(g, opts...)
	k.history = append([]HistorySample(nil), rec.OptimizationHistory...)
	k.iteration = rec.CurrentIteration
	return k
}
