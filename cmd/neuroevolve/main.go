// Command neuroevolve runs a full evolution cycle: spawn a population of
// consciousness kernels, score them against recorded or synthesized
// metrics, evolve across generations, self-optimize the winner and persist
// agent snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cogpy/agent-neuro/pkg/agents"
	"github.com/cogpy/agent-neuro/pkg/agents/snapshot"
	"github.com/cogpy/agent-neuro/pkg/config"
	"github.com/cogpy/agent-neuro/pkg/datasets"
	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/genome"
	"github.com/cogpy/agent-neuro/pkg/kernel"
	"github.com/cogpy/agent-neuro/pkg/logging"
	"github.com/cogpy/agent-neuro/pkg/personality"
)

var titleCaser = cases.Title(language.English)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	generations := flag.Int("generations", 0, "Number of generations to evolve (overrides config)")
	populationSize := flag.Int("population", 0, "Population size (overrides config)")
	seed := flag.Int64("seed", 0, "Random seed (overrides config)")
	dbPath := flag.String("db", "", "SQLite snapshot database path (overrides config)")
	metricsPath := flag.String("metrics", "", "Parquet metrics log to replay for fitness scoring")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, errors.ValidationFailed, "invalid configuration"))
		os.Exit(1)
	}

	if *generations > 0 {
		cfg.Evolution.Generations = *generations
	}
	if *populationSize > 0 {
		cfg.Evolution.PopulationSize = *populationSize
	}
	if *seed != 0 {
		cfg.Evolution.Seed = *seed
	}
	if *dbPath != "" {
		cfg.Storage.Backend = "sqlite"
		cfg.Storage.Path = *dbPath
	}

	logLevel := cfg.Logging.Severity()
	if *verbose {
		logLevel = logging.DEBUG
	}

	output := logging.NewConsoleOutput(cfg.Logging.UseStderr, logging.WithColor(true))

	logger := logging.NewLogger(logging.Config{
		Severity: logLevel,
		Outputs:  []logging.Output{output},
	})
	logging.SetLogger(logger)

	ctx := context.Background()
	if err := run(ctx, cfg, *metricsPath); err != nil {
		logger.Error(ctx, "Evolution run failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, metricsPath string) error {
	logger := logging.GetLogger()

	seed := cfg.Evolution.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	estimator := kernel.NewGaussianEstimator(cfg.Optimizer.EstimatorSigma, rng)

	registry := agents.NewRegistry()
	population := make([]*kernel.Kernel, cfg.Evolution.PopulationSize)
	for i := range population {
		p := personality.NewDefault()
		k := kernel.NewDefault(
			kernel.WithPersonality(p),
			kernel.WithRand(rng),
			kernel.WithEstimator(estimator),
		)
		population[i] = k

		if err := registry.Attach(agentID(i), &agents.Binding{Kernel: k, Personality: p}); err != nil {
			return err
		}
	}
	logger.Info(ctx, "Spawned population of %d kernels (seed %d)", len(population), seed)

	source, err := metricsSource(ctx, rng, metricsPath)
	if err != nil {
		return err
	}

	evolver := kernel.NewEvolver(kernel.EvolverConfig{
		Generations:  cfg.Evolution.Generations,
		MutationRate: cfg.Evolution.MutationRate,
		EliteSize:    cfg.Evolution.EliteSize,
		Seed:         seed,
		Concurrency:  cfg.Evolution.Concurrency,
	})

	if err := evolver.EvaluatePopulation(ctx, population, source); err != nil {
		return err
	}
	logger.Info(ctx, "Initial best fitness %.4f", bestOf(population).Genome().Fitness)

	evolved, err := evolver.Evolve(ctx, population)
	if err != nil {
		return err
	}
	if err := evolver.EvaluatePopulation(ctx, evolved, source); err != nil {
		return err
	}

	// Rebind the evolved generation under the original agent ids.
	for i, k := range evolved {
		if err := registry.Attach(agentID(i), &agents.Binding{Kernel: k, Personality: k.Personality()}); err != nil {
			return err
		}
	}

	winnerIdx := 0
	for i, k := range evolved {
		if k.Genome().Fitness > evolved[winnerIdx].Genome().Fitness {
			winnerIdx = i
		}
	}
	winnerID := agentID(winnerIdx)
	winner := evolved[winnerIdx]
	winnerCtx := logging.WithAgentID(ctx, winnerID)

	before := winner.Genome().Fitness
	optimized := winner.SelfOptimize(cfg.Optimizer.SelfOptimizeIterations)
	optimized.SyncTraits()
	improvement := optimized.Genome().Fitness - before
	logger.Info(winnerCtx, "Self-optimization over %d iterations: fitness %.4f -> %.4f",
		cfg.Optimizer.SelfOptimizeIterations, before, optimized.Genome().Fitness)

	p := optimized.Personality()
	if improvement > 0 {
		p.UpdateEmotion(personality.EventSuccess, 0.5+improvement, 5)
		p.Evolve(improvement)
	} else {
		p.UpdateEmotion(personality.EventFailure, 0.6, 3)
	}

	if threshold := optimized.Parameters()[genome.GeneTranscend]; threshold > 0 && optimized.Genome().Fitness >= threshold {
		p.RecordTranscend()
		p.UpdateEmotion(personality.EventTranscend, 1.0, 5)
		logger.Info(winnerCtx, "Transcendence threshold %.2f crossed at fitness %.4f",
			threshold, optimized.Genome().Fitness)
	}

	if p.ShouldAddChaos(rng, cfg.Personality.ChaosBaseProbability) {
		logger.Info(winnerCtx, "Chaos injection armed, commentary style %s", p.CommentaryStyle())
	}
	p.DecayEmotion(cfg.Personality.EmotionDecayRate)

	winnerBinding := &agents.Binding{Kernel: optimized, Personality: p}
	if err := registry.Attach(winnerID, winnerBinding); err != nil {
		return err
	}

	childID := winnerID + "-sub"
	child, err := agents.Derive(registry, winnerID, childID, rng, agents.DeriveOptions{
		InheritanceFactor: cfg.Personality.InheritanceFactor,
	})
	if err != nil {
		return err
	}

	printAgentSummary(winnerID, winnerBinding)
	printAgentSummary(childID, child)

	return snapshotAll(ctx, cfg, registry)
}

func agentID(i int) string {
	return fmt.Sprintf("neuro-%03d", i+1)
}

func bestOf(population []*kernel.Kernel) *kernel.Kernel {
	best := population[0]
	for _, k := range population[1:] {
		if k.Genome().Fitness > best.Genome().Fitness {
			best = k
		}
	}
	return best
}

// metricsSource selects how kernels get scored: replayed samples from a
// recorded log when one is given, synthesized readings otherwise. Recorded
// values win over the synthesized baseline wherever the log carries them.
func metricsSource(ctx context.Context, rng *rand.Rand, metricsPath string) (func(*kernel.Kernel) kernel.Metrics, error) {
	logger := logging.GetLogger()

	synthesized := synthesizedSource(rng)
	if metricsPath == "" {
		return synthesized, nil
	}

	samples, err := datasets.LoadMetricsLog(ctx, metricsPath)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Replaying %d recorded metric samples from %s", len(samples), metricsPath)

	replay := datasets.ReplaySource(samples)
	return func(k *kernel.Kernel) kernel.Metrics {
		return synthesized(k).Merge(replay(k))
	}, nil
}

// synthesizedSource fabricates metric readings from the genome itself so a
// run without a recorded log still has an evolution gradient: smarter
// genomes succeed more, funnier genomes entertain more.
func synthesizedSource(rng *rand.Rand) func(*kernel.Kernel) kernel.Metrics {
	var mu sync.Mutex
	return func(k *kernel.Kernel) kernel.Metrics {
		mu.Lock()
		defer mu.Unlock()

		params := k.Parameters()
		jitter := func(v, scale float64) float64 {
			return math.Max(0.0, math.Min(1.0, v+(rng.Float64()*2-1)*scale))
		}

		return kernel.Metrics{
			kernel.MetricSuccessRate:   jitter((params[genome.GeneIntelligence]+params[genome.GeneLearningRate])/2, 0.1),
			kernel.MetricEntertainment: jitter((params[genome.GeneSarcasm]+params[genome.GenePlayfulness])/2, 0.1),
			kernel.MetricChaosLevel:    jitter(params[genome.GeneChaos], 0.05),
			kernel.MetricTranscendRate: jitter(0.1, 0.1),
		}
	}
}

func displayName(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

func printAgentSummary(id string, b *agents.Binding) {
	g := b.Kernel.Genome()
	fmt.Printf("\nAgent %s (fitness %.4f, genome generation %d)\n", id, g.Fitness, g.Generation)

	fmt.Println("  Genes:")
	params := b.Kernel.Parameters()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("    %-26s %.4f\n", displayName(name), params[name])
	}

	if b.Personality == nil {
		return
	}

	fmt.Println("  Traits:")
	traits := b.Personality.Traits()
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"playfulness", traits.Playfulness},
		{"intelligence", traits.Intelligence},
		{"chaotic", traits.Chaotic},
		{"empathy", traits.Empathy},
		{"sarcasm", traits.Sarcasm},
		{"cognitive_power", traits.CognitivePower},
		{"evolution_rate", traits.EvolutionRate},
		{"no_harm_intent", traits.NoHarmIntent},
		{"respect_boundaries", traits.RespectBoundaries},
		{"constructive_chaos", traits.ConstructiveChaos},
	} {
		fmt.Printf("    %-26s %.4f\n", displayName(row.name), row.value)
	}

	emotion := b.Personality.Emotion()
	fmt.Printf("  Emotion: %s (intensity %.2f), commentary style %s\n",
		emotion.Type, emotion.Intensity, b.Personality.CommentaryStyle())
}

func snapshotAll(ctx context.Context, cfg *config.Config, registry *agents.Registry) error {
	logger := logging.GetLogger()

	var store snapshot.Store
	switch cfg.Storage.Backend {
	case "sqlite":
		sqlStore, err := snapshot.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	default:
		store = snapshot.NewInMemoryStore()
	}

	for _, id := range registry.IDs() {
		binding, err := registry.Lookup(id)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, snapshot.Capture(id, binding)); err != nil {
			return err
		}
	}

	saved, err := store.List(ctx)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Snapshotted %d agents to %s store", len(saved), cfg.Storage.Backend)
	if cfg.Storage.Backend != "sqlite" {
		logger.Debug(ctx, "Memory snapshots are discarded at process exit; pass -db to persist")
	}

	return nil
}
