// Package agentneuro is an evolutionary optimization engine for agent
// consciousness kernels.
//
// Agent-Neuro models an agent's tunable behavior as a genome of bounded
// parameters, scores that genome against observed performance metrics, and
// improves it through population evolution and estimator-guided
// self-optimization. It focuses on making it easy to:
//
//  1. Define consciousness parameters as typed, range-clamped genes
//  2. Evolve populations with elitism, crossover and mutation
//  3. Blend evolved parameters with personality traits and emotional state
//  4. Persist and restore complete agent states across processes
//
// Key Components:
//
//   - Genome: The genetic substrate. Genes carry a kind (coefficient,
//     threshold, probability, operator, structure), a value with hard
//     [min, max] bounds, and a per-gene mutation rate. Genomes mutate with
//     Gaussian perturbation, cross over gene-by-gene with a uniform coin
//     flip, and track lineage through parent ids and generation counters.
//
//   - Kernel: A consciousness kernel wraps one genome and turns metric
//     readings (success rate, entertainment, chaos level, transcend rate)
//     into a single fitness score. Kernels reproduce through genome
//     crossover plus personality inheritance, and SelfOptimize hill-climbs
//     the genome against a pluggable fitness Estimator.
//
//   - Personality: Trait vectors (playfulness, sarcasm, chaos and friends)
//     with pinned safety floors, transient emotional state driven by
//     events, chaos-injection gating, and a hard veto on harmful actions.
//     Traits inherit to offspring with bounded noise and evolve as fitness
//     improves.
//
//   - Agents: A caller-owned Registry maps logical agent identifiers to
//     kernel/personality bindings, and Derive spawns subordinate agents
//     whose genome and traits inherit from a registered parent.
//
//   - Snapshot: Captures a binding into a serializable State and stores it
//     in memory or SQLite. Restored agents resume with their genome,
//     traits, emotion and iteration counters intact.
//
//   - Config: YAML configuration with defaults, merge-on-load and
//     validator-backed field and cross-field checks.
//
//   - Datasets: Parquet-backed metrics logs so recorded agent performance
//     can be replayed as the fitness signal for offline evolution runs.
//
// Example Usage:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "math/rand"
//
//	    "github.com/cogpy/agent-neuro/pkg/kernel"
//	    "github.com/cogpy/agent-neuro/pkg/personality"
//	)
//
//	func main() {
//	    ctx := context.Background()
//	    rng := rand.New(rand.NewSource(42))
//
//	    // Spawn a population of default kernels with personalities.
//	    population := make([]*kernel.Kernel, 8)
//	    for i := range population {
//	        population[i] = kernel.NewDefault(
//	            kernel.WithPersonality(personality.NewDefault()),
//	            kernel.WithRand(rng),
//	        )
//	    }
//
//	    // Metrics normally come from live agent telemetry or a recorded
//	    // parquet log (pkg/datasets); a fixed sample works for a demo.
//	    source := func(k *kernel.Kernel) kernel.Metrics {
//	        return kernel.Metrics{
//	            kernel.MetricSuccessRate:   0.85,
//	            kernel.MetricEntertainment: 0.92,
//	            kernel.MetricChaosLevel:    0.75,
//	            kernel.MetricTranscendRate: 0.30,
//	        }
//	    }
//
//	    evolver := kernel.NewEvolver(kernel.EvolverConfig{
//	        Generations:  10,
//	        MutationRate: 0.15,
//	        EliteSize:    2,
//	        Seed:         42,
//	        Concurrency:  4,
//	    })
//
//	    if err := evolver.EvaluatePopulation(ctx, population, source); err != nil {
//	        log.Fatal(err)
//	    }
//	    evolved, err := evolver.Evolve(ctx, population)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := evolver.EvaluatePopulation(ctx, evolved, source); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    best := evolved[0]
//	    for _, k := range evolved[1:] {
//	        if k.Genome().Fitness > best.Genome().Fitness {
//	            best = k
//	        }
//	    }
//
//	    // Hill-climb the winner's genome against the fitness estimator.
//	    optimized := best.SelfOptimize(25)
//	    optimized.SyncTraits()
//
//	    fmt.Printf("best fitness: %.4f\n", optimized.Genome().Fitness)
//	}
//
// Working with Personalities:
//
// Personalities overlay the genome with trait-driven behavior. Emotional
// events shift the transient state, chaos injection is gated by traits and
// mood, and action scoring refuses harmful actions outright:
//
//	p := personality.NewDefault()
//	p.UpdateEmotion(personality.EventSuccess, 0.9, 5)
//
//	score := p.ScoreAction(personality.Action{Name: "deploy_prank"}, 0.9, 0.4, 0.8)
//	vetoed := p.ScoreAction(personality.Action{Name: "rm_rf", CausesHarm: true}, 1, 1, 1) // 0.0
//
//	if p.ShouldAddChaos(rng, 0.3) {
//	    fmt.Println("chaos incoming, style:", p.CommentaryStyle())
//	}
//
// Persisting Agents:
//
// Registered agents snapshot to a Store and restore with full state:
//
//	registry := agents.NewRegistry()
//	_ = registry.Attach("neuro-001", &agents.Binding{Kernel: k, Personality: p})
//
//	store, err := snapshot.NewSQLiteStore("agents.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	binding, _ := registry.Lookup("neuro-001")
//	if err := store.Save(ctx, snapshot.Capture("neuro-001", binding)); err != nil {
//	    log.Fatal(err)
//	}
//
// Command Line:
//
// The neuroevolve command runs the full cycle end to end: it loads YAML
// configuration, spawns a population, scores it against synthesized or
// replayed metrics, evolves, self-optimizes the winner, derives a
// subordinate agent and snapshots every agent state:
//
//	neuroevolve -config neuro.yaml -generations 20 -db agents.db -metrics run.parquet
//
// For more detail see the package documentation under pkg/ and the design
// notes in the repository:
//
// https://github.com/cogpy/agent-neuro
package agentneuro
