package agents

import (
	"context"
	"math/rand"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/genome"
	"github.com/cogpy/agent-neuro/pkg/kernel"
	"github.com/cogpy/agent-neuro/pkg/logging"
	"github.com/cogpy/agent-neuro/pkg/personality"
)

const defaultInheritanceFactor = 0.7

// DeriveOptions tunes subordinate derivation.
type DeriveOptions struct {
	// InheritanceFactor controls how strongly the child personality
	// follows the parent's. Out-of-range values fall back to 0.7.
	InheritanceFactor float64
	// Overrides sets named traits on the child after inheritance. Keys
	// match the trait JSON tags; unknown keys are skipped with a warning.
	// Values pass through the usual normalization, so the ethical floors
	// cannot be undercut. Traits mirrored from the genome are re-synced
	// after derivation and win over overrides.
	Overrides map[string]float64
}

// Derive spawns a subordinate agent from a registered parent: the child
// personality inherits from the parent's, the child genome crosses the
// parent genome with a fresh default genome, and the new binding is
// registered under childID. The parent binding is left untouched. The
// existence check and the registration are two steps, so concurrent Derive
// calls sharing a childID race.
func Derive(reg *Registry, parentID, childID string, rng *rand.Rand, opts DeriveOptions) (*Binding, error) {
	parent, err := reg.Lookup(parentID)
	if err != nil {
		return nil, err
	}

	if _, err := reg.Lookup(childID); err == nil {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "child identifier already registered"),
			errors.Fields{"agent_id": childID})
	}

	factor := opts.InheritanceFactor
	if factor <= 0 || factor > 1 {
		factor = defaultInheritanceFactor
	}

	ctx := logging.WithAgentID(context.Background(), childID)
	logger := logging.GetLogger()

	var childPersonality *personality.Personality
	if parent.Personality != nil {
		childPersonality = parent.Personality.Inherit(rng, factor)

		traits := childPersonality.Traits()
		for name, value := range opts.Overrides {
			applied, ok := traits.Apply(name, value)
			if !ok {
				logger.Warn(ctx, "skipping unknown trait override %q", name)
				continue
			}
			traits = applied
		}
		childPersonality.SetTraits(traits)
	} else if len(opts.Overrides) > 0 {
		logger.Warn(ctx, "trait overrides ignored: parent %q has no personality", parentID)
	}

	childGenome, err := parent.Kernel.Genome().Crossover(rng, genome.Default())
	if err != nil {
		return nil, err
	}

	kernelOpts := []kernel.Option{
		kernel.WithRand(rng),
		kernel.WithEstimator(parent.Kernel.Estimator()),
	}
	if childPersonality != nil {
		kernelOpts = append(kernelOpts, kernel.WithPersonality(childPersonality))
	}
	childKernel := kernel.New(childGenome, kernelOpts...)
	childKernel.SyncTraits()

	binding := &Binding{Kernel: childKernel, Personality: childPersonality}
	if err := reg.Attach(childID, binding); err != nil {
		return nil, err
	}

	logger.Info(ctx, "derived subordinate from %q (inheritance factor %.2f)", parentID, factor)

	return binding, nil
}
