package kernel

import (
	"math"
	"math/rand"
	"time"
)

const defaultEstimatorSigma = 0.05

// FitnessEstimator predicts the fitness of a candidate kernel during
// self-optimization. The incumbent argument is the best fitness found so
// far, which cheap estimators can use as an anchor.
type FitnessEstimator interface {
	Estimate(candidate *Kernel, incumbent float64) float64
}

// GaussianEstimator simulates evaluation by jittering the incumbent fitness
// with Gaussian noise and clamping to [0, 1]. It is the default search
// heuristic when no real evaluation is available.
type GaussianEstimator struct {
	sigma float64
	rng   *rand.Rand
}

// NewGaussianEstimator builds an estimator with the given noise width.
// A non-positive sigma falls back to the default 0.05; a nil rng gets a
// time-seeded source.
func NewGaussianEstimator(sigma float64, rng *rand.Rand) *GaussianEstimator {
	if sigma <= 0 {
		sigma = defaultEstimatorSigma
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GaussianEstimator{sigma: sigma, rng: rng}
}

// Estimate returns incumbent + N(0, sigma), clamped to [0, 1].
func (e *GaussianEstimator) Estimate(_ *Kernel, incumbent float64) float64 {
	estimated := incumbent + e.rng.NormFloat64()*e.sigma
	return math.Max(0.0, math.Min(1.0, estimated))
}

// MetricsEstimator scores candidates against real measurements pulled from
// Source, wiring live evaluation into the self-optimization loop. The score
// lands in the candidate's history as a side effect of EvaluateFitness.
type MetricsEstimator struct {
	Source func(candidate *Kernel) Metrics
}

// Estimate runs a full fitness evaluation on the candidate.
func (e *MetricsEstimator) Estimate(candidate *Kernel, _ float64) float64 {
	return candidate.EvaluateFitness(e.Source(candidate))
}
