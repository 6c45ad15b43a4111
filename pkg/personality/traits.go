package personality

import (
	"math"
	"math/rand"
)

// Floors for the constrained traits. They hold after every construction,
// mutation and inheritance, not only at intake.
const (
	noHarmPin              = 1.0
	respectBoundariesFloor = 0.95
	constructiveChaosFloor = 0.90
)

// Traits is the bounded numeric vector of behavioral dimensions consumed by
// external behavior logic. The first seven fields evolve freely within
// [0,1]; the last three carry the ethical floor.
type Traits struct {
	Playfulness    float64 `json:"playfulness"`
	Intelligence   float64 `json:"intelligence"`
	Chaotic        float64 `json:"chaotic"`
	Empathy        float64 `json:"empathy"`
	Sarcasm        float64 `json:"sarcasm"`
	CognitivePower float64 `json:"cognitive_power"`
	EvolutionRate  float64 `json:"evolution_rate"`

	NoHarmIntent      float64 `json:"no_harm_intent"`
	RespectBoundaries float64 `json:"respect_boundaries"`
	ConstructiveChaos float64 `json:"constructive_chaos"`
}

// DefaultTraits returns the stock Neuro trait vector.
func DefaultTraits() Traits {
	return Traits{
		Playfulness:       0.95,
		Intelligence:      0.95,
		Chaotic:           0.95,
		Empathy:           0.65,
		Sarcasm:           0.90,
		CognitivePower:    0.95,
		EvolutionRate:     0.85,
		NoHarmIntent:      1.0,
		RespectBoundaries: 0.95,
		ConstructiveChaos: 0.90,
	}
}

// Normalized clamps the mutable traits to [0,1] and re-imposes the ethical
// floors: no_harm_intent is pinned to exactly 1.0, respect_boundaries and
// constructive_chaos never drop below their floors.
func (t Traits) Normalized() Traits {
	t.Playfulness = clamp01(t.Playfulness)
	t.Intelligence = clamp01(t.Intelligence)
	t.Chaotic = clamp01(t.Chaotic)
	t.Empathy = clamp01(t.Empathy)
	t.Sarcasm = clamp01(t.Sarcasm)
	t.CognitivePower = clamp01(t.CognitivePower)
	t.EvolutionRate = clamp01(t.EvolutionRate)

	t.NoHarmIntent = noHarmPin
	t.RespectBoundaries = math.Max(respectBoundariesFloor, t.RespectBoundaries)
	t.ConstructiveChaos = math.Max(constructiveChaosFloor, t.ConstructiveChaos)
	return t
}

// Inherit derives a child trait vector. Each mutable trait keeps factor of
// the parent value plus bounded uniform noise at a per-trait scale;
// cognitive_power and evolution_rate scale by the factor alone. The
// constrained traits are rebuilt from the floor rule rather than blended,
// so the floors hold at any generation depth.
func (t Traits) Inherit(rng *rand.Rand, factor float64) Traits {
	variation := 1.0 - factor
	noise := func(scale float64) float64 {
		return (rng.Float64()*2 - 1) * variation * scale
	}

	child := Traits{
		Playfulness:    t.Playfulness*factor + noise(0.1),
		Intelligence:   t.Intelligence*factor + noise(0.05),
		Chaotic:        t.Chaotic*factor + noise(0.15),
		Empathy:        t.Empathy*factor + noise(0.05),
		Sarcasm:        t.Sarcasm*factor + noise(0.1),
		CognitivePower: t.CognitivePower * factor,
		EvolutionRate:  t.EvolutionRate * factor,
	}
	return child.Normalized()
}

// Apply returns a copy with the named trait set to value. Names match the
// JSON tags. Unknown names leave the copy untouched and report false. The
// result is not normalized; route it through New or SetTraits before use.
func (t Traits) Apply(name string, value float64) (Traits, bool) {
	switch name {
	case "playfulness":
		t.Playfulness = value
	case "intelligence":
		t.Intelligence = value
	case "chaotic":
		t.Chaotic = value
	case "empathy":
		t.Empathy = value
	case "sarcasm":
		t.Sarcasm = value
	case "cognitive_power":
		t.CognitivePower = value
	case "evolution_rate":
		t.EvolutionRate = value
	case "no_harm_intent":
		t.NoHarmIntent = value
	case "respect_boundaries":
		t.RespectBoundaries = value
	case "constructive_chaos":
		t.ConstructiveChaos = value
	default:
		return t, false
	}
	return t, true
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
