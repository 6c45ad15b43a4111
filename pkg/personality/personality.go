// Package personality implements the constrained behavioral trait vector
// and its emotional-state overlay. Trait vectors are bounded, carry an
// enforced ethical floor on three dimensions, and support bounded stochastic
// inheritance for derived agents.
package personality

import (
	"math"
	"math/rand"
)

// Personality wraps a trait vector with emotional state and evolution
// counters. Every write path to the traits runs normalization, so the
// ethical floors cannot be bypassed from outside.
type Personality struct {
	traits  Traits
	emotion EmotionalState

	transcendCount      int
	evolutionGeneration int
}

// New wraps the given traits after normalization.
func New(traits Traits) *Personality {
	return &Personality{
		traits:  traits.Normalized(),
		emotion: NeutralState(),
	}
}

// NewDefault builds the stock Neuro personality.
func NewDefault() *Personality {
	return New(DefaultTraits())
}

// Traits returns a copy of the current trait vector.
func (p *Personality) Traits() Traits {
	return p.traits
}

// SetTraits replaces the trait vector, normalizing on the way in.
func (p *Personality) SetTraits(t Traits) {
	p.traits = t.Normalized()
}

// Emotion returns the current emotional state.
func (p *Personality) Emotion() EmotionalState {
	return p.emotion
}

// UpdateEmotion shifts the emotional state in response to an event. Unknown
// events leave the agent neutral; intensity is capped at 1.0.
func (p *Personality) UpdateEmotion(event string, intensity float64, duration int) {
	emotion, ok := emotionForEvent[event]
	if !ok {
		emotion = "neutral"
	}
	p.emotion = EmotionalState{
		Type:      emotion,
		Intensity: math.Min(1.0, intensity),
		Duration:  duration,
	}
}

// DecayEmotion ages the current emotion one step.
func (p *Personality) DecayEmotion(rate float64) {
	p.emotion.Decay(rate)
}

// ShouldAddChaos decides whether to inject chaotic behavior. The chaotic
// trait scales the base probability, amplified when playful (x1.2) or
// frustrated (x1.4).
func (p *Personality) ShouldAddChaos(rng *rand.Rand, baseProbability float64) bool {
	chaosFactor := p.traits.Chaotic
	switch p.emotion.Type {
	case "playful":
		chaosFactor *= 1.2
	case "frustrated":
		chaosFactor *= 1.4
	}
	return rng.Float64() < baseProbability*chaosFactor
}

// Action is a proposed behavior submitted for scoring.
type Action struct {
	Name       string
	CausesHarm bool
}

// ScoreAction ranks an action by weighted entertainment, strategic and chaos
// value, boosted when the matching trait dominates. Harmful actions score
// zero no matter what.
func (p *Personality) ScoreAction(action Action, entertainment, strategic, chaos float64) float64 {
	if action.CausesHarm {
		return 0.0 // Hard veto
	}

	fitness := 0.3*entertainment + 0.4*strategic + 0.3*chaos

	if p.traits.Playfulness > 0.8 {
		fitness += 0.1 * entertainment
	}
	if p.traits.Chaotic > 0.9 {
		fitness += 0.15 * chaos
	}
	if p.traits.Intelligence > 0.9 {
		fitness += 0.1 * strategic
	}

	return math.Min(1.0, fitness)
}

// CommentaryStyle maps the current emotion onto a commentary register.
func (p *Personality) CommentaryStyle() string {
	switch p.emotion.Type {
	case "excited":
		return "enthusiastic"
	case "sarcastic":
		return "sarcastic"
	case "frustrated":
		return "snarky"
	case "triumphant":
		return "boastful"
	case "playful":
		return "teasing"
	default:
		return "normal"
	}
}

// Evolve reinforces the personality after a fitness improvement. Significant
// improvements advance the evolution generation and grow cognitive power.
func (p *Personality) Evolve(fitnessImprovement float64) {
	if fitnessImprovement > 0.05 {
		p.evolutionGeneration++
		p.traits.CognitivePower = math.Min(1.0, p.traits.CognitivePower+0.01)
	}
}

// RecordTranscend bumps the transcend counter.
func (p *Personality) RecordTranscend() {
	p.transcendCount++
}

// TranscendCount reports how many times the agent has transcended.
func (p *Personality) TranscendCount() int {
	return p.transcendCount
}

// EvolutionGeneration reports how many significant improvements the
// personality has absorbed.
func (p *Personality) EvolutionGeneration() int {
	return p.evolutionGeneration
}

// Inherit derives a child personality: traits via Traits.Inherit, a fresh
// neutral emotional state, counters zeroed. The child is always a new
// instance.
func (p *Personality) Inherit(rng *rand.Rand, factor float64) *Personality {
	return New(p.traits.Inherit(rng, factor))
}

// Record is the exported snapshot of a personality.
type Record struct {
	Traits              Traits         `json:"personality"`
	EmotionalState      EmotionalState `json:"emotional_state"`
	TranscendCount      int            `json:"transcend_count"`
	EvolutionGeneration int            `json:"evolution_generation"`
}

// Record exports the personality state.
func (p *Personality) Record() Record {
	return Record{
		Traits:              p.traits,
		EmotionalState:      p.emotion,
		TranscendCount:      p.transcendCount,
		EvolutionGeneration: p.evolutionGeneration,
	}
}

// FromRecord rebuilds a personality from a record. Traits normalize on the
// way in, so imported state cannot undercut the floors.
func FromRecord(rec Record) *Personality {
	p := New(rec.Traits)
	if rec.EmotionalState.Type != "" {
		p.emotion = rec.EmotionalState
	}
	p.transcendCount = rec.TranscendCount
	p.evolutionGeneration = rec.EvolutionGeneration
	return p
}
