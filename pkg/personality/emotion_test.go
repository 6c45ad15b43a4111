package personality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeutralState(t *testing.T) {
	state := NeutralState()

	assert.Equal(t, "neutral", state.Type)
	assert.Equal(t, 0.5, state.Intensity)
	assert.Equal(t, 0, state.Duration)
}

func TestDecaySequence(t *testing.T) {
	state := EmotionalState{Type: "excited", Intensity: 0.9, Duration: 3}

	state.Decay(0.1)
	assert.Equal(t, "excited", state.Type)
	assert.InDelta(t, 0.8, state.Intensity, 1e-9)
	assert.Equal(t, 2, state.Duration)

	state.Decay(0.1)
	assert.Equal(t, "excited", state.Type)
	assert.InDelta(t, 0.7, state.Intensity, 1e-9)
	assert.Equal(t, 1, state.Duration)

	// Third step burns the last duration unit and resets to neutral
	state.Decay(0.1)
	assert.Equal(t, "neutral", state.Type)
	assert.Equal(t, 0.5, state.Intensity)
	assert.Equal(t, 0, state.Duration)
}

func TestDecayResetsOnLowIntensity(t *testing.T) {
	state := EmotionalState{Type: "frustrated", Intensity: 0.15, Duration: 5}

	state.Decay(0.1)

	assert.Equal(t, "neutral", state.Type)
	assert.Equal(t, 0.5, state.Intensity)
	assert.Equal(t, 4, state.Duration, "remaining duration carries over the reset")
}

func TestDecayNeverGoesNegative(t *testing.T) {
	state := EmotionalState{Type: "sarcastic", Intensity: 0.05, Duration: 2}

	state.Decay(0.5)

	// The subtraction floors at zero before the neutral reset applies
	assert.Equal(t, "neutral", state.Type)
	assert.Equal(t, 0.5, state.Intensity)
}
