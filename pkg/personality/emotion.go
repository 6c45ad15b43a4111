package personality

import "math"

// Emotional event types recognized by UpdateEmotion.
const (
	EventSuccess   = "success"
	EventFailure   = "failure"
	EventTranscend = "transcend"
	EventBug       = "bug"
	EventChaos     = "chaos"
	EventLearning  = "learning"
)

var emotionForEvent = map[string]string{
	EventSuccess:   "excited",
	EventFailure:   "frustrated",
	EventTranscend: "triumphant",
	EventBug:       "sarcastic",
	EventChaos:     "playful",
	EventLearning:  "curious",
}

// EmotionalState is the transient emotion overlaying the trait vector.
type EmotionalState struct {
	Type      string  `json:"type"`
	Intensity float64 `json:"intensity"`
	Duration  int     `json:"duration"`
}

// NeutralState returns the resting emotional state.
func NeutralState() EmotionalState {
	return EmotionalState{Type: "neutral", Intensity: 0.5}
}

// Decay reduces the intensity by rate and burns one duration step. Once the
// intensity drops to 0.1 or the duration runs out, the state snaps back to
// neutral at resting intensity.
func (e *EmotionalState) Decay(rate float64) {
	e.Intensity = math.Max(0.0, e.Intensity-rate)
	if e.Duration > 0 {
		e.Duration--
	}
	if e.Intensity <= 0.1 || e.Duration <= 0 {
		e.Type = "neutral"
		e.Intensity = 0.5
	}
}
