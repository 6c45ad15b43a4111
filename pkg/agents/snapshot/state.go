// Package snapshot persists and restores full agent state: the kernel
// record and the personality record bound to an agent identifier. Stores
// implement a small keyed interface; the SQLite implementation survives
// process restarts, the in-memory one backs tests and ephemeral runs.
package snapshot

import (
	"math/rand"

	"github.com/cogpy/agent-neuro/pkg/agents"
	"github.com/cogpy/agent-neuro/pkg/kernel"
	"github.com/cogpy/agent-neuro/pkg/personality"
)

// State is the exported snapshot of one agent. Both records are optional:
// an agent may run without a personality, and exports from external tools
// may carry personality state alone.
type State struct {
	AgentID     string              `json:"agent_id"`
	Kernel      *kernel.Record      `json:"kernel,omitempty"`
	Personality *personality.Record `json:"personality,omitempty"`
}

// Capture snapshots a binding's full state under the given identifier.
func Capture(agentID string, b *agents.Binding) *State {
	state := &State{AgentID: agentID}
	if b == nil {
		return state
	}
	if b.Kernel != nil {
		rec := b.Kernel.Record()
		state.Kernel = &rec
	}
	if b.Personality != nil {
		rec := b.Personality.Record()
		state.Personality = &rec
	}
	return state
}

// Restore rebuilds a binding from the state. A missing kernel record
// yields a fresh default kernel; a missing personality record yields a
// detached kernel. The restored personality is attached to the restored
// kernel, mirroring a live binding.
func (s *State) Restore(rng *rand.Rand) *agents.Binding {
	var p *personality.Personality
	if s.Personality != nil {
		p = personality.FromRecord(*s.Personality)
	}

	var opts []kernel.Option
	if rng != nil {
		opts = append(opts, kernel.WithRand(rng))
	}
	if p != nil {
		opts = append(opts, kernel.WithPersonality(p))
	}

	var k *kernel.Kernel
	if s.Kernel != nil {
		k = kernel.FromRecord(*s.Kernel, opts...)
	} else {
		k = kernel.New(nil, opts...)
	}

	return &agents.Binding{Kernel: k, Personality: p}
}
