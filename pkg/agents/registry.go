// Package agents tracks logical agents and their evolving state. A
// Registry is an explicit, caller-owned map from agent identifier to the
// kernel/personality pair bound to it; Derive spawns subordinate agents
// whose state is inherited from a registered parent.
package agents

import (
	"sort"
	"sync"
	"time"

	"github.com/cogpy/agent-neuro/pkg/errors"
	"github.com/cogpy/agent-neuro/pkg/kernel"
	"github.com/cogpy/agent-neuro/pkg/personality"
)

// Binding pairs a logical agent's kernel with its personality. The
// personality is optional; kernels can run detached.
type Binding struct {
	Kernel      *kernel.Kernel
	Personality *personality.Personality
}

// Registry is an ownership map from agent identifier to binding. Construct
// one per owner; there is no process-wide instance. Safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]*Binding
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]*Binding)}
}

// Attach binds an agent identifier to its state, replacing any previous
// binding under the same identifier.
func (r *Registry) Attach(id string, b *Binding) error {
	if id == "" {
		return errors.New(errors.InvalidInput, "empty agent identifier")
	}
	if b == nil || b.Kernel == nil {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "binding must carry a kernel"),
			errors.Fields{"agent_id": id})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[id] = b
	return nil
}

// Lookup returns the binding attached to the identifier.
func (r *Registry) Lookup(id string) (*Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bindings[id]
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.ResourceNotFound, "agent not registered"),
			errors.Fields{
				"agent_id":    id,
				"access_time": time.Now().UTC(),
			})
	}
	return b, nil
}

// Detach removes the binding.
func (r *Registry) Detach(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bindings[id]; !ok {
		return errors.WithFields(
			errors.New(errors.ResourceNotFound, "agent not registered"),
			errors.Fields{
				"agent_id":    id,
				"access_time": time.Now().UTC(),
			})
	}
	delete(r.bindings, id)
	return nil
}

// IDs returns the registered identifiers in lexical order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.bindings))
	for id := range r.bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
