package snapshot

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/cogpy/agent-neuro/pkg/errors"
)

// Store is a keyed snapshot repository.
type Store interface {
	// Save persists the state under its agent identifier, replacing any
	// previous snapshot for the same agent.
	Save(ctx context.Context, state *State) error

	// Load returns the snapshot for the agent.
	Load(ctx context.Context, agentID string) (*State, error)

	// List returns the identifiers of all stored snapshots.
	List(ctx context.Context) ([]string, error)

	// Delete removes the agent's snapshot.
	Delete(ctx context.Context, agentID string) error

	// Clear removes all snapshots.
	Clear(ctx context.Context) error
}

func encodeState(state *State) ([]byte, error) {
	if state == nil || state.AgentID == "" {
		return nil, errors.New(errors.InvalidInput, "snapshot state must carry an agent identifier")
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to encode snapshot"),
			errors.Fields{"agent_id": state.AgentID})
	}
	return payload, nil
}

func decodeState(agentID string, payload []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to decode snapshot"),
			errors.Fields{"agent_id": agentID})
	}
	return &state, nil
}

// InMemoryStore keeps snapshots in process memory. States are stored as
// their JSON encoding, so Save and Load have the same copy semantics as
// the SQLite store.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewInMemoryStore returns an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string][]byte)}
}

// Save implements Store.
func (s *InMemoryStore) Save(ctx context.Context, state *State) error {
	if err := errors.CheckContext(ctx, "snapshot save"); err != nil {
		return err
	}
	payload, err := encodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[state.AgentID] = payload
	return nil
}

// Load implements Store.
func (s *InMemoryStore) Load(ctx context.Context, agentID string) (*State, error) {
	if err := errors.CheckContext(ctx, "snapshot load"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	payload, ok := s.data[agentID]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.ResourceNotFound, "no snapshot for agent"),
			errors.Fields{
				"agent_id":    agentID,
				"access_time": time.Now().UTC(),
			})
	}
	return decodeState(agentID, payload)
}

// List implements Store. Identifiers come back in lexical order.
func (s *InMemoryStore) List(ctx context.Context) ([]string, error) {
	if err := errors.CheckContext(ctx, "snapshot list"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete implements Store.
func (s *InMemoryStore) Delete(ctx context.Context, agentID string) error {
	if err := errors.CheckContext(ctx, "snapshot delete"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[agentID]; !ok {
		return errors.WithFields(
			errors.New(errors.ResourceNotFound, "no snapshot for agent"),
			errors.Fields{
				"agent_id":    agentID,
				"access_time": time.Now().UTC(),
			})
	}
	delete(s.data, agentID)
	return nil
}

// Clear implements Store.
func (s *InMemoryStore) Clear(ctx context.Context) error {
	if err := errors.CheckContext(ctx, "snapshot clear"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}
