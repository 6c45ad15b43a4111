package logging

import "context"

type contextKey string

const (
	agentIDKey    contextKey = "agent_id"
	generationKey contextKey = "generation"
)

// WithAgentID returns a context tagged with a logical agent identifier.
// Log entries written under this context carry the identifier.
func WithAgentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, agentIDKey, id)
}

// GetAgentID extracts the agent identifier from the context.
func GetAgentID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(agentIDKey).(string)
	return id, ok
}

// WithGeneration tags the context with the evolution generation in progress.
func WithGeneration(ctx context.Context, generation int) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetGeneration extracts the evolution generation from the context.
func GetGeneration(ctx context.Context) (int, bool) {
	generation, ok := ctx.Value(generationKey).(int)
	return generation, ok
}
