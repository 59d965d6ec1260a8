package jobs

import (
	"context"
	"fmt"
	"sync"
)

// Factory builds a task instance from a received message.
type Factory func(Message) Task

// Registry maps entrypoint paths to task factories so a worker can turn
// message envelopes into runnable task instances. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds an entrypoint path to a factory.
func (r *Registry) Register(entrypoint string, factory Factory) error {
	if entrypoint == "" {
		return ErrEmptyEntrypoint
	}
	if factory == nil {
		return fmt.Errorf("jobs: nil factory for entrypoint %s", entrypoint)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[entrypoint]; exists {
		return fmt.Errorf("%w: %s", ErrEntrypointExists, entrypoint)
	}
	r.factories[entrypoint] = factory
	return nil
}

// Build instantiates the task a message addresses.
func (r *Registry) Build(m Message) (Task, error) {
	r.mu.RLock()
	factory, ok := r.factories[m.Entrypoint]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntrypoint, m.Entrypoint)
	}
	return factory(m), nil
}

// Dispatch builds the task a message addresses and executes it. An unknown
// entrypoint follows the usual failure contract: it is returned as a failure
// result, not an error.
func (r *Registry) Dispatch(ctx context.Context, e *Executor, m Message) Result {
	task, err := r.Build(m)
	if err != nil {
		result := ResultFromError(err)
		result.UUID = m.UUID
		return result
	}
	return e.Execute(ctx, task)
}
