package jobs

import (
	"context"

	"github.com/google/uuid"
)

// Event describes a point in a task's execution lifecycle. Path and UUID
// identify the task; the remaining fields are populated per event:
// transitions carry From/To, run-end and execution-end carry the result and,
// on failure, the error.
type Event struct {
	Path   string
	UUID   uuid.UUID
	From   Status
	To     Status
	Result Result
	Err    error
}

// Label renders the task identity as path[uuid], the form used in logs.
func (e Event) Label() string {
	return e.Path + "[" + e.UUID.String() + "]"
}

// HookFunc is invoked for lifecycle notifications.
type HookFunc func(context.Context, Event)

// Hooks aggregates optional lifecycle callbacks. The executor emits OnStart
// once before validation, OnTransition for every status edge taken,
// OnRunEnd when the run phase settles (success or failure), and OnEnd with
// the final result. Hooks are an observability side channel: they must not
// mutate the task.
type Hooks struct {
	OnStart      HookFunc
	OnTransition HookFunc
	OnRunEnd     HookFunc
	OnEnd        HookFunc
}

// Merge combines two hook sets, running the receiver first.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStart:      chainHooks(h.OnStart, other.OnStart),
		OnTransition: chainHooks(h.OnTransition, other.OnTransition),
		OnRunEnd:     chainHooks(h.OnRunEnd, other.OnRunEnd),
		OnEnd:        chainHooks(h.OnEnd, other.OnEnd),
	}
}

func chainHooks(first, second HookFunc) HookFunc {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	default:
		return func(ctx context.Context, event Event) {
			first(ctx, event)
			second(ctx, event)
		}
	}
}
