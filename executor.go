package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Executor drives task instances through the execution lifecycle:
// validate, transition to Running, run, transition to a terminal status,
// finalize the result. One executor is safe to reuse across task instances;
// a single task instance is single-shot and single-owner.
type Executor struct {
	hooks Hooks
}

// ExecutorOption configures an executor.
type ExecutorOption func(*Executor)

// WithHooks registers lifecycle hooks, chained after any already present.
func WithHooks(h Hooks) ExecutorOption {
	return func(e *Executor) {
		e.hooks = e.hooks.Merge(h)
	}
}

// NewExecutor builds an executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute is a convenience for driving a single task with a throwaway
// executor.
func Execute(ctx context.Context, task Task, opts ...ExecutorOption) Result {
	return NewExecutor(opts...).Execute(ctx, task)
}

// Execute drives the task to a terminal status and returns the final result.
//
// Every failure mode, including panics in the task's run logic, is translated
// into a Failed terminal status and an error-carrying result; Execute never
// panics and has no error return. The task body is never invoked when
// required-parameter validation fails.
//
// A task instance is single-shot: invoking Execute again on an instance that
// already reached a terminal status yields a failure result and leaves the
// terminal status untouched.
func (e *Executor) Execute(ctx context.Context, task Task) Result {
	if task == nil {
		return ResultFromError(ErrNilTask)
	}
	e.emit(ctx, e.hooks.OnStart, e.event(task))

	result, err := e.runStages(ctx, task)
	if err != nil {
		return e.fail(ctx, task, err)
	}

	end := e.event(task)
	end.Result = result
	e.emit(ctx, e.hooks.OnEnd, end)
	return result
}

// runStages walks the ordered lifecycle stages, threading partial results
// onto the task instance. Any returned error is routed through the failure
// path by Execute.
func (e *Executor) runStages(ctx context.Context, task Task) (Result, error) {
	if err := CheckRequiredParams(task); err != nil {
		return Result{}, err
	}

	if stage, ok := task.(PostIniter); ok {
		out, err := stage.PostInit(ctx, e.seed(task))
		if err != nil {
			return Result{}, err
		}
		e.apply(task, out)
	}
	if stage, ok := task.(PreRunner); ok {
		out, err := stage.PreRun(ctx, e.seed(task))
		if err != nil {
			return Result{}, err
		}
		e.apply(task, out)
	}

	if err := e.transition(ctx, task, StatusRunning); err != nil {
		return Result{}, err
	}

	out, err := e.runTask(ctx, task)
	if err != nil {
		return Result{}, err
	}
	e.apply(task, out)

	runEnd := e.event(task)
	runEnd.Result = task.Result()
	e.emit(ctx, e.hooks.OnRunEnd, runEnd)

	if stage, ok := task.(PostRunner); ok {
		out, err := stage.PostRun(ctx, e.seed(task))
		if err != nil {
			return Result{}, err
		}
		e.apply(task, out)
	}
	if stage, ok := task.(SuccessHandler); ok {
		out, err := stage.OnSuccess(ctx, e.seed(task))
		if err != nil {
			return Result{}, err
		}
		e.apply(task, out)
	}

	if err := e.transition(ctx, task, StatusSuccess); err != nil {
		return Result{}, err
	}
	return task.Result(), nil
}

// runTask invokes the task's run logic exactly once, converting a panic into
// a structured error so no failure escapes the executor.
func (e *Executor) runTask(ctx context.Context, task Task) (out Result, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = NewError(KindPanic, 500, fmt.Sprintf("panic in task %s: %v", task.Path(), recovered))
		}
	}()
	return task.Run(ctx, e.seed(task))
}

// fail converts err into the terminal failure result: emit the run-end
// outcome, take the edge to Failed when one exists, fold the error into the
// instance result, and give an ErrorHandler task a chance to augment it.
func (e *Executor) fail(ctx context.Context, task Task, err error) Result {
	taskErr := AsError(err)

	runEnd := e.event(task)
	runEnd.Result = task.Result()
	runEnd.Err = taskErr
	e.emit(ctx, e.hooks.OnRunEnd, runEnd)

	// Already-terminal instances keep their status; the error still lands in
	// the returned result.
	if task.Status().CanTransition(StatusFailed) {
		if terr := e.transition(ctx, task, StatusFailed); terr != nil {
			taskErr = AsError(terr)
		}
	}

	errResult := ResultFromError(taskErr)
	errResult.UUID = task.UUID()
	task.SetResult(task.Result().Merge(errResult))

	if handler, ok := task.(ErrorHandler); ok {
		if out, hookErr := handler.OnError(ctx, taskErr, e.seed(task)); hookErr == nil {
			e.apply(task, out)
		}
	}

	final := task.Result()
	end := e.event(task)
	end.Result = final
	end.Err = taskErr
	e.emit(ctx, e.hooks.OnEnd, end)
	return final
}

// transition takes a status edge, refusing illegal ones, and emits the
// status-change event for the edge taken.
func (e *Executor) transition(ctx context.Context, task Task, to Status) error {
	from := task.Status()
	if !from.CanTransition(to) {
		return NewError(KindRun, 500, fmt.Sprintf("invalid status transition %s -> %s for task %s", from, to, task.Path()))
	}
	task.SetStatus(to)

	ev := e.event(task)
	ev.From = from
	ev.To = to
	e.emit(ctx, e.hooks.OnTransition, ev)
	return nil
}

// apply folds a stage's partial result onto the task instance.
func (e *Executor) apply(task Task, out Result) {
	if out.UUID == uuid.Nil {
		out.UUID = task.UUID()
	}
	task.SetResult(task.Result().Merge(out))
}

// seed builds the empty result a lifecycle stage receives.
func (e *Executor) seed(task Task) Result {
	return Result{UUID: task.UUID()}
}

func (e *Executor) event(task Info) Event {
	return Event{Path: task.Path(), UUID: task.UUID()}
}

func (e *Executor) emit(ctx context.Context, hook HookFunc, event Event) {
	if hook != nil {
		hook(ctx, event)
	}
}
