package jobs

import (
	"context"

	"github.com/google/uuid"
)

// Info provides structured access to a task instance's identity and state.
// The executor reads identity through this interface and owns every status
// and result mutation once Execute has been called.
type Info interface {
	// Path identifies the task type, e.g. "examples.Hello". It is used as
	// the dispatch entrypoint and in lifecycle events.
	Path() string
	// UUID uniquely identifies the task instance. Assigned once at
	// construction, immutable thereafter.
	UUID() uuid.UUID
	Status() Status
	SetStatus(Status)
	Result() Result
	SetResult(Result)
	// Params returns the caller-supplied named inputs. Immutable after
	// construction.
	Params() map[string]any
	// Metadata returns opaque caller-defined context, passed through
	// untouched by the executor.
	Metadata() map[string]any
}

// Task is a runnable unit of work: identity and state access plus the run
// logic the executor invokes exactly once per execution. Run receives a fresh
// result seeded with the task's identifier so it can augment rather than
// replace the outcome accumulated so far.
type Task interface {
	Info
	Run(ctx context.Context, result Result) (Result, error)
}

// ParamSpec declares the parameter names a task requires. Tasks without the
// interface, or returning an empty list, skip validation entirely.
type ParamSpec interface {
	RequiredParams() []string
}

// ParamChecker replaces the default required-parameter validation with task
// supplied logic. Composite tasks use it to validate their children.
type ParamChecker interface {
	CheckParams() error
}

// Optional lifecycle stages. The executor asserts each interface and invokes
// the stage in order: PostInit, PreRun, Run, PostRun, OnSuccess. A failure
// from any stage routes through OnError and the failure path.
type (
	// PostIniter runs after validation, before any run preparation.
	PostIniter interface {
		PostInit(ctx context.Context, result Result) (Result, error)
	}
	// PreRunner runs immediately before the transition to Running.
	PreRunner interface {
		PreRun(ctx context.Context, result Result) (Result, error)
	}
	// PostRunner runs after a successful Run, before the terminal transition.
	PostRunner interface {
		PostRun(ctx context.Context, result Result) (Result, error)
	}
	// SuccessHandler observes the transition to Success and may augment the
	// final result.
	SuccessHandler interface {
		OnSuccess(ctx context.Context, result Result) (Result, error)
	}
	// ErrorHandler observes the transition to Failed. Its returned result is
	// folded into the failure result; its error, if any, is ignored so the
	// failure path cannot itself fail.
	ErrorHandler interface {
		OnError(ctx context.Context, taskErr *Error, result Result) (Result, error)
	}
)

// Base is an embeddable implementation of Info with a declared
// required-parameter contract. Concrete tasks embed a *Base and add Run:
//
//	type Hello struct {
//		*jobs.Base
//	}
//
//	func NewHello(user string) *Hello {
//		return &Hello{Base: jobs.NewBase("examples.Hello",
//			jobs.WithRequired("user"),
//			jobs.WithParams(map[string]any{"user": user}),
//		)}
//	}
type Base struct {
	path     string
	id       uuid.UUID
	status   Status
	result   Result
	params   map[string]any
	metadata map[string]any
	required []string
}

// BaseOption configures a task base under construction.
type BaseOption func(*Base)

// WithParams supplies the task's named input values.
func WithParams(params map[string]any) BaseOption {
	return func(b *Base) {
		b.params = params
	}
}

// WithMetadata supplies opaque caller-defined context data.
func WithMetadata(metadata map[string]any) BaseOption {
	return func(b *Base) {
		b.metadata = metadata
	}
}

// WithRequired declares the parameter names validation checks, in the order
// given.
func WithRequired(names ...string) BaseOption {
	return func(b *Base) {
		b.required = names
	}
}

// WithID overrides the generated task identifier.
func WithID(id uuid.UUID) BaseOption {
	return func(b *Base) {
		b.id = id
	}
}

// FromMessage seeds identity, parameters, metadata and the initial result
// from a received message envelope.
func FromMessage(m Message) BaseOption {
	return func(b *Base) {
		b.id = m.UUID
		b.params = m.Params
		b.metadata = m.Metadata
		b.result = m.Result
	}
}

// NewBase builds a task base with a random identifier, Pending status, and an
// empty result tied to that identifier.
func NewBase(path string, opts ...BaseOption) *Base {
	b := &Base{
		path:   path,
		id:     uuid.New(),
		status: StatusPending,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.result.UUID == uuid.Nil {
		b.result = Result{UUID: b.id}
	}
	return b
}

func (b *Base) Path() string             { return b.path }
func (b *Base) UUID() uuid.UUID          { return b.id }
func (b *Base) Status() Status           { return b.status }
func (b *Base) SetStatus(s Status)       { b.status = s }
func (b *Base) Result() Result           { return b.result }
func (b *Base) SetResult(r Result)       { b.result = r }
func (b *Base) Params() map[string]any   { return b.params }
func (b *Base) Metadata() map[string]any { return b.metadata }

// RequiredParams returns the names declared with WithRequired.
func (b *Base) RequiredParams() []string { return b.required }

// Param looks up a single named input.
func (b *Base) Param(name string) (any, bool) {
	v, ok := b.params[name]
	return v, ok
}

// SearchResult looks up a key in the accumulated result's return value map.
func (b *Base) SearchResult(key string) (any, bool) {
	v, ok := b.result.Retval[key]
	return v, ok
}

// NewResult builds an empty result carrying the task's identifier, the seed
// every lifecycle stage receives.
func (b *Base) NewResult() Result {
	return Result{UUID: b.id}
}
