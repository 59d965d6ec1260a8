package jobs

import (
	"context"
	"fmt"
	"testing"
)

// stubTask counts run invocations so tests can observe whether the task body
// was executed.
type stubTask struct {
	*Base
	runs  int
	runFn func(ctx context.Context, result Result) (Result, error)
}

func (s *stubTask) Run(ctx context.Context, result Result) (Result, error) {
	s.runs++
	if s.runFn == nil {
		return result, nil
	}
	return s.runFn(ctx, result)
}

type recordedEvent struct {
	kind  string
	event Event
}

func recordingHooks(events *[]recordedEvent) Hooks {
	record := func(kind string) HookFunc {
		return func(_ context.Context, e Event) {
			*events = append(*events, recordedEvent{kind: kind, event: e})
		}
	}
	return Hooks{
		OnStart:      record("start"),
		OnTransition: record("transition"),
		OnRunEnd:     record("run-end"),
		OnEnd:        record("end"),
	}
}

func TestExecuteMissingParameterFails(t *testing.T) {
	task := &stubTask{Base: NewBase("test.Hello",
		WithRequired("user"),
		WithParams(map[string]any{}),
	)}

	result := Execute(context.Background(), task)

	if task.Status() != StatusFailed {
		t.Fatalf("expected status %s, got %s", StatusFailed, task.Status())
	}
	if result.Retcode == 0 {
		t.Fatalf("expected nonzero retcode, got %d", result.Retcode)
	}
	if task.runs != 0 {
		t.Fatalf("run logic must not execute on validation failure, ran %d times", task.runs)
	}
	if result.Stdout != nil {
		t.Fatalf("expected nil stdout, got %q", *result.Stdout)
	}
	if result.Stderr == nil {
		t.Fatal("expected validation message in stderr")
	}
}

func TestExecuteSuccess(t *testing.T) {
	task := &stubTask{Base: NewBase("test.Hello",
		WithRequired("user"),
		WithParams(map[string]any{"user": "Cedric"}),
	)}
	task.runFn = func(_ context.Context, result Result) (Result, error) {
		user, _ := task.Param("user")
		out := fmt.Sprintf("Hello %v from host1", user)
		result.Stdout = &out
		return result, nil
	}

	result := Execute(context.Background(), task)

	if task.Status() != StatusSuccess {
		t.Fatalf("expected status %s, got %s", StatusSuccess, task.Status())
	}
	if result.Retcode != 0 {
		t.Fatalf("expected retcode 0, got %d", result.Retcode)
	}
	if result.Stdout == nil || *result.Stdout != "Hello Cedric from host1" {
		t.Fatalf("unexpected stdout: %v", result.Stdout)
	}
	if task.runs != 1 {
		t.Fatalf("expected exactly one run invocation, got %d", task.runs)
	}
	if result.UUID != task.UUID() {
		t.Fatalf("result uuid %s does not match task uuid %s", result.UUID, task.UUID())
	}
}

func TestExecuteRunError(t *testing.T) {
	task := &stubTask{Base: NewBase("test.Boom")}
	task.runFn = func(_ context.Context, result Result) (Result, error) {
		return result, Unexpected("boom")
	}

	result := Execute(context.Background(), task)

	if task.Status() != StatusFailed {
		t.Fatalf("expected status %s, got %s", StatusFailed, task.Status())
	}
	if result.Retcode != 500 {
		t.Fatalf("expected retcode 500, got %d", result.Retcode)
	}
	if result.Stderr == nil || *result.Stderr != "boom" {
		t.Fatalf("expected stderr %q, got %v", "boom", result.Stderr)
	}
	if result.UUID != task.UUID() {
		t.Fatalf("result uuid %s does not match task uuid %s", result.UUID, task.UUID())
	}
}

func TestExecuteRecoversPanic(t *testing.T) {
	task := &stubTask{Base: NewBase("test.Panic")}
	task.runFn = func(_ context.Context, result Result) (Result, error) {
		panic("kaboom")
	}

	result := Execute(context.Background(), task)

	if task.Status() != StatusFailed {
		t.Fatalf("expected status %s, got %s", StatusFailed, task.Status())
	}
	if !result.IsError() {
		t.Fatalf("expected error result, got %s", result)
	}
	if result.Stderr == nil {
		t.Fatal("expected panic message in stderr")
	}
}

func TestExecuteNilTask(t *testing.T) {
	result := NewExecutor().Execute(context.Background(), nil)
	if !result.IsError() {
		t.Fatalf("expected error result, got %s", result)
	}
}

func TestEventOrderSuccess(t *testing.T) {
	var events []recordedEvent
	task := &stubTask{Base: NewBase("test.Ordered")}

	Execute(context.Background(), task, WithHooks(recordingHooks(&events)))

	kinds := make([]string, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.kind)
	}
	want := []string{"start", "transition", "run-end", "transition", "end"}
	if len(kinds) != len(want) {
		t.Fatalf("expected events %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, kinds)
		}
	}

	first, second := events[1].event, events[3].event
	if first.From != StatusPending || first.To != StatusRunning {
		t.Fatalf("unexpected first transition %s -> %s", first.From, first.To)
	}
	if second.From != StatusRunning || second.To != StatusSuccess {
		t.Fatalf("unexpected second transition %s -> %s", second.From, second.To)
	}
	if events[4].event.Err != nil {
		t.Fatalf("unexpected error on end event: %v", events[4].event.Err)
	}

	wantLabel := "test.Ordered[" + task.UUID().String() + "]"
	if got := events[0].event.Label(); got != wantLabel {
		t.Fatalf("expected label %q, got %q", wantLabel, got)
	}
}

func TestEventOrderValidationFailure(t *testing.T) {
	var events []recordedEvent
	task := &stubTask{Base: NewBase("test.Invalid", WithRequired("user"))}

	Execute(context.Background(), task, WithHooks(recordingHooks(&events)))

	kinds := make([]string, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.kind)
	}
	want := []string{"start", "run-end", "transition", "end"}
	if len(kinds) != len(want) {
		t.Fatalf("expected events %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected events %v, got %v", want, kinds)
		}
	}

	for _, e := range events {
		if e.kind == "transition" && e.event.To == StatusRunning {
			t.Fatal("no Running transition may be emitted on validation failure")
		}
	}
	edge := events[2].event
	if edge.From != StatusPending || edge.To != StatusFailed {
		t.Fatalf("unexpected transition %s -> %s", edge.From, edge.To)
	}
	if events[1].event.Err == nil || events[3].event.Err == nil {
		t.Fatal("failure events must carry the validation error")
	}
}

func TestExecuteTerminalInstance(t *testing.T) {
	task := &stubTask{Base: NewBase("test.Twice")}

	first := Execute(context.Background(), task)
	if task.Status() != StatusSuccess || first.IsError() {
		t.Fatalf("setup: expected success, got status %s result %s", task.Status(), first)
	}

	second := Execute(context.Background(), task)
	if task.Status() != StatusSuccess {
		t.Fatalf("terminal status must not change, got %s", task.Status())
	}
	if !second.IsError() {
		t.Fatalf("expected error result on re-execution, got %s", second)
	}
	if task.runs != 1 {
		t.Fatalf("run logic must not execute twice, ran %d times", task.runs)
	}
}

// stagedTask implements every optional stage and records invocation order.
type stagedTask struct {
	*Base
	order []string
}

func (s *stagedTask) stage(name string, result Result) (Result, error) {
	s.order = append(s.order, name)
	result.Retval = map[string]any{name: true}
	return result, nil
}

func (s *stagedTask) PostInit(_ context.Context, result Result) (Result, error) {
	return s.stage("post-init", result)
}

func (s *stagedTask) PreRun(_ context.Context, result Result) (Result, error) {
	return s.stage("pre-run", result)
}

func (s *stagedTask) Run(_ context.Context, result Result) (Result, error) {
	return s.stage("run", result)
}

func (s *stagedTask) PostRun(_ context.Context, result Result) (Result, error) {
	return s.stage("post-run", result)
}

func (s *stagedTask) OnSuccess(_ context.Context, result Result) (Result, error) {
	return s.stage("on-success", result)
}

func TestStageOrder(t *testing.T) {
	task := &stagedTask{Base: NewBase("test.Staged")}

	result := Execute(context.Background(), task)

	want := []string{"post-init", "pre-run", "run", "post-run", "on-success"}
	if len(task.order) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, task.order)
	}
	for i := range want {
		if task.order[i] != want[i] {
			t.Fatalf("expected stages %v, got %v", want, task.order)
		}
	}
	for _, name := range want {
		if _, ok := result.Retval[name]; !ok {
			t.Fatalf("stage %s result was not merged, retval %v", name, result.Retval)
		}
	}
	if task.Status() != StatusSuccess {
		t.Fatalf("expected status %s, got %s", StatusSuccess, task.Status())
	}
}

// failingHandler augments the failure result through OnError.
type failingHandler struct {
	*Base
	seen *Error
}

func (f *failingHandler) Run(_ context.Context, result Result) (Result, error) {
	return result, NewError(KindRun, 503, "backend unavailable")
}

func (f *failingHandler) OnError(_ context.Context, taskErr *Error, result Result) (Result, error) {
	f.seen = taskErr
	result.Retval = map[string]any{"handled": true}
	return result, nil
}

func TestErrorHandlerAugmentsFailure(t *testing.T) {
	task := &failingHandler{Base: NewBase("test.Handled")}

	result := Execute(context.Background(), task)

	if task.seen == nil || task.seen.Code != 503 {
		t.Fatalf("handler did not receive the failure: %+v", task.seen)
	}
	if handled, ok := result.Retval["handled"]; !ok || handled != true {
		t.Fatalf("handler result was not merged, retval %v", result.Retval)
	}
	if result.Retcode != 503 {
		t.Fatalf("expected retcode 503, got %d", result.Retcode)
	}
	if task.Status() != StatusFailed {
		t.Fatalf("expected status %s, got %s", StatusFailed, task.Status())
	}
}

func TestPreRunFailureSkipsRun(t *testing.T) {
	task := &preRunFailure{stubTask: stubTask{Base: NewBase("test.PreRun")}}

	result := Execute(context.Background(), task)

	if task.runs != 0 {
		t.Fatalf("run logic must not execute after pre-run failure, ran %d times", task.runs)
	}
	if task.Status() != StatusFailed || !result.IsError() {
		t.Fatalf("expected failure, got status %s result %s", task.Status(), result)
	}
}

type preRunFailure struct {
	stubTask
}

func (p *preRunFailure) PreRun(_ context.Context, result Result) (Result, error) {
	return result, Unexpected("not ready")
}
