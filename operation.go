package jobs

import "context"

// Operation is a composite task: an ordered list of sub-tasks sharing one
// threaded result. The operation itself is driven by the executor like any
// other task; its run phase executes each not-yet-successful sub-task in
// order through the same lifecycle stages and stops at the first failure.
type Operation struct {
	*Base
	tasks []Task
}

// NewOperation builds an empty operation.
func NewOperation(path string, opts ...BaseOption) *Operation {
	return &Operation{Base: NewBase(path, opts...)}
}

// Add appends sub-tasks in execution order.
func (o *Operation) Add(tasks ...Task) {
	o.tasks = append(o.tasks, tasks...)
}

// Tasks returns the sub-tasks in execution order.
func (o *Operation) Tasks() []Task {
	return o.tasks
}

// CheckParams validates the operation's own declared parameters and then
// every sub-task's, so a misconfigured sub-task fails the whole operation
// before anything runs.
func (o *Operation) CheckParams() error {
	params := o.Params()
	for _, name := range o.RequiredParams() {
		if _, present := params[name]; !present {
			return MissingParameter(name)
		}
	}
	for _, task := range o.tasks {
		if err := CheckRequiredParams(task); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the sub-tasks sequentially. Each sub-task receives the result
// accumulated so far and its outcome becomes the input of the next one.
// Sub-tasks already in Success are skipped, so a rebuilt operation resumes
// where it left off. The first failure marks the failing sub-task Failed and
// propagates, leaving later sub-tasks untouched.
func (o *Operation) Run(ctx context.Context, result Result) (Result, error) {
	for _, task := range o.tasks {
		if task.Status() == StatusSuccess {
			continue
		}
		out, err := runChained(ctx, task, result)
		if err != nil {
			if task.Status().CanTransition(StatusFailed) {
				task.SetStatus(StatusFailed)
			}
			return result, err
		}
		result = result.Merge(out)
	}
	return result, nil
}

// runChained drives a sub-task through the full lifecycle stages with a
// shared starting result, propagating errors to the caller instead of
// converting them. Sub-task stages emit no events; observability stays at
// the operation boundary.
func runChained(ctx context.Context, task Task, shared Result) (Result, error) {
	shared.UUID = task.UUID()
	task.SetResult(task.Result().Merge(shared))
	return NewExecutor().runStages(ctx, task)
}
