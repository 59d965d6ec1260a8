package jobs

import (
	"fmt"

	"github.com/google/uuid"
)

// Result is the structured outcome of a task execution: a return code,
// optional captured output streams, and a free-form return value map.
// Results are plain values; stages of the lifecycle produce partial results
// that the executor folds onto the task instance with Merge.
type Result struct {
	UUID    uuid.UUID      `json:"uuid" yaml:"uuid"`
	Retcode int            `json:"retcode" yaml:"retcode"`
	Stdout  *string        `json:"stdout" yaml:"stdout"`
	Stderr  *string        `json:"stderr" yaml:"stderr"`
	Retval  map[string]any `json:"retval,omitempty" yaml:"retval,omitempty"`
}

// ResultOption configures a result under construction.
type ResultOption func(*Result)

// WithUUID sets the result's identifier.
func WithUUID(id uuid.UUID) ResultOption {
	return func(r *Result) {
		r.UUID = id
	}
}

// WithRetcode sets the result's return code.
func WithRetcode(code int) ResultOption {
	return func(r *Result) {
		r.Retcode = code
	}
}

// WithStdout sets the result's captured standard output.
func WithStdout(out string) ResultOption {
	return func(r *Result) {
		r.Stdout = &out
	}
}

// WithStderr sets the result's captured standard error.
func WithStderr(out string) ResultOption {
	return func(r *Result) {
		r.Stderr = &out
	}
}

// WithValue stores a key/value pair in the result's return value map.
func WithValue(key string, value any) ResultOption {
	return func(r *Result) {
		if r.Retval == nil {
			r.Retval = make(map[string]any, 1)
		}
		r.Retval[key] = value
	}
}

// NewResult builds a result, generating a random identifier unless WithUUID
// overrides it.
func NewResult(opts ...ResultOption) Result {
	r := Result{UUID: uuid.New()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// ResultFromError translates a failure into a result: the error's code
// becomes the return code, its message the captured stderr, and its details
// the return value map.
func ResultFromError(err error) Result {
	e := AsError(err)
	msg := e.Message
	r := Result{
		UUID:    uuid.New(),
		Retcode: e.Code,
		Stderr:  &msg,
	}
	if len(e.Details) > 0 {
		r.Retval = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			r.Retval[k] = v
		}
	}
	return r
}

// IsError reports whether the result encodes a failure. Return codes follow
// the HTTP convention with 1 as the traditional process failure code.
func (r Result) IsError() bool {
	return r.Retcode >= 300 || r.Retcode == 1
}

// Merge combines the receiver with a newer result. The newer result wins the
// identifier and, when present, the output streams; the higher return code is
// kept; return value maps are unioned with the newer result winning key
// conflicts.
func (r Result) Merge(other Result) Result {
	merged := Result{
		UUID:    other.UUID,
		Retcode: r.Retcode,
		Stdout:  r.Stdout,
		Stderr:  r.Stderr,
	}
	if other.Retcode > merged.Retcode {
		merged.Retcode = other.Retcode
	}
	if other.Stdout != nil {
		merged.Stdout = other.Stdout
	}
	if other.Stderr != nil {
		merged.Stderr = other.Stderr
	}
	if len(r.Retval)+len(other.Retval) > 0 {
		merged.Retval = make(map[string]any, len(r.Retval)+len(other.Retval))
		for k, v := range r.Retval {
			merged.Retval[k] = v
		}
		for k, v := range other.Retval {
			merged.Retval[k] = v
		}
	}
	return merged
}

func (r Result) String() string {
	if r.IsError() {
		if r.Stderr != nil {
			return fmt.Sprintf("Err(%d, stderr: %q)", r.Retcode, *r.Stderr)
		}
		return fmt.Sprintf("Err(%d)", r.Retcode)
	}
	if r.Stdout != nil {
		return fmt.Sprintf("Ok(%d, stdout: %q)", r.Retcode, *r.Stdout)
	}
	return fmt.Sprintf("Ok(%d)", r.Retcode)
}
