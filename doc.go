// Package jobs drives a single unit of work through a well-defined execution
// lifecycle. A task declares its identity, parameters and run logic; the
// executor validates required parameters, walks the task through
// Pending, Running and a terminal Success or Failed status, captures the
// outcome in a structured Result, and emits lifecycle events for
// observability. Every failure mode is encoded in the returned Result:
// Execute never propagates errors or panics to the caller.
package jobs
