package jobs

// Status captures the lifecycle status of a task instance.
//
// The wire form is the uppercase string so serialized statuses survive
// round-trips through message payloads unchanged.
type Status string

const (
	// StatusPending is the initial status of a freshly built task.
	StatusPending Status = "PENDING"
	// StatusRunning marks a task whose run logic is executing.
	StatusRunning Status = "RUNNING"
	// StatusSuccess is the terminal status of a task that completed.
	StatusSuccess Status = "SUCCESS"
	// StatusFailed is the terminal status of a task that did not complete.
	StatusFailed Status = "FAILED"
)

// ParseStatus converts a wire string into a Status. Unknown or empty input
// yields StatusPending.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusRunning, StatusSuccess, StatusFailed:
		return Status(s)
	default:
		return StatusPending
	}
}

// IsTerminal reports whether no further transitions follow the status.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// CanTransition reports whether the edge from s to next is a legal lifecycle
// transition. The lifecycle is monotonic: Pending moves to Running, or
// straight to Failed when validation rejects the task; Running moves to
// either terminal status; terminal statuses never move again.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning || next == StatusFailed
	case StatusRunning:
		return next == StatusSuccess || next == StatusFailed
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
