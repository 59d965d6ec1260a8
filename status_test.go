package jobs

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"PENDING", StatusPending},
		{"RUNNING", StatusRunning},
		{"SUCCESS", StatusSuccess},
		{"FAILED", StatusFailed},
		{"", StatusPending},
		{"running", StatusPending},
		{"UNKNOWN", StatusPending},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.in); got != tc.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusRunning.IsTerminal() {
		t.Error("pending and running are not terminal")
	}
	if !StatusSuccess.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Error("success and failed are terminal")
	}
}

func TestStatusCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending: {StatusRunning, StatusFailed},
		StatusRunning: {StatusSuccess, StatusFailed},
		StatusSuccess: {},
		StatusFailed:  {},
	}
	all := []Status{StatusPending, StatusRunning, StatusSuccess, StatusFailed}

	for from, edges := range allowed {
		legal := make(map[Status]bool, len(edges))
		for _, to := range edges {
			legal[to] = true
		}
		for _, to := range all {
			if got := from.CanTransition(to); got != legal[to] {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", from, to, got, legal[to])
			}
		}
	}
}
