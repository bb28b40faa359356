package harness

import (
	"fmt"
	"strings"

	"github.com/spikehound/wizard/internal/session"
	"github.com/spikehound/wizard/internal/wizard"
)

// AssertionError is returned when a scenario assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion %s failed: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// evaluateAssertions checks every assertion against the wizard's final
// state and the recorded trace. Returns all failures (does not
// fail-fast).
func evaluateAssertions(scenario *Scenario, w *wizard.Wizard, trace []session.TraceEvent) []error {
	var failures []error
	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(a, w, trace); err != nil {
			failures = append(failures, err)
		}
	}
	return failures
}

func evaluateAssertion(a Assertion, w *wizard.Wizard, trace []session.TraceEvent) error {
	switch a.Type {
	case "selection_is":
		actual := w.CurrentSelection().String()
		if a.Seq > 0 {
			ev, ok := traceEventAt(trace, a.Seq)
			if !ok {
				return &AssertionError{
					Type:     a.Type,
					Expected: fmt.Sprintf("trace event with seq %d", a.Seq),
					Actual:   fmt.Sprintf("trace of %d events", len(trace)),
				}
			}
			actual = ev.Selection
		}
		if actual != a.Selection {
			return &AssertionError{Type: a.Type, Expected: a.Selection, Actual: actual}
		}

	case "list_is":
		snap := w.Snapshot()
		expected := make([]wizard.ClusterID, len(a.List))
		for i, id := range a.List {
			expected[i] = wizard.ClusterID(id)
		}
		if !equalLists(snap.List, expected) {
			return &AssertionError{
				Type:     a.Type,
				Expected: renderList(expected),
				Actual:   renderList(snap.List),
			}
		}

	case "count_is":
		if a.Count == nil {
			return &AssertionError{Type: a.Type, Expected: "count field", Actual: "unset"}
		}
		if w.Count() != *a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d", *a.Count),
				Actual:   fmt.Sprintf("%d", w.Count()),
			}
		}

	case "index_is":
		if a.Index == nil {
			return &AssertionError{Type: a.Type, Expected: "index field", Actual: "unset"}
		}
		if w.Index() != *a.Index {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d", *a.Index),
				Actual:   fmt.Sprintf("%d", w.Index()),
			}
		}

	case "running_is":
		if a.Running == nil {
			return &AssertionError{Type: a.Type, Expected: "running field", Actual: "unset"}
		}
		if w.IsRunning() != *a.Running {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%t", *a.Running),
				Actual:   fmt.Sprintf("%t", w.IsRunning()),
			}
		}

	case "pinned_is":
		actual := ""
		if pinned, ok := w.Pinned(); ok {
			actual = fmt.Sprintf("%d", pinned)
		}
		if actual != a.Pinned {
			return &AssertionError{
				Type:     a.Type,
				Expected: renderPinned(a.Pinned),
				Actual:   renderPinned(actual),
			}
		}
	}
	return nil
}

func traceEventAt(trace []session.TraceEvent, seq int64) (session.TraceEvent, bool) {
	for _, ev := range trace {
		if ev.Seq == seq {
			return ev, true
		}
	}
	return session.TraceEvent{}, false
}

func equalLists(a, b []wizard.ClusterID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func renderList(ids []wizard.ClusterID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderPinned(s string) string {
	if s == "" {
		return "no pin"
	}
	return s
}
