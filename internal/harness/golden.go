package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/spikehound/wizard/internal/session"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic
// comparison.
type TraceSnapshot struct {
	ScenarioName string
	Token        string
	Trace        []session.TraceEvent
}

// toCanonicalMap converts the snapshot to a map[string]any for the
// canonical JSON marshaler. Trace events carry only identities and
// cursor state, never scores, so no floats appear.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		eventMap := map[string]any{
			"seq":       ev.Seq,
			"op":        ev.Op,
			"selection": ev.Selection,
			"index":     ev.Index,
			"count":     ev.Count,
			"running":   ev.Running,
		}
		if ev.Pinned != "" {
			eventMap["pinned"] = ev.Pinned
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"token":         s.Token,
		"trace":         traceList,
	}
}

// MarshalTrace produces the canonical JSON form of a result's trace.
func MarshalTrace(result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: result.ScenarioName,
		Token:        result.Token,
		Trace:        result.Trace,
	}
	return marshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its trace against the
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error when the scenario itself fails to run; assertion and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	for _, failure := range result.Failures {
		t.Error(failure)
	}

	traceJSON, err := MarshalTrace(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
