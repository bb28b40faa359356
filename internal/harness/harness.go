package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spikehound/wizard/internal/session"
	"github.com/spikehound/wizard/internal/wizard"
)

// Result holds the outcome of one scenario execution.
type Result struct {
	// ScenarioName echoes the scenario for reporting.
	ScenarioName string

	// Token is the session token the scenario ran under.
	Token string

	// Trace is the full recorded session trace.
	Trace []session.TraceEvent

	// Failures lists assertion failures. Empty means the scenario
	// passed.
	Failures []error
}

// Pass reports whether every assertion held.
func (r *Result) Pass() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario against a fresh wizard and returns the result.
//
// The wizard is built from the scenario's cluster set and score tables;
// unlisted clusters and pair orientations score 0. Operations run in
// order, and an operation failure aborts the run with an error (a
// scenario that scripts an invalid operation is broken, not failing).
// Assertion failures land in Result.Failures instead.
func Run(scenario *Scenario) (*Result, error) {
	ops := make([]session.Op, 0, len(scenario.Ops))
	for i, line := range scenario.Ops {
		op, err := session.ParseOp(line)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: op %d: %w", scenario.Name, i+1, err)
		}
		ops = append(ops, op)
	}

	w := buildWizard(scenario)
	sess := session.NewSession(w, session.NewFixedGenerator(scenario.token()),
		session.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	if _, err := sess.ApplyScript(ops); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{
		ScenarioName: scenario.Name,
		Token:        sess.Token(),
		Trace:        sess.Trace(),
	}
	result.Failures = evaluateAssertions(scenario, w, result.Trace)
	return result, nil
}

// buildWizard constructs the wizard under test from the scenario's
// cluster set and score tables.
func buildWizard(scenario *Scenario) *wizard.Wizard {
	ids := make([]wizard.ClusterID, len(scenario.Clusters))
	for i, id := range scenario.Clusters {
		ids[i] = wizard.ClusterID(id)
	}

	quality := make(map[wizard.ClusterID]float64, len(scenario.Quality))
	for id, score := range scenario.Quality {
		quality[wizard.ClusterID(id)] = score
	}

	similarity := make(map[[2]wizard.ClusterID]float64, len(scenario.Similarity))
	for _, entry := range scenario.Similarity {
		key := [2]wizard.ClusterID{wizard.ClusterID(entry.A), wizard.ClusterID(entry.B)}
		similarity[key] = entry.Score
	}

	w := wizard.New(wizard.WithClusterIDs(ids))
	w.SetQualityFunc(func(id wizard.ClusterID) float64 {
		return quality[id]
	})
	w.SetSimilarityFunc(func(pivot, other wizard.ClusterID) float64 {
		return similarity[[2]wizard.ClusterID{pivot, other}]
	})
	return w
}
