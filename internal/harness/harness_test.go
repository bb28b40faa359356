package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceScenario() *Scenario {
	return &Scenario{
		Name:     "inline",
		Clusters: []int64{1, 2, 3},
		Quality:  map[int64]float64{1: 0.5, 2: 0.9, 3: 0.1},
		Similarity: []SimilarityEntry{
			{A: 2, B: 1, Score: 0.8},
			{A: 2, B: 3, Score: 0.3},
		},
		Ops: []string{"start", "pin"},
	}
}

func TestRun_ProducesTrace(t *testing.T) {
	s := referenceScenario()

	result, err := Run(s)

	require.NoError(t, err)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, "test-session-default", result.Token)
	assert.Equal(t, "2", result.Trace[0].Selection)
	assert.Equal(t, "(2, 1)", result.Trace[1].Selection)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
}

func TestRun_PassingAssertions(t *testing.T) {
	s := referenceScenario()
	running := true
	s.Assertions = []Assertion{
		{Type: "selection_is", Selection: "(2, 1)"},
		{Type: "selection_is", Seq: 1, Selection: "2"},
		{Type: "list_is", List: []int64{1, 3}},
		{Type: "pinned_is", Pinned: "2"},
		{Type: "running_is", Running: &running},
	}

	result, err := Run(s)

	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
}

func TestRun_FailingAssertionReportsExpectedAndActual(t *testing.T) {
	s := referenceScenario()
	s.Assertions = []Assertion{
		{Type: "selection_is", Selection: "(2, 3)"},
	}

	result, err := Run(s)

	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	var ae *AssertionError
	require.ErrorAs(t, result.Failures[0], &ae)
	assert.Equal(t, "(2, 3)", ae.Expected)
	assert.Equal(t, "(2, 1)", ae.Actual)
}

func TestRun_CollectsAllFailures(t *testing.T) {
	s := referenceScenario()
	count := 5
	s.Assertions = []Assertion{
		{Type: "selection_is", Selection: "nope"},
		{Type: "count_is", Count: &count},
	}

	result, err := Run(s)

	require.NoError(t, err)
	assert.Len(t, result.Failures, 2)
}

func TestRun_BadOpIsARunError(t *testing.T) {
	s := referenceScenario()
	s.Ops = []string{"start", "warp"}

	_, err := Run(s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "op 2")
}

func TestRun_FixedToken(t *testing.T) {
	s := referenceScenario()
	s.Token = "scenario-token"

	result, err := Run(s)

	require.NoError(t, err)
	assert.Equal(t, "scenario-token", result.Token)
}

func TestRun_UnlistedScoresDefaultToZero(t *testing.T) {
	s := &Scenario{
		Name:     "zero-scores",
		Clusters: []int64{4, 5},
		Ops:      []string{"start"},
		Assertions: []Assertion{
			// All qualities 0: stable rank keeps ascending order.
			{Type: "list_is", List: []int64{4, 5}},
			{Type: "selection_is", Selection: "4"},
		},
	}

	result, err := Run(s)

	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
}

func TestGoldenScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}
