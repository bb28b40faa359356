package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikehound/wizard/internal/wizard"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()

	quality := map[wizard.ClusterID]float64{1: 0.5, 2: 0.9, 3: 0.1}
	similarity := map[[2]wizard.ClusterID]float64{
		{2, 1}: 0.8,
		{2, 3}: 0.3,
	}

	w := wizard.New(wizard.WithClusterIDs([]wizard.ClusterID{1, 2, 3}))
	w.SetQualityFunc(func(id wizard.ClusterID) float64 { return quality[id] })
	w.SetSimilarityFunc(func(pivot, other wizard.ClusterID) float64 {
		return similarity[[2]wizard.ClusterID{pivot, other}]
	})

	return NewSession(w, NewFixedGenerator("test-session"))
}

func TestSession_Token(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, "test-session", s.Token())
}

func TestSession_Apply_RecordsTrace(t *testing.T) {
	s := newTestSession(t)

	ev, err := s.Apply(Op{Kind: OpStart})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ev.Seq)
	assert.Equal(t, "start", ev.Op)
	assert.Equal(t, "2", ev.Selection)
	assert.Equal(t, 0, ev.Index)
	assert.Equal(t, 3, ev.Count)
	assert.True(t, ev.Running)
	assert.Empty(t, ev.Pinned)

	ev, err = s.Apply(Op{Kind: OpPin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), ev.Seq)
	assert.Equal(t, "(2, 1)", ev.Selection)
	assert.Equal(t, "2", ev.Pinned)
	assert.Equal(t, 2, ev.Count)

	trace := s.Trace()
	require.Len(t, trace, 2)
	assert.Equal(t, "start", trace[0].Op)
	assert.Equal(t, "pin", trace[1].Op)
}

func TestSession_Apply_FailedOpNotRecorded(t *testing.T) {
	w := wizard.New() // no cluster set
	s := NewSession(w, NewFixedGenerator("t"))

	_, err := s.Apply(Op{Kind: OpStart})

	require.Error(t, err)
	assert.True(t, wizard.IsPreconditionError(err))
	assert.Empty(t, s.Trace())
}

func TestSession_ApplyScript(t *testing.T) {
	s := newTestSession(t)

	ops, err := ParseScript("start\nnext\npin\nnext\nstop\n")
	require.NoError(t, err)

	events, err := s.ApplyScript(ops)
	require.NoError(t, err)
	require.Len(t, events, 5)

	// start -> 2, next -> 1, pin on 1, next steps through its matches.
	assert.Equal(t, "2", events[0].Selection)
	assert.Equal(t, "1", events[1].Selection)
	assert.Equal(t, "(1, 2)", events[2].Selection)
	assert.Equal(t, "1", events[2].Pinned)
	assert.Equal(t, "(1, 3)", events[3].Selection)
	assert.Equal(t, "stop", events[4].Op)
	assert.False(t, events[4].Running)
	assert.Equal(t, -1, events[4].Index)
}

func TestSession_ApplyScript_StopsAtFirstFailure(t *testing.T) {
	s := newTestSession(t)

	events, err := s.ApplyScript([]Op{
		{Kind: OpStart},
		{Kind: OpIgnore}, // zero-value suppression
		{Kind: OpNext},
	})

	require.Error(t, err)
	assert.Len(t, events, 1, "only the successful op before the failure")
	assert.Len(t, s.Trace(), 1)
}

func TestSession_Trace_IsACopy(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Apply(Op{Kind: OpStart})
	require.NoError(t, err)

	trace := s.Trace()
	trace[0].Op = "mutated"

	assert.Equal(t, "start", s.Trace()[0].Op)
}

func TestSession_IgnoreRendering(t *testing.T) {
	s := newTestSession(t)

	ev, err := s.Apply(Op{Kind: OpIgnore, Sup: wizard.SuppressCluster(3)})
	require.NoError(t, err)
	assert.Equal(t, "ignore 3", ev.Op)

	ev, err = s.Apply(Op{Kind: OpIgnore, Sup: wizard.SuppressPair(2, 1)})
	require.NoError(t, err)
	assert.Equal(t, "ignore 2 1", ev.Op)
}
