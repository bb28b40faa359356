package session

import (
	"fmt"
	"log/slog"

	"github.com/spikehound/wizard/internal/wizard"
)

// TraceEvent records the observable outcome of one session operation.
//
// Events carry no scores - only cluster identities and cursor state - so
// traces stay stable across re-scoring runs that preserve order.
type TraceEvent struct {
	// Seq is the logical clock stamp, strictly increasing per session.
	Seq int64 `json:"seq"`

	// Op is the operation as script text, e.g. "next" or "ignore 2 1".
	Op string `json:"op"`

	// Selection is the post-operation selection, rendered as "-", "12"
	// or "(2, 1)".
	Selection string `json:"selection"`

	// Index is the post-operation cursor position (-1 when unset).
	Index int `json:"index"`

	// Count is the length of the materialized list.
	Count int `json:"count"`

	// Running is the post-operation running flag.
	Running bool `json:"running"`

	// Pinned is the pinned cluster rendered as decimal, empty when
	// nothing is pinned.
	Pinned string `json:"pinned,omitempty"`
}

// Session drives a wizard through scripted or interactive operations,
// recording a seq-stamped trace of everything it observes.
//
// Like the wizard it wraps, a session is single-threaded.
type Session struct {
	token string
	wiz   *wizard.Wizard
	clock *Clock
	log   *slog.Logger
	trace []TraceEvent
}

// SessionOption configures a session at construction.
type SessionOption func(*Session)

// WithLogger sets the slog logger for operation logging.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// NewSession creates a session around a configured wizard, drawing one
// token from gen.
func NewSession(w *wizard.Wizard, gen TokenGenerator, opts ...SessionOption) *Session {
	s := &Session{
		token: gen.Generate(),
		wiz:   w,
		clock: NewClock(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the session token.
func (s *Session) Token() string {
	return s.token
}

// Wizard returns the wrapped wizard for direct queries.
func (s *Session) Wizard() *wizard.Wizard {
	return s.wiz
}

// Apply executes one operation against the wizard and records its
// outcome. Failed operations (precondition errors from list rebuilds,
// invalid suppressions) are not recorded - the wizard state is unchanged,
// so there is nothing to trace.
func (s *Session) Apply(op Op) (TraceEvent, error) {
	var err error
	switch op.Kind {
	case OpStart:
		err = s.wiz.Start()
	case OpPause:
		s.wiz.Pause()
	case OpStop:
		s.wiz.Stop()
	case OpNext:
		_, _, err = s.wiz.Next()
	case OpPrevious:
		s.wiz.Previous()
	case OpFirst:
		s.wiz.First()
	case OpLast:
		s.wiz.Last()
	case OpPin:
		err = s.wiz.Pin()
	case OpUnpin:
		err = s.wiz.Unpin()
	case OpIgnore:
		err = s.wiz.Ignore(op.Sup)
	default:
		err = fmt.Errorf("unknown operation kind %q", op.Kind)
	}
	if err != nil {
		s.log.Error("session operation failed",
			"session", s.token, "op", renderOp(op), "error", err)
		return TraceEvent{}, fmt.Errorf("apply %s: %w", renderOp(op), err)
	}

	ev := s.observe(op)
	s.trace = append(s.trace, ev)
	s.log.Debug("session operation",
		"session", s.token, "seq", ev.Seq, "op", ev.Op,
		"selection", ev.Selection, "index", ev.Index, "running", ev.Running)
	return ev, nil
}

// ApplyScript executes a parsed script in order, stopping at the first
// failing operation.
func (s *Session) ApplyScript(ops []Op) ([]TraceEvent, error) {
	events := make([]TraceEvent, 0, len(ops))
	for _, op := range ops {
		ev, err := s.Apply(op)
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Trace returns a copy of the recorded trace.
func (s *Session) Trace() []TraceEvent {
	out := make([]TraceEvent, len(s.trace))
	copy(out, s.trace)
	return out
}

// observe builds the trace event for the wizard's current state.
func (s *Session) observe(op Op) TraceEvent {
	ev := TraceEvent{
		Seq:       s.clock.Next(),
		Op:        renderOp(op),
		Selection: s.wiz.CurrentSelection().String(),
		Index:     s.wiz.Index(),
		Count:     s.wiz.Count(),
		Running:   s.wiz.IsRunning(),
	}
	if pinned, ok := s.wiz.Pinned(); ok {
		ev.Pinned = fmt.Sprintf("%d", pinned)
	}
	return ev
}

// renderOp renders an operation back into script text.
func renderOp(op Op) string {
	if op.Kind != OpIgnore {
		return string(op.Kind)
	}
	if op.Sup.Kind == wizard.SuppressionPair {
		return fmt.Sprintf("ignore %d %d", op.Sup.A, op.Sup.B)
	}
	return fmt.Sprintf("ignore %d", op.Sup.A)
}
