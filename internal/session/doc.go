// Package session wraps a wizard in a traced curation session.
//
// A session stamps every navigation operation with a monotonic logical
// sequence number and records the observable outcome (selection, cursor,
// running flag) as a trace event. Traces are the unit of replay and
// golden-file comparison: the same operation script against the same
// scores always produces an identical trace.
//
// Session tokens correlate log lines and traces across a curation run.
// Production uses time-sortable UUIDv7 tokens; tests use FixedGenerator
// for deterministic output.
package session
