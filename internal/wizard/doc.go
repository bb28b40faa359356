// Package wizard implements the spikehound curation wizard.
//
// The wizard is the heart of spikehound - it ranks spike-sorting clusters
// by quality, proposes merge candidates by similarity, and drives a cursor
// over the resulting recommendation list.
//
// ARCHITECTURE:
//
// Single-Threaded State Machine:
// The wizard processes all operations synchronously on the caller's
// goroutine. There is no event loop, no blocking, and no internal
// concurrency. This ensures:
// - Predictable recommendation order
// - Reproducible session traces on replay
// - Simple reasoning about cursor state
//
// Scoring Model:
// The wizard never computes scores. Quality and similarity functions are
// registered by the caller (see internal/metrics and internal/profile for
// the stock suppliers). The wizard only sorts by them:
// 1. BestClusters ranks the cluster set by descending quality
// 2. MostSimilarClusters ranks other clusters by similarity to a pivot
// 3. Both results pass through the suppression filter
//
// Navigation Flow:
// Start materializes a quality-ranked list and places the cursor at 0.
// Next/Previous/First/Last move the cursor; Pin swaps the list to
// similarity order around the current cluster; Unpin swaps it back.
// Ignore permanently removes a cluster or cluster pair from all future
// lists. Stop resets everything except the suppression set.
//
// CRITICAL PATTERNS:
//
// Deterministic Ranking:
// Ties are broken by stable sort on the ascending cluster-ID order.
// No randomness, no map iteration order, no non-determinism.
//
// Total Navigation:
// Cursor operations never fail. Walking past the end of a list, or
// navigating an empty list, yields an absent current cluster rather than
// an error. Only operations that rebuild lists can fail, and only when
// the cluster set or a required scoring function was never configured.
package wizard
