package wizard

import "sort"

// Wizard proposes a selection of high-quality clusters and merge
// candidates, and drives a cursor over the proposals.
//
// CRITICAL: All mutations happen synchronously on the caller's goroutine.
// The wizard holds no locks and must not be shared across goroutines
// without external synchronization (in practice it is owned by one
// controller).
//
// INVARIANTS:
//   - clusterIDs is kept sorted ascending (duplicates preserved)
//   - cursor.index >= 0 only while a list has been materialized
//   - a pin exists only while running; Stop and Start clear it
//   - the suppression set only grows
type Wizard struct {
	clusterIDs []ClusterID // nil until SetClusterIDs; sorted ascending
	quality    QualityFunc
	similarity SimilarityFunc
	ignored    suppressionSet
	cursor     cursorState
}

// cursorState is the mutable navigation state behind the immutable State
// snapshots handed to callers.
type cursorState struct {
	list    []ClusterID
	index   int // -1 when unset
	running bool
	pinned  ClusterID
	hasPin  bool
}

func emptyCursor() cursorState {
	return cursorState{index: -1}
}

// Option configures a Wizard at construction.
type Option func(*Wizard)

// WithClusterIDs seeds the initial cluster set, as if SetClusterIDs had
// been called immediately after New.
func WithClusterIDs(ids []ClusterID) Option {
	return func(w *Wizard) {
		w.SetClusterIDs(ids)
	}
}

// New creates a Wizard with an empty suppression set and no traversal
// running. Scoring functions must be registered before any ranking call.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		ignored: make(suppressionSet),
		cursor:  emptyCursor(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Configuration
// -----------------------------------------------------------------------

// SetClusterIDs replaces the working cluster set.
//
// The input is copied and sorted ascending; duplicates are preserved.
// Replacing the set does NOT reset a running traversal - the materialized
// list keeps referring to the old set until Stop/Start rebuilds it.
func (w *Wizard) SetClusterIDs(ids []ClusterID) {
	sorted := make([]ClusterID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	w.clusterIDs = sorted
}

// ClusterIDs returns a copy of the current cluster set, sorted ascending.
// Returns nil if the set was never configured.
func (w *Wizard) ClusterIDs() []ClusterID {
	if w.clusterIDs == nil {
		return nil
	}
	out := make([]ClusterID, len(w.clusterIDs))
	copy(out, w.clusterIDs)
	return out
}

// SetQualityFunc registers the cluster quality function.
func (w *Wizard) SetQualityFunc(fn QualityFunc) {
	w.quality = fn
}

// SetSimilarityFunc registers the pairwise similarity function.
func (w *Wizard) SetSimilarityFunc(fn SimilarityFunc) {
	w.similarity = fn
}

func (w *Wizard) checkClusterIDs() error {
	if w.clusterIDs == nil {
		return newUsageError(ErrCodeClustersUnset, "the cluster set needs to be set")
	}
	return nil
}

// Suppression
// -----------------------------------------------------------------------

// Ignore marks a cluster or an oriented pair of clusters as ignored.
//
// Ignored clusters and pairs never reappear in best-cluster or
// most-similar lists. Re-ignoring is a no-op. A zero-value suppression is
// a usage error.
//
// Ignore does not touch the currently materialized list; the suppression
// takes effect on the next rebuild (Start, Pin, Unpin).
func (w *Wizard) Ignore(sup Suppression) error {
	switch sup.Kind {
	case SuppressionCluster, SuppressionPair:
		w.ignored.add(sup)
		return nil
	default:
		return newUsageError(ErrCodeInvalidSuppression,
			"suppression must name a cluster or a pair of clusters")
	}
}

// Core queries
// -----------------------------------------------------------------------

// BestClusters returns the cluster set sorted by decreasing quality, with
// ignored clusters removed.
//
// Truncation to limit happens before suppression filtering, so the result
// may hold fewer than limit clusters even when more unsuppressed clusters
// exist. A limit of zero means no truncation.
func (w *Wizard) BestClusters(limit int) ([]ClusterID, error) {
	if err := w.checkClusterIDs(); err != nil {
		return nil, err
	}
	if w.quality == nil {
		return nil, newUsageError(ErrCodeQualityUnset, "no quality function registered")
	}
	return w.ignored.filterClusters(RankByScore(w.clusterIDs, w.quality, limit)), nil
}

// BestCluster returns the best unsuppressed cluster according to the
// registered quality function. ok is false when the filtered ranking is
// empty.
func (w *Wizard) BestCluster() (id ClusterID, ok bool, err error) {
	best, err := w.BestClusters(1)
	if err != nil {
		return 0, false, err
	}
	if len(best) == 0 {
		return 0, false, nil
	}
	return best[0], true, nil
}

// MostSimilarClusters returns up to limit clusters most similar to pivot,
// sorted by decreasing similarity. A limit of zero means no truncation.
//
// The result passes through the suppression filter twice: once as bare
// clusters (removing ignored clusters) and once as oriented
// (pivot, other) pairs (removing ignored pairs). This lets a caller
// suppress "never show cluster X again" and "never show the pair (X, Y)
// again" independently.
func (w *Wizard) MostSimilarClusters(pivot ClusterID, limit int) ([]ClusterID, error) {
	if err := w.checkClusterIDs(); err != nil {
		return nil, err
	}
	if w.similarity == nil {
		return nil, newUsageError(ErrCodeSimilarityUnset, "no similarity function registered")
	}

	candidates := make([]ClusterID, 0, len(w.clusterIDs))
	for _, other := range w.clusterIDs {
		if other != pivot {
			candidates = append(candidates, other)
		}
	}

	ranked := RankByScore(candidates, func(other ClusterID) float64 {
		return w.similarity(pivot, other)
	}, limit)

	ranked = w.ignored.filterClusters(ranked)
	return w.ignored.filterPairs(pivot, ranked), nil
}

// MostSimilarToBest returns the clusters most similar to the current best
// cluster. Fails with ErrCodeNoPivot when no best cluster exists (empty
// or fully suppressed cluster set).
func (w *Wizard) MostSimilarToBest(limit int) ([]ClusterID, error) {
	pivot, ok, err := w.BestCluster()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newUsageError(ErrCodeNoPivot, "no best cluster to pivot on")
	}
	return w.MostSimilarClusters(pivot, limit)
}

// Navigation
// -----------------------------------------------------------------------

// Count returns the length of the materialized list.
func (w *Wizard) Count() int {
	return len(w.cursor.list)
}

// Index returns the cursor position, or -1 when the cursor is unset.
func (w *Wizard) Index() int {
	return w.cursor.index
}

// IsRunning reports whether a traversal is active.
func (w *Wizard) IsRunning() bool {
	return w.cursor.running
}

// Snapshot returns an immutable copy of the navigation state.
func (w *Wizard) Snapshot() State {
	list := make([]ClusterID, len(w.cursor.list))
	copy(list, w.cursor.list)
	return State{
		List:    list,
		Index:   w.cursor.index,
		Running: w.cursor.running,
		Pinned:  w.cursor.pinned,
		HasPin:  w.cursor.hasPin,
	}
}

// Start materializes the best-cluster list, places the cursor at 0 and
// marks the traversal running. Any existing pin is discarded: Start
// always yields an unpinned, quality-ranked traversal.
func (w *Wizard) Start() error {
	list, err := w.BestClusters(0)
	if err != nil {
		return err
	}
	w.cursor = cursorState{list: list, index: 0, running: true}
	return nil
}

// Pause suspends the traversal, keeping the list and cursor in place.
func (w *Wizard) Pause() {
	w.cursor.running = false
}

// Stop fully resets the navigation state: empty list, unset cursor, not
// running, no pin. The suppression set and registered functions survive.
func (w *Wizard) Stop() {
	w.cursor = emptyCursor()
}

// Current returns the cluster under the cursor. ok is false when the
// cursor is unset or out of bounds. Never fails.
func (w *Wizard) Current() (id ClusterID, ok bool) {
	if w.cursor.index >= 0 && w.cursor.index < len(w.cursor.list) {
		return w.cursor.list[w.cursor.index], true
	}
	return 0, false
}

// Next advances the cursor and returns the new current cluster.
//
// When no traversal is running, Next is equivalent to Start: the list is
// rebuilt from scratch and the cursor lands on the best cluster. When
// running, the cursor increments without an upper clamp, so walking past
// the end yields ok == false until First/Last/Previous brings it back.
func (w *Wizard) Next() (id ClusterID, ok bool, err error) {
	if !w.cursor.running {
		if err := w.Start(); err != nil {
			return 0, false, err
		}
	} else {
		w.cursor.index++
	}
	id, ok = w.Current()
	return id, ok, nil
}

// Previous steps the cursor back and returns the current cluster. A no-op
// unless running with the cursor at index 1 or beyond.
func (w *Wizard) Previous() (id ClusterID, ok bool) {
	if w.cursor.running && w.cursor.index >= 1 {
		w.cursor.index--
	}
	return w.Current()
}

// First jumps the cursor to the top of the list without changing the
// running flag.
func (w *Wizard) First() (id ClusterID, ok bool) {
	w.cursor.index = 0
	return w.Current()
}

// Last jumps the cursor to the end of the list without changing the
// running flag. On an empty list the cursor lands at -1 (unset).
func (w *Wizard) Last() (id ClusterID, ok bool) {
	w.cursor.index = len(w.cursor.list) - 1
	return w.Current()
}

// Pin and selection
// -----------------------------------------------------------------------

// Pin captures the current cluster as the pinned cluster and swaps the
// list to the clusters most similar to it, cursor reset to 0.
//
// A no-op when there is no current cluster. Propagates ranking-layer
// errors (unset similarity function) without changing any state.
func (w *Wizard) Pin() error {
	pivot, ok := w.Current()
	if !ok {
		return nil
	}
	list, err := w.MostSimilarClusters(pivot, 0)
	if err != nil {
		return err
	}
	w.cursor.pinned = pivot
	w.cursor.hasPin = true
	w.cursor.list = list
	w.cursor.index = 0
	return nil
}

// Unpin clears the pin and swaps the list back to quality order, cursor
// reset to 0. The running flag is untouched.
func (w *Wizard) Unpin() error {
	list, err := w.BestClusters(0)
	if err != nil {
		return err
	}
	w.cursor.pinned = 0
	w.cursor.hasPin = false
	w.cursor.list = list
	w.cursor.index = 0
	return nil
}

// Pinned returns the pinned cluster. ok is false when nothing is pinned.
func (w *Wizard) Pinned() (id ClusterID, ok bool) {
	return w.cursor.pinned, w.cursor.hasPin
}

// CurrentSelection returns what a rendering layer should highlight right
// now: nothing when not running (or past the end of the list), the bare
// current cluster when unpinned, or the (pinned, current) pair when
// pinned. Never fails.
func (w *Wizard) CurrentSelection() Selection {
	if !w.cursor.running {
		return Selection{}
	}
	current, ok := w.Current()
	if !ok {
		return Selection{}
	}
	if !w.cursor.hasPin {
		return Selection{Kind: SelectionCluster, Current: current}
	}
	return Selection{Kind: SelectionPair, Pinned: w.cursor.pinned, Current: current}
}

// CurrentClosestMatch returns the currently browsed similar cluster. ok
// is false unless running with a pin in place.
func (w *Wizard) CurrentClosestMatch() (id ClusterID, ok bool) {
	if !w.cursor.running || !w.cursor.hasPin {
		return 0, false
	}
	return w.Current()
}
