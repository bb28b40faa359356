package wizard

import "fmt"

// ClusterID identifies a cluster in the current clustering.
//
// The wizard treats IDs as opaque: it orders them for deterministic tie
// breaking and hashes them for suppression lookups, but never interprets
// their meaning. IDs come from the upstream clustering and survive merges
// and splits only as long as the caller keeps them in the cluster set.
type ClusterID int64

// QualityFunc scores a single cluster. Higher is better.
//
// Registered by the caller; the wizard never computes quality itself.
// The function must be pure with respect to a single ranking pass: the
// wizard may call it once per cluster per rebuild, in unspecified order.
type QualityFunc func(id ClusterID) float64

// SimilarityFunc scores a pair of clusters. Higher is more similar.
//
// The first argument is the pivot (typically the pinned cluster), the
// second a candidate match. The wizard never symmetrizes: if the caller
// wants sim(a,b) == sim(b,a), the registered function must provide it.
type SimilarityFunc func(pivot, other ClusterID) float64

// SelectionKind distinguishes the shapes CurrentSelection can take.
type SelectionKind int

const (
	// SelectionNone means nothing is highlighted (wizard not running, or
	// the cursor walked past the end of the list).
	SelectionNone SelectionKind = iota

	// SelectionCluster means a single cluster is highlighted (unpinned
	// browsing of the best-cluster list).
	SelectionCluster

	// SelectionPair means a pinned cluster plus its currently browsed
	// match are highlighted together (merge-candidate review).
	SelectionPair
)

// Selection is the externally observable "what is highlighted right now"
// contract consumed by rendering layers.
type Selection struct {
	Kind SelectionKind

	// Pinned is set when Kind == SelectionPair.
	Pinned ClusterID

	// Current is set when Kind != SelectionNone.
	Current ClusterID
}

// IsEmpty returns true if nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.Kind == SelectionNone
}

// String renders the selection for traces and CLI output: "-" for no
// selection, "12" for a bare cluster, "(2, 1)" for a pinned pair.
func (s Selection) String() string {
	switch s.Kind {
	case SelectionCluster:
		return fmt.Sprintf("%d", s.Current)
	case SelectionPair:
		return fmt.Sprintf("(%d, %d)", s.Pinned, s.Current)
	default:
		return "-"
	}
}

// State is an immutable snapshot of the wizard's navigation state.
//
// Snapshots are value copies: mutating the returned List does not affect
// the wizard, and later wizard operations do not affect the snapshot.
type State struct {
	// List is the materialized recommendation list.
	List []ClusterID

	// Index is the cursor position, or -1 when the cursor is unset.
	Index int

	// Running reports whether a traversal is active.
	Running bool

	// Pinned is the pinned cluster; meaningful only when HasPin is true.
	Pinned ClusterID

	// HasPin reports whether a cluster is pinned.
	HasPin bool
}
