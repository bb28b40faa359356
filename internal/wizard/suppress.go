package wizard

// SuppressionKind distinguishes the two suppression shapes.
type SuppressionKind int

const (
	// SuppressionCluster suppresses a single cluster from every future list.
	SuppressionCluster SuppressionKind = iota + 1

	// SuppressionPair suppresses one oriented (pivot, match) pair.
	SuppressionPair
)

// Suppression is a tagged variant naming either a cluster or a pair of
// clusters to exclude from future recommendations.
//
// Pairs are stored exactly as given: suppressing (a, b) does not suppress
// (b, a). Pair suppressions produced while browsing are always oriented
// (pinned, current), so UI-driven ignores match the orientation the user
// was shown.
//
// Suppression is comparable and used directly as a map key.
type Suppression struct {
	Kind SuppressionKind
	A    ClusterID
	B    ClusterID
}

// SuppressCluster builds a single-cluster suppression.
func SuppressCluster(id ClusterID) Suppression {
	return Suppression{Kind: SuppressionCluster, A: id}
}

// SuppressPair builds an oriented pair suppression.
func SuppressPair(a, b ClusterID) Suppression {
	return Suppression{Kind: SuppressionPair, A: a, B: b}
}

// suppressionSet is the wizard's grow-only ignore set.
//
// The set only grows within one wizard lifetime: nothing the wizard does
// removes entries, and Stop leaves the set untouched.
type suppressionSet map[Suppression]struct{}

// add records a suppression. Idempotent.
func (s suppressionSet) add(sup Suppression) {
	s[sup] = struct{}{}
}

// filterClusters returns ids with suppressed clusters removed, preserving
// the relative order of survivors. Pair suppressions do not affect it.
func (s suppressionSet) filterClusters(ids []ClusterID) []ClusterID {
	out := make([]ClusterID, 0, len(ids))
	for _, id := range ids {
		if _, ok := s[SuppressCluster(id)]; ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

// filterPairs returns the matches whose oriented (pivot, match) pair is
// not suppressed, preserving relative order. Cluster suppressions do not
// affect it.
func (s suppressionSet) filterPairs(pivot ClusterID, matches []ClusterID) []ClusterID {
	out := make([]ClusterID, 0, len(matches))
	for _, m := range matches {
		if _, ok := s[SuppressPair(pivot, m)]; ok {
			continue
		}
		out = append(out, m)
	}
	return out
}
