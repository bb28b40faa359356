package wizard

import "sort"

// RankByScore scores every cluster and returns them sorted by descending
// score. Ties are broken by stable sort on the input order, which the
// wizard keeps ascending by ID, so equal-quality clusters come out in
// ascending ID order.
//
// If limit is zero the full ranking is returned; otherwise at most limit
// clusters (all of them when fewer exist). The input slice is not
// modified.
func RankByScore(ids []ClusterID, score func(ClusterID) float64, limit int) []ClusterID {
	type scored struct {
		id    ClusterID
		score float64
	}

	ranked := make([]scored, len(ids))
	for i, id := range ids {
		ranked[i] = scored{id: id, score: score(id)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]ClusterID, len(ranked))
	for i, s := range ranked {
		out[i] = s.id
	}
	return out
}
