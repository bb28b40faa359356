package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankByScore_DescendingOrder(t *testing.T) {
	ids := []ClusterID{1, 2, 3}
	quality := map[ClusterID]float64{1: 0.5, 2: 0.9, 3: 0.1}

	got := RankByScore(ids, func(id ClusterID) float64 { return quality[id] }, 0)

	assert.Equal(t, []ClusterID{2, 1, 3}, got)
}

func TestRankByScore_Limit(t *testing.T) {
	ids := []ClusterID{1, 2, 3, 4, 5}
	score := func(id ClusterID) float64 { return float64(id) }

	got := RankByScore(ids, score, 2)

	assert.Equal(t, []ClusterID{5, 4}, got)
}

func TestRankByScore_LimitBeyondLength(t *testing.T) {
	ids := []ClusterID{1, 2}
	score := func(id ClusterID) float64 { return float64(id) }

	got := RankByScore(ids, score, 10)

	assert.Equal(t, []ClusterID{2, 1}, got, "limit past the end returns everything")
}

func TestRankByScore_ZeroLimitMeansUnlimited(t *testing.T) {
	ids := []ClusterID{3, 1, 2}
	score := func(id ClusterID) float64 { return -float64(id) }

	got := RankByScore(ids, score, 0)

	assert.Equal(t, []ClusterID{1, 2, 3}, got)
}

func TestRankByScore_StableTies(t *testing.T) {
	// Equal scores keep the input order (ascending IDs as the wizard
	// feeds them).
	ids := []ClusterID{10, 20, 30, 40}
	score := func(id ClusterID) float64 {
		if id == 30 {
			return 1.0
		}
		return 0.5
	}

	got := RankByScore(ids, score, 0)

	assert.Equal(t, []ClusterID{30, 10, 20, 40}, got)
}

func TestRankByScore_Empty(t *testing.T) {
	got := RankByScore(nil, func(ClusterID) float64 { return 0 }, 5)

	assert.Empty(t, got)
}

func TestRankByScore_DoesNotMutateInput(t *testing.T) {
	ids := []ClusterID{1, 2, 3}
	score := func(id ClusterID) float64 { return -float64(id) }

	_ = RankByScore(ids, score, 0)

	assert.Equal(t, []ClusterID{1, 2, 3}, ids)
}

func TestRankByScore_Permutation(t *testing.T) {
	ids := []ClusterID{7, 3, 9, 1, 5}
	score := func(id ClusterID) float64 { return float64(id % 4) }

	got := RankByScore(ids, score, 0)

	assert.ElementsMatch(t, ids, got, "ranking is a permutation of the input")
}
