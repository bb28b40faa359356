package profile

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikehound/wizard/internal/metrics"
	"github.com/spikehound/wizard/internal/wizard"
)

func compileString(t *testing.T, src string) (*Profile, error) {
	t.Helper()
	ctx := cuecontext.New()
	return CompileProfile(ctx.CompileString(src))
}

func TestCompileProfileBasic(t *testing.T) {
	p, err := compileString(t, `
		name:           "dense-probe"
		quality_metric: "n_spikes"
		similarity:     "max_sym"
		list_limit:     20
		min_quality:    0.05
	`)

	require.NoError(t, err)
	assert.Equal(t, "dense-probe", p.Name)
	assert.Equal(t, MetricNSpikes, p.QualityMetric)
	assert.Equal(t, SimilarityMaxSym, p.Similarity)
	assert.Equal(t, 20, p.ListLimit)
	assert.True(t, p.HasMinQuality)
	assert.Equal(t, 0.05, p.MinQuality)
}

func TestCompileProfileDefaults(t *testing.T) {
	p, err := compileString(t, `name: "minimal"`)

	require.NoError(t, err)
	assert.Equal(t, MetricQuality, p.QualityMetric)
	assert.Equal(t, SimilarityRaw, p.Similarity)
	assert.Equal(t, 0, p.ListLimit)
	assert.False(t, p.HasMinQuality)
}

func TestCompileProfileMissingName(t *testing.T) {
	_, err := compileString(t, `quality_metric: "quality"`)

	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "name", ce.Field)
}

func TestCompileProfileInvalidMetric(t *testing.T) {
	_, err := compileString(t, `
		name:           "bad"
		quality_metric: "amplitude"
	`)

	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "quality_metric", ce.Field)
	assert.Contains(t, ce.Message, "amplitude")
}

func TestCompileProfileInvalidSimilarity(t *testing.T) {
	_, err := compileString(t, `
		name:       "bad"
		similarity: "mean"
	`)

	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "similarity", ce.Field)
}

func TestCompileProfileNegativeLimit(t *testing.T) {
	_, err := compileString(t, `
		name:       "bad"
		list_limit: -1
	`)

	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "list_limit", ce.Field)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rig.cue")
	require.NoError(t, os.WriteFile(path, []byte(`
		name:       "rig-a"
		list_limit: 10
	`), 0o644))

	p, err := LoadProfile(path)

	require.NoError(t, err)
	assert.Equal(t, "rig-a", p.Name)
	assert.Equal(t, 10, p.ListLimit)
}

func TestLoadProfile_SyntaxErrorHasPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.cue")
	require.NoError(t, os.WriteFile(path, []byte("name: \"x\"\nlist_limit: {{\n"), 0o644))

	_, err := LoadProfile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.cue")
}

func newScoredTable(t *testing.T) *metrics.Table {
	t.Helper()
	s, err := metrics.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	require.NoError(t, s.PutCluster(ctx, metrics.Cluster{ID: 1, NSpikes: 500, Quality: 0.5}))
	require.NoError(t, s.PutCluster(ctx, metrics.Cluster{ID: 2, NSpikes: 900, Quality: 0.9}))
	require.NoError(t, s.PutCluster(ctx, metrics.Cluster{ID: 3, NSpikes: 120, Quality: 0.02}))
	require.NoError(t, s.PutSimilarity(ctx, 2, 1, 0.8))
	require.NoError(t, s.PutSimilarity(ctx, 1, 2, 0.4))

	table, err := s.Load(ctx)
	require.NoError(t, err)
	return table
}

func TestProfileApply_QualityFloorSinksClusters(t *testing.T) {
	table := newScoredTable(t)
	p := Default()
	p.MinQuality = 0.05
	p.HasMinQuality = true

	quality, _ := p.Apply(table)

	assert.Equal(t, 0.9, quality(2))
	assert.True(t, math.IsInf(quality(3), -1), "below-floor cluster sinks")
}

func TestProfileApply_MaxSymSimilarity(t *testing.T) {
	table := newScoredTable(t)
	p := Default()
	p.Similarity = SimilarityMaxSym

	_, similarity := p.Apply(table)

	assert.Equal(t, 0.8, similarity(1, 2), "max of 0.4 and 0.8")
	assert.Equal(t, 0.8, similarity(2, 1))
}

func TestProfileApply_RawSimilarityKeepsOrientation(t *testing.T) {
	table := newScoredTable(t)

	_, similarity := Default().Apply(table)

	assert.Equal(t, 0.4, similarity(1, 2))
	assert.Equal(t, 0.8, similarity(2, 1))
}

func TestProfileApply_NSpikesMetricDrivesWizard(t *testing.T) {
	table := newScoredTable(t)
	p := Default()
	p.QualityMetric = MetricNSpikes

	quality, _ := p.Apply(table)

	w := wizard.New(wizard.WithClusterIDs(table.ClusterIDs()))
	w.SetQualityFunc(quality)

	best, err := w.BestClusters(0)
	require.NoError(t, err)
	assert.Equal(t, []wizard.ClusterID{2, 1, 3}, best)
}
