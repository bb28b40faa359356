package metrics

import (
	"context"
	"fmt"

	"github.com/spikehound/wizard/internal/wizard"
)

// ClusterIDs returns every known cluster ID in ascending order.
//
// Returns an empty slice (not nil) when the database holds no clusters.
func (s *Store) ClusterIDs(ctx context.Context) ([]wizard.ClusterID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cluster_id
		FROM clusters
		ORDER BY cluster_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query cluster ids: %w", err)
	}
	defer rows.Close()

	ids := []wizard.ClusterID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan cluster id: %w", err)
		}
		ids = append(ids, wizard.ClusterID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cluster ids: %w", err)
	}

	return ids, nil
}

// Table is an in-memory snapshot of the metrics database.
//
// The wizard's scoring functions are plain float-returning callables with
// no error channel, so the CLI and harness load the whole table up front
// and hand out closures over it. Cluster counts in a sorting session are
// thousands at most; the snapshot is small.
type Table struct {
	ids        []wizard.ClusterID
	nSpikes    map[wizard.ClusterID]int64
	quality    map[wizard.ClusterID]float64
	similarity map[[2]wizard.ClusterID]float64
}

// Load reads the full metrics table into memory.
func (s *Store) Load(ctx context.Context) (*Table, error) {
	t := &Table{
		nSpikes:    make(map[wizard.ClusterID]int64),
		quality:    make(map[wizard.ClusterID]float64),
		similarity: make(map[[2]wizard.ClusterID]float64),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT cluster_id, n_spikes, quality
		FROM clusters
		ORDER BY cluster_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query clusters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      int64
			nSpikes int64
			quality float64
		)
		if err := rows.Scan(&id, &nSpikes, &quality); err != nil {
			return nil, fmt.Errorf("scan cluster: %w", err)
		}
		cid := wizard.ClusterID(id)
		t.ids = append(t.ids, cid)
		t.nSpikes[cid] = nSpikes
		t.quality[cid] = quality
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clusters: %w", err)
	}

	simRows, err := s.db.QueryContext(ctx, `
		SELECT cluster_a, cluster_b, score
		FROM similarity
		ORDER BY cluster_a ASC, cluster_b ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query similarity: %w", err)
	}
	defer simRows.Close()

	for simRows.Next() {
		var (
			a, b  int64
			score float64
		)
		if err := simRows.Scan(&a, &b, &score); err != nil {
			return nil, fmt.Errorf("scan similarity: %w", err)
		}
		t.similarity[[2]wizard.ClusterID{wizard.ClusterID(a), wizard.ClusterID(b)}] = score
	}
	if err := simRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate similarity: %w", err)
	}

	return t, nil
}

// ClusterIDs returns the snapshot's cluster IDs in ascending order.
func (t *Table) ClusterIDs() []wizard.ClusterID {
	out := make([]wizard.ClusterID, len(t.ids))
	copy(out, t.ids)
	return out
}

// Quality returns the stored quality score, or 0 for unknown clusters.
func (t *Table) Quality(id wizard.ClusterID) float64 {
	return t.quality[id]
}

// NSpikes returns the stored spike count, or 0 for unknown clusters.
func (t *Table) NSpikes(id wizard.ClusterID) int64 {
	return t.nSpikes[id]
}

// Similarity returns the stored score for the oriented pair (a, b), or 0
// when the orientation was never scored.
func (t *Table) Similarity(a, b wizard.ClusterID) float64 {
	return t.similarity[[2]wizard.ClusterID{a, b}]
}

// QualityFunc adapts the snapshot to the wizard's quality signature.
func (t *Table) QualityFunc() wizard.QualityFunc {
	return func(id wizard.ClusterID) float64 {
		return t.Quality(id)
	}
}

// NSpikesFunc adapts the spike counts to the wizard's quality signature,
// for profiles that rank by cluster size instead of quality.
func (t *Table) NSpikesFunc() wizard.QualityFunc {
	return func(id wizard.ClusterID) float64 {
		return float64(t.NSpikes(id))
	}
}

// SimilarityFunc adapts the snapshot to the wizard's similarity
// signature, preserving the stored orientation.
func (t *Table) SimilarityFunc() wizard.SimilarityFunc {
	return func(pivot, other wizard.ClusterID) float64 {
		return t.Similarity(pivot, other)
	}
}
