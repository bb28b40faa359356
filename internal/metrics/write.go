package metrics

import (
	"context"
	"fmt"

	"github.com/spikehound/wizard/internal/wizard"
)

// Cluster is one row of the clusters table.
type Cluster struct {
	ID      wizard.ClusterID
	NSpikes int64
	Quality float64
}

// PutCluster upserts a cluster's metrics.
// Re-importing a cluster replaces its previous scores.
func (s *Store) PutCluster(ctx context.Context, c Cluster) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clusters (cluster_id, n_spikes, quality)
		VALUES (?, ?, ?)
		ON CONFLICT(cluster_id) DO UPDATE SET
			n_spikes = excluded.n_spikes,
			quality  = excluded.quality
	`, int64(c.ID), c.NSpikes, c.Quality)
	if err != nil {
		return fmt.Errorf("put cluster %d: %w", c.ID, err)
	}
	return nil
}

// PutSimilarity upserts the score for the oriented pair (a, b).
// The reverse orientation (b, a) is a separate row.
func (s *Store) PutSimilarity(ctx context.Context, a, b wizard.ClusterID, score float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO similarity (cluster_a, cluster_b, score)
		VALUES (?, ?, ?)
		ON CONFLICT(cluster_a, cluster_b) DO UPDATE SET
			score = excluded.score
	`, int64(a), int64(b), score)
	if err != nil {
		return fmt.Errorf("put similarity (%d, %d): %w", a, b, err)
	}
	return nil
}

// DeleteCluster removes a cluster's metrics and every similarity row that
// references it, in one transaction. Used after upstream merges retire an
// ID.
func (s *Store) DeleteCluster(ctx context.Context, id wizard.ClusterID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete cluster %d: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM clusters WHERE cluster_id = ?`, int64(id)); err != nil {
		return fmt.Errorf("delete cluster %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM similarity WHERE cluster_a = ? OR cluster_b = ?`,
		int64(id), int64(id)); err != nil {
		return fmt.Errorf("delete similarity for %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete cluster %d: %w", id, err)
	}
	return nil
}
