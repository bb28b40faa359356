package metrics

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spikehound/wizard/internal/wizard"
)

// ImportClustersTSV loads cluster metrics from tab-separated text, one
// cluster per line:
//
//	cluster_id <TAB> n_spikes <TAB> quality
//
// Blank lines and lines starting with '#' are skipped. The import is
// transactional: any malformed line aborts the whole import.
//
// Returns the number of clusters imported.
func (s *Store) ImportClustersTSV(ctx context.Context, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import clusters: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clusters (cluster_id, n_spikes, quality)
		VALUES (?, ?, ?)
		ON CONFLICT(cluster_id) DO UPDATE SET
			n_spikes = excluded.n_spikes,
			quality  = excluded.quality
	`)
	if err != nil {
		return 0, fmt.Errorf("import clusters: %w", err)
	}
	defer stmt.Close()

	count := 0
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields, ok := splitTSVLine(scanner.Text())
		if !ok {
			continue
		}
		if len(fields) != 3 {
			return 0, fmt.Errorf("import clusters: line %d: expected 3 fields, got %d", lineNo, len(fields))
		}

		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("import clusters: line %d: cluster_id: %w", lineNo, err)
		}
		nSpikes, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("import clusters: line %d: n_spikes: %w", lineNo, err)
		}
		quality, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, fmt.Errorf("import clusters: line %d: quality: %w", lineNo, err)
		}

		if _, err := stmt.ExecContext(ctx, id, nSpikes, quality); err != nil {
			return 0, fmt.Errorf("import clusters: line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("import clusters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import clusters: %w", err)
	}
	return count, nil
}

// ImportSimilarityTSV loads pairwise similarity from tab-separated text,
// one oriented pair per line:
//
//	cluster_a <TAB> cluster_b <TAB> score
//
// Same comment/blank-line and transaction rules as ImportClustersTSV.
// Returns the number of pairs imported.
func (s *Store) ImportSimilarityTSV(ctx context.Context, r io.Reader) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("import similarity: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO similarity (cluster_a, cluster_b, score)
		VALUES (?, ?, ?)
		ON CONFLICT(cluster_a, cluster_b) DO UPDATE SET
			score = excluded.score
	`)
	if err != nil {
		return 0, fmt.Errorf("import similarity: %w", err)
	}
	defer stmt.Close()

	count := 0
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields, ok := splitTSVLine(scanner.Text())
		if !ok {
			continue
		}
		if len(fields) != 3 {
			return 0, fmt.Errorf("import similarity: line %d: expected 3 fields, got %d", lineNo, len(fields))
		}

		a, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("import similarity: line %d: cluster_a: %w", lineNo, err)
		}
		b, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("import similarity: line %d: cluster_b: %w", lineNo, err)
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return 0, fmt.Errorf("import similarity: line %d: score: %w", lineNo, err)
		}
		if wizard.ClusterID(a) == wizard.ClusterID(b) {
			return 0, fmt.Errorf("import similarity: line %d: self-pair (%d, %d)", lineNo, a, b)
		}

		if _, err := stmt.ExecContext(ctx, a, b, score); err != nil {
			return 0, fmt.Errorf("import similarity: line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("import similarity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("import similarity: %w", err)
	}
	return count, nil
}

// splitTSVLine trims a line and splits it on tabs. ok is false for blank
// lines and '#' comments.
func splitTSVLine(line string) (fields []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}
	return strings.Split(line, "\t"), true
}
