// Package metrics provides SQLite-backed storage for precomputed cluster
// metrics.
//
// The store holds the scoring data the wizard consumes but never
// computes:
//   - Clusters: per-cluster spike counts and quality scores
//   - Similarity: pairwise similarity scores, stored per orientation
//
// Scores are produced upstream (by the spike-sorting pipeline) and
// imported here; the store only loads them. QualityFunc and
// SimilarityFunc adapt the tables to the function signatures the wizard
// expects, so the engine stays oblivious to where scores come from.
//
// # Scoring Conventions
//
//   - Missing clusters score 0: an unscored cluster sinks to the bottom
//     of a quality ranking rather than failing the query.
//   - Missing pairs score 0: unknown similarity means "not similar".
//   - Similarity is stored per orientation; symmetrization, if wanted,
//     is a profile concern (see internal/profile).
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during imports
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: tolerate lock contention
//   - Single-writer connection pool (SQLite allows one writer)
package metrics
