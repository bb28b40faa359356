package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikehound/wizard/internal/metrics"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database   string
	Clusters   string
	Similarity string
}

// ImportResult holds the output of the import command.
type ImportResult struct {
	ClusterRows    int `json:"cluster_rows"`
	SimilarityRows int `json:"similarity_rows"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load cluster metrics into a SQLite store",
		Long: `Import cluster and similarity metrics from TSV files into a SQLite
database, creating it if needed. Re-importing upserts rows.

Cluster files carry cluster_id, n_spikes, quality per line; similarity
files carry cluster_a, cluster_b, score. Lines starting with # are
skipped.

Examples:
  spikehound import --db metrics.db --clusters clusters.tsv
  spikehound import --db metrics.db --clusters clusters.tsv --similarity sim.tsv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite metrics database (required)")
	cmd.Flags().StringVar(&opts.Clusters, "clusters", "", "path to cluster metrics TSV")
	cmd.Flags().StringVar(&opts.Similarity, "similarity", "", "path to pairwise similarity TSV")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, cmd *cobra.Command) error {
	if opts.Clusters == "" && opts.Similarity == "" {
		return NewExitError(ExitCommandError, "nothing to import: pass --clusters and/or --similarity")
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := metrics.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	var result ImportResult

	if opts.Clusters != "" {
		f, err := os.Open(opts.Clusters)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open clusters file", err)
		}
		n, err := st.ImportClustersTSV(ctx, f)
		f.Close()
		if err != nil {
			return WrapExitError(ExitCommandError, "cluster import failed", err)
		}
		result.ClusterRows = n
		formatter.VerboseLog("imported %d cluster row(s) from %s", n, opts.Clusters)
	}

	if opts.Similarity != "" {
		f, err := os.Open(opts.Similarity)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open similarity file", err)
		}
		n, err := st.ImportSimilarityTSV(ctx, f)
		f.Close()
		if err != nil {
			return WrapExitError(ExitCommandError, "similarity import failed", err)
		}
		result.SimilarityRows = n
		formatter.VerboseLog("imported %d similarity row(s) from %s", n, opts.Similarity)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cluster row(s), %d similarity row(s) into %s\n",
		result.ClusterRows, result.SimilarityRows, opts.Database)
	return nil
}
