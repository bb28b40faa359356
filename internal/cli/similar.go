package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spikehound/wizard/internal/wizard"
)

// SimilarOptions holds flags for the similar command.
type SimilarOptions struct {
	*RootOptions
	Database string
	Profile  string
	Limit    int
}

// SimilarEntry is one entry in a similarity listing.
type SimilarEntry struct {
	ClusterID  int64   `json:"cluster_id"`
	Similarity float64 `json:"similarity"`
}

// SimilarResult holds the output of the similar command.
type SimilarResult struct {
	Profile  string         `json:"profile"`
	Pivot    int64          `json:"pivot"`
	Clusters []SimilarEntry `json:"clusters"`
}

// NewSimilarCommand creates the similar command.
func NewSimilarCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimilarOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "similar <cluster-id>",
		Short: "Rank clusters by similarity to a pivot",
		Long: `Rank all other clusters by similarity to the given pivot cluster,
most similar first. The pivot itself never appears in the list.

Examples:
  spikehound similar 42 --db metrics.db
  spikehound similar 42 --db metrics.db --profile merge.cue --limit 5`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilar(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite metrics database (required)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "path to CUE profile (default: built-in profile)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "truncate the list (0 = profile default)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSimilar(opts *SimilarOptions, pivotArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	pivotID, err := strconv.ParseInt(pivotArg, 10, 64)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid cluster id %q", pivotArg))
	}
	pivot := wizard.ClusterID(pivotID)

	p, err := resolveProfile(opts.Profile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, table, err := openTable(ctx, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	_, similarity := p.Apply(table)
	w := buildWizard(table, p)
	formatter.VerboseLog("loaded %d cluster(s) from %s", w.Count(), opts.Database)

	ids, err := w.MostSimilarClusters(pivot, effectiveLimit(opts.Limit, p))
	if err != nil {
		return WrapExitError(ExitCommandError, "ranking failed", err)
	}

	result := SimilarResult{
		Profile:  p.Name,
		Pivot:    pivotID,
		Clusters: similarEntries(pivot, ids, similarity),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Clusters) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
		return nil
	}
	printSimilar(cmd, result.Clusters)
	return nil
}

// similarEntries decorates an ordered ID list with its similarity to the
// pivot under the profile's similarity mode.
func similarEntries(pivot wizard.ClusterID, ids []wizard.ClusterID, similarity wizard.SimilarityFunc) []SimilarEntry {
	out := make([]SimilarEntry, len(ids))
	for i, id := range ids {
		out[i] = SimilarEntry{
			ClusterID:  int64(id),
			Similarity: similarity(pivot, id),
		}
	}
	return out
}

func printSimilar(cmd *cobra.Command, clusters []SimilarEntry) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-10s %s\n", "CLUSTER", "SIMILARITY")
	for _, c := range clusters {
		fmt.Fprintf(w, "%-10d %.4g\n", c.ClusterID, c.Similarity)
	}
}
