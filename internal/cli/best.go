package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spikehound/wizard/internal/metrics"
	"github.com/spikehound/wizard/internal/wizard"
)

// BestOptions holds flags for the best command.
type BestOptions struct {
	*RootOptions
	Database string
	Profile  string
	Limit    int
}

// RankedCluster is one entry in a ranked cluster listing.
type RankedCluster struct {
	ClusterID int64   `json:"cluster_id"`
	Quality   float64 `json:"quality"`
	NSpikes   int64   `json:"n_spikes"`
}

// BestResult holds the output of the best command.
type BestResult struct {
	Profile  string          `json:"profile"`
	Clusters []RankedCluster `json:"clusters"`
}

// NewBestCommand creates the best command.
func NewBestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "best",
		Short: "Rank clusters by quality",
		Long: `Rank all clusters in the metrics database by quality, best first.

Ignored clusters are not modeled here; this is the raw ranking a fresh
session would start from.

Examples:
  spikehound best --db metrics.db
  spikehound best --db metrics.db --profile strict.cue --limit 10
  spikehound best --db metrics.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBest(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite metrics database (required)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "path to CUE profile (default: built-in profile)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "truncate the list (0 = profile default)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runBest(opts *BestOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

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

	w := buildWizard(table, p)
	formatter.VerboseLog("loaded %d cluster(s) from %s", w.Count(), opts.Database)

	ids, err := w.BestClusters(effectiveLimit(opts.Limit, p))
	if err != nil {
		return WrapExitError(ExitCommandError, "ranking failed", err)
	}

	result := BestResult{
		Profile:  p.Name,
		Clusters: rankedClusters(ids, table),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Clusters) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clusters.")
		return nil
	}
	printRanked(cmd, result.Clusters)
	return nil
}

// rankedClusters decorates an ordered ID list with its stored metrics.
func rankedClusters(ids []wizard.ClusterID, table *metrics.Table) []RankedCluster {
	out := make([]RankedCluster, len(ids))
	for i, id := range ids {
		out[i] = RankedCluster{
			ClusterID: int64(id),
			Quality:   table.Quality(id),
			NSpikes:   table.NSpikes(id),
		}
	}
	return out
}

func printRanked(cmd *cobra.Command, clusters []RankedCluster) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-10s %-10s %s\n", "CLUSTER", "QUALITY", "N_SPIKES")
	for _, c := range clusters {
		fmt.Fprintf(w, "%-10d %-10.4g %d\n", c.ClusterID, c.Quality, c.NSpikes)
	}
}
