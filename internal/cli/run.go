package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikehound/wizard/internal/session"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Profile  string
	Token    string

	// TokenGenerator allows overriding the session token generator (for
	// testing). If nil, defaults to UUIDv7Generator.
	TokenGenerator session.TokenGenerator
}

// RunResult holds the output of the run command.
type RunResult struct {
	Token string               `json:"token"`
	Trace []session.TraceEvent `json:"trace"`
	Final string               `json:"final_selection"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script-file>",
		Short: "Execute an operation script as a recorded session",
		Long: `Execute a navigation script against the metrics database and print
the recorded trace.

Scripts hold one operation per line; blank lines and # comments are
skipped:

  start
  next
  pin
  ignore 12 7
  unpin

Sessions are tagged with a UUIDv7 token unless --token fixes one.

Examples:
  spikehound run review.ops --db metrics.db
  spikehound run review.ops --db metrics.db --profile strict.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite metrics database (required)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "path to CUE profile (default: built-in profile)")
	cmd.Flags().StringVar(&opts.Token, "token", "", "fixed session token (default: generated UUIDv7)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runScript(opts *RunOptions, scriptPath string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read script", err)
	}
	ops, err := session.ParseScript(string(src))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse script", err)
	}
	if len(ops) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("script is empty: %s", scriptPath))
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

	gen := opts.TokenGenerator
	if gen == nil {
		gen = session.UUIDv7Generator{}
	}
	if opts.Token != "" {
		gen = session.NewFixedGenerator(opts.Token)
	}

	w := buildWizard(table, p)
	sess := session.NewSession(w, gen, session.WithLogger(log))
	log.Info("session started", "token", sess.Token(), "ops", len(ops), "clusters", w.Count())

	if _, err := sess.ApplyScript(ops); err != nil {
		return WrapExitError(ExitFailure, "script failed", err)
	}

	result := RunResult{
		Token: sess.Token(),
		Trace: sess.Trace(),
		Final: w.CurrentSelection().String(),
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	printTrace(cmd, result)
	return nil
}

func printTrace(cmd *cobra.Command, result RunResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Session %s\n", result.Token)
	for _, ev := range result.Trace {
		pinned := ""
		if ev.Pinned != "" {
			pinned = " pinned=" + ev.Pinned
		}
		fmt.Fprintf(w, "%4d  %-10s selection=%s index=%d count=%d running=%t%s\n",
			ev.Seq, ev.Op, ev.Selection, ev.Index, ev.Count, ev.Running, pinned)
	}
	fmt.Fprintf(w, "Final selection: %s\n", result.Final)
}
