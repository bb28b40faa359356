package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikehound/wizard/internal/profile"
)

// ProfileError is one reported profile validation error.
type ProfileError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Profile string         `json:"profile,omitempty"`
	Errors  []ProfileError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.cue>",
		Short: "Check a CUE profile without running anything",
		Long: `Compile a CUE curation profile and report errors without touching any
database. Faster feedback than running best or run against real data.

Exit codes:
  0 - Profile valid
  1 - Profile invalid
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = formatter.Error("E_NOT_FOUND", fmt.Sprintf("profile not found: %s", path), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("profile not found: %s", path))
	}

	p, err := profile.LoadProfile(path)
	if err != nil {
		return outputProfileErrors(formatter, err)
	}

	formatter.VerboseLog("profile %q: metric=%s similarity=%s limit=%d",
		p.Name, p.QualityMetric, p.Similarity, p.ListLimit)

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Profile: p.Name})
	}
	fmt.Fprintf(formatter.Writer, "✓ Profile %q valid\n", p.Name)
	return nil
}

// outputProfileErrors reports compile errors and returns the failure
// exit code.
func outputProfileErrors(formatter *OutputFormatter, err error) error {
	pe := ProfileError{Field: "profile", Message: err.Error()}
	var cerr *profile.CompileError
	if errors.As(err, &cerr) {
		pe.Field = cerr.Field
		pe.Message = cerr.Message
		if cerr.Pos.IsValid() {
			pe.Line = cerr.Pos.Line()
		}
	}

	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, Errors: []ProfileError{pe}}
		if encErr := formatter.Error("E_INVALID_PROFILE", pe.Message, result); encErr != nil {
			return encErr
		}
		return NewExitError(ExitFailure, "profile validation failed")
	}

	fmt.Fprintln(formatter.Writer, "✗ Profile invalid")
	if pe.Line > 0 {
		fmt.Fprintf(formatter.Writer, "  line %d\n", pe.Line)
	}
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", pe.Field, pe.Message)
	return NewExitError(ExitFailure, "profile validation failed")
}
