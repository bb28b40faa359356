package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spikehound/wizard/internal/metrics"
	"github.com/spikehound/wizard/internal/profile"
	"github.com/spikehound/wizard/internal/wizard"
)

// openTable opens the metrics store at dbPath and loads its full score
// table. The caller owns the returned store and must Close it.
func openTable(ctx context.Context, dbPath string) (*metrics.Store, *metrics.Table, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := metrics.Open(dbPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	table, err := st.Load(ctx)
	if err != nil {
		_ = st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to load metrics", err)
	}
	return st, table, nil
}

// resolveProfile loads the profile at path, or the default profile when
// path is empty.
func resolveProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}

	p, err := profile.LoadProfile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load profile", err)
	}
	return p, nil
}

// buildWizard assembles a wizard over the loaded table with the
// profile's scoring functions bound.
func buildWizard(table *metrics.Table, p *profile.Profile) *wizard.Wizard {
	quality, similarity := p.Apply(table)
	w := wizard.New(wizard.WithClusterIDs(table.ClusterIDs()))
	w.SetQualityFunc(quality)
	w.SetSimilarityFunc(similarity)
	return w
}

// effectiveLimit resolves the list limit: an explicit flag wins, else
// the profile's default applies.
func effectiveLimit(flagLimit int, p *profile.Profile) int {
	if flagLimit > 0 {
		return flagLimit
	}
	return p.ListLimit
}
