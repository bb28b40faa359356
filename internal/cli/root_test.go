package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spikehound/wizard/internal/metrics"
	"github.com/spikehound/wizard/internal/wizard"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "spikehound", cmd.Use)
	assert.Contains(t, cmd.Long, "spike-sorted")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"import", "best", "similar", "run", "validate", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"best", "--db", "whatever.db", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestBestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	bestCmd, _, err := cmd.Find([]string{"best"})
	require.NoError(t, err)

	dbFlag := bestCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	limitFlag := bestCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "0", limitFlag.DefValue)
}

// seedTestDB builds a metrics database with the reference fixture:
// quality ranks best [2, 1, 3], cluster 2's matches rank [1, 3].
func seedTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.db")

	st, err := metrics.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	clusters := []metrics.Cluster{
		{ID: 1, NSpikes: 120, Quality: 0.5},
		{ID: 2, NSpikes: 340, Quality: 0.9},
		{ID: 3, NSpikes: 45, Quality: 0.1},
	}
	for _, c := range clusters {
		require.NoError(t, st.PutCluster(ctx, c))
	}
	require.NoError(t, st.PutSimilarity(ctx, wizard.ClusterID(2), wizard.ClusterID(1), 0.8))
	require.NoError(t, st.PutSimilarity(ctx, wizard.ClusterID(2), wizard.ClusterID(3), 0.3))

	return path
}

// writeTestFile writes content under a temp dir and returns the path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
