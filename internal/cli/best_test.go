package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestCommand_Text(t *testing.T) {
	dbPath := seedTestDB(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewBestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "CLUSTER")
	// Quality order: 2 (0.9), 1 (0.5), 3 (0.1).
	idx2 := bytes.Index(buf.Bytes(), []byte("2  "))
	idx1 := bytes.Index(buf.Bytes(), []byte("1  "))
	assert.Less(t, idx2, idx1)
}

func TestBestCommand_JSON(t *testing.T) {
	dbPath := seedTestDB(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewBestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string     `json:"status"`
		Data   BestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "default", resp.Data.Profile)
	require.Len(t, resp.Data.Clusters, 3)
	assert.Equal(t, int64(2), resp.Data.Clusters[0].ClusterID)
	assert.Equal(t, int64(1), resp.Data.Clusters[1].ClusterID)
	assert.Equal(t, int64(3), resp.Data.Clusters[2].ClusterID)
	assert.Equal(t, 0.9, resp.Data.Clusters[0].Quality)
	assert.Equal(t, int64(340), resp.Data.Clusters[0].NSpikes)
}

func TestBestCommand_Limit(t *testing.T) {
	dbPath := seedTestDB(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewBestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--limit", "2"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Data BestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Data.Clusters, 2)
	assert.Equal(t, int64(2), resp.Data.Clusters[0].ClusterID)
}

func TestBestCommand_ProfileNSpikes(t *testing.T) {
	dbPath := seedTestDB(t)
	profilePath := writeTestFile(t, "size.cue", `
name: "size"
quality_metric: "n_spikes"
`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewBestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--profile", profilePath})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Data BestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "size", resp.Data.Profile)
	// n_spikes order: 2 (340), 1 (120), 3 (45).
	require.Len(t, resp.Data.Clusters, 3)
	assert.Equal(t, int64(2), resp.Data.Clusters[0].ClusterID)
	assert.Equal(t, int64(1), resp.Data.Clusters[1].ClusterID)
}

func TestBestCommand_MissingDB(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewBestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", "/nonexistent/metrics.db"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "database not found")
}
