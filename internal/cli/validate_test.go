package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidProfile(t *testing.T) {
	profilePath := writeTestFile(t, "good.cue", `
name: "strict"
quality_metric: "quality"
similarity: "max_sym"
list_limit: 20
min_quality: 0.3
`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{profilePath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `Profile "strict" valid`)
}

func TestValidateCommand_ValidProfileJSON(t *testing.T) {
	profilePath := writeTestFile(t, "good.cue", `name: "minimal"`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{profilePath})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "minimal", resp.Data.Profile)
}

func TestValidateCommand_MissingName(t *testing.T) {
	profilePath := writeTestFile(t, "noname.cue", `quality_metric: "quality"`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{profilePath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Profile invalid")
	assert.Contains(t, buf.String(), "name is required")
}

func TestValidateCommand_BadEnum(t *testing.T) {
	profilePath := writeTestFile(t, "bad.cue", `
name: "bad"
quality_metric: "snr"
`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{profilePath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_INVALID_PROFILE", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "quality_metric")
}

func TestValidateCommand_FileNotFound(t *testing.T) {
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/profile.cue"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
