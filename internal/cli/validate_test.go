package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRootOptions(format string) *RootOptions {
	return &RootOptions{Format: format, Logger: zap.NewNop()}
}

func TestValidateZoo(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "zoo")})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ manifest valid: 3 class(es), 3 object(s)")
}

func TestValidateZooJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("json"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "zoo")})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, float64(3), data["classes"])
}

func TestValidateNonExistentDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "does-not-exist")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "L001")
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "L002")
	assert.Contains(t, buf.String(), "no CUE files found")
}

func TestValidateCycle(t *testing.T) {
	tmpDir := t.TempDir()
	cycle := `class: {
	A: {extends: ["B"]}
	B: {extends: ["A"]}
}
`
	err := os.WriteFile(filepath.Join(tmpDir, "cycle.cue"), []byte(cycle), 0644)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tmpDir})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, buf.String(), "✗ validation failed")
	assert.Contains(t, buf.String(), "M002")
}

func TestValidateCycleJSON(t *testing.T) {
	tmpDir := t.TempDir()
	cycle := `class: {
	A: {extends: ["A"]}
}
`
	err := os.WriteFile(filepath.Join(tmpDir, "cycle.cue"), []byte(cycle), 0644)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(testRootOptions("json"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{tmpDir})

	err = cmd.Execute()
	require.Error(t, err)

	var resp CLIResponse
	jsonErr := json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, jsonErr)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "M002", resp.Error.Code)
}
