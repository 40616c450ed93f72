package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassesZoo(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewClassesCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "zoo")})

	err := cmd.Execute()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "classes_zoo", buf.Bytes())
}

func TestClassesZooJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewClassesCommand(testRootOptions("json"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "zoo")})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)

	summaries, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, summaries, 3)

	first, ok := summaries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Animal", first["name"])
	assert.Equal(t, float64(3), first["objects"])
	assert.Nil(t, first["lineage"])

	second, ok := summaries[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Cat", second["name"])
	assert.Equal(t, []any{"Animal"}, second["lineage"])
}

func TestClassesMissingDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewClassesCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("testdata", "does-not-exist")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClassesInvalidManifest(t *testing.T) {
	// Reuses the cycle fixture through a manifest that cannot build.
	buf := &bytes.Buffer{}
	cmd := NewClassesCommand(testRootOptions("text"))
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join("..", "manifest", "testdata", "cycle")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "M002")
}
