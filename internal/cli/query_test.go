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

func runQueryCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewQueryCommand(testRootOptions(format))
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{filepath.Join("testdata", "zoo")}, args...))
	return buf, cmd.Execute()
}

func TestQueryAnimals(t *testing.T) {
	// The Animal bucket holds its own object plus the dog and cat fanned
	// in at insert time, in insertion order.
	buf, err := runQueryCommand(t, "text", "--class", "Animal")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "query_animals", buf.Bytes())
}

func TestQueryWhere(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Animal", "--where", "name=Rex")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "query_where", buf.Bytes())
}

func TestQueryWhereNumericField(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Animal", "--where", "age=5")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Whiskers")
	assert.NotContains(t, buf.String(), "Rex")
}

func TestQueryWhereConjunction(t *testing.T) {
	buf, err := runQueryCommand(t, "text",
		"--class", "Animal", "--where", "name=Rex", "--where", "age=5")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Rex")
}

func TestQueryByID(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Dog", "--id", "1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Rex")
}

func TestQueryByID_NotFound(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Dog", "--id", "99")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "hasn't been found")
}

func TestQueryByID_DescendantNotVisibleFromChild(t *testing.T) {
	// Fan-out is upward only: the directly-inserted animal never appears
	// in the Dog bucket.
	_, err := runQueryCommand(t, "text", "--class", "Dog", "--id", "3")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestQueryCount(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Animal", "--count")
	require.NoError(t, err)
	assert.Equal(t, "3\n", buf.String())
}

func TestQueryCountJSON(t *testing.T) {
	buf, err := runQueryCommand(t, "json", "--class", "Animal", "--count", "--where", "name=Rex")
	require.NoError(t, err)

	var resp CLIResponse
	jsonErr := json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, jsonErr)
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), data["count"])
}

func TestQueryUnknownClass(t *testing.T) {
	buf, err := runQueryCommand(t, "text", "--class", "Fish")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "no repository for Fish has been found")
}

func TestQueryInvalidWhereClause(t *testing.T) {
	_, err := runQueryCommand(t, "text", "--class", "Animal", "--where", "noequals")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "expected field=value")
}

func TestQueryJSONObjects(t *testing.T) {
	buf, err := runQueryCommand(t, "json", "--class", "Dog")
	require.NoError(t, err)

	var resp CLIResponse
	jsonErr := json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, jsonErr)
	assert.Equal(t, "ok", resp.Status)

	objects, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, objects, 1)

	dog, ok := objects[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1", dog["id"])
	assert.Equal(t, "Dog", dog["class"])
}
