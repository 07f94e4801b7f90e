package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhilNad/with-respect-to/internal/frame"
)

// execute runs the CLI with args against a fresh command tree and returns
// its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "wrt", cmd.Use)
	assert.Contains(t, cmd.Long, "coordinate frames")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"get", "set", "rm", "frames", "tree", "import", "export"}

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

	worldFlag := cmd.PersistentFlags().Lookup("world")
	require.NotNil(t, worldFlag)
	assert.Equal(t, "w", worldFlag.Shorthand)

	dirFlag := cmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dirFlag)
	assert.Equal(t, ".", dirFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormatRejected(t *testing.T) {
	_, err := execute(t, "--format", "xml", "frames")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSetAndGet(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "set", "a", "--wrt", "world", "--t", "1,1,1")
	require.NoError(t, err)

	out, err := execute(t, "--dir", dir, "-w", "test", "get", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "1.000000")

	out, err = execute(t, "--dir", dir, "-w", "test", "--format", "json", "get", "a")
	require.NoError(t, err)
	var result struct {
		Rotation    [3][3]float64 `json:"rotation"`
		Translation [3]float64    `json:"translation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, [3]float64{1, 1, 1}, result.Translation)
}

func TestGet_UnknownFrameExitCode(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "get", "ghost")
	require.Error(t, err)
	assert.True(t, frame.IsUnknownFrame(err), "err = %v", err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestSet_WorldIsImmutable(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "set", "world", "--wrt", "a")
	require.Error(t, err)
	assert.True(t, frame.IsImmutableRoot(err), "err = %v", err)
}

func TestFrames_ListsNames(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "set", "a", "--wrt", "world")
	require.NoError(t, err)

	out, err := execute(t, "--dir", dir, "-w", "test", "frames")
	require.NoError(t, err)
	assert.Equal(t, "a\nworld\n", out)
}

func TestRm_RemovesFrame(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "set", "a", "--wrt", "world")
	require.NoError(t, err)
	_, err = execute(t, "--dir", dir, "-w", "test", "rm", "a")
	require.NoError(t, err)

	out, err := execute(t, "--dir", dir, "-w", "test", "frames")
	require.NoError(t, err)
	assert.Equal(t, "world\n", out)
}

func TestTree_RendersHierarchy(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--dir", dir, "-w", "test", "set", "a", "--wrt", "world", "--t", "1,1,1")
	require.NoError(t, err)
	_, err = execute(t, "--dir", dir, "-w", "test", "set", "b", "--wrt", "a", "--rpy", "90,0,0")
	require.NoError(t, err)

	out, err := execute(t, "--dir", dir, "-w", "test", "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "world")
	assert.Contains(t, out, "└── a")
	assert.Contains(t, out, "    └── b")
}

func TestImportExport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "scene.yaml")
	doc := `frames:
  - name: a
    wrt: world
    translation: [1, 1, 1]
  - name: b
    wrt: a
    rpy_deg: [90, 0, 0]
`
	require.NoError(t, os.WriteFile(sceneFile, []byte(doc), 0o644))

	_, err := execute(t, "--dir", dir, "-w", "test", "import", sceneFile)
	require.NoError(t, err)

	out, err := execute(t, "--dir", dir, "-w", "test", "frames")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nworld\n", out)

	exported, err := execute(t, "--dir", dir, "-w", "test", "export")
	require.NoError(t, err)
	assert.Contains(t, exported, "name: a")
	assert.Contains(t, exported, "name: b")

	// The exported document applies cleanly to a fresh world.
	exportFile := filepath.Join(dir, "exported.yaml")
	require.NoError(t, os.WriteFile(exportFile, []byte(exported), 0o644))
	_, err = execute(t, "--dir", dir, "-w", "copy", "import", exportFile)
	require.NoError(t, err)
}

func TestImport_RejectsInvalidScene(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(sceneFile, []byte("frames:\n  - name: Bad Name\n    wrt: world\n"), 0o644))

	_, err := execute(t, "--dir", dir, "-w", "test", "import", sceneFile)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestMissingWorldFlag(t *testing.T) {
	_, err := execute(t, "--dir", t.TempDir(), "frames")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(frame.NewUnknownFrame("x")))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "scenario failed", nil)))
}
