package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/persist"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears flag values left over from a previous Execute
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func setupHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"IRONGANTT_DATA_DIR", "IRONGANTT_BACKEND", "IRONGANTT_LOG_FILE", "IRONGANTT_ZOOM"} {
		t.Setenv(key, "")
	}
}

func TestCommands_TaskLifecycle(t *testing.T) {
	setupHome(t)

	out, err := run(t, "", "add", "Design", "doc", "-s", "2025-03-01", "-e", "2025-03-05")
	require.NoError(t, err)
	assert.Contains(t, out, `✓ Added #1 "Design doc" 2025-03-01 → 2025-03-05`)

	_, err = run(t, "", "add", "Build", "-s", "2025-03-06", "-e", "2025-03-04")
	require.Error(t, err)
	assert.True(t, gantt.IsValidation(err))

	out, err = run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Design doc")
	assert.Contains(t, out, "1 tasks")
	assert.NotContains(t, out, "Build")

	out, err = run(t, "", "move", "1", "--by", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-03 → 2025-03-07")

	out, err = run(t, "", "move", "1", "--start", "2025-04-01", "--end", "2025-04-02")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04-01 → 2025-04-02")

	_, err = run(t, "", "resize", "1", "--by", "-2")
	assert.True(t, gantt.IsValidation(err))

	out, err = run(t, "", "resize", "1", "--by", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-04-01 → 2025-04-05")

	_, err = run(t, "", "rename", "1", "Blueprint")
	require.NoError(t, err)

	out, err = run(t, "", "chart", "--width", "100", "--zoom", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Blueprint")

	out, err = run(t, "n\n", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = run(t, "y\n", "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted: "Blueprint"`)

	_, err = run(t, "", "delete", "1", "--yes")
	assert.True(t, gantt.IsNotFound(err))

	out, err = run(t, "", "add", "Again")
	require.NoError(t, err)
	assert.Contains(t, out, "#2", "ids are not reused after a delete")
}

func TestCommands_BadArguments(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "move", "abc", "--by", "1")
	assert.ErrorContains(t, err, "invalid task id")

	_, err = run(t, "", "move", "1")
	assert.Error(t, err)

	_, err = run(t, "", "move", "1", "--by", "1", "--start", "today")
	assert.Error(t, err)

	_, err = run(t, "", "list", "--backend", "tape")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestCommands_SeedAndHistory(t *testing.T) {
	setupHome(t)

	_, err := run(t, "", "history")
	assert.ErrorContains(t, err, "does not keep history")

	out, err := run(t, "", "seed", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, `#3 "Task 3"`)

	// The backend flag is saved to the config
	out, err = run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Last ID")

	out, err = run(t, "", "list", "--style", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Task 2")
	assert.Contains(t, out, "3 tasks")
}

func TestOpenWorkspace_CorruptChart(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	t.Setenv("IRONGANTT_DATA_DIR", dir)
	cfg = nil

	path := filepath.Join(dir, persist.TasksKey+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	// the interactive chart starts empty rather than refusing to launch
	ws, err := openWorkspace(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, ws.store.Len())
	require.NoError(t, ws.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data), "an untouched chart is not rewritten")

	// one-shot commands refuse to work on a chart they could not read
	_, err = openWorkspace(context.Background(), false)
	require.Error(t, err)
	assert.True(t, gantt.IsPersistence(err))

	_, err = run(t, "", "list")
	assert.True(t, gantt.IsPersistence(err))
}
