package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/existflow/irongantt/internal/persist"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved versions of the chart",
	Long: `Show the most recent saved versions of the chart, newest first.
Only the sqlite backend keeps history.

Examples:
  gantt history --backend sqlite
  gantt history -n 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of versions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		hist, ok := ws.backend.(*persist.SQLiteBackend)
		if !ok {
			return fmt.Errorf("the %s backend does not keep history; use --backend sqlite", ws.cfg.Backend)
		}

		versions, err := hist.History(cmd.Context(), persist.TasksKey, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(versions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No saved versions yet.")
			return nil
		}

		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"#", "Tasks", "Last ID", "Size"})
		for i, data := range versions {
			snap, err := persist.Decode(data)
			if err != nil {
				tw.AppendRow(table.Row{i + 1, "unreadable", "", humanize.Bytes(uint64(len(data)))})
				continue
			}
			tw.AppendRow(table.Row{i + 1, len(snap.Tasks), snap.LastID, humanize.Bytes(uint64(len(data)))})
		}
		fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
		return nil
	})
}
