package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/existflow/irongantt/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in chart order.

Examples:
  gantt list
  gantt ls --style plain`,
	RunE: runList,
}

var listStyle string

func init() {
	listCmd.Flags().StringVar(&listStyle, "style", "rounded", "Table style (rounded, light, plain)")
}

func runList(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		tasks := ws.store.Snapshot()
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found. Add one with: gantt add \"Your task\"")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTaskTable(tasks, listStyle))
		return nil
	})
}

func renderTaskTable(tasks []model.Task, style string) string {
	tw := table.NewWriter()
	switch style {
	case "plain":
		tw.SetStyle(table.StyleDefault)
	case "light":
		tw.SetStyle(table.StyleLight)
	default:
		tw.SetStyle(table.StyleRounded)
	}

	tw.AppendHeader(table.Row{"ID", "Name", "Start", "End", "Days", "Color"})
	var total float64
	for _, t := range tasks {
		days := t.Duration().Hours() / 24
		total += days
		tw.AppendRow(table.Row{
			t.ID,
			t.Name,
			t.StartDate.Format(model.DateLayout),
			t.EndDate.Format(model.DateLayout),
			humanize.FtoaWithDigits(days, 1),
			t.Color,
		})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d tasks", len(tasks)), "", "", humanize.FtoaWithDigits(total, 1), ""})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 40},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}
