package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a task",
	Long: `Add a task to the chart.

Dates accept YYYY-MM-DD, 'today', 'tomorrow', 'yesterday' or an offset
from today such as +3d or -1d.

Examples:
  gantt add "Write proposal"
  gantt add "Build" --start 2025-03-10 --end 2025-03-21
  gantt add "Review" -s +7d -e +9d --color "#FF9800"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addStart string
	addEnd   string
	addColor string
)

func init() {
	addCmd.Flags().StringVarP(&addStart, "start", "s", "today", "Start date")
	addCmd.Flags().StringVarP(&addEnd, "end", "e", "+7d", "End date")
	addCmd.Flags().StringVarP(&addColor, "color", "c", "", "Bar color (default from config)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		color := addColor
		if color == "" {
			color = ws.cfg.DefaultColor
		}
		if err := ws.board.Dispatch(gantt.AddTask{
			Name:  name,
			Start: addStart,
			End:   addEnd,
			Color: color,
		}); err != nil {
			return err
		}

		tasks := ws.store.Snapshot()
		t := tasks[len(tasks)-1]
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added #%d \"%s\" %s → %s\n",
			t.ID, t.Name, t.StartDate.Format(model.DateLayout), t.EndDate.Format(model.DateLayout))
		return nil
	})
}
