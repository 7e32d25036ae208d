package cli

import (
	"fmt"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/model"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id]",
	Short: "Reschedule a task",
	Long: `Move a task by a number of days, or set both of its dates.

Examples:
  gantt move 2 --by 3
  gantt move 2 --by -1
  gantt move 2 --start 2025-04-01 --end 2025-04-04`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

var resizeCmd = &cobra.Command{
	Use:   "resize [task-id]",
	Short: "Change a task's end date",
	Long: `Move a task's end date by a number of days. The start stays put.

Examples:
  gantt resize 1 --by 2
  gantt resize 1 --by -1`,
	Args: cobra.ExactArgs(1),
	RunE: runResize,
}

var (
	moveBy    int
	moveStart string
	moveEnd   string
	resizeBy  int
)

func init() {
	moveCmd.Flags().IntVar(&moveBy, "by", 0, "Days to shift (negative for earlier)")
	moveCmd.Flags().StringVarP(&moveStart, "start", "s", "", "New start date")
	moveCmd.Flags().StringVarP(&moveEnd, "end", "e", "", "New end date")
	moveCmd.MarkFlagsMutuallyExclusive("by", "start")
	moveCmd.MarkFlagsMutuallyExclusive("by", "end")
	moveCmd.MarkFlagsRequiredTogether("start", "end")
	moveCmd.MarkFlagsOneRequired("by", "start")

	resizeCmd.Flags().IntVar(&resizeBy, "by", 0, "Days to add to the end date")
	_ = resizeCmd.MarkFlagRequired("by")
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var in gantt.Intent = gantt.ShiftTask{ID: id, Days: moveBy}
	if cmd.Flags().Changed("start") {
		in = gantt.RescheduleTask{ID: id, Start: moveStart, End: moveEnd}
	}
	return applyAndReport(cmd, id, in)
}

func runResize(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return applyAndReport(cmd, id, gantt.ResizeTask{ID: id, Days: resizeBy})
}

func applyAndReport(cmd *cobra.Command, id int64, in gantt.Intent) error {
	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		if err := ws.board.Dispatch(in); err != nil {
			return err
		}
		t, err := ws.store.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ #%d \"%s\" %s → %s\n",
			t.ID, t.Name, t.StartDate.Format(model.DateLayout), t.EndDate.Format(model.DateLayout))
		return nil
	})
}
