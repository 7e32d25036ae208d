package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/existflow/irongantt/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the chart",
	Long: `Print a static rendering of the chart, sized to the terminal.

Examples:
  gantt chart
  gantt chart --zoom day --width 160`,
	RunE: runChart,
}

var (
	chartZoom  string
	chartWidth int
)

func init() {
	chartCmd.Flags().StringVarP(&chartZoom, "zoom", "z", "", "Zoom level (quarter, month, week, day)")
	chartCmd.Flags().IntVarP(&chartWidth, "width", "w", 0, "Output width (default terminal width)")
}

func runChart(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		zoomName := ws.cfg.Zoom
		if chartZoom != "" {
			zoomName = chartZoom
		}
		zoom, err := gantt.ParseZoom(zoomName)
		if err != nil {
			return err
		}

		tasks := ws.store.Snapshot()
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found. Add one with: gantt add \"Your task\"")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.Static(tasks, outputWidth(chartWidth), zoom, time.Now()))
		return nil
	})
}

// outputWidth picks the explicit width, else the terminal's, else 100
func outputWidth(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
