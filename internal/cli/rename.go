package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename [task-id] [name]",
	Short: "Rename a task",
	Long: `Rename a task by its ID.

Examples:
  gantt rename 3 "Final review"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	name := strings.Join(args[1:], " ")

	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		if err := ws.board.Dispatch(gantt.RenameTask{ID: id, Name: name}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Renamed #%d to \"%s\"\n", id, name)
		return nil
	})
}
