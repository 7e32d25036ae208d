package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/existflow/irongantt/internal/gantt"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID. IDs are never reused.

Examples:
  gantt delete 2
  gantt rm 2 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		task, err := ws.store.Get(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if ws.cfg.ConfirmDelete && !deleteYes {
			fmt.Fprintf(out, "About to delete: \"%s\" (#%d)\n", task.Name, task.ID)
			fmt.Fprint(out, "Are you sure? [y/N]: ")
			confirm, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			confirm = strings.TrimSpace(confirm)
			if confirm != "y" && confirm != "Y" {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		if err := ws.board.Dispatch(gantt.DeleteTask{ID: id}); err != nil {
			return err
		}
		fmt.Fprintf(out, "🗑️  Deleted: \"%s\"\n", task.Name)
		return nil
	})
}
