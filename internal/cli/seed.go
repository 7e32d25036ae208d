package cli

import (
	"fmt"
	"time"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/internal/model"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the demo tasks",
	Long: `Add three demo tasks starting today. Existing tasks are kept and the
demo tasks get fresh IDs.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	return withWorkspace(cmd.Context(), func(ws *workspace) error {
		for _, t := range model.SeedTasks(model.StartOfDay(time.Now())) {
			added, err := ws.store.Add(t.Name, t.StartDate, t.EndDate, t.Color)
			if err != nil {
				return err
			}
			logger.Debug("Seeded task", logger.F("id", added.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added #%d \"%s\"\n", added.ID, added.Name)
		}
		return nil
	})
}
