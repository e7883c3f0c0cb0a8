package cli

import (
	"fmt"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/contract"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var plan string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Recompute all derived dates for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			req := contract.NewScheduleRequest(planID)
			req.DryRun = dryRun
			resp, err := app.Schedule.Recompute(ctx, req)
			if err != nil {
				return err
			}

			items, err := app.Items.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Println(formatter.StyleDim.Render("Dry run; nothing saved."))
			}
			fmt.Print(formatter.FormatScheduleTable(items, resp.Dates))
			if resp.Applied != nil {
				fmt.Print(formatter.FormatApplyReport(resp.Applied, formatter.LabelerFromItems(items)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview dates without saving")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
