package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/contract"
	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Bulk link operations over a selection of items",
	}

	cmd.AddCommand(
		newLinkOpCmd(app, "chain", "Link selected items in sequence", app.Link.ProposeChain),
		newLinkOpCmd(app, "fan-in", "Make the last selected item depend on all others", app.Link.ProposeFanIn),
		newLinkOpCmd(app, "fan-out", "Make all later items depend on the first", app.Link.ProposeFanOut),
		newLinkOpCmd(app, "unlink", "Remove edges between selected items", app.Link.ProposeUnlink),
		newLinkOpCmd(app, "clear", "Remove all inbound edges of selected items", app.Link.ProposeClearAll),
	)

	return cmd
}

func newLinkOpCmd(
	app *App,
	use, short string,
	op func(ctx context.Context, req contract.LinkRequest) (*contract.LinkResponse, error),
) *cobra.Command {
	var plan string
	var selection []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			ids, err := resolveItemIDs(ctx, app, planID, selection)
			if err != nil {
				return err
			}

			req := contract.NewLinkRequest(planID, ids)
			req.DryRun = dryRun
			resp, err := op(ctx, req)
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
			fmt.Print(formatter.FormatLinkResponse(resp, formatter.LabelerFromItems(items)))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringSliceVar(&selection, "items", nil, "Selected items (titles, IDs, or ID prefixes)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without saving")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("items")

	return cmd
}
