package cli

import (
	"fmt"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// depTypeValue is a pflag.Value that validates dependency types at parse
// time, so "telos edge add --type xs" fails before touching the database.
type depTypeValue struct {
	t domain.DependencyType
}

var _ pflag.Value = (*depTypeValue)(nil)

func (v *depTypeValue) String() string { return string(v.t) }
func (v *depTypeValue) Type() string   { return "dep-type" }

func (v *depTypeValue) Set(s string) error {
	t, err := domain.ParseDependencyType(s)
	if err != nil {
		return err
	}
	v.t = t
	return nil
}

func newEdgeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Edit individual dependency edges",
	}

	cmd.AddCommand(
		newEdgeAddCmd(app),
		newEdgeRemoveCmd(app),
	)

	return cmd
}

func newEdgeAddCmd(app *App) *cobra.Command {
	var plan, item, after string
	var lag int
	var dryRun bool
	depType := depTypeValue{t: domain.FinishToStart}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Make one item depend on another",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			// Missing endpoints fall back to an interactive form.
			if item == "" || after == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--item and --after are required in non-interactive mode")
				}
				if err := runEdgeForm(ctx, app, planID, &item, &after); err != nil {
					return err
				}
			}

			itemID, err := resolveItemID(ctx, app, planID, item)
			if err != nil {
				return err
			}
			predID, err := resolveItemID(ctx, app, planID, after)
			if err != nil {
				return err
			}

			resp, err := app.Link.AddEdge(ctx, planID, domain.PredecessorEdge{
				ItemID:        itemID,
				PredecessorID: predID,
				Type:          depType.t,
				LagDays:       lag,
			}, dryRun)
			if err != nil {
				return err
			}

			items, err := app.Items.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatLinkResponse(resp, formatter.LabelerFromItems(items)))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&item, "item", "", "Dependent item (title, ID, or ID prefix)")
	cmd.Flags().StringVar(&after, "after", "", "Predecessor item")
	cmd.Flags().Var(&depType, "type", "Dependency type: FS, SS, FF or SF")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days (may be negative)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without saving")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newEdgeRemoveCmd(app *App) *cobra.Command {
	var plan, item, after string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a dependency edge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, item)
			if err != nil {
				return err
			}
			predID, err := resolveItemID(ctx, app, planID, after)
			if err != nil {
				return err
			}

			resp, err := app.Link.RemoveEdge(ctx, planID, itemID, predID, dryRun)
			if err != nil {
				return err
			}
			if len(resp.RemovedEdges) == 0 {
				fmt.Println("No such edge; nothing to remove.")
				return nil
			}

			items, err := app.Items.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatLinkResponse(resp, formatter.LabelerFromItems(items)))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&item, "item", "", "Dependent item")
	cmd.Flags().StringVar(&after, "after", "", "Predecessor item")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without saving")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("after")

	return cmd
}
