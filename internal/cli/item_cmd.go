package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage plan items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemPinCmd(app),
		newItemUnpinCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var plan, title string
	var duration, order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			it := &domain.PlanItem{
				PlanID:       planID,
				Title:        title,
				DurationDays: duration,
				SortOrder:    order,
			}
			if err := app.Items.Create(ctx, it); err != nil {
				return err
			}
			fmt.Printf("Added item %s (%dd)\n", it.Title, it.DurationDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().IntVar(&duration, "days", 1, "Duration in days (0 for a milestone)")
	cmd.Flags().IntVar(&order, "order", 0, "Sort order (0 appends at the end)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's items with their dates and dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			items, err := app.Items.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items.")
				return nil
			}

			dates := make(map[string]contract.ItemDates, len(items))
			for _, it := range items {
				dates[it.ID] = contract.ItemDates{Start: it.StartDate, Finish: it.FinishDate}
			}
			fmt.Print(formatter.FormatScheduleTable(items, dates))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newItemPinCmd(app *App) *cobra.Command {
	var plan, start string

	cmd := &cobra.Command{
		Use:   "pin <item>",
		Short: "Pin an item to a fixed start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			if err := app.Items.Pin(ctx, itemID, startDate); err != nil {
				return err
			}
			fmt.Printf("Pinned to %s. Run 'telos schedule --plan %s' to ripple the change.\n", start, plan)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newItemUnpinCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "unpin <item>",
		Short: "Release a pinned item back to derived scheduling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Unpin(ctx, itemID); err != nil {
				return err
			}
			fmt.Println("Unpinned.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <item>",
		Short: "Delete an item and its dependency edges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Items.Delete(ctx, itemID); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan short ID or UUID")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}
