package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/importer"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanArchiveCmd(app),
		newPlanUnarchiveCmd(app),
		newPlanRemoveCmd(app),
		newPlanImportCmd(app),
		newPlanExportCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name, start, shortID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{
				ShortID: strings.ToUpper(shortID),
				Name:    name,
			}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				p.StartDate = startDate
			}

			if err := app.Plans.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Printf("Created plan %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. REN01)")
	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans.")
				return nil
			}

			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{
					p.DisplayID(),
					p.Name,
					p.StartDate.Format("2006-01-02"),
					string(p.Status),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "Name", "Start", "Status"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived plans")
	return cmd
}

func newPlanArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <plan>",
		Short: "Archive a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Archive(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Archived.")
			return nil
		},
	}
}

func newPlanUnarchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unarchive <plan>",
		Short: "Restore an archived plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlanID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Unarchive(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Restored.")
			return nil
		},
	}
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <plan>",
		Short: "Delete a plan and all its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to delete without --force")
			}
			if err := app.Plans.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Actually delete")
	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported plan %s [%s]: %d items, %d dependencies\n",
				result.Plan.Name, result.Plan.DisplayID(), result.ItemCount, result.EdgeCount)
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <plan>",
		Short: "Export a plan to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			schema, err := app.Import.ExportPlan(ctx, id)
			if err != nil {
				return err
			}
			if err := importer.WritePlanSchema(schema, out); err != nil {
				return err
			}
			fmt.Printf("Exported %d items to %s\n", len(schema.Items), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "plan.json", "Output file path")
	return cmd
}
