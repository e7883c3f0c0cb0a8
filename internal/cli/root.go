package cli

import (
	"github.com/alexanderramin/telos/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Items    service.ItemService
	Link     service.LinkService
	Schedule service.ScheduleService
	Import   service.ImportService

	// IsInteractive reports whether stdin is a terminal; interactive-only
	// surfaces (forms, the board) refuse to start without it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "telos" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "telos",
		Short: "Plan dependency scheduler",
	}

	root.AddCommand(
		newPlanCmd(app),
		newItemCmd(app),
		newEdgeCmd(app),
		newLinkCmd(app),
		newScheduleCmd(app),
		newBoardCmd(app),
	)

	return root
}
