package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/telos/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// telosHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func telosHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runEdgeForm collects the missing edge endpoints interactively.
func runEdgeForm(ctx context.Context, app *App, planID string, item, after *string) error {
	items, err := app.Items.ListByPlan(ctx, planID)
	if err != nil {
		return err
	}
	if len(items) < 2 {
		return fmt.Errorf("plan needs at least two items to link")
	}

	options := make([]huh.Option[string], 0, len(items))
	for _, it := range items {
		options = append(options, huh.NewOption(it.Title, it.ID))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dependent item (scheduled later)").
				Options(options...).
				Value(item),
			huh.NewSelect[string]().
				Title("Predecessor item (scheduled first)").
				Options(options...).
				Value(after),
		),
	).WithTheme(telosHuhTheme()).WithShowHelp(false)

	return form.Run()
}
