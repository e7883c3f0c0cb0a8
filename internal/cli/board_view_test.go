package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/service"
	"github.com/alexanderramin/telos/internal/teatest"
	"github.com/alexanderramin/telos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupBoard wires a real App over an in-memory database and seeds a plan
// with three items.
func setupBoard(t *testing.T) (*App, string) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	plans := repository.NewSQLitePlanRepo(db)
	items := repository.NewSQLitePlanItemRepo(db)
	edges := repository.NewSQLiteEdgeRepo(db)

	app := &App{
		Plans:    service.NewPlanService(plans),
		Items:    service.NewItemService(items),
		Link:     service.NewLinkService(plans, items, edges, nil),
		Schedule: service.NewScheduleService(plans, items, edges, nil),
	}

	plan := testutil.NewTestPlan("Board")
	require.NoError(t, plans.Create(ctx, plan))
	for i, title := range []string{"Demolition", "Framing", "Roofing"} {
		it := testutil.NewTestItem(plan.ID, title, testutil.WithSortOrder(i+1), testutil.WithDuration(2))
		require.NoError(t, items.Create(ctx, it))
	}
	return app, plan.ID
}

func TestBoard_LoadsItems(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "Demolition")
	assert.Contains(t, view, "Framing")
	assert.Contains(t, view, "Roofing")
	assert.Contains(t, view, "unscheduled")
}

func TestBoard_ChainSelection(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	d.PressSpace()
	d.PressDown()
	d.PressSpace()
	d.PressKey('c')

	view := d.View()
	assert.Contains(t, view, "1 edge(s) chained")
	assert.Contains(t, view, "FS")

	stored, err := app.Link.ListEdges(context.Background(), planID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.FinishToStart, stored[0].Type)
}

func TestBoard_InsufficientSelectionShowsError(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	d.PressSpace()
	d.PressKey('c')

	assert.Contains(t, d.View(), "Error:")
	stored, err := app.Link.ListEdges(context.Background(), planID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBoard_UnlinkSelection(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	d.PressSpace()
	d.PressDown()
	d.PressSpace()
	d.PressKey('c')

	// Selection cleared after the operation; reselect and unlink.
	d.PressUp()
	d.PressSpace()
	d.PressDown()
	d.PressSpace()
	d.PressKey('u')

	assert.Contains(t, d.View(), "1 edge(s) unlinked")
	stored, err := app.Link.ListEdges(context.Background(), planID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBoard_RescheduleUpdatesDates(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	d.PressKey('r')

	view := d.View()
	assert.Contains(t, view, "3 item(s) rescheduled")
	assert.NotContains(t, view, "unscheduled")
}

func TestBoard_QuitKey(t *testing.T) {
	app, planID := setupBoard(t)
	d := teatest.New(t, newBoardModel(app, planID))
	d.DrainInit()

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
