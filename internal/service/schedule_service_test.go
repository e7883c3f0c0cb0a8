package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/scheduler"
	"github.com/alexanderramin/telos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleEnv struct {
	svc   ScheduleService
	plans repository.PlanRepo
	items repository.PlanItemRepo
	edges repository.EdgeRepo
	plan  *domain.Plan
}

func setupScheduleEnv(t *testing.T) (*scheduleEnv, context.Context) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	env := &scheduleEnv{
		plans: repository.NewSQLitePlanRepo(db),
		items: repository.NewSQLitePlanItemRepo(db),
		edges: repository.NewSQLiteEdgeRepo(db),
	}
	env.svc = NewScheduleService(env.plans, env.items, env.edges, nil)

	env.plan = testutil.NewTestPlan("Renovation", testutil.WithPlanStart(date(2026, 3, 2)))
	require.NoError(t, env.plans.Create(ctx, env.plan))
	return env, ctx
}

func (env *scheduleEnv) addItem(t *testing.T, ctx context.Context, title string, order, duration int, opts ...testutil.ItemOption) *domain.PlanItem {
	t.Helper()
	opts = append([]testutil.ItemOption{testutil.WithSortOrder(order), testutil.WithDuration(duration)}, opts...)
	it := testutil.NewTestItem(env.plan.ID, title, opts...)
	require.NoError(t, env.items.Create(ctx, it))
	return it
}

func (env *scheduleEnv) addEdge(t *testing.T, ctx context.Context, itemID, predID string, typ domain.DependencyType, lag int) {
	t.Helper()
	e := testutil.NewTestEdge(itemID, predID, typ, lag)
	require.NoError(t, env.edges.Create(ctx, &e))
}

func TestScheduleService_Recompute_PersistsChainDates(t *testing.T) {
	env, ctx := setupScheduleEnv(t)
	a := env.addItem(t, ctx, "Demolition", 1, 3)
	b := env.addItem(t, ctx, "Framing", 2, 4)
	env.addEdge(t, ctx, b.ID, a.ID, domain.FinishToStart, 2)

	resp, err := env.svc.Recompute(ctx, contract.NewScheduleRequest(env.plan.ID))
	require.NoError(t, err)
	require.NotNil(t, resp.Applied)
	assert.True(t, resp.Applied.AllSucceeded())

	stored, err := env.items.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartDate)
	// A finishes Mar 5; FS lag 2 pushes B to Mar 7.
	assert.Equal(t, date(2026, 3, 7), *stored.StartDate)
	require.NotNil(t, stored.FinishDate)
	assert.Equal(t, date(2026, 3, 11), *stored.FinishDate)
}

func TestScheduleService_Recompute_DryRun(t *testing.T) {
	env, ctx := setupScheduleEnv(t)
	a := env.addItem(t, ctx, "Demolition", 1, 3)

	req := contract.NewScheduleRequest(env.plan.ID)
	req.DryRun = true
	resp, err := env.svc.Recompute(ctx, req)
	require.NoError(t, err)

	assert.Nil(t, resp.Applied)
	require.Contains(t, resp.Dates, a.ID)
	require.NotNil(t, resp.Dates[a.ID].Start)
	assert.Equal(t, date(2026, 3, 2), *resp.Dates[a.ID].Start)

	stored, err := env.items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.StartDate, "dry run must not persist dates")
}

func TestScheduleService_Recompute_MilestoneFinishEqualsStart(t *testing.T) {
	env, ctx := setupScheduleEnv(t)
	a := env.addItem(t, ctx, "Build", 1, 5)
	m := env.addItem(t, ctx, "Handover", 2, 0)
	env.addEdge(t, ctx, m.ID, a.ID, domain.FinishToStart, 0)

	_, err := env.svc.Recompute(ctx, contract.NewScheduleRequest(env.plan.ID))
	require.NoError(t, err)

	stored, err := env.items.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartDate)
	require.NotNil(t, stored.FinishDate)
	assert.Equal(t, *stored.StartDate, *stored.FinishDate)
	assert.Equal(t, date(2026, 3, 7), *stored.FinishDate)
}

func TestScheduleService_Recompute_PinnedStartWins(t *testing.T) {
	env, ctx := setupScheduleEnv(t)
	a := env.addItem(t, ctx, "Order windows", 1, 2)
	b := env.addItem(t, ctx, "Install windows", 2, 3,
		testutil.WithStart(date(2026, 3, 20)), testutil.WithPinned())
	env.addEdge(t, ctx, b.ID, a.ID, domain.FinishToStart, 0)

	_, err := env.svc.Recompute(ctx, contract.NewScheduleRequest(env.plan.ID))
	require.NoError(t, err)

	stored, err := env.items.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartDate)
	assert.Equal(t, date(2026, 3, 20), *stored.StartDate, "pinned start is authoritative")
	require.NotNil(t, stored.FinishDate)
	assert.Equal(t, date(2026, 3, 23), *stored.FinishDate)
}

func TestScheduleService_Recompute_CyclicGraphFails(t *testing.T) {
	env, ctx := setupScheduleEnv(t)
	a := env.addItem(t, ctx, "A", 1, 1)
	b := env.addItem(t, ctx, "B", 2, 1)
	// The edge repo has no graph validation; a cycle can exist on disk.
	env.addEdge(t, ctx, b.ID, a.ID, domain.FinishToStart, 0)
	env.addEdge(t, ctx, a.ID, b.ID, domain.FinishToStart, 0)

	_, err := env.svc.Recompute(ctx, contract.NewScheduleRequest(env.plan.ID))

	var cyclic *scheduler.CyclicGraphError
	require.ErrorAs(t, err, &cyclic)
	assert.NotEmpty(t, cyclic.Cycle)
}

func TestScheduleService_Recompute_IslandKeepsExistingDates(t *testing.T) {
	env, ctx := setupScheduleEnv(t)

	// An item with its own start keeps it as a root.
	a := env.addItem(t, ctx, "Side project", 1, 2, testutil.WithStart(date(2026, 4, 1)))

	_, err := env.svc.Recompute(ctx, contract.NewScheduleRequest(env.plan.ID))
	require.NoError(t, err)

	stored, err := env.items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartDate)
	assert.Equal(t, date(2026, 4, 1), *stored.StartDate)
	require.NotNil(t, stored.FinishDate)
	assert.Equal(t, date(2026, 4, 3), *stored.FinishDate)
}
