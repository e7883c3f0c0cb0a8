package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type linkEnv struct {
	svc   LinkService
	plans repository.PlanRepo
	items repository.PlanItemRepo
	edges repository.EdgeRepo
	plan  *domain.Plan
	a     *domain.PlanItem
	b     *domain.PlanItem
	c     *domain.PlanItem
	d     *domain.PlanItem
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// setupLinkEnv seeds a plan starting 2026-03-02 with four unlinked items.
func setupLinkEnv(t *testing.T) (*linkEnv, context.Context) {
	t.Helper()
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	env := &linkEnv{
		plans: repository.NewSQLitePlanRepo(db),
		items: repository.NewSQLitePlanItemRepo(db),
		edges: repository.NewSQLiteEdgeRepo(db),
	}
	env.svc = NewLinkService(env.plans, env.items, env.edges, nil)

	env.plan = testutil.NewTestPlan("Launch", testutil.WithPlanStart(date(2026, 3, 2)))
	require.NoError(t, env.plans.Create(ctx, env.plan))

	env.a = testutil.NewTestItem(env.plan.ID, "Design", testutil.WithSortOrder(1), testutil.WithDuration(2))
	env.b = testutil.NewTestItem(env.plan.ID, "Build", testutil.WithSortOrder(2), testutil.WithDuration(3))
	env.c = testutil.NewTestItem(env.plan.ID, "Test", testutil.WithSortOrder(3), testutil.WithDuration(2))
	env.d = testutil.NewTestItem(env.plan.ID, "Ship", testutil.WithSortOrder(4), testutil.WithDuration(1))
	for _, it := range []*domain.PlanItem{env.a, env.b, env.c, env.d} {
		require.NoError(t, env.items.Create(ctx, it))
	}
	return env, ctx
}

func edgePairs(edges []domain.PredecessorEdge) [][2]string {
	out := make([][2]string, 0, len(edges))
	for _, e := range edges {
		out = append(out, [2]string{e.ItemID, e.PredecessorID})
	}
	return out
}

func TestLinkService_Chain_PersistsEdgesAndDates(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	resp, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID, env.c.ID, env.d.ID}))
	require.NoError(t, err)

	assert.Equal(t, contract.LinkChain, resp.Command)
	assert.Equal(t, [][2]string{
		{env.b.ID, env.a.ID},
		{env.c.ID, env.b.ID},
		{env.d.ID, env.c.ID},
	}, edgePairs(resp.AcceptedEdges))
	assert.Empty(t, resp.SkippedEdges)
	require.NotNil(t, resp.Applied)
	assert.True(t, resp.Applied.AllSucceeded())

	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)

	// FS with zero lag: each item starts at its predecessor's finish.
	b, err := env.items.GetByID(ctx, env.b.ID)
	require.NoError(t, err)
	require.NotNil(t, b.StartDate)
	assert.Equal(t, date(2026, 3, 4), *b.StartDate)
	require.NotNil(t, b.FinishDate)
	assert.Equal(t, date(2026, 3, 7), *b.FinishDate)

	d, err := env.items.GetByID(ctx, env.d.ID)
	require.NoError(t, err)
	require.NotNil(t, d.StartDate)
	assert.Equal(t, date(2026, 3, 9), *d.StartDate)
	require.NotNil(t, d.FinishDate)
	assert.Equal(t, date(2026, 3, 10), *d.FinishDate)
}

func TestLinkService_Chain_DryRunPersistsNothing(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	req := contract.NewLinkRequest(env.plan.ID, []string{env.a.ID, env.b.ID})
	req.DryRun = true
	resp, err := env.svc.ProposeChain(ctx, req)
	require.NoError(t, err)

	assert.Len(t, resp.AcceptedEdges, 1)
	assert.Nil(t, resp.Applied)
	assert.NotEmpty(t, resp.UpdatedDates)

	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	a, err := env.items.GetByID(ctx, env.a.ID)
	require.NoError(t, err)
	assert.Nil(t, a.StartDate)
}

func TestLinkService_Chain_SelectionOrderDoesNotMatter(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	// Click order reversed; edges still follow SortOrder.
	resp, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.c.ID, env.a.ID, env.b.ID}))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{env.b.ID, env.a.ID},
		{env.c.ID, env.b.ID},
	}, edgePairs(resp.AcceptedEdges))
}

func TestLinkService_FanIn(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	resp, err := env.svc.ProposeFanIn(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID, env.c.ID}))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{env.c.ID, env.a.ID},
		{env.c.ID, env.b.ID},
	}, edgePairs(resp.AcceptedEdges))

	// C starts at the later of the two predecessor finishes (B, 3 days).
	c, err := env.items.GetByID(ctx, env.c.ID)
	require.NoError(t, err)
	require.NotNil(t, c.StartDate)
	assert.Equal(t, date(2026, 3, 5), *c.StartDate)
}

func TestLinkService_FanOut(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	resp, err := env.svc.ProposeFanOut(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID, env.c.ID}))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{env.b.ID, env.a.ID},
		{env.c.ID, env.a.ID},
	}, edgePairs(resp.AcceptedEdges))
}

func TestLinkService_Chain_DuplicatesSkipped(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	req := contract.NewLinkRequest(env.plan.ID, []string{env.a.ID, env.b.ID, env.c.ID})
	_, err := env.svc.ProposeChain(ctx, req)
	require.NoError(t, err)

	resp, err := env.svc.ProposeChain(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, resp.AcceptedEdges)
	assert.Len(t, resp.SkippedEdges, 2)

	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestLinkService_Chain_CycleRejectsWholeBatch(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	// A already depends on B, so chaining A before B must fail.
	_, err := env.svc.AddEdge(ctx, env.plan.ID, domain.PredecessorEdge{
		ItemID:        env.a.ID,
		PredecessorID: env.b.ID,
		Type:          domain.FinishToStart,
	}, false)
	require.NoError(t, err)

	_, err = env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID}))

	var linkErr *contract.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, contract.LinkErrCircularDependency, linkErr.Code)
	assert.Equal(t, env.b.ID, linkErr.ItemID)
	assert.Equal(t, env.a.ID, linkErr.PredecessorID)

	// Only the pre-existing edge survives.
	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestLinkService_InsufficientSelection(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	for name, call := range map[string]func() (*contract.LinkResponse, error){
		"chain":    func() (*contract.LinkResponse, error) { return env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID, []string{env.a.ID})) },
		"fan-in":   func() (*contract.LinkResponse, error) { return env.svc.ProposeFanIn(ctx, contract.NewLinkRequest(env.plan.ID, []string{env.a.ID})) },
		"fan-out":  func() (*contract.LinkResponse, error) { return env.svc.ProposeFanOut(ctx, contract.NewLinkRequest(env.plan.ID, []string{env.a.ID})) },
		"unlink":   func() (*contract.LinkResponse, error) { return env.svc.ProposeUnlink(ctx, contract.NewLinkRequest(env.plan.ID, []string{env.a.ID})) },
		"clearall": func() (*contract.LinkResponse, error) { return env.svc.ProposeClearAll(ctx, contract.NewLinkRequest(env.plan.ID, []string{env.a.ID})) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := call()
			var linkErr *contract.LinkError
			require.ErrorAs(t, err, &linkErr)
			assert.Equal(t, contract.LinkErrInsufficientSelection, linkErr.Code)
		})
	}
}

func TestLinkService_SelectionOutsidePlan(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, "no-such-item"}))

	var linkErr *contract.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, contract.LinkErrDanglingReference, linkErr.Code)
}

func TestLinkService_Unlink_OnlyWithinSelection(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID, env.c.ID}))
	require.NoError(t, err)

	resp, err := env.svc.ProposeUnlink(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.b.ID, env.c.ID}))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{{env.c.ID, env.b.ID}}, edgePairs(resp.RemovedEdges))

	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, env.b.ID, stored[0].ItemID)
	assert.Equal(t, env.a.ID, stored[0].PredecessorID)
}

func TestLinkService_ClearAll_RemovesInboundFromAnywhere(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.a.ID, env.b.ID, env.c.ID}))
	require.NoError(t, err)

	// B's inbound edge comes from A, outside the selection; ClearAll still
	// removes it.
	resp, err := env.svc.ProposeClearAll(ctx, contract.NewLinkRequest(env.plan.ID,
		[]string{env.b.ID, env.c.ID}))
	require.NoError(t, err)
	assert.Len(t, resp.RemovedEdges, 2)

	stored, err := env.edges.ListByPlan(ctx, env.plan.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLinkService_AddEdge_TypedWithLag(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	resp, err := env.svc.AddEdge(ctx, env.plan.ID, domain.PredecessorEdge{
		ItemID:        env.b.ID,
		PredecessorID: env.a.ID,
		Type:          domain.StartToStart,
		LagDays:       5,
	}, false)
	require.NoError(t, err)
	require.Len(t, resp.AcceptedEdges, 1)

	stored, err := env.edges.ListPredecessors(ctx, env.b.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.StartToStart, stored[0].Type)
	assert.Equal(t, 5, stored[0].LagDays)

	// SS+5: B starts five days after A's start.
	b, err := env.items.GetByID(ctx, env.b.ID)
	require.NoError(t, err)
	require.NotNil(t, b.StartDate)
	assert.Equal(t, date(2026, 3, 7), *b.StartDate)
}

func TestLinkService_AddEdge_InvalidType(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.AddEdge(ctx, env.plan.ID, domain.PredecessorEdge{
		ItemID:        env.b.ID,
		PredecessorID: env.a.ID,
		Type:          "XX",
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dependency type")
}

func TestLinkService_AddEdge_SelfLoop(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.AddEdge(ctx, env.plan.ID, domain.PredecessorEdge{
		ItemID:        env.a.ID,
		PredecessorID: env.a.ID,
		Type:          domain.FinishToStart,
	}, false)

	var linkErr *contract.LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, contract.LinkErrCircularDependency, linkErr.Code)
}

func TestLinkService_RemoveEdge_MissingIsNoOp(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	resp, err := env.svc.RemoveEdge(ctx, env.plan.ID, env.b.ID, env.a.ID, false)
	require.NoError(t, err)
	assert.Empty(t, resp.RemovedEdges)
}

func TestLinkService_UnknownPlan(t *testing.T) {
	env, ctx := setupLinkEnv(t)

	_, err := env.svc.ProposeChain(ctx, contract.NewLinkRequest("no-such-plan",
		[]string{env.a.ID, env.b.ID}))
	require.Error(t, err)

	var linkErr *contract.LinkError
	assert.False(t, errors.As(err, &linkErr), "plan lookup failures are storage errors, not link errors")
}
