package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/telos/internal/contract"
	"github.com/alexanderramin/telos/internal/domain"
	"github.com/alexanderramin/telos/internal/repository"
	"github.com/alexanderramin/telos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationApplier_ConcurrentlyDeletedItemFailsAlone(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(db)
	items := repository.NewSQLitePlanItemRepo(db)
	edges := repository.NewSQLiteEdgeRepo(db)

	plan := testutil.NewTestPlan("Apply")
	require.NoError(t, plans.Create(ctx, plan))
	a := testutil.NewTestItem(plan.ID, "A", testutil.WithSortOrder(1))
	b := testutil.NewTestItem(plan.ID, "B", testutil.WithSortOrder(2))
	require.NoError(t, items.Create(ctx, a))
	require.NoError(t, items.Create(ctx, b))

	// B disappears between validation and persistence.
	require.NoError(t, items.Delete(ctx, b.ID))

	start := date(2026, 3, 2)
	finish := date(2026, 3, 4)
	applier := NewMutationApplier(edges, items)
	report := applier.Apply(ctx, EdgeMutations{
		Dates: map[string]contract.ItemDates{
			a.ID: {Start: &start, Finish: &finish},
			b.ID: {Start: &start, Finish: &finish},
		},
	})

	assert.False(t, report.AllSucceeded())
	assert.Equal(t, []string{a.ID}, report.Succeeded)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, b.ID, report.Failed[0].ItemID)
	assert.Contains(t, report.Failed[0].Message, "not found")

	// A's dates stayed applied despite B's failure.
	stored, err := items.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.StartDate)
	assert.Equal(t, start, *stored.StartDate)
}

func TestMutationApplier_EdgeInsertFailureDoesNotStopLaterWrites(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	plans := repository.NewSQLitePlanRepo(db)
	items := repository.NewSQLitePlanItemRepo(db)

	plan := testutil.NewTestPlan("Apply")
	require.NoError(t, plans.Create(ctx, plan))
	a := testutil.NewTestItem(plan.ID, "A", testutil.WithSortOrder(1))
	b := testutil.NewTestItem(plan.ID, "B", testutil.WithSortOrder(2))
	c := testutil.NewTestItem(plan.ID, "C", testutil.WithSortOrder(3))
	for _, it := range []*domain.PlanItem{a, b, c} {
		require.NoError(t, items.Create(ctx, it))
	}

	injected := errors.New("disk full")
	failing := testutil.NewFailOnNthExec(db, 1, injected)
	edges := repository.NewSQLiteEdgeRepo(failing)

	applier := NewMutationApplier(edges, items)
	report := applier.Apply(ctx, EdgeMutations{
		Add: []domain.PredecessorEdge{
			testutil.NewTestEdge(b.ID, a.ID, domain.FinishToStart, 0),
			testutil.NewTestEdge(c.ID, b.ID, domain.FinishToStart, 0),
		},
	})

	require.Len(t, report.Failed, 1)
	assert.Equal(t, b.ID, report.Failed[0].ItemID)
	assert.Contains(t, report.Failed[0].Message, "disk full")

	// The second insert went through the unwrapped path of the same store.
	realEdges := repository.NewSQLiteEdgeRepo(db)
	stored, err := realEdges.ListPredecessors(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
