package importer

import (
	"testing"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_AssignsIDsAndDefaults(t *testing.T) {
	schema := &PlanSchema{
		Plan: PlanImport{ShortID: "ren01", Name: "Renovation", StartDate: "2026-03-02"},
		Items: []ItemImport{
			{Ref: "a", Title: "Demolition", DurationDays: intPtr(3)},
			{Ref: "b", Title: "Framing"},
		},
	}

	generated, err := Convert(schema)
	require.NoError(t, err)

	assert.NotEmpty(t, generated.Plan.ID)
	assert.Equal(t, "REN01", generated.Plan.ShortID, "short ID is upper-cased")
	assert.Equal(t, domain.PlanActive, generated.Plan.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), generated.Plan.StartDate)

	require.Len(t, generated.Items, 2)
	a, b := generated.Items[0], generated.Items[1]
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, generated.Plan.ID, a.PlanID)
	assert.Equal(t, 3, a.DurationDays)
	assert.Equal(t, 1, b.DurationDays, "duration defaults to one day")
	assert.Equal(t, 1, a.SortOrder, "sort order defaults to file position")
	assert.Equal(t, 2, b.SortOrder)
	assert.False(t, a.Pinned)
	assert.Nil(t, a.StartDate)
}

func TestConvert_ResolvesEdgeRefs(t *testing.T) {
	schema := &PlanSchema{
		Plan: PlanImport{Name: "Plan", StartDate: "2026-03-02"},
		Items: []ItemImport{
			{Ref: "a", Title: "A"},
			{Ref: "b", Title: "B", Predecessors: []PredecessorImport{
				{Ref: "a", Type: "ff", LagDays: intPtr(-2)},
			}},
		},
	}

	generated, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, generated.Edges, 1)

	e := generated.Edges[0]
	assert.Equal(t, generated.Items[1].ID, e.ItemID)
	assert.Equal(t, generated.Items[0].ID, e.PredecessorID)
	assert.Equal(t, domain.FinishToFinish, e.Type, "type is normalized to upper case")
	assert.Equal(t, -2, e.LagDays)
}

func TestConvert_TypeDefaultsToFS(t *testing.T) {
	schema := minimalSchema()
	generated, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, generated.Edges, 1)
	assert.Equal(t, domain.FinishToStart, generated.Edges[0].Type)
	assert.Equal(t, 0, generated.Edges[0].LagDays)
}

func TestConvert_PinnedStartCarriesOver(t *testing.T) {
	schema := &PlanSchema{
		Plan: PlanImport{Name: "Plan", StartDate: "2026-03-02"},
		Items: []ItemImport{
			{Ref: "a", Title: "A", Pinned: boolPtr(true), StartDate: strPtr("2026-04-10")},
		},
	}

	generated, err := Convert(schema)
	require.NoError(t, err)

	a := generated.Items[0]
	assert.True(t, a.Pinned)
	require.NotNil(t, a.StartDate)
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), *a.StartDate)
}

func TestExport_RoundTripsStructure(t *testing.T) {
	schema := &PlanSchema{
		Plan: PlanImport{ShortID: "REN01", Name: "Renovation", StartDate: "2026-03-02"},
		Items: []ItemImport{
			{Ref: "a", Title: "Demolition", DurationDays: intPtr(3)},
			{Ref: "b", Title: "Framing", DurationDays: intPtr(4), Predecessors: []PredecessorImport{
				{Ref: "a", Type: "FS", LagDays: intPtr(2)},
			}},
		},
	}
	generated, err := Convert(schema)
	require.NoError(t, err)

	exported := Export(generated.Plan, generated.Items, generated.Edges)
	require.Empty(t, ValidatePlanSchema(exported), "export must always re-validate")

	assert.Equal(t, "REN01", exported.Plan.ShortID)
	assert.Equal(t, "2026-03-02", exported.Plan.StartDate)
	require.Len(t, exported.Items, 2)
	assert.Equal(t, "Demolition", exported.Items[0].Title)

	framing := exported.Items[1]
	require.Len(t, framing.Predecessors, 1)
	assert.Equal(t, exported.Items[0].Ref, framing.Predecessors[0].Ref)
	assert.Equal(t, "FS", framing.Predecessors[0].Type)
	require.NotNil(t, framing.Predecessors[0].LagDays)
	assert.Equal(t, 2, *framing.Predecessors[0].LagDays)

	// And converting the export again yields the same shape.
	again, err := Convert(exported)
	require.NoError(t, err)
	assert.Len(t, again.Items, 2)
	assert.Len(t, again.Edges, 1)
}
