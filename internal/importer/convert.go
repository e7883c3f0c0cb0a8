package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/google/uuid"
)

// GeneratedPlan holds the domain objects produced from a validated schema,
// ready for persistence.
type GeneratedPlan struct {
	Plan  *domain.Plan
	Items []*domain.PlanItem
	Edges []domain.PredecessorEdge
}

// Convert transforms a validated PlanSchema into domain objects.
// Call ValidatePlanSchema first; Convert assumes the schema is valid.
func Convert(schema *PlanSchema) (*GeneratedPlan, error) {
	now := time.Now().UTC()

	startDate, err := time.Parse("2006-01-02", schema.Plan.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}

	plan := &domain.Plan{
		ID:        uuid.New().String(),
		ShortID:   strings.ToUpper(schema.Plan.ShortID),
		Name:      schema.Plan.Name,
		StartDate: startDate,
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	refMap := make(map[string]string) // ref -> UUID

	items := make([]*domain.PlanItem, 0, len(schema.Items))
	for i, in := range schema.Items {
		realID := uuid.New().String()
		refMap[in.Ref] = realID

		item := &domain.PlanItem{
			ID:           realID,
			PlanID:       plan.ID,
			Title:        in.Title,
			SortOrder:    domain.IntFromPtrWithDefault(i+1, in.SortOrder),
			DurationDays: domain.IntFromPtrWithDefault(1, in.DurationDays),
			StartDate:    parseOptionalDate(in.StartDate),
			Pinned:       domain.BoolFromPtrWithDefault(false, in.Pinned),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		items = append(items, item)
	}

	var edges []domain.PredecessorEdge
	for _, in := range schema.Items {
		itemID := refMap[in.Ref]
		for _, p := range in.Predecessors {
			predID, ok := refMap[p.Ref]
			if !ok {
				return nil, fmt.Errorf("predecessor ref %q not found for item %q", p.Ref, in.Ref)
			}
			typ, err := domain.ParseDependencyType(domain.CoalesceStr(p.Type, "FS"))
			if err != nil {
				return nil, fmt.Errorf("predecessor %q of item %q: %w", p.Ref, in.Ref, err)
			}
			edges = append(edges, domain.PredecessorEdge{
				ItemID:        itemID,
				PredecessorID: predID,
				Type:          typ,
				LagDays:       domain.IntFromPtrWithDefault(0, p.LagDays),
			})
		}
	}

	return &GeneratedPlan{Plan: plan, Items: items, Edges: edges}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
