package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanStart(d time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = d
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithShortID(id string) PlanOption {
	return func(p *domain.Plan) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:    domain.PlanActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanItem options
type ItemOption func(*domain.PlanItem)

func WithSortOrder(n int) ItemOption {
	return func(it *domain.PlanItem) {
		it.SortOrder = n
	}
}

func WithDuration(days int) ItemOption {
	return func(it *domain.PlanItem) {
		it.DurationDays = days
	}
}

func WithStart(d time.Time) ItemOption {
	return func(it *domain.PlanItem) {
		it.StartDate = &d
	}
}

func WithPinned() ItemOption {
	return func(it *domain.PlanItem) {
		it.Pinned = true
	}
}

func NewTestItem(planID, title string, opts ...ItemOption) *domain.PlanItem {
	now := time.Now().UTC()
	it := &domain.PlanItem{
		ID:           uuid.New().String(),
		PlanID:       planID,
		Title:        title,
		DurationDays: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// NewTestEdge builds a predecessor edge with explicit type and lag.
func NewTestEdge(itemID, predecessorID string, typ domain.DependencyType, lag int) domain.PredecessorEdge {
	return domain.PredecessorEdge{
		ItemID:        itemID,
		PredecessorID: predecessorID,
		Type:          typ,
		LagDays:       lag,
	}
}
