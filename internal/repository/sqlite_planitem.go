package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/db"
	"github.com/alexanderramin/telos/internal/domain"
)

// planItemColumns is the canonical SELECT column list for plan_items.
const planItemColumns = `id, plan_id, title, sort_order, duration_days,
		start_date, finish_date, pinned, created_at, updated_at`

// SQLitePlanItemRepo implements PlanItemRepo over a DBTX.
type SQLitePlanItemRepo struct {
	db db.DBTX
}

// NewSQLitePlanItemRepo creates a new SQLitePlanItemRepo.
func NewSQLitePlanItemRepo(db db.DBTX) *SQLitePlanItemRepo {
	return &SQLitePlanItemRepo{db: db}
}

func (r *SQLitePlanItemRepo) Create(ctx context.Context, it *domain.PlanItem) error {
	query := `INSERT INTO plan_items (` + planItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		it.ID,
		it.PlanID,
		it.Title,
		it.SortOrder,
		it.DurationDays,
		nullableTimeToString(it.StartDate, dateLayout),
		nullableTimeToString(it.FinishDate, dateLayout),
		boolToInt(it.Pinned),
		it.CreatedAt.Format(time.RFC3339),
		it.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan item: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) GetByID(ctx context.Context, id string) (*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items WHERE id = ?`
	return r.scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanItemRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanItem, error) {
	query := `SELECT ` + planItemColumns + ` FROM plan_items
		WHERE plan_id = ? ORDER BY sort_order, id`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan items: %w", err)
	}
	defer rows.Close()

	var items []*domain.PlanItem
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan items: %w", err)
	}
	return items, nil
}

func (r *SQLitePlanItemRepo) Update(ctx context.Context, it *domain.PlanItem) error {
	query := `UPDATE plan_items SET title = ?, sort_order = ?, duration_days = ?,
		start_date = ?, finish_date = ?, pinned = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		it.Title,
		it.SortOrder,
		it.DurationDays,
		nullableTimeToString(it.StartDate, dateLayout),
		nullableTimeToString(it.FinishDate, dateLayout),
		boolToInt(it.Pinned),
		it.UpdatedAt.Format(time.RFC3339),
		it.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan item %s not found", it.ID)
	}
	return nil
}

func (r *SQLitePlanItemRepo) UpdateDates(ctx context.Context, id string, start, finish *time.Time, updatedAt time.Time) error {
	query := `UPDATE plan_items SET start_date = ?, finish_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(start, dateLayout),
		nullableTimeToString(finish, dateLayout),
		updatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating plan item dates: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan item %s not found", id)
	}
	return nil
}

func (r *SQLitePlanItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plan_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan item: %w", err)
	}
	return nil
}

func (r *SQLitePlanItemRepo) scanItem(row rowScanner) (*domain.PlanItem, error) {
	var it domain.PlanItem
	var start, finish sql.NullString
	var pinned int
	var createdStr, updatedStr string

	err := row.Scan(&it.ID, &it.PlanID, &it.Title, &it.SortOrder, &it.DurationDays,
		&start, &finish, &pinned, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan item not found: %w", err)
		}
		return nil, fmt.Errorf("scanning plan item: %w", err)
	}

	it.StartDate = parseNullableTime(start, dateLayout)
	it.FinishDate = parseNullableTime(finish, dateLayout)
	it.Pinned = intToBool(pinned)
	if it.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing plan item created_at: %w", err)
	}
	if it.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing plan item updated_at: %w", err)
	}
	return &it, nil
}
