package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/db"
	"github.com/alexanderramin/telos/internal/domain"
)

// planColumns is the canonical SELECT column list for plans.
const planColumns = `id, short_id, name, start_date, status, archived_at, created_at, updated_at`

// SQLitePlanRepo implements PlanRepo over a DBTX, so it serves both plain
// connections and transactions.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	query := `INSERT INTO plans (` + planColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ShortID,
		p.Name,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE short_id = ?`
	return r.scanPlan(r.db.QueryRowContext(ctx, query, shortID))
}

func (r *SQLitePlanRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if !includeArchived {
		query += ` WHERE status != 'archived'`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := r.scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	query := `UPDATE plans SET short_id = ?, name = ?, start_date = ?, status = ?,
		archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.StartDate.Format(dateLayout),
		string(p.Status),
		nullableTimeToString(p.ArchivedAt, time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s not found", p.ID)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLitePlanRepo) scanPlan(row *sql.Row) (*domain.Plan, error) {
	p, err := r.scanPlanRow(row)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) scanPlanRow(row rowScanner) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, status, createdStr, updatedStr string
	var archived sql.NullString

	if err := row.Scan(&p.ID, &p.ShortID, &p.Name, &startStr, &status, &archived, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan not found: %w", err)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing plan start date: %w", err)
	}
	p.StartDate = start
	p.Status = domain.PlanStatus(status)
	p.ArchivedAt = parseNullableTime(archived, time.RFC3339)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing plan created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing plan updated_at: %w", err)
	}
	return &p, nil
}
