package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/db"
	"github.com/alexanderramin/telos/internal/domain"
)

// SQLiteEdgeRepo implements EdgeRepo over a DBTX.
type SQLiteEdgeRepo struct {
	db db.DBTX
}

// NewSQLiteEdgeRepo creates a new SQLiteEdgeRepo.
func NewSQLiteEdgeRepo(db db.DBTX) *SQLiteEdgeRepo {
	return &SQLiteEdgeRepo{db: db}
}

func (r *SQLiteEdgeRepo) Create(ctx context.Context, e *domain.PredecessorEdge) error {
	query := `INSERT INTO predecessor_edges (item_id, predecessor_id, dep_type, lag_days, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ItemID,
		e.PredecessorID,
		string(e.Type),
		e.LagDays,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting predecessor edge: %w", err)
	}
	return nil
}

func (r *SQLiteEdgeRepo) Delete(ctx context.Context, itemID, predecessorID string) error {
	query := `DELETE FROM predecessor_edges WHERE item_id = ? AND predecessor_id = ?`
	_, err := r.db.ExecContext(ctx, query, itemID, predecessorID)
	if err != nil {
		return fmt.Errorf("deleting predecessor edge: %w", err)
	}
	return nil
}

func (r *SQLiteEdgeRepo) ListByPlan(ctx context.Context, planID string) ([]domain.PredecessorEdge, error) {
	query := `SELECT e.item_id, e.predecessor_id, e.dep_type, e.lag_days
		FROM predecessor_edges e
		JOIN plan_items i ON e.item_id = i.id
		WHERE i.plan_id = ?
		ORDER BY i.sort_order, i.id, e.rowid`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing edges by plan: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

func (r *SQLiteEdgeRepo) ListPredecessors(ctx context.Context, itemID string) ([]domain.PredecessorEdge, error) {
	query := `SELECT item_id, predecessor_id, dep_type, lag_days
		FROM predecessor_edges WHERE item_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

func (r *SQLiteEdgeRepo) ListDependents(ctx context.Context, itemID string) ([]domain.PredecessorEdge, error) {
	query := `SELECT item_id, predecessor_id, dep_type, lag_days
		FROM predecessor_edges WHERE predecessor_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing dependents: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

// scanEdges scans multiple edge rows from *sql.Rows.
func (r *SQLiteEdgeRepo) scanEdges(rows *sql.Rows) ([]domain.PredecessorEdge, error) {
	var edges []domain.PredecessorEdge
	for rows.Next() {
		var e domain.PredecessorEdge
		var typ string
		if err := rows.Scan(&e.ItemID, &e.PredecessorID, &typ, &e.LagDays); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		e.Type = domain.DependencyType(typ)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}
	return edges, nil
}
