package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// ProgressRepository provides persistence operations for progress entries
type ProgressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, project_id, created_asof, updated_asof, value, note`

// ListByProject returns the entries of projectID ordered by id.
func (r *ProgressRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Progress, error) {
	return queryProgress(ctx, r.db,
		`SELECT `+progressColumns+` FROM project_progress WHERE project_id = $1 ORDER BY id;`, projectID)
}

func (r *ProgressRepository) Get(ctx context.Context, id int64) (*domain.Progress, error) {
	const q = `SELECT ` + progressColumns + ` FROM project_progress WHERE id = $1;`

	p, err := scanProgress(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ProgressNotFound(id)
		}
		return nil, fmt.Errorf("get progress %d: %w", id, err)
	}
	return p, nil
}

// Create inserts p and sets its storage-assigned id. A project_id that does
// not reference a project yields a project not-found error.
func (r *ProgressRepository) Create(ctx context.Context, p *domain.Progress) error {
	const q = `
INSERT INTO project_progress (project_id, created_asof, updated_asof, value, note)
VALUES ($1, $2, $3, $4, $5)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, p.ProjectID, p.CreatedAsOf, p.UpdatedAsOf, p.Value, p.Note).
		Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ProjectNotFound(p.ProjectID)
		}
		return fmt.Errorf("insert progress: %w", err)
	}
	return nil
}

// Delete removes entry id of projectID.
func (r *ProgressRepository) Delete(ctx context.Context, projectID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM project_progress WHERE id = $1 AND project_id = $2;`, id, projectID)
	if err != nil {
		return fmt.Errorf("delete progress %d: %w", id, err)
	}
	return expectOneRow(result, domain.ProgressNotFound(id))
}

func queryProgress(ctx context.Context, db *sql.DB, q string, args ...any) ([]domain.Progress, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Progress, 0, 8)
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return out, nil
}

func scanProgress(s scanner) (*domain.Progress, error) {
	var (
		p       domain.Progress
		updated sql.NullTime
		note    sql.NullString
	)
	if err := s.Scan(&p.ID, &p.ProjectID, &p.CreatedAsOf, &updated, &p.Value, &note); err != nil {
		return nil, err
	}
	p.CreatedAsOf = p.CreatedAsOf.UTC()
	p.UpdatedAsOf = nullTime(updated)
	if note.Valid {
		p.Note = &note.String
	}
	return &p, nil
}
