package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/storage/sqlite"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, created_asof, updated_asof, title, description, goal, unit`

// List returns every project ordered by id, each with its progress history.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM project ORDER BY id;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, 16)
	index := make(map[int64]int)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan project: %w", err)
		}
		index[p.ID] = len(out)
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("list projects: %w", err)
	}
	// Release the connection before the next query; sqlite runs on one.
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	progress, err := queryProgress(ctx, r.db, `SELECT `+progressColumns+` FROM project_progress ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	for _, pp := range progress {
		if i, ok := index[pp.ProjectID]; ok {
			out[i].Progress = append(out[i].Progress, pp)
		}
	}
	return out, nil
}

// Get returns the project with id and its progress history.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM project WHERE id = $1;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ProjectNotFound(id)
		}
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}

	progress, err := queryProgress(ctx, r.db,
		`SELECT `+progressColumns+` FROM project_progress WHERE project_id = $1 ORDER BY id;`, id)
	if err != nil {
		return nil, err
	}
	p.Progress = progress
	return p, nil
}

// Exists reports whether a project with id is stored.
func (r *ProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT 1 FROM project WHERE id = $1;`

	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check project %d: %w", id, err)
	}
	return true, nil
}

// Create inserts p and sets its storage-assigned id.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO project (created_asof, updated_asof, title, description, goal, unit)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id;
`
	err := r.db.QueryRowContext(ctx, q, p.CreatedAsOf, p.UpdatedAsOf, p.Title, p.Description, p.Goal, p.Unit).
		Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of p.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	const q = `
UPDATE project
SET updated_asof = $2, title = $3, description = $4, goal = $5, unit = $6
WHERE id = $1;
`
	result, err := r.db.ExecContext(ctx, q, p.ID, p.UpdatedAsOf, p.Title, p.Description, p.Goal, p.Unit)
	if err != nil {
		return fmt.Errorf("update project %d: %w", p.ID, err)
	}
	return expectOneRow(result, domain.ProjectNotFound(p.ID))
}

// Delete removes the project with id together with its progress entries.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project %d: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_progress WHERE project_id = $1;`, id); err != nil {
		return fmt.Errorf("delete progress of project %d: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM project WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if err := expectOneRow(result, domain.ProjectNotFound(id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete project %d: %w", id, err)
	}
	return nil
}

// Stats counts projects, progress entries and projects whose accumulated
// progress has reached the goal.
func (r *ProjectRepository) Stats(ctx context.Context) (domain.Stats, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM project),
    (SELECT COUNT(*) FROM project_progress),
    (SELECT COUNT(*) FROM project p
      WHERE p.goal <= (SELECT COALESCE(SUM(pp.value), 0) FROM project_progress pp WHERE pp.project_id = p.id));
`
	var s domain.Stats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Projects, &s.ProgressEntries, &s.GoalsReached); err != nil {
		return domain.Stats{}, fmt.Errorf("project stats: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*domain.Project, error) {
	var (
		p       domain.Project
		updated sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.CreatedAsOf, &updated, &p.Title, &p.Description, &p.Goal, &p.Unit); err != nil {
		return nil, err
	}
	p.CreatedAsOf = p.CreatedAsOf.UTC()
	p.UpdatedAsOf = nullTime(updated)
	p.Progress = []domain.Progress{}
	return &p, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func expectOneRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// isForeignKeyViolation recognises foreign key failures from either driver.
func isForeignKeyViolation(err error) bool {
	return postgres.IsForeignKeyViolation(err) || sqlite.IsForeignKeyViolation(err)
}
