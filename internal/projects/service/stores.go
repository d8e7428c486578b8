package service

import (
	"context"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// ProjectStore persists projects. Missing rows are reported with errors
// matching domain.ErrNotFound.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProgressStore persists progress entries.
type ProgressStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.Progress, error)
	Get(ctx context.Context, id int64) (*domain.Progress, error)
	Create(ctx context.Context, p *domain.Progress) error
	Delete(ctx context.Context, projectID, id int64) error
}
