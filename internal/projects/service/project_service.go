package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	store ProjectStore
	now   func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(store ProjectStore) *ProjectService {
	return &ProjectService{
		store: store,
		now:   now,
	}
}

// List returns all projects with their progress history
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.store.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

// Create validates and persists a new project
func (s *ProjectService) Create(ctx context.Context, f domain.ProjectFields) (*domain.Project, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p := domain.NewProject(f, s.now())
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("project saved", zap.Int64("project_id", p.ID))
	return p, nil
}

// Replace overwrites every mutable field of project id. Storage is not
// touched when the project does not exist.
func (s *ProjectService) Replace(ctx context.Context, id int64, f domain.ProjectFields) (*domain.Project, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Replace(f, s.now())
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("project saved", zap.Int64("project_id", p.ID))
	return p, nil
}

// Delete removes project id and its progress entries
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("project deleted", zap.Int64("project_id", id))
	return nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
