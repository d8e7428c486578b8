package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// ProgressService records and removes progress entries of a project
type ProgressService struct {
	projects ProjectStore
	progress ProgressStore
	policy   domain.ProgressPolicy
	now      func() time.Time
}

func NewProgressService(projects ProjectStore, progress ProgressStore, policy domain.ProgressPolicy) *ProgressService {
	return &ProgressService{
		projects: projects,
		progress: progress,
		policy:   policy,
		now:      now,
	}
}

// List returns the entries of projectID, failing when the project is absent.
func (s *ProgressService) List(ctx context.Context, projectID int64) ([]domain.Progress, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.progress.ListByProject(ctx, projectID)
}

// Create records a progress entry. The parent project is checked before
// anything is inserted.
func (s *ProgressService) Create(ctx context.Context, projectID int64, f domain.ProgressFields) (*domain.Progress, error) {
	if err := s.policy.Check(f.Value); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	p := domain.NewProgress(projectID, f, s.now())
	if err := s.progress.Create(ctx, p); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("progress saved",
		zap.Int64("progress_id", p.ID),
		zap.Int64("project_id", projectID),
	)
	return p, nil
}

// Delete removes entry id after confirming it belongs to projectID. The
// entry is looked up by its own id first, so an unknown id is reported as
// not found regardless of the project.
func (s *ProgressService) Delete(ctx context.Context, projectID, id int64) error {
	p, err := s.progress.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.BelongsTo(projectID) {
		return &domain.ConsistencyError{ProgressID: id, ProjectID: projectID}
	}

	if err := s.progress.Delete(ctx, projectID, id); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("progress deleted",
		zap.Int64("progress_id", id),
		zap.Int64("project_id", projectID),
	)
	return nil
}

func (s *ProgressService) requireProject(ctx context.Context, id int64) error {
	ok, err := s.projects.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ProjectNotFound(id)
	}
	return nil
}
