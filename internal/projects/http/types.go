package http

import "github.com/GoSim-25-26J-441/progress-tracker/internal/projects/service"

// Handler bundles the dependencies for project and progress HTTP endpoints.
type Handler struct {
	projects *service.ProjectService
	progress *service.ProgressService
}

func New(projects *service.ProjectService, progress *service.ProgressService) *Handler {
	return &Handler{projects: projects, progress: progress}
}
