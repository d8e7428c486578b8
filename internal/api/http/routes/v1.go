package routes

import (
	"github.com/gin-gonic/gin"

	projectshttp "github.com/GoSim-25-26J-441/progress-tracker/internal/projects/http"
)

type V1Deps struct {
	Projects *projectshttp.Handler
	// Middleware runs on every /api/v1 route, after the engine-wide chain.
	Middleware []gin.HandlerFunc
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(dep.Middleware...)

	projectsGroup := api.Group("/projects")
	dep.Projects.Register(projectsGroup)
}
