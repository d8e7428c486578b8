package http

import "github.com/gin-gonic/gin"

// Register attaches project and progress routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.listProjects)
	rg.POST("", h.createProject)
	rg.GET("/:project_id", h.getProject)
	rg.PUT("/:project_id", h.replaceProject)
	rg.DELETE("/:project_id", h.deleteProject)

	rg.GET("/:project_id/progress", h.listProgress)
	rg.POST("/:project_id/progress", h.createProgress)
	rg.DELETE("/:project_id/progress/:progress_id", h.deleteProgress)
}
