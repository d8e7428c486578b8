package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// pathID parses an integer path parameter. A value that is not an integer
// cannot address a row and is reported through notFound.
func pathID(c *gin.Context, param, resource string) (int64, error) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.NotFoundError{Resource: resource, ID: raw}
	}
	return id, nil
}

func (h *Handler) listProjects(c *gin.Context) {
	items, err := h.projects.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projectRepresentations(items)})
}

func (h *Handler) createProject(c *gin.Context) {
	b, err := bindBody(c, domain.ProjectCreateFields)
	if err != nil {
		writeError(c, err)
		return
	}
	fields, err := projectFields(b)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.projects.Create(c.Request.Context(), fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": projectRepresentation(p)})
}

func (h *Handler) getProject(c *gin.Context) {
	id, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projectRepresentation(p)})
}

func (h *Handler) replaceProject(c *gin.Context) {
	id, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := bindBody(c, domain.ProjectReplaceFields)
	if err != nil {
		writeError(c, err)
		return
	}
	fields, err := projectFields(b)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.projects.Replace(c.Request.Context(), id, fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projectRepresentation(p)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listProgress(c *gin.Context) {
	projectID, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.progress.List(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progressRepresentations(items)})
}

func (h *Handler) createProgress(c *gin.Context) {
	projectID, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}
	b, err := bindBody(c, domain.ProgressCreateFields)
	if err != nil {
		writeError(c, err)
		return
	}
	fields, err := progressFields(b)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.progress.Create(c.Request.Context(), projectID, fields)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"progress": progressRepresentation(p)})
}

func (h *Handler) deleteProgress(c *gin.Context) {
	projectID, err := pathID(c, "project_id", domain.ResourceProject)
	if err != nil {
		writeError(c, err)
		return
	}
	id, err := pathID(c, "progress_id", domain.ResourceProgress)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.progress.Delete(c.Request.Context(), projectID, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
