package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/progress-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/progress-tracker/internal/projects/domain"
)

// writeError maps err onto a status code and an {"error": ...} body.
func writeError(c *gin.Context, err error) {
	var (
		missing     *domain.ValidationError
		invalid     *domain.InvalidFieldError
		notFound    *domain.NotFoundError
		consistency *domain.ConsistencyError
	)

	switch {
	case errors.Is(err, domain.ErrNoDataProvided):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
	case errors.Is(err, domain.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body"})
	case errors.Is(err, domain.ErrNegativeProgress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Progress can only be positive"})
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.As(err, &consistency):
		c.JSON(http.StatusBadRequest, gin.H{"error": consistency.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
