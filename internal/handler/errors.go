package handler

import (
	"errors"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
)

// failureMessage is the client-facing text for a failed course request.
func failureMessage(err error) string {
	switch kind := apperr.KindOf(err); kind {
	case apperr.KindValidation, apperr.KindBatchLimitExceeded:
		var e *apperr.Error
		if errors.As(err, &e) && e.Err != nil {
			return e.Err.Error()
		}
		return string(kind)
	case apperr.KindPipelineTimeout:
		return "course generation timed out"
	case apperr.KindLLMTimeout, apperr.KindModelUnavailable, apperr.KindMalformedModelOutput:
		return "AI service is temporarily unavailable"
	case apperr.KindUpstream:
		return "an external lookup service failed"
	default:
		return "internal server error"
	}
}

// respondFailure writes the structured failure body for err.
func respondFailure(c *gin.Context, err error, started time.Time) {
	kind := apperr.KindOf(err)
	c.JSON(apperr.HTTPStatus(kind), models.FailureResponse{
		Success:   false,
		Message:   failureMessage(err),
		ErrorKind: string(kind),
		ElapsedMs: time.Since(started).Milliseconds(),
	})
}

// respondError writes the {"error": ...} body used by the lookup endpoints.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": failureMessage(err)})
}
