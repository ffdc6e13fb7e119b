package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"running-course-api/internal/apperr"
	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
)

// CourseHandler handles course generation requests
type CourseHandler struct {
	service CourseService
}

// CourseService interface for dependency injection
type CourseService interface {
	Generate(ctx context.Context, lat, lon, distanceKm float64) (*models.CourseGenerationResponse, error)
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Generate handles POST /api/courses/generate requests
//
// @Summary      Generate and rank running courses
// @Description  Builds twelve radial courses around the position, enriches them with elevation and addresses and returns the three most runnable.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        request  body      models.CourseGenerationRequest  true  "Start position and round-trip distance in km"
// @Success      200      {object}  models.CourseGenerationResponse
// @Failure      400      {object}  models.FailureResponse  "Invalid input"
// @Failure      408      {object}  models.FailureResponse  "Pipeline timeout"
// @Failure      503      {object}  models.FailureResponse  "AI service unavailable"
// @Failure      500      {object}  models.FailureResponse  "Internal error"
// @Router       /api/courses/generate [post]
func (h *CourseHandler) Generate(c *gin.Context) {
	const op = "courses.request"
	started := time.Now()

	var req models.CourseGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, apperr.New(apperr.KindValidation, op, err), started)
		return
	}

	distance, ok := req.Distance()
	if !ok {
		respondFailure(c, apperr.New(apperr.KindValidation, op, errors.New("latitude, longitude and distance are required")), started)
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), *req.Latitude, *req.Longitude, distance)
	if err != nil {
		respondFailure(c, err, started)
		return
	}

	c.JSON(http.StatusOK, resp)
}
