package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// GeolocationHandler estimates the caller's position
type GeolocationHandler struct {
	locator Locator
}

// Locator interface for dependency injection
type Locator interface {
	Locate(ctx context.Context, hints models.GeolocationRequest) (*models.Position, error)
}

// NewGeolocationHandler creates a new geolocation handler
func NewGeolocationHandler(locator Locator) *GeolocationHandler {
	return &GeolocationHandler{locator: locator}
}

// Locate handles POST /api/geolocation requests
//
// @Summary      Estimate the caller's position
// @Tags         geolocation
// @Accept       json
// @Produce      json
// @Param        request  body      models.GeolocationRequest  false  "Optional wifi and cell tower hints"
// @Success      200      {object}  models.Position
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /api/geolocation [post]
func (h *GeolocationHandler) Locate(c *gin.Context) {
	var hints models.GeolocationRequest
	if err := c.ShouldBindJSON(&hints); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pos, err := h.locator.Locate(c.Request.Context(), hints)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("geolocation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "geolocation service unavailable"})
		return
	}

	c.JSON(http.StatusOK, pos)
}
