package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
)

// GeoCodeHandler handles address search requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	Geocode(context.Context, string) ([]models.Place, error)
}

// maxQueryRunes caps free-text queries forwarded to the search backend.
const maxQueryRunes = 200

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

// GeoCode handles GET /api/geocode requests
//
// @Summary      Search addresses
// @Tags         address
// @Produce      json
// @Param        q    query     string  true  "Free-text address"
// @Success      200  {array}   models.Place
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}
	if utf8.RuneCountInString(query) > maxQueryRunes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("query parameter 'q' must be at most %d characters", maxQueryRunes)})
		return
	}

	places, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, places)
}
