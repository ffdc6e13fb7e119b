package handler

import (
	"context"
	"net/http"
	"strconv"

	"running-course-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ElevationHandler handles elevation lookups
type ElevationHandler struct {
	service ElevationService
}

// ElevationService interface for dependency injection
type ElevationService interface {
	Lookup(ctx context.Context, coords []models.Coordinate) ([]models.ElevationPoint, error)
}

// NewElevationHandler creates a new elevation handler
func NewElevationHandler(svc ElevationService) *ElevationHandler {
	return &ElevationHandler{service: svc}
}

// Batch handles POST /api/elevation requests
//
// @Summary      Look up elevations
// @Tags         elevation
// @Accept       json
// @Produce      json
// @Param        request  body      models.ElevationRequest  true  "Coordinates, at most 512"
// @Success      200      {object}  models.ElevationResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/elevation [post]
func (h *ElevationHandler) Batch(c *gin.Context) {
	var req models.ElevationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must contain a non-empty 'locations' array"})
		return
	}

	points, err := h.service.Lookup(c.Request.Context(), req.Locations)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ElevationResponse{
		Success:    true,
		Count:      len(points),
		Elevations: points,
	})
}

// Single handles GET /api/elevation/single requests
//
// @Summary      Look up one elevation
// @Tags         elevation
// @Produce      json
// @Param        lat  query     number  true  "Latitude"
// @Param        lon  query     number  true  "Longitude"
// @Success      200  {object}  models.ElevationPoint
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/elevation/single [get]
func (h *ElevationHandler) Single(c *gin.Context) {
	coord, ok := parseCoordinate(c)
	if !ok {
		return
	}

	points, err := h.service.Lookup(c.Request.Context(), []models.Coordinate{coord})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(points) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, points[0])
}

// parseCoordinate reads the lat and lon query parameters, answering 400 itself
// when they are missing or malformed.
func parseCoordinate(c *gin.Context) (models.Coordinate, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return models.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return models.Coordinate{}, false
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return models.Coordinate{}, false
	}

	return models.Coordinate{Lat: lat, Lon: lon}, true
}
