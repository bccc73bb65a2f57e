package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"jp-municipalities/internal/models"
	"jp-municipalities/internal/service"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler serves reverse geocoding requests.
type ReverseGeocodeHandler struct {
	service ReverseGeoCodeService
}

// ReverseGeoCodeService is the service the handler delegates to.
type ReverseGeoCodeService interface {
	ReverseGeocode(context.Context, float64, float64) (*models.Municipality, error)
}

// NewReverseGeocodeHandler creates a ReverseGeocodeHandler backed by svc.
func NewReverseGeocodeHandler(svc ReverseGeoCodeService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode handles GET /reverse-geocode requests.
//
//	@Summary	Find the municipality nearest to a coordinate
//	@Tags		municipalities
//	@Produce	json
//	@Param		lat	query		number	true	"Latitude"
//	@Param		lon	query		number	true	"Longitude"
//	@Success	200	{object}	models.Municipality
//	@Failure	400	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	municipality, err := h.service.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if municipality == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no municipality found near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, municipality)
}
