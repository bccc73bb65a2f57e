package handler

import (
	"context"
	"errors"
	"net/http"

	"jp-municipalities/internal/models"
	"jp-municipalities/internal/service"

	"github.com/gin-gonic/gin"
)

// MunicipalityHandler serves code lookups and name searches.
type MunicipalityHandler struct {
	service MunicipalityService
}

// MunicipalityService is the service the handler delegates to.
type MunicipalityService interface {
	Lookup(context.Context, string) (*models.Municipality, error)
	Search(context.Context, string) ([]models.Municipality, error)
}

// NewMunicipalityHandler creates a MunicipalityHandler backed by svc.
func NewMunicipalityHandler(svc MunicipalityService) *MunicipalityHandler {
	return &MunicipalityHandler{service: svc}
}

// Get handles GET /municipalities/:code requests.
//
//	@Summary	Look up a municipality by local government code
//	@Tags		municipalities
//	@Produce	json
//	@Param		code	path		string	true	"Local government code"
//	@Success	200		{object}	models.Municipality
//	@Failure	400		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/municipalities/{code} [get]
func (h *MunicipalityHandler) Get(c *gin.Context) {
	municipality, err := h.service.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid municipality code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if municipality == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "municipality not found"})
		return
	}

	c.JSON(http.StatusOK, municipality)
}

// Search handles GET /municipalities requests.
//
//	@Summary	Search municipalities by kanji, kana or romaji name
//	@Tags		municipalities
//	@Produce	json
//	@Param		q	query		string	true	"Name fragment"
//	@Success	200	{array}		models.Municipality
//	@Failure	400	{object}	map[string]string
//	@Router		/municipalities [get]
func (h *MunicipalityHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	municipalities, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, municipalities)
}
