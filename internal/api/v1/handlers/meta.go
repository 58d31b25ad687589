package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/v1/services"
)

// MetaHandler reports labels and constants
type MetaHandler struct {
	service services.TranslationService
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(service services.TranslationService) *MetaHandler {
	return &MetaHandler{
		service: service,
	}
}

// Labels handles GET /api/v1/labels
//
// @Summary List species labels
// @Tags meta
// @Produce json
// @Success 200 {object} dto.LabelsResponse
// @Router /labels [get]
func (h *MetaHandler) Labels(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Labels(c.Request.Context()))
}

// Config handles GET /api/v1/config
//
// @Summary Show reproducibility constants
// @Tags meta
// @Produce json
// @Success 200 {object} dto.ConfigResponse
// @Router /config [get]
func (h *MetaHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Config(c.Request.Context()))
}
