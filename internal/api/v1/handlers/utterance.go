package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/middleware"
	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/api/v1/services"
)

// UtteranceHandler generates utterances for a named species
type UtteranceHandler struct {
	service services.TranslationService
}

// NewUtteranceHandler creates a new utterance handler
func NewUtteranceHandler(service services.TranslationService) *UtteranceHandler {
	return &UtteranceHandler{
		service: service,
	}
}

// Create handles POST /api/v1/utterances
//
// @Summary Speak as a species
// @Description Generates an utterance for the given species without any audio
// @Tags utterances
// @Accept json
// @Produce json
// @Param request body dto.CreateUtteranceRequest true "Species"
// @Success 200 {object} dto.UtteranceResponse
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 503 {object} errors.APIError "Language model unavailable"
// @Router /utterances [post]
func (h *UtteranceHandler) Create(c *gin.Context) {
	var req dto.CreateUtteranceRequest

	if err := middleware.BindRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Speak(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
