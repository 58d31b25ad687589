package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/errors"
	"habla-jungla/internal/api/middleware"
	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/api/v1/services"
)

// TranslationHandler handles audio translation endpoints
type TranslationHandler struct {
	service services.TranslationService
}

// NewTranslationHandler creates a new translation handler
func NewTranslationHandler(service services.TranslationService) *TranslationHandler {
	return &TranslationHandler{
		service: service,
	}
}

// Create handles POST /api/v1/translations
//
// @Summary Translate an animal sound
// @Description Decodes the uploaded clip, classifies the species and generates what it says
// @Tags translations
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio clip (WAV or MP3)"
// @Param analysis formData bool false "Also ask the remote analysis service"
// @Param sample_rate formData int false "Sample rate of headerless PCM uploads (.pcm, .raw or audio/L16)"
// @Param channels formData int false "Channel count of headerless PCM uploads"
// @Success 200 {object} dto.TranslationResponse "Translation"
// @Failure 400 {object} errors.APIError "Missing or undecodable audio"
// @Failure 413 {object} errors.APIError "Upload too large"
// @Failure 503 {object} errors.APIError "Language model unavailable"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /translations [post]
func (h *TranslationHandler) Create(c *gin.Context) {
	clip, err := readClip(c, "audio", "file")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	withAnalysis, _ := strconv.ParseBool(c.DefaultPostForm("analysis", c.Query("analysis")))

	response, err := h.service.Translate(c.Request.Context(), clip, withAnalysis)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	response.RequestID = c.GetString(middleware.RequestIDKey)
	c.JSON(http.StatusOK, response)
}

// ProcessAudio handles POST /process_audio, used by the recorder page
//
// @Summary Translate an animal sound (legacy)
// @Description Form field "audio" in, species and dialogue out
// @Tags legacy
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio clip"
// @Success 200 {object} dto.LegacyTranslationResponse
// @Failure 400 {object} dto.LegacyErrorResponse "No audio file provided"
// @Failure 503 {object} dto.LegacyErrorResponse "Language model unavailable"
// @Router /process_audio [post]
func (h *TranslationHandler) ProcessAudio(c *gin.Context) {
	clip, err := readClip(c, "audio")
	if err != nil {
		legacyError(c, err)
		return
	}

	response, err := h.service.Translate(c.Request.Context(), clip, false)
	if err != nil {
		legacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LegacyTranslationResponse{
		AnimalType: response.Species,
		Dialogue:   response.Utterance,
	})
}

// Analyze handles POST /api/v1/analysis
//
// @Summary Ask the remote analysis service
// @Description Forwards the raw clip to the configured analysis endpoint. available is false when it is unreachable or not configured.
// @Tags translations
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio clip"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} errors.APIError "No audio file provided"
// @Router /analysis [post]
func (h *TranslationHandler) Analyze(c *gin.Context) {
	clip, err := readClip(c, "audio", "file")
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Analyze(c.Request.Context(), clip.Data))
}

func legacyError(c *gin.Context, err error) {
	apiErr := errors.FromPipeline(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), dto.LegacyErrorResponse{Error: apiErr.Message})
}
