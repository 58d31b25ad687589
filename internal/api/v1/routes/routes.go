package routes

import (
	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/v1/handlers"
	"habla-jungla/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranslationService services.TranslationService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	translationHandler := handlers.NewTranslationHandler(container.TranslationService)
	router.POST("/translations", translationHandler.Create)
	router.POST("/analysis", translationHandler.Analyze)

	utteranceHandler := handlers.NewUtteranceHandler(container.TranslationService)
	router.POST("/utterances", utteranceHandler.Create)

	metaHandler := handlers.NewMetaHandler(container.TranslationService)
	router.GET("/labels", metaHandler.Labels)
	router.GET("/config", metaHandler.Config)
}

// RegisterLegacyRoutes registers the recorder page endpoint at the root
func RegisterLegacyRoutes(router gin.IRoutes, container *ServiceContainer) {
	translationHandler := handlers.NewTranslationHandler(container.TranslationService)
	router.POST("/process_audio", translationHandler.ProcessAudio)
}
