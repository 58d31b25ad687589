package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "habla-jungla/docs" // Generated swagger docs
	"habla-jungla/internal/api/middleware"
	v1routes "habla-jungla/internal/api/v1/routes"
	"habla-jungla/internal/api/v1/services"
	"habla-jungla/internal/config"
	"habla-jungla/web"
)

// Config represents API server configuration
type Config struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	Environment   string
	MaxUploadMB   int
	EnableSwagger bool
	EnableMetrics bool
}

// ConfigFromSettings extracts the server section of the settings
func ConfigFromSettings(s *config.Settings) Config {
	return Config{
		Addr:          s.Addr(),
		ReadTimeout:   s.Server.ReadTimeout,
		WriteTimeout:  s.Server.WriteTimeout,
		IdleTimeout:   s.Server.IdleTimeout,
		Environment:   s.Environment,
		MaxUploadMB:   s.Server.MaxUploadMB,
		EnableSwagger: s.Server.EnableSwagger,
		EnableMetrics: s.Server.EnableMetrics,
	}
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server. registry collects the HTTP metrics
// and is served on /metrics together with whatever else registered on it.
func NewServer(
	config Config,
	service services.TranslationService,
	registry *prometheus.Registry,
	logger *zap.Logger,
) *Server {
	switch config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	if config.MaxUploadMB <= 0 {
		config.MaxUploadMB = 32
	}

	router := gin.New()
	router.MaxMultipartMemory = int64(config.MaxUploadMB) << 20

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if config.EnableMetrics && registry != nil {
		router.Use(middleware.Metrics(middleware.NewHTTPMetrics(registry)))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	container := &v1routes.ServiceContainer{
		TranslationService: service,
	}

	uploads := router.Group("", middleware.MaxUploadSize(config.MaxUploadMB))
	v1routes.RegisterLegacyRoutes(uploads, container)

	v1 := router.Group("/api/v1", middleware.MaxUploadSize(config.MaxUploadMB))
	v1routes.RegisterRoutes(v1, container)

	if config.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	web.Register(router)

	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start binds the listen address and serves in the background. Bind
// errors are returned; errors after that are logged.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.config.Addr),
		zap.String("environment", s.config.Environment),
	)

	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("API server started successfully", zap.String("address", listener.Addr().String()))
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
