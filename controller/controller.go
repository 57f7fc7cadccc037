package controller

import (
	"awards-backend/dal"
	"awards-backend/metrics"
	"awards-backend/middelware"
	"awards-backend/models"
	"awards-backend/repository"
	"awards-backend/services"
	"awards-backend/utils/logger"
	"awards-backend/utils/swagger"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controller struct {
	Nomination     *NominationController
	Admin          *AdminController
	Infrastructure *InfrastructureController

	config     *models.Config
	logger     logger.Logger
	jwtManager *middelware.JWTManager
	gatherer   prometheus.Gatherer
}

// NewController wires repositories, services and handlers over db.
// gatherer backs /metrics; provisioner may be nil when the worker is disabled.
func NewController(ctx context.Context, cfg *models.Config, log logger.Logger, db dal.DatabaseClientInterface, m *metrics.Metrics, gatherer prometheus.Gatherer, provisioner Provisioner) *Controller {
	repoContainer := repository.NewRepository(db, cfg, log)
	serviceContainer := services.NewService(repoContainer, log)
	nominationService := serviceContainer.GetNominationService()
	jwtManager := middelware.NewJWTManager(cfg, log)

	return &Controller{
		Nomination:     NewNominationController(ctx, nominationService, log, m),
		Admin:          NewAdminController(ctx, nominationService, log, jwtManager),
		Infrastructure: NewInfrastructureController(ctx, provisioner, log),
		config:         cfg,
		logger:         log,
		jwtManager:     jwtManager,
		gatherer:       gatherer,
	}
}

// JWTManager returns the reviewer token manager
func (c *Controller) JWTManager() *middelware.JWTManager {
	return c.jwtManager
}

// RegisterRoutes installs middleware and all routes on r
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	loggingMiddleware := middelware.NewLoggingMiddleware(c.logger)
	r.Use(loggingMiddleware.Recovery())
	r.Use(loggingMiddleware.StructuredLogger())
	r.Use(middelware.NewCORSMiddleware(c.config).CORS())

	// Health check endpoint (no auth required)
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.config.AppVersion,
			"service": c.config.AppName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))

	r.GET("/swagger", swagger.ServeSwaggerUI(swagger.SwaggerConfig{
		Title:         c.config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
		AuthURL:       c.config.BasePath + "/admin/login",
	}))
	r.GET("/swagger/doc.json", swagger.ServeDoc())

	api := r.Group(c.config.BasePath)

	nominations := api.Group("/nominations")
	nominations.POST("", c.Nomination.SubmitNomination)
	nominations.POST("/steps/:step", c.Nomination.ValidateStep)

	admin := api.Group("/admin")
	admin.POST("/login", c.Admin.Login)

	protected := admin.Group("", c.jwtManager.AuthMiddleware())
	protected.POST("/logout", c.Admin.Logout)
	protected.GET("/nominations", c.Admin.ListNominations)
	protected.GET("/nominations/:id", c.Admin.GetNomination)
	protected.GET("/infrastructure/status", c.Infrastructure.GetWorkerStatus)
	protected.POST("/infrastructure/provision", c.Infrastructure.RunProvisioning)
}
