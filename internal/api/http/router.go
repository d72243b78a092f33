package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins []string
	// UploadsDir is served at /uploads when set.
	UploadsDir string
}

func SetupRouter(
	cfg RouterConfig,
	interactions *InteractionController,
	admin *AdminController,
	delivery *DeliveryController,
) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = cfg.AllowedOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
		CallerIDHeader,
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(config))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.UploadsDir != "" {
		router.Static("/uploads", cfg.UploadsDir)
	}

	api := router.Group("/api")

	if interactions != nil {
		api.POST("/interactions", interactions.Interact)
		api.POST("/interactions/photo", interactions.UploadPhoto)
	}

	if delivery != nil {
		api.GET("/ws", delivery.Connect)
	}

	if admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.GET("/participants", admin.ListParticipants)
		adminGroup.GET("/draws", admin.ListDraws)
	}

	return router
}
