package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	scheduler := api.Group("/scheduler")
	scheduler.POST("/run", srv.triggerPass)
	scheduler.GET("/last-pass", srv.lastPass)

	blocks := api.Group("/life-blocks")
	blocks.GET("", srv.listLifeBlocks)
	blocks.POST("/one-off", srv.createOneOffBlock)
	blocks.POST("/weekly", srv.createWeeklyBlock)
	blocks.DELETE("/:id", srv.deleteLifeBlock)

	srv.l.Infof(ctx, "Scheduler and life-block routes registered under /api/v1")
}
