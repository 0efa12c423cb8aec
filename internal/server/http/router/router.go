package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/reelorders/internal/metrics"
	"github.com/polkiloo/reelorders/internal/server/http/handlers"
	"github.com/polkiloo/reelorders/internal/server/http/middleware"
)

const maxBodyBytes = 1 << 20

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade  handlers.ShopFacade
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger, p.Metrics))
	engine.Use(middleware.LimitBody(maxBodyBytes))
	engine.Use(middleware.DecompressRequest(maxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	healthHandler := handlers.NewHealthHandler(p.Facade, p.Logger)
	settingsHandler := handlers.NewSettingsHandler(p.Facade, p.Logger)
	orderHandler := handlers.NewOrderHandler(p.Facade, p.Logger)
	admin := middleware.AdminRequired(p.Facade)

	engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Health)
	api.GET("/ready", healthHandler.Ready)

	settings := api.Group("/settings")
	settings.GET("/server-status", settingsHandler.Status)
	settings.PATCH("/server-status", admin, settingsHandler.SetStatus)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Submit)
	orders.POST("/batch", orderHandler.Batch)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("", admin, orderHandler.List)
	orders.PATCH("/:id/approve", admin, orderHandler.Approve)

	return engine
}
