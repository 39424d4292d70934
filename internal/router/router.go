package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stemsi/jinro-backend/internal/config"
	"github.com/stemsi/jinro-backend/internal/handler"
	"github.com/stemsi/jinro-backend/internal/middleware"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
)

// dataCacheSeconds is how long clients may reuse read-only data and charts.
const dataCacheSeconds = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Session       *handler.SessionHandler
	Chat          *handler.ChatHandler
	Quiz          *handler.QuizHandler
	Visualization *handler.VisualizationHandler
	History       *handler.HistoryHandler
	Data          *handler.DataHandler
	WS            *handler.WSHandler
	System        *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds background middleware goroutines.
func SetupRouter(
	ctx context.Context,
	sessions service.SessionService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID", middleware.SessionHeader}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", middleware.SessionHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	api := router.Group("/api/v1")
	if cfg.RateLimitPerMinute > 0 {
		api.Use(middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute).Middleware())
	}

	// ─── 1. Sessions ───────────────────────────────────────────────────
	api.POST("/sessions", middleware.NoStore(), handlers.Session.Create)

	// ─── 2. Session-scoped routes ──────────────────────────────────────
	scoped := api.Group("")
	scoped.Use(middleware.NoStore(), middleware.RequireSession(sessions))
	{
		scoped.DELETE("/sessions/current", handlers.Session.Home)

		scoped.POST("/chat/messages", handlers.Chat.Send)
		scoped.GET("/chat/messages", handlers.Chat.List)

		scoped.GET("/quiz", handlers.Quiz.State)
		scoped.POST("/quiz/answers", handlers.Quiz.Submit)
		scoped.GET("/quiz/result", handlers.Quiz.Result)
		scoped.POST("/quiz/reset", handlers.Quiz.Reset)
	}

	// ─── 3. Public read-only data ──────────────────────────────────────
	public := api.Group("")
	public.Use(middleware.CacheControl(dataCacheSeconds))
	{
		public.GET("/quiz/questions", handlers.Quiz.Questions)

		public.GET("/visualizations/:kind", handlers.Visualization.Get)
		public.GET("/visualizations/:kind/png", handlers.Visualization.PNG)

		public.GET("/data/universities", handlers.Data.Universities)
		public.GET("/data/majors", handlers.Data.Majors)
		public.GET("/data/admission-rates", handlers.Data.AdmissionRates)
		public.GET("/data/stats", handlers.Data.Stats)
		public.GET("/data/export.xlsx", handlers.Data.Export)
	}

	// ─── 4. History ────────────────────────────────────────────────────
	api.GET("/history", middleware.NoStore(), handlers.History.Recent)
	api.GET("/history/popular", middleware.NoStore(), handlers.History.Popular)

	// ─── 5. WebSocket ──────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireSession(sessions))
	{
		ws.GET("/chat", handlers.WS.ChatStream)
	}

	return router
}
