package api

import (
	"time"

	"meal-planner/internal/api/handlers/health"
	recipeHandler "meal-planner/internal/api/handlers/recipe"
	shoppingHandler "meal-planner/internal/api/handlers/shopping"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/store"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務，Cache 可為 nil
type Dependencies struct {
	Planner *planner.Planner
	Store   store.Store
	Queue   *queue.Manager
	Cache   *cache.CacheManager
	Dedup   *middleware.Deduplicator
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodySize))

	// 健康檢查不受速率限制與逾時影響
	var cacheStats health.CacheInspector
	if deps.Cache != nil {
		cacheStats = deps.Cache
	}
	health.NewHandler(cfg.App.Version, cfg.OpenRouter.Enabled, deps.Store, deps.Queue, cacheStats).Register(router)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if deps.Dedup != nil {
		// 產生購物清單可合併重複內容，不需去重
		deps.Dedup.Exempt(api.BasePath() + shoppingHandler.GeneratePath)
		api.Use(deps.Dedup.Middleware())
	}
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	recipeHandler.NewHandler(deps.Planner).Register(api)
	shoppingHandler.NewHandler(deps.Planner).Register(api)

	common.LogInfo("Router setup completed successfully",
		zap.Bool("ai_enabled", cfg.OpenRouter.Enabled),
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodySize),
	)

	return router
}
