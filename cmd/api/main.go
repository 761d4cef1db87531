package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner/internal/api"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/recipe"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/infrastructure/store"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（包含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.String("openrouter_api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("store_driver", cfg.Store.Driver),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStart()

	// 狀態儲存
	st, err := store.New(startCtx, cfg.Store)
	if err != nil {
		common.LogFatal("Failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	// AI 回應快取
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	// AI 供應商，未啟用時所有 AI 功能回傳協作錯誤
	var p provider.Provider
	if cfg.OpenRouter.Enabled {
		p = openrouter.NewClient(cfg.OpenRouter)
	}
	aiService := service.NewService(cfg, p, cacheManager)
	defer aiService.Close()

	// 背景分類隊列
	queueManager := queue.NewManager(cfg.Queue)
	queueManager.Start()
	defer queueManager.Close()

	// 餐點規劃
	mealPlanner := planner.New(cfg.Planner, st, recipe.NewService(aiService), queueManager)
	if err := mealPlanner.Load(startCtx); err != nil {
		common.LogFatal("Failed to load saved state", zap.Error(err))
	}

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Close()

	router := api.SetupRouter(cfg, api.Dependencies{
		Planner: mealPlanner,
		Store:   st,
		Queue:   queueManager,
		Cache:   cacheManager,
		Dedup:   dedup,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo("Server exited")
}
