// Package main 是应用程序入口
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/verselab/lyrics-backend/internal/common/config"
	"github.com/verselab/lyrics-backend/internal/common/metrics"
	adminHandler "github.com/verselab/lyrics-backend/internal/handler/admin"
	lyricHandler "github.com/verselab/lyrics-backend/internal/handler/lyric"
	performerHandler "github.com/verselab/lyrics-backend/internal/handler/performer"
	"github.com/verselab/lyrics-backend/internal/middleware"
	"github.com/verselab/lyrics-backend/internal/repository"
	adminService "github.com/verselab/lyrics-backend/internal/service/admin"
	lyricService "github.com/verselab/lyrics-backend/internal/service/lyric"
	performerService "github.com/verselab/lyrics-backend/internal/service/performer"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
) {
	// 初始化仓储
	performerRepo := repository.NewPerformerRepository(db)
	lyricRepo := repository.NewLyricRepository(db)

	// 初始化服务
	performerSvc := performerService.NewPerformerService(performerRepo, lyricRepo, &cfg.Catalog)
	lyricSvc := lyricService.NewLyricService(lyricRepo, performerRepo, &cfg.Catalog)
	adminSvc := adminService.NewAdminService(db)

	// 初始化处理器
	performerH := performerHandler.NewHandler(performerSvc)
	lyricH := lyricHandler.NewHandler(lyricSvc)
	adminH := adminHandler.NewHandler(adminSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(logger))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(&middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// 监控指标
	if cfg.Metrics.Enabled {
		m := metrics.Init("")
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// 健康检查
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	api := r.Group("/api")
	{
		performerH.RegisterRoutes(api)
		lyricH.RegisterRoutes(api)
		adminH.RegisterRoutes(api)
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "接口不存在",
		})
	})
}
