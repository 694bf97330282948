// Package main 是 HTTP 服务的入口点。
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

	"github.com/gin-gonic/gin"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/handler"
	"trip-planner-go/internal/middleware"
	"trip-planner-go/internal/repository"
	"trip-planner-go/internal/service"
	"trip-planner-go/pkg/database"
	"trip-planner-go/pkg/log"
)

func main() {
	// 1. 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}
	config.Init(configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库并建表
	database.Init(cfg.Database)
	tripRepo := repository.NewTripRepository(database.DB)
	if err := tripRepo.Initialize(context.Background()); err != nil {
		log.Fatal("初始化数据表失败", err)
	}

	// 4. 初始化 Service。凭证缺失不阻止启动，规划请求会返回配置错误。
	if cfg.LLM.APIKey == "" {
		log.Warnf("未配置模型凭证 (LLM_API_KEY / GOOGLE_API_KEY)，规划接口将不可用")
	}
	plannerService := service.NewPlannerService(tripRepo, cfg.LLM, cfg.History.DefaultLimit)

	// 5. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery())

	// 6. 注册路由
	apiV1 := r.Group("/api/v1")
	handler.NewTripHandler(plannerService).RegisterRoutes(apiV1)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 留出时间让进行中的模型调用结束
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
		return
	}
	log.Info("服务已优雅关闭")
}
