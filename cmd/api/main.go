package main

import (
	"Atlania/internal/api/config"
	"Atlania/internal/pkg/database"
	"Atlania/internal/pkg/logger"
	"Atlania/internal/pkg/minio"
	"Atlania/internal/pkg/oauth"
	"Atlania/internal/pkg/redis"
	"Atlania/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	bootTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

func fatal(msg string, err error) {
	log.Error("Fatal error: "+msg, "err", err)
	panic(err)
}

func main() {
	if err := config.LoadConfig(); err != nil {
		fatal("failed to load configuration", err)
	}
	cfg := config.Cfg
	logger.InitLogger(cfg.Log)

	db, err := database.NewGormDB(&cfg.DB, logger.ParseLevel(cfg.Log.Level))
	if err != nil {
		fatal("failed to create database connection", err)
	}
	defer func() { _ = database.Close(db) }()

	if err = redis.InitRedis(cfg.Redis); err != nil {
		fatal("failed to create redis connection", err)
	}
	defer func() { _ = redis.Close() }()

	infra, err := initInfra(cfg, db)
	if err != nil {
		fatal("failed to initialize infrastructure", err)
	}

	app, err := wire.BuildApplication(infra, cfg)
	if err != nil {
		fatal("failed to create application", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = serve(ctx, app.Router, cfg.Server.Port); err != nil {
		log.Error("App exited with error", "err", err)
		return
	}
	log.Info("App exited successfully.")
}

// initInfra 建表、写入初始数据，并连接对象存储与 Google 登录
func initInfra(cfg *config.Config, db *gorm.DB) (*wire.Infra, error) {
	ctx, cancel := context.WithTimeout(context.Background(), bootTimeout)
	defer cancel()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if err := database.Seed(ctx, db, cfg.Bootstrap); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	mediaHost, err := minio.NewMediaHost(ctx, cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	infra := &wire.Infra{
		DB:    db,
		Store: redis.NewStore(nil),
		Media: mediaHost,
	}
	// 直接赋 nil 指针会得到非 nil 的接口值
	if google := oauth.NewGoogleProvider(cfg.Google); google != nil {
		infra.OAuth = google
	} else {
		log.Warn("Google login disabled: client id or secret missing")
	}
	return infra, nil
}

// serve 运行 HTTP 服务，ctx 取消后优雅退出
func serve(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP Server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
