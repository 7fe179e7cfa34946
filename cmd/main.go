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

	"kkj123/config"
	"kkj123/database"
	"kkj123/handles"
	"kkj123/router"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := newLogger(cfg.Log)

	// run returns before exiting so its deferred closes happen
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *logrus.Logger) error {
	// 启动数据库
	store, err := database.Connect(context.Background(), cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database setup: %w", err)
	}
	defer store.Close()

	if cfg.Database.AutoMigrate {
		if err := store.Migrate(context.Background()); err != nil {
			return fmt.Errorf("database migration: %w", err)
		}
	}

	// 启动redis, 可选
	var notifier handles.Notifier
	if cfg.Redis.Addr != "" {
		publisher := database.NewPublisher(cfg.Redis.Addr, cfg.Redis.Channel)
		defer publisher.Close()
		notifier = publisher
	} else {
		log.Warn("REDIS_ADDR not set, channel events disabled")
	}

	// 启动服务器
	server := router.New(handles.New(store, notifier, log), log)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	return serve(server, cfg.HTTP.Addr, stop, log)
}

// serve blocks until the server fails or a signal arrives on stop, then
// shuts the server down.
func serve(server *echo.Echo, addr string, stop <-chan os.Signal, log logrus.FieldLogger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
		log.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg config.Log) *logrus.Logger {
	log := logrus.New()
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
