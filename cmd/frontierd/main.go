// Command frontierd runs the frontier coordination daemon: the HTTP
// API workers use to claim and report on crawl work, plus the
// background sweep that reclaims abandoned claims.
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

	"github.com/redis/go-redis/v9"

	"github.com/crawlfrontier/frontier/internal/api"
	"github.com/crawlfrontier/frontier/internal/config"
	"github.com/crawlfrontier/frontier/internal/coordination"
	"github.com/crawlfrontier/frontier/internal/logger"
	"github.com/crawlfrontier/frontier/internal/robots"
	"github.com/crawlfrontier/frontier/internal/store/postgres"
	"github.com/crawlfrontier/frontier/internal/sweeper"

	"github.com/crawlfrontier/frontier/internal/frontier"
)

const (
	shutdownTimeout    = 30 * time.Second
	errorChannelBuffer = 1
	signalChannelBuffer = 1
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.InitializeViper(); err != nil {
		return fmt.Errorf("initialize config: %w", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:       logger.Level(cfg.Logger.Level),
		Encoding:    cfg.Logger.Encoding,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	db, err := postgres.Open(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	st := postgres.New(db)
	checker := robots.NewHTTPChecker(http.DefaultClient, cfg.App.Name+"/"+cfg.App.Version, 0)

	frOpts := []frontier.Option{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		frOpts = append(frOpts, frontier.WithJobFinishLocker(coordination.NewJobFinishLocker(redisClient)))
		log.Info("job-finish locking enabled", "redis_address", cfg.Redis.Address)
	}

	fr := frontier.New(st, checker, log, frOpts...)
	handler := api.NewFrontierHandler(fr, checker)

	sweep := sweeper.New(fr, log, sweeper.DefaultSchedule)
	if err := sweep.Start(context.Background()); err != nil {
		return fmt.Errorf("start sweeper: %w", err)
	}

	srv, _ := api.StartHTTPServer(log, cfg.Server, cfg.App.Version, handler)

	log.Info("starting frontier daemon", "addr", cfg.Server.Address)
	errChan := make(chan error, errorChannelBuffer)
	go func() {
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return waitForShutdown(log, srv, sweep, errChan)
}

func waitForShutdown(log logger.Interface, srv *http.Server, sweep *sweeper.Sweeper, errChan chan error) error {
	sigChan := make(chan os.Signal, signalChannelBuffer)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serveErr := <-errChan:
		log.Error("server error", "error", serveErr.Error())
		return fmt.Errorf("server error: %w", serveErr)
	case sig := <-sigChan:
		log.Info("shutdown signal received", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		sweep.Stop(shutdownCtx)

		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error("failed to stop server", "error", shutdownErr.Error())
			return fmt.Errorf("shutdown server: %w", shutdownErr)
		}
		log.Info("frontier daemon stopped")
		return nil
	}
}
