package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/app"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/config"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/logging"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/scheduler"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
		File:     cfg.Log.File,
	})
	defer logger.Sync() //nolint:errcheck // nothing useful to do on exit
	zap.ReplaceGlobals(logger)

	logger.Info("starting", zap.String("version", version.Version))

	a, err := app.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialise application", zap.Error(err))
	}
	defer a.Close()

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		job := scheduler.NewDividendJob(a.ProjectService, a.DividendService, logger.Named("scheduler"))
		sched, err = scheduler.New(cfg.Scheduler.Spec, job, logger.Named("scheduler"))
		if err != nil {
			logger.Fatal("failed to create dividend scheduler", zap.Error(err))
		}
		sched.Start()
	}

	router := api.NewRouter(api.Services{
		System:     a.SystemService,
		Project:    a.ProjectService,
		Investment: a.InvestmentService,
		Dividend:   a.DividendService,
	}, cfg, logger.Named("http"))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			logger.Error("dividend run did not finish before shutdown", zap.Error(err))
		}
	}

	logger.Info("server exited")
}
