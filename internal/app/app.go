// Package app wires configuration, storage and services for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/config"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/database"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/secret"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
)

// App holds the open database and the services built on it.
type App struct {
	DB                *sql.DB
	SystemService     *service.SystemService
	ProjectService    *service.ProjectService
	InvestmentService *service.InvestmentService
	DividendService   *service.DividendService
}

// New opens the database, applies migrations and builds every service.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	schemaVersion, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("database ready", zap.String("path", cfg.Database.Path), zap.Int64("schema_version", schemaVersion))

	box, err := secret.NewBox(cfg.Security.PaymentReferenceKey)
	if err != nil {
		db.Close()
		return nil, err
	}
	if box == nil {
		logger.Warn("PAYMENT_REFERENCE_KEY not set, payment references are stored in plaintext")
	}

	locks := service.NewProjectLocks()
	projectRepo := repository.NewProjectRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db, box)
	dividendRepo := repository.NewDividendRepository(db, box)

	return &App{
		DB: db,
		SystemService: service.NewSystemService(db, map[string]bool{
			"dividend_schedule":            cfg.Scheduler.Enabled,
			"payment_reference_encryption": box != nil,
		}),
		ProjectService:    service.NewProjectService(db, locks, projectRepo, logger),
		InvestmentService: service.NewInvestmentService(db, locks, projectRepo, investmentRepo, logger),
		DividendService:   service.NewDividendService(db, locks, projectRepo, investmentRepo, dividendRepo, logger),
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
