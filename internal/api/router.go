package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/middleware"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/config"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System     *service.SystemService
	Project    *service.ProjectService
	Investment *service.InvestmentService
	Dividend   *service.DividendService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	projectHandler := handlers.NewProjectHandler(services.Project)
	investmentHandler := handlers.NewInvestmentHandler(services.Investment)
	dividendHandler := handlers.NewDividendHandler(services.Dividend)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/project", func(r chi.Router) {
			r.Get("/", projectHandler.Projects)
			r.Post("/", projectHandler.CreateProject)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", projectHandler.Project)
				r.Post("/revenue", projectHandler.RecordRevenue)
				r.Get("/investment", investmentHandler.ProjectInvestments)
				r.Post("/investment", investmentHandler.CreateInvestment)
				r.Get("/dividend/preview", dividendHandler.PreviewDividends)
				r.Post("/dividend/distribute", dividendHandler.DistributeDividends)
				r.Get("/dividend/distributions", dividendHandler.ProjectDistributions)
			})
		})

		r.Route("/investment/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", investmentHandler.Investment)
			r.Post("/complete", investmentHandler.CompleteInvestment)
			r.Post("/cancel", investmentHandler.CancelInvestment)
			r.Post("/refund", investmentHandler.RefundInvestment)
			r.Get("/dividend", dividendHandler.InvestmentDividends)
		})

		r.Route("/dividend/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Post("/paid", dividendHandler.MarkPaid)
			r.Post("/failed", dividendHandler.MarkFailed)
		})
	})

	return r
}
