package main

import (
	"net/http"

	"github.com/rs/zerolog"

	httphandlers "meusaldo/internal/interfaces/http"
	"meusaldo/internal/shared/config"
	"meusaldo/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with
// the middleware chain applied.
func SetupRoutes(deps *Dependencies, cfg *config.Config, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check (public)
	mux.HandleFunc("/api/health", httphandlers.HandleHealth)

	// Protected routes
	authMiddleware := middleware.Auth(deps.Firestore)

	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/transactions", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/transactions/reset", protected(deps.TransactionHandler.HandleReset))
	mux.Handle("/api/transactions/month/{year}/{month}", protected(deps.TransactionHandler.HandleDeleteMonth))
	mux.Handle("/api/transactions/{id}", protected(deps.TransactionHandler.HandleTransactionByID))

	mux.Handle("/api/accounts", protected(deps.AccountHandler.HandleAccounts))
	mux.Handle("/api/accounts/{id}", protected(deps.AccountHandler.HandleAccountByID))

	mux.Handle("/api/categories", protected(deps.CategoryHandler.HandleCategories))
	mux.Handle("/api/categories/{id}", protected(deps.CategoryHandler.HandleCategoryByID))
	mux.Handle("/api/subcategories", protected(deps.CategoryHandler.HandleSubcategories))
	mux.Handle("/api/subcategories/{id}", protected(deps.CategoryHandler.HandleSubcategoryByID))

	mux.Handle("/api/reports/dashboard", protected(deps.ReportHandler.HandleDashboard))
	mux.Handle("/api/reports/monthly", protected(deps.ReportHandler.HandleMonthlyReport))

	mux.Handle("/api/settings/reminders", protected(deps.SettingsHandler.HandleReminderSettings))
	mux.Handle("/api/settings/evolution", protected(deps.SettingsHandler.HandleEvolutionSettings))
	mux.Handle("/api/settings/evolution/test", protected(deps.SettingsHandler.HandleTestMessage))

	mux.Handle("/api/export/csv", protected(deps.ExportHandler.HandleExportCSV))

	// Global middleware chain
	handler := middleware.Tracing(mux)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(log)(handler)

	// Security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Info().Msg("TLS security middleware enabled (HSTS)")
	}

	return handler
}
