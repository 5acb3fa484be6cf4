package main

import (
	"context"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/account"
	"meusaldo/internal/domain/category"
	"meusaldo/internal/domain/reminder"
	"meusaldo/internal/domain/settings"
	"meusaldo/internal/domain/transaction"
	"meusaldo/internal/infrastructure/evolution"
	"meusaldo/internal/infrastructure/firestore"
	httphandlers "meusaldo/internal/interfaces/http"
	"meusaldo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Firestore *firestore.Client

	// Handlers
	TransactionHandler *httphandlers.TransactionHandler
	AccountHandler     *httphandlers.AccountHandler
	CategoryHandler    *httphandlers.CategoryHandler
	ReportHandler      *httphandlers.ReportHandler
	SettingsHandler    *httphandlers.SettingsHandler
	ExportHandler      *httphandlers.ExportHandler

	// Reminder service (for the scheduler job provider)
	ReminderService *reminder.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	fsClient, err := firestore.NewClient(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("project_id", cfg.Firebase.ProjectID).Msg("connected to firestore")

	// Repositories
	transactionRepo := firestore.NewTransactionRepository(fsClient)
	accountRepo := firestore.NewAccountRepository(fsClient)
	categoryRepo := firestore.NewCategoryRepository(fsClient)
	settingsRepo := firestore.NewSettingsRepository(fsClient)

	// Domain services
	transactionService := transaction.NewService(transactionRepo)
	accountService := account.NewService(accountRepo)
	categoryService := category.NewService(categoryRepo)
	settingsService := settings.NewService(settingsRepo)

	// WhatsApp delivery through each user's own Evolution API instance
	messenger := evolution.NewClient()
	reminderService := reminder.NewService(transactionService, settingsService, messenger, log)

	return &Dependencies{
		Firestore:          fsClient,
		TransactionHandler: httphandlers.NewTransactionHandler(transactionService, log),
		AccountHandler:     httphandlers.NewAccountHandler(accountService, log),
		CategoryHandler:    httphandlers.NewCategoryHandler(categoryService, log),
		ReportHandler:      httphandlers.NewReportHandler(transactionService, accountService, categoryService, log),
		SettingsHandler:    httphandlers.NewSettingsHandler(settingsService, messenger, log),
		ExportHandler:      httphandlers.NewExportHandler(transactionService, accountService, categoryService, log),
		ReminderService:    reminderService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() error {
	if d.Firestore != nil {
		return d.Firestore.Close()
	}
	return nil
}
