package reminder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/settings"
	"meusaldo/internal/domain/transaction"
)

// Messenger delivers a WhatsApp text message through the user's Evolution
// API instance.
type Messenger interface {
	SendText(ctx context.Context, cfg settings.EvolutionSettings, number, text string) error
}

// TransactionLister is the slice of the transaction service the daily check
// needs.
type TransactionLister interface {
	List(ctx context.Context, userID string) ([]transaction.Transaction, error)
}

// SettingsProvider is the slice of the settings service the daily check needs.
type SettingsProvider interface {
	GetReminderSettings(ctx context.Context, userID string) (settings.ReminderSettings, error)
	GetEvolutionSettings(ctx context.Context, userID string) (settings.EvolutionSettings, error)
}

// Service runs the daily due-date checks and sends the resulting messages.
type Service struct {
	transactions TransactionLister
	settings     SettingsProvider
	messenger    Messenger
	logger       zerolog.Logger
}

// NewService creates a new reminder service
func NewService(transactions TransactionLister, settingsProvider SettingsProvider, messenger Messenger, logger zerolog.Logger) *Service {
	return &Service{
		transactions: transactions,
		settings:     settingsProvider,
		messenger:    messenger,
		logger:       logger,
	}
}

// RunDailyCheck performs both reminder passes for one user as of today:
// a single summary of debits due tomorrow sent to the user's own number,
// and one templated payment reminder per qualifying credit sent to each
// creditor. Send failures are logged and do not abort the remaining sends.
func (s *Service) RunDailyCheck(ctx context.Context, userID string, today caldate.Date) error {
	evo, err := s.settings.GetEvolutionSettings(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load evolution settings: %w", err)
	}
	if !evo.IsConfigured() {
		s.logger.Debug().Str("user_id", userID).Msg("evolution api not configured, skipping reminders")
		return nil
	}

	reminderCfg, err := s.settings.GetReminderSettings(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load reminder settings: %w", err)
	}

	txs, err := s.transactions.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	s.sendDebitSummary(ctx, userID, evo, txs, today)

	if reminderCfg.IsEnabled {
		s.sendCreditorReminders(ctx, userID, evo, reminderCfg, txs, today)
	}
	return nil
}

func (s *Service) sendDebitSummary(ctx context.Context, userID string, evo settings.EvolutionSettings, txs []transaction.Transaction, today caldate.Date) {
	if evo.NotificationPhoneNumber == "" {
		return
	}
	debits := DebitsDueTomorrow(txs, today)
	if len(debits) == 0 {
		return
	}

	text := BuildDueTomorrowSummary(debits)
	if err := s.messenger.SendText(ctx, evo, evo.NotificationPhoneNumber, text); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to send due-tomorrow summary")
		return
	}
	s.logger.Info().Str("user_id", userID).Int("debits", len(debits)).Msg("due-tomorrow summary sent")
}

func (s *Service) sendCreditorReminders(ctx context.Context, userID string, evo settings.EvolutionSettings, cfg settings.ReminderSettings, txs []transaction.Transaction, today caldate.Date) {
	credits := CreditsToRemind(txs, today, cfg.DaysBefore)
	for _, t := range credits {
		if t.CreditorName == "" {
			s.logger.Warn().Str("user_id", userID).Str("transaction_id", t.ID).Msg("credit has a phone but no creditor name, skipping")
			continue
		}
		text := BuildPaymentReminder(cfg.MessageTemplate, t, evo.PixKey)
		if err := s.messenger.SendText(ctx, evo, t.CreditorPhone, text); err != nil {
			s.logger.Error().Err(err).Str("user_id", userID).Str("transaction_id", t.ID).Msg("failed to send payment reminder")
			continue
		}
		s.logger.Info().Str("user_id", userID).Str("transaction_id", t.ID).Msg("payment reminder sent")
	}
}
