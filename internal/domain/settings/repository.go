package settings

import "context"

// Repository defines the interface for per-user settings persistence.
// Implementations return (nil, nil) when the user has never saved the
// document; the service substitutes defaults.
type Repository interface {
	GetReminderSettings(ctx context.Context, userID string) (*ReminderSettings, error)
	SaveReminderSettings(ctx context.Context, userID string, s ReminderSettings) error

	GetEvolutionSettings(ctx context.Context, userID string) (*EvolutionSettings, error)
	SaveEvolutionSettings(ctx context.Context, userID string, s EvolutionSettings) error
}
