package firestore

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meusaldo/internal/domain/settings"
)

// Fixed document IDs under users/{uid}/settings.
const (
	remindersDoc    = "reminders"
	evolutionAPIDoc = "evolutionAPI"
)

type reminderSettingsDoc struct {
	IsEnabled       bool   `firestore:"isEnabled"`
	DaysBefore      int    `firestore:"daysBefore"`
	MessageTemplate string `firestore:"messageTemplate"`
}

type evolutionSettingsDoc struct {
	ServerURL               string `firestore:"serverUrl"`
	InstanceName            string `firestore:"instanceName"`
	APIKey                  string `firestore:"apiKey"`
	NotificationPhoneNumber string `firestore:"notificationPhoneNumber,omitempty"`
	PixKey                  string `firestore:"pixKey,omitempty"`
}

// SettingsRepository implements settings.Repository on Firestore.
type SettingsRepository struct {
	client *Client
}

// NewSettingsRepository creates a new Firestore-backed settings repository.
func NewSettingsRepository(client *Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) GetReminderSettings(ctx context.Context, userID string) (*settings.ReminderSettings, error) {
	snap, err := r.client.userDoc(userID).Collection(settingsCollection).Doc(remindersDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reminder settings: %w", err)
	}

	var doc reminderSettingsDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode reminder settings: %w", err)
	}
	return &settings.ReminderSettings{
		IsEnabled:       doc.IsEnabled,
		DaysBefore:      doc.DaysBefore,
		MessageTemplate: doc.MessageTemplate,
	}, nil
}

func (r *SettingsRepository) SaveReminderSettings(ctx context.Context, userID string, s settings.ReminderSettings) error {
	doc := reminderSettingsDoc{
		IsEnabled:       s.IsEnabled,
		DaysBefore:      s.DaysBefore,
		MessageTemplate: s.MessageTemplate,
	}
	if _, err := r.client.userDoc(userID).Collection(settingsCollection).Doc(remindersDoc).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to save reminder settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) GetEvolutionSettings(ctx context.Context, userID string) (*settings.EvolutionSettings, error) {
	snap, err := r.client.userDoc(userID).Collection(settingsCollection).Doc(evolutionAPIDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evolution settings: %w", err)
	}

	var doc evolutionSettingsDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode evolution settings: %w", err)
	}
	return &settings.EvolutionSettings{
		ServerURL:               doc.ServerURL,
		InstanceName:            doc.InstanceName,
		APIKey:                  doc.APIKey,
		NotificationPhoneNumber: doc.NotificationPhoneNumber,
		PixKey:                  doc.PixKey,
	}, nil
}

func (r *SettingsRepository) SaveEvolutionSettings(ctx context.Context, userID string, s settings.EvolutionSettings) error {
	doc := evolutionSettingsDoc{
		ServerURL:               s.ServerURL,
		InstanceName:            s.InstanceName,
		APIKey:                  s.APIKey,
		NotificationPhoneNumber: s.NotificationPhoneNumber,
		PixKey:                  s.PixKey,
	}
	if _, err := r.client.userDoc(userID).Collection(settingsCollection).Doc(evolutionAPIDoc).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to save evolution settings: %w", err)
	}
	return nil
}
