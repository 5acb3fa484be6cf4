package settings

import (
	"context"
	"errors"
	"testing"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	GetReminderSettingsFunc   func(ctx context.Context, userID string) (*ReminderSettings, error)
	SaveReminderSettingsFunc  func(ctx context.Context, userID string, s ReminderSettings) error
	GetEvolutionSettingsFunc  func(ctx context.Context, userID string) (*EvolutionSettings, error)
	SaveEvolutionSettingsFunc func(ctx context.Context, userID string, s EvolutionSettings) error
}

func (m *MockRepository) GetReminderSettings(ctx context.Context, userID string) (*ReminderSettings, error) {
	if m.GetReminderSettingsFunc != nil {
		return m.GetReminderSettingsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) SaveReminderSettings(ctx context.Context, userID string, s ReminderSettings) error {
	if m.SaveReminderSettingsFunc != nil {
		return m.SaveReminderSettingsFunc(ctx, userID, s)
	}
	return nil
}

func (m *MockRepository) GetEvolutionSettings(ctx context.Context, userID string) (*EvolutionSettings, error) {
	if m.GetEvolutionSettingsFunc != nil {
		return m.GetEvolutionSettingsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) SaveEvolutionSettings(ctx context.Context, userID string, s EvolutionSettings) error {
	if m.SaveEvolutionSettingsFunc != nil {
		return m.SaveEvolutionSettingsFunc(ctx, userID, s)
	}
	return nil
}

func TestGetReminderSettings_Defaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	got, err := svc.GetReminderSettings(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetReminderSettings failed: %v", err)
	}
	if got.IsEnabled {
		t.Error("reminders enabled by default")
	}
	if got.DaysBefore != 1 {
		t.Errorf("DaysBefore = %d, want 1", got.DaysBefore)
	}
	if got.MessageTemplate != DefaultMessageTemplate {
		t.Errorf("MessageTemplate = %q", got.MessageTemplate)
	}
}

func TestGetReminderSettings_RepairsStoredValues(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepository{
		GetReminderSettingsFunc: func(ctx context.Context, userID string) (*ReminderSettings, error) {
			return &ReminderSettings{IsEnabled: true, DaysBefore: 0, MessageTemplate: ""}, nil
		},
	}
	svc := NewService(repo)

	got, err := svc.GetReminderSettings(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetReminderSettings failed: %v", err)
	}
	if !got.IsEnabled {
		t.Error("enabled flag lost")
	}
	if got.DaysBefore != 1 || got.MessageTemplate != DefaultMessageTemplate {
		t.Errorf("stored zero values not repaired: %+v", got)
	}
}

func TestSaveReminderSettings_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	tests := []struct {
		name    string
		in      ReminderSettings
		wantErr error
	}{
		{name: "Valid", in: ReminderSettings{IsEnabled: true, DaysBefore: 3, MessageTemplate: "Olá {nome}"}},
		{name: "DaysBeforeTooLow", in: ReminderSettings{DaysBefore: 0, MessageTemplate: "x"}, wantErr: ErrInvalidDaysBefore},
		{name: "DaysBeforeTooHigh", in: ReminderSettings{DaysBefore: 31, MessageTemplate: "x"}, wantErr: ErrInvalidDaysBefore},
		{name: "BlankTemplate", in: ReminderSettings{DaysBefore: 2, MessageTemplate: "   "}, wantErr: ErrEmptyTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SaveReminderSettings(ctx, "user-1", tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("SaveReminderSettings failed: %v", err)
			}
		})
	}
}

func TestSaveEvolutionSettings_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&MockRepository{})

	ok := EvolutionSettings{ServerURL: "https://evo.example.com", InstanceName: "meusaldo", APIKey: "key"}
	if err := svc.SaveEvolutionSettings(ctx, "user-1", ok); err != nil {
		t.Errorf("SaveEvolutionSettings failed: %v", err)
	}

	bad := EvolutionSettings{ServerURL: "evo.example.com"}
	if err := svc.SaveEvolutionSettings(ctx, "user-1", bad); !errors.Is(err, ErrInvalidServerURL) {
		t.Errorf("error = %v, want ErrInvalidServerURL", err)
	}
}

func TestEvolutionSettingsIsConfigured(t *testing.T) {
	full := EvolutionSettings{ServerURL: "https://evo.example.com", InstanceName: "meusaldo", APIKey: "key"}
	if !full.IsConfigured() {
		t.Error("complete settings reported as not configured")
	}
	if (EvolutionSettings{ServerURL: "https://evo.example.com"}).IsConfigured() {
		t.Error("incomplete settings reported as configured")
	}
}
