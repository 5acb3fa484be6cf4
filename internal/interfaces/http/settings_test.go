package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/settings"
)

type stubSettingsRepo struct {
	reminders *settings.ReminderSettings
	evolution *settings.EvolutionSettings
}

func (s *stubSettingsRepo) GetReminderSettings(ctx context.Context, userID string) (*settings.ReminderSettings, error) {
	return s.reminders, nil
}

func (s *stubSettingsRepo) SaveReminderSettings(ctx context.Context, userID string, r settings.ReminderSettings) error {
	s.reminders = &r
	return nil
}

func (s *stubSettingsRepo) GetEvolutionSettings(ctx context.Context, userID string) (*settings.EvolutionSettings, error) {
	return s.evolution, nil
}

func (s *stubSettingsRepo) SaveEvolutionSettings(ctx context.Context, userID string, e settings.EvolutionSettings) error {
	s.evolution = &e
	return nil
}

type recordingMessenger struct {
	numbers []string
	texts   []string
	err     error
}

func (m *recordingMessenger) SendText(ctx context.Context, cfg settings.EvolutionSettings, number, text string) error {
	if m.err != nil {
		return m.err
	}
	m.numbers = append(m.numbers, number)
	m.texts = append(m.texts, text)
	return nil
}

func configuredEvolution() *settings.EvolutionSettings {
	return &settings.EvolutionSettings{
		ServerURL:    "https://evo.example.com",
		InstanceName: "meusaldo",
		APIKey:       "secret",
	}
}

func TestHandleReminderSettings_GetDefaults(t *testing.T) {
	handler := NewSettingsHandler(settings.NewService(&stubSettingsRepo{}), &recordingMessenger{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.HandleReminderSettings(rec, authedRequest(http.MethodGet, "/api/settings/reminders", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cfg settings.ReminderSettings
	json.NewDecoder(rec.Body).Decode(&cfg)
	if cfg.IsEnabled {
		t.Error("reminders enabled by default")
	}
	if cfg.DaysBefore != 1 {
		t.Errorf("daysBefore = %d, want 1", cfg.DaysBefore)
	}
	if cfg.MessageTemplate != settings.DefaultMessageTemplate {
		t.Errorf("template = %q", cfg.MessageTemplate)
	}
}

func TestHandleReminderSettings_PutInvalid(t *testing.T) {
	handler := NewSettingsHandler(settings.NewService(&stubSettingsRepo{}), &recordingMessenger{}, zerolog.Nop())

	body := `{"isEnabled": true, "daysBefore": 0, "messageTemplate": "Olá {nome}"}`
	rec := httptest.NewRecorder()
	handler.HandleReminderSettings(rec, authedRequest(http.MethodPut, "/api/settings/reminders", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleTestMessage_NotConfigured(t *testing.T) {
	handler := NewSettingsHandler(settings.NewService(&stubSettingsRepo{}), &recordingMessenger{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.HandleTestMessage(rec, authedRequest(http.MethodPost, "/api/settings/evolution/test", `{"phoneNumber": "5511999990000"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp TestMessageResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Success {
		t.Error("expected failure for unconfigured API")
	}
	if !strings.Contains(resp.Message, "configure a Evolution API") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandleTestMessage_Sends(t *testing.T) {
	messenger := &recordingMessenger{}
	repo := &stubSettingsRepo{evolution: configuredEvolution()}
	handler := NewSettingsHandler(settings.NewService(repo), messenger, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.HandleTestMessage(rec, authedRequest(http.MethodPost, "/api/settings/evolution/test", `{"phoneNumber": "5511999990000"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp TestMessageResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if !resp.Success {
		t.Fatalf("send failed: %s", resp.Message)
	}
	if len(messenger.numbers) != 1 || messenger.numbers[0] != "5511999990000" {
		t.Errorf("sent to %v", messenger.numbers)
	}
	if !strings.Contains(messenger.texts[0], "mensagem de teste") {
		t.Errorf("text = %q", messenger.texts[0])
	}
}

func TestHandleTestMessage_MissingPhone(t *testing.T) {
	handler := NewSettingsHandler(settings.NewService(&stubSettingsRepo{}), &recordingMessenger{}, zerolog.Nop())

	rec := httptest.NewRecorder()
	handler.HandleTestMessage(rec, authedRequest(http.MethodPost, "/api/settings/evolution/test", `{}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
