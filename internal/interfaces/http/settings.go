package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"meusaldo/internal/domain/reminder"
	"meusaldo/internal/domain/settings"
)

// testMessageText is sent when the user checks their Evolution API connection.
const testMessageText = "Olá! Esta é uma mensagem de teste do seu App Financeiro."

// SettingsHandler exposes reminder and Evolution API settings plus the
// connection test.
type SettingsHandler struct {
	service   *settings.Service
	messenger reminder.Messenger
	log       zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service *settings.Service, messenger reminder.Messenger, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, messenger: messenger, log: log}
}

// HandleReminderSettings serves GET and PUT on /api/settings/reminders.
func (h *SettingsHandler) HandleReminderSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		cfg, err := h.service.GetReminderSettings(r.Context(), userID)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to get reminder settings")
			http.Error(w, "Failed to get reminder settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	case http.MethodPut:
		var cfg settings.ReminderSettings
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.service.SaveReminderSettings(r.Context(), userID, cfg); err != nil {
			if errors.Is(err, settings.ErrInvalidDaysBefore) || errors.Is(err, settings.ErrEmptyTemplate) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to save reminder settings")
			http.Error(w, "Failed to save reminder settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleEvolutionSettings serves GET and PUT on /api/settings/evolution.
func (h *SettingsHandler) HandleEvolutionSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		cfg, err := h.service.GetEvolutionSettings(r.Context(), userID)
		if err != nil {
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to get evolution settings")
			http.Error(w, "Failed to get evolution settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	case http.MethodPut:
		var cfg settings.EvolutionSettings
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := h.service.SaveEvolutionSettings(r.Context(), userID, cfg); err != nil {
			if errors.Is(err, settings.ErrInvalidServerURL) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			h.log.Error().Err(err).Str("user_id", userID).Msg("failed to save evolution settings")
			http.Error(w, "Failed to save evolution settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, cfg)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type TestMessageRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

type TestMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleTestMessage serves POST /api/settings/evolution/test, sending a test
// message through the user's saved Evolution API settings. Delivery failures
// are reported in the body with 200, matching how the settings screen shows
// the outcome inline.
func (h *SettingsHandler) HandleTestMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		http.Error(w, "Phone number is required", http.StatusBadRequest)
		return
	}

	cfg, err := h.service.GetEvolutionSettings(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to get evolution settings")
		http.Error(w, "Failed to get evolution settings", http.StatusInternalServerError)
		return
	}
	if !cfg.IsConfigured() {
		writeJSON(w, http.StatusOK, TestMessageResponse{
			Success: false,
			Message: "Por favor, configure a Evolution API primeiro.",
		})
		return
	}

	if err := h.messenger.SendText(r.Context(), cfg, req.PhoneNumber, testMessageText); err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("test message failed")
		writeJSON(w, http.StatusOK, TestMessageResponse{
			Success: false,
			Message: "Falha ao enviar mensagem: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, TestMessageResponse{
		Success: true,
		Message: "Mensagem de teste enviada com sucesso!",
	})
}
