package settings

import (
	"errors"
	"strings"
)

// DefaultMessageTemplate is the payment reminder sent to creditors when the
// user has not customized one. Placeholders {nome}, {valor} and {pix} are
// substituted at send time.
const DefaultMessageTemplate = "Olá {nome}! Lembrete: seu débito no valor de {valor} vence em breve.\n\nSegue chave PIX para pagamento: {pix}"

// Domain errors
var (
	ErrInvalidDaysBefore = errors.New("daysBefore must be between 1 and 30")
	ErrEmptyTemplate     = errors.New("message template is required")
	ErrInvalidServerURL  = errors.New("server URL must start with http:// or https://")
)

// ReminderSettings controls the creditor payment reminders. The user's own
// due-tomorrow summary is always on and fixed at one day before.
type ReminderSettings struct {
	IsEnabled       bool   `json:"isEnabled"`
	DaysBefore      int    `json:"daysBefore"`
	MessageTemplate string `json:"messageTemplate"`
}

// Validate validates the reminder settings.
func (r ReminderSettings) Validate() error {
	if r.DaysBefore < 1 || r.DaysBefore > 30 {
		return ErrInvalidDaysBefore
	}
	if strings.TrimSpace(r.MessageTemplate) == "" {
		return ErrEmptyTemplate
	}
	return nil
}

// DefaultReminderSettings returns the settings used before the user saves any.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		IsEnabled:       false,
		DaysBefore:      1,
		MessageTemplate: DefaultMessageTemplate,
	}
}

// EvolutionSettings holds the connection data for the user's Evolution API
// instance, through which WhatsApp messages are delivered.
type EvolutionSettings struct {
	ServerURL               string `json:"serverUrl"`
	InstanceName            string `json:"instanceName"`
	APIKey                  string `json:"apiKey"`
	NotificationPhoneNumber string `json:"notificationPhoneNumber,omitempty"`
	PixKey                  string `json:"pixKey,omitempty"`
}

// Validate validates the Evolution API settings. All fields may be empty
// while the user is still filling them in; a non-empty server URL must be
// absolute.
func (e EvolutionSettings) Validate() error {
	if e.ServerURL != "" && !strings.HasPrefix(e.ServerURL, "http://") && !strings.HasPrefix(e.ServerURL, "https://") {
		return ErrInvalidServerURL
	}
	return nil
}

// IsConfigured reports whether the settings are complete enough to send a
// message through the API.
func (e EvolutionSettings) IsConfigured() bool {
	return e.ServerURL != "" && e.InstanceName != "" && e.APIKey != ""
}
