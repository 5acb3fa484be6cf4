package settings

import "context"

// Service contains the business logic for settings operations
type Service struct {
	repo Repository
}

// NewService creates a new settings service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetReminderSettings returns the user's reminder settings, falling back to
// defaults when none were ever saved.
func (s *Service) GetReminderSettings(ctx context.Context, userID string) (ReminderSettings, error) {
	stored, err := s.repo.GetReminderSettings(ctx, userID)
	if err != nil {
		return ReminderSettings{}, err
	}
	if stored == nil {
		return DefaultReminderSettings(), nil
	}
	if stored.MessageTemplate == "" {
		stored.MessageTemplate = DefaultMessageTemplate
	}
	if stored.DaysBefore < 1 {
		stored.DaysBefore = 1
	}
	return *stored, nil
}

// SaveReminderSettings validates and persists the reminder settings.
func (s *Service) SaveReminderSettings(ctx context.Context, userID string, r ReminderSettings) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.repo.SaveReminderSettings(ctx, userID, r)
}

// GetEvolutionSettings returns the user's Evolution API settings, or zero
// settings when none were ever saved.
func (s *Service) GetEvolutionSettings(ctx context.Context, userID string) (EvolutionSettings, error) {
	stored, err := s.repo.GetEvolutionSettings(ctx, userID)
	if err != nil {
		return EvolutionSettings{}, err
	}
	if stored == nil {
		return EvolutionSettings{}, nil
	}
	return *stored, nil
}

// SaveEvolutionSettings validates and persists the Evolution API settings.
func (s *Service) SaveEvolutionSettings(ctx context.Context, userID string, e EvolutionSettings) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return s.repo.SaveEvolutionSettings(ctx, userID, e)
}
