// Package settings stores the learner's local preferences.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/store"
)

// SettingsKey is the settings entry holding the preferences document.
const SettingsKey = "preferences"

// Notifications toggles the notification channels.
type Notifications struct {
	Email     bool `json:"email"`
	Push      bool `json:"push"`
	Marketing bool `json:"marketing"`
}

// Preferences is the full set of user preferences.
type Preferences struct {
	Notifications  Notifications `json:"notifications"`
	AssistantDelay time.Duration `json:"assistant_delay"`
	ShowCompleted  bool          `json:"show_completed"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Preferences {
	return Preferences{
		Notifications:  Notifications{Email: true, Push: true},
		AssistantDelay: 600 * time.Millisecond,
		ShowCompleted:  true,
	}
}

// MaxAssistantDelay caps the simulated typing delay.
const MaxAssistantDelay = 5 * time.Second

// Service loads and saves Preferences.
type Service struct {
	repo   store.SettingsRepo
	logger *zap.Logger
}

// NewService creates a preferences service.
func NewService(repo store.SettingsRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Load returns the stored preferences. A missing or unreadable document
// yields Defaults; only store failures are returned as errors.
func (s *Service) Load(ctx context.Context) (Preferences, error) {
	raw, ok, err := s.repo.Get(ctx, SettingsKey)
	if err != nil {
		return Defaults(), fmt.Errorf("load preferences: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}

	prefs := Defaults()
	if err := json.Unmarshal(raw, &prefs); err != nil {
		s.logger.Warn("corrupt preferences, using defaults", zap.Error(err))
		return Defaults(), nil
	}
	return prefs.normalized(), nil
}

// Save persists prefs.
func (s *Service) Save(ctx context.Context, prefs Preferences) error {
	data, err := json.Marshal(prefs.normalized())
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.repo.Set(ctx, SettingsKey, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Reset restores the defaults.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repo.Delete(ctx, SettingsKey); err != nil {
		return fmt.Errorf("reset preferences: %w", err)
	}
	return nil
}

func (p Preferences) normalized() Preferences {
	p.AssistantDelay = min(max(p.AssistantDelay, 0), MaxAssistantDelay)
	return p
}
