package service

import (
	"context"
	"slices"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
	"github.com/carson-networks/expense-tracker/internal/validator"
)

type SettingsService struct {
	app *app
}

func (s *SettingsService) GetSettings(_ context.Context) slot.Settings {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return s.app.state.Settings
}

// UpdateSettings applies patch. An unknown currency rejects the whole patch.
func (s *SettingsService) UpdateSettings(_ context.Context, patch slot.SettingsPatch) (slot.Settings, error) {
	if patch.Currency != nil {
		currency := slot.NormalizeCurrency(*patch.Currency)
		if !validator.IsCurrency(currency) {
			return slot.Settings{}, &ledger.ValidationError{Field: "currency", Reason: "must be an ISO 4217 code"}
		}
		patch.Currency = &currency
	}

	a := s.app
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state.Settings = a.state.Settings.Apply(patch)
	a.saveSettings()
	return a.state.Settings, nil
}

func (s *SettingsService) ListCategories(_ context.Context) []slot.Category {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()
	return slices.Clone(s.app.state.Categories)
}
