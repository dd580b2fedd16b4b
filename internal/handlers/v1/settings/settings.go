package settings

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/storage/slot"
)

// Settings is the API model of the user preferences.
type Settings struct {
	DarkMode      bool   `json:"darkMode"`
	BiometricLock bool   `json:"biometricLock"`
	Currency      string `json:"currency" doc:"ISO 4217 currency code"`
}

func fromSlot(s slot.Settings) Settings {
	return Settings{
		DarkMode:      s.DarkMode,
		BiometricLock: s.BiometricLock,
		Currency:      s.Currency,
	}
}

type SettingsOutput struct {
	Body Settings
}

// UpdateSettingsBody only changes the fields that are present.
type UpdateSettingsBody struct {
	DarkMode      *bool   `json:"darkMode,omitempty"`
	BiometricLock *bool   `json:"biometricLock,omitempty"`
	Currency      *string `json:"currency,omitempty" minLength:"3" maxLength:"3" doc:"ISO 4217 currency code"`
}

type UpdateSettingsInput struct {
	Body UpdateSettingsBody
}

type settingsService interface {
	GetSettings(ctx context.Context) slot.Settings
	UpdateSettings(ctx context.Context, patch slot.SettingsPatch) (slot.Settings, error)
}

// Handler serves GET and PATCH /v1/settings.
type Handler struct {
	SettingsService settingsService
}

func NewHandler(svc settingsService) *Handler {
	return &Handler{SettingsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/v1/settings",
		Summary:     "Get settings",
		Tags:        []string{"Settings"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "update-settings",
		Method:      http.MethodPatch,
		Path:        "/v1/settings",
		Summary:     "Update settings",
		Description: "Changes only the fields present in the body.",
		Tags:        []string{"Settings"},
	}, h.update)
}

func (h *Handler) get(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	return &SettingsOutput{Body: fromSlot(h.SettingsService.GetSettings(ctx))}, nil
}

func (h *Handler) update(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	updated, err := h.SettingsService.UpdateSettings(ctx, slot.SettingsPatch{
		DarkMode:      input.Body.DarkMode,
		BiometricLock: input.Body.BiometricLock,
		Currency:      input.Body.Currency,
	})
	if err != nil {
		return nil, apierror.From(err, "failed to update settings")
	}
	return &SettingsOutput{Body: fromSlot(updated)}, nil
}
