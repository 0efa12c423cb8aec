package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/reelorders/internal/domain/errors"
	"github.com/polkiloo/reelorders/internal/domain/model"
	"github.com/polkiloo/reelorders/internal/domain/repository"
)

// SettingsUseCase reads and toggles the advisory server status.
type SettingsUseCase struct {
	settings repository.SettingRepository
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(settings repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// ServerStatus returns the stored status; unknown or missing values read as open.
func (u *SettingsUseCase) ServerStatus(ctx context.Context) (model.ServerStatus, error) {
	value, err := u.settings.Get(ctx, model.SettingServerStatus, string(model.DefaultServerStatus))
	if err != nil {
		return "", err
	}
	status := model.ServerStatus(value)
	if !status.Valid() {
		return model.DefaultServerStatus, nil
	}
	return status, nil
}

// SetServerStatus persists status after validation.
func (u *SettingsUseCase) SetServerStatus(ctx context.Context, status model.ServerStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status must be open or closed", domainErrors.ErrInvalidInput)
	}
	return u.settings.Set(ctx, model.SettingServerStatus, string(status))
}
