package repository

import "context"

// SettingRepository stores singleton key/value settings.
type SettingRepository interface {
	// Get returns def when the key is absent.
	Get(ctx context.Context, key, def string) (string, error)
	Set(ctx context.Context, key, value string) error
}
