package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Settings() SettingRepository
	HealthCheck(ctx context.Context) error
}
