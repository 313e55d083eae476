package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"

	"storefront-server/internal/clients/platform"
	"storefront-server/internal/store"
)

// AuthStore defines the profile slot operations required by AuthProcessor
type AuthStore interface {
	GetProfile(ctx context.Context, sessionID string) (store.Profile, error)
	UpdateProfile(ctx context.Context, sessionID string, fn func(p *store.Profile) error) (store.Profile, error)
}

// PlatformAuth defines the remote account operations required by AuthProcessor
type PlatformAuth interface {
	Register(ctx context.Context, req platform.RegisterRequest, ref string) (platform.RegisteredUser, error)
	Login(ctx context.Context, req platform.LoginRequest) (platform.LoginResponse, error)
}
