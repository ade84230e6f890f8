package driven

import (
	"context"

	"github.com/custodia-labs/mplemon/internal/core/domain"
)

// KeyGenerator produces signing key material for issued tokens.
type KeyGenerator interface {
	// Generate returns a fresh key pair, base64 encoded.
	Generate() (domain.KeyPair, error)
}

// JWTConfigStore persists the JWT configuration as JSON.
type JWTConfigStore interface {
	// Load reads the configuration at locator.
	// Returns domain.ErrNotFound if nothing exists there.
	Load(ctx context.Context, locator string) (*domain.JWTConfig, error)

	// Save writes cfg to locator. Keys already present in an existing file
	// that cfg does not define are kept.
	Save(ctx context.Context, locator string, cfg *domain.JWTConfig) error
}
