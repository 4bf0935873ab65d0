package usecase

import (
	"context"

	"internhub/internal/domain/entity"
)

// ProfileSynchronizer ensures a signed-in identity has an account and matching profile.
type ProfileSynchronizer interface {
	// Synchronize returns the identity's account, creating it on first call.
	// A nil account with a nil error means "not yet synchronized": the failure was
	// logged and surfaced as a notice, and callers should degrade rather than fail.
	Synchronize(ctx context.Context, identity *entity.Identity) (*entity.Account, error)
}
