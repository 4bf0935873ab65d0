// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"internhub/internal/domain/entity"
)

// RoleResolver decides which role an identity holds. It never writes.
type RoleResolver interface {
	// ResolveRole returns the stored account role, else a metadata hint, else the default role.
	// It returns "" only when identity is nil.
	ResolveRole(ctx context.Context, identity *entity.Identity) entity.Role

	// RoleFromMetadata resolves using session metadata only, falling back to the default role.
	RoleFromMetadata(identity *entity.Identity) entity.Role
}
