// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "internhub/internal/delivery/context"
	"internhub/internal/domain/entity"
	"internhub/internal/domain/repository"
	"internhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// roleResolver implements the RoleResolver interface.
type roleResolver struct {
	accountRepo repository.AccountRepository
	extractors  []RoleExtractor
	logger      *slog.Logger
}

// RoleResolverParams holds dependencies for RoleResolver, injected by Fx.
type RoleResolverParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
	Sources     []RoleSource `optional:"true"`
}

// NewRoleResolver is the constructor for roleResolver. Sources default to DefaultRoleSources.
func NewRoleResolver(params RoleResolverParams) usecase.RoleResolver {
	sources := params.Sources
	if len(sources) == 0 {
		sources = DefaultRoleSources
	}

	return &roleResolver{
		accountRepo: params.AccountRepo,
		extractors:  Extractors(sources),
		logger:      params.Logger,
	}
}

func (r *roleResolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// ResolveRole returns the role for identity. A stored account always wins over metadata.
func (r *roleResolver) ResolveRole(ctx context.Context, identity *entity.Identity) entity.Role {
	if identity == nil {
		return ""
	}

	if identity.Email != "" {
		account, err := r.accountRepo.FindByEmail(ctx, identity.Email)
		switch {
		case err == nil && account.Role.IsValid():
			return account.Role
		case err == nil:
			r.log(ctx).Warn("Stored account has an unknown role, falling back to metadata",
				slog.String("email", identity.Email), slog.String("role", account.Role.String()))
		case !errors.Is(err, repository.ErrAccountNotFound):
			// A failed read must not block navigation.
			r.log(ctx).Error("Failed to read account role, falling back to metadata",
				slog.String("email", identity.Email), slog.Any("error", err))
		}
	}

	return r.RoleFromMetadata(identity)
}

// RoleFromMetadata resolves a role from session metadata alone.
func (r *roleResolver) RoleFromMetadata(identity *entity.Identity) entity.Role {
	if identity == nil {
		return ""
	}

	if role, ok := FirstRole(identity, r.extractors); ok {
		return role
	}

	return entity.DefaultRole
}
