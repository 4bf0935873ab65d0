package gotrue

import (
	"log/slog"
	"net/http"

	"internhub/config"
	"internhub/internal/domain/service"

	"go.uber.org/fx"
)

// Factory creates one Client per browser session. Clients share the HTTP
// connection pool and the token verifier.
type Factory struct {
	opts ClientOptions
}

// FactoryParams holds dependencies for Factory, injected by Fx.
type FactoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewFactory builds a provider factory from the identity configuration.
func NewFactory(params FactoryParams) service.IdentityProviderFactory {
	cfg := params.Config.Identity

	verifier := NewTokenVerifier(cfg.JWTSecret)
	if !verifier.Verifies() {
		params.Logger.Warn("identity.allowUnverifiedTokens is set, access token signatures are not verified")
	}

	return &Factory{
		opts: ClientOptions{
			BaseURL:       cfg.BaseURL,
			APIKey:        cfg.APIKey,
			RefreshMargin: cfg.RefreshMargin,
			HTTPClient:    &http.Client{Timeout: cfg.Timeout},
			Verifier:      verifier,
			Logger:        params.Logger.With(slog.String("component", "gotrue")),
		},
	}
}

// NewClient implements service.IdentityProviderFactory.
func (f *Factory) NewClient() service.IdentityProvider {
	return NewClient(f.opts)
}
