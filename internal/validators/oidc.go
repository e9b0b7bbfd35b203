package validators

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const OIDCType = "oidc"

const DefaultUsernameClaim = "preferred_username"

var _ core.CredentialValidator = (*OIDC)(nil)

type OIDCConfig struct {
	IssuerURL string `mapstructure:"issuer_url"`

	// ClientID is the expected audience.
	ClientID string `mapstructure:"client_id"`

	// UsernameClaim names the claim holding the username.
	UsernameClaim string `mapstructure:"username_claim"`
}

// OIDC validates credentials that are OIDC ID tokens.
type OIDC struct {
	name          string
	usernameClaim string
	verifier      *oidc.IDTokenVerifier
}

func NewOIDC(ctx context.Context, name string, conf OIDCConfig) (*OIDC, error) {
	if conf.IssuerURL == "" {
		return nil, fmt.Errorf("oidc validator '%s' missing 'issuer_url'", name)
	}
	if conf.ClientID == "" {
		return nil, fmt.Errorf("oidc validator '%s' missing 'client_id'", name)
	}
	if conf.UsernameClaim == "" {
		conf.UsernameClaim = DefaultUsernameClaim
	}

	provider, err := oidc.NewProvider(ctx, conf.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("creating oidc provider for validator '%s': %w", name, err)
	}

	return newOIDC(name, conf.UsernameClaim, provider.Verifier(&oidc.Config{
		ClientID: conf.ClientID,
	})), nil
}

func newOIDC(name, usernameClaim string, verifier *oidc.IDTokenVerifier) *OIDC {
	return &OIDC{
		name:          name,
		usernameClaim: usernameClaim,
		verifier:      verifier,
	}
}

func NewOIDCFromConfig(ctx context.Context, cfg config.ComponentConfig) (*OIDC, error) {
	var conf OIDCConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	return NewOIDC(ctx, cfg.Name, conf)
}

func (o *OIDC) Name() string {
	return o.name
}

func (o *OIDC) Validate(ctx context.Context, credential string) (core.Identity, error) {
	logger := log.Ctx(ctx)

	idToken, err := o.verifier.Verify(ctx, credential)
	if err != nil {
		logger.Warn().Err(err).Str("validator", o.name).Msg("oidc verification failed")
		return core.Identity{}, core.ValidationFailed(http.StatusUnauthorized, "token verification failed")
	}

	var claims map[string]any
	if err := idToken.Claims(&claims); err != nil {
		return core.Identity{}, core.TransportFailed(fmt.Errorf("extracting oidc claims: %w", err))
	}

	username, ok := claims[o.usernameClaim].(string)
	if !ok || username == "" {
		logger.Warn().Str("claim", o.usernameClaim).Str("validator", o.name).Msg("oidc token has no username")
		return core.Identity{}, core.ValidationFailed(http.StatusUnauthorized,
			fmt.Sprintf("token has no '%s' claim", o.usernameClaim))
	}
	return core.Identity{Username: username}, nil
}
