package validators

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const StaticType = "static"

var _ core.CredentialValidator = (*Static)(nil)

// Static accepts a fixed set of credentials. It is meant for local development.
type Static struct {
	name   string
	tokens map[string]string // credential -> username
}

type StaticConfig struct {
	Tokens map[string]string `mapstructure:"tokens"`
}

func NewStatic(name string, tokens map[string]string) *Static {
	if tokens == nil {
		// no tokens always fails validation
		tokens = map[string]string{}
	}
	return &Static{
		name:   name,
		tokens: tokens,
	}
}

func NewStaticFromConfig(cfg config.ComponentConfig) (*Static, error) {
	var conf StaticConfig
	if err := cfg.Decode(&conf); err != nil {
		return nil, err
	}
	for token, username := range conf.Tokens {
		if username == "" {
			return nil, fmt.Errorf("static validator '%s': empty username for token '%s'", cfg.Name, mask(token))
		}
	}
	return NewStatic(cfg.Name, conf.Tokens), nil
}

func (s *Static) Name() string {
	return s.name
}

func (s *Static) Validate(ctx context.Context, credential string) (core.Identity, error) {
	username, ok := s.tokens[credential]
	if !ok {
		log.Ctx(ctx).Warn().Str("validator", s.name).Msg("unknown static credential")
		return core.Identity{}, core.ValidationFailed(http.StatusUnauthorized, "invalid token")
	}
	return core.Identity{Username: username}, nil
}

// mask hides all but the first characters of a secret.
func mask(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:4] + "****"
}
