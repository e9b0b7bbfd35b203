package validators

import (
	"context"
	"fmt"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// Build creates the credential validator described by cfg.
func Build(ctx context.Context, cfg config.ComponentConfig) (core.CredentialValidator, error) {
	switch cfg.Type {
	case WhoamiType:
		v, err := NewWhoamiFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building whoami validator %q: %w", cfg.Name, err)
		}
		return v, nil
	case OIDCType:
		v, err := NewOIDCFromConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("building oidc validator %q: %w", cfg.Name, err)
		}
		return v, nil
	case StaticType:
		v, err := NewStaticFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building static validator %q: %w", cfg.Name, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown validator type %q for validator %q", cfg.Type, cfg.Name)
	}
}
