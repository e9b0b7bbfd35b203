package signers

import (
	"fmt"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// Build creates the signing authority described by cfg.
func Build(cfg config.ComponentConfig) (core.SigningAuthority, error) {
	switch cfg.Type {
	case ServiceAccountType:
		s, err := NewServiceAccountFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building service_account signer %q: %w", cfg.Name, err)
		}
		return s, nil
	case HMACType:
		s, err := NewHMACFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building hmac signer %q: %w", cfg.Name, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown signer type %q for signer %q", cfg.Type, cfg.Name)
	}
}
