package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/audit"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/signers"
)

var _ core.TokenIssuer = (*Issuer)(nil)

// Issuer turns an enriched identity into a signed token.
// Expiry and signing key are left to the signing authority.
type Issuer struct {
	signer    core.SigningAuthority
	roleClaim string
}

func NewIssuer(signer core.SigningAuthority, roleClaim string) (*Issuer, error) {
	if err := signers.ValidateClaimName(roleClaim); err != nil {
		return nil, fmt.Errorf("invalid role claim: %w", err)
	}
	return &Issuer{
		signer:    signer,
		roleClaim: roleClaim,
	}, nil
}

// RoleClaim returns the name of the claim added for role holders.
func (i *Issuer) RoleClaim() string {
	return i.roleClaim
}

func (i *Issuer) Issue(ctx context.Context, enriched core.EnrichedIdentity) (core.IssuedToken, error) {
	logger := log.Ctx(ctx)
	subject := enriched.Identity.Username

	var claims map[string]bool
	if enriched.HasRole {
		claims = map[string]bool{i.roleClaim: true}
	}

	signed, err := i.signer.Mint(ctx, subject, claims)
	if err != nil {
		logger.Error().Err(err).Str("signer", i.signer.Name()).Msg("minting failed")
		return core.IssuedToken{}, core.DependencyFailed(fmt.Errorf("minting token: %w", err))
	}

	return core.IssuedToken{
		Value:       signed.Value,
		Subject:     subject,
		Claims:      claims,
		ExpiresAt:   signed.ExpiresAt,
		Fingerprint: audit.Fingerprint(signed.Value),
	}, nil
}
