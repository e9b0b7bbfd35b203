package core

import "time"

// Identity is the canonical user identity returned by a CredentialValidator.
// It is immutable once obtained.
type Identity struct {
	// Username is unique and assigned by the identity provider.
	Username string `json:"username"`
}

// Member is a single record of a directory entry.
type Member struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EnrichedIdentity is the identity after role resolution.
// It is created by the RoleResolver and only consumed by the TokenIssuer.
type EnrichedIdentity struct {
	Identity Identity

	// HasRole is true iff the identity holds the designated role for the requested group.
	HasRole bool

	// Group is the group that was checked, empty if no enrichment was requested.
	Group string
}

// SignedToken is what a SigningAuthority hands back after minting.
type SignedToken struct {
	// Value is the compact signed token string.
	Value string

	// ExpiresAt is chosen by the signing authority, never by the caller.
	ExpiresAt time.Time
}

// IssuedToken is the result of the issuance stage.
// It is produced once per exchange, returned to the caller and never stored.
type IssuedToken struct {
	// Value is the signed token string.
	Value string `json:"value"`

	// Subject is the username the token was signed for.
	Subject string `json:"subject"`

	// Claims holds the additional claims embedded in the token, nil if none.
	Claims map[string]bool `json:"claims,omitempty"`

	// ExpiresAt indicates when this token becomes invalid.
	ExpiresAt time.Time `json:"expires_at"`

	// Fingerprint identifies the token in logs and audit entries without revealing it.
	Fingerprint string `json:"fingerprint"`
}

// ExchangeResult is the outcome of a successful exchange.
type ExchangeResult struct {
	Identity Identity
	Token    IssuedToken
}
