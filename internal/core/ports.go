package core

import "context"

// CredentialValidator verifies a caller's credential with the identity provider.
// Implementations: whoami (REST), OIDC, static.
type CredentialValidator interface {
	// Name returns the identifier of this validator (as used in config).
	Name() string

	// Validate checks the credential and returns the identity it belongs to.
	// It fails with KindValidation or KindTransport.
	Validate(ctx context.Context, credential string) (Identity, error)
}

// Directory is a keyed store mapping a group to its member records.
// It is read-only from the pipeline's point of view.
type Directory interface {
	// Members returns a snapshot of the entry for the group.
	// A missing entry yields an empty snapshot, not an error.
	Members(ctx context.Context, group string) ([]Member, error)

	Close() error
}

// DirectoryWriter is implemented by directories that can be administered.
type DirectoryWriter interface {
	Directory

	Add(ctx context.Context, group, username string) (Member, error)
	Remove(ctx context.Context, group, username string) (int, error)
}

// SigningAuthority mints signed, time-bounded tokens.
// It owns the signing key and the expiry.
type SigningAuthority interface {
	// Name returns the identifier of this signer (as used in config).
	Name() string

	// Mint signs a token asserting subject, with claims embedded if non-empty.
	Mint(ctx context.Context, subject string, claims map[string]bool) (SignedToken, error)
}

// RoleResolver enriches an identity with its role membership for a group.
type RoleResolver interface {
	// Resolve never fails on its own; directory failures surface as KindDependency.
	Resolve(ctx context.Context, identity Identity, group string) (EnrichedIdentity, error)
}

// TokenIssuer produces the signed token for an enriched identity.
type TokenIssuer interface {
	// Issue fails with KindDependency if the signing authority fails.
	Issue(ctx context.Context, enriched EnrichedIdentity) (IssuedToken, error)
}
