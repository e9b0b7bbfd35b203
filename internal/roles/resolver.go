// Package roles resolves role membership of an identity against the group directory.
package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var _ core.RoleResolver = (*Resolver)(nil)

// AnyMember reports whether any record of the snapshot satisfies pred.
func AnyMember(snapshot []core.Member, pred func(core.Member) bool) bool {
	for _, m := range snapshot {
		if pred(m) {
			return true
		}
	}
	return false
}

// IsUser matches records whose value is exactly username.
func IsUser(username string) func(core.Member) bool {
	return func(m core.Member) bool {
		return m.Value == username
	}
}

type Resolver struct {
	directory core.Directory
}

func NewResolver(directory core.Directory) *Resolver {
	return &Resolver{directory: directory}
}

// Resolve checks whether identity holds the role of group.
// An empty group skips the directory entirely.
func (r *Resolver) Resolve(ctx context.Context, identity core.Identity, group string) (core.EnrichedIdentity, error) {
	logger := log.Ctx(ctx)

	group = strings.TrimSpace(group)
	if group == "" {
		logger.Debug().Msg("no group requested, skipping role resolution")
		return core.EnrichedIdentity{Identity: identity}, nil
	}

	snapshot, err := r.directory.Members(ctx, group)
	if err != nil {
		logger.Error().Err(err).Str("group", group).Msg("directory lookup failed")
		return core.EnrichedIdentity{}, core.DependencyFailed(fmt.Errorf("looking up group '%s': %w", group, err))
	}

	hasRole := AnyMember(snapshot, IsUser(identity.Username))
	logger.Debug().
		Str("group", group).
		Int("members", len(snapshot)).
		Bool("has_role", hasRole).
		Msg("role resolved")

	return core.EnrichedIdentity{
		Identity: identity,
		HasRole:  hasRole,
		Group:    group,
	}, nil
}
