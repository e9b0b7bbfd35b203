// Package directory implements the keyed group directory used for role lookups.
package directory

import (
	"context"
	"fmt"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// DefaultKeyPrefix is prepended to a group ID to form its directory key.
const DefaultKeyPrefix = "groups/roles/"

// Build creates the directory described by cfg.
// The returned directory is long-lived and must be closed at shutdown.
func Build(ctx context.Context, cfg config.ComponentConfig) (core.Directory, error) {
	switch cfg.Type {
	case RedisType:
		dir, err := NewRedisFromConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("building redis directory %q: %w", cfg.Name, err)
		}
		return dir, nil
	case StaticType:
		dir, err := NewStaticFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("building static directory %q: %w", cfg.Name, err)
		}
		return dir, nil
	default:
		return nil, fmt.Errorf("unknown directory type %q for directory %q", cfg.Type, cfg.Name)
	}
}
