package audit

import (
	"fmt"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// New creates the auditor described by cfg. A disabled audit yields a NoopAuditor.
func New(cfg config.AuditConfig) (core.Auditor, error) {
	if !cfg.Enabled {
		return NewNoopAuditor(), nil
	}
	switch cfg.Type {
	case "file":
		return NewFileAuditor(cfg.Path)
	case "memory":
		return NewInMemoryAuditor(cfg.Capacity), nil
	default:
		return nil, fmt.Errorf("unknown audit type '%s'", cfg.Type)
	}
}
