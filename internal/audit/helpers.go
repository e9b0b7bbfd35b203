package audit

import (
	"fmt"

	"github.com/jdscolam/mndp-firebase-auth/internal/buildinfo"
)

func CreateUserAgent(correlationID, component string) string {
	return fmt.Sprintf("mndpauth/%s (correlation_id=%s; component=%s)",
		buildinfo.Version, correlationID, component)
}
