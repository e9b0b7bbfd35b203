package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jdscolam/mndp-firebase-auth/internal/api"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

type ListAuditsOpts struct {
	// Limit of returned entries, the server default applies if zero.
	Limit uint

	CorrelationID string
	Username      string
	Fingerprint   string
}

// ListAudits retrieves the latest audit entries matching opts, oldest first.
// It requires an admin token, see WithAdminToken.
func (c *Client) ListAudits(ctx context.Context, opts ListAuditsOpts) ([]core.AuditEntry, string, error) {
	query := url.Values{}
	if opts.Limit > 0 {
		query.Set(api.LimitParam, strconv.FormatUint(uint64(opts.Limit), 10))
	}
	if opts.CorrelationID != "" {
		query.Set(api.CorrelationIDParam, opts.CorrelationID)
	}
	if opts.Username != "" {
		query.Set(api.UsernameParam, opts.Username)
	}
	if opts.Fingerprint != "" {
		query.Set(api.FingerprintParam, opts.Fingerprint)
	}
	header := http.Header{}
	if c.adminToken != "" {
		header.Set("Authorization", "Bearer "+c.adminToken)
	}

	var resp []core.AuditEntry
	correlationID, err := c.get(ctx, c.url(api.ListAuditsRoute, query), header, &resp)
	return resp, correlationID, err
}
