package client

import (
	"context"

	"github.com/jdscolam/mndp-firebase-auth/internal/api"
	"github.com/jdscolam/mndp-firebase-auth/internal/buildinfo"
)

// Info returns the build information of the server.
func (c *Client) Info(ctx context.Context) (*buildinfo.Info, string, error) {
	var info buildinfo.Info
	correlationID, err := c.get(ctx, c.url(api.AboutRoute, nil), nil, &info)
	if err != nil {
		return nil, correlationID, err
	}
	return &info, correlationID, nil
}
