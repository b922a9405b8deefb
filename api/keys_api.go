package api

import (
	"context"

	"github.com/jrsteele09/go-auth-client/token/keys"
)

// GetKeys fetches the provider's public signing keys from the key
// discovery endpoint. Unauthenticated.
func (c *Client) GetKeys(ctx context.Context) (*keys.KeySet, error) {
	var set keys.KeySet
	if err := c.get(ctx, "/.well-known/jwks.json", &set); err != nil {
		return nil, err
	}
	return &set, nil
}
