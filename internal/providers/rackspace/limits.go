package rackspace

import (
	"context"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

// Limits returns the account's rate and absolute limits.
func (p *Provider) Limits(ctx context.Context) (*domain.Limits, error) {
	root, _, err := p.conn.fetch(ctx, http.MethodGet, "/limits", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get limits: %w", err)
	}
	limits := p.mapper.ToLimits(root)
	return &limits, nil
}
