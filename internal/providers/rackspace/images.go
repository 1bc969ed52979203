package rackspace

import (
	"context"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

// ListImages returns the images that are ready to boot from. Images that
// are still saving or have failed are left out.
func (p *Provider) ListImages(ctx context.Context) ([]domain.Image, error) {
	root, _, err := p.conn.fetch(ctx, http.MethodGet, "/images/detail", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return p.mapper.ToImages(root), nil
}

// ListSizes returns the flavor catalog with prices from the pricing table.
func (p *Provider) ListSizes(ctx context.Context) ([]domain.Size, error) {
	root, _, err := p.conn.fetch(ctx, http.MethodGet, "/flavors/detail", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	sizes, err := p.mapper.ToSizes(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	return sizes, nil
}

// SaveImage snapshots a server. The returned image is usually still
// queued or saving.
func (p *Provider) SaveImage(ctx context.Context, node *domain.Node, name string) (*domain.Image, error) {
	body := p.request("image").
		SetAttr("name", name).
		SetAttr("serverId", node.ID)

	root, _, err := p.conn.fetch(ctx, http.MethodPost, "/images", body)
	if err != nil {
		return nil, fmt.Errorf("failed to save image of node %s: %w", node.ID, err)
	}
	img := p.mapper.ToImage(root)
	return &img, nil
}
