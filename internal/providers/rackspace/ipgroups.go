package rackspace

import (
	"context"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

// ListIPGroups lists shared IP groups. Member servers are only included
// when details is true.
func (p *Provider) ListIPGroups(ctx context.Context, details bool) ([]domain.SharedIPGroup, error) {
	action := "/shared_ip_groups"
	if details {
		action += "/detail"
	}
	root, _, err := p.conn.fetch(ctx, http.MethodGet, action, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared IP groups: %w", err)
	}
	return p.mapper.ToSharedIPGroups(root), nil
}

// CreateIPGroup creates a shared IP group, optionally seeded with one
// server.
func (p *Provider) CreateIPGroup(ctx context.Context, name, nodeID string) (*domain.SharedIPGroup, error) {
	body := p.request("sharedIpGroup").SetAttr("name", name)
	if nodeID != "" {
		body.SubElement("server").SetAttr("id", nodeID)
	}

	root, _, err := p.conn.fetch(ctx, http.MethodPost, "/shared_ip_groups", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create shared IP group: %w", err)
	}
	group := p.mapper.ToSharedIPGroup(root)
	return &group, nil
}

func (p *Provider) DeleteIPGroup(ctx context.Context, groupID string) (bool, error) {
	return p.conn.expect(ctx, http.MethodDelete, "/shared_ip_groups/"+groupID, nil, http.StatusNoContent)
}

// ShareIP shares a public address of a group with a server. When configure
// is true the provider also configures the address on the server, which
// reboots it.
func (p *Provider) ShareIP(ctx context.Context, groupID, nodeID, ip string, configure bool) (bool, error) {
	body := p.request("shareIp").
		SetAttr("sharedIpGroupId", groupID).
		SetAttr("configureServer", configure)
	return p.conn.expect(ctx, http.MethodPut, publicIPAction(nodeID, ip), body, http.StatusAccepted)
}

func (p *Provider) UnshareIP(ctx context.Context, nodeID, ip string) (bool, error) {
	return p.conn.expect(ctx, http.MethodDelete, publicIPAction(nodeID, ip), nil, http.StatusAccepted)
}

func publicIPAction(nodeID, ip string) string {
	return "/servers/" + nodeID + "/ips/public/" + ip
}
