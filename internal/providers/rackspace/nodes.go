package rackspace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/wire"
)

// ListNodes retrieves all servers with their details.
func (p *Provider) ListNodes(ctx context.Context) ([]domain.Node, error) {
	root, ep, err := p.conn.fetch(ctx, http.MethodGet, "/servers/detail", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return p.mapper.ToNodes(root, ep), nil
}

// CreateNode provisions a server. The returned node carries the generated
// root password, which the API only reveals here.
func (p *Provider) CreateNode(ctx context.Context, opts domain.CreateNodeOpts) (*domain.Node, error) {
	if opts.Name == "" || opts.ImageID == "" || opts.SizeID == "" {
		return nil, errors.New("name, image and size are required")
	}

	server := p.request("server").
		SetAttr("name", opts.Name).
		SetAttr("imageId", opts.ImageID).
		SetAttr("flavorId", opts.SizeID)
	if opts.SharedIPGroupID != "" {
		server.SetAttr("sharedIpGroupId", opts.SharedIPGroupID)
	}
	server.Append(
		wire.MetadataElement(opts.Metadata),
		wire.PersonalityElement(opts.Files),
	)

	root, ep, err := p.conn.fetch(ctx, http.MethodPost, "/servers", server)
	if err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}
	node := p.mapper.ToNode(root, ep)
	return &node, nil
}

// NodeDetails fetches a single server. A 404 yields found == false and no
// error.
func (p *Provider) NodeDetails(ctx context.Context, id string) (*domain.Node, bool, error) {
	action := "/servers/" + id
	resp, err := p.conn.request(ctx, http.MethodGet, action, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get node %s: %w", id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if !resp.success() {
		return nil, false, fmt.Errorf("failed to get node %s: %w", id, providerError(resp))
	}

	root, err := p.conn.decode(resp)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get node %s: %w", id, err)
	}
	node := p.mapper.ToNode(root, resp.endpoint)
	return &node, true, nil
}

// DestroyNode deletes a server. The API answers 202 and removes it
// asynchronously.
func (p *Provider) DestroyNode(ctx context.Context, node *domain.Node) (bool, error) {
	return p.conn.expect(ctx, http.MethodDelete, "/servers/"+node.ID, nil, http.StatusAccepted)
}

// Reboot restarts a server. An empty kind means a hard reboot.
func (p *Provider) Reboot(ctx context.Context, node *domain.Node, kind domain.RebootType) (bool, error) {
	if kind == "" {
		kind = domain.RebootHard
	}
	if kind != domain.RebootSoft && kind != domain.RebootHard {
		return false, fmt.Errorf("invalid reboot type %q", kind)
	}
	body := p.request("reboot").SetAttr("type", kind)
	return p.action(ctx, node.ID, body, http.StatusAccepted)
}

// Resize moves a server to another flavor. The resize must then be
// confirmed or reverted.
func (p *Provider) Resize(ctx context.Context, node *domain.Node, sizeID string) (bool, error) {
	body := p.request("resize").SetAttr("flavorId", sizeID)
	return p.action(ctx, node.ID, body, http.StatusAccepted)
}

// ConfirmResize accepts a pending resize. Unconfirmed resizes are
// confirmed by the provider after 24 hours.
func (p *Provider) ConfirmResize(ctx context.Context, node *domain.Node) (bool, error) {
	return p.action(ctx, node.ID, p.request("confirmResize"), http.StatusNoContent)
}

// RevertResize returns a server to its flavor before a pending resize.
func (p *Provider) RevertResize(ctx context.Context, node *domain.Node) (bool, error) {
	return p.action(ctx, node.ID, p.request("revertResize"), http.StatusNoContent)
}

// Rebuild reinstalls a server from an image, keeping its id and addresses.
func (p *Provider) Rebuild(ctx context.Context, nodeID, imageID string) (bool, error) {
	body := p.request("rebuild").SetAttr("imageId", imageID)
	return p.action(ctx, nodeID, body, http.StatusAccepted)
}

// SetPassword changes the root password. The server reboots to apply it.
func (p *Provider) SetPassword(ctx context.Context, node *domain.Node, password string) (bool, error) {
	return p.modify(ctx, node, nil, &password)
}

// SetName renames a server.
func (p *Provider) SetName(ctx context.Context, node *domain.Node, name string) (bool, error) {
	return p.modify(ctx, node, &name, nil)
}

// modify updates name and/or password with one PUT. The name falls back to
// the node's current name. Only the password is written back to node, and
// only when the API answers 204.
func (p *Provider) modify(ctx context.Context, node *domain.Node, name, password *string) (bool, error) {
	if name == nil && password == nil {
		return false, errors.New("a name or password is required")
	}

	newName := node.Name
	if name != nil && *name != "" {
		newName = *name
	}
	body := p.request("server").SetAttr("name", newName)
	if password != nil {
		body.SetAttr("adminPass", *password)
	}

	ok, err := p.conn.expect(ctx, http.MethodPut, "/servers/"+node.ID, body, http.StatusNoContent)
	if err != nil {
		return false, err
	}
	if ok && password != nil {
		node.Extra.Password = *password
	}
	return ok, nil
}

// ListIPAddresses returns the public and private addresses of a server.
func (p *Provider) ListIPAddresses(ctx context.Context, nodeID string) (*domain.IPAddressSet, error) {
	root, _, err := p.conn.fetch(ctx, http.MethodGet, "/servers/"+nodeID+"/ips", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses of node %s: %w", nodeID, err)
	}
	ips := p.mapper.ToIPAddressSet(root)
	return &ips, nil
}

func (p *Provider) action(ctx context.Context, nodeID string, body *wire.Element, want int) (bool, error) {
	return p.conn.expect(ctx, http.MethodPost, "/servers/"+nodeID+"/action", body, want)
}
