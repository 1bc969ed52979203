// Package providertest provides an in-memory domain.ComputeProvider for
// command tests.
package providertest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/services/auth"
)

// Fake serves canned entities and records every call. Boolean operations
// succeed unless Reject is set; every network call fails with Err when it
// is non-nil.
type Fake struct {
	DisplayName string
	Nodes       []domain.Node
	Sizes       []domain.Size
	Images      []domain.Image
	Locations   []domain.Location
	Groups      []domain.SharedIPGroup
	IPs         map[string]*domain.IPAddressSet
	Limit       *domain.Limits
	Err         error
	Reject      bool

	// Details, when set, replaces the lookup in Nodes for NodeDetails.
	// call counts NodeDetails invocations from 1.
	Details func(id string, call int) (*domain.Node, bool, error)

	mu           sync.Mutex
	calls        []string
	detailsCalls int
	created      []domain.CreateNodeOpts
}

var _ domain.ComputeProvider = (*Fake)(nil)

// Register makes f the provider for variant name for the rest of the test.
func Register(t *testing.T, name string, f *Fake) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register(name, func(auth.Store, *config.Config) (domain.ComputeProvider, error) {
		return f, nil
	})
}

// Calls returns the recorded calls, e.g. "Reboot 42 SOFT".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Created returns the options of every CreateNode call.
func (f *Fake) Created() []domain.CreateNodeOpts {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.CreateNodeOpts(nil), f.created...)
}

func (f *Fake) record(op string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := []string{op}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	f.calls = append(f.calls, strings.Join(parts, " "))
}

func (f *Fake) accepted(op string, args ...any) (bool, error) {
	f.record(op, args...)
	if f.Err != nil {
		return false, f.Err
	}
	return !f.Reject, nil
}

func (f *Fake) GetDisplayName() string { return f.DisplayName }

func (f *Fake) ListNodes(context.Context) ([]domain.Node, error) {
	f.record("ListNodes")
	return f.Nodes, f.Err
}

func (f *Fake) ListSizes(context.Context) ([]domain.Size, error) {
	f.record("ListSizes")
	return f.Sizes, f.Err
}

func (f *Fake) ListImages(context.Context) ([]domain.Image, error) {
	f.record("ListImages")
	return f.Images, f.Err
}

func (f *Fake) ListLocations() []domain.Location {
	f.record("ListLocations")
	return f.Locations
}

func (f *Fake) CreateNode(_ context.Context, opts domain.CreateNodeOpts) (*domain.Node, error) {
	f.record("CreateNode", opts.Name)
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	f.created = append(f.created, opts)
	f.mu.Unlock()
	return &domain.Node{
		ID:    "1000",
		Name:  opts.Name,
		State: domain.NodeStatePending,
		Extra: domain.NodeExtra{
			Password: "s3cr3t",
			ImageID:  opts.ImageID,
			FlavorID: opts.SizeID,
			Metadata: opts.Metadata,
		},
	}, nil
}

func (f *Fake) NodeDetails(_ context.Context, id string) (*domain.Node, bool, error) {
	f.record("NodeDetails", id)
	f.mu.Lock()
	f.detailsCalls++
	call := f.detailsCalls
	f.mu.Unlock()

	if f.Details != nil {
		return f.Details(id, call)
	}
	if f.Err != nil {
		return nil, false, f.Err
	}
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			node := f.Nodes[i]
			return &node, true, nil
		}
	}
	return nil, false, nil
}

func (f *Fake) DestroyNode(_ context.Context, node *domain.Node) (bool, error) {
	return f.accepted("DestroyNode", node.ID)
}

func (f *Fake) Reboot(_ context.Context, node *domain.Node, kind domain.RebootType) (bool, error) {
	return f.accepted("Reboot", node.ID, kind)
}

func (f *Fake) Resize(_ context.Context, node *domain.Node, sizeID string) (bool, error) {
	return f.accepted("Resize", node.ID, sizeID)
}

func (f *Fake) ConfirmResize(_ context.Context, node *domain.Node) (bool, error) {
	return f.accepted("ConfirmResize", node.ID)
}

func (f *Fake) RevertResize(_ context.Context, node *domain.Node) (bool, error) {
	return f.accepted("RevertResize", node.ID)
}

func (f *Fake) Rebuild(_ context.Context, nodeID, imageID string) (bool, error) {
	return f.accepted("Rebuild", nodeID, imageID)
}

func (f *Fake) SetPassword(_ context.Context, node *domain.Node, password string) (bool, error) {
	ok, err := f.accepted("SetPassword", node.ID, password)
	if ok {
		node.Extra.Password = password
	}
	return ok, err
}

func (f *Fake) SetName(_ context.Context, node *domain.Node, name string) (bool, error) {
	return f.accepted("SetName", node.ID, name)
}

func (f *Fake) ListIPAddresses(_ context.Context, nodeID string) (*domain.IPAddressSet, error) {
	f.record("ListIPAddresses", nodeID)
	if f.Err != nil {
		return nil, f.Err
	}
	if ips, ok := f.IPs[nodeID]; ok {
		return ips, nil
	}
	return &domain.IPAddressSet{Public: []string{}, Private: []string{}}, nil
}

func (f *Fake) SaveImage(_ context.Context, node *domain.Node, name string) (*domain.Image, error) {
	f.record("SaveImage", node.ID, name)
	if f.Err != nil {
		return nil, f.Err
	}
	return &domain.Image{
		ID:    "9000",
		Name:  name,
		Extra: domain.ImageExtra{Status: "SAVING", ServerID: node.ID},
	}, nil
}

func (f *Fake) Limits(context.Context) (*domain.Limits, error) {
	f.record("Limits")
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Limit == nil {
		return &domain.Limits{Rate: []map[string]string{}, Absolute: map[string]string{}}, nil
	}
	return f.Limit, nil
}

func (f *Fake) ListIPGroups(_ context.Context, details bool) ([]domain.SharedIPGroup, error) {
	f.record("ListIPGroups", details)
	if f.Err != nil || details {
		return f.Groups, f.Err
	}
	groups := make([]domain.SharedIPGroup, len(f.Groups))
	for i, g := range f.Groups {
		groups[i] = domain.SharedIPGroup{ID: g.ID, Name: g.Name}
	}
	return groups, nil
}

func (f *Fake) CreateIPGroup(_ context.Context, name, nodeID string) (*domain.SharedIPGroup, error) {
	f.record("CreateIPGroup", name, nodeID)
	if f.Err != nil {
		return nil, f.Err
	}
	group := &domain.SharedIPGroup{ID: "77", Name: name}
	if nodeID != "" {
		group.Servers = []string{nodeID}
	}
	return group, nil
}

func (f *Fake) DeleteIPGroup(_ context.Context, groupID string) (bool, error) {
	return f.accepted("DeleteIPGroup", groupID)
}

func (f *Fake) ShareIP(_ context.Context, groupID, nodeID, ip string, configure bool) (bool, error) {
	return f.accepted("ShareIP", groupID, nodeID, ip, configure)
}

func (f *Fake) UnshareIP(_ context.Context, nodeID, ip string) (bool, error) {
	return f.accepted("UnshareIP", nodeID, ip)
}
