package rackspace

import (
	"fmt"
	"strconv"

	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/pricing"
	"nathanbeddoewebdev/rscloud/internal/wire"
)

// Endpoint is the management host and path prefix a node was fetched from.
// It is used to build the node's canonical URI.
type Endpoint struct {
	Host string // e.g. "servers.api.rackspacecloud.com"
	Path string // e.g. "/v1.0/123456"
}

// Mapper converts decoded v1.0 payloads into domain entities. Its methods
// have no side effects.
type Mapper struct {
	Namespace        string
	Driver           string
	PricingNamespace string
	Prices           pricing.Lookup
}

func (m Mapper) path(p string) string {
	return wire.Qualify(m.Namespace, p)
}

func (m Mapper) findAll(el *wire.Element, p string) []*wire.Element {
	return el.FindAll(m.path(p))
}

// ToNodes maps every <server> child of a <servers> document.
func (m Mapper) ToNodes(root *wire.Element, ep Endpoint) []domain.Node {
	elements := m.findAll(root, "server")
	nodes := make([]domain.Node, 0, len(elements))
	for _, el := range elements {
		nodes = append(nodes, m.ToNode(el, ep))
	}
	return nodes
}

// ToNode maps a <server> element. The password is only ever taken from the
// adminPass attribute, which the API sends in the create response.
func (m Mapper) ToNode(el *wire.Element, ep Endpoint) domain.Node {
	id := el.AttrValue("id")
	return domain.Node{
		ID:         id,
		Name:       el.AttrValue("name"),
		State:      NormalizeState(el.AttrValue("status")),
		PublicIPs:  addrs(m.findAll(el, "addresses/public/ip")),
		PrivateIPs: addrs(m.findAll(el, "addresses/private/ip")),
		Driver:     m.Driver,
		Extra: domain.NodeExtra{
			Password: el.AttrValue("adminPass"),
			HostID:   el.AttrValue("hostId"),
			ImageID:  el.AttrValue("imageId"),
			FlavorID: el.AttrValue("flavorId"),
			URI:      fmt.Sprintf("https://%s%s/servers/%s", ep.Host, ep.Path, id),
			Metadata: metadata(m.findAll(el, "metadata/meta")),
		},
	}
}

// ToSizes maps every <flavor> child of a <flavors> document.
func (m Mapper) ToSizes(root *wire.Element) ([]domain.Size, error) {
	elements := m.findAll(root, "flavor")
	sizes := make([]domain.Size, 0, len(elements))
	for _, el := range elements {
		s, err := m.ToSize(el)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return sizes, nil
}

// ToSize maps a <flavor> element. The API does not report bandwidth, so
// Bandwidth is always nil.
func (m Mapper) ToSize(el *wire.Element) (domain.Size, error) {
	id := el.AttrValue("id")

	ram, err := strconv.Atoi(el.AttrValue("ram"))
	if err != nil {
		return domain.Size{}, fmt.Errorf("flavor %q: invalid ram: %w", id, err)
	}
	disk, err := strconv.Atoi(el.AttrValue("disk"))
	if err != nil {
		return domain.Size{}, fmt.Errorf("flavor %q: invalid disk: %w", id, err)
	}

	s := domain.Size{
		ID:     id,
		Name:   el.AttrValue("name"),
		RAM:    ram,
		Disk:   disk,
		Driver: m.Driver,
	}
	if m.Prices != nil {
		s.Price, _ = m.Prices.SizePrice(pricing.CategoryCompute, m.PricingNamespace, id)
	}
	return s, nil
}

// ToImages maps the <image> children of an <images> document, dropping
// every image whose status is not exactly ACTIVE.
func (m Mapper) ToImages(root *wire.Element) []domain.Image {
	elements := m.findAll(root, "image")
	images := make([]domain.Image, 0, len(elements))
	for _, el := range elements {
		if el.AttrValue("status") != "ACTIVE" {
			continue
		}
		images = append(images, m.ToImage(el))
	}
	return images
}

// ToImage maps a single <image> element regardless of its status.
func (m Mapper) ToImage(el *wire.Element) domain.Image {
	return domain.Image{
		ID:     el.AttrValue("id"),
		Name:   el.AttrValue("name"),
		Driver: m.Driver,
		Extra: domain.ImageExtra{
			Updated:  el.AttrValue("updated"),
			Created:  el.AttrValue("created"),
			Status:   el.AttrValue("status"),
			ServerID: el.AttrValue("serverId"),
			Progress: el.AttrValue("progress"),
		},
	}
}

func (m Mapper) ToSharedIPGroups(root *wire.Element) []domain.SharedIPGroup {
	elements := m.findAll(root, "sharedIpGroup")
	groups := make([]domain.SharedIPGroup, 0, len(elements))
	for _, el := range elements {
		groups = append(groups, m.ToSharedIPGroup(el))
	}
	return groups
}

// ToSharedIPGroup maps a <sharedIpGroup> element. Servers stays nil when
// the element has no <servers> child, as in non-detailed listings.
func (m Mapper) ToSharedIPGroup(el *wire.Element) domain.SharedIPGroup {
	g := domain.SharedIPGroup{
		ID:   el.AttrValue("id"),
		Name: el.AttrValue("name"),
	}
	if servers := m.findAll(el, "servers"); len(servers) > 0 {
		g.Servers = []string{}
		for _, s := range m.findAll(servers[0], "server") {
			g.Servers = append(g.Servers, s.AttrValue("id"))
		}
	}
	return g
}

// ToIPAddressSet maps an <addresses> element.
func (m Mapper) ToIPAddressSet(el *wire.Element) domain.IPAddressSet {
	return domain.IPAddressSet{
		Public:  addrs(m.findAll(el, "public/ip")),
		Private: addrs(m.findAll(el, "private/ip")),
	}
}

// ToLimits maps a <limits> document. Rate limits keep all their
// attributes; absolute limits are merged by name, later entries winning.
func (m Mapper) ToLimits(root *wire.Element) domain.Limits {
	limits := domain.Limits{
		Rate:     []map[string]string{},
		Absolute: map[string]string{},
	}
	for _, el := range m.findAll(root, "rate/limit") {
		limits.Rate = append(limits.Rate, el.Items())
	}
	for _, el := range m.findAll(root, "absolute/limit") {
		limits.Absolute[el.AttrValue("name")] = el.AttrValue("value")
	}
	return limits
}

func addrs(ips []*wire.Element) []string {
	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		out = append(out, ip.AttrValue("addr"))
	}
	return out
}

func metadata(metas []*wire.Element) map[string]string {
	out := make(map[string]string, len(metas))
	for _, meta := range metas {
		out[meta.AttrValue("key")] = meta.Text
	}
	return out
}
