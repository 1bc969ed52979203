package rackspace

import (
	"testing"

	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/pricing"
	"nathanbeddoewebdev/rscloud/internal/wire"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func testMapper() Mapper {
	return Mapper{
		Namespace:        Namespace,
		Driver:           "rackspace",
		PricingNamespace: "rackspace",
		Prices:           pricing.Default(),
	}
}

func mustParse(t *testing.T, doc string) *wire.Element {
	t.Helper()
	el, err := wire.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return el
}

func TestToNode(t *testing.T) {
	root := mustParse(t, `<server xmlns="`+Namespace+`" id="72258" name="web-1"
		imageId="2" flavorId="1" hostId="9e107d9d372bb6826bd81d3542a419d6"
		status="ACTIVE" progress="100" adminPass="s3cret">
		<metadata><meta key="env">prod</meta><meta key="tier">1</meta></metadata>
		<addresses>
			<public><ip addr="67.23.10.132"/><ip addr="67.23.10.131"/></public>
			<private><ip addr="10.176.42.16"/></private>
		</addresses>
	</server>`)

	got := testMapper().ToNode(root, Endpoint{Host: "servers.api.rackspacecloud.com", Path: "/v1.0/123"})

	want := domain.Node{
		ID:         "72258",
		Name:       "web-1",
		State:      domain.NodeStateRunning,
		PublicIPs:  []string{"67.23.10.132", "67.23.10.131"},
		PrivateIPs: []string{"10.176.42.16"},
		Driver:     "rackspace",
		Extra: domain.NodeExtra{
			Password: "s3cret",
			HostID:   "9e107d9d372bb6826bd81d3542a419d6",
			ImageID:  "2",
			FlavorID: "1",
			URI:      "https://servers.api.rackspacecloud.com/v1.0/123/servers/72258",
			Metadata: map[string]string{"env": "prod", "tier": "1"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToNode mismatch (-want +got):\n%s", diff)
	}
}

func TestToNode_NoAddressesNoPassword(t *testing.T) {
	root := mustParse(t, `<server xmlns="`+Namespace+`" id="1" name="bare" status="BUILD"/>`)

	got := testMapper().ToNode(root, Endpoint{})

	if got.Extra.Password != "" {
		t.Errorf("expected no password, got %q", got.Extra.Password)
	}
	if len(got.PublicIPs) != 0 || len(got.PrivateIPs) != 0 {
		t.Errorf("expected empty address lists, got %v / %v", got.PublicIPs, got.PrivateIPs)
	}
	if got.State != domain.NodeStatePending {
		t.Errorf("State = %s, want PENDING", got.State)
	}
}

func TestToNode_IgnoresUnqualifiedElements(t *testing.T) {
	// Elements outside the API namespace are not matched.
	root := mustParse(t, `<server id="1"><addresses><public><ip addr="1.2.3.4"/></public></addresses></server>`)

	got := testMapper().ToNode(root, Endpoint{})
	if len(got.PublicIPs) != 0 {
		t.Errorf("expected no public IPs, got %v", got.PublicIPs)
	}
}

func TestToNodes(t *testing.T) {
	root := mustParse(t, `<servers xmlns="`+Namespace+`">
		<server id="1" name="a" status="ACTIVE"/>
		<server id="2" name="b" status="SUSPENDED"/>
	</servers>`)

	nodes := testMapper().ToNodes(root, Endpoint{Host: "h", Path: "/p"})
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[1].State != domain.NodeStateTerminated {
		t.Errorf("nodes[1].State = %s, want TERMINATED", nodes[1].State)
	}
	if nodes[0].Extra.URI != "https://h/p/servers/1" {
		t.Errorf("URI = %q", nodes[0].Extra.URI)
	}
}

func TestToSizes(t *testing.T) {
	root := mustParse(t, `<flavors xmlns="`+Namespace+`">
		<flavor id="1" name="256 server" ram="256" disk="10"/>
		<flavor id="99" name="huge" ram="65536" disk="2400"/>
	</flavors>`)

	got, err := testMapper().ToSizes(root)
	if err != nil {
		t.Fatalf("ToSizes: %v", err)
	}

	want := []domain.Size{
		{ID: "1", Name: "256 server", RAM: 256, Disk: 10, Price: decimal.RequireFromString("0.015"), Driver: "rackspace"},
		{ID: "99", Name: "huge", RAM: 65536, Disk: 2400, Price: decimal.Zero, Driver: "rackspace"},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("ToSizes mismatch (-want +got):\n%s", diff)
	}
	for _, s := range got {
		if s.Bandwidth != nil {
			t.Errorf("size %s: expected bandwidth to be unreported, got %d", s.ID, *s.Bandwidth)
		}
	}
}

func TestToSize_InvalidRAM(t *testing.T) {
	root := mustParse(t, `<flavor xmlns="`+Namespace+`" id="1" name="x" ram="lots" disk="10"/>`)
	if _, err := testMapper().ToSize(root); err == nil {
		t.Fatal("expected error for non-integer ram")
	}
}

func TestToSize_NoPricingLookup(t *testing.T) {
	m := testMapper()
	m.Prices = nil
	root := mustParse(t, `<flavor xmlns="`+Namespace+`" id="1" name="x" ram="256" disk="10"/>`)

	s, err := m.ToSize(root)
	if err != nil {
		t.Fatalf("ToSize: %v", err)
	}
	if !s.Price.IsZero() {
		t.Errorf("expected zero price, got %s", s.Price)
	}
}

func TestToImages_OnlyActive(t *testing.T) {
	root := mustParse(t, `<images xmlns="`+Namespace+`">
		<image id="1" name="Ubuntu" status="ACTIVE"/>
		<image id="2" name="snap" status="SAVING" serverId="12" progress="40"/>
		<image id="3" name="Debian" status="ACTIVE" updated="2010-10-10T12:00:00Z"/>
	</images>`)

	got := testMapper().ToImages(root)

	if len(got) != 2 {
		t.Fatalf("expected 2 images, got %d", len(got))
	}
	for _, img := range got {
		if img.Extra.Status != "ACTIVE" {
			t.Errorf("image %s has status %q", img.ID, img.Extra.Status)
		}
	}
	if got[1].Extra.Updated != "2010-10-10T12:00:00Z" {
		t.Errorf("Updated = %q", got[1].Extra.Updated)
	}
}

func TestToImages_StatusMatchIsExact(t *testing.T) {
	root := mustParse(t, `<images xmlns="`+Namespace+`">
		<image id="1" status="active"/>
		<image id="2"/>
	</images>`)

	if got := testMapper().ToImages(root); len(got) != 0 {
		t.Errorf("expected no images, got %v", got)
	}
}

func TestToImage_Unfiltered(t *testing.T) {
	root := mustParse(t, `<image xmlns="`+Namespace+`" id="7" name="backup" status="QUEUED" serverId="12" created="2011-01-01T00:00:00Z"/>`)

	got := testMapper().ToImage(root)
	want := domain.Image{
		ID:     "7",
		Name:   "backup",
		Driver: "rackspace",
		Extra:  domain.ImageExtra{Created: "2011-01-01T00:00:00Z", Status: "QUEUED", ServerID: "12"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToImage mismatch (-want +got):\n%s", diff)
	}
}

func TestToSharedIPGroups(t *testing.T) {
	root := mustParse(t, `<sharedIpGroups xmlns="`+Namespace+`">
		<sharedIpGroup id="1234" name="Shared IP Group 1">
			<servers><server id="422"/><server id="3445"/></servers>
		</sharedIpGroup>
		<sharedIpGroup id="5678" name="Shared IP Group 2"/>
	</sharedIpGroups>`)

	got := testMapper().ToSharedIPGroups(root)
	want := []domain.SharedIPGroup{
		{ID: "1234", Name: "Shared IP Group 1", Servers: []string{"422", "3445"}},
		{ID: "5678", Name: "Shared IP Group 2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToSharedIPGroups mismatch (-want +got):\n%s", diff)
	}
}

func TestToIPAddressSet(t *testing.T) {
	root := mustParse(t, `<addresses xmlns="`+Namespace+`">
		<public><ip addr="67.23.10.132"/><ip addr="67.23.10.131"/></public>
		<private><ip addr="10.176.42.16"/></private>
	</addresses>`)

	got := testMapper().ToIPAddressSet(root)
	want := domain.IPAddressSet{
		Public:  []string{"67.23.10.132", "67.23.10.131"},
		Private: []string{"10.176.42.16"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToIPAddressSet mismatch (-want +got):\n%s", diff)
	}
}

func TestToLimits(t *testing.T) {
	root := mustParse(t, `<limits xmlns="`+Namespace+`">
		<rate>
			<limit uri="*" regex=".*" verb="POST" value="10" remaining="2" unit="MINUTE" resetTime="1244425439"/>
			<limit uri="*changes-since*" regex="changes-since" verb="GET" value="3" remaining="3" unit="MINUTE"/>
		</rate>
		<absolute>
			<limit name="maxTotalRAMSize" value="51200"/>
			<limit name="maxIPGroups" value="25"/>
		</absolute>
	</limits>`)

	got := testMapper().ToLimits(root)
	want := domain.Limits{
		Rate: []map[string]string{
			{"uri": "*", "regex": ".*", "verb": "POST", "value": "10", "remaining": "2", "unit": "MINUTE", "resetTime": "1244425439"},
			{"uri": "*changes-since*", "regex": "changes-since", "verb": "GET", "value": "3", "remaining": "3", "unit": "MINUTE"},
		},
		Absolute: map[string]string{"maxTotalRAMSize": "51200", "maxIPGroups": "25"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToLimits mismatch (-want +got):\n%s", diff)
	}
}

func TestToLimits_AbsoluteLastWriterWins(t *testing.T) {
	root := mustParse(t, `<limits xmlns="`+Namespace+`"><absolute>
		<limit name="RAM" value="10"/>
		<limit name="RAM" value="20"/>
	</absolute></limits>`)

	got := testMapper().ToLimits(root)
	if diff := cmp.Diff(map[string]string{"RAM": "20"}, got.Absolute); diff != "" {
		t.Errorf("absolute mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	in := map[string]string{"env": "prod", "tier": "1"}

	server := wire.NewRequest(Namespace, "server").Append(wire.MetadataElement(in))
	data, err := wire.Encode(server)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	node := testMapper().ToNode(mustParse(t, string(data)), Endpoint{})
	if diff := cmp.Diff(in, node.Extra.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
}
