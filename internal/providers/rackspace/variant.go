package rackspace

import (
	"sort"
	"strings"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

// Namespace is the XML namespace of the Cloud Servers v1.0 API.
const Namespace = "http://docs.rackspacecloud.com/servers/api/v1.0"

// Variant describes one deployment of the v1.0 API. Variants differ only
// in data; every variant is served by the same Provider.
type Variant struct {
	Name        string
	DisplayName string

	// AuthURL is the v1.0 auth endpoint. Empty means the URL must be
	// supplied by configuration.
	AuthURL   string
	Namespace string

	// Location is the single location the variant reports. The API has
	// no location discovery.
	Location domain.Location

	// RequireXMLContentType only parses bodies whose Content-Type says
	// application/xml.
	RequireXMLContentType bool

	// PricingNamespace keys size prices in the pricing table.
	PricingNamespace string
}

var usLocation = domain.Location{ID: "0", Name: "Rackspace DFW1/ORD1", Country: "US"}

var variants = map[string]Variant{
	"rackspace": {
		Name:             "rackspace",
		DisplayName:      "Rackspace",
		AuthURL:          "https://auth.api.rackspacecloud.com/v1.0",
		Namespace:        Namespace,
		Location:         usLocation,
		PricingNamespace: "rackspace",
	},
	"rackspace-uk": {
		Name:             "rackspace-uk",
		DisplayName:      "Rackspace (UK)",
		AuthURL:          "https://lon.auth.api.rackspacecloud.com/v1.0",
		Namespace:        Namespace,
		Location:         domain.Location{ID: "0", Name: "Rackspace UK London", Country: "UK"},
		PricingNamespace: "rackspace",
	},
	"openstack": {
		Name:                  "openstack",
		DisplayName:           "OpenStack",
		Namespace:             Namespace,
		Location:              usLocation,
		RequireXMLContentType: true,
		PricingNamespace:      "openstack",
	},
}

// LookupVariant returns the variant registered under name. Matching
// ignores case and surrounding whitespace.
func LookupVariant(name string) (Variant, bool) {
	v, ok := variants[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// Variants returns the names of all known variants, sorted.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithAuthURL returns a copy of v using url as its auth endpoint.
func (v Variant) WithAuthURL(url string) Variant {
	v.AuthURL = url
	return v
}

func (v Variant) location() domain.Location {
	loc := v.Location
	loc.Driver = v.Name
	return loc
}
