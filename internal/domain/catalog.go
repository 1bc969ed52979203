package domain

import "github.com/shopspring/decimal"

// Location represents a deployment location reported by a provider variant.
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`    // e.g. "Rackspace DFW1/ORD1"
	Country string `json:"country"` // e.g. "US"
	Driver  string `json:"driver"`
}

// Size describes a flavor: a resource tier from the provider catalog.
type Size struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RAM  int    `json:"ram"`  // in MB
	Disk int    `json:"disk"` // in GB

	// Bandwidth is nil when the provider does not report it, which is
	// always the case for the v1.0 API. It is never zero-filled.
	Bandwidth *int `json:"bandwidth"`

	// Price is the hourly price. Zero when the pricing table has no entry.
	Price  decimal.Decimal `json:"price"`
	Driver string          `json:"driver"`
}

// Image describes a bootable OS image or a server snapshot.
type Image struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Driver string     `json:"driver"`
	Extra  ImageExtra `json:"extra"`
}

// ImageExtra holds provider attributes of an image as reported on the wire.
type ImageExtra struct {
	Updated  string `json:"updated,omitempty"`
	Created  string `json:"created,omitempty"`
	Status   string `json:"status,omitempty"`
	ServerID string `json:"server_id,omitempty"` // set for snapshots
	Progress string `json:"progress,omitempty"`
}

// SharedIPGroup binds one floating IP across several nodes.
type SharedIPGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Servers holds member node IDs. Nil when the listing was fetched
	// without details.
	Servers []string `json:"servers"`
}

// Limits describes account rate and absolute limits.
type Limits struct {
	// Rate holds one flat attribute map per rate limit (verb, URI, regex,
	// value, remaining, unit, resetTime).
	Rate []map[string]string `json:"rate"`

	// Absolute maps limit names (e.g. "maxTotalRAMSize") to values.
	Absolute map[string]string `json:"absolute"`
}
