package domain

// Node represents a provisioned compute instance as seen by the caller.
type Node struct {
	// ID is the provider-assigned identifier. It never changes once created.
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	State      NodeState `json:"state"`
	PublicIPs  []string  `json:"public_ips"`
	PrivateIPs []string  `json:"private_ips"`
	Driver     string    `json:"driver"` // variant that produced this node
	Extra      NodeExtra `json:"extra"`
}

// NodeExtra holds the provider-specific attributes of a node.
type NodeExtra struct {
	// Password is the root password. The provider only returns it in the
	// create response; SetPassword updates it after a successful change.
	Password string            `json:"password,omitempty"`
	HostID   string            `json:"host_id,omitempty"`
	ImageID  string            `json:"image_id,omitempty"`
	FlavorID string            `json:"flavor_id,omitempty"`
	URI      string            `json:"uri,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IPAddressSet lists the public and private addresses of a single node.
type IPAddressSet struct {
	Public  []string `json:"public"`
	Private []string `json:"private"`
}

// RebootType selects how a node is restarted.
type RebootType string

const (
	RebootSoft RebootType = "SOFT"
	RebootHard RebootType = "HARD"
)
