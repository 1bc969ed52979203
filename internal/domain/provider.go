package domain

import "context"

// ComputeProvider is the provider-agnostic compute surface used by the CLI.
//
// Operations that map to an asynchronous or fire-and-forget API call return
// a bool: true when the provider acknowledged the request with the expected
// status. A false result is not an error; error is reserved for failures to
// reach the provider or to authenticate.
type ComputeProvider interface {
	// GetDisplayName returns the human-readable provider name.
	GetDisplayName() string

	ListNodes(ctx context.Context) ([]Node, error)
	ListSizes(ctx context.Context) ([]Size, error)
	ListImages(ctx context.Context) ([]Image, error)
	ListLocations() []Location

	CreateNode(ctx context.Context, opts CreateNodeOpts) (*Node, error)
	DestroyNode(ctx context.Context, node *Node) (bool, error)
	Reboot(ctx context.Context, node *Node, kind RebootType) (bool, error)
	Resize(ctx context.Context, node *Node, sizeID string) (bool, error)
	ConfirmResize(ctx context.Context, node *Node) (bool, error)
	RevertResize(ctx context.Context, node *Node) (bool, error)
	Rebuild(ctx context.Context, nodeID, imageID string) (bool, error)

	// SetPassword changes the root password and, on success, stores the
	// new value in node.Extra.Password.
	SetPassword(ctx context.Context, node *Node, password string) (bool, error)
	SetName(ctx context.Context, node *Node, name string) (bool, error)

	// NodeDetails fetches a single node. found is false when the node does
	// not exist; that case is not an error.
	NodeDetails(ctx context.Context, id string) (node *Node, found bool, err error)
	ListIPAddresses(ctx context.Context, nodeID string) (*IPAddressSet, error)
	SaveImage(ctx context.Context, node *Node, name string) (*Image, error)
	Limits(ctx context.Context) (*Limits, error)

	ListIPGroups(ctx context.Context, details bool) ([]SharedIPGroup, error)
	CreateIPGroup(ctx context.Context, name, nodeID string) (*SharedIPGroup, error)
	DeleteIPGroup(ctx context.Context, groupID string) (bool, error)
	ShareIP(ctx context.Context, groupID, nodeID, ip string, configure bool) (bool, error)
	UnshareIP(ctx context.Context, nodeID, ip string) (bool, error)
}
