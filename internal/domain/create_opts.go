package domain

// CreateNodeOpts holds the parameters for creating a new node.
type CreateNodeOpts struct {
	// Required
	Name    string
	ImageID string
	SizeID  string

	// Metadata is attached to the node as key/value pairs.
	Metadata map[string]string

	// Files maps absolute paths on the node to the content injected there
	// at build time.
	Files map[string][]byte

	// SharedIPGroupID places the node in an existing shared IP group.
	// It replaces the old group-name option, which was never honoured by
	// the API; pass the group ID here instead.
	SharedIPGroupID string
}
