package auditlog

import "context"

// Metadata describes what a command acted on. Commands attach it to their
// context so the root command can store it with the audit entry.
type Metadata struct {
	Variant      string
	ResourceType string
	ResourceID   string
	ResourceName string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Empty fields keep the
// value already stored in ctx.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Variant:      pick(meta.Variant, existing.Variant),
		ResourceType: pick(meta.ResourceType, existing.ResourceType),
		ResourceID:   pick(meta.ResourceID, existing.ResourceID),
		ResourceName: pick(meta.ResourceName, existing.ResourceName),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
