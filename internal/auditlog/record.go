package auditlog

import (
	"context"
	"strings"
	"time"

	"nathanbeddoewebdev/rscloud/internal/logger"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AuditEntry represents a persisted audit event.
type AuditEntry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Command      string    `json:"command"`
	Args         string    `json:"args,omitempty"`
	Variant      string    `json:"variant,omitempty"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	ResourceName string    `json:"resource_name,omitempty"`
	Outcome      string    `json:"outcome"`
	Detail       string    `json:"detail,omitempty"`
	DurationMs   int64     `json:"duration_ms"`
}

// NewEntry builds an entry for a finished command. Args are sanitized and
// the metadata attached to ctx is copied in.
func NewEntry(ctx context.Context, command string, args []string, start time.Time, runErr error) *AuditEntry {
	meta := MetadataFromContext(ctx)
	entry := &AuditEntry{
		Timestamp:    start.UTC(),
		Command:      command,
		Args:         strings.Join(SanitizeArgs(args), " "),
		Variant:      meta.Variant,
		ResourceType: meta.ResourceType,
		ResourceID:   meta.ResourceID,
		ResourceName: meta.ResourceName,
		Outcome:      OutcomeSuccess,
		DurationMs:   time.Since(start).Milliseconds(),
	}
	if runErr != nil {
		entry.Outcome = OutcomeError
		entry.Detail = runErr.Error()
	}
	return entry
}

// Record saves entry to the default repository. Failures are logged at
// debug level and otherwise ignored.
func Record(ctx context.Context, entry *AuditEntry) {
	repo, err := Open()
	if err != nil {
		logger.Ctx(ctx).Debug().Err(err).Msg("audit log unavailable")
		return
	}
	defer repo.Close()

	if err := repo.Save(entry); err != nil {
		logger.Ctx(ctx).Debug().Err(err).Str("command", entry.Command).Msg("failed to record audit entry")
	}
}
