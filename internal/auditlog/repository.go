package auditlog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"nathanbeddoewebdev/rscloud/internal/database"
)

// Repository defines the persistence interface for audit entries.
type Repository interface {
	Save(entry *AuditEntry) error
	List(limit int) ([]AuditEntry, error)
	ListByCommand(command string, limit int) ([]AuditEntry, error)
	ListByVariant(variant string, limit int) ([]AuditEntry, error)
	Prune(filter PruneFilter) (int64, error)
	CountPrunable(filter PruneFilter) (int64, error)
	Close() error
}

// PruneFilter selects entries to prune. Zero fields do not filter; an
// all-zero filter matches every entry.
type PruneFilter struct {
	OlderThan time.Duration
	Variant   string
	Outcome   string
}

func (f PruneFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.OlderThan > 0 {
		conds = append(conds, "timestamp < ?")
		args = append(args, time.Now().UTC().Add(-f.OlderThan).Format(time.RFC3339Nano))
	}
	if f.Variant != "" {
		conds = append(conds, "variant = ?")
		args = append(args, f.Variant)
	}
	if f.Outcome != "" {
		conds = append(conds, "outcome = ?")
		args = append(args, f.Outcome)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

const selectColumns = `
        SELECT id, timestamp, command, args, variant, resource_type, resource_id, resource_name,
               outcome, detail, duration_ms
        FROM audit_log`

// Open creates or opens the audit repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS audit_log (
            id            INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp     TEXT    NOT NULL,
            command       TEXT    NOT NULL,
            args          TEXT    NOT NULL DEFAULT '',
            variant       TEXT    NOT NULL DEFAULT '',
            resource_type TEXT    NOT NULL DEFAULT '',
            resource_id   TEXT    NOT NULL DEFAULT '',
            resource_name TEXT    NOT NULL DEFAULT '',
            outcome       TEXT    NOT NULL DEFAULT '',
            detail        TEXT    NOT NULL DEFAULT '',
            duration_ms   INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_audit_log_timestamp ON audit_log(timestamp);
        CREATE INDEX IF NOT EXISTS idx_audit_log_command ON audit_log(command);
        CREATE INDEX IF NOT EXISTS idx_audit_log_variant ON audit_log(variant);
        CREATE INDEX IF NOT EXISTS idx_audit_log_resource ON audit_log(resource_type, resource_id);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("auditlog: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new audit entry.
func (r *SQLiteRepository) Save(entry *AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO audit_log (timestamp, command, args, variant, resource_type, resource_id, resource_name, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(time.RFC3339Nano), entry.Command, entry.Args, entry.Variant,
		entry.ResourceType, entry.ResourceID, entry.ResourceName, entry.Outcome, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("auditlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("auditlog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent n audit entries.
func (r *SQLiteRepository) List(limit int) ([]AuditEntry, error) {
	return r.query(selectColumns+` ORDER BY timestamp DESC LIMIT ?`, limit)
}

// ListByCommand returns the most recent n audit entries for a command path.
func (r *SQLiteRepository) ListByCommand(command string, limit int) ([]AuditEntry, error) {
	return r.query(selectColumns+` WHERE command = ? ORDER BY timestamp DESC LIMIT ?`, command, limit)
}

// ListByVariant returns the most recent n audit entries run against a
// provider variant.
func (r *SQLiteRepository) ListByVariant(variant string, limit int) ([]AuditEntry, error) {
	return r.query(selectColumns+` WHERE variant = ? ORDER BY timestamp DESC LIMIT ?`, variant, limit)
}

// Prune deletes the entries matched by filter.
func (r *SQLiteRepository) Prune(filter PruneFilter) (int64, error) {
	where, args := filter.where()
	result, err := r.db.Exec(`DELETE FROM audit_log`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("auditlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// CountPrunable reports how many entries Prune would delete.
func (r *SQLiteRepository) CountPrunable(filter PruneFilter) (int64, error) {
	where, args := filter.where()
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM audit_log`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("auditlog: count failed: %w", err)
	}
	return n, nil
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) query(q string, args ...any) ([]AuditEntry, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("auditlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]AuditEntry, error) {
	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Command, &entry.Args, &entry.Variant,
			&entry.ResourceType, &entry.ResourceID, &entry.ResourceName,
			&entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("auditlog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
