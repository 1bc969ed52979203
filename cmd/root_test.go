package cmd

import (
	"bytes"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/database"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/providers/providertest"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/spf13/cobra"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	dbPath := filepath.Join(dir, "rscloud.db")
	database.SetPath(dbPath)
	t.Cleanup(database.ResetPath)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	cmdutil.SetStore(auth.NewMockStore())
	t.Cleanup(cmdutil.ResetStore)
	providertest.Register(t, "mock", &providertest.Fake{})
	return dbPath
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	start := time.Now()
	executed, err := root.ExecuteC()
	recordAudit(executed, args, start, err)
	return err
}

func listAudit(t *testing.T, dbPath string) []auditlog.AuditEntry {
	t.Helper()
	repo, err := auditlog.OpenAt(dbPath)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("list audit log: %v", err)
	}
	return entries
}

func TestRootCmd_RegistersGroups(t *testing.T) {
	root := rootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"auth", "config", "node", "catalog", "ipgroup", "audit"} {
		if !slices.Contains(names, want) {
			t.Errorf("expected %q subcommand, got %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("expected persistent --verbose flag")
	}
}

func TestRecordAudit_AuditedCommand(t *testing.T) {
	dbPath := setup(t)

	if err := run(t, "ipgroup", "create", "web-vip", "--variant", "mock"); err != nil {
		t.Fatalf("create: %v", err)
	}

	entries := listAudit(t, dbPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Command != "rscloud ipgroup create" || got.Variant != "mock" || got.ResourceID != "77" || got.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestRecordAudit_RecordsFailures(t *testing.T) {
	dbPath := setup(t)
	providertest.Register(t, "mock", &providertest.Fake{Reject: true})

	if err := run(t, "ipgroup", "delete", "1234", "--variant", "mock"); err == nil {
		t.Fatal("expected error for rejected delete")
	}

	entries := listAudit(t, dbPath)
	if len(entries) != 1 || entries[0].Outcome != auditlog.OutcomeError || entries[0].Detail == "" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestRecordAudit_SkipsReadOnlyCommands(t *testing.T) {
	dbPath := setup(t)

	if err := run(t, "catalog", "sizes", "--variant", "mock"); err != nil {
		t.Fatalf("sizes: %v", err)
	}

	if entries := listAudit(t, dbPath); len(entries) != 0 {
		t.Errorf("expected no audit entries, got %+v", entries)
	}
}

func TestRecordAudit_NilCommand(t *testing.T) {
	setup(t)
	recordAudit((*cobra.Command)(nil), nil, time.Now(), nil)
}

func TestRootCmd_AttachesCommandLogger(t *testing.T) {
	setup(t)
	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"catalog", "locations", "--variant", "mock"})

	executed, err := root.ExecuteC()
	if err != nil {
		t.Fatalf("locations: %v", err)
	}
	if logger.Ctx(executed.Context()) == logger.Get() {
		t.Error("expected a command-scoped logger in the command context")
	}
	if got := auditlog.MetadataFromContext(executed.Context()).Variant; got != "mock" {
		t.Errorf("expected variant metadata to survive, got %q", got)
	}
}
