package auditlog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"nathanbeddoewebdev/rscloud/internal/database"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "no sensitive flags",
			args: []string{"node", "list", "--variant", "openstack"},
			want: []string{"node", "list", "--variant", "openstack"},
		},
		{
			name: "separate value",
			args: []string{"auth", "login", "--key", "s3cret"},
			want: []string{"auth", "login", "--key", "<redacted>"},
		},
		{
			name: "inline value",
			args: []string{"node", "set-password", "42", "--password=hunter2"},
			want: []string{"node", "set-password", "42", "--password=<redacted>"},
		},
		{
			name: "file contents",
			args: []string{"node", "create", "--file", "/etc/motd=./motd", "--name", "web"},
			want: []string{"node", "create", "--file", "<redacted>", "--name", "web"},
		},
		{
			name: "trailing flag without value",
			args: []string{"auth", "login", "--key"},
			want: []string{"auth", "login", "--key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeArgs(tt.args)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SanitizeArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithMetadata_Merges(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{Variant: "rackspace", ResourceType: "node"})
	ctx = WithMetadata(ctx, Metadata{ResourceID: "42", ResourceName: "web-1"})

	want := Metadata{Variant: "rackspace", ResourceType: "node", ResourceID: "42", ResourceName: "web-1"}
	if diff := cmp.Diff(want, MetadataFromContext(ctx)); diff != "" {
		t.Errorf("MetadataFromContext mismatch (-want +got):\n%s", diff)
	}
}

func TestMetadataFromContext_Empty(t *testing.T) {
	if diff := cmp.Diff(Metadata{}, MetadataFromContext(context.Background())); diff != "" {
		t.Errorf("expected empty metadata (-want +got):\n%s", diff)
	}
}

func TestNewEntry(t *testing.T) {
	ctx := WithMetadata(context.Background(), Metadata{Variant: "openstack", ResourceType: "node", ResourceID: "7"})
	start := time.Now().Add(-time.Second)

	ok := NewEntry(ctx, "rscloud auth login", []string{"auth", "login", "--key", "abc"}, start, nil)
	if ok.Outcome != OutcomeSuccess || ok.Detail != "" {
		t.Errorf("unexpected outcome: %+v", ok)
	}
	if ok.Args != "auth login --key <redacted>" {
		t.Errorf("Args = %q", ok.Args)
	}
	if ok.Variant != "openstack" || ok.ResourceID != "7" {
		t.Errorf("metadata not copied: %+v", ok)
	}
	if ok.DurationMs < 1000 {
		t.Errorf("DurationMs = %d, want at least 1000", ok.DurationMs)
	}

	failed := NewEntry(context.Background(), "rscloud node list", nil, start, errors.New("boom"))
	if failed.Outcome != OutcomeError || failed.Detail != "boom" {
		t.Errorf("unexpected failed entry: %+v", failed)
	}
}

func TestRecord_WritesToDefaultRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rscloud.db")
	database.SetPath(path)
	t.Cleanup(database.ResetPath)

	Record(context.Background(), &AuditEntry{Command: "rscloud catalog sizes", Outcome: OutcomeSuccess})

	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	defer r.Close()

	entries, err := r.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Command != "rscloud catalog sizes" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
