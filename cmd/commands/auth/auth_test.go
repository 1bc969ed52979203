package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/providers/providertest"
	authstore "nathanbeddoewebdev/rscloud/internal/services/auth"
)

func setup(t *testing.T) *authstore.MockStore {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	store := authstore.NewMockStore()
	cmdutil.SetStore(store)
	t.Cleanup(cmdutil.ResetStore)
	return store
}

func registerRackspace(t *testing.T) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.RegisterRackspace()
}

func execAuth(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-User") != "alice" || r.Header.Get("X-Auth-Key") != "k3y" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("X-Auth-Token", "tok-1")
		w.Header().Set("X-Server-Management-Url", "https://servers.example.com/v1.0/123")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func configure(t *testing.T, username, authURL string) {
	t.Helper()
	if err := (&config.Config{Username: username, AuthURL: authURL}).Save(); err != nil {
		t.Fatalf("save config: %v", err)
	}
}

func TestLogin_StoresKey(t *testing.T) {
	store := setup(t)
	providertest.Register(t, "mock", &providertest.Fake{})

	stdout, err := execAuth(t, "login", "MOCK", "--key", "  k3y  ")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(stdout, "Saved API key for variant mock") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	got, err := store.GetAPIKey("mock")
	if err != nil || got != "k3y" {
		t.Errorf("stored key = %q, %v; want %q", got, err, "k3y")
	}
}

func TestLogin_UnknownVariant(t *testing.T) {
	store := setup(t)
	providertest.Register(t, "mock", &providertest.Fake{})

	_, err := execAuth(t, "login", "nope", "--key", "k3y")

	if err == nil || !strings.Contains(err.Error(), `unknown variant "nope"`) {
		t.Fatalf("expected unknown variant error, got %v", err)
	}
	if _, err := store.GetAPIKey("nope"); !errors.Is(err, authstore.ErrKeyNotFound) {
		t.Errorf("expected no key stored, got %v", err)
	}
}

func TestLogin_Verify(t *testing.T) {
	setup(t)
	registerRackspace(t)
	srv := newAuthServer(t)
	configure(t, "alice", srv.URL)

	stdout, err := execAuth(t, "login", "openstack", "--key", "k3y", "--verify")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(stdout, "Key verified.") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestLogin_VerifyRejected(t *testing.T) {
	store := setup(t)
	registerRackspace(t)
	srv := newAuthServer(t)
	configure(t, "alice", srv.URL)

	_, err := execAuth(t, "login", "openstack", "--key", "wrong", "--verify")

	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if got, _ := store.GetAPIKey("openstack"); got != "wrong" {
		t.Errorf("expected key to stay stored, got %q", got)
	}
}

func TestLogin_VerifyNeedsUsername(t *testing.T) {
	setup(t)
	registerRackspace(t)

	_, err := execAuth(t, "login", "rackspace", "--key", "k3y", "--verify")

	if err == nil || !strings.Contains(err.Error(), "no username configured") {
		t.Errorf("expected username error, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	store := setup(t)
	registerRackspace(t)
	if err := store.SetAPIKey("rackspace", "k3y"); err != nil {
		t.Fatal(err)
	}

	stdout, err := execAuth(t, "logout", "rackspace")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(stdout, "Removed API key for variant rackspace") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if _, err := store.GetAPIKey("rackspace"); !errors.Is(err, authstore.ErrKeyNotFound) {
		t.Errorf("expected key removed, got %v", err)
	}

	stdout, err = execAuth(t, "logout", "rackspace")
	if err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if !strings.Contains(stdout, "No API key stored for variant rackspace") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestStatus(t *testing.T) {
	store := setup(t)
	registerRackspace(t)
	if err := store.SetAPIKey("rackspace-uk", "k3y"); err != nil {
		t.Fatal(err)
	}
	if err := (&config.Config{DefaultVariant: "rackspace-uk", Username: "alice"}).Save(); err != nil {
		t.Fatal(err)
	}

	stdout, err := execAuth(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}

	lines := strings.Split(stdout, "\n")
	var ukLine, usLine string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "rackspace-uk":
			ukLine = line
		case "rackspace":
			usLine = line
		}
	}
	if !strings.Contains(ukLine, "logged in") || strings.Contains(ukLine, "not logged in") || !strings.Contains(ukLine, "*") {
		t.Errorf("unexpected rackspace-uk row %q in:\n%s", ukLine, stdout)
	}
	if !strings.Contains(usLine, "not logged in") {
		t.Errorf("unexpected rackspace row %q in:\n%s", usLine, stdout)
	}
	if !strings.Contains(stdout, "Username: alice") {
		t.Errorf("expected username in output:\n%s", stdout)
	}
}
