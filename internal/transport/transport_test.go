package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestHTTPDo_SendsRequestAndReadsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/v1.0/123/servers/42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("cache-busting"); got != "abc" {
			t.Errorf("expected cache-busting=abc, got %q", got)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "tok" {
			t.Errorf("expected X-Auth-Token 'tok', got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "<server/>" {
			t.Errorf("unexpected body %q", body)
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("<ok/>"))
	}))
	t.Cleanup(srv.Close)

	h := NewHTTPWithClient(srv.Client(), "")
	resp, err := h.Do(context.Background(), Request{
		Method: http.MethodPut,
		URL:    srv.URL + "/v1.0/123/servers/42",
		Query:  url.Values{"cache-busting": {"abc"}},
		Header: http.Header{"X-Auth-Token": {"tok"}},
		Body:   []byte("<server/>"),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("StatusCode = %d, want 202", resp.StatusCode)
	}
	if resp.Reason != "Accepted" {
		t.Errorf("Reason = %q, want Accepted", resp.Reason)
	}
	if string(resp.Body) != "<ok/>" {
		t.Errorf("Body = %q", resp.Body)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "xml") {
		t.Errorf("expected xml content type, got %q", resp.Header.Get("Content-Type"))
	}
}

func TestHTTPDo_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	resp, err := NewHTTPWithClient(srv.Client(), srv.URL).Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    "/servers/1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", resp.StatusCode)
	}
}

func TestHTTPDo_RelativeURLWithoutBase(t *testing.T) {
	_, err := NewHTTP().Do(context.Background(), Request{Method: http.MethodGet, URL: "/servers"})
	if err == nil {
		t.Fatal("expected error for relative URL without base")
	}
	if !strings.Contains(err.Error(), "not absolute") {
		t.Errorf("unexpected error: %v", err)
	}
}
