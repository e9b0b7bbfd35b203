package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jdscolam/mndp-firebase-auth/internal/api"
	"github.com/jdscolam/mndp-firebase-auth/internal/api/presenter"
	"github.com/jdscolam/mndp-firebase-auth/internal/buildinfo"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Correlation-ID", "req-1")
		if r.Header.Get("Authorization") != "Bearer abc123" {
			presenter.Text(w, r, "Invalid token.", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("token") != "" {
			t.Error("credential leaked into the query")
		}
		presenter.JSON(w, r, api.ExchangeResponse{
			Token: "signed-" + r.URL.Query().Get("group"),
			User:  core.Identity{Username: "dj_sam"},
		}, http.StatusOK)
	})
	mux.HandleFunc("GET /about", func(w http.ResponseWriter, r *http.Request) {
		presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
	})
	mux.HandleFunc("GET "+api.ListAuditsRoute, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer admin-secret" {
			presenter.Error(w, r, "invalid admin token", http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		presenter.JSON(w, r, []core.AuditEntry{{
			ID:               q.Get(api.CorrelationIDParam),
			Username:         q.Get(api.UsernameParam),
			TokenFingerprint: q.Get(api.FingerprintParam),
			Error:            q.Get(api.LimitParam),
		}}, http.StatusOK)
	})
	mux.HandleFunc("GET /broken", func(w http.ResponseWriter, r *http.Request) {
		presenter.Error(w, r, "internal server error", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Exchange(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL + "/")

	resp, correlationID, err := c.Exchange(context.Background(), "abc123", "mondaynight")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}
	if resp.Token != "signed-mondaynight" || resp.User.Username != "dj_sam" {
		t.Errorf("Exchange() = %+v", resp)
	}
	if correlationID != "req-1" {
		t.Errorf("correlation id = %q, want req-1", correlationID)
	}
}

func TestClient_ExchangeRejected(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL)

	_, correlationID, err := c.Exchange(context.Background(), "nope", "")

	var apiErr APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Exchange() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid token." {
		t.Errorf("APIError = %+v", apiErr)
	}
	if correlationID != "req-1" || apiErr.CorrelationID != "req-1" {
		t.Errorf("correlation id = %q / %q", correlationID, apiErr.CorrelationID)
	}
}

func TestClient_JSONError(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, WithExchangeRoute("/broken"))

	_, _, err := c.Exchange(context.Background(), "abc123", "")
	var apiErr APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "internal server error" {
		t.Errorf("Exchange() error = %v, want decoded json error", err)
	}
}

func TestClient_Info(t *testing.T) {
	srv := newTestServer(t)
	c := New(srv.URL, WithHTTPClient(srv.Client()))

	info, _, err := c.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	want := buildinfo.GetBuildInfo()
	if *info != want {
		got, _ := json.Marshal(info)
		t.Errorf("Info() = %s", got)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, _, err := New(addr).Info(context.Background())
	if err == nil {
		t.Fatal("Info() expected connection error")
	}
	var apiErr APIError
	if errors.As(err, &apiErr) {
		t.Errorf("connection error reported as APIError: %v", apiErr)
	}
}

func TestClient_ListAudits(t *testing.T) {
	srv := newTestServer(t)

	c := New(srv.URL, WithAdminToken("admin-secret"))
	entries, _, err := c.ListAudits(context.Background(), ListAuditsOpts{
		Limit:         5,
		CorrelationID: "req-1",
		Username:      "dj_sam",
		Fingerprint:   "fp",
	})
	if err != nil {
		t.Fatalf("ListAudits() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("ListAudits() returned %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.ID != "req-1" || got.Username != "dj_sam" || got.TokenFingerprint != "fp" || got.Error != "5" {
		t.Errorf("ListAudits() = %+v, want the query echoed", got)
	}

	_, _, err = New(srv.URL).ListAudits(context.Background(), ListAuditsOpts{})
	var apiErr APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("ListAudits() without token error = %v, want 401", err)
	}
}
