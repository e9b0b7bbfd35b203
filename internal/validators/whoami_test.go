package validators

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// fakeProvider answers like the pnut.io token endpoint.
func fakeProvider(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/v0/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc123" {
			t.Errorf("Authorization = %q, want bearer credential", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestWhoami(t *testing.T, baseURL string) *Whoami {
	t.Helper()
	w, err := NewWhoami("pnut", WhoamiConfig{BaseURL: baseURL}, nil)
	if err != nil {
		t.Fatalf("NewWhoami() error = %v", err)
	}
	return w
}

func TestWhoami_Validate(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		want        string
		wantKind    core.ErrorKind
		wantCode    int
		wantMessage string
	}{
		{
			name:   "Nested User",
			status: http.StatusOK,
			body:   `{"meta":{"code":200},"data":{"user":{"username":"dj_sam"}}}`,
			want:   "dj_sam",
		},
		{
			name:   "Flat Username",
			status: http.StatusOK,
			body:   `{"meta":{"code":200},"data":{"username":"dj_alex"}}`,
			want:   "dj_alex",
		},
		{
			name:        "Rejected With Envelope",
			status:      http.StatusUnauthorized,
			body:        `{"meta":{"code":401,"error_message":"Invalid token."}}`,
			wantKind:    core.KindValidation,
			wantCode:    401,
			wantMessage: "Invalid token.",
		},
		{
			name:        "Rejected Without Message",
			status:      http.StatusOK,
			body:        `{"meta":{"code":403}}`,
			wantKind:    core.KindValidation,
			wantCode:    403,
			wantMessage: "Error!",
		},
		{
			name:        "Malformed Body",
			status:      http.StatusBadGateway,
			body:        `<html>bad gateway</html>`,
			wantKind:    core.KindTransport,
			wantCode:    500,
			wantMessage: "Error!",
		},
		{
			name:        "Missing Meta",
			status:      http.StatusOK,
			body:        `{"data":{"username":"dj_sam"}}`,
			wantKind:    core.KindTransport,
			wantCode:    500,
			wantMessage: "Error!",
		},
		{
			name:        "Success Without Username",
			status:      http.StatusOK,
			body:        `{"meta":{"code":200},"data":{}}`,
			wantKind:    core.KindTransport,
			wantCode:    500,
			wantMessage: "Error!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := fakeProvider(t, tt.status, tt.body)
			w := newTestWhoami(t, srv.URL)

			got, err := w.Validate(context.Background(), "abc123")
			if calls.Load() != 1 {
				t.Errorf("provider called %d times, want exactly once", calls.Load())
			}

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				if got.Username != tt.want {
					t.Errorf("Validate() = %s, want %s", got.Username, tt.want)
				}
				return
			}

			var exErr *core.ExchangeError
			if !errors.As(err, &exErr) {
				t.Fatalf("Validate() error = %v, want *core.ExchangeError", err)
			}
			if exErr.Kind != tt.wantKind || exErr.StatusCode() != tt.wantCode || exErr.Message != tt.wantMessage {
				t.Errorf("Validate() error = {%s %d %q}, want {%s %d %q}",
					exErr.Kind, exErr.StatusCode(), exErr.Message, tt.wantKind, tt.wantCode, tt.wantMessage)
			}
		})
	}
}

func TestWhoami_Idempotent(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, `{"meta":{"code":200},"data":{"user":{"username":"dj_sam"}}}`)
	w := newTestWhoami(t, srv.URL)

	first, err := w.Validate(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Validate(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Validate() not idempotent: %v != %v", first, second)
	}
}

func TestWhoami_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	w := newTestWhoami(t, baseURL)
	_, err := w.Validate(context.Background(), "abc123")

	var exErr *core.ExchangeError
	if !errors.As(err, &exErr) || exErr.Kind != core.KindTransport {
		t.Fatalf("Validate() error = %v, want transport failure", err)
	}
	if exErr.StatusCode() != 500 || exErr.Message != core.DefaultErrorMessage {
		t.Errorf("Validate() error = {%d %q}, want generic 500", exErr.StatusCode(), exErr.Message)
	}
}

func TestWhoami_CanceledContext(t *testing.T) {
	srv, calls := fakeProvider(t, http.StatusOK, `{"meta":{"code":200},"data":{"username":"dj_sam"}}`)
	w := newTestWhoami(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := w.Validate(ctx, "abc123"); err == nil {
		t.Fatal("Validate() with canceled context expected error")
	}
	if calls.Load() != 0 {
		t.Errorf("provider called %d times after cancel", calls.Load())
	}
}

func TestNewWhoamiFromConfig(t *testing.T) {
	w, err := NewWhoamiFromConfig(config.ComponentConfig{Name: "pnut", Type: WhoamiType, Config: map[string]any{
		"base_url": "https://api.pnut.io/",
		"timeout":  "2s",
	}})
	if err != nil {
		t.Fatalf("NewWhoamiFromConfig() error = %v", err)
	}
	if w.Endpoint() != "https://api.pnut.io/v0/token" {
		t.Errorf("Endpoint() = %s", w.Endpoint())
	}

	if _, err := NewWhoami("bad", WhoamiConfig{BaseURL: "ftp://example.com"}, nil); err == nil {
		t.Error("NewWhoami() with ftp base url expected error")
	}
}
