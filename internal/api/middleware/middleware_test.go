package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/correlation"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	var seen string
	h := CorrelationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = correlation.ID(r.Context())
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "Kept", incoming: "req-42", keep: true},
		{name: "Generated", incoming: "", keep: false},
		{name: "Too Long", incoming: strings.Repeat("x", 65), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth", nil)
			if tt.incoming != "" {
				req.Header.Set(CorrelationIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" || rec.Header().Get(CorrelationIDHeader) != seen {
				t.Errorf("context id %q, header id %q", seen, rec.Header().Get(CorrelationIDHeader))
			}
			if (seen == tt.incoming) != tt.keep {
				t.Errorf("id = %q, incoming %q, keep %v", seen, tt.incoming, tt.keep)
			}
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRecoverMiddleware_LogsWithoutRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() {
		log.Logger = prev
	})

	h := CorrelationIDMiddleware(RecoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.Header.Set(CorrelationIDHeader, "req-7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if !strings.Contains(out, `"message":"panic.recovered"`) || !strings.Contains(out, `"panic":"boom"`) {
		t.Errorf("panic not logged, got %q", out)
	}
	if !strings.Contains(out, `"correlation_id":"req-7"`) {
		t.Errorf("panic log misses correlation id: %q", out)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.Header.Set("Origin", "https://any.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want handler to run", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://any.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}

	// plain OPTIONS without preflight header is passed through
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/auth", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want handler to run", rec.Code)
	}
}

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		header   string
		wantCode int
	}{
		{name: "Valid", token: "s3cr$t", header: "Bearer s3cr$t", wantCode: http.StatusTeapot},
		{name: "Missing", token: "s3cr$t", header: "", wantCode: http.StatusUnauthorized},
		{name: "Wrong", token: "s3cr$t", header: "Bearer nope", wantCode: http.StatusUnauthorized},
		{name: "No Scheme", token: "s3cr$t", header: "s3cr$t", wantCode: http.StatusUnauthorized},
		{name: "Unconfigured", token: "", header: "Bearer ", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AdminAuth(tt.token)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}))
			req := httptest.NewRequest(http.MethodGet, "/v1/admin/audits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
