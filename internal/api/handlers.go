package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/api/presenter"
	"github.com/jdscolam/mndp-firebase-auth/internal/buildinfo"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

// ExchangeResponse is the body of a successful exchange.
type ExchangeResponse struct {
	Token string        `json:"token"`
	User  core.Identity `json:"user"`
}

// handleHealth responds with a simple OK status to indicate the server is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAbout responds with service information including version and commit hash.
func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	presenter.JSON(w, r, buildinfo.GetBuildInfo(), http.StatusOK)
}

// handleExchange trades the credential in the query for a signed token.
// Failures are answered with the error code as status and the message as plain text.
func (s *Server) handleExchange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	if r.Method != http.MethodGet {
		logger.Warn().Msg("exchange requested with unsupported method")
		presenter.Text(w, r, "Forbidden!", http.StatusForbidden)
		return
	}

	q := r.URL.Query()
	credential := q.Get(TokenParam)
	if credential == "" {
		// header fallback keeps credentials out of URLs and access logs
		credential = bearerToken(r)
	}
	group := q.Get(GroupParam)
	if group == "" {
		group = q.Get(ShowParam)
	}

	result, err := s.exchanger.Exchange(ctx, credential, group)
	if err != nil {
		// the pipeline already logged the failure where it was detected
		exErr := core.AsExchangeError(err, core.KindDependency)
		presenter.Text(w, r, exErr.Message, exErr.StatusCode())
		return
	}

	presenter.JSON(w, r, ExchangeResponse{
		Token: result.Token.Value,
		User:  result.Identity,
	}, http.StatusOK)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
