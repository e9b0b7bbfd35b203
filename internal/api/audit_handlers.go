package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/jdscolam/mndp-firebase-auth/internal/api/presenter"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 1000
)

// handleAdminAudit returns the latest audit entries, optionally filtered by
// correlation id, username or token fingerprint.
func (s *Server) handleAdminAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)

	q := r.URL.Query()
	limit := defaultAuditLimit
	if limitStr := q.Get(LimitParam); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			logger.Warn().Str("limit", limitStr).Msg("invalid limit parameter")
			presenter.Error(w, r, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = min(v, maxAuditLimit)
	}

	filter := core.AuditFilter{
		CorrelationID: q.Get(CorrelationIDParam),
		Username:      q.Get(UsernameParam),
		Fingerprint:   q.Get(FingerprintParam),
	}

	var entries []core.AuditEntry
	var err error
	if filter.IsEmpty() {
		logger.Debug().Msg("retrieving recent audit log entries")
		entries, err = s.auditReader.GetRecent(limit)
	} else {
		logger.Info().Msg("applying audit log filters")
		entries, err = s.auditReader.Find(filter.Match, limit)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to retrieve audit logs")
		presenter.Error(w, r, "failed to retrieve audit logs", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}

	presenter.JSON(w, r, entries, http.StatusOK)
}
