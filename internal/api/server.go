package api

import (
	"context"
	"net/http"

	"github.com/jdscolam/mndp-firebase-auth/internal/api/middleware"
	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
	"github.com/jdscolam/mndp-firebase-auth/internal/metrics"
)

// Exchanger is the pipeline the exchange route delegates to.
type Exchanger interface {
	Exchange(ctx context.Context, credential, group string) (*core.ExchangeResult, error)
}

type Server struct {
	exchanger   Exchanger
	auditReader core.AuditReader
	cfg         config.ServerConfig
	metrics     *metrics.Metrics
}

// NewServer creates the gateway server. The audit route is mounted if auditor
// can be queried and cfg carries an admin token.
func NewServer(exchanger Exchanger, auditor core.Auditor, cfg config.ServerConfig, m *metrics.Metrics) *Server {
	if cfg.ExchangeRoute == "" {
		cfg.ExchangeRoute = config.DefaultExchangeRoute
	}
	reader, _ := auditor.(core.AuditReader)
	return &Server{
		exchanger:   exchanger,
		auditReader: reader,
		cfg:         cfg,
		metrics:     m,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	if s.cfg.Metrics && s.metrics != nil {
		mux.Handle("GET "+MetricsRoute, s.metrics.Handler())
	}

	// the exchange route answers every method itself
	mux.HandleFunc(s.cfg.ExchangeRoute, s.handleExchange)

	knownPaths := []string{HealthCheckRoute, AboutRoute, MetricsRoute, s.cfg.ExchangeRoute}

	// admin routes
	if s.auditReader != nil && s.cfg.AdminToken != "" {
		adminMux := http.NewServeMux()
		adminMux.HandleFunc("GET "+ListAuditsRoute, s.handleAdminAudit)
		mux.Handle(AdminParent, middleware.AdminAuth(s.cfg.AdminToken)(adminMux))
		knownPaths = append(knownPaths, ListAuditsRoute)
	}

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				middleware.CORS(s.cfg.CORSOrigins)(
					middleware.Metrics(s.metrics, knownPaths)(
						mux)))))
}
