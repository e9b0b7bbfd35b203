package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"
	MetricsRoute     = "/metrics"

	AdminParent     = "/v1/admin/"
	ListAuditsRoute = AdminParent + "audits"
)

// query parameters of the exchange route
const (
	TokenParam = "token"
	GroupParam = "group"
	// ShowParam is accepted as an alias of GroupParam
	ShowParam = "show"
)

// query parameters of the audit route
const (
	LimitParam         = "limit"
	CorrelationIDParam = "correlation_id"
	UsernameParam      = "username"
	FingerprintParam   = "fingerprint"
)
