package core

import "time"

type AuditEntry struct {
	// ID is the unique request ID (X-Correlation-ID)
	ID string `json:"id"`

	// Time is the timestamp of the event
	Time time.Time `json:"time"`

	// Action describing what happened (e.g. "token.exchange")
	Action string `json:"action"`

	// Username of the validated identity, empty if validation did not succeed
	Username string `json:"username,omitempty"`

	// Group that was requested for enrichment
	Group   string `json:"group,omitempty"`
	HasRole bool   `json:"has_role"`

	// Validator is the configured name of the credential validator
	Validator string `json:"validator,omitempty"`

	// Stage is the final state of the exchange, done or failed
	Stage Stage `json:"stage"`
	// Reached is the last stage completed before the final state
	Reached Stage `json:"reached"`

	Success   bool      `json:"success"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
	ErrorCode int       `json:"error_code,omitempty"`
	Error     string    `json:"error,omitempty"`

	// TokenFingerprint identifies the issued token, the token itself is never recorded
	TokenFingerprint string `json:"token_fingerprint,omitempty"`
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// AuditReader is implemented by auditors whose trail can be queried.
// Entries are returned oldest first. A negative limit means no limit.
type AuditReader interface {
	GetRecent(limit int) ([]AuditEntry, error)
	Find(filter func(entry AuditEntry) bool, limit int) ([]AuditEntry, error)
}

// AuditFilter selects audit entries, empty fields match everything.
type AuditFilter struct {
	CorrelationID string
	Username      string
	Fingerprint   string
}

func (f AuditFilter) IsEmpty() bool {
	return f.CorrelationID == "" && f.Username == "" && f.Fingerprint == ""
}

func (f AuditFilter) Match(entry AuditEntry) bool {
	if f.CorrelationID != "" && entry.ID != f.CorrelationID {
		return false
	}
	if f.Username != "" && entry.Username != f.Username {
		return false
	}
	if f.Fingerprint != "" && entry.TokenFingerprint != f.Fingerprint {
		return false
	}
	return true
}
