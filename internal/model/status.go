package model

// Custom domain lifecycle statuses. Only the state machine in core advances
// these; Verifying is a transient in-request marker and is never persisted.
const (
	DomainStatusPending    = "pending"
	DomainStatusVerifying  = "verifying"
	DomainStatusSSLPending = "ssl_pending"
	DomainStatusActive     = "active"
	DomainStatusFailed     = "failed"
)

// Wedding site statuses.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)
