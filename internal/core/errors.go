package core

import "errors"

// Sentinel errors surfaced to the API layer, which maps them to HTTP status
// codes and in-band error codes.
var (
	// ErrInvalidDomain rejects malformed or platform-owned hostnames before
	// any network I/O.
	ErrInvalidDomain = errors.New("invalid domain format")
	// ErrDomainTaken means the normalized domain is already claimed by
	// another wedding's config.
	ErrDomainTaken = errors.New("custom domain already exists")
	// ErrNoDomain means the wedding has no custom domain attached.
	ErrNoDomain = errors.New("no custom domain attached")
	// ErrNotEligible means a certificate confirmation arrived for a config
	// that is not waiting on one.
	ErrNotEligible = errors.New("domain is not awaiting certificate issuance")
	// ErrWeddingNotFound means the wedding does not exist.
	ErrWeddingNotFound = errors.New("wedding not found")
)
