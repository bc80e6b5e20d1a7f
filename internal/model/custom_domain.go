package model

import "time"

// CustomDomainConfig is a wedding site's vanity domain attachment. At most
// one per wedding, and a domain string may only be claimed by one config
// across all weddings (unique index on the normalized domain).
type CustomDomainConfig struct {
	ID                string                 `json:"id" db:"id"`
	WeddingID         string                 `json:"wedding_id" db:"wedding_id"`
	Domain            string                 `json:"domain" db:"domain"`
	VerificationToken string                 `json:"verification_token" db:"verification_token"`
	Status            string                 `json:"status" db:"status"`
	DNSRecords        []DNSRecordRequirement `json:"dns_records" db:"dns_records"`
	FailedAttempts    int                    `json:"failed_attempts" db:"failed_attempts"`
	CreatedAt         time.Time              `json:"created_at" db:"created_at"`
	LastCheckedAt     *time.Time             `json:"last_checked_at,omitempty" db:"last_checked_at"`
	ActivatedAt       *time.Time             `json:"activated_at,omitempty" db:"activated_at"`
}

// DNSRecordRequirement is one record the admin must create at their
// registrar. Verified and Observed reflect the most recent verification
// attempt, not a historical aggregate.
type DNSRecordRequirement struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
	Observed string `json:"observed,omitempty"`
}
