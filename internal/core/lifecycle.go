package core

import (
	"fmt"

	"github.com/everbloom/weddings/internal/model"
)

// nextStatus applies the lifecycle transition for one verification attempt.
// Both proofs succeeding moves the config to ssl_pending and clears the
// failure counter. Anything else is routine (DNS propagation can take up to
// ~48 hours) and keeps the config re-checkable: pending until the attempt
// threshold, failed at or beyond it. Failed stays re-attemptable.
func nextStatus(verdict Verdict, failedAttempts, maxAttempts int) (string, int) {
	if verdict.CNAMEVerified && verdict.TXTVerified {
		return model.DomainStatusSSLPending, 0
	}
	failedAttempts++
	if failedAttempts >= maxAttempts {
		return model.DomainStatusFailed, failedAttempts
	}
	return model.DomainStatusPending, failedAttempts
}

// verdictMessage renders the admin-facing next-step message for a
// verification outcome. Raw resolver errors never reach the admin; observed
// values are surfaced only via the dns_records table.
func verdictMessage(status string, verdict Verdict) string {
	switch {
	case status == model.DomainStatusSSLPending:
		return "Domain verified. An SSL certificate is being issued; your site will switch over automatically."
	case status == model.DomainStatusFailed:
		return "Verification has not succeeded after repeated attempts. Double-check the DNS records at your registrar, then verify again."
	case verdict.CNAMEVerified && !verdict.TXTVerified:
		return "CNAME record verified. Still waiting on the ownership TXT record" + propagationHint(verdict.TXTError)
	case verdict.TXTVerified && !verdict.CNAMEVerified:
		return "Ownership TXT record verified. Still waiting on the CNAME record" + propagationHint(verdict.CNAMEError)
	default:
		return "DNS records not found yet. Changes can take up to 48 hours to propagate; check your DNS settings and try again."
	}
}

func propagationHint(errClass string) string {
	if errClass == "not_found" || errClass == "" {
		return "; DNS changes can take up to 48 hours to propagate."
	}
	return fmt.Sprintf(" (last lookup: %s); please try again shortly.", errClass)
}
