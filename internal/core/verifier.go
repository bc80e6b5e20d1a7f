package core

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/everbloom/weddings/internal/dns"
)

// ChallengePrefix is the label the ownership TXT record lives under:
// _everbloom-challenge.<domain>.
const ChallengePrefix = "_everbloom-challenge"

// Verdict is the outcome of one verification attempt. Ephemeral; the
// lifecycle transition and the dns_records flags are derived from it.
type Verdict struct {
	CNAMEVerified bool   `json:"cname_verified"`
	TXTVerified   bool   `json:"txt_verified"`
	CNAMEObserved string `json:"cname_observed,omitempty"`
	TXTObserved   string `json:"txt_observed,omitempty"`
	CNAMEError    string `json:"cname_error,omitempty"`
	TXTError      string `json:"txt_error,omitempty"`
}

// Verifier checks a domain's DNS records against the platform's expected
// targets. No mutation, no side effects beyond the lookups themselves; safe
// to call concurrently for different domains.
type Verifier struct {
	resolver    dns.Resolver
	cnameTarget string
	lbAddress   string
}

func NewVerifier(resolver dns.Resolver, cnameTarget, lbAddress string) *Verifier {
	return &Verifier{resolver: resolver, cnameTarget: cnameTarget, lbAddress: lbAddress}
}

// Verify resolves CNAME, ownership TXT, and A records for the domain and
// assembles a verdict. DNS misses and lookup failures are data on the
// verdict, never errors. The three lookups run concurrently and share the
// caller's deadline.
func (v *Verifier) Verify(ctx context.Context, domain, expectedToken string) Verdict {
	var cname, a dns.HostResult
	var txt dns.TXTResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cname = v.resolver.CNAME(gctx, domain)
		return nil
	})
	g.Go(func() error {
		txt = v.resolver.TXT(gctx, ChallengePrefix+"."+domain)
		return nil
	})
	g.Go(func() error {
		a = v.resolver.A(gctx, domain)
		return nil
	})
	_ = g.Wait()

	verdict := Verdict{
		CNAMEError: hostError(cname),
		TXTError:   txtError(txt),
	}

	for _, target := range cname.Values {
		if verdict.CNAMEObserved == "" {
			verdict.CNAMEObserved = target
		}
		if v.matchesCNAMETarget(target) {
			verdict.CNAMEVerified = true
		}
	}

	// Apex domains cannot carry a CNAME; fall back to the A record against
	// the platform load balancer, but only when the CNAME is genuinely
	// absent rather than a transient lookup failure.
	if cname.NotFound && v.lbAddress != "" {
		for _, addr := range a.Values {
			if verdict.CNAMEObserved == "" {
				verdict.CNAMEObserved = addr
			}
			if addr == v.lbAddress {
				verdict.CNAMEVerified = true
				verdict.CNAMEError = ""
			}
		}
	}

	for _, record := range txt.Records {
		joined := strings.Join(record, "")
		if verdict.TXTObserved == "" {
			verdict.TXTObserved = joined
		}
		if joined == expectedToken || strings.Contains(joined, expectedToken) {
			verdict.TXTVerified = true
		}
	}

	return verdict
}

// matchesCNAMETarget applies the deliberately loose comparison against the
// platform hostname: case-insensitive, trailing-dot tolerant, and matching
// on suffix or substring. DNS providers append trailing dots and some
// delegate through intermediate hostnames; exact equality breaks
// configurations that work in practice.
func (v *Verifier) matchesCNAMETarget(target string) bool {
	got := strings.ToLower(strings.TrimSuffix(target, "."))
	want := strings.ToLower(strings.TrimSuffix(v.cnameTarget, "."))
	if want == "" {
		return false
	}
	return got == want || strings.HasSuffix(got, "."+want) || strings.Contains(got, want)
}

func hostError(r dns.HostResult) string {
	switch {
	case r.Failure != "":
		return r.Failure
	case r.NotFound:
		return "not_found"
	default:
		return ""
	}
}

func txtError(r dns.TXTResult) string {
	switch {
	case r.Failure != "":
		return r.Failure
	case r.NotFound:
		return "not_found"
	default:
		return ""
	}
}
