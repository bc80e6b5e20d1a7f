// Package dns performs the live DNS lookups used for custom domain
// verification. Lookup failures are classified data, never bare errors:
// "no such record" is an expected outcome distinct from a resolver or
// network failure, and callers always observe which of the two occurred.
package dns

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// Failure classifications. Kept coarse on purpose so they can be shown to
// admins without leaking resolver internals.
const (
	FailureTimeout = "timeout"
	FailureLookup  = "lookup_failure"
)

// HostResult is the classified outcome of a CNAME or A query. At most one of
// NotFound and Failure is set; when both are clear the lookup answered.
type HostResult struct {
	Values   []string
	NotFound bool
	Failure  string
}

// OK reports whether the lookup completed with at least one record.
func (r HostResult) OK() bool {
	return !r.NotFound && r.Failure == "" && len(r.Values) > 0
}

// TXTRecord holds the wire-format character strings of a single TXT record.
// The DNS wire format chunks TXT data into strings of at most 255 bytes, so
// one logical record may arrive in several segments.
type TXTRecord []string

// TXTResult is the classified outcome of a TXT query.
type TXTResult struct {
	Records  []TXTRecord
	NotFound bool
	Failure  string
}

func (r TXTResult) OK() bool {
	return !r.NotFound && r.Failure == "" && len(r.Records) > 0
}

// Resolver performs the three independent lookups needed for domain
// verification. Implementations must keep the lookups independent: a failure
// of one record type never affects the outcome of another.
type Resolver interface {
	CNAME(ctx context.Context, host string) HostResult
	TXT(ctx context.Context, host string) TXTResult
	A(ctx context.Context, host string) HostResult
}

// lookuper is the subset of net.Resolver the adapter needs, kept narrow so
// tests can substitute canned lookups.
type lookuper interface {
	LookupCNAME(ctx context.Context, host string) (string, error)
	LookupTXT(ctx context.Context, name string) ([]string, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// NetResolver backs the Resolver contract onto net.Resolver with a bounded
// per-lookup timeout.
type NetResolver struct {
	resolver lookuper
	timeout  time.Duration
}

func NewNetResolver(timeout time.Duration) *NetResolver {
	return &NetResolver{resolver: net.DefaultResolver, timeout: timeout}
}

func (n *NetResolver) CNAME(ctx context.Context, host string) HostResult {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	cname, err := n.resolver.LookupCNAME(ctx, host)
	if err != nil {
		notFound, failure := classify(err)
		return HostResult{NotFound: notFound, Failure: failure}
	}
	// LookupCNAME reports the canonical name and succeeds even when the host
	// has only address records. A canonical name equal to the queried host is
	// not an alias; callers rely on NotFound to detect CNAME-less apex
	// domains.
	if cname == "" || sameHost(cname, host) {
		return HostResult{NotFound: true}
	}
	return HostResult{Values: []string{cname}}
}

func (n *NetResolver) TXT(ctx context.Context, host string) TXTResult {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	values, err := n.resolver.LookupTXT(ctx, host)
	if err != nil {
		notFound, failure := classify(err)
		return TXTResult{NotFound: notFound, Failure: failure}
	}
	if len(values) == 0 {
		return TXTResult{NotFound: true}
	}
	// net.Resolver pre-joins the segments of each record, so every record
	// surfaces as a single segment here. Fakes in tests exercise the
	// multi-segment case.
	records := make([]TXTRecord, 0, len(values))
	for _, v := range values {
		records = append(records, TXTRecord{v})
	}
	return TXTResult{Records: records}
}

func (n *NetResolver) A(ctx context.Context, host string) HostResult {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	addrs, err := n.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		notFound, failure := classify(err)
		return HostResult{NotFound: notFound, Failure: failure}
	}
	var values []string
	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			values = append(values, v4.String())
		}
	}
	if len(values) == 0 {
		return HostResult{NotFound: true}
	}
	return HostResult{Values: values}
}

// sameHost compares hostnames case-insensitively, tolerating trailing dots.
func sameHost(a, b string) bool {
	return strings.ToLower(strings.TrimSuffix(a, ".")) == strings.ToLower(strings.TrimSuffix(b, "."))
}

// classify maps a lookup error to (notFound, failure). Not-found is an
// expected outcome; everything else is a transient lookup failure.
func classify(err error) (bool, string) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsNotFound {
			return true, ""
		}
		if dnsErr.IsTimeout {
			return false, FailureTimeout
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false, FailureTimeout
	}
	return false, FailureLookup
}
