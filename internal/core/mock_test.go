package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/everbloom/weddings/internal/dns"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// ---------- Fake resolver ----------

// fakeResolver implements dns.Resolver with canned results per record type,
// so verifier tests can exercise each outcome combination deterministically.
type fakeResolver struct {
	cname dns.HostResult
	txt   dns.TXTResult
	a     dns.HostResult
}

func (f *fakeResolver) CNAME(ctx context.Context, host string) dns.HostResult { return f.cname }
func (f *fakeResolver) TXT(ctx context.Context, host string) dns.TXTResult    { return f.txt }
func (f *fakeResolver) A(ctx context.Context, host string) dns.HostResult     { return f.a }

// recordingResolver additionally captures the hostnames queried.
type recordingResolver struct {
	fakeResolver
	cnameHost string
	txtHost   string
	aHost     string
}

func (r *recordingResolver) CNAME(ctx context.Context, host string) dns.HostResult {
	r.cnameHost = host
	return r.fakeResolver.CNAME(ctx, host)
}

func (r *recordingResolver) TXT(ctx context.Context, host string) dns.TXTResult {
	r.txtHost = host
	return r.fakeResolver.TXT(ctx, host)
}

func (r *recordingResolver) A(ctx context.Context, host string) dns.HostResult {
	r.aHost = host
	return r.fakeResolver.A(ctx, host)
}
