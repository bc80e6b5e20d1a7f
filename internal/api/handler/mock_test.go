package handler

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/everbloom/weddings/internal/core"
	"github.com/everbloom/weddings/internal/dns"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// mockRow implements pgx.Row for handler tests.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// stubResolver returns the same canned answers for every lookup.
type stubResolver struct {
	cname dns.HostResult
	txt   dns.TXTResult
	a     dns.HostResult
}

func (s *stubResolver) CNAME(ctx context.Context, host string) dns.HostResult { return s.cname }
func (s *stubResolver) TXT(ctx context.Context, host string) dns.TXTResult    { return s.txt }
func (s *stubResolver) A(ctx context.Context, host string) dns.HostResult     { return s.a }

func newTestServices(db core.DB, resolver dns.Resolver) *core.Services {
	return core.NewServices(db, resolver, core.NewTokenSource("handler-test-secret"), "everbloom.site", core.DomainSettings{
		CNAMETarget:       "sites.everbloom.app",
		LBAddress:         "203.0.113.10",
		ReservedSuffixes:  []string{"everbloom.site", "everbloom.app"},
		MaxVerifyAttempts: 15,
		VerifyBudget:      time.Second,
	})
}
