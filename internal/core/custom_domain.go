package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/everbloom/weddings/internal/model"
	"github.com/everbloom/weddings/internal/platform"
)

// DomainSettings carries the deployment-configured comparison targets and
// policy knobs for custom domain provisioning.
type DomainSettings struct {
	// CNAMETarget is the canonical platform hostname, e.g. "sites.everbloom.app".
	CNAMETarget string
	// LBAddress is the load balancer IPv4 for the apex A-record fallback.
	LBAddress string
	// ReservedSuffixes are platform-owned domains that cannot be attached
	// as custom domains (the default site suffix and the platform itself).
	ReservedSuffixes []string
	// MaxVerifyAttempts is the consecutive-failure threshold before a config
	// is marked failed rather than pending.
	MaxVerifyAttempts int
	// VerifyBudget bounds the wall clock of a whole verification attempt so
	// a black-holed resolver cannot hang the calling request.
	VerifyBudget time.Duration
}

const configColumns = `id, wedding_id, domain, verification_token, status, dns_records, failed_attempts, created_at, last_checked_at, activated_at`

// CustomDomainService owns the custom domain lifecycle: attach, verify,
// certificate confirmation, removal. It is the only writer of
// custom_domain_configs; status only ever advances through the transitions
// in lifecycle.go.
type CustomDomainService struct {
	db       DB
	verifier *Verifier
	tokens   *TokenSource
	settings DomainSettings

	// Per-wedding serialization so two near-simultaneous "verify" clicks
	// cannot interleave and leave dns_records inconsistent with the latest
	// check. Calls for different weddings proceed concurrently.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCustomDomainService(db DB, verifier *Verifier, tokens *TokenSource, settings DomainSettings) *CustomDomainService {
	return &CustomDomainService{
		db:       db,
		verifier: verifier,
		tokens:   tokens,
		settings: settings,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *CustomDomainService) lockWedding(weddingID string) func() {
	s.mu.Lock()
	l, ok := s.locks[weddingID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[weddingID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Attach normalizes and validates rawDomain, replaces any previous
// attachment for the wedding, and persists a pending config with the DNS
// record requirements the admin must create. Retrying the same input is
// idempotent: the token is deterministic and the previous config for the
// wedding is replaced.
func (s *CustomDomainService) Attach(ctx context.Context, weddingID, rawDomain string) (*model.CustomDomainConfig, error) {
	domain, err := NormalizeDomain(rawDomain)
	if err != nil {
		return nil, err
	}
	for _, suffix := range s.settings.ReservedSuffixes {
		suffix = strings.ToLower(strings.TrimSuffix(suffix, "."))
		if suffix != "" && (domain == suffix || strings.HasSuffix(domain, "."+suffix)) {
			return nil, fmt.Errorf("%w: %s domains cannot be attached as custom domains", ErrInvalidDomain, suffix)
		}
	}

	defer s.lockWedding(weddingID)()

	token := s.tokens.VerificationToken(weddingID, domain)
	now := time.Now()
	cfg := &model.CustomDomainConfig{
		ID:                platform.NewID(),
		WeddingID:         weddingID,
		Domain:            domain,
		VerificationToken: token,
		Status:            model.DomainStatusPending,
		DNSRecords: []model.DNSRecordRequirement{
			{Type: "CNAME", Name: domain, Value: s.settings.CNAMETarget},
			{Type: "TXT", Name: ChallengePrefix + "." + domain, Value: token},
		},
		CreatedAt: now,
	}

	// Replacing an existing attachment deletes the old config entirely;
	// there is no soft-disabled state.
	if _, err := s.db.Exec(ctx,
		`DELETE FROM custom_domain_configs WHERE wedding_id = $1`, weddingID,
	); err != nil {
		return nil, fmt.Errorf("remove previous custom domain config: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO custom_domain_configs (id, wedding_id, domain, verification_token, status, dns_records, failed_attempts, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $7)`,
		cfg.ID, cfg.WeddingID, cfg.Domain, cfg.VerificationToken, cfg.Status, cfg.DNSRecords, cfg.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "custom_domain_configs_domain_key" {
			return nil, ErrDomainTaken
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrWeddingNotFound
		}
		return nil, fmt.Errorf("insert custom domain config: %w", err)
	}

	return cfg, nil
}

// VerifyAttempt runs one synchronous verification for the wedding's domain
// and applies the lifecycle transition. The returned message is the
// admin-facing outcome description. A persistence failure fails the whole
// attempt rather than returning a verdict that was never durably recorded.
func (s *CustomDomainService) VerifyAttempt(ctx context.Context, weddingID string) (*model.CustomDomainConfig, string, error) {
	defer s.lockWedding(weddingID)()

	cfg, err := s.GetByWedding(ctx, weddingID)
	if err != nil {
		return nil, "", err
	}
	if cfg.Status == model.DomainStatusActive {
		return cfg, "Your custom domain is active.", nil
	}
	// ssl_pending only ever advances via certificate confirmation; a verify
	// click must not demote a config the cert issuer was already signaled
	// about.
	if cfg.Status == model.DomainStatusSSLPending {
		return cfg, "Domain verified. An SSL certificate is being issued; your site will switch over automatically.", nil
	}

	// Transient phase marker; logged, never persisted.
	zerolog.Ctx(ctx).Debug().
		Str("wedding_id", weddingID).
		Str("domain", cfg.Domain).
		Str("status", model.DomainStatusVerifying).
		Msg("verification attempt started")

	vctx := ctx
	if s.settings.VerifyBudget > 0 {
		var cancel context.CancelFunc
		vctx, cancel = context.WithTimeout(ctx, s.settings.VerifyBudget)
		defer cancel()
	}
	verdict := s.verifier.Verify(vctx, cfg.Domain, cfg.VerificationToken)

	status, failed := nextStatus(verdict, cfg.FailedAttempts, s.settings.MaxVerifyAttempts)
	now := time.Now()
	cfg.Status = status
	cfg.FailedAttempts = failed
	cfg.LastCheckedAt = &now
	applyVerdictToRecords(cfg.DNSRecords, verdict)

	_, err = s.db.Exec(ctx,
		`UPDATE custom_domain_configs
		 SET status = $1, dns_records = $2, failed_attempts = $3, last_checked_at = $4
		 WHERE id = $5`,
		cfg.Status, cfg.DNSRecords, cfg.FailedAttempts, cfg.LastCheckedAt, cfg.ID,
	)
	if err != nil {
		return nil, "", fmt.Errorf("persist verification result: %w", err)
	}

	return cfg, verdictMessage(status, verdict), nil
}

// applyVerdictToRecords refreshes the per-record verified flags and observed
// diagnostics from the latest verdict.
func applyVerdictToRecords(records []model.DNSRecordRequirement, verdict Verdict) {
	for i := range records {
		switch records[i].Type {
		case "CNAME":
			records[i].Verified = verdict.CNAMEVerified
			records[i].Observed = verdict.CNAMEObserved
		case "TXT":
			records[i].Verified = verdict.TXTVerified
			records[i].Observed = verdict.TXTObserved
		}
	}
}

// ConfirmCertificate is the trigger consumed from the external certificate
// issuer: ssl_pending advances to active and activated_at is stamped.
func (s *CustomDomainService) ConfirmCertificate(ctx context.Context, weddingID string) (*model.CustomDomainConfig, error) {
	defer s.lockWedding(weddingID)()

	tag, err := s.db.Exec(ctx,
		`UPDATE custom_domain_configs
		 SET status = $1, activated_at = now()
		 WHERE wedding_id = $2 AND status = $3`,
		model.DomainStatusActive, weddingID, model.DomainStatusSSLPending,
	)
	if err != nil {
		return nil, fmt.Errorf("activate custom domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		cfg, err := s.GetByWedding(ctx, weddingID)
		if err != nil {
			return nil, err
		}
		if cfg.Status == model.DomainStatusActive {
			return cfg, nil
		}
		return nil, ErrNotEligible
	}
	return s.GetByWedding(ctx, weddingID)
}

// Remove deletes the wedding's config unconditionally. Removing when no
// domain is attached is a successful no-op.
func (s *CustomDomainService) Remove(ctx context.Context, weddingID string) error {
	defer s.lockWedding(weddingID)()

	if _, err := s.db.Exec(ctx,
		`DELETE FROM custom_domain_configs WHERE wedding_id = $1`, weddingID,
	); err != nil {
		return fmt.Errorf("delete custom domain config: %w", err)
	}
	return nil
}

// GetByWedding loads the wedding's current config, or ErrNoDomain.
func (s *CustomDomainService) GetByWedding(ctx context.Context, weddingID string) (*model.CustomDomainConfig, error) {
	var c model.CustomDomainConfig
	err := s.db.QueryRow(ctx,
		`SELECT `+configColumns+` FROM custom_domain_configs WHERE wedding_id = $1`, weddingID,
	).Scan(&c.ID, &c.WeddingID, &c.Domain, &c.VerificationToken, &c.Status,
		&c.DNSRecords, &c.FailedAttempts, &c.CreatedAt, &c.LastCheckedAt, &c.ActivatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoDomain
		}
		return nil, fmt.Errorf("get custom domain config for wedding %s: %w", weddingID, err)
	}
	return &c, nil
}

// SetupInstructions renders the human-readable DNS setup guide returned to
// the admin UI when a domain is attached.
func SetupInstructions(cfg *model.CustomDomainConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To connect %s, create the following DNS records at your domain registrar:\n", cfg.Domain)
	for i, rec := range cfg.DNSRecords {
		fmt.Fprintf(&b, "%d. %s record with name %s and value %s\n", i+1, rec.Type, rec.Name, rec.Value)
	}
	b.WriteString("DNS changes can take up to 48 hours to propagate. Once the records are in place, click Verify.")
	return b.String()
}
