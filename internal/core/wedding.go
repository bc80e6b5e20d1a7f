package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/everbloom/weddings/internal/model"
)

type WeddingService struct {
	db DB
	// siteSuffix is the default hostname suffix, e.g. "everbloom.site".
	siteSuffix string
}

func NewWeddingService(db DB, siteSuffix string) *WeddingService {
	return &WeddingService{db: db, siteSuffix: siteSuffix}
}

func (s *WeddingService) Create(ctx context.Context, w *model.Wedding) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO weddings (id, slug, couple_names, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.Slug, w.CoupleNames, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("slug %q is already taken", w.Slug)
		}
		return fmt.Errorf("insert wedding: %w", err)
	}
	return nil
}

func (s *WeddingService) GetByID(ctx context.Context, id string) (*model.Wedding, error) {
	var w model.Wedding
	err := s.db.QueryRow(ctx,
		`SELECT id, slug, couple_names, status, created_at, updated_at
		 FROM weddings WHERE id = $1`, id,
	).Scan(&w.ID, &w.Slug, &w.CoupleNames, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeddingNotFound
		}
		return nil, fmt.Errorf("get wedding %s: %w", id, err)
	}
	return &w, nil
}

// DefaultURL is the always-available site URL for a wedding, served from the
// platform's own suffix regardless of custom domain state.
func (s *WeddingService) DefaultURL(w *model.Wedding) string {
	return "https://" + w.Slug + "." + s.siteSuffix
}
