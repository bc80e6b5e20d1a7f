package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/everbloom/weddings/internal/model"
)

func TestWeddingService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewWeddingService(db, "everbloom.site")
	ctx := context.Background()

	now := time.Now()
	w := &model.Wedding{
		ID:          "wedding-1",
		Slug:        "olivia-and-marcus",
		CoupleNames: "Olivia & Marcus",
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).Return(pgconn.CommandTag{}, nil)

	require.NoError(t, svc.Create(ctx, w))
	db.AssertExpectations(t)
}

func TestWeddingService_Create_DuplicateSlug(t *testing.T) {
	db := &mockDB{}
	svc := NewWeddingService(db, "everbloom.site")
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"})

	err := svc.Create(ctx, &model.Wedding{ID: "wedding-1", Slug: "taken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestWeddingService_GetByID_Success(t *testing.T) {
	db := &mockDB{}
	svc := NewWeddingService(db, "everbloom.site")
	ctx := context.Background()
	now := time.Now().Truncate(time.Microsecond)

	row := &mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = "wedding-1"
		*(dest[1].(*string)) = "olivia-and-marcus"
		*(dest[2].(*string)) = "Olivia & Marcus"
		*(dest[3].(*string)) = model.StatusActive
		*(dest[4].(*time.Time)) = now
		*(dest[5].(*time.Time)) = now
		return nil
	}}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	w, err := svc.GetByID(ctx, "wedding-1")
	require.NoError(t, err)
	assert.Equal(t, "olivia-and-marcus", w.Slug)
	assert.Equal(t, model.StatusActive, w.Status)
}

func TestWeddingService_GetByID_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewWeddingService(db, "everbloom.site")
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := svc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrWeddingNotFound)
}

func TestWeddingService_GetByID_QueryError(t *testing.T) {
	db := &mockDB{}
	svc := NewWeddingService(db, "everbloom.site")
	ctx := context.Background()

	row := &mockRow{scanFunc: func(dest ...any) error { return errors.New("connection reset") }}
	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(row)

	_, err := svc.GetByID(ctx, "wedding-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWeddingNotFound)
}

func TestWeddingService_DefaultURL(t *testing.T) {
	svc := NewWeddingService(&mockDB{}, "everbloom.site")

	url := svc.DefaultURL(&model.Wedding{Slug: "olivia-and-marcus"})

	assert.Equal(t, "https://olivia-and-marcus.everbloom.site", url)
}
