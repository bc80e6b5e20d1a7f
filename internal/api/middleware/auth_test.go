package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/stretchr/testify/require"
)

type fakeSessionDB struct {
	weddingID *string
	err       error
	queried   string
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func (f *fakeSessionDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queried = args[0].(string)
	return fakeRow{scan: func(dest ...any) error {
		if f.err != nil {
			return f.err
		}
		*(dest[0].(**string)) = f.weddingID
		return nil
	}}
}

func okHandler(t *testing.T, gotSession **Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotSession = GetSession(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingToken(t *testing.T) {
	var got *Session
	h := Auth(&fakeSessionDB{})(okHandler(t, &got))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuth_InvalidToken(t *testing.T) {
	var got *Session
	db := &fakeSessionDB{err: pgx.ErrNoRows}
	h := Auth(db)(okHandler(t, &got))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Session-Token", "bogus")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, got)
}

func TestAuth_ValidToken_HashedLookup(t *testing.T) {
	wid := "wedding-1"
	var got *Session
	db := &fakeSessionDB{weddingID: &wid}
	h := Auth(db)(okHandler(t, &got))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Session-Token", "secret-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	require.NotNil(t, got.WeddingID)
	assert.Equal(t, "wedding-1", *got.WeddingID)

	// Only the hash of the token goes to the database.
	sum := sha256.Sum256([]byte("secret-token"))
	assert.Equal(t, hex.EncodeToString(sum[:]), db.queried)
}

func TestCanAccessWedding(t *testing.T) {
	wid := "wedding-1"

	assert.False(t, CanAccessWedding(nil, "wedding-1"))
	assert.True(t, CanAccessWedding(&Session{WeddingID: &wid}, "wedding-1"))
	assert.False(t, CanAccessWedding(&Session{WeddingID: &wid}, "wedding-2"))
	// Staff sessions may act on any wedding.
	assert.True(t, CanAccessWedding(&Session{}, "wedding-2"))
}
