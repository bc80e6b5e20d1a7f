package request

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body string, v any) error {
	t.Helper()
	r := httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	return Decode(r, v)
}

func TestDecode_InvalidJSON(t *testing.T) {
	var req AttachCustomDomain
	err := decodeBody(t, "{not json", &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_MissingRequiredField(t *testing.T) {
	var req AttachCustomDomain
	err := decodeBody(t, `{}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestDecode_AttachCustomDomain(t *testing.T) {
	var req AttachCustomDomain
	require.NoError(t, decodeBody(t, `{"domain":"Example.com"}`, &req))
	assert.Equal(t, "Example.com", req.Domain)
}

func TestDecode_CreateWeddingSlug(t *testing.T) {
	var req CreateWedding
	require.NoError(t, decodeBody(t, `{"slug":"olivia-and-marcus","couple_names":"Olivia & Marcus"}`, &req))

	for _, bad := range []string{"Olivia", "ab", "-leading", "has_underscore", "has space"} {
		var r CreateWedding
		err := decodeBody(t, `{"slug":"`+bad+`","couple_names":"x"}`, &r)
		require.Error(t, err, "slug %q", bad)
	}
}

func TestDecode_CreateWeddingSlugOptional(t *testing.T) {
	var req CreateWedding
	require.NoError(t, decodeBody(t, `{"couple_names":"Olivia & Marcus"}`, &req))
	assert.Empty(t, req.Slug)
}

func TestRequireID(t *testing.T) {
	id, err := RequireID("wedding-1")
	require.NoError(t, err)
	assert.Equal(t, "wedding-1", id)

	_, err = RequireID("")
	require.Error(t, err)
}
