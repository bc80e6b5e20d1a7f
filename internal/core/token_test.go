package core

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var tokenFormat = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestVerificationToken_Deterministic(t *testing.T) {
	ts := NewTokenSource("unit-test-secret")

	first := ts.VerificationToken("wedding-1", "example.com")
	second := ts.VerificationToken("wedding-1", "example.com")

	assert.Equal(t, first, second)
}

func TestVerificationToken_Format(t *testing.T) {
	ts := NewTokenSource("unit-test-secret")

	for _, tc := range []struct{ wedding, domain string }{
		{"wedding-1", "example.com"},
		{"wedding-2", "oliviaandmarcus.com"},
		{"", ""},
		{"wedding-1", "a-very-long-subdomain.of.some.domain.example.org"},
	} {
		token := ts.VerificationToken(tc.wedding, tc.domain)
		assert.Len(t, token, 32)
		assert.Regexp(t, tokenFormat, token)
	}
}

func TestVerificationToken_DistinctInputs(t *testing.T) {
	ts := NewTokenSource("unit-test-secret")

	base := ts.VerificationToken("wedding-1", "example.com")

	assert.NotEqual(t, base, ts.VerificationToken("wedding-1", "example.org"))
	assert.NotEqual(t, base, ts.VerificationToken("wedding-2", "example.com"))
}

func TestVerificationToken_SecretChangesToken(t *testing.T) {
	a := NewTokenSource("secret-a").VerificationToken("wedding-1", "example.com")
	b := NewTokenSource("secret-b").VerificationToken("wedding-1", "example.com")

	assert.NotEqual(t, a, b)
}
