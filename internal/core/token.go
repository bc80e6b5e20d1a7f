package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenSource derives deterministic domain ownership tokens from a
// server-held secret.
type TokenSource struct {
	secret string
}

func NewTokenSource(secret string) *TokenSource {
	return &TokenSource{secret: secret}
}

// VerificationToken returns the expected value of the ownership TXT
// challenge for a (wedding, domain) pair: the first 16 bytes of
// SHA-256(weddingID:domain:secret) rendered as 32 lowercase hex characters.
// Pure function; recomputing for the same inputs always yields the same token.
func (t *TokenSource) VerificationToken(weddingID, domain string) string {
	sum := sha256.Sum256([]byte(weddingID + ":" + domain + ":" + t.secret))
	return hex.EncodeToString(sum[:16])
}
