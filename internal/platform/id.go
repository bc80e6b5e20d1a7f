package platform

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
const slugSuffixLength = 6

func NewID() string {
	return uuid.New().String()
}

// Slugify lowercases a display name into a hostname-safe slug base: runs of
// characters outside [a-z0-9] collapse to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// NewSlug appends a random lowercase suffix to a base slug, used to
// disambiguate default site hostnames like "olivia-and-marcus-x4k2pq".
func NewSlug(base string) string {
	b := make([]byte, slugSuffixLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand: " + err.Error())
	}
	for i := range b {
		b[i] = slugAlphabet[b[i]%byte(len(slugAlphabet))]
	}
	return base + "-" + string(b)
}
