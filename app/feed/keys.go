package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// All URL-less listings collide on the hash of this sentinel, and therefore
// on one feed id. Accepted limitation: whether downstream consumers dedupe on
// id is unspecified, so the collision is surfaced rather than patched.
const missingURLSentinel = "missing-url"

var asinRe = regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})|/gp/product/([A-Z0-9]{10})`)

// StableKey derives a short deterministic identifier for a listing URL. The
// marketplace ASIN is preferred because it survives catalog changes, price
// changes and query-parameter churn; a content hash of the URL is stable only
// while the URL string itself is unchanged.
func StableKey(url string) string {
	if url == "" {
		return hashKey(missingURLSentinel)
	}

	if m := asinRe.FindStringSubmatch(url); m != nil {
		asin := m[1]
		if asin == "" {
			asin = m[2]
		}
		return strings.ToUpper(asin)
	}

	return hashKey(url)
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}
