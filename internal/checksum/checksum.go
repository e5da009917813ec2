// Package checksum provides content digests used for change detection and
// HTTP caching of articles.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Quote wraps a digest in double quotes for use as a strong HTTP entity tag.
func Quote(sum string) string {
	return `"` + sum + `"`
}
