// Package fingerprint computes short, stable content hashes of emitted
// token streams and IR text, so repeated runs or CI caches can tell
// whether a compile's output actually changed.
package fingerprint

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Of returns the hex-encoded blake2b-256 digest of content.
func Of(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// OfTokens hashes a sequence of token descriptions (one line per token,
// already rendered to text by the caller) as a single fingerprint, so a
// tokenit run and a later one can be compared without storing the full
// stream.
func OfTokens(lines []string) string {
	h, _ := blake2b.New256(nil)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
