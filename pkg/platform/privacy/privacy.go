// Package privacy derives log-safe stand-ins for sensitive identifiers.
package privacy

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const fingerprintBytes = 8

// FingerprintPAN returns a short, stable, non-reversible token for a PAN so
// lookups can be correlated in logs without writing the PAN itself.
func FingerprintPAN(pan string) string {
	if pan == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(pan))
	return "pan_" + hex.EncodeToString(sum[:fingerprintBytes])
}
