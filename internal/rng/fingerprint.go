package rng

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short hex identifier for a run configuration.
//
// Runs with the same domain size, duration and non-empty seed produce the
// same samples and share a fingerprint. It hashes with BLAKE2b-256 and
// truncates to 10 bytes (20 hex chars).
func Fingerprint(domainSize, totalTicks int, seed string) string {
	buf := make([]byte, 0, 64+len(seed))
	buf = append(buf, "mcpi-run\x00"...)
	buf = strconv.AppendInt(buf, int64(domainSize), 10)
	buf = append(buf, 0)
	buf = strconv.AppendInt(buf, int64(totalTicks), 10)
	buf = append(buf, 0)
	buf = append(buf, seed...)
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:10])
}
