// Package rng provides the RandomSource implementations used by mcpi.
//
// Contents
//
//   - Stream, a reproducible source backed by a ChaCha20 keystream whose key
//     and nonce are derived from a seed with HKDF-SHA256 (NewStream,
//     FromPhrase, NewRandomStream)
//   - Sequence, a scripted source for deterministic tests
//   - Short run fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Streams are reproducible, not secret: the seed phrase is stored alongside
// run records so a run can be replayed, so derived key material is not
// scrubbed. Draws are unbiased across the requested range.
package rng
