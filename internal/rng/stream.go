package rng

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"

	"mcpi/internal/domain"
)

const streamInfo = "mcpi/rng/stream/v1"

// Stream is a deterministic RandomSource over a ChaCha20 keystream.
// A Stream is not safe for concurrent use.
type Stream struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	off    int
}

// NewStream derives a stream from seed. Equal seeds yield equal sequences.
// seed is only read.
func NewStream(seed []byte) (*Stream, error) {
	material := make([]byte, chacha20.KeySize+chacha20.NonceSize)
	r := hkdf.New(sha256.New, seed, nil, []byte(streamInfo))
	if _, err := io.ReadFull(r, material); err != nil {
		return nil, fmt.Errorf("derive stream key: %w", err)
	}
	c, err := chacha20.NewUnauthenticatedCipher(material[:chacha20.KeySize], material[chacha20.KeySize:])
	if err != nil {
		return nil, err
	}
	s := &Stream{cipher: c}
	s.off = len(s.buf)
	return s, nil
}

// FromPhrase derives a stream from a text seed.
func FromPhrase(phrase string) (*Stream, error) {
	return NewStream([]byte(phrase))
}

// NewRandomStream seeds a stream from the operating system's entropy source,
// so its sequence is not reproducible.
func NewRandomStream() (*Stream, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return NewStream(seed)
}

// ForSeed returns FromPhrase(seed), or NewRandomStream when seed is empty.
func ForSeed(seed string) (*Stream, error) {
	if seed == "" {
		return NewRandomStream()
	}
	return FromPhrase(seed)
}

// Uint64 returns the next 64 bits of keystream.
func (s *Stream) Uint64() uint64 {
	if s.off+8 > len(s.buf) {
		clear(s.buf[:])
		s.cipher.XORKeyStream(s.buf[:], s.buf[:])
		s.off = 0
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off:])
	s.off += 8
	return v
}

// NextUniformInt returns an integer uniformly drawn from [lo, hi].
// It panics if lo > hi.
func (s *Stream) NextUniformInt(lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("rng: invalid range [%d, %d]", lo, hi))
	}
	span := uint64(hi-lo) + 1
	if span == 0 { // full 64-bit range
		return int(s.Uint64())
	}
	// Reject the low 2^64 mod span values so every residue is equally likely.
	threshold := -span % span
	for {
		v := s.Uint64()
		if v >= threshold {
			return lo + int(v%span)
		}
	}
}

var _ domain.RandomSource = (*Stream)(nil)
