package onion

import (
	"crypto/ed25519"
	"crypto/sha512"
	"fmt"
	"io"

	"filippo.io/edwards25519"

	"onionkeys/pkg/brand"
)

const (
	// SecretKeySize is the size of a Tor expanded ed25519 secret key:
	// 32 bytes for the secret scalar 'a', 32 bytes for the PRF key 'h'.
	SecretKeySize = 64
	// PublicKeySize is the size of an ed25519 public key.
	PublicKeySize = 32
	// SeedSize is the size of a standard ed25519 private key seed.
	SeedSize = ed25519.SeedSize
)

// SecretKey is the expanded ed25519 secret key of a v3 onion service, in the
// layout little-t-tor keeps in hs_ed25519_secret_key.
type SecretKey struct {
	key [SecretKeySize]byte
}

// PublicKey is the ed25519 identity key of a v3 onion service.
type PublicKey struct {
	key [PublicKeySize]byte
}

// GenerateSecretKey creates a fresh secret key from a 32 byte seed read from
// rand. A nil rand uses the system CSPRNG.
func GenerateSecretKey(rand io.Reader) (SecretKey, error) {
	var seed [SeedSize]byte
	defer wipe(seed[:])
	if _, err := io.ReadFull(brand.Or(rand), seed[:]); err != nil {
		return SecretKey{}, fmt.Errorf("onion: reading key seed: %w", err)
	}
	return SecretKeyFromSeed(seed[:])
}

// SecretKeyFromSeed expands a standard ed25519 seed into the form tor stores.
// The public key of the result matches ed25519.NewKeyFromSeed(seed).
func SecretKeyFromSeed(seed []byte) (SecretKey, error) {
	if len(seed) != SeedSize {
		return SecretKey{}, invalidLength("seed", SeedSize, len(seed))
	}
	h := sha512.Sum512(seed)
	defer wipe(h[:])
	h[0] &= 248
	h[31] &= 127
	h[31] |= 64
	return SecretKey{key: h}, nil
}

// SecretKeyFromBytes wraps raw expanded key bytes. No validation is done.
func SecretKeyFromBytes(b [SecretKeySize]byte) SecretKey {
	return SecretKey{key: b}
}

// Bytes returns a copy of the raw key.
func (k SecretKey) Bytes() [SecretKeySize]byte {
	return k.key
}

// PublicKey derives the identity public key [a]B from the secret scalar.
func (k SecretKey) PublicKey() PublicKey {
	var wide [64]byte
	defer wipe(wide[:])
	copy(wide[:32], k.key[:32])
	// Tor keys are clamped, not reduced; a 512 bit uniform reduction of the
	// zero-extended scalar gives a mod l, and [a mod l]B == [a]B.
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	if err != nil {
		panic(err)
	}
	var pk PublicKey
	copy(pk.key[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return pk
}

// IsZero reports whether k is the zero value.
func (k SecretKey) IsZero() bool {
	return k.key == [SecretKeySize]byte{}
}

// Wipe clears the key material in place.
func (k *SecretKey) Wipe() {
	wipe(k.key[:])
}

// String never prints key material.
func (k SecretKey) String() string {
	return "onion.SecretKey(redacted)"
}

// GoString never prints key material.
func (k SecretKey) GoString() string {
	return k.String()
}

// PublicKeyFromBytes wraps raw public key bytes. The point is not checked.
func PublicKeyFromBytes(b [PublicKeySize]byte) PublicKey {
	return PublicKey{key: b}
}

// Bytes returns a copy of the raw key.
func (k PublicKey) Bytes() [PublicKeySize]byte {
	return k.key
}

// Ed25519 returns the key as a crypto/ed25519 public key.
func (k PublicKey) Ed25519() ed25519.PublicKey {
	out := make(ed25519.PublicKey, PublicKeySize)
	copy(out, k.key[:])
	return out
}

func (k PublicKey) String() string {
	return EncodePublicKey(k)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
