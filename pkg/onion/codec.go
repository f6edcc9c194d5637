package onion

import (
	"encoding"
	"encoding/base64"
	"errors"
	"strings"
)

// Keys travel as padded standard base64 of their raw bytes. Decoding is
// strict so that every key has exactly one text form.
var keyEncoding = base64.StdEncoding.Strict()

var errLineBreak = errors.New("line break in input")

// EncodeSecretKey returns the base64 text form of a secret key.
func EncodeSecretKey(k SecretKey) string {
	return keyEncoding.EncodeToString(k.key[:])
}

// DecodeSecretKey parses the base64 text form of a secret key.
func DecodeSecretKey(s string) (SecretKey, error) {
	var k SecretKey
	if err := decodeFixed("secret key", s, k.key[:]); err != nil {
		return SecretKey{}, err
	}
	return k, nil
}

// EncodePublicKey returns the base64 text form of a public key.
func EncodePublicKey(k PublicKey) string {
	return keyEncoding.EncodeToString(k.key[:])
}

// DecodePublicKey parses the base64 text form of a public key. Only the
// length is checked, not that the bytes are a curve point.
func DecodePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	if err := decodeFixed("public key", s, k.key[:]); err != nil {
		return PublicKey{}, err
	}
	return k, nil
}

// decodeFixed decodes s into dst, which must be filled exactly.
func decodeFixed(what, s string, dst []byte) error {
	// base64 silently skips CR and LF, which would make two texts decode
	// to the same key.
	if strings.ContainsAny(s, "\r\n") {
		return invalidEncoding(what, errLineBreak)
	}
	raw := make([]byte, keyEncoding.DecodedLen(len(s)))
	defer wipe(raw)
	n, err := keyEncoding.Decode(raw, []byte(s))
	if err != nil {
		return invalidEncoding(what, err)
	}
	if n != len(dst) {
		return invalidLength(what, len(dst), n)
	}
	copy(dst, raw[:n])
	return nil
}

// EncodeAddress returns the canonical short form of an address.
func EncodeAddress(a Address) string {
	return a.ShortForm()
}

// DecodeAddress parses an address. Parser failures are reported as
// ErrInvalidAddress with the parser's reason attached.
func DecodeAddress(s string) (Address, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return Address{}, invalidAddress(err)
	}
	return a, nil
}

func (k SecretKey) MarshalText() ([]byte, error) {
	return []byte(EncodeSecretKey(k)), nil
}

func (k *SecretKey) UnmarshalText(text []byte) error {
	decoded, err := DecodeSecretKey(string(text))
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(EncodePublicKey(k)), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	decoded, err := DecodePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(EncodeAddress(a)), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := DecodeAddress(string(text))
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

var (
	_ encoding.TextMarshaler   = SecretKey{}
	_ encoding.TextUnmarshaler = (*SecretKey)(nil)
	_ encoding.TextMarshaler   = PublicKey{}
	_ encoding.TextUnmarshaler = (*PublicKey)(nil)
	_ encoding.TextMarshaler   = Address{}
	_ encoding.TextUnmarshaler = (*Address)(nil)
)
