package onion

import (
	"bytes"
	"errors"
	"strings"
)

// Files little-t-tor keeps in a HiddenServiceDir.
const (
	SecretKeyFileName = "hs_ed25519_secret_key"
	PublicKeyFileName = "hs_ed25519_public_key"
	HostnameFileName  = "hostname"
)

const (
	torSecretKeyHeader = "== ed25519v1-secret: type0 ==\x00\x00\x00"
	torPublicKeyHeader = "== ed25519v1-public: type0 ==\x00\x00\x00"
	torHeaderLen       = 32
)

var ErrTorKeyHeader = errors.New("onion: tor key file does not start with the expected header")

// ParseTorSecretKeyFile loads a private identity key written by little-t-tor.
func ParseTorSecretKeyFile(data []byte) (SecretKey, error) {
	body, err := torKeyBody(data, torSecretKeyHeader)
	if err != nil {
		return SecretKey{}, err
	}
	if len(body) != SecretKeySize {
		return SecretKey{}, invalidLength("tor secret key file", SecretKeySize, len(body))
	}
	var k SecretKey
	copy(k.key[:], body)
	return k, nil
}

// MarshalTorSecretKeyFile returns the content of hs_ed25519_secret_key.
func MarshalTorSecretKeyFile(k SecretKey) []byte {
	buf := make([]byte, 0, torHeaderLen+SecretKeySize)
	buf = append(buf, torSecretKeyHeader...)
	return append(buf, k.key[:]...)
}

// ParseTorPublicKeyFile loads a public identity key written by little-t-tor.
func ParseTorPublicKeyFile(data []byte) (PublicKey, error) {
	body, err := torKeyBody(data, torPublicKeyHeader)
	if err != nil {
		return PublicKey{}, err
	}
	if len(body) != PublicKeySize {
		return PublicKey{}, invalidLength("tor public key file", PublicKeySize, len(body))
	}
	var k PublicKey
	copy(k.key[:], body)
	return k, nil
}

// MarshalTorPublicKeyFile returns the content of hs_ed25519_public_key.
func MarshalTorPublicKeyFile(k PublicKey) []byte {
	buf := make([]byte, 0, torHeaderLen+PublicKeySize)
	buf = append(buf, torPublicKeyHeader...)
	return append(buf, k.key[:]...)
}

func torKeyBody(data []byte, header string) ([]byte, error) {
	if len(data) < torHeaderLen || !bytes.Equal(data[:torHeaderLen], []byte(header)) {
		return nil, ErrTorKeyHeader
	}
	return data[torHeaderLen:], nil
}

// ParseHostnameFile reads the hostname file tor writes next to the keys.
func ParseHostnameFile(data []byte) (Address, error) {
	return DecodeAddress(strings.TrimSpace(string(data)))
}

// MarshalHostnameFile returns the content of the hostname file.
func MarshalHostnameFile(a Address) []byte {
	return []byte(a.String() + "\n")
}
