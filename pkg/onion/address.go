package onion

import (
	"bytes"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the length of the short form, without ".onion".
	AddressLength = 56
	// AddressVersion is the version byte of v3 addresses.
	AddressVersion = 0x03

	addressSuffix   = ".onion"
	checksumPrefix  = ".onion checksum"
	checksumLen     = 2
	rawAddressBytes = PublicKeySize + checksumLen + 1
)

var addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

var (
	ErrAddressLength   = errors.New("address must be 56 characters")
	ErrAddressEncoding = errors.New("address is not base32")
	ErrAddressVersion  = errors.New("unsupported address version")
	ErrAddressChecksum = errors.New("bad address checksum")
)

// Address is a v3 onion address. Values built by this package always carry a
// correct checksum and version.
type Address struct {
	pub PublicKey
}

// AddressFromPublicKey computes
//
//	onion_address = base32(PUBKEY | CHECKSUM | VERSION)
//	CHECKSUM = H(".onion checksum" | PUBKEY | VERSION)[:2]
//
// https://github.com/torproject/torspec/blob/main/rend-spec-v3.txt
func AddressFromPublicKey(pub PublicKey) Address {
	return Address{pub: pub}
}

// ParseAddress reads the short form of an address. A trailing ".onion" and
// upper case letters are accepted.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSuffix(s, addressSuffix)
	if len(s) != AddressLength {
		return Address{}, fmt.Errorf("%w (got %d)", ErrAddressLength, len(s))
	}
	raw, err := addressEncoding.DecodeString(strings.ToUpper(s))
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrAddressEncoding, err)
	}
	if len(raw) != rawAddressBytes {
		return Address{}, fmt.Errorf("%w: decoded to %d bytes", ErrAddressEncoding, len(raw))
	}
	var pub PublicKey
	copy(pub.key[:], raw[:PublicKeySize])
	expectedChecksum := raw[PublicKeySize : PublicKeySize+checksumLen]
	version := raw[PublicKeySize+checksumLen]
	if version != AddressVersion {
		return Address{}, fmt.Errorf("%w: %d", ErrAddressVersion, version)
	}
	if checksum := addressChecksum(pub, version); !bytes.Equal(expectedChecksum, checksum) {
		return Address{}, fmt.Errorf("%w (expected %x but was %x)", ErrAddressChecksum, checksum, expectedChecksum)
	}
	return Address{pub: pub}, nil
}

func addressChecksum(pub PublicKey, version byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(checksumPrefix)
	buf.Write(pub.key[:])
	buf.WriteByte(version)
	sum := sha3.Sum256(buf.Bytes())
	return sum[:checksumLen]
}

// ShortForm returns the canonical 56 character address without ".onion".
func (a Address) ShortForm() string {
	var buf bytes.Buffer
	buf.Write(a.pub.key[:])
	buf.Write(addressChecksum(a.pub, AddressVersion))
	buf.WriteByte(AddressVersion)
	return strings.ToLower(addressEncoding.EncodeToString(buf.Bytes()))
}

// String returns the address with its ".onion" suffix.
func (a Address) String() string {
	return a.ShortForm() + addressSuffix
}

// PublicKey returns the identity key the address was derived from.
func (a Address) PublicKey() PublicKey {
	return a.pub
}
