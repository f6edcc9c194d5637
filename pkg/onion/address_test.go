package onion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromPublicKeyShape(t *testing.T) {
	a := AddressFromPublicKey(testSecretKey(t, 20).PublicKey())
	short := a.ShortForm()
	assert.Len(t, short, AddressLength)
	assert.Equal(t, strings.ToLower(short), short)
	// The last character only carries version bits: 0x03 -> "d".
	assert.True(t, strings.HasSuffix(short, "d"))
	assert.Equal(t, short+".onion", a.String())
}

func TestParseAddressForms(t *testing.T) {
	pk := testSecretKey(t, 21).PublicKey()
	a := AddressFromPublicKey(pk)

	for _, s := range []string{a.ShortForm(), a.String(), strings.ToUpper(a.ShortForm())} {
		parsed, err := ParseAddress(s)
		require.NoError(t, err, s)
		assert.Equal(t, a, parsed)
		assert.Equal(t, pk, parsed.PublicKey())
	}
}

func TestParseAddressZeroKey(t *testing.T) {
	a := AddressFromPublicKey(PublicKey{})
	parsed, err := ParseAddress(a.ShortForm())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestParseAddressRejects(t *testing.T) {
	pk := testSecretKey(t, 22).PublicKey()
	short := AddressFromPublicKey(pk).ShortForm()

	badChecksum := func() string {
		raw := append(pk.key[:], addressChecksum(pk, AddressVersion)...)
		raw[PublicKeySize] ^= 0xff
		raw = append(raw, AddressVersion)
		return strings.ToLower(addressEncoding.EncodeToString(raw))
	}()

	cases := []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "", ErrAddressLength},
		{"short", short[:55], ErrAddressLength},
		{"long", short + "a", ErrAddressLength},
		{"v2 address", "expyuzz4wqqyqhjn.onion", ErrAddressLength},
		{"alphabet", "1" + short[1:], ErrAddressEncoding},
		{"version", short[:55] + "a", ErrAddressVersion},
		{"checksum", badChecksum, ErrAddressChecksum},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAddress(tc.input)
			assert.ErrorIs(t, err, tc.err)

			_, err = DecodeAddress(tc.input)
			assert.ErrorIs(t, err, ErrInvalidAddress)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
