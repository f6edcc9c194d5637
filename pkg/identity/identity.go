package identity

import (
	"errors"
	"fmt"
	"io"

	"onionkeys/pkg/onion"
)

var ErrPublicKeyMismatch = errors.New("identity: public key does not belong to the secret key")
var ErrAddressMismatch = errors.New("identity: address does not belong to the public key")

// Identity is everything needed to run, or move, a v3 onion service.
type Identity struct {
	Address   onion.Address   `json:"address" yaml:"address" toml:"address"`
	PublicKey onion.PublicKey `json:"public_key" yaml:"public_key" toml:"public_key"`
	SecretKey onion.SecretKey `json:"secret_key" yaml:"secret_key" toml:"secret_key"`
}

// New fills in the public key and address derived from sk.
func New(sk onion.SecretKey) Identity {
	pk := sk.PublicKey()
	return Identity{
		Address:   onion.AddressFromPublicKey(pk),
		PublicKey: pk,
		SecretKey: sk,
	}
}

// Generate creates an identity from a new secret key. A nil rand uses the
// system CSPRNG.
func Generate(rand io.Reader) (Identity, error) {
	sk, err := onion.GenerateSecretKey(rand)
	if err != nil {
		return Identity{}, err
	}
	return New(sk), nil
}

// Validate checks that the three fields describe the same service.
func (i Identity) Validate() error {
	if derived := i.SecretKey.PublicKey(); derived != i.PublicKey {
		return fmt.Errorf("%w (derived %s, stored %s)", ErrPublicKeyMismatch, derived, i.PublicKey)
	}
	if derived := onion.AddressFromPublicKey(i.PublicKey); derived != i.Address {
		return fmt.Errorf("%w (derived %s, stored %s)", ErrAddressMismatch, derived, i.Address)
	}
	return nil
}

// Wipe clears the secret key.
func (i *Identity) Wipe() {
	i.SecretKey.Wipe()
}
