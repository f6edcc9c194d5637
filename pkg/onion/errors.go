package onion

import (
	"errors"
	"fmt"
)

// Kinds of decode failure. Match them with errors.Is.
var (
	ErrInvalidEncoding = errors.New("invalid base64 encoding")
	ErrInvalidLength   = errors.New("invalid length")
	ErrInvalidAddress  = errors.New("invalid onion address")
)

// DecodeError is returned when text (or a Tor key file) cannot be turned
// into a key or address. No partially filled value accompanies it.
type DecodeError struct {
	// What is being decoded ("secret key", "public key", "onion address").
	What string
	// Kind is one of ErrInvalidEncoding, ErrInvalidLength, ErrInvalidAddress.
	Kind error
	// Expected and Actual are byte counts, only set for ErrInvalidLength.
	Expected int
	Actual   int
	// Err is the underlying cause reported by base64 or the address parser.
	Err error
}

func (e *DecodeError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrInvalidLength):
		return fmt.Sprintf("onion: invalid %s length: expected %d bytes, got %d", e.What, e.Expected, e.Actual)
	case e.Err != nil:
		return fmt.Sprintf("onion: %s: %s: %v", e.What, e.Kind, e.Err)
	default:
		return fmt.Sprintf("onion: %s: %s", e.What, e.Kind)
	}
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidEncoding(what string, err error) *DecodeError {
	return &DecodeError{What: what, Kind: ErrInvalidEncoding, Err: err}
}

func invalidLength(what string, expected, actual int) *DecodeError {
	return &DecodeError{What: what, Kind: ErrInvalidLength, Expected: expected, Actual: actual}
}

func invalidAddress(err error) *DecodeError {
	return &DecodeError{What: "onion address", Kind: ErrInvalidAddress, Err: err}
}
