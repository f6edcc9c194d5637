package brand

import (
	cryptoRand "crypto/rand"
	"io"
	mathRand "math/rand"
)

// brand - balance-random - picks where key material randomness comes from.
// Production code always reads crypto/rand; tests can ask for a seeded stream.

// https://github.com/dustin/randbo
type randbo struct {
	mathRand.Source
}

// NewDeterministic returns a reproducible byte stream for the given seed.
// Never use it for real keys.
func NewDeterministic(seed int64) io.Reader {
	return NewFrom(mathRand.NewSource(seed))
}

// NewFrom creates a new reader from your own rand.Source
func NewFrom(src mathRand.Source) io.Reader {
	return &randbo{src}
}

// Read satisfies io.Reader
func (r *randbo) Read(p []byte) (n int, err error) {
	for offset := 0; offset < len(p); {
		val := r.Int63()
		for i := 0; i < 8 && offset < len(p); i++ {
			p[offset] = byte(val)
			offset++
			val >>= 8
		}
	}
	return len(p), nil
}

// Read fills b from the system CSPRNG.
func Read(b []byte) (n int, err error) {
	return cryptoRand.Read(b)
}

// Reader returns the system CSPRNG.
func Reader() io.Reader {
	return cryptoRand.Reader
}

// Or returns r, or the system CSPRNG when r is nil.
func Or(r io.Reader) io.Reader {
	if r == nil {
		return Reader()
	}
	return r
}
