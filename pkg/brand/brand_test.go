package brand

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeterministicIsReproducible(t *testing.T) {
	a := make([]byte, 37)
	b := make([]byte, 37)
	_, err := io.ReadFull(NewDeterministic(42), a)
	require.NoError(t, err)
	_, err = io.ReadFull(NewDeterministic(42), b)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c := make([]byte, 37)
	_, _ = io.ReadFull(NewDeterministic(43), c)
	assert.NotEqual(t, a, c)
}

func TestRandboReadEmpty(t *testing.T) {
	n, err := NewDeterministic(1).Read(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOr(t *testing.T) {
	r := bytes.NewReader(nil)
	assert.Same(t, r, Or(r))
	assert.Equal(t, Reader(), Or(nil))
}
