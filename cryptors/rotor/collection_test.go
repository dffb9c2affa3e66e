package rotor

import (
	"math/big"
	"testing"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// peeker exposes a collection with peek set as a Crypter.
type peeker struct{ c *Collection }

func (p peeker) Encipher(i int) int { return p.c.Encipher(i, true) }
func (p peeker) Decipher(i int) int { return p.c.Decipher(i, true) }

func collection(t *testing.T, alphabet string, keys ...int) *Collection {
	t.Helper()
	rk, err := rotorkeys.New(keys...)
	require.NoError(t, err)
	c, err := NewCollection(letters(t, alphabet), rk)
	require.NoError(t, err)
	return c
}

func TestNewCollection(t *testing.T) {
	c := collection(t, upper, 3, 5, 3)
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 3, c.Rotor(0).Key())
	assert.Equal(t, 5, c.Rotor(1).Key())
	assert.Equal(t, []int{0, 0, 0}, c.Offsets())

	_, err := NewCollection(nil, nil)
	assert.ErrorIs(t, err, cryptors.ErrNullConfiguration)
}

func TestOdometer(t *testing.T) {
	const n = 5
	c := collection(t, "ABCDE", 3, 5, 7)

	for i := 0; i < n; i++ {
		c.Rotate()
	}
	assert.Equal(t, []int{0, 1, 0}, c.Offsets())

	c.Reset()
	for i := 0; i < n*n; i++ {
		c.Rotate()
	}
	assert.Equal(t, []int{0, 0, 1}, c.Offsets())

	c.Reset()
	for i := 0; i < n*n*n-1; i++ {
		c.Rotate()
	}
	assert.Equal(t, []int{4, 4, 4}, c.Offsets())

	// The last rotor's wrap is absorbed.
	c.Rotate()
	assert.Equal(t, []int{0, 0, 0}, c.Offsets())
}

func TestPeekDoesNotStep(t *testing.T) {
	c := collection(t, upper, 3, 5)

	a := c.Encipher(4, true)
	assert.Equal(t, []int{0, 0}, c.Offsets())
	assert.Equal(t, a, c.Encipher(4, true))

	assert.Equal(t, a, c.Encipher(4, false))
	assert.Equal(t, []int{1, 0}, c.Offsets())

	c.Decipher(4, false)
	assert.Equal(t, []int{2, 0}, c.Offsets())
}

func TestCollectionBijective(t *testing.T) {
	c := collection(t, upper, 3, 7, 11)

	for step := 0; step < 60; step++ {
		require.NoError(t, cryptors.Verify(peeker{c}, 26), "step %d", step)
		c.Rotate()
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	enc := collection(t, upper, 5, 3, 997)
	dec := collection(t, upper, 5, 3, 997)

	for i := 0; i < 1000; i++ {
		in := (i * 7) % 26
		out := enc.Encipher(in, false)
		assert.Equal(t, in, dec.Decipher(out, false), "character %d", i)
	}
}

func TestIndex(t *testing.T) {
	c := collection(t, "ABCDE", 3, 5, 7)
	assert.Equal(t, big.NewInt(125), c.MaximalStates())

	for i := 0; i < 38; i++ {
		c.Rotate()
	}
	// 38 = 1*25 + 2*5 + 3
	assert.Equal(t, []int{3, 2, 1}, c.Offsets())
	assert.Equal(t, int64(38), c.Index().Int64())

	other := collection(t, "ABCDE", 3, 5, 7)
	other.SetIndex(big.NewInt(38))
	assert.Equal(t, c.Offsets(), other.Offsets())

	other.SetIndex(big.NewInt(125 + 38))
	assert.Equal(t, []int{3, 2, 1}, other.Offsets())

	other.SetIndex(big.NewInt(0))
	assert.Equal(t, []int{0, 0, 0}, other.Offsets())
}
