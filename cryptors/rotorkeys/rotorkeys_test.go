package rotorkeys

import (
	"testing"

	"github.com/bgallie/steckr/cryptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyTable(t *testing.T) {
	assert.Equal(t, 167, TotalKeyCount())

	k, err := KeyAt(0)
	require.NoError(t, err)
	assert.Equal(t, 3, k)

	k, err = KeyAt(TotalKeyCount() - 1)
	require.NoError(t, err)
	assert.Equal(t, 997, k)

	_, err = KeyAt(TotalKeyCount())
	assert.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)
	_, err = KeyAt(-1)
	assert.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)

	assert.Equal(t, 2, IndexOfKey(7))
	assert.Equal(t, -1, IndexOfKey(2))
	assert.Equal(t, -1, IndexOfKey(9))
}

func TestNew(t *testing.T) {
	rk, err := New(3, 5, 997, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, rk.Count())
	assert.Equal(t, []int{3, 5, 997, 5}, rk.Keys())
	assert.Equal(t, []int{0, 1, 166, 1}, rk.Indices())
	assert.Equal(t, 1, rk.IndexOf(5))
	assert.Equal(t, -1, rk.IndexOf(7))
	assert.True(t, rk.Contains(997))
	assert.False(t, rk.Contains(7))

	k, err := rk.Key(2)
	require.NoError(t, err)
	assert.Equal(t, 997, k)
	_, err = rk.Key(4)
	assert.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)
}

func TestNewRejectsBadKeys(t *testing.T) {
	for _, k := range []int{4, 2, 1, 0, -3, 1009, 1000} {
		_, err := New(3, k)
		assert.ErrorIs(t, err, cryptors.ErrInvalidRotorKey, "key %d", k)
	}

	_, err := New()
	assert.ErrorIs(t, err, cryptors.ErrInvalidArgument)
}

func TestFromIndices(t *testing.T) {
	rk, err := FromIndices(0, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 7, 3}, rk.Keys())

	_, err = FromIndices(0, TotalKeyCount())
	assert.ErrorIs(t, err, cryptors.ErrIndexOutOfRange)

	_, err = FromIndices()
	assert.ErrorIs(t, err, cryptors.ErrInvalidArgument)
}

func TestKeysIsACopy(t *testing.T) {
	rk, _ := New(3, 5)
	keys := rk.Keys()
	keys[0] = 11
	assert.Equal(t, []int{3, 5}, rk.Keys())
}

func TestHashAndEqual(t *testing.T) {
	a, _ := New(3, 5, 7)
	b, _ := FromIndices(0, 1, 2)
	c, _ := New(7, 5, 3)
	d, _ := New(3, 5)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}
