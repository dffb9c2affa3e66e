package bitops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitSet(t *testing.T) {
	b := New(20)
	assert.Equal(t, 24, b.Len())

	for _, bit := range []uint{0, 7, 8, 19} {
		assert.False(t, b.Get(bit))
		b.Set(bit)
		assert.True(t, b.Get(bit))
	}

	assert.False(t, b.Get(1))
	b.Clr(7)
	assert.False(t, b.Get(7))
	assert.True(t, b.Get(8))
}

func TestTestAndSet(t *testing.T) {
	b := New(8)
	assert.False(t, b.TestAndSet(3))
	assert.True(t, b.TestAndSet(3))
	assert.False(t, b.TestAndSet(4))
}
