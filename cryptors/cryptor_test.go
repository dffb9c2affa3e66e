package cryptors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// shift adds k modulo n.
type shift struct{ k, n int }

func (s shift) Encipher(i int) int { return (i + s.k) % s.n }
func (s shift) Decipher(i int) int { return (i - s.k + s.n) % s.n }

// squash sends everything to zero.
type squash struct{}

func (squash) Encipher(int) int { return 0 }
func (squash) Decipher(int) int { return 0 }

// leaky maps out of range.
type leaky struct{}

func (leaky) Encipher(i int) int { return i + 1 }
func (leaky) Decipher(i int) int { return i - 1 }

func TestEncryptDecrypt(t *testing.T) {
	stages := []Crypter{shift{3, 10}, shift{5, 10}}
	assert.Equal(t, 8, Encrypt(0, stages...))
	assert.Equal(t, 0, Decrypt(8, stages...))
	assert.Equal(t, 4, Encrypt(4))
}

func TestVerify(t *testing.T) {
	assert.NoError(t, Verify(shift{7, 26}, 26))
	assert.ErrorIs(t, Verify(squash{}, 4), ErrInvalidPermutation)
	assert.ErrorIs(t, Verify(leaky{}, 4), ErrInvalidPermutation)
}
