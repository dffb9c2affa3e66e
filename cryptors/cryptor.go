// Package cryptors holds the pieces shared by every stage of the steckr
// cipher: the index transform interface, the error kinds and the limits on
// rotor keys.
package cryptors

const (
	// MinimumRotorKey and MaximumRotorKey bound the primes usable as rotor keys.
	MinimumRotorKey = 3
	MaximumRotorKey = 1000
	// DefaultInvalidCharacter replaces unmapped characters under MakeInvalid.
	DefaultInvalidCharacter = '�'
	// ApiLevel is bumped whenever a change alters the ciphertext produced for
	// a given key.
	ApiLevel = 1
)

// Crypter is a stage that maps alphabet indices in [0, n) onto [0, n).
// Decipher must undo Encipher for the stage's current state.
type Crypter interface {
	Encipher(int) int
	Decipher(int) int
}

// Encrypt runs idx forward through ecms in order.
func Encrypt(idx int, ecms ...Crypter) int {
	for _, ecm := range ecms {
		idx = ecm.Encipher(idx)
	}

	return idx
}

// Decrypt runs idx backward through ecms, last stage first.
func Decrypt(idx int, ecms ...Crypter) int {
	for i := len(ecms) - 1; i >= 0; i-- {
		idx = ecms[i].Decipher(idx)
	}

	return idx
}

// Verify checks that ecm is a bijection on [0, n) and that Decipher inverts
// Encipher at every index.
func Verify(ecm Crypter, n int) error {
	seen := make([]bool, n)

	for i := 0; i < n; i++ {
		v := ecm.Encipher(i)
		if v < 0 || v >= n {
			return Errorf(ErrInvalidPermutation, "index %d maps to %d, outside [0, %d)", i, v, n)
		}

		if seen[v] {
			return Errorf(ErrInvalidPermutation, "index %d maps to %d a second time", i, v)
		}

		seen[v] = true

		if back := ecm.Decipher(v); back != i {
			return Errorf(ErrInvalidPermutation, "decipher(%d) = %d, want %d", v, back, i)
		}
	}

	return nil
}
