// Package rotorkeys holds the prime keys that seed each rotor's wiring.
//
// Keys come from a fixed table of every prime in
// [cryptors.MinimumRotorKey, cryptors.MaximumRotorKey].  A key may be given
// as the prime itself or as its index in that table.
package rotorkeys

import (
	"hash/fnv"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/primes"
)

// keyTable is built once and only ever read.
var (
	keyTable   = primes.GeneratePrimes(cryptors.MinimumRotorKey, cryptors.MaximumRotorKey)
	keyIndexes = func() map[int]int {
		m := make(map[int]int, len(keyTable))
		for i, p := range keyTable {
			m[p] = i
		}
		return m
	}()
)

// TotalKeyCount returns the number of primes in the key table.
func TotalKeyCount() int {
	return len(keyTable)
}

// KeyAt returns the prime at index idx of the key table.
func KeyAt(idx int) (int, error) {
	if idx < 0 || idx >= len(keyTable) {
		return 0, cryptors.Errorf(cryptors.ErrIndexOutOfRange,
			"rotor key index %d not in [0, %d)", idx, len(keyTable))
	}

	return keyTable[idx], nil
}

// IndexOfKey returns the table index of prime, or -1 if it is not a valid key.
func IndexOfKey(prime int) int {
	if i, ok := keyIndexes[prime]; ok {
		return i
	}

	return -1
}

// IsValidKey reports whether k is a prime within the rotor key range.
func IsValidKey(k int) bool {
	return k >= cryptors.MinimumRotorKey && k <= cryptors.MaximumRotorKey && primes.IsPrime(k)
}

// RotorKeys is an ordered list of rotor keys, one per rotor.  The same prime
// may appear more than once.
type RotorKeys struct {
	keys []int
}

// New builds RotorKeys from literal primes.
func New(keys ...int) (*RotorKeys, error) {
	if len(keys) == 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "no rotor keys given")
	}

	rk := &RotorKeys{keys: make([]int, len(keys))}
	for i, k := range keys {
		if !IsValidKey(k) {
			return nil, cryptors.Errorf(cryptors.ErrInvalidRotorKey,
				"rotor key %d (position %d) is not a prime in [%d, %d]",
				k, i, cryptors.MinimumRotorKey, cryptors.MaximumRotorKey)
		}
		rk.keys[i] = k
	}

	return rk, nil
}

// FromIndices builds RotorKeys from indices into the key table.
func FromIndices(indices ...int) (*RotorKeys, error) {
	if len(indices) == 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "no rotor key indices given")
	}

	rk := &RotorKeys{keys: make([]int, len(indices))}
	for i, idx := range indices {
		k, err := KeyAt(idx)
		if err != nil {
			return nil, err
		}
		rk.keys[i] = k
	}

	return rk, nil
}

// Count returns the number of keys, which is the number of rotors.
func (rk *RotorKeys) Count() int {
	return len(rk.keys)
}

// Key returns the i'th key.
func (rk *RotorKeys) Key(i int) (int, error) {
	if i < 0 || i >= len(rk.keys) {
		return 0, cryptors.Errorf(cryptors.ErrIndexOutOfRange,
			"rotor key position %d not in [0, %d)", i, len(rk.keys))
	}

	return rk.keys[i], nil
}

// IndexOf returns the position of the first occurrence of prime, or -1.
func (rk *RotorKeys) IndexOf(prime int) int {
	for i, k := range rk.keys {
		if k == prime {
			return i
		}
	}

	return -1
}

func (rk *RotorKeys) Contains(prime int) bool {
	return rk.IndexOf(prime) >= 0
}

// Keys returns a copy of the keys in rotor order.
func (rk *RotorKeys) Keys() []int {
	res := make([]int, len(rk.keys))
	copy(res, rk.keys)
	return res
}

// Indices returns the key table index of every key in rotor order.
func (rk *RotorKeys) Indices() []int {
	res := make([]int, len(rk.keys))
	for i, k := range rk.keys {
		res[i] = IndexOfKey(k)
	}
	return res
}

// Hash returns a non-cryptographic hash of the keys and their order.
func (rk *RotorKeys) Hash() uint64 {
	h := fnv.New64a()
	var b [2]byte

	for _, k := range rk.keys {
		b[0], b[1] = byte(k), byte(k>>8)
		h.Write(b[:])
	}

	return h.Sum64()
}

// Equal reports whether both lists hold the same keys in the same order.
func (rk *RotorKeys) Equal(other *RotorKeys) bool {
	if rk == nil || other == nil {
		return rk == other
	}

	if len(rk.keys) != len(other.keys) {
		return false
	}

	for i, k := range rk.keys {
		if other.keys[i] != k {
			return false
		}
	}

	return true
}
