// Package bitops provides a packed bit set.  The sieve in primes and the
// permutation checks in permutator use it to mark values they have seen.
package bitops

// BitSet is a fixed size set of bits, eight to a byte.
type BitSet []byte

// New returns a cleared BitSet that can hold n bits.
func New(n int) BitSet {
	return make(BitSet, (n+7)>>3)
}

// Len returns the number of bits the set can hold.
func (b BitSet) Len() int {
	return len(b) << 3
}

// Set turns on the given bit.
func (b BitSet) Set(bit uint) BitSet {
	b[bit>>3] |= 1 << (bit & 7)
	return b
}

// Clr turns off the given bit.
func (b BitSet) Clr(bit uint) BitSet {
	b[bit>>3] &= ^(1 << (bit & 7))
	return b
}

// Get reports whether the given bit is on.
func (b BitSet) Get(bit uint) bool {
	return b[bit>>3]&(1<<(bit&7)) != 0
}

// TestAndSet turns on the given bit and reports whether it was already on.
func (b BitSet) TestAndSet(bit uint) bool {
	was := b.Get(bit)
	b.Set(bit)
	return was
}
