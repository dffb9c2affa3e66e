// permutator project permutator.go
package permutator

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/bitops"
)

// Steckering is a fixed permutation of the alphabet indices [0, n).  Both
// directions are stored so either lookup is a single table read.
type Steckering struct {
	randp   []int // randp[i] is where index i is sent.
	inverse []int // inverse[randp[i]] == i.
}

// NewSteckering builds a Steckering over n indices from perm.  perm must hold
// exactly n values that form a bijection on [0, n).
func NewSteckering(n int, perm []int) (*Steckering, error) {
	if len(perm) != n {
		return nil, cryptors.Errorf(cryptors.ErrLengthMismatch,
			"steckering has %d entries, want %d", len(perm), n)
	}

	if n == 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "steckering is empty")
	}

	var p Steckering
	p.randp = make([]int, n)
	p.inverse = make([]int, n)
	seen := bitops.New(n)

	for i, v := range perm {
		if v < 0 || v >= n {
			return nil, cryptors.Errorf(cryptors.ErrInvalidPermutation,
				"steckering[%d] = %d, not in [0, %d)", i, v, n)
		}

		if seen.TestAndSet(uint(v)) {
			return nil, cryptors.Errorf(cryptors.ErrInvalidPermutation,
				"steckering[%d] = %d appears more than once", i, v)
		}

		p.randp[i] = v
		p.inverse[v] = i
	}

	return &p, nil
}

// Identity returns the Steckering that leaves every index in place.
func Identity(n int) *Steckering {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	p, _ := NewSteckering(n, perm)
	return p
}

// Shuffle returns a permutation of [0, n) drawn from rng with a Fisher-Yates
// shuffle.  The same rng state always yields the same permutation.
func Shuffle(n int, rng *rand.Rand) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	return perm
}

// NewRandomSteckering returns a Steckering over n indices generated from seed.
// Equal seeds produce equal permutations.
func NewRandomSteckering(n int, seed int64) (*Steckering, error) {
	return NewSteckering(n, Shuffle(n, rand.New(rand.NewSource(seed))))
}

// Count returns the number of indices the permutation covers.
func (p *Steckering) Count() int {
	return len(p.randp)
}

// Forward returns where idx is sent.
func (p *Steckering) Forward(idx int) int {
	return p.randp[idx]
}

// Inverse returns the index that is sent to idx.
func (p *Steckering) Inverse(idx int) int {
	return p.inverse[idx]
}

// Values returns a copy of the forward table.
func (p *Steckering) Values() []int {
	res := make([]int, len(p.randp))
	copy(res, p.randp)
	return res
}

// IsSelfInverse reports whether the permutation only swaps pairs, as a
// historical plugboard does.
func (p *Steckering) IsSelfInverse() bool {
	for i, v := range p.randp {
		if p.randp[v] != i {
			return false
		}
	}

	return true
}

// Hash returns a non-cryptographic hash of the forward table.
func (p *Steckering) Hash() uint64 {
	h := fnv.New64a()
	var b [4]byte

	for _, v := range p.randp {
		b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		h.Write(b[:])
	}

	return h.Sum64()
}

// Equal reports whether both permutations have the same forward table.
func (p *Steckering) Equal(other *Steckering) bool {
	if p == nil || other == nil {
		return p == other
	}

	if len(p.randp) != len(other.randp) {
		return false
	}

	for i, v := range p.randp {
		if other.randp[i] != v {
			return false
		}
	}

	return true
}

func (p *Steckering) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("Steckering(%d, []int{\n", len(p.randp)))

	for i := 0; i < len(p.randp); i += 16 {
		end := i + 16
		if end > len(p.randp) {
			end = len(p.randp)
		}

		output.WriteString("\t")
		for _, k := range p.randp[i:end] {
			output.WriteString(fmt.Sprintf("%d, ", k))
		}
		output.WriteString("\n")
	}

	output.WriteString("})")
	return output.String()
}
