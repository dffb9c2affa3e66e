// rotor
package rotor

import (
	"bytes"
	"fmt"
	"math/rand"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/permutator"
)

// Rotor is a rotating substitution over alphabet indices.  Its wiring is
// fixed by the alphabet size and the rotor key; only the offset changes.
type Rotor struct {
	key     int
	size    int
	current int
	wiring  *permutator.Steckering
}

var _ cryptors.Crypter = (*Rotor)(nil)

// Wiring returns the permutation a rotor of the given size and key uses.  It
// depends on nothing else.
func Wiring(size, key int) (*permutator.Steckering, error) {
	return permutator.NewSteckering(size, permutator.Shuffle(size, rand.New(rand.NewSource(int64(key)))))
}

// New creates a rotor for letters wired from key.  The offset starts at 0.
func New(letters *letterset.LetterSet, key int) (*Rotor, error) {
	if letters == nil {
		return nil, cryptors.Errorf(cryptors.ErrNullConfiguration, "rotor needs a letter set")
	}

	if key <= 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidRotorKey, "rotor key %d is not positive", key)
	}

	w, err := Wiring(letters.Count(), key)
	if err != nil {
		return nil, err
	}

	return &Rotor{key: key, size: letters.Count(), wiring: w}, nil
}

func (r *Rotor) Encipher(idx int) int {
	return (r.wiring.Forward((idx+r.current)%r.size) - r.current + r.size) % r.size
}

func (r *Rotor) Decipher(idx int) int {
	return (r.wiring.Inverse((idx+r.current)%r.size) - r.current + r.size) % r.size
}

// Rotate advances the offset by one and reports whether it wrapped to 0.
func (r *Rotor) Rotate() bool {
	r.current = (r.current + 1) % r.size
	return r.current == 0
}

// Reset returns the offset to 0.
func (r *Rotor) Reset() {
	r.current = 0
}

func (r *Rotor) Offset() int {
	return r.current
}

// SetOffset moves the rotor to offset o modulo its size.
func (r *Rotor) SetOffset(o int) {
	r.current = ((o % r.size) + r.size) % r.size
}

func (r *Rotor) Key() int {
	return r.key
}

func (r *Rotor) Size() int {
	return r.size
}

func (r *Rotor) String() string {
	var output bytes.Buffer
	output.WriteString(fmt.Sprintf("rotor.New(%d, %d) offset %d wiring []int{\n",
		r.size, r.key, r.current))
	w := r.wiring.Values()

	for i := 0; i < len(w); i += 16 {
		end := i + 16
		if end > len(w) {
			end = len(w)
		}

		output.WriteString("\t")
		for _, k := range w[i:end] {
			output.WriteString(fmt.Sprintf("%d, ", k))
		}
		output.WriteString("\n")
	}

	output.WriteString("}")
	return output.String()
}
