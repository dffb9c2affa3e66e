package permutator

import (
	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
)

// Plugboard applies a Steckering to alphabet indices.  It has no state of its
// own, so Encipher and Decipher are pure lookups.
type Plugboard struct {
	letters    *letterset.LetterSet
	steckering *Steckering
}

var _ cryptors.Crypter = (*Plugboard)(nil)

// NewPlugboard pairs letters with a Steckering of the same size.
func NewPlugboard(letters *letterset.LetterSet, steckering *Steckering) (*Plugboard, error) {
	if letters == nil || steckering == nil {
		return nil, cryptors.Errorf(cryptors.ErrNullConfiguration, "plugboard needs letters and a steckering")
	}

	if letters.Count() != steckering.Count() {
		return nil, cryptors.Errorf(cryptors.ErrLengthMismatch,
			"steckering covers %d letters, letter set has %d", steckering.Count(), letters.Count())
	}

	return &Plugboard{letters: letters, steckering: steckering}, nil
}

func (pb *Plugboard) Encipher(idx int) int {
	return pb.steckering.Forward(idx)
}

func (pb *Plugboard) Decipher(idx int) int {
	return pb.steckering.Inverse(idx)
}

// Steckering returns the permutation the plugboard applies.
func (pb *Plugboard) Steckering() *Steckering {
	return pb.steckering
}
