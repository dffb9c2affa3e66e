// Package engine assembles the steckr cipher machine: a plugboard followed
// by a chain of rotors over a fixed letter set, with a policy for characters
// outside that set.
//
// A Machine is a single threaded automaton.  Its only state is the rotor
// offset vector, which starts at all zeros.  Whole string calls return it to
// all zeros when they finish; rune calls leave it where they stepped it.
package engine

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/permutator"
	"github.com/bgallie/steckr/cryptors/rotor"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
)

// Machine enciphers and deciphers text.  It is not safe for concurrent use.
type Machine struct {
	letters          *letterset.LetterSet
	plugboard        *permutator.Plugboard
	rotors           *rotor.Collection
	keys             *rotorkeys.RotorKeys
	unmapped         UnmappedHandling
	invalidCharacter rune
	rotateOnInvalid  bool
}

// New validates args and builds a Machine from them.
func New(args *SetupArgs) (*Machine, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	pb, err := permutator.NewPlugboard(args.Letters, args.Steckering)
	if err != nil {
		return nil, err
	}

	rc, err := rotor.NewCollection(args.Letters, args.RotorKeys)
	if err != nil {
		return nil, err
	}

	return &Machine{
		letters:          args.Letters,
		plugboard:        pb,
		rotors:           rc,
		keys:             args.RotorKeys,
		unmapped:         args.Unmapped,
		invalidCharacter: args.InvalidCharacter,
		rotateOnInvalid:  args.RotateOnInvalid,
	}, nil
}

// EncipherRune enciphers c.  The rotors step once afterwards unless peek is
// set.  ok is false when the policy removes c.
func (m *Machine) EncipherRune(c rune, peek bool) (r rune, ok bool) {
	idx := m.letters.IndexOf(c)
	if idx < 0 {
		return m.handleInvalid(c, peek)
	}

	idx = m.plugboard.Encipher(idx)
	idx = m.rotors.Encipher(idx, peek)
	return m.letters.At(idx), true
}

// DecipherRune undoes EncipherRune for the same rotor state.
func (m *Machine) DecipherRune(c rune, peek bool) (r rune, ok bool) {
	idx := m.letters.IndexOf(c)
	if idx < 0 {
		return m.handleInvalid(c, peek)
	}

	idx = m.rotors.Decipher(idx, peek)
	idx = m.plugboard.Decipher(idx)
	return m.letters.At(idx), true
}

// Encipher enciphers text from the current rotor state and then resets the
// rotors.
func (m *Machine) Encipher(text string) string {
	return m.apply(text, m.EncipherRune)
}

// Decipher deciphers text from the current rotor state and then resets the
// rotors.
func (m *Machine) Decipher(text string) string {
	return m.apply(text, m.DecipherRune)
}

func (m *Machine) apply(text string, f func(rune, bool) (rune, bool)) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for _, c := range text {
		if r, ok := f(c, false); ok {
			sb.WriteRune(r)
		}
	}

	m.Reset()
	return sb.String()
}

// handleInvalid applies the unmapped character policy to c.  The rotors step
// under RotateOnInvalid whatever the policy returns.
func (m *Machine) handleInvalid(c rune, peek bool) (rune, bool) {
	if !peek && m.rotateOnInvalid {
		m.rotors.Rotate()
	}

	switch m.unmapped {
	case Remove:
		return 0, false
	case MakeInvalid:
		return m.invalidCharacter, true
	default:
		return c, true
	}
}

// Reset returns every rotor to offset 0.
func (m *Machine) Reset() {
	m.rotors.Reset()
}

// Index returns how many steps the rotors are from the all zero state.
func (m *Machine) Index() *big.Int {
	return m.rotors.Index()
}

// SetIndex moves the rotors to the state reached after idx steps.
func (m *Machine) SetIndex(idx *big.Int) {
	m.rotors.SetIndex(idx)
}

// MaximalStates returns the number of steps before the rotor states repeat.
func (m *Machine) MaximalStates() *big.Int {
	return m.rotors.MaximalStates()
}

// Offsets returns the current rotor offsets, fastest rotor first.
func (m *Machine) Offsets() []int {
	return m.rotors.Offsets()
}

// Letters returns the machine's letter set.
func (m *Machine) Letters() *letterset.LetterSet {
	return m.letters
}

// CounterKey identifies the machine's key material.  It is used to look up a
// saved stream position.
func (m *Machine) CounterKey() string {
	return fmt.Sprintf("%016x%016x%016x",
		m.letters.Hash(), m.plugboard.Steckering().Hash(), m.keys.Hash())
}
