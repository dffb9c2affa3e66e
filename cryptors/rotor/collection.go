package rotor

import (
	"math/big"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
)

// Collection is an ordered chain of rotors.  Rotor 0 steps on every
// character; rotor i+1 steps only when rotor i wraps, like an odometer.
type Collection struct {
	rotors []*Rotor
	size   int
}

// NewCollection builds one rotor per key, in key order.
func NewCollection(letters *letterset.LetterSet, keys *rotorkeys.RotorKeys) (*Collection, error) {
	if letters == nil || keys == nil {
		return nil, cryptors.Errorf(cryptors.ErrNullConfiguration, "rotor collection needs letters and keys")
	}

	c := &Collection{rotors: make([]*Rotor, keys.Count()), size: letters.Count()}
	for i, k := range keys.Keys() {
		r, err := New(letters, k)
		if err != nil {
			return nil, err
		}
		c.rotors[i] = r
	}

	return c, nil
}

// Count returns the number of rotors.
func (c *Collection) Count() int {
	return len(c.rotors)
}

// Rotor returns the i'th rotor.
func (c *Collection) Rotor(i int) *Rotor {
	return c.rotors[i]
}

// Encipher passes idx through every rotor, fastest first, then steps the
// chain unless peek is set.
func (c *Collection) Encipher(idx int, peek bool) int {
	for _, r := range c.rotors {
		idx = r.Encipher(idx)
	}

	if !peek {
		c.Rotate()
	}

	return idx
}

// Decipher passes idx back through every rotor, slowest first, then steps
// the chain unless peek is set.
func (c *Collection) Decipher(idx int, peek bool) int {
	for i := len(c.rotors) - 1; i >= 0; i-- {
		idx = c.rotors[i].Decipher(idx)
	}

	if !peek {
		c.Rotate()
	}

	return idx
}

// Rotate steps rotor 0 and carries into the next rotor for as long as
// rotors wrap.  A wrap of the last rotor is dropped.
func (c *Collection) Rotate() {
	for _, r := range c.rotors {
		if !r.Rotate() {
			return
		}
	}
}

// Reset returns every rotor to offset 0.
func (c *Collection) Reset() {
	for _, r := range c.rotors {
		r.Reset()
	}
}

// Offsets returns the offset of every rotor, fastest first.
func (c *Collection) Offsets() []int {
	res := make([]int, len(c.rotors))
	for i, r := range c.rotors {
		res[i] = r.Offset()
	}
	return res
}

// MaximalStates returns the number of distinct offset vectors, size^count.
func (c *Collection) MaximalStates() *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(c.size)), big.NewInt(int64(len(c.rotors))), nil)
}

// Index returns the number of steps from the all zero state to the current
// one, reading the offsets as base size digits with rotor 0 least
// significant.
func (c *Collection) Index() *big.Int {
	idx := new(big.Int)
	base := big.NewInt(int64(c.size))

	for i := len(c.rotors) - 1; i >= 0; i-- {
		idx.Mul(idx, base)
		idx.Add(idx, big.NewInt(int64(c.rotors[i].Offset())))
	}

	return idx
}

// SetIndex puts the chain in the state it would reach after idx steps from
// the all zero state.  idx is reduced modulo MaximalStates.
func (c *Collection) SetIndex(idx *big.Int) {
	// Special case if idx == 0
	if idx.Sign() == 0 {
		c.Reset()
		return
	}

	q := new(big.Int).Mod(idx, c.MaximalStates())
	base := big.NewInt(int64(c.size))
	r := new(big.Int)

	for _, rtr := range c.rotors {
		q.DivMod(q, base, r)
		rtr.SetOffset(int(r.Int64()))
	}
}
