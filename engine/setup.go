package engine

import (
	"fmt"
	"strings"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/permutator"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
)

// UnmappedHandling selects what a Machine does with a character that is not
// in its letter set.
type UnmappedHandling int

const (
	// Keep passes the character through unchanged.
	Keep UnmappedHandling = iota
	// Remove drops the character from the output.
	Remove
	// MakeInvalid replaces the character with the configured invalid character.
	MakeInvalid
)

var unmappedNames = [...]string{Keep: "keep", Remove: "remove", MakeInvalid: "makeinvalid"}

// Valid reports whether h is one of the defined values.
func (h UnmappedHandling) Valid() bool {
	return h >= Keep && h <= MakeInvalid
}

func (h UnmappedHandling) String() string {
	if !h.Valid() {
		return fmt.Sprintf("UnmappedHandling(%d)", int(h))
	}

	return unmappedNames[h]
}

// ParseUnmappedHandling converts a name such as "keep" or "MakeInvalid" to an
// UnmappedHandling.  Case and '-'/'_' separators are ignored.
func ParseUnmappedHandling(s string) (UnmappedHandling, error) {
	name := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for i, n := range unmappedNames {
		if n == name {
			return UnmappedHandling(i), nil
		}
	}

	return Keep, cryptors.Errorf(cryptors.ErrInvalidEnumValue, "unknown unmapped handling %q", s)
}

// SetupArgs collects everything needed to build a Machine.  New reads it once
// and does not keep a reference to it.
type SetupArgs struct {
	Letters          *letterset.LetterSet
	Steckering       *permutator.Steckering
	RotorKeys        *rotorkeys.RotorKeys
	Unmapped         UnmappedHandling
	InvalidCharacter rune
	RotateOnInvalid  bool
}

// NewSetupArgs returns SetupArgs with the default policy: keep unmapped
// characters, use U+FFFD as the invalid character, and do not rotate on
// unmapped characters.
func NewSetupArgs() *SetupArgs {
	return &SetupArgs{
		Unmapped:         Keep,
		InvalidCharacter: cryptors.DefaultInvalidCharacter,
	}
}

// Validate checks that the arguments describe a buildable Machine.
func (a *SetupArgs) Validate() error {
	if a == nil {
		return cryptors.Errorf(cryptors.ErrNullConfiguration, "setup arguments are nil")
	}

	switch {
	case a.Letters == nil:
		return cryptors.Errorf(cryptors.ErrNullConfiguration, "letter set is not set")
	case a.Steckering == nil:
		return cryptors.Errorf(cryptors.ErrNullConfiguration, "steckering is not set")
	case a.RotorKeys == nil:
		return cryptors.Errorf(cryptors.ErrNullConfiguration, "rotor keys are not set")
	}

	if a.Steckering.Count() != a.Letters.Count() {
		return cryptors.Errorf(cryptors.ErrLengthMismatch,
			"steckering covers %d letters, letter set has %d", a.Steckering.Count(), a.Letters.Count())
	}

	if !a.Unmapped.Valid() {
		return cryptors.Errorf(cryptors.ErrInvalidEnumValue, "unmapped handling %d is not defined", int(a.Unmapped))
	}

	return nil
}
