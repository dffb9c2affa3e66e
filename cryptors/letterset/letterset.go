// Package letterset defines the ordered alphabet a steckr machine works over.
package letterset

import (
	"hash/fnv"

	"github.com/bgallie/steckr/cryptors"
)

// LetterSet is an ordered, duplicate free set of runes.  A rune's index is
// its position in the set.  A LetterSet is immutable once built.
type LetterSet struct {
	letters []rune
	index   map[rune]int
}

// New builds a LetterSet from letters, in the given order.
func New(letters []rune) (*LetterSet, error) {
	if len(letters) == 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "letter set is empty")
	}

	ls := &LetterSet{
		letters: make([]rune, len(letters)),
		index:   make(map[rune]int, len(letters)),
	}

	for i, r := range letters {
		if j, ok := ls.index[r]; ok {
			return nil, cryptors.Errorf(cryptors.ErrDuplicateElement,
				"letter %q at position %d repeats position %d", r, i, j)
		}

		ls.letters[i] = r
		ls.index[r] = i
	}

	return ls, nil
}

// FromString builds a LetterSet from the runes of s.
func FromString(s string) (*LetterSet, error) {
	return New([]rune(s))
}

// Count returns the number of letters in the set.
func (ls *LetterSet) Count() int {
	return len(ls.letters)
}

// Letter returns the rune at index i.
func (ls *LetterSet) Letter(i int) (rune, error) {
	if i < 0 || i >= len(ls.letters) {
		return 0, cryptors.Errorf(cryptors.ErrIndexOutOfRange,
			"letter index %d not in [0, %d)", i, len(ls.letters))
	}

	return ls.letters[i], nil
}

// At returns the rune at index i, which the caller has already range checked.
func (ls *LetterSet) At(i int) rune {
	return ls.letters[i]
}

// IndexOf returns the index of r, or -1 if r is not in the set.
func (ls *LetterSet) IndexOf(r rune) int {
	if i, ok := ls.index[r]; ok {
		return i
	}

	return -1
}

func (ls *LetterSet) Contains(r rune) bool {
	_, ok := ls.index[r]
	return ok
}

// Letters returns a copy of the letters in index order.
func (ls *LetterSet) Letters() []rune {
	res := make([]rune, len(ls.letters))
	copy(res, ls.letters)
	return res
}

// Hash returns a non-cryptographic hash of the letters and their order.
func (ls *LetterSet) Hash() uint64 {
	h := fnv.New64a()
	var b [4]byte

	for _, r := range ls.letters {
		b[0], b[1], b[2], b[3] = byte(r), byte(r>>8), byte(r>>16), byte(r>>24)
		h.Write(b[:])
	}

	return h.Sum64()
}

// Equal reports whether both sets hold the same letters in the same order.
func (ls *LetterSet) Equal(other *LetterSet) bool {
	if ls == nil || other == nil {
		return ls == other
	}

	if len(ls.letters) != len(other.letters) {
		return false
	}

	for i, r := range ls.letters {
		if other.letters[i] != r {
			return false
		}
	}

	return true
}

func (ls *LetterSet) String() string {
	return string(ls.letters)
}
