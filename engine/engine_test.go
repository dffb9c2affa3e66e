package engine

import (
	"io"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/permutator"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upper = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// setup returns SetupArgs over alphabet with a seeded plugboard.
func setup(t *testing.T, alphabet string, seed int64, keys ...int) *SetupArgs {
	t.Helper()
	ls, err := letterset.FromString(alphabet)
	require.NoError(t, err)
	st, err := permutator.NewRandomSteckering(ls.Count(), seed)
	require.NoError(t, err)
	rk, err := rotorkeys.New(keys...)
	require.NoError(t, err)

	args := NewSetupArgs()
	args.Letters, args.Steckering, args.RotorKeys = ls, st, rk
	return args
}

func machine(t *testing.T, args *SetupArgs) *Machine {
	t.Helper()
	m, err := New(args)
	require.NoError(t, err)
	return m
}

// randomText draws n runes from alphabet.
func randomText(rng *rand.Rand, alphabet string, n int) string {
	letters := []rune(alphabet)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(letters[rng.Intn(len(letters))])
	}
	return sb.String()
}

func TestConcreteScenario(t *testing.T) {
	ls, _ := letterset.FromString(upper)
	rk, _ := rotorkeys.New(3)
	args := NewSetupArgs()
	args.Letters = ls
	args.Steckering = permutator.Identity(26)
	args.RotorKeys = rk

	m1 := machine(t, args)
	c := m1.Encipher("A")
	require.Len(t, []rune(c), 1)

	m2 := machine(t, args)
	assert.Equal(t, "A", m2.Decipher(c))
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabets := []string{upper, "abcdefghijklmnopqrstuvwxyz0123456789 .,", "αβγδε", "01"}

	for _, alphabet := range alphabets {
		m := machine(t, setup(t, alphabet, 99, 3, 5, 7, 3))
		for i := 0; i < 20; i++ {
			s := randomText(rng, alphabet, rng.Intn(300))
			c := m.Encipher(s)
			assert.Equal(t, s, m.Decipher(c), "alphabet %q", alphabet)
			assert.Equal(t, s, m.Encipher(m.Decipher(s)), "alphabet %q", alphabet)
		}
	}
}

func TestWholeStringCallsReset(t *testing.T) {
	m := machine(t, setup(t, upper, 5, 3, 5))
	first := m.Encipher("HELLOWORLD")
	assert.Equal(t, []int{0, 0}, m.Offsets())
	assert.Equal(t, first, m.Encipher("HELLOWORLD"))
	assert.NotEqual(t, "AAAAAA", m.Encipher("AAAAAA"))
}

func TestDeterminism(t *testing.T) {
	a := machine(t, setup(t, upper, 17, 11, 13, 17))
	b := machine(t, setup(t, upper, 17, 11, 13, 17))
	text := randomText(rand.New(rand.NewSource(3)), upper, 2000)

	assert.Equal(t, a.Encipher(text), b.Encipher(text))
	assert.Equal(t, a.CounterKey(), b.CounterKey())

	c := machine(t, setup(t, upper, 17, 13, 11, 17))
	assert.NotEqual(t, a.Encipher(text), c.Encipher(text))
	assert.NotEqual(t, a.CounterKey(), c.CounterKey())
}

func TestBijectiveAtFixedOffsets(t *testing.T) {
	m := machine(t, setup(t, upper, 8, 3, 5, 7))

	for step := 0; step < 40; step++ {
		seen := make(map[rune]bool)
		for _, c := range upper {
			r, ok := m.EncipherRune(c, true)
			require.True(t, ok)
			seen[r] = true
		}
		assert.Len(t, seen, 26, "step %d", step)
		m.EncipherRune('A', false)
	}
}

func TestRuneCallsKeepState(t *testing.T) {
	m := machine(t, setup(t, upper, 2, 3, 5))
	var sb strings.Builder
	for _, c := range "STREAMING" {
		r, ok := m.EncipherRune(c, false)
		require.True(t, ok)
		sb.WriteRune(r)
	}
	assert.Equal(t, []int{9, 0}, m.Offsets())

	m.Reset()
	assert.Equal(t, []int{0, 0}, m.Offsets())
	assert.Equal(t, sb.String(), m.Encipher("STREAMING"))

	m.DecipherRune('Q', true)
	assert.Equal(t, []int{0, 0}, m.Offsets())
}

func TestUnmappedKeep(t *testing.T) {
	m := machine(t, setup(t, upper, 4, 3))
	c := m.Encipher("HELLO, WORLD!")
	assert.Len(t, []rune(c), 13)
	assert.Equal(t, ',', []rune(c)[5])
	assert.Equal(t, ' ', []rune(c)[6])
	assert.Equal(t, '!', []rune(c)[12])
	assert.Equal(t, "HELLO, WORLD!", m.Decipher(c))
}

func TestUnmappedRemove(t *testing.T) {
	args := setup(t, upper, 4, 3)
	args.Unmapped = Remove
	m := machine(t, args)

	c := m.Encipher("HELLO, WORLD!")
	assert.Len(t, []rune(c), 10)
	assert.Equal(t, "HELLOWORLD", m.Decipher(c))

	_, ok := m.EncipherRune('?', false)
	assert.False(t, ok)
}

func TestUnmappedMakeInvalid(t *testing.T) {
	args := setup(t, upper, 4, 3)
	args.Unmapped = MakeInvalid
	args.InvalidCharacter = '#'
	m := machine(t, args)

	c := []rune(m.Encipher("AB-C D"))
	assert.Len(t, c, 6)
	assert.Equal(t, '#', c[2])
	assert.Equal(t, '#', c[4])

	def := setup(t, upper, 4, 3)
	def.Unmapped = MakeInvalid
	r, ok := machine(t, def).EncipherRune('*', false)
	assert.True(t, ok)
	assert.Equal(t, cryptors.DefaultInvalidCharacter, r)
}

func TestRotateOnInvalid(t *testing.T) {
	const text, withDigit = "ABCDEFGHIJKLMNOP", "ABCD1EFGHIJKLMNOP"

	// strip drops the unmapped digit and the invalid character.
	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '1' || r == cryptors.DefaultInvalidCharacter {
				return -1
			}
			return r
		}, s)
	}

	for _, h := range []UnmappedHandling{Keep, Remove, MakeInvalid} {
		ref := []rune(machine(t, setup(t, upper, 6, 3, 5)).Encipher(text))

		still := setup(t, upper, 6, 3, 5)
		still.Unmapped = h
		assert.Equal(t, string(ref), strip(machine(t, still).Encipher(withDigit)), h.String())

		moving := setup(t, upper, 6, 3, 5)
		moving.Unmapped = h
		moving.RotateOnInvalid = true
		m := machine(t, moving)

		got := []rune(strip(m.Encipher(withDigit)))
		require.Len(t, got, len(ref), h.String())
		assert.Equal(t, ref[:4], got[:4], h.String())
		assert.NotEqual(t, ref[4:], got[4:], h.String())

		// A removed character leaves no trace for the decipher side to step on.
		if h != Remove {
			assert.Equal(t, text, strip(m.Decipher(m.Encipher(withDigit))), h.String())
		}
	}
}

func TestPeekOnInvalidDoesNotRotate(t *testing.T) {
	args := setup(t, upper, 6, 3)
	args.RotateOnInvalid = true
	m := machine(t, args)

	m.EncipherRune('1', true)
	assert.Equal(t, []int{0}, m.Offsets())
	m.EncipherRune('1', false)
	assert.Equal(t, []int{1}, m.Offsets())
}

func TestIndex(t *testing.T) {
	m := machine(t, setup(t, upper, 3, 3, 5))
	assert.Equal(t, big.NewInt(26*26), m.MaximalStates())

	text := "THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG"
	for _, c := range text[:30] {
		m.EncipherRune(c, false)
	}
	assert.Equal(t, int64(30), m.Index().Int64())
	assert.Equal(t, []int{4, 1}, m.Offsets())

	var want strings.Builder
	for _, c := range text[30:] {
		r, _ := m.EncipherRune(c, false)
		want.WriteRune(r)
	}

	other := machine(t, setup(t, upper, 3, 3, 5))
	other.SetIndex(big.NewInt(30))
	var got strings.Builder
	for _, c := range text[30:] {
		r, _ := other.EncipherRune(c, false)
		got.WriteRune(r)
	}
	assert.Equal(t, want.String(), got.String())
}

func TestStream(t *testing.T) {
	m := machine(t, setup(t, upper, 12, 7, 11))
	text := "ATTACK AT DAWN"

	left := make(chan rune)
	right := m.EncipherStream(left)
	go func() {
		for _, c := range text {
			left <- c
		}
		close(left)
	}()

	var sb strings.Builder
	for r := range right {
		sb.WriteRune(r)
	}

	// Spaces are kept without stepping the rotors.
	assert.Equal(t, int64(len(text)-strings.Count(text, " ")), m.Index().Int64())
	m.Reset()
	assert.Equal(t, m.Encipher(text), sb.String())
}

func TestCipherReader(t *testing.T) {
	m := machine(t, setup(t, "abcdefghijklmnopqrstuvwxyz ", 12, 7, 11, 13))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 50)

	out, err := io.ReadAll(CipherReader(m, strings.NewReader(text), false))
	require.NoError(t, err)
	m.Reset()

	back, err := io.ReadAll(CipherReader(m, strings.NewReader(string(out)), true))
	require.NoError(t, err)
	assert.Equal(t, text, string(back))
}

func TestCipherReaderRejectsInvalidUTF8(t *testing.T) {
	m := machine(t, setup(t, upper, 12, 7, 11))

	_, err := io.ReadAll(CipherReader(m, strings.NewReader("AB\xffCD"), false))
	assert.ErrorIs(t, err, cryptors.ErrInvalidArgument)

	m.Reset()
	_, err = io.ReadAll(CipherReader(m, strings.NewReader("ABCD\xc3"), true))
	assert.ErrorIs(t, err, cryptors.ErrInvalidArgument)

	// An encoded U+FFFD is valid input and is kept.
	m.Reset()
	text := "AB�CD"
	out, err := io.ReadAll(CipherReader(m, strings.NewReader(text), false))
	require.NoError(t, err)
	m.Reset()
	back, err := io.ReadAll(CipherReader(m, strings.NewReader(string(out)), true))
	require.NoError(t, err)
	assert.Equal(t, text, string(back))
}
