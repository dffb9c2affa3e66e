// Package daykey gives every calendar day its own steckr machine.  The
// plugboard and rotor keys for a day are derived from a shared secret and
// the date, so two parties holding the secret build the same machine for the
// same day without exchanging key files.
package daykey

import (
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/permutator"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/bgallie/steckr/engine"
	"github.com/friendsofgo/errors"
	"github.com/spf13/cast"
	"golang.org/x/crypto/blake2b"
)

const dayLayout = "2006-01-02"

// ParseDay converts v (a time.Time, a date string such as "2026-10-15", a
// unix time, ...) to midnight UTC of the date it names.
func ParseDay(v interface{}) (time.Time, error) {
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing day %v", v)
	}

	return Day(t), nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Derive fills in the plugboard and rotor keys of a copy of base for day.
// base supplies the letter set and the unmapped character policy.
func Derive(secret []byte, day time.Time, base *engine.SetupArgs, rotorCount int) (*engine.SetupArgs, error) {
	if base == nil || base.Letters == nil {
		return nil, cryptors.Errorf(cryptors.ErrNullConfiguration, "day keys need a letter set")
	}

	if len(secret) == 0 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "day keys need a secret")
	}

	if rotorCount < 1 {
		return nil, cryptors.Errorf(cryptors.ErrInvalidArgument, "rotor count %d is less than 1", rotorCount)
	}

	msg := make([]byte, 0, len(secret)+1+len(dayLayout))
	msg = append(msg, secret...)
	msg = append(msg, '|')
	msg = append(msg, Day(day).Format(dayLayout)...)
	sum := blake2b.Sum256(msg)

	args := *base
	var err error
	args.Steckering, err = permutator.NewRandomSteckering(base.Letters.Count(),
		int64(binary.BigEndian.Uint64(sum[0:8])))
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[8:16]))))
	indices := make([]int, rotorCount)
	for i := range indices {
		indices[i] = rng.Intn(rotorkeys.TotalKeyCount())
	}

	if args.RotorKeys, err = rotorkeys.FromIndices(indices...); err != nil {
		return nil, err
	}

	return &args, nil
}

// Cache builds one machine per day and hands the same machine back for
// later requests for that day.  The cache is safe for concurrent use; the
// machines it returns are not.
type Cache struct {
	mu         sync.Mutex
	secret     []byte
	base       engine.SetupArgs
	rotorCount int
	machines   map[time.Time]*engine.Machine
}

// NewCache returns an empty Cache for secret, base and rotorCount as Derive
// takes them.
func NewCache(secret []byte, base *engine.SetupArgs, rotorCount int) (*Cache, error) {
	if _, err := Derive(secret, time.Now(), base, rotorCount); err != nil {
		return nil, err
	}

	c := &Cache{
		secret:     append([]byte(nil), secret...),
		base:       *base,
		rotorCount: rotorCount,
		machines:   make(map[time.Time]*engine.Machine),
	}

	return c, nil
}

// Get returns the machine for day, building it on first use.
func (c *Cache) Get(day time.Time) (*engine.Machine, error) {
	d := Day(day)
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.machines[d]; ok {
		return m, nil
	}

	args, err := Derive(c.secret, d, &c.base, c.rotorCount)
	if err != nil {
		return nil, err
	}

	m, err := engine.New(args)
	if err != nil {
		return nil, err
	}

	c.machines[d] = m
	return m, nil
}

// Forget drops the machines for days before day.
func (c *Cache) Forget(day time.Time) {
	d := Day(day)
	c.mu.Lock()
	defer c.mu.Unlock()

	for k := range c.machines {
		if k.Before(d) {
			delete(c.machines, k)
		}
	}
}

// Len returns the number of cached machines.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.machines)
}
