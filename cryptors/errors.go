package cryptors

import (
	"github.com/friendsofgo/errors"
)

// Configuration error kinds.  Every constructor in steckr wraps one of these,
// so callers can test the kind with errors.Is.
var (
	ErrNullConfiguration  = errors.New("null configuration")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDuplicateElement   = errors.New("duplicate element")
	ErrLengthMismatch     = errors.New("length mismatch")
	ErrInvalidPermutation = errors.New("invalid permutation")
	ErrInvalidRotorKey    = errors.New("invalid rotor key")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidEnumValue   = errors.New("invalid enum value")
)

// Errorf wraps kind with a formatted message and a stack trace.
func Errorf(kind error, format string, args ...interface{}) error {
	return errors.Wrapf(kind, format, args...)
}
