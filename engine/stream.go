package engine

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/bgallie/steckr/cryptors"
)

// EncipherStream enciphers every rune received on left and sends the result
// on the returned channel, closing it when left is closed.  The machine
// belongs to the stream's goroutine until then.  The rotors are not reset
// at the end, so the caller can read Index before calling Reset.
func (m *Machine) EncipherStream(left <-chan rune) <-chan rune {
	return m.stream(left, m.EncipherRune)
}

// DecipherStream is the deciphering counterpart of EncipherStream.
func (m *Machine) DecipherStream(left <-chan rune) <-chan rune {
	return m.stream(left, m.DecipherRune)
}

func (m *Machine) stream(left <-chan rune, f func(rune, bool) (rune, bool)) <-chan rune {
	right := make(chan rune)
	go func() {
		defer close(right)
		for c := range left {
			if r, ok := f(c, false); ok {
				right <- r
			}
		}
	}()

	return right
}

// CipherReader returns a reader that yields rdr's text enciphered (or
// deciphered when decipher is set) by m through a stream.  Read errors
// other than io.EOF are passed on to the reader, as is input that is not
// valid UTF-8.
func CipherReader(m *Machine, rdr io.Reader, decipher bool) *io.PipeReader {
	pRdr, pWrtr := io.Pipe()
	left := make(chan rune)
	var right <-chan rune
	if decipher {
		right = m.DecipherStream(left)
	} else {
		right = m.EncipherStream(left)
	}

	errc := make(chan error, 1)
	go func() {
		defer close(left)
		bRdr := bufio.NewReader(rdr)
		var offset int64
		for {
			c, size, err := bRdr.ReadRune()
			if err != nil {
				if err != io.EOF {
					errc <- err
				}
				return
			}
			if c == utf8.RuneError && size == 1 {
				errc <- cryptors.Errorf(cryptors.ErrInvalidArgument,
					"input is not valid UTF-8 at byte %d", offset)
				return
			}
			offset += int64(size)
			left <- c
		}
	}()

	go func() {
		bWrtr := bufio.NewWriter(pWrtr)
		for r := range right {
			if _, err := bWrtr.WriteRune(r); err != nil {
				pWrtr.CloseWithError(err)
				// Drain so the stream goroutine can finish.
				for range right {
				}
				return
			}
		}

		err := bWrtr.Flush()
		if err == nil {
			select {
			case err = <-errc:
			default:
			}
		}
		pWrtr.CloseWithError(err)
	}()

	return pRdr
}
