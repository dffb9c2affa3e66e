// Package armor wraps steckr ciphertext for transport and unwraps it again.
//
// Ciphertext is written either after a one line header,
//
//	+STECKR|<api level>|<file name>|<p|a>|<compressed>|<counter>
//
// with the body as plain text ('p') or ASCII85 lines ('a'), or as a PEM block
// whose headers carry the same fields.  Compressed bodies are flate encoded
// before armoring and are never plain.
package armor

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/bgallie/filters/ascii85"
	"github.com/bgallie/filters/flate"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/bgallie/steckr/cryptors"
	"github.com/friendsofgo/errors"
)

// Format selects how the ciphertext body is written.
type Format int

const (
	Plain Format = iota
	ASCII85
	PEM
)

const (
	headerTag = "+STECKR|"
	pemType   = "STECKR Enciphered Message"
)

// ErrApiLevel is returned by Unwrap for ciphertext written by an
// incompatible version.
var ErrApiLevel = errors.New("api level mismatch")

// Options control Wrap.
type Options struct {
	Format   Format
	Compress bool
	Name     string   // original file name, if any
	Index    *big.Int // rotor index the ciphertext starts at
}

// Header describes wrapped ciphertext.
type Header struct {
	ApiLevel   int
	Name       string
	Format     Format
	Compressed bool
	Index      *big.Int
}

// Wrap reads ciphertext from rdr and writes it to w in the form opts asks for.
func Wrap(w io.Writer, rdr io.Reader, opts Options) error {
	idx := opts.Index
	if idx == nil {
		idx = new(big.Int)
	}

	format := opts.Format
	if opts.Compress && format == Plain {
		format = ASCII85
	}

	var body io.Reader
	if opts.Compress {
		body = flate.ToFlate(rdr)
	} else {
		body = rdr
	}

	var err error
	switch format {
	case PEM:
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = make(map[string]string)
		blck.Headers["ApiLevel"] = strconv.Itoa(cryptors.ApiLevel)
		blck.Headers["Counter"] = idx.Text(10)
		if len(opts.Name) > 0 {
			blck.Headers["FileName"] = opts.Name
		}
		blck.Headers["Compression"] = fmt.Sprintf("%v", opts.Compress)
		_, err = io.Copy(w, pem.ToPem(bufio.NewReader(body), blck))
	case ASCII85:
		if err = writeHeader(w, "a", opts.Name, opts.Compress, idx); err == nil {
			_, err = io.Copy(w, lines.SplitToLines(ascii85.ToASCII85(body)))
		}
	default:
		if err = writeHeader(w, "p", opts.Name, opts.Compress, idx); err == nil {
			_, err = io.Copy(w, body)
		}
	}

	return errors.Wrap(err, "wrapping ciphertext")
}

func writeHeader(w io.Writer, enc, name string, compress bool, idx *big.Int) error {
	_, err := fmt.Fprintf(w, "%s%d|%s|%s|%v|%s\n", headerTag, cryptors.ApiLevel, name, enc, compress, idx.Text(10))
	return err
}

// Unwrap detects how rdr's ciphertext was wrapped and returns a reader of the
// bare ciphertext along with its header.  Input without a recognised header
// is treated as plain ciphertext starting at index 0.
func Unwrap(rdr io.Reader) (io.Reader, *Header, error) {
	bRdr := bufio.NewReader(rdr)
	hdr := &Header{ApiLevel: cryptors.ApiLevel, Index: new(big.Int)}

	if b, _ := bRdr.Peek(5); string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		hdr.Format = PEM
		hdr.Name = blck.Headers["FileName"]
		hdr.Compressed = blck.Headers["Compression"] == "true"
		if err := hdr.parse(blck.Headers["ApiLevel"], blck.Headers["Counter"]); err != nil {
			return nil, nil, err
		}

		if hdr.Compressed {
			return flate.FromFlate(pRdr), hdr, nil
		}
		return pRdr, hdr, nil
	}

	if b, _ := bRdr.Peek(len(headerTag)); string(b) != headerTag {
		return bRdr, hdr, nil
	}

	line, err := bRdr.ReadString('\n')
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading ciphertext header")
	}

	fields := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(fields) != 6 {
		return nil, nil, errors.Errorf("malformed ciphertext header %q", line)
	}

	hdr.Name = fields[2]
	hdr.Compressed = fields[4] == "true"
	if err := hdr.parse(fields[1], fields[5]); err != nil {
		return nil, nil, err
	}

	var body io.Reader = bRdr
	switch fields[3] {
	case "a":
		hdr.Format = ASCII85
		aRdr := ascii85.FromASCII85(lines.CombineLines(bRdr))
		if hdr.Compressed {
			return flate.FromFlate(aRdr), hdr, nil
		}
		body = aRdr
	case "p":
		if hdr.Compressed {
			return nil, nil, errors.Errorf("compressed ciphertext cannot be plain: %q", line)
		}
		hdr.Format = Plain
	default:
		return nil, nil, errors.Errorf("unknown ciphertext encoding %q", fields[3])
	}

	return body, hdr, nil
}

func (hdr *Header) parse(api, counter string) error {
	lvl, err := strconv.Atoi(api)
	if err != nil {
		lvl = -1
	}

	hdr.ApiLevel = lvl
	if lvl != cryptors.ApiLevel {
		return errors.Wrapf(ErrApiLevel, "file api level %d, steckr api level %d", lvl, cryptors.ApiLevel)
	}

	if counter == "" {
		return nil
	}

	if _, ok := hdr.Index.SetString(counter, 10); !ok {
		return errors.Errorf("bad counter %q in ciphertext header", counter)
	}

	return nil
}
