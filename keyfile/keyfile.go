// Package keyfile reads and writes steckr key files.  A key file is a YAML
// (or any other viper supported format) document that names the letter set,
// the plugboard, the rotor keys and the unmapped character policy:
//
//	letters: ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	plugboardseed: 1234          # or plugboard: [3, 0, 1, ...]
//	rotors: [3, 5, 7]            # or rotorindices: [0, 1, 2]
//	unmapped: keep               # keep, remove or makeinvalid
//	invalidcharacter: "?"
//	rotateoninvalid: false
package keyfile

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bgallie/steckr/cryptors"
	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/cryptors/permutator"
	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/bgallie/steckr/engine"
	"github.com/friendsofgo/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Document is the decoded form of a key file.
type Document struct {
	Letters          string `mapstructure:"letters"`
	Plugboard        []int  `mapstructure:"plugboard"`
	PlugboardSeed    *int64 `mapstructure:"plugboardseed"`
	Rotors           []int  `mapstructure:"rotors"`
	RotorIndices     []int  `mapstructure:"rotorindices"`
	Unmapped         string `mapstructure:"unmapped"`
	InvalidCharacter string `mapstructure:"invalidcharacter"`
	RotateOnInvalid  bool   `mapstructure:"rotateoninvalid"`
}

// Read decodes the key file at path on fs.
func Read(fs afero.Fs, path string) (*Document, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetDefault("invalidcharacter", string(cryptors.DefaultInvalidCharacter))

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading key file %s", path)
	}

	var doc Document
	err := v.Unmarshal(&doc, viper.DecodeHook(mapstructure.StringToSliceHookFunc(",")))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding key file %s", path)
	}

	return &doc, nil
}

// Load reads the key file at path and turns it into SetupArgs.
func Load(fs afero.Fs, path string) (*engine.SetupArgs, error) {
	doc, err := Read(fs, path)
	if err != nil {
		return nil, err
	}

	args, err := Decode(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", path)
	}

	return args, nil
}

// Decode builds SetupArgs from doc.  A missing plugboard is the identity
// permutation; missing rotor keys are an error.
func Decode(doc *Document) (*engine.SetupArgs, error) {
	if doc == nil {
		return nil, cryptors.Errorf(cryptors.ErrNullConfiguration, "no key document")
	}

	args := engine.NewSetupArgs()
	var err error

	if args.Letters, err = letterset.FromString(doc.Letters); err != nil {
		return nil, err
	}

	n := args.Letters.Count()
	switch {
	case len(doc.Plugboard) > 0:
		args.Steckering, err = permutator.NewSteckering(n, doc.Plugboard)
	case doc.PlugboardSeed != nil:
		args.Steckering, err = permutator.NewRandomSteckering(n, *doc.PlugboardSeed)
	default:
		args.Steckering = permutator.Identity(n)
	}
	if err != nil {
		return nil, err
	}

	switch {
	case len(doc.Rotors) > 0:
		args.RotorKeys, err = rotorkeys.New(doc.Rotors...)
	case len(doc.RotorIndices) > 0:
		args.RotorKeys, err = rotorkeys.FromIndices(doc.RotorIndices...)
	default:
		err = cryptors.Errorf(cryptors.ErrNullConfiguration, "no rotors or rotorindices given")
	}
	if err != nil {
		return nil, err
	}

	if doc.Unmapped != "" {
		if args.Unmapped, err = engine.ParseUnmappedHandling(doc.Unmapped); err != nil {
			return nil, err
		}
	}
	args.RotateOnInvalid = doc.RotateOnInvalid
	if doc.InvalidCharacter != "" {
		if utf8.RuneCountInString(doc.InvalidCharacter) != 1 {
			return nil, cryptors.Errorf(cryptors.ErrInvalidArgument,
				"invalidcharacter %q must be a single character", doc.InvalidCharacter)
		}
		args.InvalidCharacter, _ = utf8.DecodeRuneInString(doc.InvalidCharacter)
	}

	if err := args.Validate(); err != nil {
		return nil, err
	}

	return args, nil
}

// Encode is the inverse of Decode.  The plugboard is always written out in
// full.
func Encode(args *engine.SetupArgs) (*Document, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	return &Document{
		Letters:          args.Letters.String(),
		Plugboard:        args.Steckering.Values(),
		Rotors:           args.RotorKeys.Keys(),
		Unmapped:         args.Unmapped.String(),
		InvalidCharacter: string(args.InvalidCharacter),
		RotateOnInvalid:  args.RotateOnInvalid,
	}, nil
}

// Write stores doc at path on fs.  The file format follows the extension.
func Write(fs afero.Fs, path string, doc *Document) error {
	v := viper.New()
	v.SetFs(fs)
	v.Set("letters", doc.Letters)
	if len(doc.Plugboard) > 0 {
		v.Set("plugboard", doc.Plugboard)
	}
	if doc.PlugboardSeed != nil {
		v.Set("plugboardseed", *doc.PlugboardSeed)
	}
	if len(doc.Rotors) > 0 {
		v.Set("rotors", doc.Rotors)
	}
	if len(doc.RotorIndices) > 0 {
		v.Set("rotorindices", doc.RotorIndices)
	}
	if doc.Unmapped != "" {
		v.Set("unmapped", doc.Unmapped)
	}
	v.Set("invalidcharacter", doc.InvalidCharacter)
	v.Set("rotateoninvalid", doc.RotateOnInvalid)

	if err := fs.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrapf(err, "writing key file %s", path)
	}

	return fs.Chmod(path, 0600)
}

// Save encodes args and writes them to path on fs.
func Save(fs afero.Fs, path string, args *engine.SetupArgs) error {
	doc, err := Encode(args)
	if err != nil {
		return err
	}

	return Write(fs, path, doc)
}

// Exists reports whether a key file is present at path.
func Exists(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Ints coerces a flag or config value such as "3,5,7" or []interface{}{3, 5}
// to a list of ints.
func Ints(v interface{}) ([]int, error) {
	if s, ok := v.(string); ok {
		return cast.ToIntSliceE(strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' '
		}))
	}

	return cast.ToIntSliceE(v)
}
