/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/bgallie/steckr/engine"
	"github.com/bgallie/steckr/keyfile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	keySeed     int64
	forceWrite  bool
	fullKeyFile bool
	rotorList   string
)

// keygenCmd represents the keygen command
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a steckr key file",
	Long: `Generate a key file holding a random plugboard and random rotor keys.
The letter set and unmapped character policy come from the --letters, --unmapped,
--invalid and --rotate-on-invalid flags.  The key file is written to --keyfile.`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(keygen(appFs, defaultKeyFile()))
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().Int64VarP(&keySeed, "seed", "s", 0, "seed for the random key (default is the current time)")
	keygenCmd.Flags().BoolVarP(&forceWrite, "force", "f", false, "overwrite an existing key file")
	keygenCmd.Flags().BoolVar(&fullKeyFile, "full", false, "write the plugboard and rotor keys out in full instead of as a seed and table indices")
	keygenCmd.Flags().StringVar(&rotorList, "keys", "", "comma separated rotor key primes to use instead of random ones")
}

// newKeyDocument builds a random key document from rng using the letter set
// and policy flags.
func newKeyDocument(rng *rand.Rand) (*keyfile.Document, error) {
	policy := policyArgs()
	doc := &keyfile.Document{
		Letters:          policy.Letters.String(),
		Unmapped:         policy.Unmapped.String(),
		InvalidCharacter: string(policy.InvalidCharacter),
		RotateOnInvalid:  policy.RotateOnInvalid,
	}

	seed := rng.Int63()
	doc.PlugboardSeed = &seed

	if rotorList != "" {
		keys, err := keyfile.Ints(rotorList)
		if err != nil {
			return nil, err
		}
		doc.Rotors = keys
	} else {
		if rotorCount < 1 {
			return nil, fmt.Errorf("--rotors must be at least 1, not %d", rotorCount)
		}
		doc.RotorIndices = make([]int, rotorCount)
		for i := range doc.RotorIndices {
			doc.RotorIndices[i] = rng.Intn(rotorkeys.TotalKeyCount())
		}
	}

	// Decode validates the document.
	args, err := keyfile.Decode(doc)
	if err != nil {
		return nil, err
	}

	if fullKeyFile {
		return keyfile.Encode(args)
	}

	return doc, nil
}

func keygen(fs afero.Fs, path string) error {
	if keyfile.Exists(fs, path) && !forceWrite {
		return fmt.Errorf("key file %s exists, use --force to replace it", path)
	}

	if keySeed == 0 {
		keySeed = time.Now().UnixNano()
	}

	doc, err := newKeyDocument(rand.New(rand.NewSource(keySeed)))
	if err != nil {
		return err
	}

	if err := keyfile.Write(fs, path, doc); err != nil {
		return err
	}

	args, err := keyfile.Load(fs, path)
	if err != nil {
		return err
	}

	m, err := engine.New(args)
	if err != nil {
		return err
	}

	notepad.INFO.Printf("Key file seed %d", keySeed)
	fmt.Fprintf(os.Stderr, "Wrote key file %s (%d rotors, key id %s)\n", path, args.RotorKeys.Count(), m.CounterKey())
	return nil
}
