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
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgallie/steckr/armor"
	"github.com/bgallie/steckr/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
	cnt         string
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [secret]",
	Short: "Encrypt plaintext using steckr",
	Long:  `Encrypt plaintext with the steckr plugboard and rotor machine described by the key file or the day key.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:        "encode [secret]",
	Short:      "Encode plaintext using steckr",
	Long:       `[DEPRECATED] Encode plaintext with the steckr plugboard and rotor machine.`,
	Deprecated: "use \"encrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(encodeCmd)
	for _, c := range []*cobra.Command{encryptCmd, encodeCmd} {
		c.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
		c.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
		c.Flags().BoolVarP(&compression, "compress", "c", false, "compress the ciphertext using flate (implies ASCII85 unless PEM is used)")
		c.Flags().StringVarP(&cnt, "count", "n", "", `initial rotor count
The inital rotor count can be given as a fraction (eg. 1/3 or 1/2) of the number of rotor states before the key repeats.
The inital rotor count is only effective on the first use of the key.`)
	}
}

// parseCount converts the --count argument into a rotor index.  cnt can be
// a number or a fraction such as "1/2", "2/3", or "3/4".  If it is a
// fraction, the index is the maximal states of the machine multiplied by the
// fraction.
func parseCount(cnt string, maximalStates *big.Int) (*big.Int, error) {
	if len(cnt) == 0 {
		return new(big.Int), nil
	}

	flds := strings.Split(cnt, "/")
	switch len(flds) {
	case 1:
		iCnt, good := new(big.Int).SetString(cnt, 10)
		if !good {
			return nil, fmt.Errorf("failed converting the count to a big.Int: [%s]", cnt)
		}
		return iCnt, nil
	case 2:
		m := new(big.Int).Set(maximalStates)
		a, good := new(big.Int).SetString(flds[0], 10)
		if !good {
			return nil, fmt.Errorf("failed converting the numerator to a big.Int: [%s]", flds[0])
		}
		b, good := new(big.Int).SetString(flds[1], 10)
		if !good || b.Sign() == 0 {
			return nil, fmt.Errorf("failed converting the denominator to a big.Int: [%s]", flds[1])
		}
		return m.Div(m.Mul(m, a), b), nil
	default:
		return nil, fmt.Errorf("incorrect initial count: [%s]", cnt)
	}
}

func encrypt(args []string) {
	machine := initMachine(args)
	iCnt, err := parseCount(cnt, machine.MaximalStates())
	cobra.CheckErr(err)
	// Read in the saved count for this key so a rotor position is never
	// used twice.
	mKey := fmt.Sprintf("counters.%s", machine.CounterKey())
	if viper.IsSet(mKey) {
		savedCnt := viper.GetString(mKey)
		_, ok := iCnt.SetString(savedCnt, 10)
		if !ok {
			cobra.CheckErr(fmt.Sprintf("Failed to convert the saved count to a big.Int:\n\t[%s]\n", savedCnt))
		}
		if cnt != "" {
			fmt.Fprintln(os.Stderr, "Ignoring the count argument - using the value from the saved count.")
		}
	}
	// Now we can set the index of the cipher machine.
	machine.SetIndex(iCnt)
	notepad.INFO.Printf("Starting at rotor index %s", machine.Index())
	opts := armor.Options{Compress: compression, Index: machine.Index()}
	switch {
	case usePem:
		opts.Format = armor.PEM
	case useASCII85:
		opts.Format = armor.ASCII85
	}
	if len(text) == 0 && len(inputFileName) > 0 && inputFileName != "-" {
		opts.Name = filepath.Base(inputFileName)
	}
	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()
	checkError(armor.Wrap(fout, engine.CipherReader(machine, fin, false), opts))
	notepad.INFO.Printf("Finished at rotor index %s", machine.Index())
	viper.Set(mKey, machine.Index().Text(10))
	cobra.CheckErr(writeConfig())
}
