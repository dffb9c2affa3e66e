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
	"io"
	"os"

	"github.com/bgallie/steckr/cryptors/rotorkeys"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

// primesCmd represents the primes command
var primesCmd = &cobra.Command{
	Use:   "primes [prime...]",
	Short: "List the rotor key table",
	Long: `List every prime usable as a rotor key together with its index in the key table.
Given primes as arguments, print only their indices.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listPrimes(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(primesCmd)
}

func listPrimes(w io.Writer, args []string) error {
	if len(args) == 0 {
		for i := 0; i < rotorkeys.TotalKeyCount(); i++ {
			k, _ := rotorkeys.KeyAt(i)
			sep := "\t"
			if i%8 == 7 || i == rotorkeys.TotalKeyCount()-1 {
				sep = "\n"
			}
			fmt.Fprintf(w, "%3d:%-4d%s", i, k, sep)
		}
		return nil
	}

	for _, a := range args {
		p, err := cast.ToIntE(a)
		if err != nil {
			return fmt.Errorf("%q is not a number", a)
		}

		idx := rotorkeys.IndexOfKey(p)
		if idx < 0 {
			return fmt.Errorf("%d is not a rotor key", p)
		}
		fmt.Fprintf(w, "%d\t%d\n", p, idx)
	}

	return nil
}
