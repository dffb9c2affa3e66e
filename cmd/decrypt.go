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
	"io"
	"os"
	"path/filepath"

	"github.com/bgallie/steckr/armor"
	"github.com/bgallie/steckr/engine"
	"github.com/spf13/cobra"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [secret]",
	Short: "Decrypt a steckr encrypted file.",
	Long:  `Decrypt text encrypted by the steckr plugboard and rotor machine described by the key file or the day key.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:        "decode [secret]",
	Short:      "Decode a steckr encoded file.",
	Long:       `[DEPRECATED] Decode text encoded by the steckr plugboard and rotor machine.`,
	Deprecated: "use \"decrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(decodeCmd)
}

// outputName strips any directory part from the file name recorded in a
// ciphertext header, so decrypt only ever writes to the current directory.
func outputName(hdrName string) string {
	if len(hdrName) == 0 {
		return ""
	}

	name := filepath.Base(filepath.FromSlash(hdrName))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}

	return name
}

func decrypt(args []string) {
	machine := initMachine(args)
	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	body, hdr, err := armor.Unwrap(fin)
	cobra.CheckErr(err)
	// Restore the original file name if the output file was not named.
	if name := outputName(hdr.Name); len(outputFileName) == 0 && len(name) > 0 && len(text) == 0 {
		fout, err = os.Create(name)
		cobra.CheckErr(err)
		defer fout.Close()
	}
	notepad.INFO.Printf("Starting at rotor index %s", hdr.Index)
	machine.SetIndex(hdr.Index)
	_, err = io.Copy(fout, engine.CipherReader(machine, body, true))
	checkError(err)
}
