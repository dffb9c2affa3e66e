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
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgallie/steckr/cryptors/letterset"
	"github.com/bgallie/steckr/daykey"
	"github.com/bgallie/steckr/engine"
	"github.com/bgallie/steckr/keyfile"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile         string
	keyFileName     string
	dayName         string
	letters         string
	unmapped        string
	invalidChar     string
	rotateOnInvalid bool
	rotorCount      int
	inputFileName   string
	outputFileName  string
	text            string
	verbose         bool
)

var (
	appFs   = afero.NewOsFs()
	notepad = jww.NewNotepad(jww.LevelWarn, jww.LevelError, os.Stderr, ioutil.Discard, "steckr", log.Lmsgprefix)
)

var (
	GitCommit  string = "not set"
	GitBranch  string = "not set"
	GitState   string = "not set"
	GitSummary string = "not set"
	BuildDate  string = "not set"
	Version    string = "dev"
)

const (
	steckrConfigName = ".steckr"
	steckrKeyFile    = "key.yaml"
	steckrSuffix     = ".stk"
	defaultLetters   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "steckr",
	Short:   "A plugboard and prime keyed rotor cipher",
	Long:    `steckr enciphers and deciphers text with a plugboard and a chain of odometer stepped rotors whose wiring is derived from small prime keys.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.steckr.yaml)")
	rootCmd.PersistentFlags().StringVarP(&keyFileName, "keyfile", "k", "", "key file holding the letters, plugboard and rotor keys (default is $HOME/.steckr/key.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dayName, "day", "d", "", "derive the key for this day (eg. 2026-10-15) from the secret instead of reading a key file")
	rootCmd.PersistentFlags().StringVarP(&letters, "letters", "l", defaultLetters, "letter set used with --day")
	rootCmd.PersistentFlags().IntVarP(&rotorCount, "rotors", "r", 3, "number of rotors used with --day")
	rootCmd.PersistentFlags().StringVar(&unmapped, "unmapped", "keep", "handling of characters outside the letter set with --day: keep, remove or makeinvalid")
	rootCmd.PersistentFlags().StringVar(&invalidChar, "invalid", "", "replacement character for makeinvalid with --day (default U+FFFD)")
	rootCmd.PersistentFlags().BoolVar(&rotateOnInvalid, "rotate-on-invalid", false, "step the rotors on characters outside the letter set with --day")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	rootCmd.PersistentFlags().StringVarP(&text, "text", "t", "", "text to encrypt/decrypt instead of reading the input file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report what steckr is doing on stderr")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if verbose {
		notepad.SetStdoutThreshold(jww.LevelInfo)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".steckr" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(steckrConfigName)
	}

	viper.SetEnvPrefix("STECKR")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		notepad.INFO.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// getSecret obtains the secret used to derive a day key from either:
// 1. Arguments from the entered command line (least secure - not recommended)
// 2. The 'STECKR_SECRET' environment variable (less secure)
// 3. User input from the terminal (most secure)
func getSecret(args []string) []byte {
	var secret string
	if len(args) == 0 {
		if viper.IsSet("SECRET") {
			secret = viper.GetString("SECRET")
		} else if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintf(os.Stderr, "Enter the secret: ")
			byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
			cobra.CheckErr(err)
			fmt.Fprintln(os.Stderr, "")
			secret = string(byteSecret)
		}
	} else {
		secret = strings.Join(args, " ")
	}

	if len(secret) == 0 {
		cobra.CheckErr("You must supply a secret.")
	}

	return []byte(secret)
}

// defaultKeyFile returns the key file named on the command line, in the
// config file, or $HOME/.steckr/key.yaml, in that order.
func defaultKeyFile() string {
	if keyFileName != "" {
		return keyFileName
	}

	if viper.IsSet("keyfile") {
		return viper.GetString("keyfile")
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, steckrConfigName, steckrKeyFile)
}

// policyArgs returns SetupArgs holding the letter set and unmapped character
// policy given by the command line flags.
func policyArgs() *engine.SetupArgs {
	args := engine.NewSetupArgs()
	var err error

	args.Letters, err = letterset.FromString(letters)
	cobra.CheckErr(err)
	args.Unmapped, err = engine.ParseUnmappedHandling(unmapped)
	cobra.CheckErr(err)
	if invalidChar != "" {
		r := []rune(invalidChar)
		if len(r) != 1 {
			cobra.CheckErr(fmt.Sprintf("--invalid must be a single character, not %q", invalidChar))
		}
		args.InvalidCharacter = r[0]
	}
	args.RotateOnInvalid = rotateOnInvalid

	return args
}

// initMachine builds the cipher machine from either the day key or the key
// file.
func initMachine(args []string) *engine.Machine {
	var setup *engine.SetupArgs
	var err error

	if dayName != "" {
		day, err := daykey.ParseDay(dayName)
		cobra.CheckErr(err)
		setup, err = daykey.Derive(getSecret(args), day, policyArgs(), rotorCount)
		cobra.CheckErr(err)
		notepad.INFO.Printf("Using the day key for %s", day.Format("2006-01-02"))
	} else {
		kf := defaultKeyFile()
		setup, err = keyfile.Load(appFs, kf)
		cobra.CheckErr(err)
		notepad.INFO.Printf("Using key file %s", kf)
	}

	m, err := engine.New(setup)
	cobra.CheckErr(err)
	notepad.INFO.Printf("%d letters, rotor keys %v, %s states", m.Letters().Count(), setup.RotorKeys.Keys(), m.MaximalStates())
	return m
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
	Inline --text input always reads from the text and writes to stdout unless
	an output file is named.
*/
func getInputAndOutputFiles(encode bool) (io.Reader, *os.File) {
	var fin io.Reader
	var err error

	if len(text) > 0 {
		fin = strings.NewReader(text)
	} else if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if inputFileName == "-" || len(text) > 0 {
		fout = os.Stdout
	} else if encode {
		outputFileName = inputFileName + steckrSuffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		if strings.HasSuffix(inputFileName, steckrSuffix) {
			outputFileName = strings.TrimSuffix(inputFileName, steckrSuffix)
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		} else {
			fout = os.Stdout
		}
	}

	return fin, fout
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and reports them.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}

// writeConfig saves the viper settings, creating $HOME/.steckr.yaml on first use.
func writeConfig() error {
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}

	return viper.SafeWriteConfig()
}
