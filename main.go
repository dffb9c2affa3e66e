// This is free and unencumbered software released into the public domain.
// See the UNLICENSE file for details.

// Package main - steckr is a rotor cipher in the manner of the historical
// rotor machines: a plugboard and a chain of odometer stepped rotors over a
// configurable alphabet, with rotor wiring derived from small prime keys.
package main

import "github.com/bgallie/steckr/cmd"

func main() {
	cmd.Execute()
}
