// Command zeemanfit fits the Zeeman-split Hα triplet of white-dwarf spectra.
//
// Usage:
//
//	zeemanfit fit [flags] spectrum.dat
//	zeemanfit batch [flags] spectra/*.dat
//	zeemanfit compare --db results.sqlite --model lorentzian --param B
//	zeemanfit config init [path]
//	zeemanfit config show
package main

import "github.com/cwbudde/algo-zeeman/cmd/zeemanfit/cmd"

func main() {
	cmd.Execute()
}
