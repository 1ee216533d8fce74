// Command broaden applies macroturbulent, rotational and instrumental
// broadening to stellar spectra.
//
// Usage:
//
//	broaden apply [flags] <input> <output>
//	broaden synth [flags] <model.yaml> <output>
//	broaden kernel [flags] macroturbulence|rotation
//
// Spectra are whitespace-separated "waveobs flux [err]" text files;
// names ending in .gz are gzip-compressed. Broadening parameters come from
// flags, STELLAR_* environment variables or a YAML file given with
// --config.
//
// Examples:
//
//	broaden apply --vmac 4 --vsini 12 --resolution 47000 sun.txt sun_broad.txt.gz
//	broaden apply --resolution 20000 --from-resolution 115000 harps.txt degraded.txt
//	broaden synth --start 5000 --end 5010 --step 0.01 --vsini 20 lines.yaml out.txt
//	broaden kernel --vsini 30 --wave 6000 rotation
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
