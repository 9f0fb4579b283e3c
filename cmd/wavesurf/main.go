// Command wavesurf renders wavesurfer.js audio players as HTML.
//
// Usage:
//
//	wavesurf render <audio> [--theme name] [--option key=value] [-o out.html]
//	wavesurf compare <label=audio>... [--columns n]
//	wavesurf themes [--use name]
//	wavesurf sync [--version v] [--download dir]
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-wavesurf/cmd/wavesurf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
