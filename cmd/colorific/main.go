// colorific - extract the main colours of an image
//
// colorific reports a small palette of perceptually distinct, saturated
// colours from an image, and its background colour when one stands out.
package main

import (
	"os"

	"github.com/jmylchreest/colorific/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
