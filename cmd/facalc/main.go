// Command facalc is an interactive calculator for engineering-economy
// interest factors and general arithmetic.
package main

import (
	"log"
	"os"

	"facalc/internal/cli"
)

func main() {
	log.SetFlags(0)
	os.Exit(cli.Execute())
}
