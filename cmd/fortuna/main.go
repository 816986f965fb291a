// Package main is the CLI entry point for the fortuna build driver.
package main

import (
	"os"

	"github.com/fortuna-build/fortuna/internal/cli"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Version = version
	os.Exit(cli.Execute())
}
