// Package main is the entry point for the aegis CLI.
package main

import (
	"os"

	"github.com/aegis-privacy/aegis-desktop/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
