// Package main provides the dumpnav CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dumpnav/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
