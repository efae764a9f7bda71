// Package main provides the crudshell CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/crudshell/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
