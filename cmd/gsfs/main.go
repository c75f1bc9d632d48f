// Package main provides the entry point for the gsfs CLI.
package main

import (
	"os"

	"github.com/hupe1980/gsfs/cmd/gsfs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
