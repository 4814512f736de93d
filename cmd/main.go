// Package main provides the CLI entry point for mlog, a personal music
// listening tracker. Commands are grouped by what they manage:
// 1. artist - register and list artists
// 2. release - register and list releases of an artist
// 3. log - record, list, import and delete listens
package main

import (
	"fmt"
	"os"

	"music-log/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
