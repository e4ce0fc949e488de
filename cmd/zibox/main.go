// cmd/zibox/main.go
//
// Entry point for the zibox CLI. All command wiring lives in internal/cli;
// this file only maps a command error to the process exit code.

package main

import (
	"os"

	"github.com/yourusername/zibox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
