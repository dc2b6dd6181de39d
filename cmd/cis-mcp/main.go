package main

import (
	"fmt"
	"os"

	"cis-mcp/cmd/cis-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
