package main

import (
	"fmt"
	"os"

	"tableflip.dev/punch/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "punch: %v\n", err)
		os.Exit(1)
	}
}
