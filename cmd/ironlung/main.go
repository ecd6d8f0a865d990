// Package main is the entry point for the ironlung CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ironlung: %v\n", err)
		os.Exit(1)
	}
}
