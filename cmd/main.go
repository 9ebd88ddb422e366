package main

import (
	"fmt"
	"os"
)

// zkproof - CLI and API service proving base64 encoding and decoding in
// zero knowledge
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
