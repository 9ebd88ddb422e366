package main

import (
	"github.com/mynextid/zk-base64/cmd/zkproof"
	"github.com/spf13/cobra"
)

// Init the cmd
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zkproof",
		Short: "Zero-Knowledge base64 proofs",
		Long:  `Tools and an API for generating and verifying zero-knowledge proofs of base64 encoding and decoding`,
	}

	rootCmd.AddCommand(
		zkproof.NewServeCmd(),
		zkproof.NewCompileCmd(),
		zkproof.NewRunCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}
