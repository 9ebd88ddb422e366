package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set at link time:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.buildDate=$(date -u +%FT%TZ)" ./cmd
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// buildInfo fills the values left empty by the linker from the module build info
func buildInfo() (v, c, built string) {
	v, c, built = version, commit, buildDate

	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if c == "" {
					c = s.Value
				}
			case "vcs.time":
				if built == "" {
					built = s.Value
				}
			}
		}
	}

	if v == "" {
		v = "(devel)"
	}
	if c == "" {
		c = "none"
	}
	if built == "" {
		built = "unknown"
	}
	return v, c, built
}

// NewVersionCmd returns the zkproof version cmd
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Print zkproof version information",
		Run: func(cmd *cobra.Command, args []string) {
			v, c, built := buildInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "zkproof\n")
			fmt.Fprintf(out, "  version: %s\n", v)
			fmt.Fprintf(out, "  commit:  %s\n", c)
			fmt.Fprintf(out, "  built:   %s\n", built)
		},
	}
}
