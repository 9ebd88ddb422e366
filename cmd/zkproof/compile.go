package zkproof

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mynextid/zk-base64/server/api"
	"github.com/spf13/cobra"
)

type compileConfig struct {
	outputDir string
	circuits  []string
	curve     string
	force     bool
	compress  bool
}

func NewCompileCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile circuits and generate setup files",
		Long:  `Compile zero-knowledge circuits and generate constraint systems, proving keys, and verification keys. Compiling all circuits might take some time. List of circuits is available available at server/api/list.go`,
		Example: `  # Compile all circuits
  zkproof compile -o ./setup

  # Compile specific circuits
  zkproof compile -o ./setup -c base64-decode,base64-encode

  # Store zstd compressed setup files
  zkproof compile -o ./setup --compress
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.outputDir, "output", "o", "./setup", "Output directory for compiled circuits")
	cmd.Flags().StringSliceVarP(&cfg.circuits, "circuits", "c", []string{}, "Specific circuits to compile (comma-separated, empty = all)")
	cmd.Flags().StringVar(&cfg.curve, "curve", "bn254", "Elliptic curve (bn254)")
	cmd.Flags().BoolVarP(&cfg.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&cfg.compress, "compress", false, "Write zstd compressed setup files (.zst)")

	return cmd
}

func runCompile(cfg *compileConfig) error {
	if strings.ToLower(cfg.curve) != "bn254" {
		return fmt.Errorf("unsupported curve: %s", cfg.curve)
	}

	// Create output directory
	if err := os.MkdirAll(cfg.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	circuitsToCompile := cfg.circuits
	if len(circuitsToCompile) == 0 {
		for name := range api.CircuitList {
			circuitsToCompile = append(circuitsToCompile, name)
		}
		sort.Strings(circuitsToCompile)
	}

	fmt.Printf("\n==== Compiling %d circuits to %s====\n", len(circuitsToCompile), cfg.outputDir)

	for _, name := range circuitsToCompile {
		info, ok := api.CircuitList[name]
		if !ok {
			fmt.Printf("Circuit %s not found, skipping\n", name)
			continue
		}

		start := time.Now()
		fmt.Printf("Compiling %s...\n", name)

		// set the output dir
		info.Dir = cfg.outputDir
		ccsPath, pkPath, vkPath := info.SetupPaths(cfg.compress)

		// Check if files exist
		if !cfg.force && anyExists(ccsPath, pkPath, vkPath) {
			fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", name)
			continue
		}

		// compile the circuit
		if err := info.Compile(cfg.compress); err != nil {
			fmt.Printf("[X] Failed to compile %s: %v\n", name, err)
			continue
		}

		elapsed := time.Since(start)
		fmt.Printf("[OK] Compiled %s in %s\n", name, elapsed.Round(time.Second))
	}

	fmt.Println("\n==== Compilation complete ====")
	return nil
}

func anyExists(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
