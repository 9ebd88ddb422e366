package zkproof

import (
	"fmt"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/math/uints"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
	"github.com/spf13/cobra"
)

type runConfig struct {
	input   string
	backend string
	url     bool
}

func NewRunCmd() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prove and verify the decoding of a base64 string",
		Long:  `Build a decode circuit sized to the input, print its statistics and time compilation, setup, proving and verification. The base64 string is the secret input, the decoded bytes are public.`,
		Example: `  # Decode the built-in 44 character sample
  zkproof run

  # Use the PLONK backend with a custom input
  zkproof run --backend plonk --input TWFueQ==`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.input, "input", "i", "7xQMDuoVVU4m0W0WRVSrVXMeGSIASsnucK9dJsrc+vU=", "Base64 string to decode")
	cmd.Flags().StringVarP(&cfg.backend, "backend", "b", "groth16", "Proving backend (groth16, plonk)")
	cmd.Flags().BoolVar(&cfg.url, "url", false, "Use the base64url alphabet")

	return cmd
}

func runDemo(cfg *runConfig) error {
	enc := common.StdEncoding
	if cfg.url {
		enc = common.URLEncoding
	}

	input := []byte(cfg.input)
	if err := common.ValidateBase64(enc, input); err != nil {
		return err
	}
	decoded, err := common.NativeDecode(enc, input, common.DecodedLen(input))
	if err != nil {
		return err
	}

	fmt.Printf("Decoding %d %s characters to %d bytes\n", len(input), enc.Name, len(decoded))

	template, assignment := decodeCircuits(cfg.url, input, decoded)

	var timings common.Timings
	switch strings.ToLower(cfg.backend) {
	case "groth16":
		start := time.Now()
		ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, template)
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}
		common.PrintCircuitStats(ccs)

		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		fmt.Printf("\ncompile: %v\n", time.Since(start))

		timings, err = common.ProveAndVerify(assignment, ccs, pk, vk)
		if err != nil {
			return err
		}
	case "plonk":
		timings, err = common.ProveAndVerifyPlonk(template, assignment)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown backend: %s", cfg.backend)
	}

	timings.Print()
	fmt.Printf("\nDecoded: %x\n", decoded)
	return nil
}

func decodeCircuits(url bool, input, decoded []byte) (template, assignment frontend.Circuit) {
	if url {
		return &cb64.CircuitDecodeURL{
				Encoded: make([]uints.U8, len(input)),
				Decoded: make([]uints.U8, len(decoded)),
			}, &cb64.CircuitDecodeURL{
				Encoded: common.BytesToU8Array(input),
				Decoded: common.BytesToU8Array(decoded),
			}
	}
	return &cb64.CircuitDecode{
			Encoded: make([]uints.U8, len(input)),
			Decoded: make([]uints.U8, len(decoded)),
		}, &cb64.CircuitDecode{
			Encoded: common.BytesToU8Array(input),
			Decoded: common.BytesToU8Array(decoded),
		}
}
