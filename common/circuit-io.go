package common

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks setup files stored as zstd frames
const CompressedExt = ".zst"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Save compiled circuit and keys. Paths ending in CompressedExt are written
// zstd compressed.
func SetupAndSave(circuitTemplate frontend.Circuit, ccsPath, pkPath, vkPath string) error {
	fmt.Println("\n--- Compiling Circuit ---")
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, circuitTemplate)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Circuit compiled: %d constraints\n", ccs.GetNbConstraints())

	// Save compiled circuit
	if err := writeSetupFile(ccsPath, ccs); err != nil {
		return err
	}

	fmt.Println("\n--- Running Setup ---")
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return err
	}

	// Save proving key
	if err := writeSetupFile(pkPath, pk); err != nil {
		return err
	}

	// Save verification key
	if err := writeSetupFile(vkPath, vk); err != nil {
		return err
	}

	fmt.Println("✓ Setup completed and saved!")
	return nil
}

// Load pre-compiled circuit and keys, compressed or not
func LoadSetup(ccsPath, pkPath, vkPath string) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	// Load constraint system
	ccs := groth16.NewCS(ecc.BN254)
	if err := readSetupFile(ccsPath, ccs); err != nil {
		return nil, nil, nil, err
	}

	// Load proving key
	pk := groth16.NewProvingKey(ecc.BN254)
	if err := readSetupFile(pkPath, pk); err != nil {
		return nil, nil, nil, err
	}

	// Load verification key
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readSetupFile(vkPath, vk); err != nil {
		return nil, nil, nil, err
	}

	fmt.Println("✓ Loaded pre-compiled setup")
	return ccs, pk, vk, nil
}

// ResolveSetupPath returns path, or its compressed sibling if only that one exists
func ResolveSetupPath(path string) string {
	if fileExists(path) {
		return path
	}
	if fileExists(path + CompressedExt) {
		return path + CompressedExt
	}
	return path
}

func writeSetupFile(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(path, CompressedExt) {
		_, err = src.WriteTo(f)
		return err
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := src.WriteTo(zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func readSetupFile(path string, dst io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic, err := r.Peek(len(zstdMagic))
	if err == nil && bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create zstd reader for %s: %w", path, err)
		}
		defer zr.Close()
		_, err = dst.ReadFrom(zr)
		return err
	}

	_, err = dst.ReadFrom(r)
	return err
}
