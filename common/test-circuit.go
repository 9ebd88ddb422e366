package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"
	"github.com/consensys/gnark/test/unsafekzg"
)

func InitCircuit(ccsPath, pkPath, vkPath string, forceCompile bool, circuitTemplate frontend.Circuit) (constraint.ConstraintSystem, groth16.ProvingKey, groth16.VerifyingKey, error) {
	// Validate paths to prevent directory traversal attacks
	if err := validatePath(ccsPath); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid ccsPath: %w", err)
	}
	if err := validatePath(pkPath); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid pkPath: %w", err)
	}
	if err := validatePath(vkPath); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid vkPath: %w", err)
	}

	// Create all necessary subdirectories
	if err := ensureDirectories(ccsPath, pkPath, vkPath); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create directories: %w", err)
	}

	if forceCompile {
		// Safe removal with path validation
		if err := safeRemove(ccsPath); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to remove ccsPath: %w", err)
		}
		if err := safeRemove(pkPath); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to remove pkPath: %w", err)
		}
		if err := safeRemove(vkPath); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to remove vkPath: %w", err)
		}
	}

	// Check if all files exist
	allFilesExist := fileExists(ccsPath) && fileExists(pkPath) && fileExists(vkPath)

	if !allFilesExist || forceCompile {
		fmt.Println("compiling the circuit")
		if err := SetupAndSave(circuitTemplate, ccsPath, pkPath, vkPath); err != nil {
			return nil, nil, nil, fmt.Errorf("setup and save failed: %w", err)
		}
		// Load what we just saved
		return LoadSetup(ccsPath, pkPath, vkPath)
	}

	// All files exist: just load
	return LoadSetup(ccsPath, pkPath, vkPath)
}

// Timings collects the duration of each proving step
type Timings struct {
	Witness time.Duration
	Proof   time.Duration
	Public  time.Duration
	Verify  time.Duration
}

func (t Timings) Total() time.Duration {
	return t.Witness + t.Proof + t.Public + t.Verify
}

func (t Timings) Print() {
	fmt.Println("\n=== Performance Summary ===")
	fmt.Printf("Witness creation:  %v\n", t.Witness)
	fmt.Printf("Proof generation:  %v\n", t.Proof)
	fmt.Printf("Public extraction: %v\n", t.Public)
	fmt.Printf("Verification:      %v\n", t.Verify)
	fmt.Printf("Total time:        %v\n", t.Total())
}

// TestCircuit executes witness and proof creation, and verification. The function times the real function time of execution
func TestCircuit(assignment frontend.Circuit, ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) {
	timings, err := ProveAndVerify(assignment, ccs, pk, vk)
	if err != nil {
		panic(err)
	}
	timings.Print()
}

// ProveAndVerify runs a groth16 prove/verify cycle and reports its timings
func ProveAndVerify(assignment frontend.Circuit, ccs constraint.ConstraintSystem, pk groth16.ProvingKey, vk groth16.VerifyingKey) (Timings, error) {
	var t Timings

	// Create witness
	fmt.Println("\n--- Creating Witness ---")
	startWitness := time.Now()
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return t, fmt.Errorf("witness creation failed: %w", err)
	}
	t.Witness = time.Since(startWitness)
	fmt.Printf("✓ Witness created successfully! (took %v)\n", t.Witness)

	// Generate proof
	fmt.Println("\n--- Generating Proof ---")
	startProof := time.Now()
	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return t, fmt.Errorf("proof generation failed: %w", err)
	}
	t.Proof = time.Since(startProof)
	fmt.Printf("✓ Proof generated successfully! (took %v)\n", t.Proof)

	// Extract public witness for verification
	fmt.Println("\n--- Extracting Public Witness ---")
	startPublic := time.Now()
	publicWitness, err := witness.Public()
	if err != nil {
		return t, fmt.Errorf("public witness extraction failed: %w", err)
	}
	t.Public = time.Since(startPublic)
	fmt.Printf("✓ Public witness extracted! (took %v)\n", t.Public)

	// Verify proof
	fmt.Println("\n--- Verifying Proof ---")
	startVerify := time.Now()
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return t, fmt.Errorf("❌ Verification failed: %w", err)
	}
	t.Verify = time.Since(startVerify)
	fmt.Printf("✅ Proof verified successfully! (took %v)\n", t.Verify)

	return t, nil
}

// ProveAndVerifyPlonk compiles the circuit for PLONK with an unsafe test SRS and
// runs a prove/verify cycle. Not for production setups.
func ProveAndVerifyPlonk(circuitTemplate, assignment frontend.Circuit) (Timings, error) {
	var t Timings

	fmt.Println("\n--- Compiling Circuit (PLONK) ---")
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), scs.NewBuilder, circuitTemplate)
	if err != nil {
		return t, err
	}
	PrintCircuitStats(ccs)

	srs, srsLagrange, err := unsafekzg.NewSRS(ccs)
	if err != nil {
		return t, fmt.Errorf("srs generation failed: %w", err)
	}
	pk, vk, err := plonk.Setup(ccs, srs, srsLagrange)
	if err != nil {
		return t, fmt.Errorf("plonk setup failed: %w", err)
	}

	startWitness := time.Now()
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return t, fmt.Errorf("witness creation failed: %w", err)
	}
	t.Witness = time.Since(startWitness)

	startProof := time.Now()
	proof, err := plonk.Prove(ccs, pk, witness)
	if err != nil {
		return t, fmt.Errorf("proof generation failed: %w", err)
	}
	t.Proof = time.Since(startProof)

	startPublic := time.Now()
	publicWitness, err := witness.Public()
	if err != nil {
		return t, fmt.Errorf("public witness extraction failed: %w", err)
	}
	t.Public = time.Since(startPublic)

	startVerify := time.Now()
	if err := plonk.Verify(proof, vk, publicWitness); err != nil {
		return t, fmt.Errorf("❌ Verification failed: %w", err)
	}
	t.Verify = time.Since(startVerify)
	fmt.Printf("✅ Proof verified successfully! (took %v)\n", t.Verify)

	return t, nil
}

// PrintCircuitStats prints the size of a compiled circuit
func PrintCircuitStats(ccs constraint.ConstraintSystem) {
	fmt.Println("\n=== Circuit Summary ===")
	fmt.Printf("Constraints:        %d\n", ccs.GetNbConstraints())
	fmt.Printf("Public variables:   %d\n", ccs.GetNbPublicVariables())
	fmt.Printf("Secret variables:   %d\n", ccs.GetNbSecretVariables())
	fmt.Printf("Internal variables: %d\n", ccs.GetNbInternalVariables())
}

// validatePath rejects empty paths and paths escaping the working directory
func validatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		return nil
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %s escapes the working directory", path)
	}
	return nil
}

func ensureDirectories(paths ...string) error {
	for _, p := range paths {
		dir := filepath.Dir(p)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

func safeRemove(path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
