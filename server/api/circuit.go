package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
)

// ErrInvalidInput marks inputs rejected by an InputParser
var ErrInvalidInput = errors.New("invalid circuit input")

// Circuit with loaded constraint system and proving and public verifying keys
type Circuit struct {
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	InputParser  InputParser
}

// InputParser converts raw JSON input to a circuit assignment. Parse builds a
// full assignment for proving and rejects a missing private input; ParsePublic
// builds an assignment usable for verification only.
type InputParser interface {
	Parse(publicInput, privateInput []byte) (frontend.Circuit, error)
	ParsePublic(publicInput []byte) (frontend.Circuit, error)
}

// PublicCircuit with the constraint system and public verifying keys
type PublicCircuit struct {
	CS           constraint.ConstraintSystem
	VerifyingKey groth16.VerifyingKey
	InputParser  InputParser
}

func (c Circuit) Public() PublicCircuit {
	return PublicCircuit{
		CS:           c.CS,
		InputParser:  c.InputParser,
		VerifyingKey: c.VerifyingKey,
	}
}

func (c Circuit) Prove(assignment frontend.Circuit) ([]byte, error) {
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(c.CS, c.ProvingKey, witness)
	if err != nil {
		return nil, fmt.Errorf("proof creation failed: %w", err)
	}

	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return nil, fmt.Errorf("proof to buffer failed: %w", err)
	}
	return proofBuf.Bytes(), nil
}

// Verify verifies a proof against the public part of the assignment
func (c PublicCircuit) Verify(assignment frontend.Circuit, proof groth16.Proof) error {
	pw, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("public witness creation failed: %w", err)
	}

	if err := groth16.Verify(proof, c.VerifyingKey, pw); err != nil {
		return fmt.Errorf("proof verification failed: %w", err)
	}
	return nil
}

// ProveWithJSON generates a proof from JSON inputs
func (c *Circuit) ProveWithJSON(publicInput, privateInput []byte) ([]byte, error) {
	assignment, err := c.InputParser.Parse(publicInput, privateInput)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return c.Prove(assignment)
}

// VerifyWithJSON verifies a proof using JSON public input
func (c PublicCircuit) VerifyWithJSON(publicInput, proofBytes []byte) error {
	assignment, err := c.InputParser.ParsePublic(publicInput)
	if err != nil {
		return fmt.Errorf("failed to parse public input: %w", err)
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return fmt.Errorf("failed to parse the proof: %w", err)
	}

	return c.Verify(assignment, proof)
}
