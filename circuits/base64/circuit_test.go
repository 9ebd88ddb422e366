package cb64_test

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
	"github.com/stretchr/testify/require"
)

const knownVector = "7xQMDuoVVU4m0W0WRVSrVXMeGSIASsnucK9dJsrc+vU="

func TestCircuitDecode(t *testing.T) {
	// == Circuit data ==
	ccsPath := "compiled/b64-circuit-decode-v1.ccs"
	pkPath := "compiled/b64-proving-decode-v1.key"
	vkPath := "compiled/b64-verifying-decode-v1.key"
	// true: recompile, false: load circuit if exists
	forceCompile := true

	// == Prepare the inputs ==
	decoded, err := common.ReferenceDecode(common.StdEncoding, knownVector)
	if err != nil {
		t.Fatalf("failed to decode the test vector: %v", err)
	}

	circuitTemplate := &cb64.CircuitDecode{
		Encoded: make([]uints.U8, len(knownVector)),
		Decoded: make([]uints.U8, len(decoded)),
	}

	// Create witness assignment with actual values
	assignment := &cb64.CircuitDecode{
		Encoded: common.StringToU8Array(knownVector),
		Decoded: common.BytesToU8Array(decoded),
	}

	// == Init the circuit ==
	fmt.Println("\n--- Init the circuit ---")
	startCircuit := time.Now()

	ccs, pk, vk, err := common.InitCircuit(ccsPath, pkPath, vkPath, forceCompile, circuitTemplate)
	if err != nil {
		t.Fatalf("failed to initialize a circuit: %v", err)
	}

	circuitTime := time.Since(startCircuit)
	fmt.Printf("✓ Circuit created/loaded successfully! (took %v)\n", circuitTime)
	common.PrintCircuitStats(ccs)

	// == Run the circuit ==
	common.TestCircuit(assignment, ccs, pk, vk)
}

func TestCircuitEncodeCompressedSetup(t *testing.T) {
	ccsPath := "compiled/b64-circuit-encode-v1.ccs" + common.CompressedExt
	pkPath := "compiled/b64-proving-encode-v1.key" + common.CompressedExt
	vkPath := "compiled/b64-verifying-encode-v1.key" + common.CompressedExt

	forceCompile := true

	data, err := common.GenerateRandomBytes(20)
	if err != nil {
		t.Fatal(err)
	}
	encoded := common.ReferenceEncode(common.StdEncoding, data)

	circuitTemplate := &cb64.CircuitEncode{
		Bytes:   make([]uints.U8, len(data)),
		Encoded: make([]uints.U8, len(encoded)),
	}

	assignment := &cb64.CircuitEncode{
		Bytes:   common.BytesToU8Array(data),
		Encoded: common.StringToU8Array(encoded),
	}

	ccs, pk, vk, err := common.InitCircuit(ccsPath, pkPath, vkPath, forceCompile, circuitTemplate)
	if err != nil {
		t.Fatalf("failed to initialize a circuit: %v", err)
	}

	_, err = common.ProveAndVerify(assignment, ccs, pk, vk)
	require.NoError(t, err)
}

func TestCircuitEncodePlonk(t *testing.T) {
	data := []byte("zero-knowledge")
	encoded := common.ReferenceEncode(common.StdEncoding, data)

	circuitTemplate := &cb64.CircuitEncode{
		Bytes:   make([]uints.U8, len(data)),
		Encoded: make([]uints.U8, len(encoded)),
	}
	assignment := &cb64.CircuitEncode{
		Bytes:   common.BytesToU8Array(data),
		Encoded: common.StringToU8Array(encoded),
	}

	_, err := common.ProveAndVerifyPlonk(circuitTemplate, assignment)
	require.NoError(t, err)
}

func TestCircuitDecodeURL(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xbf, 0x00, 0x3e}
	encoded := common.ReferenceEncode(common.URLEncoding, data)
	require.Equal(t, "-_-_AD4=", encoded)

	template := &cb64.CircuitDecodeURL{
		Encoded: make([]uints.U8, len(encoded)),
		Decoded: make([]uints.U8, len(data)),
	}
	assignment := &cb64.CircuitDecodeURL{
		Encoded: common.StringToU8Array(encoded),
		Decoded: common.BytesToU8Array(data),
	}
	require.NoError(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()))

	// the standard alphabet rejects '-' and '_'
	std := &cb64.CircuitDecode{
		Encoded: common.StringToU8Array(encoded),
		Decoded: common.BytesToU8Array(data),
	}
	stdTemplate := &cb64.CircuitDecode{
		Encoded: make([]uints.U8, len(encoded)),
		Decoded: make([]uints.U8, len(data)),
	}
	require.Error(t, test.IsSolved(stdTemplate, std, ecc.BN254.ScalarField()))
}

func TestCircuitEncodeURL(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xbf, 0x00, 0x3e}
	encoded := common.ReferenceEncode(common.URLEncoding, data)

	template := &cb64.CircuitEncodeURL{
		Bytes:   make([]uints.U8, len(data)),
		Encoded: make([]uints.U8, len(encoded)),
	}
	assignment := &cb64.CircuitEncodeURL{
		Bytes:   common.BytesToU8Array(data),
		Encoded: common.StringToU8Array(encoded),
	}
	require.NoError(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()))
}

func TestCircuitEncodeRejectsLength(t *testing.T) {
	template := &cb64.CircuitEncode{
		Bytes:   make([]uints.U8, 4),
		Encoded: make([]uints.U8, 4),
	}
	assignment := &cb64.CircuitEncode{
		Bytes:   common.StringToU8Array("Many"),
		Encoded: common.StringToU8Array("TWFu"),
	}
	require.ErrorContains(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()), "encode to 8 characters")
}

func TestCircuitDecodeDigest(t *testing.T) {
	data := []byte(`{"given_name":"Erika","birth_date":"1984-01-26"}`)
	encoded := common.ReferenceEncode(common.StdEncoding, data)
	digest := sha256.Sum256(data)

	template := &cb64.CircuitDecodeDigest{
		ByteLen: len(data),
		Encoded: make([]uints.U8, len(encoded)),
		Digest:  make([]uints.U8, len(digest)),
	}
	assignment := &cb64.CircuitDecodeDigest{
		ByteLen: len(data),
		Encoded: common.StringToU8Array(encoded),
		Digest:  common.BytesToU8Array(digest[:]),
	}
	require.NoError(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()))

	wrong := sha256.Sum256([]byte("something else"))
	assignment.Digest = common.BytesToU8Array(wrong[:])
	require.Error(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()))
}

func TestDecodeInputParser(t *testing.T) {
	decoded, err := common.ReferenceDecode(common.StdEncoding, knownVector)
	require.NoError(t, err)

	parser := &cb64.DecodeInputParser{
		Encoding:   common.StdEncoding,
		EncodedLen: len(knownVector),
		DecodedLen: len(decoded),
	}

	publicInput := []byte(fmt.Sprintf(`{"bytes_hex":%q}`, hex.EncodeToString(decoded)))
	privateInput := []byte(fmt.Sprintf(`{"encoded":%q}`, knownVector))

	assignment, err := parser.Parse(publicInput, privateInput)
	require.NoError(t, err)
	require.IsType(t, &cb64.CircuitDecode{}, assignment)

	template := &cb64.CircuitDecode{
		Encoded: make([]uints.U8, len(knownVector)),
		Decoded: make([]uints.U8, len(decoded)),
	}
	require.NoError(t, test.IsSolved(template, assignment, ecc.BN254.ScalarField()))

	// public-only assignment for verification
	_, err = parser.ParsePublic(publicInput)
	require.NoError(t, err)

	// proving needs the secret string
	_, err = parser.Parse(publicInput, []byte("{}"))
	require.ErrorIs(t, err, cb64.ErrMissingInput)
	_, err = parser.Parse(publicInput, []byte(`{"encoded":""}`))
	require.ErrorIs(t, err, cb64.ErrMissingInput)

	// mismatching inputs are refused before proving
	decoded[0] ^= 0xff
	_, err = parser.Parse([]byte(fmt.Sprintf(`{"bytes_hex":%q}`, hex.EncodeToString(decoded))), privateInput)
	require.ErrorIs(t, err, cb64.ErrInputMismatch)

	_, err = parser.Parse(publicInput, []byte(`{"encoded":"ad$="}`))
	require.Error(t, err)

	_, err = parser.Parse([]byte(`{"bytes_hex":"zz"}`), privateInput)
	require.ErrorContains(t, err, "invalid bytes_hex")
}

func TestEncodeInputParser(t *testing.T) {
	data := []byte{0xfb, 0xff}
	parser := &cb64.EncodeInputParser{Encoding: common.URLEncoding, ByteLen: len(data)}

	assignment, err := parser.Parse([]byte(`{"encoded":"-_8="}`), []byte(`{"bytes_hex":"fbff"}`))
	require.NoError(t, err)
	require.IsType(t, &cb64.CircuitEncodeURL{}, assignment)

	_, err = parser.Parse([]byte(`{"encoded":"-_8="}`), []byte(`{"bytes_hex":"fbfe"}`))
	require.ErrorIs(t, err, cb64.ErrInputMismatch)

	_, err = parser.Parse([]byte(`{"encoded":"+/8="}`), []byte(`{"bytes_hex":"fbff"}`))
	require.ErrorIs(t, err, common.ErrInvalidCharacter)

	_, err = parser.Parse([]byte(`{"encoded":"-_8="}`), []byte(`{}`))
	require.ErrorIs(t, err, cb64.ErrMissingInput)

	public, err := parser.ParsePublic([]byte(`{"encoded":"-_8="}`))
	require.NoError(t, err)
	require.IsType(t, &cb64.CircuitEncodeURL{}, public)

	_, err = parser.ParsePublic([]byte(`{"encoded":"-_8"}`))
	require.Error(t, err)
}

func TestDigestInputParser(t *testing.T) {
	data := []byte("hello base64")
	encoded := common.ReferenceEncode(common.StdEncoding, data)
	digest := sha256.Sum256(data)

	parser := &cb64.DigestInputParser{EncodedLen: len(encoded), DecodedLen: len(data)}

	publicInput := []byte(fmt.Sprintf(`{"digest_hex":%q}`, hex.EncodeToString(digest[:])))
	assignment, err := parser.Parse(publicInput, []byte(fmt.Sprintf(`{"encoded":%q}`, encoded)))
	require.NoError(t, err)

	circuit, ok := assignment.(*cb64.CircuitDecodeDigest)
	require.True(t, ok)
	require.Equal(t, len(data), circuit.ByteLen)

	other := common.ReferenceEncode(common.StdEncoding, []byte("hello BASE64"))
	_, err = parser.Parse(publicInput, []byte(fmt.Sprintf(`{"encoded":%q}`, other)))
	require.ErrorIs(t, err, cb64.ErrInputMismatch)

	_, err = parser.Parse(publicInput, []byte(`{}`))
	require.ErrorIs(t, err, cb64.ErrMissingInput)

	public, err := parser.ParsePublic(publicInput)
	require.NoError(t, err)
	require.Equal(t, len(data), public.(*cb64.CircuitDecodeDigest).ByteLen)
}
