package cb64

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/mynextid/zk-base64/common"
)

var (
	// ErrInputMismatch is returned when the public and private inputs cannot
	// satisfy the circuit
	ErrInputMismatch = errors.New("public and private inputs do not match")
	// ErrMissingInput is returned when a proof is requested without the private input
	ErrMissingInput = errors.New("private input is required")
)

// EncodedInput carries a base64 string
type EncodedInput struct {
	Encoded string `json:"encoded"`
}

// BytesInput carries hex encoded bytes
type BytesInput struct {
	BytesHex string `json:"bytes_hex"`
}

// DigestInput carries a hex encoded SHA-256 digest
type DigestInput struct {
	DigestHex string `json:"digest_hex"`
}

// DecodeInputParser builds CircuitDecode and CircuitDecodeURL assignments.
// Public input is BytesInput, private input is EncodedInput.
type DecodeInputParser struct {
	Encoding   *common.Base64Encoding
	EncodedLen int
	DecodedLen int
}

func (p *DecodeInputParser) Parse(publicInput, privateInput []byte) (frontend.Circuit, error) {
	decoded, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}

	var priv EncodedInput
	if err := json.Unmarshal(privateInput, &priv); err != nil {
		return nil, fmt.Errorf("invalid private input: %w", err)
	}
	if priv.Encoded == "" {
		return nil, fmt.Errorf("%w: encoded", ErrMissingInput)
	}

	native, err := decodeChecked(p.Encoding, priv.Encoded, p.EncodedLen, p.DecodedLen)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(native, decoded) {
		return nil, fmt.Errorf("%w: encoded input does not decode to bytes_hex", ErrInputMismatch)
	}

	return p.assignment(common.StringToU8Array(priv.Encoded), decoded), nil
}

// ParsePublic builds an assignment with a zero secret part, for verification
func (p *DecodeInputParser) ParsePublic(publicInput []byte) (frontend.Circuit, error) {
	decoded, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}
	return p.assignment(zeroBytes(p.EncodedLen), decoded), nil
}

func (p *DecodeInputParser) parsePublic(publicInput []byte) ([]byte, error) {
	var pub BytesInput
	if err := json.Unmarshal(publicInput, &pub); err != nil {
		return nil, fmt.Errorf("invalid public input: %w", err)
	}
	return parseHex("bytes_hex", pub.BytesHex, p.DecodedLen)
}

func (p *DecodeInputParser) assignment(encoded []uints.U8, decoded []byte) frontend.Circuit {
	if p.Encoding == common.URLEncoding {
		return &CircuitDecodeURL{Encoded: encoded, Decoded: common.BytesToU8Array(decoded)}
	}
	return &CircuitDecode{Encoded: encoded, Decoded: common.BytesToU8Array(decoded)}
}

// EncodeInputParser builds CircuitEncode and CircuitEncodeURL assignments.
// Public input is EncodedInput, private input is BytesInput.
type EncodeInputParser struct {
	Encoding *common.Base64Encoding
	ByteLen  int
}

func (p *EncodeInputParser) Parse(publicInput, privateInput []byte) (frontend.Circuit, error) {
	encoded, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}

	var priv BytesInput
	if err := json.Unmarshal(privateInput, &priv); err != nil {
		return nil, fmt.Errorf("invalid private input: %w", err)
	}
	if priv.BytesHex == "" {
		return nil, fmt.Errorf("%w: bytes_hex", ErrMissingInput)
	}

	raw, err := parseHex("bytes_hex", priv.BytesHex, p.ByteLen)
	if err != nil {
		return nil, err
	}
	native, err := common.NativeEncode(p.Encoding, raw)
	if err != nil {
		return nil, err
	}
	if string(native) != encoded {
		return nil, fmt.Errorf("%w: bytes_hex does not encode to encoded", ErrInputMismatch)
	}

	return p.assignment(raw, encoded), nil
}

// ParsePublic builds an assignment with a zero secret part, for verification
func (p *EncodeInputParser) ParsePublic(publicInput []byte) (frontend.Circuit, error) {
	encoded, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}
	return p.assignment(make([]byte, p.ByteLen), encoded), nil
}

func (p *EncodeInputParser) parsePublic(publicInput []byte) (string, error) {
	var pub EncodedInput
	if err := json.Unmarshal(publicInput, &pub); err != nil {
		return "", fmt.Errorf("invalid public input: %w", err)
	}

	encodedLen := common.EncodedLen(p.ByteLen)
	if len(pub.Encoded) != encodedLen {
		return "", fmt.Errorf("encoded must be %d characters, got %d", encodedLen, len(pub.Encoded))
	}
	if err := common.ValidateBase64(p.Encoding, []byte(pub.Encoded)); err != nil {
		return "", err
	}
	return pub.Encoded, nil
}

func (p *EncodeInputParser) assignment(raw []byte, encoded string) frontend.Circuit {
	if p.Encoding == common.URLEncoding {
		return &CircuitEncodeURL{Bytes: common.BytesToU8Array(raw), Encoded: common.StringToU8Array(encoded)}
	}
	return &CircuitEncode{Bytes: common.BytesToU8Array(raw), Encoded: common.StringToU8Array(encoded)}
}

// DigestInputParser builds CircuitDecodeDigest assignments.
// Public input is DigestInput, private input is EncodedInput.
type DigestInputParser struct {
	EncodedLen int
	DecodedLen int
}

func (p *DigestInputParser) Parse(publicInput, privateInput []byte) (frontend.Circuit, error) {
	digest, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}

	var priv EncodedInput
	if err := json.Unmarshal(privateInput, &priv); err != nil {
		return nil, fmt.Errorf("invalid private input: %w", err)
	}
	if priv.Encoded == "" {
		return nil, fmt.Errorf("%w: encoded", ErrMissingInput)
	}

	native, err := decodeChecked(common.StdEncoding, priv.Encoded, p.EncodedLen, p.DecodedLen)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(native)
	if !bytes.Equal(sum[:], digest) {
		return nil, fmt.Errorf("%w: decoded input does not hash to digest_hex", ErrInputMismatch)
	}

	return p.assignment(common.StringToU8Array(priv.Encoded), digest), nil
}

// ParsePublic builds an assignment with a zero secret part, for verification
func (p *DigestInputParser) ParsePublic(publicInput []byte) (frontend.Circuit, error) {
	digest, err := p.parsePublic(publicInput)
	if err != nil {
		return nil, err
	}
	return p.assignment(zeroBytes(p.EncodedLen), digest), nil
}

func (p *DigestInputParser) parsePublic(publicInput []byte) ([]byte, error) {
	var pub DigestInput
	if err := json.Unmarshal(publicInput, &pub); err != nil {
		return nil, fmt.Errorf("invalid public input: %w", err)
	}
	return parseHex("digest_hex", pub.DigestHex, sha256.Size)
}

func (p *DigestInputParser) assignment(encoded []uints.U8, digest []byte) frontend.Circuit {
	return &CircuitDecodeDigest{
		ByteLen: p.DecodedLen,
		Encoded: encoded,
		Digest:  common.BytesToU8Array(digest),
	}
}

func decodeChecked(enc *common.Base64Encoding, encoded string, encodedLen, decodedLen int) ([]byte, error) {
	if len(encoded) != encodedLen {
		return nil, fmt.Errorf("encoded must be %d characters, got %d", encodedLen, len(encoded))
	}
	if err := common.ValidateBase64(enc, []byte(encoded)); err != nil {
		return nil, err
	}
	return common.NativeDecode(enc, []byte(encoded), decodedLen)
}

func parseHex(field, value string, size int) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	if len(b) != size {
		return nil, fmt.Errorf("%s must be %d bytes, got %d", field, size, len(b))
	}
	return b, nil
}

func zeroBytes(n int) []uints.U8 {
	return common.BytesToU8Array(make([]byte, n))
}
