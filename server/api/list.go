package api

import (
	"crypto/sha256"

	"github.com/consensys/gnark/std/math/uints"
	cb64 "github.com/mynextid/zk-base64/circuits/base64"
	"github.com/mynextid/zk-base64/common"
)

const (
	BYTE_SIZE32  = 32
	BYTE_SIZE128 = 128
)

var (
	B64_SIZE32  = common.EncodedLen(BYTE_SIZE32)
	B64_SIZE128 = common.EncodedLen(BYTE_SIZE128)
)

var CircuitList = map[string]CircuitInfo{
	"base64-decode": {
		Circuit: &cb64.CircuitDecode{
			Encoded: make([]uints.U8, B64_SIZE32),
			Decoded: make([]uints.U8, BYTE_SIZE32),
		},
		Name:        "base64-decode",
		Version:     1,
		Description: "Proves that public bytes are the decoding of a secret base64 string",
		InputParser: &cb64.DecodeInputParser{
			Encoding:   common.StdEncoding,
			EncodedLen: B64_SIZE32,
			DecodedLen: BYTE_SIZE32,
		},
		Fields: []Field{
			{Name: "bytes_hex", Type: "hex", Size: BYTE_SIZE32, Description: "Decoded bytes", IsPublic: true},
			{Name: "encoded", Type: "base64", Size: B64_SIZE32, Description: "Base64 string (secret)"},
		},
	},
	"base64url-decode": {
		Circuit: &cb64.CircuitDecodeURL{
			Encoded: make([]uints.U8, B64_SIZE32),
			Decoded: make([]uints.U8, BYTE_SIZE32),
		},
		Name:        "base64url-decode",
		Version:     1,
		Description: "Proves that public bytes are the decoding of a secret padded base64url string",
		InputParser: &cb64.DecodeInputParser{
			Encoding:   common.URLEncoding,
			EncodedLen: B64_SIZE32,
			DecodedLen: BYTE_SIZE32,
		},
		Fields: []Field{
			{Name: "bytes_hex", Type: "hex", Size: BYTE_SIZE32, Description: "Decoded bytes", IsPublic: true},
			{Name: "encoded", Type: "base64url", Size: B64_SIZE32, Description: "Base64url string (secret)"},
		},
	},
	"base64-encode": {
		Circuit: &cb64.CircuitEncode{
			Bytes:   make([]uints.U8, BYTE_SIZE32),
			Encoded: make([]uints.U8, B64_SIZE32),
		},
		Name:        "base64-encode",
		Version:     1,
		Description: "Proves that a public base64 string encodes secret bytes",
		InputParser: &cb64.EncodeInputParser{
			Encoding: common.StdEncoding,
			ByteLen:  BYTE_SIZE32,
		},
		Fields: []Field{
			{Name: "encoded", Type: "base64", Size: B64_SIZE32, Description: "Base64 string", IsPublic: true},
			{Name: "bytes_hex", Type: "hex", Size: BYTE_SIZE32, Description: "Encoded bytes (secret)"},
		},
	},
	"base64url-encode": {
		Circuit: &cb64.CircuitEncodeURL{
			Bytes:   make([]uints.U8, BYTE_SIZE32),
			Encoded: make([]uints.U8, B64_SIZE32),
		},
		Name:        "base64url-encode",
		Version:     1,
		Description: "Proves that a public padded base64url string encodes secret bytes",
		InputParser: &cb64.EncodeInputParser{
			Encoding: common.URLEncoding,
			ByteLen:  BYTE_SIZE32,
		},
		Fields: []Field{
			{Name: "encoded", Type: "base64url", Size: B64_SIZE32, Description: "Base64url string", IsPublic: true},
			{Name: "bytes_hex", Type: "hex", Size: BYTE_SIZE32, Description: "Encoded bytes (secret)"},
		},
	},
	"base64-decode-sha256": {
		Circuit: &cb64.CircuitDecodeDigest{
			ByteLen: BYTE_SIZE128,
			Encoded: make([]uints.U8, B64_SIZE128),
			Digest:  make([]uints.U8, sha256.Size),
		},
		Name:        "base64-decode-sha256",
		Version:     1,
		Description: "Proves that a secret base64 string decodes to bytes with a public SHA-256 digest",
		InputParser: &cb64.DigestInputParser{
			EncodedLen: B64_SIZE128,
			DecodedLen: BYTE_SIZE128,
		},
		Fields: []Field{
			{Name: "digest_hex", Type: "hex", Size: sha256.Size, Description: "SHA-256 digest of the decoded bytes", IsPublic: true},
			{Name: "encoded", Type: "base64", Size: B64_SIZE128, Description: "Base64 string (secret)"},
		},
	},
}
