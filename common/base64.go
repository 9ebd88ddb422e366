package common

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	asmbase64 "github.com/segmentio/asm/base64"
)

var (
	// ErrInvalidLength is returned when the base64 input is not made of whole 4-character blocks
	ErrInvalidLength = errors.New("input length must be a multiple of 4")
	// ErrInvalidCharacter is returned when an input byte is outside of the base64 alphabet
	ErrInvalidCharacter = errors.New("base64 input must contain only alphanumeric characters and +/=")
	// ErrIndexOutOfTable signals a 6-bit index without a base64 character. Reaching it is a bug.
	ErrIndexOutOfTable = errors.New("index not in base64 table")
	// ErrInvalidDeclaredLength is returned when the declared byte length does not fit the input
	ErrInvalidDeclaredLength = errors.New("declared byte length does not fit the base64 input")
)

const base64PadChar = '='

// base64Class maps every value in [Lo, Hi] to value+Offset. A padding class
// matches but contributes nothing.
type base64Class struct {
	Lo, Hi int
	Offset int
	Pad    bool
}

// Base64Encoding holds the branchless lookup tables of a base64 alphabet
type Base64Encoding struct {
	Name string

	decode []base64Class
	encode []base64Class

	// reference codec used for witness preparation and tests
	reference *asmbase64.Encoding
}

// StdEncoding is the standard base64 alphabet of RFC 4648 section 4
var StdEncoding = &Base64Encoding{
	Name: "std",
	decode: []base64Class{
		{Lo: 'A', Hi: 'Z', Offset: -65},
		{Lo: 'a', Hi: 'z', Offset: -71},
		{Lo: '0', Hi: '9', Offset: 4},
		{Lo: '+', Hi: '+', Offset: 19},
		{Lo: '/', Hi: '/', Offset: 16},
		{Lo: base64PadChar, Hi: base64PadChar, Pad: true},
	},
	encode: []base64Class{
		{Lo: 0, Hi: 25, Offset: 65},
		{Lo: 26, Hi: 51, Offset: 71},
		{Lo: 52, Hi: 61, Offset: -4},
		{Lo: 62, Hi: 62, Offset: -19},
		{Lo: 63, Hi: 63, Offset: -16},
	},
	reference: asmbase64.StdEncoding,
}

// URLEncoding is the URL and filename safe alphabet of RFC 4648 section 5, with padding
var URLEncoding = &Base64Encoding{
	Name: "url",
	decode: []base64Class{
		{Lo: 'A', Hi: 'Z', Offset: -65},
		{Lo: 'a', Hi: 'z', Offset: -71},
		{Lo: '0', Hi: '9', Offset: 4},
		{Lo: '-', Hi: '-', Offset: 17},
		{Lo: '_', Hi: '_', Offset: -32},
		{Lo: base64PadChar, Hi: base64PadChar, Pad: true},
	},
	encode: []base64Class{
		{Lo: 0, Hi: 25, Offset: 65},
		{Lo: 26, Hi: 51, Offset: 71},
		{Lo: 52, Hi: 61, Offset: -4},
		{Lo: 62, Hi: 62, Offset: -17},
		{Lo: 63, Hi: 63, Offset: 32},
	},
	reference: asmbase64.URLEncoding,
}

// DecodeBase64 decodes standard base64 characters into exactly byteLen bytes
func DecodeBase64(api frontend.API, input []uints.U8, byteLen int) ([]uints.U8, error) {
	return DecodeBase64WithEncoding(api, StdEncoding, input, byteLen)
}

// DecodeBase64Url decodes padded base64url characters into exactly byteLen bytes
func DecodeBase64Url(api frontend.API, input []uints.U8, byteLen int) ([]uints.U8, error) {
	return DecodeBase64WithEncoding(api, URLEncoding, input, byteLen)
}

// DecodeBase64WithEncoding processes the input in blocks of 4 characters, each
// producing 3 bytes. Only the first byteLen bytes are kept; the padding
// characters are never inspected to size the output.
//
// A character outside the alphabet leaves the circuit unsatisfiable without a
// readable error. Callers holding the witness should run ValidateBase64 first
// to get ErrInvalidCharacter.
func DecodeBase64WithEncoding(api frontend.API, enc *Base64Encoding, input []uints.U8, byteLen int) ([]uints.U8, error) {
	if len(input)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidLength, len(input))
	}
	maxLen := len(input) / 4 * 3
	if byteLen < 0 || byteLen > maxLen {
		return nil, fmt.Errorf("%w: %d bytes from %d characters", ErrInvalidDeclaredLength, byteLen, len(input))
	}

	out := make([]uints.U8, 0, byteLen)

	for i := 0; i < len(input); i += 4 {
		var groups [4][]frontend.Variable
		for j := 0; j < 4; j++ {
			index := Base64CharToIndex(api, enc, input[i+j])
			groups[j] = api.ToBinary(index, 6)
		}

		for _, bits := range repackDecodeBlock(groups) {
			value := api.FromBinary(bits...)
			if len(out) < byteLen {
				out = append(out, uints.U8{Val: value})
			}
		}
	}

	return out, nil
}

// EncodeBase64 encodes the input with the standard alphabet
func EncodeBase64(api frontend.API, input []uints.U8) []uints.U8 {
	return EncodeBase64WithEncoding(api, StdEncoding, input)
}

// EncodeBase64Url encodes the input with the padded base64url alphabet
func EncodeBase64Url(api frontend.API, input []uints.U8) []uints.U8 {
	return EncodeBase64WithEncoding(api, URLEncoding, input)
}

// EncodeBase64WithEncoding returns 4*ceil(len(input)/3) characters
func EncodeBase64WithEncoding(api frontend.API, enc *Base64Encoding, input []uints.U8) []uints.U8 {
	out := make([]uints.U8, 0, EncodedLen(len(input)))

	for _, index := range repackEncode(api, input) {
		out = append(out, Base64IndexToChar(api, enc, index))
	}

	for i := 0; i < PaddingLen(len(input)); i++ {
		out = append(out, uints.NewU8(base64PadChar))
	}

	return out
}

// EncodedLen is the number of base64 characters for n bytes
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// PaddingLen is the number of '=' characters appended when encoding n bytes
func PaddingLen(n int) int {
	if n%3 == 0 {
		return 0
	}
	return 3 - n%3
}
