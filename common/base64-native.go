package common

import (
	"bytes"
	"fmt"
)

// NativeDecode mirrors DecodeBase64WithEncoding outside of a circuit. It is
// used to compute the expected witness values, so it keeps the same
// permissive handling of '=': a padding character decodes as zero bits
// wherever it appears.
func NativeDecode(enc *Base64Encoding, input []byte, byteLen int) ([]byte, error) {
	if len(input)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidLength, len(input))
	}
	maxLen := len(input) / 4 * 3
	if byteLen < 0 || byteLen > maxLen {
		return nil, fmt.Errorf("%w: %d bytes from %d characters", ErrInvalidDeclaredLength, byteLen, len(input))
	}

	out := make([]byte, 0, maxLen)
	for i := 0; i < len(input); i += 4 {
		var g [4]byte
		for j := 0; j < 4; j++ {
			v, err := nativeLookup(enc.decode, int(input[i+j]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, input[i+j], i+j)
			}
			g[j] = byte(v)
		}
		out = append(out,
			g[0]<<2|g[1]>>4,
			g[1]<<4|g[2]>>2,
			g[2]<<6|g[3],
		)
	}

	return out[:byteLen], nil
}

// NativeEncode mirrors EncodeBase64WithEncoding outside of a circuit
func NativeEncode(enc *Base64Encoding, input []byte) ([]byte, error) {
	out := make([]byte, 0, EncodedLen(len(input)))

	for i := 0; i < len(input); i += 3 {
		var block [3]byte
		n := copy(block[:], input[i:])

		indices := [4]byte{
			block[0] >> 2,
			(block[0]&0x03)<<4 | block[1]>>4,
			(block[1]&0x0f)<<2 | block[2]>>6,
			block[2] & 0x3f,
		}
		// n bytes carry 8n bits, which need ceil(8n/6) = n+1 characters
		for _, index := range indices[:n+1] {
			c, err := nativeLookup(enc.encode, int(index))
			if err != nil {
				return nil, fmt.Errorf("%w: %d", ErrIndexOutOfTable, index)
			}
			out = append(out, byte(c))
		}
	}

	out = append(out, bytes.Repeat([]byte{base64PadChar}, PaddingLen(len(input)))...)
	return out, nil
}

// ValidateBase64 checks the length and the alphabet of a base64 input
func ValidateBase64(enc *Base64Encoding, input []byte) error {
	if len(input)%4 != 0 {
		return fmt.Errorf("%w: got %d characters", ErrInvalidLength, len(input))
	}
	for i, c := range input {
		if _, err := nativeLookup(enc.decode, int(c)); err != nil {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidCharacter, c, i)
		}
	}
	return nil
}

// DecodedLen computes the number of bytes carried by a padded base64 input
func DecodedLen(input []byte) int {
	return len(input)*3/4 - bytes.Count(input, []byte{base64PadChar})
}

// ReferenceDecode decodes with a conventional strict base64 decoder
func ReferenceDecode(enc *Base64Encoding, input string) ([]byte, error) {
	return enc.reference.DecodeString(input)
}

// ReferenceEncode encodes with a conventional base64 encoder
func ReferenceEncode(enc *Base64Encoding, input []byte) string {
	return enc.reference.EncodeToString(input)
}

func nativeLookup(classes []base64Class, x int) (int, error) {
	for _, class := range classes {
		if x < class.Lo || x > class.Hi {
			continue
		}
		if class.Pad {
			return 0, nil
		}
		return x + class.Offset, nil
	}
	return 0, ErrIndexOutOfTable
}
