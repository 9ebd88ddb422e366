package common

import (
	"crypto/rand"
	"math/big"

	"github.com/consensys/gnark/std/math/uints"
)

// Helper function to convert string to []uints.U8
func StringToU8Array(s string) []uints.U8 {
	result := make([]uints.U8, len(s))
	for i, b := range []byte(s) {
		result[i] = uints.NewU8(b)
	}
	return result
}

// Helper function to convert bytes to []uints.U8
func BytesToU8Array(s []byte) []uints.U8 {
	result := make([]uints.U8, len(s))
	for i, b := range s {
		result[i] = uints.NewU8(b)
	}
	return result
}

// GenerateRandomBytes returns cryptographically secure random bytes
func GenerateRandomBytes(size int) ([]byte, error) {
	randomBytes := make([]byte, size)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return nil, err
	}
	return randomBytes, nil
}

// GenerateRandomBase64 returns the standard encoding of 1 to maxLength random bytes
func GenerateRandomBase64(maxLength int) (string, error) {
	length, err := rand.Int(rand.Reader, big.NewInt(int64(maxLength)))
	if err != nil {
		return "", err
	}
	randomBytes, err := GenerateRandomBytes(int(length.Int64()) + 1)
	if err != nil {
		return "", err
	}
	return ReferenceEncode(StdEncoding, randomBytes), nil
}
