package common_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/consensys/gnark/test"
	"github.com/mynextid/zk-base64/common"
	"github.com/stretchr/testify/require"
)

const (
	stdAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	urlAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
)

type charToIndexCircuit struct {
	Enc *common.Base64Encoding `gnark:"-"`

	Char  uints.U8
	Index frontend.Variable
}

func (c *charToIndexCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(common.Base64CharToIndex(api, c.Enc, c.Char), c.Index)
	return nil
}

type indexToCharCircuit struct {
	Enc *common.Base64Encoding `gnark:"-"`

	Index frontend.Variable
	Char  uints.U8
}

func (c *indexToCharCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(common.Base64IndexToChar(api, c.Enc, c.Index).Val, c.Char.Val)
	return nil
}

type decodeCircuit struct {
	Encoded []uints.U8
	Decoded []uints.U8
}

func (c *decodeCircuit) Define(api frontend.API) error {
	decoded, err := common.DecodeBase64(api, c.Encoded, len(c.Decoded))
	if err != nil {
		return err
	}
	common.AssertIsEqualBytes(api, decoded, c.Decoded)
	return nil
}

type encodeCircuit struct {
	Enc *common.Base64Encoding `gnark:"-"`

	Bytes   []uints.U8
	Encoded []uints.U8
}

func (c *encodeCircuit) Define(api frontend.API) error {
	encoded := common.EncodeBase64WithEncoding(api, c.Enc, c.Bytes)
	common.AssertIsEqualBytes(api, encoded, c.Encoded)
	return nil
}

type roundTripCircuit struct {
	Bytes []uints.U8
}

func (c *roundTripCircuit) Define(api frontend.API) error {
	encoded := common.EncodeBase64(api, c.Bytes)
	decoded, err := common.DecodeBase64(api, encoded, len(c.Bytes))
	if err != nil {
		return err
	}
	common.AssertIsEqualBytes(api, decoded, c.Bytes)
	return nil
}

type urlRoundTripCircuit struct {
	Bytes []uints.U8
}

func (c *urlRoundTripCircuit) Define(api frontend.API) error {
	encoded := common.EncodeBase64Url(api, c.Bytes)
	decoded, err := common.DecodeBase64Url(api, encoded, len(c.Bytes))
	if err != nil {
		return err
	}
	common.AssertIsEqualBytes(api, decoded, c.Bytes)
	return nil
}

func isSolved(circuit, assignment frontend.Circuit) error {
	return test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
}

func decodeTemplate(encodedLen, decodedLen int) *decodeCircuit {
	return &decodeCircuit{
		Encoded: make([]uints.U8, encodedLen),
		Decoded: make([]uints.U8, decodedLen),
	}
}

func checkDecode(t *testing.T, encoded string, decoded []byte) error {
	t.Helper()
	assignment := &decodeCircuit{
		Encoded: common.StringToU8Array(encoded),
		Decoded: common.BytesToU8Array(decoded),
	}
	return isSolved(decodeTemplate(len(encoded), len(decoded)), assignment)
}

func TestCharToIndexAllBytes(t *testing.T) {
	for _, tc := range []struct {
		enc      *common.Base64Encoding
		alphabet string
	}{
		{common.StdEncoding, stdAlphabet},
		{common.URLEncoding, urlAlphabet},
	} {
		t.Run(tc.enc.Name, func(t *testing.T) {
			for c := 0; c < 256; c++ {
				index := strings.IndexByte(tc.alphabet, byte(c))
				if c == '=' {
					index = 0
				}

				assignment := &charToIndexCircuit{Char: uints.NewU8(uint8(c)), Index: max(index, 0)}
				err := isSolved(&charToIndexCircuit{Enc: tc.enc}, assignment)

				if index < 0 {
					require.Error(t, err, "character %q must be rejected", c)
				} else {
					require.NoError(t, err, "character %q", c)
				}
			}
		})
	}
}

func TestCharToIndexWrongValue(t *testing.T) {
	assignment := &charToIndexCircuit{Char: uints.NewU8('B'), Index: 2}
	require.Error(t, isSolved(&charToIndexCircuit{Enc: common.StdEncoding}, assignment))
}

func TestIndexToChar(t *testing.T) {
	for _, tc := range []struct {
		enc      *common.Base64Encoding
		alphabet string
	}{
		{common.StdEncoding, stdAlphabet},
		{common.URLEncoding, urlAlphabet},
	} {
		t.Run(tc.enc.Name, func(t *testing.T) {
			for i := 0; i < 64; i++ {
				assignment := &indexToCharCircuit{Index: i, Char: uints.NewU8(tc.alphabet[i])}
				require.NoError(t, isSolved(&indexToCharCircuit{Enc: tc.enc}, assignment), "index %d", i)
			}

			for _, i := range []int{64, 65, 128, 255} {
				assignment := &indexToCharCircuit{Index: i, Char: uints.NewU8('A')}
				require.Error(t, isSolved(&indexToCharCircuit{Enc: tc.enc}, assignment), "index %d", i)
			}
		})
	}
}

func TestDecodeKnownVector(t *testing.T) {
	input := "7xQMDuoVVU4m0W0WRVSrVXMeGSIASsnucK9dJsrc+vU="

	expected, err := common.ReferenceDecode(common.StdEncoding, input)
	require.NoError(t, err)
	require.Len(t, expected, 32)
	require.Equal(t, 32, common.DecodedLen([]byte(input)))

	require.NoError(t, checkDecode(t, input, expected))

	// flipping a single bit of the claimed output must fail
	tampered := append([]byte{}, expected...)
	tampered[17] ^= 0x04
	require.Error(t, checkDecode(t, input, tampered))
}

func TestDecodeRejectsLength(t *testing.T) {
	err := checkDecode(t, "ad/", []byte{0x69})
	require.ErrorContains(t, err, "input length must be a multiple of 4")

	_, err = frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, decodeTemplate(3, 1))
	require.ErrorContains(t, err, "input length must be a multiple of 4")
}

func TestDecodeRejectsAlphabet(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected []byte
	}{
		{"ad$=", []byte{0x69, 0xd0}},
		{"TWF\x00", []byte("Ma")},
		{"TW-u", []byte{0x4d, 0x6f, 0xae}},
	} {
		// the circuit only fails to solve, the native check names the character
		require.Error(t, checkDecode(t, tc.input, tc.expected), tc.input)
		require.ErrorIs(t, common.ValidateBase64(common.StdEncoding, []byte(tc.input)), common.ErrInvalidCharacter, tc.input)
	}
}

func TestDecodeRejectsDeclaredLength(t *testing.T) {
	err := checkDecode(t, "TWFu", []byte("Man!"))
	require.ErrorContains(t, err, common.ErrInvalidDeclaredLength.Error())
}

func TestDecodeTruncatesToDeclaredLength(t *testing.T) {
	require.NoError(t, checkDecode(t, "TWFu", []byte("Man")))
	require.NoError(t, checkDecode(t, "TWFu", []byte("Ma")))
	require.NoError(t, checkDecode(t, "TWFu", []byte{}))
	require.NoError(t, checkDecode(t, "TWE=", []byte("Ma")))
	require.NoError(t, checkDecode(t, "TQ==", []byte("M")))
}

func TestDecodeIgnoresPaddingPosition(t *testing.T) {
	// '=' decodes as zero bits wherever it appears, the declared length alone
	// decides the output
	native, err := common.NativeDecode(common.StdEncoding, []byte("TW=u"), 3)
	require.NoError(t, err)
	require.NoError(t, checkDecode(t, "TW=u", native))
}

func TestEncodePadding(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected string
	}{
		{"M", "TQ=="},
		{"Ma", "TWE="},
		{"Man", "TWFu"},
		{"Many", "TWFueQ=="},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, len(tc.expected), common.EncodedLen(len(tc.input)))

			assignment := &encodeCircuit{
				Bytes:   common.StringToU8Array(tc.input),
				Encoded: common.StringToU8Array(tc.expected),
			}
			template := &encodeCircuit{
				Enc:     common.StdEncoding,
				Bytes:   make([]uints.U8, len(tc.input)),
				Encoded: make([]uints.U8, len(tc.expected)),
			}
			require.NoError(t, isSolved(template, assignment))
		})
	}
}

func TestEncodeURLAlphabet(t *testing.T) {
	input := []byte{0xfb, 0xff}

	for _, tc := range []struct {
		enc      *common.Base64Encoding
		expected string
	}{
		{common.StdEncoding, "+/8="},
		{common.URLEncoding, "-_8="},
	} {
		require.Equal(t, tc.expected, common.ReferenceEncode(tc.enc, input))

		assignment := &encodeCircuit{
			Bytes:   common.BytesToU8Array(input),
			Encoded: common.StringToU8Array(tc.expected),
		}
		template := &encodeCircuit{
			Enc:     tc.enc,
			Bytes:   make([]uints.U8, len(input)),
			Encoded: make([]uints.U8, len(tc.expected)),
		}
		require.NoError(t, isSolved(template, assignment), tc.enc.Name)
	}
}

func TestEncodeWrongOutput(t *testing.T) {
	assignment := &encodeCircuit{
		Bytes:   common.StringToU8Array("Man"),
		Encoded: common.StringToU8Array("TWFv"),
	}
	template := &encodeCircuit{
		Enc:     common.StdEncoding,
		Bytes:   make([]uints.U8, 3),
		Encoded: make([]uints.U8, 4),
	}
	require.Error(t, isSolved(template, assignment))
}

func TestRoundTripRandom(t *testing.T) {
	iterations := 1000
	if testing.Short() {
		iterations = 50
	}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < iterations; i++ {
		data := make([]byte, rng.Intn(48)+1)
		rng.Read(data)

		assignment := &roundTripCircuit{Bytes: common.BytesToU8Array(data)}
		template := &roundTripCircuit{Bytes: make([]uints.U8, len(data))}
		require.NoError(t, isSolved(template, assignment), "input %x", data)
	}
}

func TestRoundTripURL(t *testing.T) {
	// bytes whose encodings hit indices 62 and 63
	for _, data := range [][]byte{{0xfb, 0xff}, {0xfb, 0xff, 0xbf, 0x00, 0x3e}, []byte("?>?>")} {
		assignment := &urlRoundTripCircuit{Bytes: common.BytesToU8Array(data)}
		template := &urlRoundTripCircuit{Bytes: make([]uints.U8, len(data))}
		require.NoError(t, isSolved(template, assignment), "input %x", data)
	}
}

func TestDecodeMatchesReference(t *testing.T) {
	iterations := 1000
	if testing.Short() {
		iterations = 50
	}

	for i := 0; i < iterations; i++ {
		input, err := common.GenerateRandomBase64(64)
		require.NoError(t, err)

		expected, err := common.ReferenceDecode(common.StdEncoding, input)
		require.NoError(t, err)
		require.Len(t, expected, common.DecodedLen([]byte(input)))

		require.NoError(t, checkDecode(t, input, expected), "input %s", input)
	}
}

func TestCompileDeterministic(t *testing.T) {
	first, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, decodeTemplate(44, 32))
	require.NoError(t, err)
	second, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, decodeTemplate(44, 32))
	require.NoError(t, err)

	require.Equal(t, first.GetNbConstraints(), second.GetNbConstraints())
	require.Equal(t, first.GetNbInternalVariables(), second.GetNbInternalVariables())
}
