package common

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// Bit vectors are LSB first: bits[0] is the least significant bit, as returned
// by api.ToBinary and consumed by api.FromBinary.

// repackDecodeBlock rewires four 6-bit groups into three 8-bit bytes:
//
//	byte0 = g0<<2 | g1>>4
//	byte1 = (g1&0x0f)<<4 | g2>>2
//	byte2 = (g2&0x03)<<6 | g3
func repackDecodeBlock(g [4][]frontend.Variable) [3][]frontend.Variable {
	var out [3][]frontend.Variable

	out[0] = make([]frontend.Variable, 0, 8)
	out[0] = append(out[0], g[1][4], g[1][5])
	out[0] = append(out[0], g[0]...)

	out[1] = make([]frontend.Variable, 8)
	for j := 0; j < 4; j++ {
		out[1][j] = g[2][j+2]
		out[1][j+4] = g[1][j]
	}

	out[2] = make([]frontend.Variable, 0, 8)
	out[2] = append(out[2], g[3]...)
	out[2] = append(out[2], g[2][0], g[2][1])

	return out
}

// repackEncode turns bytes into base64 table indices. The bytes are flattened
// into an MSB-first bit stream, zero padded to a multiple of 6 bits and cut in
// 6-bit windows.
func repackEncode(api frontend.API, input []uints.U8) []frontend.Variable {
	stream := make([]frontend.Variable, 0, len(input)*8+4)

	for _, b := range input {
		bits := api.ToBinary(b.Val, 8)
		for i := 7; i >= 0; i-- {
			stream = append(stream, bits[i])
		}
	}

	for len(stream)%6 != 0 {
		stream = append(stream, frontend.Variable(0))
	}

	indices := make([]frontend.Variable, 0, len(stream)/6)
	for i := 0; i < len(stream); i += 6 {
		window := make([]frontend.Variable, 6)
		for j := 0; j < 6; j++ {
			window[j] = stream[i+5-j]
		}
		indices = append(indices, api.FromBinary(window...))
	}

	return indices
}
