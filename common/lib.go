package common

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// AssertIsEqualBytes asserts A and B hold the same bytes. The lengths are
// fixed at compile time, a mismatch is a circuit definition error.
func AssertIsEqualBytes(api frontend.API, A, B []uints.U8) {
	if len(A) != len(B) {
		panic("byte arrays must be of the same length")
	}

	for i := range A {
		api.AssertIsEqual(A[i].Val, B[i].Val)
	}
}
