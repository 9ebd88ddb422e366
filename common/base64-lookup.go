package common

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
)

// Base64CharToIndex maps an ASCII character to its 6-bit base64 value.
//
// Every class of the table is evaluated and the result is the sum of
// indicator*(char+offset), so there is no branching on the character. The
// padding character matches a class but yields 0. The indicators must add up
// to exactly 1, otherwise the character is outside the alphabet and the
// circuit is not satisfiable.
//
// The solver only reports an unsatisfied constraint for such a character. Run
// ValidateBase64 on the witness first to get ErrInvalidCharacter with the
// offending position.
func Base64CharToIndex(api frontend.API, enc *Base64Encoding, char uints.U8) frontend.Variable {
	// the indicators below are only sound on 8-bit values
	api.ToBinary(char.Val, 8)

	return lookupClasses(api, enc.decode, char.Val)
}

// Base64IndexToChar maps a 6-bit value to its ASCII base64 character. An index
// outside of [0, 63] matches no class and makes the circuit unsatisfiable.
func Base64IndexToChar(api frontend.API, enc *Base64Encoding, index frontend.Variable) uints.U8 {
	api.ToBinary(index, 8)

	return uints.U8{Val: lookupClasses(api, enc.encode, index)}
}

func lookupClasses(api frontend.API, classes []base64Class, x frontend.Variable) frontend.Variable {
	value := frontend.Variable(0)
	matches := frontend.Variable(0)

	for _, class := range classes {
		indicator := isInRange(api, x, class.Lo, class.Hi, 8)
		matches = api.Add(matches, indicator)

		if class.Pad {
			continue
		}
		value = api.Add(value, api.Mul(indicator, addConst(api, x, class.Offset)))
	}

	api.AssertIsEqual(matches, 1)

	return value
}

// isInRange returns 1 if lo <= x <= hi and 0 otherwise. x must fit in nbBits.
//
// x-lo+2^n and hi-x+2^n both lie in [1, 2^(n+1)), their bit n is set exactly
// when the respective bound holds.
func isInRange(api frontend.API, x frontend.Variable, lo, hi, nbBits int) frontend.Variable {
	if lo == hi {
		return api.IsZero(api.Sub(x, lo))
	}

	offset := 1 << nbBits

	geLo := api.ToBinary(api.Add(api.Sub(x, lo), offset), nbBits+1)[nbBits]
	leHi := api.ToBinary(api.Sub(hi+offset, x), nbBits+1)[nbBits]

	return api.And(geLo, leHi)
}

func addConst(api frontend.API, x frontend.Variable, k int) frontend.Variable {
	if k < 0 {
		return api.Sub(x, -k)
	}
	return api.Add(x, k)
}
