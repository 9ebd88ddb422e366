package cb64

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/mynextid/zk-base64/common"
)

// CircuitEncode proves that the public base64 string encodes secret bytes
type CircuitEncode struct {
	// Secret input
	Bytes []uints.U8 `gnark:",secret"`

	// Public input
	Encoded []uints.U8 `gnark:",public"`
}

func (c *CircuitEncode) Define(api frontend.API) error {
	return defineEncode(api, common.StdEncoding, c.Bytes, c.Encoded)
}

// CircuitEncodeURL is CircuitEncode over the padded base64url alphabet
type CircuitEncodeURL struct {
	// Secret input
	Bytes []uints.U8 `gnark:",secret"`

	// Public input
	Encoded []uints.U8 `gnark:",public"`
}

func (c *CircuitEncodeURL) Define(api frontend.API) error {
	return defineEncode(api, common.URLEncoding, c.Bytes, c.Encoded)
}

func defineEncode(api frontend.API, enc *common.Base64Encoding, bytes, encoded []uints.U8) error {
	if len(encoded) != common.EncodedLen(len(bytes)) {
		return fmt.Errorf("%d bytes encode to %d characters, got %d", len(bytes), common.EncodedLen(len(bytes)), len(encoded))
	}

	chars := common.EncodeBase64WithEncoding(api, enc, bytes)
	common.AssertIsEqualBytes(api, chars, encoded)

	return nil
}
