package cb64

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/mynextid/zk-base64/common"
)

// CircuitDecode proves that the public bytes are the decoding of a secret
// base64 string. The number of decoded bytes is the length of Decoded.
type CircuitDecode struct {
	// Secret input
	Encoded []uints.U8 `gnark:",secret"`

	// Public input
	Decoded []uints.U8 `gnark:",public"`
}

func (c *CircuitDecode) Define(api frontend.API) error {
	return defineDecode(api, common.StdEncoding, c.Encoded, c.Decoded)
}

// CircuitDecodeURL is CircuitDecode over the padded base64url alphabet
type CircuitDecodeURL struct {
	// Secret input
	Encoded []uints.U8 `gnark:",secret"`

	// Public input
	Decoded []uints.U8 `gnark:",public"`
}

func (c *CircuitDecodeURL) Define(api frontend.API) error {
	return defineDecode(api, common.URLEncoding, c.Encoded, c.Decoded)
}

func defineDecode(api frontend.API, enc *common.Base64Encoding, encoded, decoded []uints.U8) error {
	bytes, err := common.DecodeBase64WithEncoding(api, enc, encoded, len(decoded))
	if err != nil {
		return err
	}

	common.AssertIsEqualBytes(api, bytes, decoded)

	return nil
}
