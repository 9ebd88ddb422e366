package cb64

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/math/uints"
	"github.com/mynextid/zk-base64/common"
)

// CircuitDecodeDigest proves knowledge of a base64 string whose decoded bytes
// hash to a public SHA-256 digest. Neither the string nor the bytes are revealed.
type CircuitDecodeDigest struct {
	// number of decoded bytes, fixed when the circuit is compiled
	ByteLen int `gnark:"-"`

	// Secret input
	Encoded []uints.U8 `gnark:",secret"`

	// Public input
	Digest []uints.U8 `gnark:",public"`
}

func (c *CircuitDecodeDigest) Define(api frontend.API) error {
	decoded, err := common.DecodeBase64(api, c.Encoded, c.ByteLen)
	if err != nil {
		return err
	}

	digest, err := common.SHA256(api, decoded)
	if err != nil {
		return err
	}

	common.AssertIsEqualBytes(api, digest, c.Digest)

	return nil
}
