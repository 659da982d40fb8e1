package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Handle is an opaque 32-byte reference to an encrypted value held by the coprocessor
type Handle [32]byte

// HexToHandle parses a 0x-prefixed hex handle
func HexToHandle(s string) (Handle, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Handle{}, err
	}
	return Handle(common.BytesToHash(b)), nil
}

// Hex returns the 0x-prefixed hex form of the handle
func (h Handle) Hex() string {
	return common.Hash(h).Hex()
}

func (h Handle) String() string {
	return h.Hex()
}

// EncryptedInput is the result of encrypting a plaintext for a given contract and caller
type EncryptedInput struct {
	Payload Handle `json:"payload"`
	Proof   []byte `json:"proof"`
}

// DecryptionProof is the result of the off-chain decryption phase. The ledger
// accepts EncodedClearValues only together with Proof.
type DecryptionProof struct {
	ClearValues        map[Handle]*big.Int `json:"clearValues"`
	EncodedClearValues []byte              `json:"encodedClearValues"`
	Proof              []byte              `json:"proof"`
}
