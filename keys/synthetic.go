package keys

import (
	"crypto/sha256"
	"math/big"

	"github.com/herumi/bls-eth-go-binary/bls"

	"github.com/chiavault/libchiavault-go/coin"
)

// SyntheticOffset computes the scalar that separates the normal spend path
// from the hidden one:
//
//	offset = SHA256(base_pk || hidden_puzzle_hash) mod r
//
// The offset depends only on public data, so both sides of the air gap can
// reproduce it; it must match bit for bit or signatures will not verify.
func SyntheticOffset(basePK *bls.PublicKey, hiddenPuzzleHash coin.Bytes32) *big.Int {
	h := sha256.New()
	h.Write(basePK.Serialize())
	h.Write(hiddenPuzzleHash[:])
	return new(big.Int).Mod(new(big.Int).SetBytes(h.Sum(nil)), blsOrder)
}

// SyntheticSecretKey offsets a base secret key by the synthetic offset.
// Only the offline signer ever computes this.
func SyntheticSecretKey(base *SecretKey, hiddenPuzzleHash coin.Bytes32) (*SecretKey, error) {
	if base == nil {
		return nil, ErrNilKey
	}

	offset := SyntheticOffset(base.PublicKey(), hiddenPuzzleHash)
	return newSecretKey(new(big.Int).Add(base.v, offset))
}

// SyntheticPublicKey offsets a base public key by the synthetic offset's
// G1 point. Watch-only address generation uses this.
func SyntheticPublicKey(base *bls.PublicKey, hiddenPuzzleHash coin.Bytes32) (*bls.PublicKey, error) {
	if base == nil {
		return nil, ErrNilKey
	}

	offsetKey, err := newSecretKey(SyntheticOffset(base, hiddenPuzzleHash))
	if err != nil {
		return nil, err
	}

	synthetic, err := clonePublicKey(base)
	if err != nil {
		return nil, err
	}
	synthetic.Add(offsetKey.PublicKey())
	return synthetic, nil
}
