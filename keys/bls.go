// Package keys implements the hierarchical-deterministic key tree for the
// wallet engine: EIP-2333 master and hardened derivation, public-key-only
// unhardened derivation, and the synthetic-key offset that hides an
// alternate spend path behind an unchanged address.
//
// Key hierarchy: m/12381/8444/2/index, both hardened and unhardened.
package keys

import (
	"math/big"

	"github.com/herumi/bls-eth-go-binary/bls"
)

// blsOrder is the BLS12-381 scalar field order r. All secret-key scalars
// live in [1, r).
var blsOrder *big.Int

func init() {
	if err := bls.Init(bls.BLS12_381); err != nil {
		panic("keys: bls init: " + err.Error())
	}
	if err := bls.SetETHmode(bls.EthModeDraft07); err != nil {
		panic("keys: bls eth mode: " + err.Error())
	}

	var ok bool
	blsOrder, ok = new(big.Int).SetString(
		"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)
	if !ok {
		panic("keys: bad curve order constant")
	}
}

// SecretKey is a BLS12-381 secret key. The scalar value is kept in big.Int
// form as the canonical representation; the herumi form is built from it
// for signing and public-key computation.
type SecretKey struct {
	v  *big.Int
	sk *bls.SecretKey
}

// newSecretKey builds a SecretKey from a scalar, reducing it mod r.
// The zero scalar is rejected: it has no usable public key.
func newSecretKey(v *big.Int) (*SecretKey, error) {
	reduced := new(big.Int).Mod(v, blsOrder)
	if reduced.Sign() == 0 {
		return nil, ErrZeroKey
	}

	sk := new(bls.SecretKey)
	if err := sk.SetLittleEndianMod(littleEndian32(reduced)); err != nil {
		return nil, ErrDerivationFailed
	}
	return &SecretKey{v: reduced, sk: sk}, nil
}

// SecretKeyFromBytes parses the canonical 32-byte big-endian serialization
// produced by Bytes.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != 32 {
		return nil, ErrInvalidKeyBytes
	}
	v := new(big.Int).SetBytes(b)
	if v.Cmp(blsOrder) >= 0 {
		return nil, ErrInvalidKeyBytes
	}
	return newSecretKey(v)
}

// Bytes returns the scalar as 32 big-endian bytes.
func (k *SecretKey) Bytes() []byte {
	b := make([]byte, 32)
	k.v.FillBytes(b)
	return b
}

// PublicKey returns the corresponding G1 public key.
func (k *SecretKey) PublicKey() *bls.PublicKey {
	return k.sk.GetPublicKey()
}

// SignByte signs a message, producing a G2 signature element.
func (k *SecretKey) SignByte(msg []byte) *bls.Sign {
	return k.sk.SignByte(msg)
}

// PublicKeyFromBytes parses a 48-byte compressed G1 public key.
func PublicKeyFromBytes(b []byte) (*bls.PublicKey, error) {
	pk := new(bls.PublicKey)
	if err := pk.Deserialize(b); err != nil {
		return nil, ErrInvalidKeyBytes
	}
	return pk, nil
}

// PublicKeyFromHex parses a hex-encoded compressed G1 public key, with or
// without a 0x prefix.
func PublicKeyFromHex(s string) (*bls.PublicKey, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	pk := new(bls.PublicKey)
	if err := pk.DeserializeHexStr(s); err != nil {
		return nil, ErrInvalidKeyBytes
	}
	return pk, nil
}

// clonePublicKey copies a public key through its serialized form so the
// caller can mutate the copy (herumi point addition is in place).
func clonePublicKey(pk *bls.PublicKey) (*bls.PublicKey, error) {
	out := new(bls.PublicKey)
	if err := out.Deserialize(pk.Serialize()); err != nil {
		return nil, ErrDerivationFailed
	}
	return out, nil
}

// littleEndian32 returns the scalar as 32 little-endian bytes.
func littleEndian32(v *big.Int) []byte {
	be := make([]byte, 32)
	v.FillBytes(be)
	le := make([]byte, 32)
	for i := range be {
		le[i] = be[31-i]
	}
	return le
}
