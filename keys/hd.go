package keys

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/herumi/bls-eth-go-binary/bls"
	e2util "github.com/wealdtech/go-eth2-util"
)

// MinSeedSize is the smallest seed accepted by master-key generation,
// per EIP-2333.
const MinSeedSize = 32

// MasterFromSeed derives the master secret key from seed material using
// EIP-2333 (HKDF mod r). Derivation is a pure function: the same seed
// always yields the same key.
func MasterFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) < MinSeedSize {
		return nil, ErrSeedTooShort
	}

	v, err := e2util.DeriveMasterSK(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: master: %w", ErrDerivationFailed, err)
	}
	return newSecretKey(v)
}

// DeriveChildHardened derives a hardened child key via EIP-2333. Hardened
// children require the parent secret key; there is no public-key-only
// counterpart, which is the point of hardened derivation.
func DeriveChildHardened(parent *SecretKey, index uint32) (*SecretKey, error) {
	if parent == nil {
		return nil, ErrNilKey
	}

	v, err := e2util.DeriveChildSK(parent.v, index)
	if err != nil {
		return nil, fmt.Errorf("%w: hardened child %d: %w", ErrDerivationFailed, index, err)
	}
	return newSecretKey(v)
}

// DeriveChildUnhardened derives an unhardened child secret key:
//
//	child = (parent + SHA256(parent_pk || be32(index))) mod r
//
// The matching public key is derivable from the parent public key alone
// (DeriveChildPKUnhardened), which is what makes watch-only discovery
// possible. The trade-off: a leaked child secret key plus the parent
// public key discloses sibling secret keys.
func DeriveChildUnhardened(parent *SecretKey, index uint32) (*SecretKey, error) {
	if parent == nil {
		return nil, ErrNilKey
	}

	offset := unhardenedOffset(parent.PublicKey(), index)
	return newSecretKey(new(big.Int).Add(parent.v, offset))
}

// DeriveChildPKUnhardened derives an unhardened child public key from the
// parent public key alone:
//
//	child_pk = parent_pk + offset * G1
func DeriveChildPKUnhardened(parent *bls.PublicKey, index uint32) (*bls.PublicKey, error) {
	if parent == nil {
		return nil, ErrNilKey
	}

	offsetKey, err := newSecretKey(unhardenedOffset(parent, index))
	if err != nil {
		return nil, err
	}

	child, err := clonePublicKey(parent)
	if err != nil {
		return nil, err
	}
	child.Add(offsetKey.PublicKey())
	return child, nil
}

// DerivePath derives along an index sequence from a master key, using the
// same mode (hardened or unhardened) at every step.
func DerivePath(master *SecretKey, path []uint32, hardened bool) (*SecretKey, error) {
	current := master
	for _, index := range path {
		var err error
		if hardened {
			current, err = DeriveChildHardened(current, index)
		} else {
			current, err = DeriveChildUnhardened(current, index)
		}
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// DerivePathPK derives along an index sequence from a public key alone.
// Only unhardened derivation is possible without the secret key.
func DerivePathPK(master *bls.PublicKey, path []uint32) (*bls.PublicKey, error) {
	current := master
	for _, index := range path {
		var err error
		current, err = DeriveChildPKUnhardened(current, index)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// WalletSK derives the wallet key at m/12381/8444/2/index.
func WalletSK(master *SecretKey, index uint32, hardened bool) (*SecretKey, error) {
	return DerivePath(master, []uint32{12381, 8444, 2, index}, hardened)
}

// WalletPK derives the unhardened wallet public key at m/12381/8444/2/index
// from the master public key alone.
func WalletPK(master *bls.PublicKey, index uint32) (*bls.PublicKey, error) {
	return DerivePathPK(master, []uint32{12381, 8444, 2, index})
}

// WalletIntermediatePK derives m/12381/8444/2 once; batch scanning derives
// each leaf from this intermediate instead of repeating the prefix walk.
func WalletIntermediatePK(master *bls.PublicKey) (*bls.PublicKey, error) {
	return DerivePathPK(master, []uint32{12381, 8444, 2})
}

// unhardenedOffset computes the scalar offset for an unhardened child:
// SHA256(parent_pk || be32(index)) mod r.
func unhardenedOffset(parentPK *bls.PublicKey, index uint32) *big.Int {
	var idx [4]byte
	binary.BigEndian.PutUint32(idx[:], index)

	h := sha256.New()
	h.Write(parentPK.Serialize())
	h.Write(idx[:])
	return new(big.Int).Mod(new(big.Int).SetBytes(h.Sum(nil)), blsOrder)
}
