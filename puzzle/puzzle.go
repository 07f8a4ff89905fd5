// Package puzzle implements the spending-logic side of the coin set: the
// pay-to-synthetic-key puzzle, its solution format, the condition language
// a spend emits, and the Runner oracle that executes a puzzle/solution pair
// into conditions and a cost.
package puzzle

import (
	"crypto/sha256"

	"github.com/herumi/bls-eth-go-binary/bls"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/keys"
)

const (
	// revealVersion tags the puzzle reveal serialization.
	revealVersion = 0x01

	// publicKeySize is the compressed G1 width.
	publicKeySize = 48

	// RevealSize is the exact byte length of a standard puzzle reveal.
	RevealSize = 1 + publicKeySize
)

// Puzzle is the standard pay-to-public-key puzzle. It commits to the
// synthetic public key, so the same address serves both the normal spend
// path and the hidden one.
type Puzzle struct {
	syntheticKey *bls.PublicKey
}

// ForPublicKey builds the puzzle for a base (derived) public key by
// offsetting it with the hidden-puzzle commitment.
func ForPublicKey(basePK *bls.PublicKey, hiddenPuzzleHash coin.Bytes32) (*Puzzle, error) {
	synthetic, err := keys.SyntheticPublicKey(basePK, hiddenPuzzleHash)
	if err != nil {
		return nil, err
	}
	return &Puzzle{syntheticKey: synthetic}, nil
}

// FromReveal parses a serialized puzzle reveal.
func FromReveal(reveal []byte) (*Puzzle, error) {
	if len(reveal) != RevealSize || reveal[0] != revealVersion {
		return nil, ErrInvalidReveal
	}

	pk, err := keys.PublicKeyFromBytes(reveal[1:])
	if err != nil {
		return nil, ErrInvalidReveal
	}
	return &Puzzle{syntheticKey: pk}, nil
}

// SyntheticKey returns the public key the puzzle commits to.
func (p *Puzzle) SyntheticKey() *bls.PublicKey {
	return p.syntheticKey
}

// Reveal returns the serialized puzzle: version byte followed by the
// compressed synthetic public key.
func (p *Puzzle) Reveal() []byte {
	out := make([]byte, 0, RevealSize)
	out = append(out, revealVersion)
	out = append(out, p.syntheticKey.Serialize()...)
	return out
}

// Hash returns the puzzle hash, SHA256 of the reveal. This is the address
// commitment: within a derivation branch it is one-to-one with the owning
// key.
func (p *Puzzle) Hash() coin.Bytes32 {
	return coin.Bytes32(sha256.Sum256(p.Reveal()))
}
