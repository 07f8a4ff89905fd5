// Package address implements the checksummed text encoding of puzzle
// hashes: bech32m with a human-readable network prefix. Encoding round-trips
// exactly, and any single-character alteration fails the checksum.
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/chiavault/libchiavault-go/coin"
)

var (
	// ErrInvalidAddress indicates the address fails bech32m decoding
	// (bad checksum, wrong variant, or wrong payload width).
	ErrInvalidAddress = errors.New("address: invalid address")

	// ErrInvalidPrefix indicates an empty or malformed network prefix.
	ErrInvalidPrefix = errors.New("address: invalid prefix")
)

// Encode renders a puzzle hash as a bech32m address under the given
// network prefix.
func Encode(prefix string, puzzleHash coin.Bytes32) (string, error) {
	if prefix == "" || strings.ToLower(prefix) != prefix {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, prefix)
	}

	data, err := bech32.ConvertBits(puzzleHash[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	addr, err := bech32.EncodeM(prefix, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return addr, nil
}

// Decode parses a bech32m address back into its network prefix and puzzle
// hash. Checksum failures, the wrong bech32 variant, and payloads that are
// not exactly 32 bytes all fail with ErrInvalidAddress.
func Decode(addr string) (string, coin.Bytes32, error) {
	var zero coin.Bytes32

	prefix, data, version, err := bech32.DecodeGeneric(addr)
	if err != nil {
		return "", zero, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if version != bech32.VersionM {
		return "", zero, fmt.Errorf("%w: not bech32m", ErrInvalidAddress)
	}

	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", zero, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	puzzleHash, err := coin.Bytes32FromSlice(raw)
	if err != nil {
		return "", zero, fmt.Errorf("%w: payload must be 32 bytes", ErrInvalidAddress)
	}
	return prefix, puzzleHash, nil
}
