package coin

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// HashSize is the width of every hash-shaped identifier in the coin set
// (puzzle hashes, coin ids, announcement ids).
const HashSize = 32

// Bytes32 is a fixed-width hash value. It marshals to and from 0x-prefixed
// hex in JSON, matching the node RPC wire format.
type Bytes32 [HashSize]byte

// Bytes32FromHex parses a hex string, with or without a 0x prefix.
func Bytes32FromHex(s string) (Bytes32, error) {
	var b Bytes32
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return b, fmt.Errorf("coin: invalid hex: %w", err)
	}
	return Bytes32FromSlice(raw)
}

// Bytes32FromSlice copies a 32-byte slice into a Bytes32.
func Bytes32FromSlice(raw []byte) (Bytes32, error) {
	var b Bytes32
	if len(raw) != HashSize {
		return b, fmt.Errorf("coin: expected %d bytes, got %d", HashSize, len(raw))
	}
	copy(b[:], raw)
	return b, nil
}

// String returns the 0x-prefixed hex form.
func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

// IsZero reports whether the value is all zero bytes.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// MarshalJSON encodes the value as a 0x-prefixed hex string.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a 0x-prefixed (or bare) hex string.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coin: bytes32 must be a hex string: %w", err)
	}
	parsed, err := Bytes32FromHex(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// HexBytes is a variable-length byte string that marshals to 0x-prefixed
// hex in JSON. Used for puzzle reveals, solutions and signatures in the
// spend-bundle transport document.
type HexBytes []byte

// String returns the 0x-prefixed hex form.
func (h HexBytes) String() string {
	return "0x" + hex.EncodeToString(h)
}

// MarshalJSON encodes the bytes as a 0x-prefixed hex string.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a 0x-prefixed (or bare) hex string.
func (h *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coin: hex bytes must be a hex string: %w", err)
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return fmt.Errorf("coin: invalid hex: %w", err)
	}
	*h = raw
	return nil
}
