// Package coin defines the immutable value types of the coin-set model:
// coins, their chain records, and in-transaction announcements.
//
// A coin's identity is derived from its constituents, never assigned: two
// coins with the same parent, puzzle hash and amount are the same coin.
package coin

import "crypto/sha256"

// Coin is an unspent unit of value locked under a puzzle hash.
type Coin struct {
	ParentCoinID Bytes32 `json:"parent_coin_info"`
	PuzzleHash   Bytes32 `json:"puzzle_hash"`
	Amount       uint64  `json:"amount"`
}

// ID returns the coin's identity:
//
//	SHA256(parent_coin_id || puzzle_hash || canonical_amount_bytes)
func (c Coin) ID() Bytes32 {
	h := sha256.New()
	h.Write(c.ParentCoinID[:])
	h.Write(c.PuzzleHash[:])
	h.Write(AmountBytes(c.Amount))
	var id Bytes32
	copy(id[:], h.Sum(nil))
	return id
}

// AmountBytes encodes an amount as a minimal big-endian signed integer:
// zero encodes to no bytes, and a leading zero byte is prepended when the
// high bit of the first byte is set. This is the canonical encoding used
// inside coin identities; changing it changes every coin id.
func AmountBytes(amount uint64) []byte {
	if amount == 0 {
		return nil
	}
	buf := make([]byte, 0, 9)
	for shift := 56; shift >= 0; shift -= 8 {
		b := byte(amount >> uint(shift))
		if len(buf) == 0 && b == 0 {
			continue
		}
		buf = append(buf, b)
	}
	if buf[0]&0x80 != 0 {
		buf = append([]byte{0x00}, buf...)
	}
	return buf
}

// CoinRecord is a coin plus the chain metadata reported by the full node.
// Records are sourced exclusively from coin discovery and never mutated
// locally.
type CoinRecord struct {
	Coin                Coin   `json:"coin"`
	ConfirmedBlockIndex uint32 `json:"confirmed_block_index"`
	SpentBlockIndex     uint32 `json:"spent_block_index"`
	Spent               bool   `json:"spent"`
	Coinbase            bool   `json:"coinbase"`
	Timestamp           uint64 `json:"timestamp"`
}

// TotalAmount sums the coin amounts of a record set.
func TotalAmount(records []CoinRecord) uint64 {
	var total uint64
	for _, r := range records {
		total += r.Coin.Amount
	}
	return total
}
