package puzzle

import (
	"encoding/binary"

	"github.com/chiavault/libchiavault-go/coin"
)

// Opcode identifies a condition kind emitted by puzzle execution.
type Opcode uint16

// Condition opcodes.
const (
	OpAggSigMe               Opcode = 50
	OpCreateCoin             Opcode = 51
	OpReserveFee             Opcode = 52
	OpCreateCoinAnnouncement Opcode = 60
	OpAssertCoinAnnouncement Opcode = 61
)

// Per-condition execution costs. Conditions without an entry cost nothing
// beyond the per-byte charge.
const (
	CostAggSig     = 1200000
	CostCreateCoin = 1800000
)

// Condition is one typed instruction emitted by executing a puzzle with a
// solution. Args hold the opcode-specific operands; use the As* accessors
// rather than indexing Args directly.
type Condition struct {
	Opcode Opcode          `json:"opcode"`
	Args   []coin.HexBytes `json:"args"`
}

// Cost returns the execution cost of this condition.
func (c Condition) Cost() uint64 {
	switch c.Opcode {
	case OpAggSigMe:
		return CostAggSig
	case OpCreateCoin:
		return CostCreateCoin
	default:
		return 0
	}
}

// CreateCoin builds a condition instructing the chain to create a child
// coin with the given puzzle hash and amount.
func CreateCoin(puzzleHash coin.Bytes32, amount uint64) Condition {
	return Condition{
		Opcode: OpCreateCoin,
		Args:   []coin.HexBytes{puzzleHash[:], amountArg(amount)},
	}
}

// AsCreateCoin extracts the destination and amount of a CREATE_COIN.
func (c Condition) AsCreateCoin() (coin.Bytes32, uint64, error) {
	var zero coin.Bytes32
	if c.Opcode != OpCreateCoin || len(c.Args) != 2 || len(c.Args[1]) != 8 {
		return zero, 0, ErrConditionShape
	}
	puzzleHash, err := coin.Bytes32FromSlice(c.Args[0])
	if err != nil {
		return zero, 0, ErrConditionShape
	}
	return puzzleHash, binary.BigEndian.Uint64(c.Args[1]), nil
}

// ReserveFee builds a condition reserving an explicit fee.
func ReserveFee(amount uint64) Condition {
	return Condition{Opcode: OpReserveFee, Args: []coin.HexBytes{amountArg(amount)}}
}

// AsReserveFee extracts the fee amount of a RESERVE_FEE.
func (c Condition) AsReserveFee() (uint64, error) {
	if c.Opcode != OpReserveFee || len(c.Args) != 1 || len(c.Args[0]) != 8 {
		return 0, ErrConditionShape
	}
	return binary.BigEndian.Uint64(c.Args[0]), nil
}

// CreateCoinAnnouncement builds the condition announcing a message from
// the spent coin.
func CreateCoinAnnouncement(message []byte) Condition {
	return Condition{Opcode: OpCreateCoinAnnouncement, Args: []coin.HexBytes{message}}
}

// AssertCoinAnnouncement builds the condition asserting that an
// announcement with the given id exists in the same bundle.
func AssertCoinAnnouncement(id coin.Bytes32) Condition {
	return Condition{Opcode: OpAssertCoinAnnouncement, Args: []coin.HexBytes{id[:]}}
}

// AsAssertCoinAnnouncement extracts the asserted announcement id.
func (c Condition) AsAssertCoinAnnouncement() (coin.Bytes32, error) {
	var zero coin.Bytes32
	if c.Opcode != OpAssertCoinAnnouncement || len(c.Args) != 1 {
		return zero, ErrConditionShape
	}
	id, err := coin.Bytes32FromSlice(c.Args[0])
	if err != nil {
		return zero, ErrConditionShape
	}
	return id, nil
}

// AggSigMe builds the signature-required condition: the bundle signature
// must include a signature over message (extended with the coin id and the
// network's genesis challenge) under the given public key.
func AggSigMe(publicKey []byte, message []byte) Condition {
	return Condition{Opcode: OpAggSigMe, Args: []coin.HexBytes{publicKey, message}}
}

// AsAggSigMe extracts the public key and base message of an AGG_SIG_ME.
func (c Condition) AsAggSigMe() (publicKey []byte, message []byte, err error) {
	if c.Opcode != OpAggSigMe || len(c.Args) != 2 || len(c.Args[0]) != publicKeySize {
		return nil, nil, ErrConditionShape
	}
	return c.Args[0], c.Args[1], nil
}

// Filter returns the conditions matching an opcode, preserving order.
func Filter(conditions []Condition, opcode Opcode) []Condition {
	var out []Condition
	for _, c := range conditions {
		if c.Opcode == opcode {
			out = append(out, c)
		}
	}
	return out
}

// amountArg encodes an amount operand as fixed-width big-endian.
func amountArg(amount uint64) coin.HexBytes {
	out := make(coin.HexBytes, 8)
	binary.BigEndian.PutUint64(out, amount)
	return out
}
