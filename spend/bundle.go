package spend

import (
	"encoding/json"
	"fmt"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/puzzle"
)

// CoinSpend is one input of a bundle: the consumed coin, its puzzle
// reveal, and the solution that drives it. Together with the network
// parameters this is everything the offline signer needs to re-derive the
// signing message -- no network access required.
type CoinSpend struct {
	Coin         coin.Coin     `json:"coin"`
	PuzzleReveal coin.HexBytes `json:"puzzle_reveal"`
	Solution     coin.HexBytes `json:"solution"`
}

// SpendBundle is the transaction transport document: an ordered list of
// coin spends plus one aggregate signature. The signature is the G2
// identity element until the offline signer fills it in; nothing else in
// the document ever changes after building.
type SpendBundle struct {
	CoinSpends          []CoinSpend   `json:"coin_spends"`
	AggregatedSignature coin.HexBytes `json:"aggregated_signature"`
}

// g2IdentitySize is the compressed G2 width.
const g2IdentitySize = 96

// IdentitySignature returns the aggregate-signature identity element
// (the compressed G2 point at infinity).
func IdentitySignature() coin.HexBytes {
	id := make(coin.HexBytes, g2IdentitySize)
	id[0] = 0xc0
	return id
}

// NewUnsignedBundle wraps coin spends into an unsigned bundle.
func NewUnsignedBundle(spends []CoinSpend) *SpendBundle {
	return &SpendBundle{
		CoinSpends:          spends,
		AggregatedSignature: IdentitySignature(),
	}
}

// Signed reports whether the signature field holds something other than
// the identity element.
func (b *SpendBundle) Signed() bool {
	return len(b.AggregatedSignature) == g2IdentitySize &&
		b.AggregatedSignature.String() != IdentitySignature().String()
}

// Removals returns the coins consumed by the bundle.
func (b *SpendBundle) Removals() []coin.Coin {
	out := make([]coin.Coin, len(b.CoinSpends))
	for i, cs := range b.CoinSpends {
		out[i] = cs.Coin
	}
	return out
}

// Additions executes every spend through the runner and returns the coins
// the bundle creates.
func (b *SpendBundle) Additions(runner puzzle.Runner, maxCost uint64) ([]coin.Coin, error) {
	var out []coin.Coin
	for _, cs := range b.CoinSpends {
		conditions, _, err := runner.Run(cs.PuzzleReveal, cs.Solution, maxCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
		}

		parent := cs.Coin.ID()
		for _, c := range puzzle.Filter(conditions, puzzle.OpCreateCoin) {
			puzzleHash, amount, err := c.AsCreateCoin()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
			}
			out = append(out, coin.Coin{
				ParentCoinID: parent,
				PuzzleHash:   puzzleHash,
				Amount:       amount,
			})
		}
	}
	return out, nil
}

// Fees returns the realized fee: amount consumed minus amount created.
func (b *SpendBundle) Fees(runner puzzle.Runner, maxCost uint64) (uint64, error) {
	additions, err := b.Additions(runner, maxCost)
	if err != nil {
		return 0, err
	}

	var in, out uint64
	for _, c := range b.Removals() {
		in += c.Amount
	}
	for _, c := range additions {
		out += c.Amount
	}
	if out > in {
		return 0, fmt.Errorf("%w: additions exceed removals", ErrInvalidBundle)
	}
	return in - out, nil
}

// ToJSON serializes the bundle as the transport document.
func (b *SpendBundle) ToJSON() ([]byte, error) {
	return json.Marshal(b)
}

// FromJSON parses a transport document.
func FromJSON(data []byte) (*SpendBundle, error) {
	var b SpendBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	if len(b.CoinSpends) == 0 {
		return nil, fmt.Errorf("%w: no coin spends", ErrInvalidBundle)
	}
	if len(b.AggregatedSignature) != g2IdentitySize {
		return nil, fmt.Errorf("%w: signature must be %d bytes", ErrInvalidBundle, g2IdentitySize)
	}
	return &b, nil
}
