package spend

import (
	"crypto/sha256"
	"fmt"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/rs/zerolog"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/config"
	"github.com/chiavault/libchiavault-go/puzzle"
)

// Output is one requested payment: destination puzzle hash and amount.
type Output struct {
	PuzzleHash coin.Bytes32
	Amount     uint64
}

// Builder constructs unsigned spend bundles. One selected coin -- the
// primary -- creates the requested outputs, pays the fee, and announces a
// message binding the whole input/output set; every other coin only
// asserts that announcement. Detaching or altering any part changes the
// binding message and invalidates every assertion.
type Builder struct {
	params config.Params
	runner puzzle.Runner
	log    zerolog.Logger
}

// NewBuilder creates a builder with the standard puzzle runner.
func NewBuilder(params config.Params) *Builder {
	return &Builder{
		params: params,
		runner: puzzle.StandardRunner{},
		log:    zerolog.Nop(),
	}
}

// SetRunner overrides the puzzle-execution oracle.
func (b *Builder) SetRunner(r puzzle.Runner) { b.runner = r }

// SetLogger attaches a structured logger; the default discards everything.
func (b *Builder) SetLogger(log zerolog.Logger) { b.log = log }

// Build assembles the unsigned bundle for the selected coins. publicKeys
// maps each selected coin's puzzle hash to its base (derived) public key;
// change, when any, goes to changePuzzleHash.
func (b *Builder) Build(selected []coin.Coin, publicKeys map[coin.Bytes32]*bls.PublicKey,
	outputs []Output, fee uint64, changePuzzleHash coin.Bytes32) (*SpendBundle, error) {

	if len(selected) == 0 {
		return nil, ErrNoInputs
	}

	var totalIn, totalOut uint64
	for _, c := range selected {
		totalIn += c.Amount
	}
	for _, o := range outputs {
		totalOut += o.Amount
	}
	if totalIn < totalOut+fee {
		// Select's postcondition makes this unreachable.
		return nil, fmt.Errorf("%w: have %d, need %d", ErrUnderfunded, totalIn, totalOut+fee)
	}

	// Change, when positive, becomes one more payment from the primary.
	payments := make([]puzzle.Payment, 0, len(outputs)+1)
	for _, o := range outputs {
		payments = append(payments, puzzle.Payment{PuzzleHash: o.PuzzleHash, Amount: o.Amount})
	}
	change := totalIn - totalOut - fee
	if change > 0 {
		payments = append(payments, puzzle.Payment{PuzzleHash: changePuzzleHash, Amount: change})
	}

	primary := selected[0]
	primaryID := primary.ID()

	bindingMessage := bindingMessage(selected, primaryID, payments)
	announcement := coin.Announcement{OriginCoinID: primaryID, Message: bindingMessage[:]}
	assertID := announcement.ID()

	spends := make([]CoinSpend, 0, len(selected))
	for i, c := range selected {
		puz, err := b.puzzleFor(c, publicKeys)
		if err != nil {
			return nil, err
		}

		var solution puzzle.Solution
		if i == 0 {
			solution = puzzle.Solution{
				Payments:      payments,
				Fee:           fee,
				Announcements: [][]byte{bindingMessage[:]},
			}
		} else {
			solution = puzzle.Solution{
				AssertAnnouncements: []coin.Bytes32{assertID},
			}
		}

		spends = append(spends, CoinSpend{
			Coin:         c,
			PuzzleReveal: puz.Reveal(),
			Solution:     solution.Encode(),
		})
	}

	bundle := NewUnsignedBundle(spends)

	totalCost, err := b.checkCost(bundle)
	if err != nil {
		return nil, err
	}

	realizedFee, err := bundle.Fees(b.runner, b.params.MaxBlockCost)
	if err != nil {
		return nil, err
	}
	if realizedFee != fee {
		return nil, fmt.Errorf("%w: realized %d, requested %d", ErrFeeMismatch, realizedFee, fee)
	}

	b.log.Info().
		Int("spends", len(spends)).
		Uint64("fee", fee).
		Uint64("change", change).
		Uint64("cost", totalCost).
		Msg("unsigned bundle built")
	return bundle, nil
}

// puzzleFor resolves a selected coin's puzzle and verifies the key
// actually owns the coin.
func (b *Builder) puzzleFor(c coin.Coin, publicKeys map[coin.Bytes32]*bls.PublicKey) (*puzzle.Puzzle, error) {
	basePK, ok := publicKeys[c.PuzzleHash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPublicKey, c.PuzzleHash)
	}

	puz, err := puzzle.ForPublicKey(basePK, b.params.HiddenPuzzleHash)
	if err != nil {
		return nil, err
	}
	if puz.Hash() != c.PuzzleHash {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleMismatch, c.PuzzleHash)
	}
	return puz, nil
}

// checkCost executes every spend and enforces the cost policy: execution
// cost plus a per-byte charge must stay under the configured fraction of
// the network ceiling.
func (b *Builder) checkCost(bundle *SpendBundle) (uint64, error) {
	var total uint64
	for _, cs := range bundle.CoinSpends {
		_, execCost, err := b.runner.Run(cs.PuzzleReveal, cs.Solution, b.params.MaxBlockCost)
		if err != nil {
			return 0, err
		}
		total += execCost
		total += b.params.CostPerByte * uint64(len(cs.PuzzleReveal)+len(cs.Solution))
	}

	if ceiling := b.params.CostCeiling(); total > ceiling {
		return 0, fmt.Errorf("%w: cost %d, ceiling %d", ErrCostExceeded, total, ceiling)
	}
	return total, nil
}

// bindingMessage commits the entire input/output set as one unit:
//
//	SHA256(id(in_1) || ... || id(in_n) || id(new_1) || ... || id(new_m))
//
// where the new coins are the primary's children, one per payment.
func bindingMessage(selected []coin.Coin, primaryID coin.Bytes32, payments []puzzle.Payment) coin.Bytes32 {
	h := sha256.New()
	for _, c := range selected {
		id := c.ID()
		h.Write(id[:])
	}
	for _, p := range payments {
		child := coin.Coin{ParentCoinID: primaryID, PuzzleHash: p.PuzzleHash, Amount: p.Amount}
		id := child.ID()
		h.Write(id[:])
	}
	var msg coin.Bytes32
	copy(msg[:], h.Sum(nil))
	return msg
}
