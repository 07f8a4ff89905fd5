// Package signer implements the offline half of the engine: it reproduces
// the derivation tree from root key material, matches bundle inputs to
// keys, recomputes each input's signing message by executing its puzzle,
// and aggregates the per-input BLS signatures into one.
//
// Nothing here touches the network; the spend-bundle document carries
// everything needed.
package signer

import (
	"bytes"
	"fmt"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/rs/zerolog"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/config"
	"github.com/chiavault/libchiavault-go/keys"
	"github.com/chiavault/libchiavault-go/puzzle"
	"github.com/chiavault/libchiavault-go/spend"
)

// Signer signs spend bundles with keys derived from a secret handle.
type Signer struct {
	params config.Params
	runner puzzle.Runner
	log    zerolog.Logger
}

// NewSigner creates a signer with the standard puzzle runner.
func NewSigner(params config.Params) *Signer {
	return &Signer{
		params: params,
		runner: puzzle.StandardRunner{},
		log:    zerolog.Nop(),
	}
}

// SetRunner overrides the puzzle-execution oracle.
func (s *Signer) SetRunner(r puzzle.Runner) { s.runner = r }

// SetLogger attaches a structured logger; the default discards everything.
// Key material is never logged regardless.
func (s *Signer) SetLogger(log zerolog.Logger) { s.log = log }

// Sign produces the signed bundle. The key index is rebuilt across
// [0, scanRange) using the same derivation mode the addresses were
// created with; an input owned by a puzzle hash outside that range fails
// with ErrUnknownSigningKey and no partial signature is ever returned.
//
// The input bundle is not mutated; the returned bundle shares its coin
// spends and carries the aggregate signature.
func (s *Signer) Sign(bundle *spend.SpendBundle, secret *keys.SecretHandle,
	scanRange uint32, hardened bool) (*spend.SpendBundle, error) {

	if bundle == nil || secret == nil {
		return nil, ErrNilParam
	}
	if len(bundle.CoinSpends) == 0 {
		return nil, fmt.Errorf("%w: no coin spends", ErrNilParam)
	}

	master, err := secret.MasterKey()
	if err != nil {
		return nil, err
	}

	index, err := s.buildKeyIndex(master, scanRange, hardened)
	if err != nil {
		return nil, err
	}

	signatures := make([]bls.Sign, 0, len(bundle.CoinSpends))
	for _, cs := range bundle.CoinSpends {
		sig, err := s.signOne(cs, index)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, *sig)
	}

	var aggregate bls.Sign
	aggregate.Aggregate(signatures)

	s.log.Info().
		Int("spends", len(bundle.CoinSpends)).
		Uint32("scan_range", scanRange).
		Msg("bundle signed")

	return &spend.SpendBundle{
		CoinSpends:          bundle.CoinSpends,
		AggregatedSignature: aggregate.Serialize(),
	}, nil
}

// buildKeyIndex derives puzzle hash to secret key across the scan range.
// Built once per signing session.
func (s *Signer) buildKeyIndex(master *keys.SecretKey, scanRange uint32, hardened bool) (map[coin.Bytes32]*keys.SecretKey, error) {
	index := make(map[coin.Bytes32]*keys.SecretKey, scanRange)
	for i := uint32(0); i < scanRange; i++ {
		childSK, err := keys.WalletSK(master, i, hardened)
		if err != nil {
			return nil, fmt.Errorf("signer: derive index %d: %w", i, err)
		}

		puz, err := puzzle.ForPublicKey(childSK.PublicKey(), s.params.HiddenPuzzleHash)
		if err != nil {
			return nil, fmt.Errorf("signer: puzzle for index %d: %w", i, err)
		}
		index[puz.Hash()] = childSK
	}
	return index, nil
}

// signOne computes one input's signature: resolve the owning key, offset
// it into the synthetic secret key, execute the puzzle to find the single
// signable condition, and sign its message extended with the coin id and
// the network's genesis challenge.
func (s *Signer) signOne(cs spend.CoinSpend, index map[coin.Bytes32]*keys.SecretKey) (*bls.Sign, error) {
	baseSK, ok := index[cs.Coin.PuzzleHash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSigningKey, cs.Coin.PuzzleHash)
	}

	syntheticSK, err := keys.SyntheticSecretKey(baseSK, s.params.HiddenPuzzleHash)
	if err != nil {
		return nil, err
	}

	conditions, _, err := s.runner.Run(cs.PuzzleReveal, cs.Solution, s.params.MaxBlockCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConditionParse, err)
	}

	// Single-signer puzzles only: exactly one signable condition.
	signable := puzzle.Filter(conditions, puzzle.OpAggSigMe)
	if len(signable) != 1 {
		return nil, fmt.Errorf("%w: expected 1 signable condition, got %d", ErrConditionParse, len(signable))
	}

	conditionPK, conditionMsg, err := signable[0].AsAggSigMe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConditionParse, err)
	}
	if !bytes.Equal(conditionPK, syntheticSK.PublicKey().Serialize()) {
		return nil, fmt.Errorf("%w: %s", ErrKeyMismatch, cs.Coin.PuzzleHash)
	}

	coinID := cs.Coin.ID()
	message := make([]byte, 0, len(conditionMsg)+len(coinID)+len(s.params.GenesisChallenge))
	message = append(message, conditionMsg...)
	message = append(message, coinID[:]...)
	message = append(message, s.params.GenesisChallenge[:]...)

	signature := syntheticSK.SignByte(message)
	if !signature.VerifyByte(syntheticSK.PublicKey(), message) {
		return nil, fmt.Errorf("%w: %s", ErrSigningFailed, cs.Coin.PuzzleHash)
	}
	return signature, nil
}
