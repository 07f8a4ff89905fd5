// Package wallet is the online, watch-only entry point of the engine. It
// holds only the master public key: it can derive addresses, discover
// coins, and build unsigned spend bundles, but it can never sign. The
// document it produces crosses the air gap to the signer package.
package wallet

import (
	"context"
	"fmt"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/rs/zerolog"

	"github.com/chiavault/libchiavault-go/address"
	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/config"
	"github.com/chiavault/libchiavault-go/keys"
	"github.com/chiavault/libchiavault-go/network"
	"github.com/chiavault/libchiavault-go/puzzle"
	"github.com/chiavault/libchiavault-go/scan"
	"github.com/chiavault/libchiavault-go/spend"
)

// Payment is one requested transfer to an encoded address.
type Payment struct {
	Address string
	Amount  uint64
}

// Wallet is the watch-only online wallet.
type Wallet struct {
	masterPK *bls.PublicKey
	params   config.Params
	scanner  *scan.Scanner
	builder  *spend.Builder
	log      zerolog.Logger
}

// New creates a wallet over a master public key and a ledger service.
func New(masterPK *bls.PublicKey, svc network.FullNodeService, params config.Params) (*Wallet, error) {
	if masterPK == nil || svc == nil {
		return nil, ErrNilParam
	}
	if err := config.Validate(params); err != nil {
		return nil, err
	}

	return &Wallet{
		masterPK: masterPK,
		params:   params,
		scanner:  scan.NewScanner(svc, params),
		builder:  spend.NewBuilder(params),
		log:      zerolog.Nop(),
	}, nil
}

// SetLogger attaches a structured logger to the wallet and its components.
func (w *Wallet) SetLogger(log zerolog.Logger) {
	w.log = log
	w.scanner.SetLogger(log)
	w.builder.SetLogger(log)
}

// SetScanPolicy overrides the scan termination policy.
func (w *Wallet) SetScanPolicy(p scan.Policy) { w.scanner.SetPolicy(p) }

// SetScanCache attaches a derivation cache to the scanner.
func (w *Wallet) SetScanCache(c *scan.Cache) { w.scanner.SetCache(c) }

// Address derives the wallet address at an index: the bech32m encoding of
// the puzzle hash for the unhardened key at m/12381/8444/2/index.
func (w *Wallet) Address(index uint32) (string, error) {
	childPK, err := keys.WalletPK(w.masterPK, index)
	if err != nil {
		return "", err
	}

	puz, err := puzzle.ForPublicKey(childPK, w.params.HiddenPuzzleHash)
	if err != nil {
		return "", err
	}

	puzzleHash := puz.Hash()
	return address.Encode(w.params.AddressPrefix, puzzleHash)
}

// CreateTransaction scans for spendable coins, selects the oldest coins
// covering the payments plus fee, and builds the unsigned bundle. Change,
// when any, goes to the wallet's lowest-index address.
func (w *Wallet) CreateTransaction(ctx context.Context, payments []Payment, fee uint64) (*spend.SpendBundle, error) {
	if len(payments) == 0 {
		return nil, ErrNoPayments
	}

	outputs := make([]spend.Output, 0, len(payments))
	var target uint64
	for _, p := range payments {
		prefix, puzzleHash, err := address.Decode(p.Address)
		if err != nil {
			return nil, err
		}
		if prefix != w.params.AddressPrefix {
			return nil, fmt.Errorf("%w: %q is %q, wallet is %q",
				ErrWrongNetwork, p.Address, prefix, w.params.AddressPrefix)
		}
		outputs = append(outputs, spend.Output{PuzzleHash: puzzleHash, Amount: p.Amount})
		target += p.Amount
	}
	target += fee

	result, err := w.scanner.Scan(ctx, w.masterPK)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: no spendable coins found", spend.ErrInsufficientFunds)
	}

	selected, err := spend.Select(result.Records, target)
	if err != nil {
		return nil, err
	}

	return w.builder.Build(selected, result.KeyMap(), outputs, fee, result.FirstPuzzleHash())
}

// ChangePuzzleHash returns the wallet's default change destination, the
// puzzle hash at index zero.
func (w *Wallet) ChangePuzzleHash() (coin.Bytes32, error) {
	childPK, err := keys.WalletPK(w.masterPK, 0)
	if err != nil {
		return coin.Bytes32{}, err
	}

	puz, err := puzzle.ForPublicKey(childPK, w.params.HiddenPuzzleHash)
	if err != nil {
		return coin.Bytes32{}, err
	}
	return puz.Hash(), nil
}
