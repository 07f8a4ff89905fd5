// Package config defines the immutable network and policy parameters that
// every component of the wallet engine receives explicitly. There are no
// process-wide singletons: a Params value is constructed once and passed in.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/chiavault/libchiavault-go/coin"
)

// Derivation path constants, fixed by the key-derivation convention
// m/12381/8444/2/index.
const (
	PurposeBLS    = 12381
	CoinTypeChia  = 8444
	WalletAccount = 2
)

// Default policy values.
const (
	DefaultScanBatchSize    = 1000
	DefaultMaxScanBatches   = 100000
	DefaultSignScanRange    = 5000
	DefaultMaxBlockCost     = 11000000000
	DefaultCostLimitPercent = 50
	DefaultCostPerByte      = 12000
)

// Params holds the network constants and cost policy for one network.
// Values are copied, never shared mutably.
type Params struct {
	// Name identifies the network ("mainnet", "testnet", ...).
	Name string `json:"name"`

	// AddressPrefix is the bech32m human-readable part for addresses.
	AddressPrefix string `json:"address_prefix"`

	// GenesisChallenge is appended to every signing message as the
	// network-wide domain separator (the AGG_SIG_ME additional data).
	GenesisChallenge coin.Bytes32 `json:"genesis_challenge"`

	// HiddenPuzzleHash is the commitment used when computing synthetic
	// keys. It enables a hidden alternate spend path without changing
	// the externally visible address, and must match between the
	// address-generating side and the signer bit for bit.
	HiddenPuzzleHash coin.Bytes32 `json:"hidden_puzzle_hash"`

	// MaxBlockCost is the network-wide cost ceiling for a full block.
	MaxBlockCost uint64 `json:"max_block_cost"`

	// CostLimitPercent caps a built bundle's total cost at this
	// percentage of MaxBlockCost.
	CostLimitPercent uint8 `json:"cost_limit_percent"`

	// CostPerByte is charged per byte of puzzle reveal and solution.
	CostPerByte uint64 `json:"cost_per_byte"`

	// ScanBatchSize is the number of addresses derived per discovery
	// batch.
	ScanBatchSize int `json:"scan_batch_size"`
}

// CostCeiling returns the maximum total cost a built bundle may reach.
func (p Params) CostCeiling() uint64 {
	return p.MaxBlockCost / 100 * uint64(p.CostLimitPercent)
}

// Predefined network parameters.
var (
	MainNet = Params{
		Name:             "mainnet",
		AddressPrefix:    "xch",
		GenesisChallenge: mustBytes32("ccd5bb71183532bff220ba46c268991a3ff07eb358e8255a65c30a2dce0e5fbb"),
		HiddenPuzzleHash: mustBytes32("711d6c4e32c92e53179b199484cf8c897542bc57f2b22582799f9d657eec4699"),
		MaxBlockCost:     DefaultMaxBlockCost,
		CostLimitPercent: DefaultCostLimitPercent,
		CostPerByte:      DefaultCostPerByte,
		ScanBatchSize:    DefaultScanBatchSize,
	}

	TestNet = Params{
		Name:             "testnet",
		AddressPrefix:    "txch",
		GenesisChallenge: mustBytes32("ae83525ba8d1dd3f09b277de18ca3e43fc0af20d20c4b3e92ef2a48bd291ccb2"),
		HiddenPuzzleHash: mustBytes32("711d6c4e32c92e53179b199484cf8c897542bc57f2b22582799f9d657eec4699"),
		MaxBlockCost:     DefaultMaxBlockCost,
		CostLimitPercent: DefaultCostLimitPercent,
		CostPerByte:      DefaultCostPerByte,
		ScanBatchSize:    DefaultScanBatchSize,
	}
)

// predefined maps network names to their parameters.
var predefined = map[string]Params{
	"mainnet": MainNet,
	"testnet": TestNet,
}

// GetNetwork returns predefined parameters by name, or ErrInvalidNetwork.
func GetNetwork(name string) (Params, error) {
	if p, ok := predefined[name]; ok {
		return p, nil
	}
	return Params{}, fmt.Errorf("%w: %q", ErrInvalidNetwork, name)
}

// LoadCustomNetwork loads Params from a JSON file and validates them.
func LoadCustomNetwork(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("config: read network file: %w", err)
	}

	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("config: parse network file: %w", err)
	}

	if err := Validate(p); err != nil {
		return Params{}, err
	}
	return p, nil
}

// mustBytes32 parses a hex constant; it panics only on a malformed
// compile-time literal.
func mustBytes32(s string) coin.Bytes32 {
	b, err := coin.Bytes32FromHex(s)
	if err != nil {
		panic("config: bad hex constant: " + s)
	}
	return b
}
