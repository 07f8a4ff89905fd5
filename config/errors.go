package config

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("config: invalid network name")

	// ErrEmptyName indicates the network name is empty.
	ErrEmptyName = errors.New("config: network name must not be empty")

	// ErrEmptyPrefix indicates the address prefix is empty.
	ErrEmptyPrefix = errors.New("config: address prefix must not be empty")

	// ErrInvalidPrefix indicates the address prefix contains characters
	// outside lowercase a-z.
	ErrInvalidPrefix = errors.New("config: address prefix must be lowercase a-z")

	// ErrEmptyGenesisChallenge indicates the signing domain separator is unset.
	ErrEmptyGenesisChallenge = errors.New("config: genesis challenge must not be zero")

	// ErrEmptyHiddenPuzzleHash indicates the synthetic-key commitment is unset.
	ErrEmptyHiddenPuzzleHash = errors.New("config: hidden puzzle hash must not be zero")

	// ErrZeroMaxBlockCost indicates the cost ceiling is unset.
	ErrZeroMaxBlockCost = errors.New("config: max block cost must not be zero")

	// ErrInvalidCostLimit indicates the cost limit percentage is out of range.
	ErrInvalidCostLimit = errors.New("config: cost limit percent must be in 1..100")

	// ErrInvalidBatchSize indicates the scan batch size is not positive.
	ErrInvalidBatchSize = errors.New("config: scan batch size must be positive")
)
