package config

import "fmt"

// Validate checks that all parameter values are within acceptable ranges
// and returns the first error encountered, or nil if valid.
func Validate(p Params) error {
	if p.Name == "" {
		return ErrEmptyName
	}

	if p.AddressPrefix == "" {
		return ErrEmptyPrefix
	}
	for _, r := range p.AddressPrefix {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("%w: %q", ErrInvalidPrefix, p.AddressPrefix)
		}
	}

	if p.GenesisChallenge.IsZero() {
		return ErrEmptyGenesisChallenge
	}

	if p.HiddenPuzzleHash.IsZero() {
		return ErrEmptyHiddenPuzzleHash
	}

	if p.MaxBlockCost == 0 {
		return ErrZeroMaxBlockCost
	}

	if p.CostLimitPercent == 0 || p.CostLimitPercent > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidCostLimit, p.CostLimitPercent)
	}

	if p.ScanBatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, p.ScanBatchSize)
	}

	return nil
}
