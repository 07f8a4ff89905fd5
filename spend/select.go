// Package spend assembles unsigned transactions: it selects coins, builds
// the announcement-bound spend bundle, and defines the transport document
// that crosses the air gap to the offline signer.
package spend

import (
	"fmt"
	"sort"

	"github.com/chiavault/libchiavault-go/coin"
)

// Select chooses coins covering target from a discovered record set.
// Records are consumed oldest first (confirmation timestamp ascending),
// which biases toward consolidating dust and bounding the on-chain
// unspent set. Fails with ErrInsufficientFunds iff the full set totals
// below target.
func Select(records []coin.CoinRecord, target uint64) ([]coin.Coin, error) {
	sorted := make([]coin.CoinRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	seen := make(map[coin.Bytes32]struct{}, len(sorted))
	var selected []coin.Coin
	var total uint64

	for _, record := range sorted {
		id := record.Coin.ID()
		if _, dup := seen[id]; dup {
			// Each record corresponds to a unique coin identity; a
			// repeat is a defect upstream, never a user error.
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCoin, id)
		}
		seen[id] = struct{}{}

		selected = append(selected, record.Coin)
		total += record.Coin.Amount
		if total >= target {
			return selected, nil
		}
	}

	return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, total, target)
}
