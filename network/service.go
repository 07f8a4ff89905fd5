// Package network provides the client side of the ledger query service:
// the FullNodeService interface the engine consumes, an HTTPS RPC
// implementation, and a test double.
package network

import (
	"context"
	"encoding/json"

	"github.com/chiavault/libchiavault-go/coin"
)

// SyncState reports whether the full node has caught up with the chain.
type SyncState struct {
	Synced     bool   `json:"synced"`
	SyncMode   bool   `json:"sync_mode"`
	PeakHeight uint32 `json:"peak_height"`
}

// FullNodeService is the ledger query interface the engine consumes.
// Discovery fails fast when GetSyncState reports not synced; this is a
// precondition, not a retryable error.
type FullNodeService interface {
	// GetSyncState returns the node's sync status.
	GetSyncState(ctx context.Context) (*SyncState, error)

	// GetCoinRecords returns coin records owned by the given puzzle
	// hashes. Spent coins are excluded unless includeSpent is set.
	GetCoinRecords(ctx context.Context, puzzleHashes []coin.Bytes32, includeSpent bool) ([]coin.CoinRecord, error)

	// PushTx submits a signed spend-bundle document to the mempool and
	// returns the node's inclusion status.
	PushTx(ctx context.Context, bundle json.RawMessage) (string, error)
}
