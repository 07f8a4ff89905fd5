package network

import (
	"context"
	"encoding/json"

	"github.com/chiavault/libchiavault-go/coin"
)

// MockFullNodeService is a test double for FullNodeService. Function
// fields must be set before the corresponding method is called.
type MockFullNodeService struct {
	GetSyncStateFn   func(ctx context.Context) (*SyncState, error)
	GetCoinRecordsFn func(ctx context.Context, puzzleHashes []coin.Bytes32, includeSpent bool) ([]coin.CoinRecord, error)
	PushTxFn         func(ctx context.Context, bundle json.RawMessage) (string, error)
}

var _ FullNodeService = (*MockFullNodeService)(nil)

func (m *MockFullNodeService) GetSyncState(ctx context.Context) (*SyncState, error) {
	return m.GetSyncStateFn(ctx)
}

func (m *MockFullNodeService) GetCoinRecords(ctx context.Context, puzzleHashes []coin.Bytes32, includeSpent bool) ([]coin.CoinRecord, error) {
	return m.GetCoinRecordsFn(ctx, puzzleHashes, includeSpent)
}

func (m *MockFullNodeService) PushTx(ctx context.Context, bundle json.RawMessage) (string, error) {
	return m.PushTxFn(ctx, bundle)
}
