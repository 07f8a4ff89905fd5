package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/herumi/bls-eth-go-binary/bls"
	"github.com/rs/zerolog"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/config"
	"github.com/chiavault/libchiavault-go/network"
)

// Scanner drives coin discovery: batch-derive, query, repeat until the
// gap-limit policy terminates the scan. Batches are strictly sequential --
// the next batch is only derived after the previous query returns.
type Scanner struct {
	svc    network.FullNodeService
	params config.Params
	policy Policy
	cache  *Cache
	log    zerolog.Logger
}

// NewScanner builds a scanner over a ledger service. The batch size comes
// from params; SetPolicy overrides it.
func NewScanner(svc network.FullNodeService, params config.Params) *Scanner {
	return &Scanner{
		svc:    svc,
		params: params,
		policy: Policy{BatchSize: params.ScanBatchSize}.withDefaults(),
		log:    zerolog.Nop(),
	}
}

// SetPolicy overrides the scan termination policy.
func (s *Scanner) SetPolicy(p Policy) { s.policy = p.withDefaults() }

// SetCache attaches a derivation cache.
func (s *Scanner) SetCache(c *Cache) { s.cache = c }

// SetLogger attaches a structured logger; the default discards everything.
func (s *Scanner) SetLogger(log zerolog.Logger) { s.log = log }

// Result is everything a scan discovered: the unspent records and the
// derived addresses up to the scan's end, in index order.
type Result struct {
	Records []coin.CoinRecord
	Derived []Derived

	byHash map[coin.Bytes32]int
}

// PublicKeyFor resolves the base public key owning a puzzle hash.
func (r *Result) PublicKeyFor(puzzleHash coin.Bytes32) (*bls.PublicKey, bool) {
	i, ok := r.byHash[puzzleHash]
	if !ok {
		return nil, false
	}
	return r.Derived[i].PublicKey, true
}

// IndexFor resolves the wallet index owning a puzzle hash.
func (r *Result) IndexFor(puzzleHash coin.Bytes32) (uint32, bool) {
	i, ok := r.byHash[puzzleHash]
	if !ok {
		return 0, false
	}
	return r.Derived[i].Index, true
}

// KeyMap returns puzzle hash to base public key for every derived address.
func (r *Result) KeyMap() map[coin.Bytes32]*bls.PublicKey {
	out := make(map[coin.Bytes32]*bls.PublicKey, len(r.Derived))
	for _, d := range r.Derived {
		out[d.PuzzleHash] = d.PublicKey
	}
	return out
}

// FirstPuzzleHash returns the lowest-index derived puzzle hash, the
// default change destination.
func (r *Result) FirstPuzzleHash() coin.Bytes32 {
	return r.Derived[0].PuzzleHash
}

// TotalAmount sums the discovered records.
func (r *Result) TotalAmount() uint64 {
	return coin.TotalAmount(r.Records)
}

// Scan discovers all unspent coins owned by the master public key's
// unhardened wallet branch. It fails fast with ErrNotSynced before any
// derivation work if the node is not caught up.
func (s *Scanner) Scan(ctx context.Context, masterPK *bls.PublicKey) (*Result, error) {
	if masterPK == nil {
		return nil, ErrNilParam
	}

	state, err := s.svc.GetSyncState(ctx)
	if err != nil {
		return nil, err
	}
	if !state.Synced {
		return nil, ErrNotSynced
	}

	it, err := NewBatchIterator(masterPK, s.params.HiddenPuzzleHash, s.policy, s.cache)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{byHash: map[coin.Bytes32]int{}}
	for {
		batch, err := it.Next()
		if err != nil {
			return nil, err
		}
		if batch == nil {
			s.log.Warn().Int("max_batches", s.policy.MaxBatches).Msg("scan range exhausted before gap limit")
			break
		}

		hashes := make([]coin.Bytes32, len(batch))
		for i, d := range batch {
			hashes[i] = d.PuzzleHash
			result.byHash[d.PuzzleHash] = len(result.Derived) + i
		}
		result.Derived = append(result.Derived, batch...)

		records, err := s.svc.GetCoinRecords(ctx, hashes, false)
		if err != nil {
			return nil, fmt.Errorf("scan: batch starting at %d: %w", batch[0].Index, err)
		}
		if len(records) == 0 {
			break
		}
		result.Records = append(result.Records, records...)
	}

	s.log.Info().
		Int("records", len(result.Records)).
		Int("addresses", len(result.Derived)).
		Dur("elapsed", time.Since(start)).
		Msg("scan complete")
	return result, nil
}
