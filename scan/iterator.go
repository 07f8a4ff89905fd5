// Package scan discovers coins for a key tree: it derives addresses in
// batches, queries the ledger service per batch, and stops on a gap-limit
// policy. Derivation within a batch is pure CPU work and runs across
// workers; batches themselves are strictly sequential.
package scan

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/herumi/bls-eth-go-binary/bls"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/keys"
	"github.com/chiavault/libchiavault-go/puzzle"
)

// Policy bounds an otherwise unbounded index space. Scanning stops after
// the first batch that yields zero coin records (the gap limit), or after
// MaxBatches regardless. Known limitation: coins at indices past an empty
// batch are not found.
type Policy struct {
	// BatchSize is the number of addresses derived and queried per batch.
	BatchSize int

	// MaxBatches caps the scan even if every batch keeps yielding coins.
	MaxBatches int
}

// Default policy values.
const (
	DefaultBatchSize  = 1000
	DefaultMaxBatches = 100000
)

// withDefaults fills zero fields.
func (p Policy) withDefaults() Policy {
	if p.BatchSize <= 0 {
		p.BatchSize = DefaultBatchSize
	}
	if p.MaxBatches <= 0 {
		p.MaxBatches = DefaultMaxBatches
	}
	return p
}

// Derived is one derived address: the wallet index, the base (unhardened)
// child public key, and the puzzle hash of its standard puzzle.
type Derived struct {
	Index      uint32
	PublicKey  *bls.PublicKey
	PuzzleHash coin.Bytes32
}

// BatchIterator lazily produces consecutive address batches from a master
// public key. It derives the m/12381/8444/2 intermediate once and each
// leaf from there.
type BatchIterator struct {
	intermediate     *bls.PublicKey
	hiddenPuzzleHash coin.Bytes32
	policy           Policy
	cache            *Cache
	fingerprint      []byte

	next    uint32
	batches int
}

// NewBatchIterator builds an iterator. cache may be nil.
func NewBatchIterator(masterPK *bls.PublicKey, hiddenPuzzleHash coin.Bytes32, policy Policy, cache *Cache) (*BatchIterator, error) {
	if masterPK == nil {
		return nil, ErrNilParam
	}

	intermediate, err := keys.WalletIntermediatePK(masterPK)
	if err != nil {
		return nil, err
	}

	return &BatchIterator{
		intermediate:     intermediate,
		hiddenPuzzleHash: hiddenPuzzleHash,
		policy:           policy.withDefaults(),
		cache:            cache,
		fingerprint:      Fingerprint(masterPK),
	}, nil
}

// Next derives the next batch of addresses, in index order. It returns
// (nil, nil) once MaxBatches batches have been produced.
func (it *BatchIterator) Next() ([]Derived, error) {
	if it.batches >= it.policy.MaxBatches {
		return nil, nil
	}
	it.batches++

	start := it.next
	count := it.policy.BatchSize
	it.next += uint32(count)

	batch := make([]Derived, count)

	// Indices already in the cache skip derivation entirely.
	cached := map[uint32]Derived{}
	if it.cache != nil {
		var err error
		cached, err = it.cache.GetRange(it.fingerprint, start, count)
		if err != nil {
			return nil, err
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > count {
		workers = count
	}
	workerErrs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < count; i += workers {
				index := start + uint32(i)
				if d, ok := cached[index]; ok {
					batch[i] = d
					continue
				}
				d, err := it.deriveOne(index)
				if err != nil {
					workerErrs[w] = err
					return
				}
				batch[i] = d
			}
		}(w)
	}
	wg.Wait()

	for _, err := range workerErrs {
		if err != nil {
			return nil, err
		}
	}

	if it.cache != nil && len(cached) < count {
		fresh := make([]Derived, 0, count-len(cached))
		for _, d := range batch {
			if _, ok := cached[d.Index]; !ok {
				fresh = append(fresh, d)
			}
		}
		if err := it.cache.PutBatch(it.fingerprint, fresh); err != nil {
			return nil, err
		}
	}

	return batch, nil
}

// deriveOne derives the address at one wallet index.
func (it *BatchIterator) deriveOne(index uint32) (Derived, error) {
	childPK, err := keys.DeriveChildPKUnhardened(it.intermediate, index)
	if err != nil {
		return Derived{}, fmt.Errorf("scan: derive index %d: %w", index, err)
	}

	puz, err := puzzle.ForPublicKey(childPK, it.hiddenPuzzleHash)
	if err != nil {
		return Derived{}, fmt.Errorf("scan: puzzle for index %d: %w", index, err)
	}

	return Derived{Index: index, PublicKey: childPK, PuzzleHash: puz.Hash()}, nil
}
