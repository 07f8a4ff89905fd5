package scan

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/herumi/bls-eth-go-binary/bls"
	"go.etcd.io/bbolt"

	"github.com/chiavault/libchiavault-go/coin"
	"github.com/chiavault/libchiavault-go/keys"
)

// Cache persists derived addresses so repeated scans of the same key tree
// skip the expensive public-key derivation. Entries are keyed per master
// key fingerprint; the cache holds only public material.
type Cache struct {
	db *bbolt.DB
}

// cache entry layout: compressed child pk (48B) || puzzle hash (32B).
const cacheEntrySize = 48 + coin.HashSize

// OpenCache opens or creates the cache database at dbPath. The parent
// directory is created if it does not exist.
func OpenCache(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("scan: create cache directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("scan: open cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// Fingerprint identifies a master public key for cache partitioning.
func Fingerprint(masterPK *bls.PublicKey) []byte {
	sum := sha256.Sum256(masterPK.Serialize())
	return sum[:8]
}

// GetRange returns the cached entries for [start, start+count), keyed by
// wallet index. Missing indices are simply absent from the map.
func (c *Cache) GetRange(fingerprint []byte, start uint32, count int) (map[uint32]Derived, error) {
	out := make(map[uint32]Derived)

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(fingerprint)
		if b == nil {
			return nil
		}
		for i := 0; i < count; i++ {
			index := start + uint32(i)
			raw := b.Get(indexKey(index))
			if len(raw) != cacheEntrySize {
				continue
			}

			pk, err := keys.PublicKeyFromBytes(raw[:48])
			if err != nil {
				// A corrupt entry is re-derived, not fatal.
				continue
			}
			puzzleHash, err := coin.Bytes32FromSlice(raw[48:])
			if err != nil {
				continue
			}
			out[index] = Derived{Index: index, PublicKey: pk, PuzzleHash: puzzleHash}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan: read cache: %w", err)
	}
	return out, nil
}

// PutBatch stores derived entries under the master key's fingerprint.
func (c *Cache) PutBatch(fingerprint []byte, derived []Derived) error {
	if len(derived) == 0 {
		return nil
	}

	err := c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(fingerprint)
		if err != nil {
			return err
		}
		for _, d := range derived {
			entry := make([]byte, 0, cacheEntrySize)
			entry = append(entry, d.PublicKey.Serialize()...)
			entry = append(entry, d.PuzzleHash[:]...)
			if err := b.Put(indexKey(d.Index), entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan: write cache: %w", err)
	}
	return nil
}

// indexKey encodes a wallet index as a 4-byte big-endian key for sorted
// storage.
func indexKey(index uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, index)
	return k
}
