package badger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
//
// Each collection is a key range under a shared prefix plus a metadata record
// holding the collection's dimension and entry count. Queries are brute-force
// cosine scans over the collection's range, which is adequate for the
// per-topic collection sizes this service produces.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// maxCommitRetries bounds retries of upsert transactions that lose the
// optimistic-concurrency race on a collection's metadata record.
const maxCommitRetries = 5

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) (*VectorRepository, error) {
	return &VectorRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources beyond the backend.
func (r *VectorRepository) Close() error {
	return nil
}

// UpsertEntries inserts or replaces entries in the named collection.
// The collection is created on first use; its dimension is fixed by the first
// entry written and enforced for all subsequent writes.
//
// Every upsert rewrites the collection's metadata record, so concurrent
// writers to the same collection conflict at commit. Conflicted transactions
// are retried with a fresh read of the metadata.
func (r *VectorRepository) UpsertEntries(ctx context.Context, collection string, entries ...*core.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var err error
	for attempt := 0; attempt <= maxCommitRetries; attempt++ {
		err = r.upsertTx(collection, entries)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (r *VectorRepository) upsertTx(collection string, entries []*core.VectorEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := r.readMeta(tx, collection)
		if err != nil {
			return err
		}
		if meta == nil {
			// Lazy collection creation on first write
			meta = &core.CollectionMeta{
				Name:      collection,
				Dimension: len(entries[0].Vector),
			}
		}

		for _, entry := range entries {
			if len(entry.Vector) != meta.Dimension {
				return fmt.Errorf("%w: collection %s expects %d, got %d",
					storage.ErrDimensionMismatch, collection, meta.Dimension, len(entry.Vector))
			}

			key := makeVectorEntryKey(collection, entry.Id)

			// Only new IDs grow the collection; replacing an entry does not
			_, err := tx.Get(key)
			if err != nil {
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return err
				}
				meta.Count++
			}

			if err := tx.Set(key, storage.MarshalVectorEntry(entry)); err != nil {
				return err
			}
		}

		if err := tx.Set(makeCollectionMetaKey(collection), storage.MarshalCollectionMeta(meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// QueryNearest returns up to topK entries nearest to the query vector,
// ordered by non-decreasing distance. A missing collection yields an empty
// result, not an error.
func (r *VectorRepository) QueryNearest(ctx context.Context, collection string, vector []float32, topK int) ([]*core.SearchHit, error) {
	hits := []*core.SearchHit{}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := r.readMeta(tx, collection)
		if err != nil {
			return err
		}
		if meta == nil {
			// Collection never written; empty result by contract
			return nil
		}
		if len(vector) != meta.Dimension {
			return fmt.Errorf("%w: collection %s expects %d, got %d",
				storage.ErrDimensionMismatch, collection, meta.Dimension, len(vector))
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeVectorEntryPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.VectorEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			})
			if err != nil {
				return err
			}

			hits = append(hits, &core.SearchHit{
				Document:    entry.Document,
				ProductName: entry.ProductName,
				Sentiment:   entry.Sentiment,
				Distance:    cosineDistance(vector, entry.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by distance ascending (nearest first)
	slices.SortFunc(hits, func(a, b *core.SearchHit) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// CollectionSize returns the entry count for a collection, 0 if missing.
func (r *VectorRepository) CollectionSize(ctx context.Context, collection string) (int, error) {
	size := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := r.readMeta(tx, collection)
		if err != nil {
			return err
		}
		if meta != nil {
			size = meta.Count
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return size, nil
}

// readMeta reads a collection's metadata within a transaction.
// Returns nil without error if the collection does not exist.
func (r *VectorRepository) readMeta(tx *badger.Txn, collection string) (*core.CollectionMeta, error) {
	item, err := tx.Get(makeCollectionMetaKey(collection))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var meta *core.CollectionMeta
	err = item.Value(func(val []byte) error {
		var err error
		meta, err = storage.UnmarshalCollectionMeta(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// cosineDistance computes 1 - cosine similarity, clamped to be non-negative.
// Zero-norm vectors are treated as maximally distant.
func cosineDistance(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	distance := 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
	if distance < 0 {
		return 0
	}
	return float32(distance)
}
