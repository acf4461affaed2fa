package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/storage"
)

// ReviewRepository implements storage.ReviewRepository for BadgerDB.
type ReviewRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ReviewRepository = (*ReviewRepository)(nil)

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(backend *Backend) (*ReviewRepository, error) {
	idSeq, err := backend.GetSequence(reviewIDSeq)
	if err != nil {
		return nil, err
	}

	return &ReviewRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ReviewRepository) Close() error {
	return r.idSeq.Release()
}

// AddReviews appends one or more reviews to storage.
func (r *ReviewRepository) AddReviews(ctx context.Context, reviews ...*core.Review) ([]*core.Review, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, review := range reviews {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			review.Id = core.ID(nextID)
			review.InsertedAt = time.Now().UTC()

			// Store primary record
			key := makeReviewKey(review.Id)
			value := storage.MarshalReview(review)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update topic index
			topicKey := makeReviewTopicKey(review.Topic, review.Id)
			if err := tx.Set(topicKey, storage.MarshalID(review.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return reviews, err
}

// GetReview retrieves a single review by ID.
func (r *ReviewRepository) GetReview(ctx context.Context, id core.ID) (*core.Review, error) {
	var result *core.Review
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readReview(tx, makeReviewKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetReviewsByTopic retrieves reviews for a topic in insertion order.
func (r *ReviewRepository) GetReviewsByTopic(ctx context.Context, topic string, limit int) ([]*core.Review, error) {
	var results []*core.Review
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeReviewTopicPrefix(topic)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			review, err := r.readReview(tx, makeReviewKey(id))
			if err != nil {
				return err
			}
			if review == nil {
				// Index entry without a record; skip rather than fail the scan
				continue
			}
			results = append(results, review)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountByTopic returns the number of rows indexed under a topic.
func (r *ReviewRepository) CountByTopic(ctx context.Context, topic string) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeReviewTopicPrefix(topic)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readReview reads and unmarshals a review by key within a transaction.
// Returns nil without error if the key does not exist.
func (r *ReviewRepository) readReview(tx *badger.Txn, key []byte) (*core.Review, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var review *core.Review
	err = item.Value(func(val []byte) error {
		var err error
		review, err = storage.UnmarshalReview(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}
