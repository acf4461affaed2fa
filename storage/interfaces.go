package storage

import (
	"context"

	"github.com/poiesic/datagen/core"
)

// ReviewRepository provides durable storage for generated review rows.
// Implementations must be thread-safe and support concurrent access.
type ReviewRepository interface {
	// AddReviews appends one or more reviews to storage.
	// IDs are generated from a sequence and InsertedAt is set on insert;
	// the records are returned with both populated. Each review must carry
	// a normalized Topic, which is indexed for per-topic retrieval.
	AddReviews(ctx context.Context, reviews ...*core.Review) ([]*core.Review, error)

	// GetReview retrieves a single review by ID.
	// Returns ErrNotFound if the review doesn't exist.
	GetReview(ctx context.Context, id core.ID) (*core.Review, error)

	// GetReviewsByTopic retrieves reviews for a normalized topic in insertion
	// order. A limit <= 0 returns all rows for the topic.
	GetReviewsByTopic(ctx context.Context, topic string, limit int) ([]*core.Review, error)

	// CountByTopic returns the number of persisted rows for a normalized topic.
	CountByTopic(ctx context.Context, topic string) (int, error)

	// Close releases resources held by the repository.
	Close() error
}

// VectorRepository provides topic-scoped vector collections with
// nearest-neighbor queries. Collections are created lazily on first upsert;
// querying a collection that was never written returns empty results rather
// than an error. Implementations must be thread-safe.
type VectorRepository interface {
	// UpsertEntries inserts or replaces entries in the named collection,
	// creating the collection on first use. Entry IDs are content-based, so
	// re-indexing the same rows is idempotent. All entries in a collection
	// must share one vector dimension.
	UpsertEntries(ctx context.Context, collection string, entries ...*core.VectorEntry) error

	// QueryNearest returns up to topK entries nearest to the query vector,
	// ordered by non-decreasing distance (1 - cosine similarity).
	// A missing collection yields an empty slice and a nil error.
	QueryNearest(ctx context.Context, collection string, vector []float32, topK int) ([]*core.SearchHit, error)

	// CollectionSize returns the number of entries in the named collection,
	// or 0 if the collection does not exist.
	CollectionSize(ctx context.Context, collection string) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
