package badger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVectorRepository(t *testing.T) storage.VectorRepository {
	t.Helper()
	reviewRepo, vectorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		reviewRepo.Close()
		backend.Close()
	})
	return vectorRepo
}

func makeEntry(reviewID core.ID, collection string, vector []float32) *core.VectorEntry {
	return &core.VectorEntry{
		Id:          core.IDFromContent(fmt.Sprintf("%s:%d", collection, reviewID)),
		ReviewId:    reviewID,
		Document:    fmt.Sprintf("Review text %d.", reviewID),
		ProductName: fmt.Sprintf("Product %d", reviewID),
		Sentiment:   core.SentimentPositive,
		Vector:      vector,
	}
}

func TestUpsertEntries_CreatesCollectionLazily(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	size, err := repo.CollectionSize(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	err = repo.UpsertEntries(ctx, col,
		makeEntry(1, col, []float32{1, 0, 0}),
		makeEntry(2, col, []float32{0, 1, 0}),
	)
	require.NoError(t, err)

	size, err = repo.CollectionSize(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestUpsertEntries_IdempotentByContentID(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	entry := makeEntry(1, col, []float32{1, 0, 0})
	require.NoError(t, repo.UpsertEntries(ctx, col, entry))
	require.NoError(t, repo.UpsertEntries(ctx, col, entry))

	size, err := repo.CollectionSize(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, 1, size, "re-upserting the same entry must not grow the collection")
}

func TestUpsertEntries_ConcurrentWritersToOneCollection(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"
	const writers = 8
	const perWriter = 5

	var wg sync.WaitGroup
	errs := make([]error, writers)
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			entries := make([]*core.VectorEntry, perWriter)
			for i := 0; i < perWriter; i++ {
				entries[i] = makeEntry(core.ID(w*perWriter+i+1), col, []float32{1, 0, 0})
			}
			errs[w] = repo.UpsertEntries(ctx, col, entries...)
		}()
	}
	wg.Wait()

	// Writers race on the collection metadata record; conflicts must be
	// retried internally, not surfaced
	for w, err := range errs {
		require.NoError(t, err, "writer %d", w)
	}

	size, err := repo.CollectionSize(ctx, col)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, size)
}

func TestUpsertEntries_DimensionMismatch(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	require.NoError(t, repo.UpsertEntries(ctx, col, makeEntry(1, col, []float32{1, 0, 0})))

	err := repo.UpsertEntries(ctx, col, makeEntry(2, col, []float32{1, 0}))
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestQueryNearest_OrderedByDistance(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	// Three entries at increasing angles from the x axis
	require.NoError(t, repo.UpsertEntries(ctx, col,
		makeEntry(1, col, []float32{1, 0, 0}),
		makeEntry(2, col, []float32{1, 1, 0}),
		makeEntry(3, col, []float32{0, 1, 0}),
	))

	hits, err := repo.QueryNearest(ctx, col, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "Product 1", hits[0].ProductName)
	assert.Equal(t, "Product 2", hits[1].ProductName)
	assert.Equal(t, "Product 3", hits[2].ProductName)

	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i-1].Distance, hits[i].Distance)
	}
	for _, hit := range hits {
		assert.GreaterOrEqual(t, hit.Distance, float32(0))
	}
}

func TestQueryNearest_TopKTruncation(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	require.NoError(t, repo.UpsertEntries(ctx, col,
		makeEntry(1, col, []float32{1, 0, 0}),
		makeEntry(2, col, []float32{1, 1, 0}),
		makeEntry(3, col, []float32{0, 1, 0}),
	))

	hits, err := repo.QueryNearest(ctx, col, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestQueryNearest_MissingCollection(t *testing.T) {
	repo := setupVectorRepository(t)

	hits, err := repo.QueryNearest(context.Background(), "nonexistent_topic_xyz_product_reviews", []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQueryNearest_CollectionsAreIsolated(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntries(ctx, "electronics_product_reviews",
		makeEntry(1, "electronics_product_reviews", []float32{1, 0, 0})))
	require.NoError(t, repo.UpsertEntries(ctx, "bicycles_product_reviews",
		makeEntry(2, "bicycles_product_reviews", []float32{1, 0, 0})))

	hits, err := repo.QueryNearest(ctx, "electronics_product_reviews", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Product 1", hits[0].ProductName)
}

func TestQueryNearest_QueryDimensionMismatch(t *testing.T) {
	repo := setupVectorRepository(t)
	ctx := context.Background()
	const col = "electronics_product_reviews"

	require.NoError(t, repo.UpsertEntries(ctx, col, makeEntry(1, col, []float32{1, 0, 0})))

	_, err := repo.QueryNearest(ctx, col, []float32{1, 0}, 3)
	assert.ErrorIs(t, err, storage.ErrDimensionMismatch)
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	// Zero vectors are maximally distant by convention
	assert.Equal(t, float32(1), cosineDistance([]float32{0, 0}, []float32{1, 0}))
}
