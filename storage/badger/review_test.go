package badger

import (
	"context"
	"testing"

	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewRepository(t *testing.T) storage.ReviewRepository {
	t.Helper()
	reviewRepo, vectorRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		vectorRepo.Close()
		reviewRepo.Close()
		backend.Close()
	})
	return reviewRepo
}

func makeReviews(topic string, n int) []*core.Review {
	reviews := make([]*core.Review, n)
	for i := 0; i < n; i++ {
		reviews[i] = &core.Review{
			Topic:       topic,
			ProductName: "Product",
			ReviewText:  "Review text",
			Sentiment:   core.Sentiments[i%len(core.Sentiments)],
		}
	}
	return reviews
}

func TestAddReviews_AssignsIDsAndTimestamps(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	added, err := repo.AddReviews(ctx, makeReviews("electronics", 3)...)
	require.NoError(t, err)
	require.Len(t, added, 3)

	seen := make(map[core.ID]bool)
	for _, review := range added {
		assert.NotZero(t, review.Id)
		assert.False(t, seen[review.Id], "IDs must be unique")
		seen[review.Id] = true
		assert.False(t, review.InsertedAt.IsZero())
	}
}

func TestGetReview(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	added, err := repo.AddReviews(ctx, makeReviews("bicycles", 1)...)
	require.NoError(t, err)

	got, err := repo.GetReview(ctx, added[0].Id)
	require.NoError(t, err)
	assert.Equal(t, added[0].Id, got.Id)
	assert.Equal(t, "bicycles", got.Topic)
	assert.Equal(t, core.SentimentPositive, got.Sentiment)
}

func TestGetReview_NotFound(t *testing.T) {
	repo := setupReviewRepository(t)

	_, err := repo.GetReview(context.Background(), 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetReviewsByTopic_InsertionOrder(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	added, err := repo.AddReviews(ctx, makeReviews("electronics", 5)...)
	require.NoError(t, err)

	got, err := repo.GetReviewsByTopic(ctx, "electronics", 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, review := range got {
		assert.Equal(t, added[i].Id, review.Id)
	}
}

func TestGetReviewsByTopic_Limit(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	_, err := repo.AddReviews(ctx, makeReviews("electronics", 5)...)
	require.NoError(t, err)

	got, err := repo.GetReviewsByTopic(ctx, "electronics", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetReviewsByTopic_IsolatedByTopic(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	_, err := repo.AddReviews(ctx, makeReviews("electronics", 3)...)
	require.NoError(t, err)
	_, err = repo.AddReviews(ctx, makeReviews("bicycles", 2)...)
	require.NoError(t, err)

	electronics, err := repo.GetReviewsByTopic(ctx, "electronics", 0)
	require.NoError(t, err)
	assert.Len(t, electronics, 3)

	bicycles, err := repo.GetReviewsByTopic(ctx, "bicycles", 0)
	require.NoError(t, err)
	assert.Len(t, bicycles, 2)

	missing, err := repo.GetReviewsByTopic(ctx, "nonexistent_topic_xyz", 0)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestCountByTopic(t *testing.T) {
	repo := setupReviewRepository(t)
	ctx := context.Background()

	count, err := repo.CountByTopic(ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = repo.AddReviews(ctx, makeReviews("electronics", 4)...)
	require.NoError(t, err)

	count, err = repo.CountByTopic(ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
