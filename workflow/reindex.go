package workflow

import (
	"context"
	"fmt"

	"github.com/poiesic/datagen/core"
)

// Reindex re-embeds every stored review for a topic and upserts the vectors
// into the topic's collection. Entry IDs derive from the collection name and
// review ID, so repeated runs converge instead of duplicating. Use it to
// recover a collection after a partial indexing failure or an embedding
// model change.
func (d *Dispatcher) Reindex(ctx context.Context, topic string) (int, error) {
	if err := core.ValidateTopic(topic); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	normalized := core.NormalizeTopic(topic)
	reviews, err := d.reviews.GetReviewsByTopic(ctx, normalized, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	if err := d.indexReviews(ctx, normalized, reviews); err != nil {
		return 0, err
	}

	d.logger.Info("reindexed topic", "topic", normalized, "count", len(reviews))
	return len(reviews), nil
}
