package ai

import (
	"context"

	"github.com/poiesic/datagen/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ReviewGenerator produces synthetic product reviews for a topic.
// Implementations must be thread-safe for concurrent use.
type ReviewGenerator interface {
	// GenerateReviews asks the generative model for count reviews about topic.
	// The returned reviews carry ProductName, ReviewText, and Sentiment; the
	// caller assigns Topic and persistence fields. Implementations fail closed:
	// missing or mistyped fields, or fewer reviews than requested, are errors
	// rather than partial results.
	GenerateReviews(ctx context.Context, topic string, count int) ([]*core.Review, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and ReviewGenerator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ReviewGenerator returns the synthetic review generation service.
	// The returned ReviewGenerator is safe for concurrent use.
	ReviewGenerator() ReviewGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
