package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/datagen/ai"
	"github.com/poiesic/datagen/core"
	"github.com/poiesic/datagen/storage"
)

const (
	// DefaultMaxRows caps a single generate request.
	DefaultMaxRows = 100

	// DefaultTopK is used when a search request does not specify top_k.
	DefaultTopK = 5

	// embedBatchSize is the number of documents per embedding call.
	embedBatchSize = 16
)

// Dispatcher routes requests to the generate or search path.
// It retains no state between invocations; each call is independent.
type Dispatcher struct {
	reviews   storage.ReviewRepository
	vectors   storage.VectorRepository
	generator ai.ReviewGenerator
	embedder  ai.Embedder
	pool      *ants.Pool
	exporter  *Exporter
	maxRows   int
	logger    *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(d *Dispatcher) error {
		if size < 1 {
			size = 1
		}

		if d.pool != nil {
			d.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		d.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithMaxRows sets the upper bound for num_rows on a generate request.
func WithMaxRows(maxRows int) Option {
	return func(d *Dispatcher) error {
		if maxRows < 1 {
			return fmt.Errorf("max rows must be positive, got %d", maxRows)
		}
		d.maxRows = maxRows
		return nil
	}
}

// WithExporter attaches a CSV exporter that receives each generated batch.
// Export failures are logged, never fatal.
func WithExporter(exporter *Exporter) Option {
	return func(d *Dispatcher) error {
		d.exporter = exporter
		return nil
	}
}

// NewDispatcher creates a new workflow dispatcher.
func NewDispatcher(
	reviews storage.ReviewRepository,
	vectors storage.VectorRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Dispatcher, error) {
	if reviews == nil {
		return nil, ErrReviewRepositoryRequired
	}
	if vectors == nil {
		return nil, ErrVectorRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		reviews:   reviews,
		vectors:   vectors,
		generator: provider.ReviewGenerator(),
		embedder:  provider.Embedder(),
		pool:      pool,
		maxRows:   DefaultMaxRows,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(d); optErr != nil {
			d.Release()
			return nil, optErr
		}
	}

	return d, nil
}

// Release releases resources including the worker pool.
// The dispatcher should not be used after calling Release.
func (d *Dispatcher) Release() {
	if d.pool != nil {
		d.pool.Release()
	}
}

// GenerateResult is the outcome of a generate call.
type GenerateResult struct {
	Count   int
	Reviews []*core.Review
}

// Generate runs the generation pipeline for a topic:
// generate rows, persist them, embed each document, and upsert the vectors
// into the topic's collection. The relational insert and the vector upsert are
// not atomic together; if indexing fails after persistence the rows remain
// durable and the call returns ErrIndexing.
func (d *Dispatcher) Generate(ctx context.Context, topic string, numRows int) (*GenerateResult, error) {
	if err := core.ValidateTopic(topic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if numRows < 1 {
		return nil, fmt.Errorf("%w: num_rows must be positive, got %d", ErrInvalidInput, numRows)
	}
	if numRows > d.maxRows {
		return nil, fmt.Errorf("%w: num_rows %d exceeds limit %d", ErrInvalidInput, numRows, d.maxRows)
	}

	normalized := core.NormalizeTopic(topic)

	// 1. Generate rows; nothing persisted on failure
	reviews, err := d.generator.GenerateReviews(ctx, topic, numRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	for _, review := range reviews {
		if err := core.ValidateReview(review); err != nil {
			// Fail closed on partial or mistyped generator output
			return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
		}
		review.Topic = normalized
	}

	// 2. Persist rows
	added, err := d.reviews.AddReviews(ctx, reviews...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// 3. Secondary flat-file artifact, best effort
	if d.exporter != nil {
		if err := d.exporter.Export(added); err != nil {
			d.logger.Warn("csv export failed", "topic", normalized, "err", err)
		}
	}

	// 4. Embed and index
	if err := d.indexReviews(ctx, normalized, added); err != nil {
		d.logger.Error("rows persisted but indexing failed", "topic", normalized, "err", err)
		return nil, err
	}

	d.logger.Info("generated reviews", "topic", normalized, "count", len(added))
	return &GenerateResult{Count: len(added), Reviews: added}, nil
}

// Search embeds the query and returns the topK nearest documents from the
// topic's collection, nearest first. A topic that was never generated yields
// an empty result list.
func (d *Dispatcher) Search(ctx context.Context, topic, queryText string, topK int) ([]*core.SearchHit, error) {
	if err := core.ValidateTopic(topic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if queryText == "" {
		return nil, fmt.Errorf("%w: query_text cannot be empty", ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := d.embedder.EmbedText(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	collection := core.CollectionName(topic)
	if len(vector) == 0 {
		// Defensive: an empty embedding cannot match anything
		return []*core.SearchHit{}, nil
	}

	hits, err := d.vectors.QueryNearest(ctx, collection, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return hits, nil
}

// indexReviews embeds review documents in concurrent batches and upserts the
// resulting entries into the topic's collection.
func (d *Dispatcher) indexReviews(ctx context.Context, topic string, reviews []*core.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	docs := make([]string, len(reviews))
	for i, review := range reviews {
		docs[i] = review.Document()
	}

	vectors := make([][]float32, len(docs))
	numBatches := (len(docs) + embedBatchSize - 1) / embedBatchSize
	batchErrs := make([]error, numBatches)

	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		b := b
		start := b * embedBatchSize
		end := min(start+embedBatchSize, len(docs))

		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			batch, err := d.embedder.EmbedTexts(ctx, docs[start:end])
			if err != nil {
				batchErrs[b] = err
				return
			}
			if len(batch) != end-start {
				batchErrs[b] = fmt.Errorf("embedder returned %d vectors for %d documents", len(batch), end-start)
				return
			}
			copy(vectors[start:end], batch)
		})
		if err != nil {
			wg.Done()
			batchErrs[b] = err
		}
	}
	wg.Wait()

	for _, err := range batchErrs {
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIndexing, err)
		}
	}

	collection := core.CollectionName(topic)
	entries := make([]*core.VectorEntry, len(reviews))
	for i, review := range reviews {
		// The embedding covers "ProductName: ReviewText"; the stored
		// document is the bare review text searchers get back.
		entries[i] = &core.VectorEntry{
			Id:          core.IDFromContent(collection + ":" + strconv.FormatUint(uint64(review.Id), 10)),
			ReviewId:    review.Id,
			Document:    review.ReviewText,
			ProductName: review.ProductName,
			Sentiment:   review.Sentiment,
			Vector:      vectors[i],
		}
	}

	if err := d.vectors.UpsertEntries(ctx, collection, entries...); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexing, err)
	}
	return nil
}
