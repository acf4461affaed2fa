package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/datagen/core"
)

// MockReviewGenerator is a test double for ai.ReviewGenerator.
// It allows custom behavior injection via function fields.
type MockReviewGenerator struct {
	// GenerateReviewsFunc is called by GenerateReviews if set.
	// If nil, uses default deterministic behavior.
	GenerateReviewsFunc func(ctx context.Context, topic string, count int) ([]*core.Review, error)

	callCount int
}

// NewMockReviewGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockReviewGenerator() *MockReviewGenerator {
	return &MockReviewGenerator{}
}

// GenerateReviews produces deterministic synthetic reviews.
// Default behavior: count reviews named after the topic, with sentiments
// cycling Positive, Negative, Neutral starting from Positive.
func (m *MockReviewGenerator) GenerateReviews(ctx context.Context, topic string, count int) ([]*core.Review, error) {
	m.callCount++

	if m.GenerateReviewsFunc != nil {
		return m.GenerateReviewsFunc(ctx, topic, count)
	}

	label := capitalize(strings.TrimSpace(topic))
	reviews := make([]*core.Review, count)
	for i := 0; i < count; i++ {
		reviews[i] = &core.Review{
			ProductName: fmt.Sprintf("%s Item %d", label, i+1),
			ReviewText:  fmt.Sprintf("Synthetic review %d about %s.", i+1, topic),
			Sentiment:   core.Sentiments[i%len(core.Sentiments)],
		}
	}
	return reviews, nil
}

func capitalize(s string) string {
	if s == "" {
		return "Product"
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// CallCount returns the number of times GenerateReviews was called.
func (m *MockReviewGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockReviewGenerator) Reset() {
	m.callCount = 0
	m.GenerateReviewsFunc = nil
}
