// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/datagen/ai"
	"github.com/poiesic/datagen/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ReviewGenerator implements ai.ReviewGenerator using OpenAI-compatible chat APIs.
type ReviewGenerator struct {
	client      llms.Model
	temperature float64
	logger      *slog.Logger
}

// reviewItem is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type reviewItem struct {
	ProductName string `json:"product_name"`
	Review      string `json:"review"`
	Sentiment   string `json:"sentiment"`
}

// reviewBatch is the wrapper structure for the LLM's JSON response.
type reviewBatch struct {
	Reviews []reviewItem `json:"reviews"`
}

// newReviewGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newReviewGenerator(config *ai.Config) (*ReviewGenerator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/generation
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken("none"),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &ReviewGenerator{
		client:      client,
		temperature: config.Temperature,
		logger:      slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewReviewGenerator creates a new review generator using the provided configuration.
//
// Returns ai.ReviewGenerator interface to enforce abstraction.
func NewReviewGenerator(config *ai.Config) (ai.ReviewGenerator, error) {
	return newReviewGenerator(config)
}

// GenerateReviews asks the LLM for count synthetic reviews about topic.
// The response is parsed strictly: missing or mistyped fields, unknown sentiment
// labels, or fewer reviews than requested all fail the call. Surplus reviews are
// truncated to the requested count.
func (g *ReviewGenerator) GenerateReviews(ctx context.Context, topic string, count int) ([]*core.Review, error) {
	systemPrompt := buildSystemPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(topic, count)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var batch reviewBatch
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		// Each attempt parses into a clean batch; a partial decode from a
		// failed attempt must not leak into the next one
		batch = reviewBatch{}

		response, err := g.client.GenerateContent(ctx, content,
			llms.WithTemperature(g.temperature), llms.WithJSONMode())
		if err != nil {
			g.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			lastErr = fmt.Errorf("no choices returned from model")
			g.logger.Warn("no choices returned from model", "attempt", attempt+1)
			continue
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &batch); err != nil {
			lastErr = err
			g.logger.Warn("error parsing generator response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		if err := validateBatch(&batch, count); err != nil {
			lastErr = err
			g.logger.Warn("generator response failed validation",
				"attempt", attempt+1,
				"reviews", len(batch.Reviews),
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		g.logger.Error("failed to obtain valid reviews after retries", "err", lastErr)
		return nil, lastErr
	}

	reviews := make([]*core.Review, 0, count)
	for _, item := range batch.Reviews[:count] {
		reviews = append(reviews, &core.Review{
			ProductName: strings.TrimSpace(item.ProductName),
			ReviewText:  strings.TrimSpace(item.Review),
			Sentiment:   core.Sentiment(item.Sentiment),
		})
	}

	g.logger.Debug("generated reviews", "topic", topic, "count", len(reviews))
	return reviews, nil
}

// validateBatch checks a parsed response against the requested count.
// Short output fails closed; every item must carry all three fields with a
// known sentiment label.
func validateBatch(batch *reviewBatch, count int) error {
	if len(batch.Reviews) < count {
		return fmt.Errorf("model returned %d reviews, requested %d", len(batch.Reviews), count)
	}
	for i, item := range batch.Reviews[:count] {
		if strings.TrimSpace(item.ProductName) == "" {
			return fmt.Errorf("review %d: %w", i, core.ErrEmptyProductName)
		}
		if strings.TrimSpace(item.Review) == "" {
			return fmt.Errorf("review %d: %w", i, core.ErrEmptyReviewText)
		}
		if err := core.ValidateSentiment(core.Sentiment(item.Sentiment)); err != nil {
			return fmt.Errorf("review %d: %w", i, err)
		}
	}
	return nil
}
