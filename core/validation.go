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


package core

import "fmt"

// ValidateReview validates a Review according to domain rules.
//
// Validation rules:
//   - ProductName must not be empty
//   - ReviewText must not be empty
//   - Sentiment must be one of the known labels
//
// NOT validated (populated by storage):
//   - ID (0 is valid from database sequences)
//   - Topic (assigned by the workflow before persistence)
//   - InsertedAt (assigned on insert)
func ValidateReview(review *Review) error {
	if review == nil {
		return fmt.Errorf("%w: review is nil", ErrInvalidReview)
	}

	if review.ProductName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReview, ErrEmptyProductName)
	}

	if review.ReviewText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidReview, ErrEmptyReviewText)
	}

	if err := ValidateSentiment(review.Sentiment); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReview, err)
	}

	return nil
}

// ValidateSentiment validates that a sentiment label is one of the known values.
func ValidateSentiment(sentiment Sentiment) error {
	for _, s := range Sentiments {
		if sentiment == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidSentiment, sentiment)
}

// ValidateTopic validates that a topic is non-empty after normalization.
func ValidateTopic(topic string) error {
	if NormalizeTopic(topic) == "" {
		return ErrEmptyTopic
	}
	return nil
}
