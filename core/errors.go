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

import "errors"

// Domain validation errors
var (
	// ErrInvalidReview indicates a Review failed validation.
	ErrInvalidReview = errors.New("invalid review")

	// ErrEmptyTopic indicates the topic is empty after normalization.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrEmptyProductName indicates the ProductName field is empty.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrEmptyReviewText indicates the ReviewText field is empty.
	ErrEmptyReviewText = errors.New("review text cannot be empty")

	// ErrInvalidSentiment indicates a sentiment label outside the known set.
	ErrInvalidSentiment = errors.New("invalid sentiment")
)
