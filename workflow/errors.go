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


package workflow

import "errors"

var (
	// ErrReviewRepositoryRequired is returned when a review repository is not provided.
	ErrReviewRepositoryRequired = errors.New("review repository required")

	// ErrVectorRepositoryRequired is returned when a vector repository is not provided.
	ErrVectorRepositoryRequired = errors.New("vector repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrInvalidInput indicates request parameters rejected before any external call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneration indicates the generator failed or returned malformed output.
	// Nothing has been persisted when this error is returned.
	ErrGeneration = errors.New("generation failed")

	// ErrEmbedding indicates the embedding service failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrStorage indicates a failure writing to or reading from the row store.
	ErrStorage = errors.New("storage failed")

	// ErrIndexing indicates rows were persisted but vector indexing failed.
	// The rows are durable and become searchable after a corrective re-index.
	ErrIndexing = errors.New("vector indexing failed")
)
