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


package datagen

import (
	"log/slog"

	"github.com/poiesic/datagen/ai"
	"github.com/poiesic/datagen/ai/openai"
	"github.com/poiesic/datagen/storage"
	"github.com/poiesic/datagen/storage/badger"
	"github.com/poiesic/datagen/workflow"
)

// Service wires the storage backend and the AI provider together and hands
// out workflow dispatchers over them.
type Service struct {
	backend    *badger.Backend
	reviewRepo storage.ReviewRepository
	vectorRepo storage.VectorRepository
	provider   ai.AIProvider
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig overrides the default AI configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider supplies a pre-built AI provider instead of constructing the
// OpenAI-compatible one. Used for testing with mocks.
func WithAIProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage uses an in-memory store instead of a file-backed one.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create review repository
	reviewRepo, err := badger.NewReviewRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create vector repository
	vectorRepo, err := badger.NewVectorRepository(backend)
	if err != nil {
		reviewRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings unless one was supplied
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			vectorRepo.Close()
			reviewRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:    backend,
		reviewRepo: reviewRepo,
		vectorRepo: vectorRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Close AI provider first
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := s.vectorRepo.Close(); err != nil {
		s.logger.Error("error closing vector repository", "err", err)
		return err
	}
	if err := s.reviewRepo.Close(); err != nil {
		s.logger.Error("error closing review repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) ReviewRepository() storage.ReviewRepository {
	return s.reviewRepo
}

func (s *Service) VectorRepository() storage.VectorRepository {
	return s.vectorRepo
}

func (s *Service) NewDispatcher(opts ...workflow.Option) (*workflow.Dispatcher, error) {
	return workflow.NewDispatcher(s.reviewRepo, s.vectorRepo, s.provider, opts...)
}
