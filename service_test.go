package datagen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/datagen/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("create new service", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		svc, err := NewService(tmpDir, WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		defer svc.Close()

		// Verify components are initialized
		assert.NotNil(t, svc.ReviewRepository())
		assert.NotNil(t, svc.VectorRepository())
		assert.NotNil(t, svc.backend)
		assert.NotNil(t, svc.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a service at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		svc, err := NewService(tmpFile, WithAIProvider(mock.NewMockProvider()))
		assert.Error(t, err)
		assert.Nil(t, svc)
	})

	t.Run("in-memory storage", func(t *testing.T) {
		svc, err := NewService("", WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.NoError(t, svc.Close())
	})
}

func TestService_Close(t *testing.T) {
	tmpDir := t.TempDir()
	svc, err := NewService(tmpDir, WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, svc)

	err = svc.Close()
	assert.NoError(t, err)
}

func TestService_NewDispatcher(t *testing.T) {
	svc, err := NewService("", WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer svc.Close()

	dispatcher, err := svc.NewDispatcher()
	require.NoError(t, err)
	require.NotNil(t, dispatcher)
	defer dispatcher.Release()

	// End-to-end through the facade with mocked AI
	result, err := dispatcher.Generate(context.Background(), "electronics", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)

	hits, err := dispatcher.Search(context.Background(), "electronics", "battery", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
