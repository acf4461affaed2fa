package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestServiceFlags(t *testing.T) {
	flags := serviceFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}
	findInt := func(name string) *cli.IntFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("db has default value", func(t *testing.T) {
		f := findString("db")
		require.NotNil(t, f)
		assert.Equal(t, "./datagen_db", f.Value)
		assert.Contains(t, f.EnvVars, "DATAGEN_DB")
	})

	t.Run("ai-host has default value", func(t *testing.T) {
		f := findString("ai-host")
		require.NotNil(t, f)
		assert.Equal(t, "http://localhost:11434/v1", f.Value)
	})

	t.Run("per-service hosts default to empty", func(t *testing.T) {
		for _, name := range []string{"embedding-host", "generator-host"} {
			f := findString(name)
			require.NotNil(t, f)
			assert.Empty(t, f.Value)
		}
	})

	t.Run("max-rows has default", func(t *testing.T) {
		f := findInt("max-rows")
		require.NotNil(t, f)
		assert.Equal(t, 100, f.Value)
	})

	t.Run("export-dir is optional", func(t *testing.T) {
		f := findString("export-dir")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
	})
}

func TestBuildAIConfig(t *testing.T) {
	app := &cli.App{
		Name:  "test",
		Flags: serviceFlags(),
	}

	t.Run("per-service hosts fall back to ai-host", func(t *testing.T) {
		app.Action = func(c *cli.Context) error {
			cfg := buildAIConfig(c)
			assert.Equal(t, "http://example.com/v1", cfg.EmbeddingHost)
			assert.Equal(t, "http://example.com/v1", cfg.GeneratorHost)
			return nil
		}
		require.NoError(t, app.Run([]string{"test", "--ai-host", "http://example.com/v1"}))
	})

	t.Run("explicit hosts win", func(t *testing.T) {
		app.Action = func(c *cli.Context) error {
			cfg := buildAIConfig(c)
			assert.Equal(t, "http://embed.local/v1", cfg.EmbeddingHost)
			assert.Equal(t, "http://gen.local/v1", cfg.GeneratorHost)
			return nil
		}
		require.NoError(t, app.Run([]string{
			"test",
			"--embedding-host", "http://embed.local/v1",
			"--generator-host", "http://gen.local/v1",
		}))
	})

	t.Run("models and temperature carried through", func(t *testing.T) {
		app.Action = func(c *cli.Context) error {
			cfg := buildAIConfig(c)
			assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
			assert.Equal(t, "qwen2.5:3b", cfg.GeneratorModel)
			assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
			return nil
		}
		require.NoError(t, app.Run([]string{"test"}))
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
