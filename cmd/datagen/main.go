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


package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/datagen"
	"github.com/poiesic/datagen/ai"
	"github.com/poiesic/datagen/server"
	"github.com/poiesic/datagen/workflow"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "datagen",
		Usage: "Synthetic product review generation and semantic search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"DATAGEN_LOG_LEVEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Address to listen on",
						Value:   ":8000",
						EnvVars: []string{"DATAGEN_ADDR"},
					},
				),
			},
			{
				Name:   "generate",
				Usage:  "Generate labeled reviews for a topic and index them",
				Action: generateCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic to generate reviews about",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "rows",
						Aliases: []string{"n"},
						Usage:   "Number of reviews to generate",
						Value:   10,
					},
				),
			},
			{
				Name:   "search",
				Usage:  "Semantically search a topic's reviews",
				Action: searchCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic whose collection to search",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   workflow.DefaultTopK,
					},
				),
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild a topic's vector collection from stored rows",
				Action: reindexCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:     "topic",
						Aliases:  []string{"t"},
						Usage:    "Topic to reindex",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are shared by every command that opens the store and the
// AI provider.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB database directory",
			Value:   "./datagen_db",
			EnvVars: []string{"DATAGEN_DB"},
		},
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL for both embedding and generation",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"DATAGEN_AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL (defaults to ai-host)",
			EnvVars: []string{"DATAGEN_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "generator-host",
			Usage:   "Generation service host URL (defaults to ai-host)",
			EnvVars: []string{"DATAGEN_GENERATOR_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"DATAGEN_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "generator-model",
			Usage:   "Generation model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"DATAGEN_GENERATOR_MODEL"},
		},
		&cli.Float64Flag{
			Name:    "temperature",
			Usage:   "Sampling temperature for review generation",
			Value:   0.7,
			EnvVars: []string{"DATAGEN_TEMPERATURE"},
		},
		&cli.StringFlag{
			Name:    "export-dir",
			Usage:   "Directory for per-topic CSV exports (disabled when empty)",
			EnvVars: []string{"DATAGEN_EXPORT_DIR"},
		},
		&cli.IntFlag{
			Name:    "max-rows",
			Usage:   "Maximum rows per generate request",
			Value:   workflow.DefaultMaxRows,
			EnvVars: []string{"DATAGEN_MAX_ROWS"},
		},
	}
}

func buildAIConfig(c *cli.Context) *ai.Config {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("ai-host")
	}
	generatorHost := c.String("generator-host")
	if generatorHost == "" {
		generatorHost = c.String("ai-host")
	}

	return ai.NewConfig(
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithGeneratorHost(generatorHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithTemperature(c.Float64("temperature")),
	)
}

func openDispatcher(c *cli.Context) (*datagen.Service, *workflow.Dispatcher, error) {
	svc, err := datagen.NewService(c.String("db"), datagen.WithAIConfig(buildAIConfig(c)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open service: %w", err)
	}

	opts := []workflow.Option{workflow.WithMaxRows(c.Int("max-rows"))}
	if dir := c.String("export-dir"); dir != "" {
		exporter, err := workflow.NewExporter(dir)
		if err != nil {
			svc.Close()
			return nil, nil, fmt.Errorf("failed to create exporter: %w", err)
		}
		opts = append(opts, workflow.WithExporter(exporter))
	}

	dispatcher, err := svc.NewDispatcher(opts...)
	if err != nil {
		svc.Close()
		return nil, nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}
	return svc, dispatcher, nil
}

func serveCommand(c *cli.Context) error {
	svc, dispatcher, err := openDispatcher(c)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer dispatcher.Release()

	srv := &http.Server{
		Addr:    c.String("addr"),
		Handler: server.NewServer(dispatcher, slog.Default()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func generateCommand(c *cli.Context) error {
	svc, dispatcher, err := openDispatcher(c)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer dispatcher.Release()

	result, err := dispatcher.Generate(c.Context, c.String("topic"), c.Int("rows"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Inserted %d reviews for topic %q\n", result.Count, c.String("topic"))
	return nil
}

func searchCommand(c *cli.Context) error {
	svc, dispatcher, err := openDispatcher(c)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer dispatcher.Release()

	hits, err := dispatcher.Search(c.Context, c.String("topic"), c.String("query"), c.Int("top-k"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}

func reindexCommand(c *cli.Context) error {
	svc, dispatcher, err := openDispatcher(c)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer dispatcher.Release()

	count, err := dispatcher.Reindex(c.Context, c.String("topic"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Reindexed %d reviews for topic %q\n", count, c.String("topic"))
	return nil
}

func setup(c *cli.Context) error {
	// Load .env if present; missing files are fine
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
