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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/rankit"
	"github.com/poiesic/rankit/ai"
	"github.com/poiesic/rankit/ai/openai"
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/config"
	"github.com/poiesic/rankit/index"
	"github.com/poiesic/rankit/indexer"
	"github.com/urfave/cli/v2"
)

// defaultQuery is used when the query command gets no words.
const defaultQuery = "long horizon drift evaluation in adaptive systems"

func main() {
	app := &cli.App{
		Name:  "rankit",
		Usage: "Tiered document retrieval with weighted semantic ranking",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Embed the document catalog and persist the index",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "Path to the catalog file (defaults to resolution inside the data dir)",
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Aliases: []string{"d"},
						Usage:   "Directory holding the catalog and index files",
						Value:   "data",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Embedding model name",
						Value: "all-MiniLM-L6-v2",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to embed per call",
						Value: 16,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 2 * time.Second,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 10,
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run a retrieval query against the persisted index",
				ArgsUsage: "[query words...]",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the settings file",
						Value:   config.DefaultFile,
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Aliases: []string{"d"},
						Usage:   "Directory holding the catalog and index files",
						Value:   "data",
					},
					&cli.StringFlag{
						Name:  "log-dir",
						Usage: "Directory for run logs",
						Value: "logs",
					},
					&cli.StringFlag{
						Name:  "reason",
						Usage: "Reason recorded in the run log",
						Value: rankit.DefaultReason,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to keep (0 uses the configured value)",
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Check the persisted index against the current catalog",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalog",
						Usage: "Path to the catalog file (defaults to resolution inside the data dir)",
					},
					&cli.StringFlag{
						Name:    "data-dir",
						Aliases: []string{"d"},
						Usage:   "Directory holding the catalog and index files",
						Value:   "data",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	dataDir := c.String("data-dir")

	catalogPath := c.String("catalog")
	if catalogPath == "" {
		resolved, err := catalog.ResolvePath(dataDir)
		if err != nil {
			return err
		}
		catalogPath = resolved
	}

	docs, err := catalog.Load(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	hash, err := catalog.CanonicalHash(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to hash catalog: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("model")),
		ai.WithEmbeddingBatchSize(c.Int("batch-size")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	ix, err := indexer.New(embedder, indexer.Config{
		BatchSize:      c.Int("batch-size"),
		PoolSize:       c.Int("pool-size"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		ReportInterval: c.Int("report-interval"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Catalog: %s (%d documents)\n", catalogPath, len(docs))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("model"))
	fmt.Fprintln(os.Stderr)

	build, err := ix.Run(ctx, docs, hash, c.String("model"))
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if err := index.Write(dataDir, build.Manifest, build.Metas, build.Vectors); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}

	fmt.Printf("Indexed %d documents (dim %d) into %s\n",
		len(build.Metas), build.Manifest.EmbeddingDim, dataDir)
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		query = defaultQuery
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	engine, err := rankit.NewEngine(c.String("data-dir"), cfg,
		rankit.WithLogDir(c.String("log-dir")))
	if err != nil {
		return err
	}

	report, err := engine.Run(ctx, rankit.RunRequest{
		Query:  query,
		Reason: c.String("reason"),
		TopK:   c.Int("top-k"),
	})
	if err != nil {
		return err
	}

	for i, r := range report.Results {
		fmt.Printf("%d. %s | tier=%s | sim=%.3f | mult=%.2f | weighted=%.3f\n",
			i+1, r.DocID, r.Tier, r.RawSim, r.Multiplier, r.WeightedScore)
	}
	fmt.Printf("\nRun log: %s\n", report.LogPath)
	return nil
}

func verifyCommand(c *cli.Context) error {
	dataDir := c.String("data-dir")

	manifest, err := index.LoadManifest(dataDir)
	if err != nil {
		return err
	}

	catalogPath := c.String("catalog")
	if catalogPath == "" {
		resolved, err := catalog.ResolvePath(dataDir)
		if err != nil {
			return err
		}
		catalogPath = resolved
	}

	if err := manifest.Verify(catalogPath); err != nil {
		return err
	}

	fmt.Printf("OK: index matches catalog (hash %s)\n", manifest.SourceManifestHash)
	return nil
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
