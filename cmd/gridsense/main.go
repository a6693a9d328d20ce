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

	"github.com/urfave/cli/v2"

	"github.com/poiesic/gridsense"
	"github.com/poiesic/gridsense/ai"
	"github.com/poiesic/gridsense/concepts"
	"github.com/poiesic/gridsense/loader"
	"github.com/poiesic/gridsense/server"
)

func main() {
	app := &cli.App{
		Name:  "gridsense",
		Usage: "Semantic search engine for spreadsheet data",
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
				Name:   "serve",
				Usage:  "Run the HTTP search API",
				Action: serveCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   ":8000",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Spreadsheet file to load on startup",
					},
					&cli.BoolFlag{
						Name:  "sample",
						Usage: "Load the built-in sample financial model on startup",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Load a spreadsheet and search it from the command line",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(embeddingFlags(),
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Spreadsheet file to search (xlsx or csv); omit to use the built-in sample",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   10,
					},
				),
			},
			{
				Name:   "concepts",
				Usage:  "List the business concept catalog by category",
				Action: conceptsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func embeddingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}
}

func newEngine(ctx context.Context, c *cli.Context) (*gridsense.Engine, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	engine, err := gridsense.NewEngine(ctx, gridsense.WithAIConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return engine, nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if path := c.String("file"); path != "" {
		grid, err := loader.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		if _, err := engine.Load(ctx, grid); err != nil {
			return fmt.Errorf("failed to index %s: %w", path, err)
		}
	} else if c.Bool("sample") {
		if _, err := engine.Load(ctx, gridsense.SampleGrid()); err != nil {
			return fmt.Errorf("failed to load sample data: %w", err)
		}
	}

	return server.New(engine).Run(c.String("addr"))
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	ctx := context.Background()

	engine, err := newEngine(ctx, c)
	if err != nil {
		return err
	}
	defer engine.Close()

	grid := gridsense.SampleGrid()
	if path := c.String("file"); path != "" {
		grid, err = loader.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	if _, err := engine.Load(ctx, grid); err != nil {
		return fmt.Errorf("failed to index %s: %w", grid.Name, err)
	}

	resp, err := engine.Search(ctx, query, c.Int("max-results"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", resp.TotalResults)
	for i, hit := range resp.Results {
		fmt.Printf("%d: %s at %s [%0.3f]\n", i+1, hit.ConceptName, hit.Location, hit.RelevanceScore)
		fmt.Printf("   %s\n", hit.Explanation)
	}
	return nil
}

func conceptsCommand(c *cli.Context) error {
	catalog := concepts.NewCatalog()
	for _, category := range catalog.Categories() {
		fmt.Printf("%s:\n", category)
		for _, name := range catalog.ConceptsInCategory(category) {
			fmt.Printf("  %s\n", name)
		}
	}
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
