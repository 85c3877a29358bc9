// Package bootstrap wires the outbound adapters into the application
// services shared by the CLI and the MCP server.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/openkraft/lowgen/internal/adapters/outbound/cache"
	"github.com/openkraft/lowgen/internal/adapters/outbound/config"
	"github.com/openkraft/lowgen/internal/adapters/outbound/detector"
	"github.com/openkraft/lowgen/internal/adapters/outbound/filesystem"
	"github.com/openkraft/lowgen/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/lowgen/internal/adapters/outbound/history"
	"github.com/openkraft/lowgen/internal/adapters/outbound/renderer"
	"github.com/openkraft/lowgen/internal/adapters/outbound/scanner"
	"github.com/openkraft/lowgen/internal/adapters/outbound/schemafile"
	"github.com/openkraft/lowgen/internal/adapters/outbound/strategystore"
	"github.com/openkraft/lowgen/internal/application"
	"github.com/openkraft/lowgen/internal/domain"
)

// Options select the adapters of a Container.
type Options struct {
	// RegistryPath is the SQLite strategy registry. strategystore.MemoryDSN
	// keeps it in memory; empty uses a plain in-memory map.
	RegistryPath string
	TemplatesDir string
	Workers      int
	Observer     domain.GenerationObserver
	Logger       *slog.Logger
}

type Container struct {
	Strategies   *application.StrategyService
	Generator    *application.GenerationService
	Materializer *application.Materializer
	Projects     *application.ProjectService
	Quality      *application.QualityService
	Configs      domain.ConfigLoader
	History      *history.FileHistory
	Logger       *slog.Logger

	registry *strategystore.SQLite
}

// DefaultRegistryPath is ~/.lowgen/registry.db, or a project-local path when
// the home directory is unknown.
func DefaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".lowgen", "registry.db")
	}
	return filepath.Join(home, ".lowgen", "registry.db")
}

func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Configs: config.New(),
		History: history.New(),
		Logger:  logger,
	}

	// 1. Strategy registry
	var repo domain.StrategyRepository = strategystore.NewMemory()
	if opts.RegistryPath != "" {
		db, err := strategystore.OpenSQLite(ctx, opts.RegistryPath)
		if err != nil {
			return nil, fmt.Errorf("opening strategy registry: %w", err)
		}
		c.registry = db
		repo = db
	}
	c.Strategies = application.NewStrategyService(repo, logger)
	if err := c.Strategies.Init(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	// 2. Generation
	r, err := renderer.New(opts.TemplatesDir)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	fs := filesystem.NewOS()
	c.Generator = application.NewGenerationService(fs, r,
		application.WithWorkers(opts.Workers),
		application.WithObserver(opts.Observer),
		application.WithLogger(logger),
	)
	c.Materializer = application.NewMaterializer(fs, c.History, gitinfo.New(), logger)
	c.Projects = application.NewProjectService(c.Strategies, c.Generator, c.Materializer, schemafile.New(), logger)
	c.Projects.SetDetector(detector.New())

	// 3. Quality
	c.Quality = application.NewQualityService(scanner.New(), c.Configs, cache.New(), fs, logger)
	c.Quality.SetDetector(detector.New())
	return c, nil
}

// LoadProjectStrategies registers the strategy files named by the project
// config in dir.
func (c *Container) LoadProjectStrategies(ctx context.Context, dir string, cfg domain.ProjectConfig) error {
	return c.Projects.LoadStrategyFiles(ctx, dir, cfg.StrategyFiles, strategystore.ReadFile)
}

// Close releases the strategy registry.
func (c *Container) Close() error {
	if c.registry == nil {
		return nil
	}
	return c.registry.Close()
}
