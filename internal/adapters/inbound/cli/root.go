package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/config"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	logLevel  string
	logFormat string
	registry  string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "lowgen",
		Short: "Layered code generation with a quality gate",
		Long: "lowgen generates NestJS, Spring Boot and Go code from an entity schema. " +
			"Base files are regenerated on every run; business files are created once and then belong to you.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(cmd.ErrOrStderr(), g.logLevel, g.logFormat)
			if err != nil {
				return err
			}
			g.logger = l
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")
	cmd.PersistentFlags().StringVar(&g.registry, "registry", bootstrap.DefaultRegistryPath(), "Strategy registry database (:memory: for a throwaway one)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newGenerateCmd(g))
	cmd.AddCommand(newHistoryCmd(g))
	cmd.AddCommand(newAnalyzeCmd(g))
	cmd.AddCommand(newDepsCmd(g))
	cmd.AddCommand(newOptimizeCmd(g))
	cmd.AddCommand(newFixCmd(g))
	cmd.AddCommand(newRulesCmd(g))
	cmd.AddCommand(newStrategyCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// open loads the project config in dir and builds the services around it.
func (g *globals) open(ctx context.Context, dir string, opts bootstrap.Options) (*bootstrap.Container, domain.ProjectConfig, error) {
	cfg, err := config.New().Load(dir)
	if err != nil {
		return nil, domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}

	opts.RegistryPath = g.registry
	opts.Logger = g.logger
	if opts.Workers == 0 {
		opts.Workers = cfg.Workers
	}
	if opts.TemplatesDir == "" && cfg.TemplatesDir != "" {
		opts.TemplatesDir = relToDir(dir, cfg.TemplatesDir)
	}

	c, err := bootstrap.NewContainer(ctx, opts)
	if err != nil {
		return nil, domain.ProjectConfig{}, err
	}
	if err := c.LoadProjectStrategies(ctx, dir, cfg); err != nil {
		_ = c.Close()
		return nil, domain.ProjectConfig{}, err
	}
	return c, cfg, nil
}

// projectDir resolves the optional [path] argument.
func projectDir(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func relToDir(dir, p string) string {
	if p == "" {
		return dir
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
