package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/lowgen/internal/adapters/inbound/watcher"
	"github.com/openkraft/lowgen/internal/adapters/outbound/config"
	"github.com/openkraft/lowgen/internal/adapters/outbound/metrics"
	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/application"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
)

type generateFlags struct {
	schema          string
	strategy        string
	out             string
	overwriteBiz    bool
	noOverwriteBase bool
	tests           bool
	docs            bool
	optimizeImports bool
	format          bool
	validate        bool
	dryRun          bool
	json            bool
	watch           bool
	metricsAddr     string
}

func newGenerateCmd(g *globals) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate [project-dir]",
		Short: "Generate code from an entity schema",
		Long: "Generate renders the strategy's templates for every entity in the schema. " +
			"Base files are rewritten on each run, business files only when they do not exist yet.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.metricsAddr != "" && !f.watch {
				return errors.New("--metrics-addr requires --watch")
			}
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			if f.watch {
				return runWatch(cmd, g, f, dir)
			}
			return runGenerate(cmd, g, f, dir, nil)
		},
	}
	cmd.Flags().StringVarP(&f.schema, "schema", "s", "", "Schema file (JSON or YAML)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Strategy name")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory")
	cmd.Flags().BoolVar(&f.overwriteBiz, "overwrite-biz", false, "Overwrite existing business files")
	cmd.Flags().BoolVar(&f.noOverwriteBase, "no-overwrite-base", false, "Leave existing base files untouched")
	cmd.Flags().BoolVar(&f.tests, "tests", false, "Generate test companions for business files")
	cmd.Flags().BoolVar(&f.docs, "docs", false, "Write docs/<entity>.md per entity (fields and relations)")
	cmd.Flags().BoolVar(&f.optimizeImports, "optimize-imports", false, "Sort and deduplicate imports")
	cmd.Flags().BoolVar(&f.format, "format", false, "Normalize whitespace of generated files")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "Fail the run on render errors and leftover {{...}} or {placeholder} tokens")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be generated without writing")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Regenerate when the schema or config changes")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while watching")
	return cmd
}

// overrides turns the flags the user actually set into option overrides, so
// unset flags leave .lowgen.yaml in charge.
func (f *generateFlags) overrides(cmd *cobra.Command) *domain.OptionOverride {
	o := &domain.OptionOverride{}
	set := false
	pick := func(name string, v bool, dst **bool) {
		if cmd.Flags().Changed(name) {
			*dst = &v
			set = true
		}
	}
	pick("overwrite-biz", f.overwriteBiz, &o.OverwriteBiz)
	pick("no-overwrite-base", !f.noOverwriteBase, &o.OverwriteBase)
	pick("tests", f.tests, &o.GenerateTests)
	pick("docs", f.docs, &o.GenerateDocs)
	pick("optimize-imports", f.optimizeImports, &o.OptimizeImports)
	pick("format", f.format, &o.FormatCode)
	pick("validate", f.validate, &o.ValidateCode)
	if !set {
		return nil
	}
	return o
}

func runGenerate(cmd *cobra.Command, g *globals, f *generateFlags, dir string, observer domain.GenerationObserver) error {
	ctx := cmd.Context()
	c, cfg, err := g.open(ctx, dir, bootstrap.Options{Observer: observer})
	if err != nil {
		return err
	}
	defer c.Close()

	outcome, err := c.Projects.Generate(ctx, application.GenerateRequest{
		ProjectDir: dir,
		Config:     cfg,
		SchemaPath: f.schema,
		Strategy:   f.strategy,
		OutputDir:  f.out,
		Options:    f.overrides(cmd),
		DryRun:     f.dryRun,
	})
	if err != nil {
		return err
	}

	if f.json {
		if err := renderJSON(cmd, outcome); err != nil {
			return err
		}
	} else {
		var written []string
		if outcome.Written != nil {
			written = outcome.Written.Written
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderGenerationResult(outcome.Result, written, outcome.DryRun))
	}

	if !outcome.Result.Success {
		return fmt.Errorf("generation failed with %d errors", len(outcome.Result.Errors))
	}
	return nil
}

// runWatch generates once, then again on every change to the schema or the
// project config, until interrupted.
func runWatch(cmd *cobra.Command, g *globals, f *generateFlags, dir string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	cfg, err := config.New().Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	schema := f.schema
	if schema == "" && cfg.Schema != "" {
		schema = cfg.Schema
		if !filepath.IsAbs(schema) {
			schema = filepath.Join(dir, schema)
		}
	}
	if schema == "" {
		return errors.New("--watch needs a schema file (use --schema or set schema in .lowgen.yaml)")
	}
	f.schema = schema

	var observer domain.GenerationObserver
	eg, ctx := errgroup.WithContext(ctx)
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		observer = metrics.NewObserver(reg)
		eg.Go(func() error {
			return metrics.Serve(ctx, f.metricsAddr, metrics.Handler(reg))
		})
		g.logger.Info("serving metrics", "addr", f.metricsAddr)
	}

	w, err := watcher.New([]string{schema, filepath.Join(dir, config.FileName)}, watcher.DefaultDebounce, g.logger)
	if err != nil {
		return err
	}

	generate := func(context.Context) error {
		if err := runGenerate(cmd, g, f, dir, observer); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return nil
	}
	_ = generate(ctx)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", schema)

	eg.Go(func() error {
		return w.Run(ctx, generate)
	})
	return eg.Wait()
}
