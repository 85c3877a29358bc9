package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/bootstrap"
)

func newAnalyzeCmd(g *globals) *cobra.Command {
	var (
		framework string
		jsonOut   bool
		ciMode    bool
		minScore  int
	)
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze code quality of a project",
		Long: "Analyze runs the quality rules of the project's framework over its source files " +
			"and reports issues with complexity, duplication, coverage and dependency metrics.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			c, cfg, err := g.open(cmd.Context(), dir, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer c.Close()

			report, err := c.Quality.AnalyzeProject(cmd.Context(), dir, framework)
			if err != nil {
				return fmt.Errorf("analyzing project: %w", err)
			}

			if jsonOut {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQualityReport(report))
			}

			if !cmd.Flags().Changed("min") {
				minScore = cfg.Analysis.MinScore
			}
			if ciMode && report.Summary.ErrorCount > 0 {
				return fmt.Errorf("%d quality errors", report.Summary.ErrorCount)
			}
			if minScore > 0 && report.Summary.Score < minScore {
				return fmt.Errorf("score %d is below minimum %d", report.Summary.Score, minScore)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "", "Framework rules to apply (default: config, then detected)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "Exit non-zero when any error-severity issue is found")
	cmd.Flags().IntVar(&minScore, "min", 0, "Exit non-zero when the score is below this value")
	return cmd
}

func newDepsCmd(g *globals) *cobra.Command {
	var (
		framework string
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "Show the import graph of a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			c, _, err := g.open(cmd.Context(), dir, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer c.Close()

			report, err := c.Quality.AnalyzeProject(cmd.Context(), dir, framework)
			if err != nil {
				return fmt.Errorf("analyzing project: %w", err)
			}
			deps := report.Metrics.Dependencies
			if jsonOut {
				return renderJSON(cmd, deps)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDependencies(deps))
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "", "Framework (default: config, then detected)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newOptimizeCmd(g *globals) *cobra.Command {
	var (
		framework string
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "optimize [path]",
		Short: "Suggest code optimizations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			c, _, err := g.open(cmd.Context(), dir, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer c.Close()

			opts, err := c.Quality.OptimizeProject(dir, framework)
			if err != nil {
				return fmt.Errorf("optimizing project: %w", err)
			}
			if jsonOut {
				return renderJSON(cmd, opts)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOptimizations(opts))
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "", "Framework (default: config, then detected)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newRulesCmd(g *globals) *cobra.Command {
	var (
		framework string
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the quality rules for a framework",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			c, cfg, err := g.open(cmd.Context(), dir, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer c.Close()

			if framework == "" {
				framework = cfg.Framework
			}
			rules := c.Quality.RulesFor(cfg, framework)
			if jsonOut {
				return renderJSON(cmd, rules)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(rules))
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "", "Only rules for this framework (default: config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
