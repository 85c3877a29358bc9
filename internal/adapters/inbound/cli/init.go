package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/config"
	"github.com/openkraft/lowgen/internal/adapters/outbound/detector"
	"github.com/openkraft/lowgen/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		framework string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .lowgen.yaml configuration file",
		Long:  "Create a .lowgen.yaml with the defaults of the project's framework. The framework is detected from the build files unless --framework is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(dir, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if framework == "" {
				framework = detector.New().Detect(dir)
			}
			cfg := domain.DefaultConfigForFramework(framework)
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			if framework == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (framework not detected, set it by hand)\n", config.FileName)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s for %s\n", config.FileName, framework)
			return nil
		},
	}

	cmd.Flags().StringVar(&framework, "framework", "", "Framework (nestjs, spring-boot, express, react, go)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .lowgen.yaml")

	return cmd
}

func generateConfig(cfg domain.ProjectConfig) string {
	var b strings.Builder
	b.WriteString("# lowgen configuration\n\n")

	if cfg.Framework != "" {
		fmt.Fprintf(&b, "framework: %s\n", cfg.Framework)
	} else {
		b.WriteString("# framework: nestjs\n")
	}
	if cfg.Strategy != "" {
		fmt.Fprintf(&b, "strategy: %s\n", cfg.Strategy)
	}
	b.WriteString("schema: schema.yaml\n")
	b.WriteString("# output_dir: .\n")
	b.WriteString("# templates_dir: templates\n")
	b.WriteString("# strategy_files:\n#   - strategies/custom.yaml\n\n")

	b.WriteString("# options:\n")
	b.WriteString("#   overwrite_biz: false\n")
	b.WriteString("#   generate_tests: true\n")
	b.WriteString("#   format_code: true\n\n")

	b.WriteString("analysis:\n")
	if len(cfg.Analysis.ExcludePaths) > 0 {
		b.WriteString("  exclude_paths:\n")
		for _, p := range cfg.Analysis.ExcludePaths {
			fmt.Fprintf(&b, "    - %s\n", p)
		}
	}
	b.WriteString("  # disabled_rules: []\n")
	b.WriteString("  # min_score: 70\n")
	return b.String()
}
