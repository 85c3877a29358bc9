package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
)

func newFixCmd(g *globals) *cobra.Command {
	var (
		framework string
		rule      string
		dryRun    bool
		jsonOut   bool
	)
	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply auto-fixes for quality issues",
		Long:  "Fix analyzes the project and rewrites the files with auto-fixable issues. Other issues are listed for manual attention.",
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

			result, err := c.Quality.FixProject(cmd.Context(), dir, framework, domain.FixOptions{DryRun: dryRun, Rule: rule})
			if err != nil {
				return fmt.Errorf("fixing project: %w", err)
			}
			if jsonOut {
				return renderJSON(cmd, result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result, dryRun))
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "", "Framework (default: config, then detected)")
	cmd.Flags().StringVar(&rule, "rule", "", "Only apply fixes for this rule")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without writing files")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
