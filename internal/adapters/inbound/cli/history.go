package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/config"
	"github.com/openkraft/lowgen/internal/adapters/outbound/history"
	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var (
		out     string
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "history [project-dir]",
		Short: "Show past generation runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := projectDir(args)
			if err != nil {
				return err
			}
			if out == "" {
				cfg, err := config.New().Load(dir)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				out = relToDir(dir, cfg.OutputDir)
			}

			entries, err := history.New().Load(out)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			g.logger.Debug("loaded history", "dir", out, "entries", len(entries))

			if jsonOut {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output directory of the runs (default: config, then project dir)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show only the most recent runs (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
