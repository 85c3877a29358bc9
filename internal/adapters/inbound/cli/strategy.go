package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openkraft/lowgen/internal/adapters/outbound/strategystore"
	"github.com/openkraft/lowgen/internal/adapters/outbound/tui"
	"github.com/openkraft/lowgen/internal/bootstrap"
	"github.com/openkraft/lowgen/internal/domain"
)

func newStrategyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "strategy",
		Aliases: []string{"strategies"},
		Short:   "Manage generation strategies",
		Long:    "Strategies are kept in the registry database. The built-in strategies are seeded into an empty registry.",
	}
	cmd.AddCommand(newStrategyListCmd(g))
	cmd.AddCommand(newStrategyShowCmd(g))
	cmd.AddCommand(newStrategyCreateCmd(g))
	cmd.AddCommand(newStrategyUpdateCmd(g))
	cmd.AddCommand(newStrategyDeleteCmd(g))
	return cmd
}

// openRegistry opens the services for commands that act on the registry
// from the current directory.
func (g *globals) openRegistry(cmd *cobra.Command) (*bootstrap.Container, error) {
	dir, err := projectDir(nil)
	if err != nil {
		return nil, err
	}
	c, _, err := g.open(cmd.Context(), dir, bootstrap.Options{})
	return c, err
}

func newStrategyListCmd(g *globals) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			strategies := c.Strategies.List()
			if jsonOut {
				return renderJSON(cmd, strategies)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStrategies(strategies))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newStrategyShowCmd(g *globals) *cobra.Command {
	var (
		jsonOut bool
		export  string
	)
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.Strategies.Get(args[0])
			if err != nil {
				return err
			}
			if export != "" {
				if err := strategystore.WriteFile(export, *st); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", st.Name, export)
				return nil
			}
			if jsonOut {
				return renderJSON(cmd, st)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStrategy(st))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&export, "export", "", "Write the strategy as YAML to this file")
	return cmd
}

func newStrategyCreateCmd(g *globals) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create -f <file|dir>",
		Short: "Register strategies from a YAML or JSON document",
		Long:  "Create registers the strategy in a document, or every document in a directory. Existing names are rejected.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			strategies, err := readStrategies(file)
			if err != nil {
				return err
			}

			c, err := g.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			for _, st := range strategies {
				if err := c.Strategies.Create(cmd.Context(), st); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created strategy %s\n", st.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Strategy document or directory of documents")
	return cmd
}

func readStrategies(path string) ([]domain.GenerationStrategy, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy file: %w", err)
	}
	if info.IsDir() {
		return strategystore.ReadDir(path)
	}
	st, err := strategystore.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []domain.GenerationStrategy{st}, nil
}

func newStrategyUpdateCmd(g *globals) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <name> -f <file>",
		Short: "Merge a partial strategy document into a strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			patch, err := strategystore.ReadPatch(file)
			if err != nil {
				return err
			}

			c, err := g.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			st, err := c.Strategies.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated strategy %s\n", st.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Partial strategy document")
	return cmd
}

func newStrategyDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a strategy from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := g.openRegistry(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Strategies.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted strategy %s\n", args[0])
			return nil
		},
	}
}
