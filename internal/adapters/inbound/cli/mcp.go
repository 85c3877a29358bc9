package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/openkraft/lowgen/internal/adapters/inbound/mcp"
	"github.com/openkraft/lowgen/internal/bootstrap"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the lowgen MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start lowgen MCP server (stdio)",
		Long:  "Start the lowgen MCP server using stdio transport. This lets AI coding assistants generate code, analyze quality and browse strategies.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var args0 []string
			if projectPath != "" {
				args0 = []string{projectPath}
			}
			dir, err := projectDir(args0)
			if err != nil {
				return err
			}
			c, _, err := g.open(cmd.Context(), dir, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer c.Close()

			s := mcpadapter.NewServer(c, dir)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
