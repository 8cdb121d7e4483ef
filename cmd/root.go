// Package cmd implements the root command for Cobra.
package cmd

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/build"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/config"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/tools"
)

// New creates the command hierarchy for Cobra with the provided tool set.
func New(toolSet *tools.Tools) *cobra.Command {
	cmd := newRootCommand(toolSet)

	cmd.AddCommand(newVersionCommand())

	return cmd
}

type rootCommand struct {
	tools *tools.Tools
}

// newRootCommand returns the root command for the CLI.
func newRootCommand(toolSet *tools.Tools) *cobra.Command {
	return &cobra.Command{
		Use:   "gitlab-comments-mcp",
		Short: "GitLab merge request comments MCP server",
		Long:  "An MCP server exposing the review comments of GitLab merge requests as a flattened list.",
		RunE:  (&rootCommand{tools: toolSet}).run,
		Args:  cobra.NoArgs,
	}
}

func (c *rootCommand) run(_ *cobra.Command, _ []string) error {
	s := server.NewMCPServer(
		"GitLab Merge Request Comments",
		build.Version(),
		server.WithLogging(),
		server.WithRecovery(),
	)

	c.tools.AddTo(s)

	// Configuration is resolved per call, so a missing variable is not fatal
	// here. Warn early anyway: it is the most common setup mistake.
	if _, err := config.Resolve(); err != nil {
		log.Printf("warning: %v (tool calls will fail until the environment is fixed)", err)
	}

	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("ServeStdio: %w", err)
	}

	return nil
}
