package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/build"
)

// newVersionCommand returns a Cobra command displaying the current version.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display the current version of the GitLab merge request comments MCP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Printf("gitlab-comments-mcp version: %s (%s, %s)\n", build.Version(), build.Commit(), build.Date())

			return nil
		},
		Args: cobra.NoArgs,
	}
}
