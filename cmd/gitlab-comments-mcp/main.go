package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gitlab.com/reviewkit/gitlab-comments-mcp/cmd"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/glclient"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/tools"
)

func main() {
	// Diagnostics go to stderr; stdout carries the MCP framing.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	toolSet := tools.New(glclient.New)

	if err := cmd.New(toolSet).ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
