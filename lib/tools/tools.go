// Package tools exposes the server's MCP tool surface. The single tool,
// merge_request_comments, fetches the discussion threads of a GitLab merge
// request and returns them as a flattened JSON comment list. The package
// owns the boundary work only: argument validation, per-call configuration
// resolution, and error translation; the pipeline itself lives in
// lib/comments.
package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/config"
)

// maxPerPage is the upper bound the GitLab API accepts for per_page.
const maxPerPage = 100

// ErrInvalidArgument indicates that a tool call carried a malformed or
// out-of-range argument. Such calls are rejected before any network activity.
var ErrInvalidArgument = errors.New("invalid argument")

// ClientFactory builds a GitLab client for a single tool call. Constructing
// the client per call keeps configuration effects, TLS verification in
// particular, scoped to the call that requested them.
type ClientFactory func(config.Config) (*gitlab.Client, error)

// Tools is the aggregate of all tool services registered with the server.
type Tools struct {
	// Comments provides the merge request comments tool.
	Comments CommentsServiceInterface
}

// New wires up the tool services with the provided client factory.
func New(newClient ClientFactory) *Tools {
	return &Tools{
		Comments: NewCommentTools(newClient),
	}
}

// AddTo registers all tools with the provided MCPServer.
func (s *Tools) AddTo(srv *server.MCPServer) {
	s.Comments.AddTo(srv)
}

// newToolResultJSON encodes the provided value as JSON and returns it as a
// tool result. A nil slice encodes as "[]" rather than "null".
func newToolResultJSON(v any) (*mcp.CallToolResult, error) {
	if value := reflect.ValueOf(v); value.Kind() == reflect.Slice && value.IsNil() {
		return mcp.NewToolResultText("[]"), nil
	}

	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(v); err != nil {
		return nil, fmt.Errorf("encoding to JSON: %w", err)
	}

	return mcp.NewToolResultText(b.String()), nil
}
