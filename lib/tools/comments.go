package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/comments"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/config"
	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/mcpargs"
)

// CommentsServiceInterface defines the comment-related GitLab operations.
type CommentsServiceInterface interface {
	// AddTo registers all comment-related tools with the provided MCPServer.
	AddTo(srv *server.MCPServer)

	// MergeRequestComments returns the tool for listing flattened merge
	// request comments.
	MergeRequestComments() server.ServerTool
}

// NewCommentTools creates a new instance of CommentsServiceInterface with
// the provided client factory.
func NewCommentTools(newClient ClientFactory) *CommentsService {
	return &CommentsService{newClient: newClient}
}

type CommentsService struct {
	newClient ClientFactory
}

// AddTo registers all comment-related tools with the provided MCPServer.
func (s *CommentsService) AddTo(srv *server.MCPServer) {
	srv.AddTools(
		s.MergeRequestComments(),
	)
}

type mergeRequestCommentsArgs struct {
	ProjectID       mcpargs.ID `mcp_desc:"ID of the project either in group/project format or the numeric project ID" mcp_required:"true"`
	MergeRequestIID mcpargs.ID `mcp_desc:"The internal ID (IID) of the merge request within the project" mcp_required:"true"`
	PerPage         int        `mcp_desc:"Number of discussion threads per page (1-100). When omitted, the GitLab API default applies"`
	Page            int        `mcp_desc:"Page of the discussions listing to fetch. When omitted, the GitLab API default applies"`
	IncludeResolved bool       `mcp_desc:"Whether to include resolved comments in the response. Defaults to 'false'."`
}

func (a mergeRequestCommentsArgs) validate() error {
	if a.MergeRequestIID.Integer <= 0 {
		return fmt.Errorf("%w: merge_request_iid must be a positive integer", ErrInvalidArgument)
	}

	if a.PerPage != 0 && (a.PerPage < 1 || a.PerPage > maxPerPage) {
		return fmt.Errorf("%w: per_page must be between 1 and %d", ErrInvalidArgument, maxPerPage)
	}

	if a.Page < 0 {
		return fmt.Errorf("%w: page must be 1 or greater", ErrInvalidArgument)
	}

	return nil
}

// MergeRequestComments returns the tool listing the comments of a merge
// request as a flat JSON array of {file, line, text, author, created_at,
// resolved} records. System notes are excluded; resolved comments are
// excluded unless include_resolved is set.
func (s *CommentsService) MergeRequestComments() server.ServerTool {
	return server.ServerTool{
		Handler: s.mergeRequestComments,
		Tool: mcpargs.NewTool("merge_request_comments", mergeRequestCommentsArgs{},
			mcp.WithDescription("Lists review comments on a GitLab merge request as a flat list"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
	}
}

// mergeRequestComments is the handler behind the tool. Every failure raised
// by the pipeline is caught here and converted into an error-flagged tool
// result with a human-readable message; full detail goes to the stderr log.
func (s *CommentsService) mergeRequestComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args mergeRequestCommentsArgs
	if err := mcpargs.Unmarshal(request.GetArguments(), &args); err != nil {
		return toolError("invalid arguments", err), nil
	}

	if err := args.validate(); err != nil {
		return toolError("invalid arguments", err), nil
	}

	cfg, err := config.Resolve()
	if err != nil {
		return toolError("configuration error", err), nil
	}

	client, err := s.newClient(cfg)
	if err != nil {
		return toolError("failed to set up GitLab client", err), nil
	}

	reader, err := comments.NewMergeRequestComments(client, args.ProjectID, args.MergeRequestIID.Integer)
	if err != nil {
		return toolError("invalid arguments", err), nil
	}

	list, err := reader.List(ctx, comments.ListOptions{
		PerPage:         args.PerPage,
		Page:            args.Page,
		IncludeResolved: args.IncludeResolved,
	})
	if err != nil {
		return toolError("failed to list merge request comments", err), nil
	}

	return newToolResultJSON(list)
}

// toolError logs the failure to the diagnostic stream and returns it as an
// error-flagged tool result. Errors never cross the adapter as transport
// failures, so a broken call cannot take the server down.
func toolError(msg string, err error) *mcp.CallToolResult {
	log.Printf("merge_request_comments: %s: %v", msg, err)

	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", msg, err))
}
