// Package comments retrieves merge request discussion threads from GitLab
// and flattens them into a simplified comment list. Fetching and flattening
// are kept separate: MergeRequestComments performs the single API call,
// Flatten is the pure projection over its result.
package comments

import (
	"context"
	"errors"
	"fmt"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/mcpargs"
)

var ErrInvalidArgument = errors.New("invalid argument")

// ListOptions controls a single List call. PerPage and Page are passed to
// the API verbatim when non-zero; when zero they are omitted and the API's
// own defaults apply. Pagination across pages is the caller's business.
type ListOptions struct {
	PerPage         int
	Page            int
	IncludeResolved bool
}

// MergeRequestComments reads the flattened comments of one merge request.
type MergeRequestComments struct {
	client          *gitlab.Client
	projectID       mcpargs.ID
	mergeRequestIID int
}

// NewMergeRequestComments creates a reader for the given project and merge
// request. The project may be addressed by numeric ID or by full path.
func NewMergeRequestComments(client *gitlab.Client, projectID mcpargs.ID, mergeRequestIID int) (*MergeRequestComments, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", ErrInvalidArgument)
	}

	if projectID.IsZero() {
		return nil, fmt.Errorf("%w: project ID cannot be empty", ErrInvalidArgument)
	}

	if mergeRequestIID <= 0 {
		return nil, fmt.Errorf("%w: merge request IID must be positive", ErrInvalidArgument)
	}

	return &MergeRequestComments{
		client:          client,
		projectID:       projectID,
		mergeRequestIID: mergeRequestIID,
	}, nil
}

// List issues exactly one discussions-listing request and returns the
// flattened comments. A non-2xx response surfaces as an error carrying the
// HTTP status and response body; there are no retries.
func (c *MergeRequestComments) List(ctx context.Context, opts ListOptions) ([]Comment, error) {
	listOpts := &gitlab.ListMergeRequestDiscussionsOptions{
		PerPage: opts.PerPage,
		Page:    opts.Page,
	}

	discussions, _, err := c.client.Discussions.ListMergeRequestDiscussions(
		c.projectID.Value(), c.mergeRequestIID, listOpts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listing merge request discussions: %w", err)
	}

	return Flatten(discussions, opts.IncludeResolved), nil
}
