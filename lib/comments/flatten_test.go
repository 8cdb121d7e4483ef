package comments_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"gitlab.com/reviewkit/gitlab-comments-mcp/lib/comments"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFlatten(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		discussions     []*gitlab.Discussion
		includeResolved bool
		want            []comments.Comment
	}{
		{
			name: "diff-anchored unresolved note",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{
						Body:       "Fix this",
						Resolvable: true,
						Position:   &gitlab.NotePosition{NewPath: "a.ts", NewLine: 5},
						Author:     gitlab.NoteAuthor{Username: "joe"},
						CreatedAt:  &createdAt,
					},
				}},
			},
			want: []comments.Comment{
				{
					File:      ptr("a.ts"),
					Line:      ptr(5),
					Text:      "Fix this",
					Author:    ptr("joe"),
					CreatedAt: ptr("2024-01-01T00:00:00Z"),
				},
			},
		},
		{
			name: "resolved note is dropped by default",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "Fix this", Resolvable: true, Resolved: true},
				}},
			},
			want: nil,
		},
		{
			name: "resolved note is kept when requested",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "Fix this", Resolvable: true, Resolved: true},
				}},
			},
			includeResolved: true,
			want: []comments.Comment{
				{Text: "Fix this", Resolved: true},
			},
		},
		{
			name: "non-resolvable note is always kept",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "General remark", Resolvable: false, Resolved: true},
				}},
			},
			want: []comments.Comment{
				{Text: "General remark", Resolved: true},
			},
		},
		{
			name: "resolvable but unresolved note is always kept",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "Still open", Resolvable: true, Resolved: false},
				}},
			},
			want: []comments.Comment{
				{Text: "Still open"},
			},
		},
		{
			name: "system notes are excluded regardless of filters",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "changed the description", System: true},
					{Body: "added 1 commit", System: true, Resolvable: true},
				}},
			},
			includeResolved: true,
			want:            nil,
		},
		{
			name: "note without position has null file and line",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "Thread-level comment", Author: gitlab.NoteAuthor{Username: "joe"}},
				}},
			},
			want: []comments.Comment{
				{Text: "Thread-level comment", Author: ptr("joe")},
			},
		},
		{
			name: "new side wins over old side",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{
						Body:     "Renamed and moved",
						Position: &gitlab.NotePosition{NewPath: "new.go", OldPath: "old.go", NewLine: 10, OldLine: 8},
					},
				}},
			},
			want: []comments.Comment{
				{File: ptr("new.go"), Line: ptr(10), Text: "Renamed and moved"},
			},
		},
		{
			name: "path and line fall back independently",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{
						Body:     "Deleted line",
						Position: &gitlab.NotePosition{NewPath: "file.go", OldLine: 12},
					},
				}},
			},
			want: []comments.Comment{
				{File: ptr("file.go"), Line: ptr(12), Text: "Deleted line"},
			},
		},
		{
			name: "author falls back to display name",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "By name only", Author: gitlab.NoteAuthor{Name: "Joe Smith"}},
				}},
			},
			want: []comments.Comment{
				{Text: "By name only", Author: ptr("Joe Smith")},
			},
		},
		{
			name: "missing author and timestamp are null",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "Anonymous"},
				}},
			},
			want: []comments.Comment{
				{Text: "Anonymous"},
			},
		},
		{
			name: "order follows discussions and thread order",
			discussions: []*gitlab.Discussion{
				{Notes: []*gitlab.Note{
					{Body: "first"},
					{Body: "second"},
				}},
				{Notes: []*gitlab.Note{
					{Body: "third"},
				}},
			},
			want: []comments.Comment{
				{Text: "first"},
				{Text: "second"},
				{Text: "third"},
			},
		},
		{
			name: "empty and nil entries are skipped",
			discussions: []*gitlab.Discussion{
				nil,
				{},
				{Notes: []*gitlab.Note{nil, {Body: "kept"}}},
			},
			want: []comments.Comment{
				{Text: "kept"},
			},
		},
		{
			name:        "no discussions",
			discussions: nil,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := comments.Flatten(tt.discussions, tt.includeResolved)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Flatten() mismatch (-want/+got):\n%s", diff)
			}
		})
	}
}

func TestFlattenNeverEmitsMoreThanInput(t *testing.T) {
	discussions := []*gitlab.Discussion{
		{Notes: []*gitlab.Note{
			{Body: "a"},
			{Body: "b", System: true},
			{Body: "c", Resolvable: true, Resolved: true},
		}},
	}

	for _, includeResolved := range []bool{false, true} {
		got := comments.Flatten(discussions, includeResolved)
		if len(got) > 3 {
			t.Errorf("Flatten(includeResolved=%t) emitted %d comments for 3 notes", includeResolved, len(got))
		}
	}
}
