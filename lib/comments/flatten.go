package comments

import (
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// Comment is the flattened view of a single discussion note. Pointer fields
// serialize as JSON null when the underlying note carries no value.
type Comment struct {
	File      *string `json:"file"`
	Line      *int    `json:"line"`
	Text      string  `json:"text"`
	Author    *string `json:"author"`
	CreatedAt *string `json:"created_at"`
	Resolved  bool    `json:"resolved"`
}

// Flatten projects discussion threads into a flat comment list. It is a pure
// function: no I/O, never fails. System notes are always dropped; resolved
// resolvable notes are dropped unless includeResolved is set. Output order
// follows input order, discussions first, notes in thread order within each.
func Flatten(discussions []*gitlab.Discussion, includeResolved bool) []Comment {
	var result []Comment

	for _, discussion := range discussions {
		if discussion == nil {
			continue
		}

		for _, note := range discussion.Notes {
			if note == nil || note.System {
				continue
			}

			if !includeResolved && note.Resolvable && note.Resolved {
				continue
			}

			result = append(result, flattenNote(note))
		}
	}

	return result
}

// flattenNote maps one note to its comment. For diff-anchored notes the
// new side of the diff wins over the old side, for path and line
// independently. For authors the username wins over the display name.
func flattenNote(note *gitlab.Note) Comment {
	comment := Comment{
		Text:     note.Body,
		Author:   firstString(note.Author.Username, note.Author.Name),
		Resolved: note.Resolved,
	}

	if pos := note.Position; pos != nil {
		comment.File = firstString(pos.NewPath, pos.OldPath)
		comment.Line = firstLine(pos.NewLine, pos.OldLine)
	}

	if note.CreatedAt != nil {
		createdAt := note.CreatedAt.Format(time.RFC3339)
		comment.CreatedAt = &createdAt
	}

	return comment
}

func firstString(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}

	return nil
}

func firstLine(lines ...int) *int {
	for _, l := range lines {
		if l != 0 {
			return &l
		}
	}

	return nil
}
