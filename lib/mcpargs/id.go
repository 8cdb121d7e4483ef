package mcpargs

import (
	"fmt"
	"strconv"
)

// ID addresses a GitLab resource either by numeric ID or by path, mirroring
// the API's convention of accepting a URL-encoded full path in place of a
// numeric ID. It arrives on the wire as a string; numeric strings are
// stored as integers.
type ID struct { //nolint:recvcheck // Unmarshal requires a pointer receiver.
	String  string
	Integer int
}

var (
	_ Marshaler   = ID{}
	_ Unmarshaler = &ID{}
)

// Unmarshal sets the ID from a string argument. It implements Unmarshaler.
func (id *ID) Unmarshal(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: cannot unmarshal ID from %T", ErrUnmarshalArguments, v)
	}

	if n, err := strconv.Atoi(s); err == nil {
		id.Integer = n
		id.String = ""

		return nil
	}

	id.String = s
	id.Integer = 0

	return nil
}

// Marshal implements Marshaler.
func (ID) Marshal() MCPType {
	return TypeString
}

// Value returns the integer or string form of the ID, whichever is set.
// The result is suitable for the `any`-typed resource arguments of the
// GitLab client, which percent-encodes string IDs as path segments.
func (id ID) Value() any {
	if id.Integer != 0 {
		return id.Integer
	}

	return id.String
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return id.Integer == 0 && id.String == ""
}
