// Package idgen generates identifiers for civic issues.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultPrefix is prepended to every generated issue ID.
const DefaultPrefix = "issue"

// NewIssueID returns a new unique issue ID of the form "<prefix>-<uuid>".
// The suffix is a UUIDv7: time-ordered prefix, random tail.
func NewIssueID(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when crypto/rand does.
		id = uuid.New()
	}
	return fmt.Sprintf("%s-%s", prefix, id.String())
}

// ParseIssueID splits an ID into its prefix and UUID and reports whether the
// suffix is a well-formed UUID. IDs created by older tools may not be.
func ParseIssueID(id string) (prefix string, u uuid.UUID, ok bool) {
	i := strings.Index(id, "-")
	if i <= 0 {
		return "", uuid.Nil, false
	}
	u, err := uuid.Parse(id[i+1:])
	if err != nil {
		return id[:i], uuid.Nil, false
	}
	return id[:i], u, true
}
