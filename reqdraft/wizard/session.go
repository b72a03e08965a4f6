package wizard

import (
	"strings"

	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
)

// SessionContext carries the authenticated user's profile fields the wizard
// derives its read-only header fields from. The wizard never edits these; a
// session missing its department cannot open a draft at all.
type SessionContext struct {
	Department string
	FirstName  string
	LastName   string
}

// Valid reports whether the session can seed a draft.
func (s SessionContext) Valid() bool {
	return strings.TrimSpace(s.Department) != ""
}

// RequesterName joins the profile name fields, tolerating either being
// empty.
func (s SessionContext) RequesterName() string {
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}

// DepartmentID finds the catalog entry matching the session's department by
// exact id, exact label, or case-insensitive label containment, in that
// order. It returns empty when no entry matches; callers then fall back to
// sending the department as free text.
func DepartmentID(entries []catalog.Entry, department string) string {
	department = strings.TrimSpace(department)
	if department == "" {
		return ""
	}

	for _, entry := range entries {
		if entry.ID == department || entry.Label == department {
			return entry.ID
		}
	}

	lowered := strings.ToLower(department)

	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Label), lowered) {
			return entry.ID
		}
	}

	return ""
}
