// Package listing implements the client-side filtering the project and message pages apply
// to store snapshots. Nothing here calls the content API.
package listing

import (
	"strings"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// AllCategories is the category filter value that matches every project.
const AllCategories = "all"

// Message filters.
const (
	MessagesAll    = "all"
	MessagesRead   = "read"
	MessagesUnread = "unread"
)

// FilterProjects keeps projects in category (or any, for "all" or "") whose title, description or
// one of whose technologies contains search, case-insensitively. Order is preserved.
func FilterProjects(projects []domain.Project, category, search string) []domain.Project {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if q != "" && !projectMatches(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func projectMatches(p domain.Project, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), q) {
			return true
		}
	}
	return false
}

// Categories returns "all" followed by each non-empty category in first-seen order.
func Categories(projects []domain.Project) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// FilterMessages applies the read-state filter and a case-insensitive search over sender name,
// email and body. An unknown filter behaves like "all".
func FilterMessages(messages []domain.Message, filter, search string) []domain.Message {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if filter == MessagesRead && !m.Read || filter == MessagesUnread && m.Read {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(m.Name), q) &&
			!strings.Contains(strings.ToLower(m.Email), q) &&
			!strings.Contains(strings.ToLower(m.Body), q) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FindProject returns the project with id, if present.
func FindProject(projects []domain.Project, id string) (domain.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}
