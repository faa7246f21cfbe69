package sync

import (
	"fmt"
	"strings"

	"github.com/danielzdev/cougarplanner/internal/merge"
	"github.com/danielzdev/cougarplanner/pkg/dates"
)

// Result represents the complete outcome of one sync pass.
type Result struct {
	// Week is the date range the pass covered.
	Week dates.WeekRange

	// Per-entity merge outcomes.
	Courses       merge.Stats
	Assignments   merge.Stats
	Announcements merge.Stats
}

// TotalFetched returns how many records the remote source supplied across all
// entity kinds.
func (r *Result) TotalFetched() int {
	return r.Courses.Fetched + r.Assignments.Fetched + r.Announcements.Fetched
}

// TotalChanges returns how many records were added or updated across all
// entity kinds.
func (r *Result) TotalChanges() int {
	return r.Courses.Added + r.Courses.Updated +
		r.Assignments.Added + r.Assignments.Updated +
		r.Announcements.Added + r.Announcements.Updated
}

// HasChanges reports whether the pass changed anything in the store.
func (r *Result) HasChanges() bool {
	return r.TotalChanges() > 0
}

// Summary returns a human-readable summary of the pass.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("Week %s: no changes", r.Week)
	}

	parts := []string{
		entitySummary("courses", r.Courses),
		entitySummary("assignments", r.Assignments),
		entitySummary("announcements", r.Announcements),
	}
	summary := fmt.Sprintf("Week %s: %s", r.Week, strings.Join(parts, "; "))
	if r.Assignments.Preserved > 0 {
		summary += fmt.Sprintf(" (%d difficulty ratings preserved)", r.Assignments.Preserved)
	}
	return summary
}

func entitySummary(name string, s merge.Stats) string {
	return fmt.Sprintf("%d %s fetched, %d added, %d updated", s.Fetched, name, s.Added, s.Updated)
}
