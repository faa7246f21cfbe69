// Package merge reconciles freshly fetched entities with the local store.
//
// Merging is an accumulating union: fetched records are inserted or updated
// by ID, records absent from a fetch are kept, and nothing is ever deleted.
// For assignments the locally owned difficulty rating is carried forward onto
// the incoming record whenever the fetch does not supply one.
package merge

import (
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// CourseStore is the course persistence surface the merger needs.
type CourseStore interface {
	All() ([]planner.Course, error)
	UpsertAll([]planner.Course) error
}

// AssignmentStore is the assignment persistence surface the merger needs.
type AssignmentStore interface {
	All() ([]planner.Assignment, error)
	UpsertAll([]planner.Assignment) error
}

// AnnouncementStore is the announcement persistence surface the merger needs.
type AnnouncementStore interface {
	All() ([]planner.Announcement, error)
	UpsertAll([]planner.Announcement) error
}

// Stats describes the outcome of merging one entity kind.
type Stats struct {
	// Fetched is how many records the remote source supplied.
	Fetched int

	// Added is how many fetched records were new to the store.
	Added int

	// Updated is how many fetched records replaced an existing record.
	Updated int

	// Preserved is how many assignments kept a stored difficulty rating
	// through the update. Zero for other kinds.
	Preserved int

	// Missing is how many stored records the fetch did not mention. They
	// remain in the store; the count is informational.
	Missing int
}

// Outcome groups the per-kind stats of a full merge pass.
type Outcome struct {
	Courses       Stats
	Assignments   Stats
	Announcements Stats
}

// Merger reconciles fetched entities into the three stores.
type Merger struct {
	courses       CourseStore
	assignments   AssignmentStore
	announcements AnnouncementStore
}

// New creates a merger over the given stores.
func New(courses CourseStore, assignments AssignmentStore, announcements AnnouncementStore) *Merger {
	return &Merger{
		courses:       courses,
		assignments:   assignments,
		announcements: announcements,
	}
}

// All merges all three entity kinds in one pass, courses first. The first
// storage failure aborts the pass.
func (m *Merger) All(courses []planner.Course, assignments []planner.Assignment, announcements []planner.Announcement) (Outcome, error) {
	var (
		out Outcome
		err error
	)
	if out.Courses, err = m.Courses(courses); err != nil {
		return Outcome{}, err
	}
	if out.Assignments, err = m.Assignments(assignments); err != nil {
		return Outcome{}, err
	}
	if out.Announcements, err = m.Announcements(announcements); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

// Courses merges fetched courses into the store. Records without an ID are
// discarded before counting. An empty fetch is a no-op: the store is left
// untouched.
func (m *Merger) Courses(fetched []planner.Course) (Stats, error) {
	valid := make([]planner.Course, 0, len(fetched))
	for _, c := range fetched {
		if c.ID != "" {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return Stats{}, nil
	}

	stored, err := m.courses.All()
	if err != nil {
		return Stats{}, err
	}

	existing := make(map[string]bool, len(stored))
	for _, c := range stored {
		existing[c.ID] = true
	}

	stats := Stats{Fetched: len(valid)}
	seen := make(map[string]bool, len(valid))
	for _, c := range valid {
		seen[c.ID] = true
		if existing[c.ID] {
			stats.Updated++
		} else {
			stats.Added++
		}
	}
	for _, c := range stored {
		if !seen[c.ID] {
			stats.Missing++
		}
	}

	if err := m.courses.UpsertAll(valid); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Assignments merges fetched assignments into the store. A stored difficulty
// rating survives the update whenever the incoming record has none. Records
// without an ID are discarded before counting. An empty fetch is a no-op.
func (m *Merger) Assignments(fetched []planner.Assignment) (Stats, error) {
	valid := make([]planner.Assignment, 0, len(fetched))
	for _, a := range fetched {
		if a.ID != "" {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return Stats{}, nil
	}

	stored, err := m.assignments.All()
	if err != nil {
		return Stats{}, err
	}

	existing := make(map[string]planner.Assignment, len(stored))
	for _, a := range stored {
		existing[a.ID] = a
	}

	stats := Stats{Fetched: len(valid)}
	merged := make([]planner.Assignment, 0, len(valid))
	seen := make(map[string]bool, len(valid))
	for _, a := range valid {
		seen[a.ID] = true
		prev, ok := existing[a.ID]
		if ok {
			stats.Updated++
			if prev.HasDifficulty() && !a.HasDifficulty() {
				a.Difficulty = prev.Difficulty
				stats.Preserved++
			}
		} else {
			stats.Added++
		}
		merged = append(merged, a)
	}
	for _, a := range stored {
		if !seen[a.ID] {
			stats.Missing++
		}
	}

	if err := m.assignments.UpsertAll(merged); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Announcements merges fetched announcements into the store. Records without
// an ID are discarded before counting. An empty fetch is a no-op.
func (m *Merger) Announcements(fetched []planner.Announcement) (Stats, error) {
	valid := make([]planner.Announcement, 0, len(fetched))
	for _, a := range fetched {
		if a.ID != "" {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		return Stats{}, nil
	}

	stored, err := m.announcements.All()
	if err != nil {
		return Stats{}, err
	}

	existing := make(map[string]bool, len(stored))
	for _, a := range stored {
		existing[a.ID] = true
	}

	stats := Stats{Fetched: len(valid)}
	seen := make(map[string]bool, len(valid))
	for _, a := range valid {
		seen[a.ID] = true
		if existing[a.ID] {
			stats.Updated++
		} else {
			stats.Added++
		}
	}
	for _, a := range stored {
		if !seen[a.ID] {
			stats.Missing++
		}
	}

	if err := m.announcements.UpsertAll(valid); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
