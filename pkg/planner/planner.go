// Package planner defines the domain entities the sync engine reconciles:
// courses, assignments, and announcements, keyed by their stable Canvas IDs.
package planner

import (
	"github.com/danielzdev/cougarplanner/pkg/dates"
)

// UnknownCourseName is the display name used when a course ID does not
// resolve to a stored course.
const UnknownCourseName = "Unknown Course"

// Course is an enrolled course. Name is the short display form derived from
// the raw Canvas title (see ExtractCourseCode).
type Course struct {
	ID   string
	Name string
}

// Assignment is a course deliverable. DueDate and DueTime are independent
// optionals. Difficulty is a user-assigned rating from 1 to 5; zero means
// unset. Difficulty is locally owned: the remote source never supplies it and
// a merge must carry the stored value forward.
type Assignment struct {
	ID         string
	CourseID   string
	Name       string
	DueDate    dates.Date
	DueTime    dates.Clock
	Difficulty int
}

// HasDifficulty reports whether the user has rated the assignment.
func (a Assignment) HasDifficulty() bool { return a.Difficulty != 0 }

// Announcement is a course-wide message. CourseID is a soft reference and may
// not resolve to a stored course.
type Announcement struct {
	ID       string
	CourseID string
	Title    string
	PostedAt dates.Stamp
	Body     string
}

// SortMode selects how assignments are ordered for presentation.
type SortMode string

// Assignment sort modes.
const (
	// SortByDateTime orders by due date, due time, course name, then
	// assignment name.
	SortByDateTime SortMode = "date_time"

	// SortByDifficulty orders by difficulty first, then falls through to the
	// date/time tiebreakers. Unrated assignments sort last either direction.
	SortByDifficulty SortMode = "difficulty"
)

// ParseSortMode maps a settings string to a SortMode, defaulting to date_time.
func ParseSortMode(s string) SortMode {
	if s == string(SortByDifficulty) {
		return SortByDifficulty
	}
	return SortByDateTime
}

// DifficultyOrder selects the direction for difficulty sorting.
type DifficultyOrder string

// Difficulty sort directions.
const (
	DifficultyAscending  DifficultyOrder = "ascending"
	DifficultyDescending DifficultyOrder = "descending"
)

// ParseDifficultyOrder maps a settings string to a DifficultyOrder,
// defaulting to ascending.
func ParseDifficultyOrder(s string) DifficultyOrder {
	if s == string(DifficultyDescending) {
		return DifficultyDescending
	}
	return DifficultyAscending
}
