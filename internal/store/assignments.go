package store

import (
	"path/filepath"
	"sort"
	"strconv"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// assignmentColumns is the fixed column order of assignments.csv.
var assignmentColumns = []string{
	"assignment_id", "course_id", "assignment_name", "due_date", "due_time", "difficulty",
}

// Assignments is the repository for persisted assignments.
type Assignments struct {
	path string
}

// NewAssignments returns an assignment repository rooted at the given data
// directory.
func NewAssignments(dir string) *Assignments {
	return &Assignments{path: filepath.Join(dir, constants.AssignmentsFile)}
}

// Path returns the backing file path.
func (r *Assignments) Path() string { return r.path }

// All returns every persisted assignment. A missing store file yields an
// empty slice.
func (r *Assignments) All() ([]planner.Assignment, error) {
	records, err := ReadAll(r.path)
	if err != nil {
		return nil, err
	}
	assignments := make([]planner.Assignment, 0, len(records))
	for _, record := range records {
		assignments = append(assignments, decodeAssignment(record))
	}
	return assignments, nil
}

// Range returns assignments whose due date falls inside the half-open week
// range. Assignments without a due date are excluded.
func (r *Assignments) Range(week dates.WeekRange) ([]planner.Assignment, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var out []planner.Assignment
	for _, a := range all {
		if week.Contains(a.DueDate) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Day returns assignments due on exactly the given date.
func (r *Assignments) Day(day dates.Date) ([]planner.Assignment, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var out []planner.Assignment
	for _, a := range all {
		if !a.DueDate.IsZero() && a.DueDate.Equal(day) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Upsert replaces or inserts a single assignment by ID and rewrites the store.
func (r *Assignments) Upsert(assignment planner.Assignment) error {
	return r.UpsertAll([]planner.Assignment{assignment})
}

// UpsertAll replaces or inserts each assignment by ID over the full persisted
// set, then rewrites the store in one atomic pass. The caller owns any field
// preservation; the incoming record wins verbatim.
func (r *Assignments) UpsertAll(assignments []planner.Assignment) error {
	mu := pathLock(r.path)
	mu.Lock()
	defer mu.Unlock()

	existing, err := r.All()
	if err != nil {
		return err
	}

	byID := make(map[string]planner.Assignment, len(existing))
	for _, a := range existing {
		byID[a.ID] = a
	}
	for _, a := range assignments {
		if a.ID == "" {
			continue
		}
		byID[a.ID] = a
	}

	return WriteAll(r.path, assignmentColumns, encodeAssignments(byID))
}

func decodeAssignment(record map[string]string) planner.Assignment {
	a := planner.Assignment{
		ID:       record["assignment_id"],
		CourseID: record["course_id"],
		Name:     record["assignment_name"],
		DueDate:  dates.ParseDate(record["due_date"]),
		DueTime:  dates.ParseClock(record["due_time"]),
	}
	// A missing or non-numeric difficulty is unset, not an error.
	if n, err := strconv.Atoi(record["difficulty"]); err == nil {
		a.Difficulty = n
	}
	return a
}

func encodeAssignments(byID map[string]planner.Assignment) []map[string]string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		difficulty := ""
		if a.HasDifficulty() {
			difficulty = strconv.Itoa(a.Difficulty)
		}
		records = append(records, map[string]string{
			"assignment_id":   a.ID,
			"course_id":       a.CourseID,
			"assignment_name": a.Name,
			"due_date":        a.DueDate.String(),
			"due_time":        a.DueTime.String(),
			"difficulty":      difficulty,
		})
	}
	return records
}
