package store

import (
	"path/filepath"
	"sort"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// courseColumns is the fixed column order of courses.csv.
var courseColumns = []string{"course_id", "course_name"}

// Courses is the repository for persisted courses.
type Courses struct {
	path string
}

// NewCourses returns a course repository rooted at the given data directory.
func NewCourses(dir string) *Courses {
	return &Courses{path: filepath.Join(dir, constants.CoursesFile)}
}

// Path returns the backing file path.
func (r *Courses) Path() string { return r.path }

// All returns every persisted course. A missing store file yields an empty
// slice.
func (r *Courses) All() ([]planner.Course, error) {
	records, err := ReadAll(r.path)
	if err != nil {
		return nil, err
	}
	courses := make([]planner.Course, 0, len(records))
	for _, record := range records {
		courses = append(courses, decodeCourse(record))
	}
	return courses, nil
}

// Upsert replaces or inserts a single course by ID and rewrites the store.
func (r *Courses) Upsert(course planner.Course) error {
	return r.UpsertAll([]planner.Course{course})
}

// UpsertAll replaces or inserts each course by ID over the full persisted
// set, then rewrites the store in one atomic pass.
func (r *Courses) UpsertAll(courses []planner.Course) error {
	mu := pathLock(r.path)
	mu.Lock()
	defer mu.Unlock()

	existing, err := r.All()
	if err != nil {
		return err
	}

	byID := make(map[string]planner.Course, len(existing))
	for _, c := range existing {
		byID[c.ID] = c
	}
	for _, c := range courses {
		if c.ID == "" {
			continue
		}
		byID[c.ID] = c
	}

	return WriteAll(r.path, courseColumns, encodeCourses(byID))
}

func decodeCourse(record map[string]string) planner.Course {
	return planner.Course{
		ID:   record["course_id"],
		Name: record["course_name"],
	}
}

func encodeCourses(byID map[string]planner.Course) []map[string]string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		c := byID[id]
		records = append(records, map[string]string{
			"course_id":   c.ID,
			"course_name": c.Name,
		})
	}
	return records
}
