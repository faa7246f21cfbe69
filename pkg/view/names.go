// Package view assembles stored entities into display-ready rows: course IDs
// resolved to names and rows ordered by the user's sort settings.
package view

import (
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// CourseSource lists stored courses.
type CourseSource interface {
	All() ([]planner.Course, error)
}

// CourseNames resolves course IDs to display names. The course list is loaded
// lazily on first resolve and cached until Reload.
type CourseNames struct {
	source CourseSource
	names  map[string]string
}

// NewCourseNames creates a resolver over the given course source.
func NewCourseNames(source CourseSource) *CourseNames {
	return &CourseNames{source: source}
}

// Resolve returns the display name for a course ID, or UnknownCourseName when
// the ID does not resolve. A load failure resolves everything to unknown.
func (n *CourseNames) Resolve(courseID string) string {
	if n.names == nil {
		n.load()
	}
	if name, ok := n.names[courseID]; ok && name != "" {
		return name
	}
	return planner.UnknownCourseName
}

// Reload discards the cache so the next resolve re-reads the store.
func (n *CourseNames) Reload() {
	n.names = nil
}

func (n *CourseNames) load() {
	n.names = map[string]string{}
	courses, err := n.source.All()
	if err != nil {
		return
	}
	for _, c := range courses {
		n.names[c.ID] = c.Name
	}
}
