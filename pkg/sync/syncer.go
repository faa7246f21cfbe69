// Package sync orchestrates a full reconciliation pass: fetch the week's data
// from Canvas, then merge it into the local CSV store.
//
// The pass is resilient end to end: remote failures shrink the fetched sets
// (down to empty, which merges as a no-op) while storage failures abort the
// pass with an error.
package sync

import (
	"context"

	"github.com/danielzdev/cougarplanner/internal/merge"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/errors"
	"github.com/danielzdev/cougarplanner/pkg/logging"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// Fetcher produces the week's entities from the remote source. Fetch failures
// surface as empty or shrunken slices, never as errors.
type Fetcher interface {
	Courses(ctx context.Context) []planner.Course
	Assignments(ctx context.Context, courses []planner.Course, week dates.WeekRange) []planner.Assignment
	Announcements(ctx context.Context, courses []planner.Course, week dates.WeekRange) []planner.Announcement
}

// Reconciler merges fetched entities into the local store.
type Reconciler interface {
	All(courses []planner.Course, assignments []planner.Assignment, announcements []planner.Announcement) (merge.Outcome, error)
}

// Syncer runs reconciliation passes.
type Syncer struct {
	fetcher    Fetcher
	reconciler Reconciler
}

// New creates a syncer from a fetcher and a reconciler.
func New(fetcher Fetcher, reconciler Reconciler) *Syncer {
	return &Syncer{fetcher: fetcher, reconciler: reconciler}
}

// Sync runs one pass for the given week: courses first, then assignments and
// announcements scoped to the courses just fetched. A storage failure aborts
// the pass; remote failures only shrink it.
func (s *Syncer) Sync(ctx context.Context, week dates.WeekRange) (*Result, error) {
	ctx = logging.WithOperation(ctx, "sync")
	log := logging.FromContext(ctx)
	log.Info().Str("week", week.String()).Msg("Starting sync")

	courses := s.fetcher.Courses(ctx)
	assignments := s.fetcher.Assignments(ctx, courses, week)
	announcements := s.fetcher.Announcements(ctx, courses, week)

	outcome, err := s.reconciler.All(courses, assignments, announcements)
	if err != nil {
		return nil, errors.WrapSync("merge", err)
	}

	result := &Result{
		Week:          week,
		Courses:       outcome.Courses,
		Assignments:   outcome.Assignments,
		Announcements: outcome.Announcements,
	}

	log.Info().
		Int("fetched", result.TotalFetched()).
		Int("changes", result.TotalChanges()).
		Int("preserved", result.Assignments.Preserved).
		Msg("Sync complete")
	return result, nil
}
