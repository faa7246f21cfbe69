package merge

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielzdev/cougarplanner/internal/store"
	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	pkgerrors "github.com/danielzdev/cougarplanner/pkg/errors"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

func newTestMerger(t *testing.T) (*Merger, *store.Courses, *store.Assignments, *store.Announcements) {
	t.Helper()
	dir := t.TempDir()
	courses := store.NewCourses(dir)
	assignments := store.NewAssignments(dir)
	announcements := store.NewAnnouncements(dir)
	return New(courses, assignments, announcements), courses, assignments, announcements
}

func TestMergeCoursesUnion(t *testing.T) {
	m, courses, _, _ := newTestMerger(t)

	require.NoError(t, courses.Upsert(planner.Course{ID: "1", Name: "CS 311"}))
	require.NoError(t, courses.Upsert(planner.Course{ID: "2", Name: "MATH 160"}))

	stats, err := m.Courses([]planner.Course{
		{ID: "2", Name: "MATH 160B"},
		{ID: "3", Name: "HIST 101"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Missing)

	all, err := courses.All()
	require.NoError(t, err)
	require.Len(t, all, 3)

	byID := map[string]string{}
	for _, c := range all {
		byID[c.ID] = c.Name
	}
	assert.Equal(t, "CS 311", byID["1"])
	assert.Equal(t, "MATH 160B", byID["2"])
	assert.Equal(t, "HIST 101", byID["3"])
}

func TestMergePreservesDifficulty(t *testing.T) {
	m, _, assignments, _ := newTestMerger(t)

	require.NoError(t, assignments.Upsert(planner.Assignment{
		ID:         "9",
		CourseID:   "1",
		Name:       "Essay",
		DueDate:    dates.ParseDate("2025-03-01"),
		DueTime:    dates.ParseClock("23:59"),
		Difficulty: 4,
	}))

	stats, err := m.Assignments([]planner.Assignment{{
		ID:       "9",
		CourseID: "1",
		Name:     "Essay (revised)",
		DueDate:  dates.ParseDate("2025-03-02"),
		DueTime:  dates.ParseClock("23:59"),
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Preserved)

	all, err := assignments.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, planner.Assignment{
		ID:         "9",
		CourseID:   "1",
		Name:       "Essay (revised)",
		DueDate:    dates.ParseDate("2025-03-02"),
		DueTime:    dates.ParseClock("23:59"),
		Difficulty: 4,
	}, all[0])
}

func TestMergeNewAssignmentStaysUnrated(t *testing.T) {
	m, _, assignments, _ := newTestMerger(t)

	stats, err := m.Assignments([]planner.Assignment{{
		ID:       "1",
		CourseID: "101",
		Name:     "Quiz",
		DueDate:  dates.NewDate(2026, time.March, 4),
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Preserved)

	all, err := assignments.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].HasDifficulty())
}

func TestMergeEmptyFetchIsNoOp(t *testing.T) {
	m, courses, assignments, announcements := newTestMerger(t)

	require.NoError(t, courses.Upsert(planner.Course{ID: "1", Name: "CS 311"}))
	require.NoError(t, assignments.Upsert(planner.Assignment{ID: "1", CourseID: "1", Name: "Quiz"}))
	require.NoError(t, announcements.Upsert(planner.Announcement{ID: "1", CourseID: "1", Title: "Hi"}))

	for _, run := range []func() (Stats, error){
		func() (Stats, error) { return m.Courses(nil) },
		func() (Stats, error) { return m.Assignments(nil) },
		func() (Stats, error) { return m.Announcements(nil) },
	} {
		stats, err := run()
		require.NoError(t, err)
		assert.Equal(t, Stats{}, stats)
	}

	gotCourses, err := courses.All()
	require.NoError(t, err)
	assert.Len(t, gotCourses, 1)
	gotAssignments, err := assignments.All()
	require.NoError(t, err)
	assert.Len(t, gotAssignments, 1)
	gotAnnouncements, err := announcements.All()
	require.NoError(t, err)
	assert.Len(t, gotAnnouncements, 1)
}

func TestMergeIdempotent(t *testing.T) {
	m, _, assignments, _ := newTestMerger(t)

	fetched := []planner.Assignment{
		{ID: "1", CourseID: "101", Name: "Quiz", DueDate: dates.NewDate(2026, time.March, 4)},
		{ID: "2", CourseID: "101", Name: "Lab", DueDate: dates.NewDate(2026, time.March, 6)},
	}

	_, err := m.Assignments(fetched)
	require.NoError(t, err)
	first, err := assignments.All()
	require.NoError(t, err)

	_, err = m.Assignments(fetched)
	require.NoError(t, err)
	second, err := assignments.All()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(dates.Date{}, dates.Clock{})); diff != "" {
		t.Errorf("store changed on repeated merge (-first +second):\n%s", diff)
	}
}

func TestMergeAll(t *testing.T) {
	m, courses, assignments, announcements := newTestMerger(t)

	out, err := m.All(
		[]planner.Course{{ID: "101", Name: "CS 311"}},
		[]planner.Assignment{{ID: "9", CourseID: "101", Name: "Essay"}},
		[]planner.Announcement{{ID: "7", CourseID: "101", Title: "Midterm moved"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Courses.Added)
	assert.Equal(t, 1, out.Assignments.Added)
	assert.Equal(t, 1, out.Announcements.Added)

	gotCourses, err := courses.All()
	require.NoError(t, err)
	assert.Len(t, gotCourses, 1)
	gotAssignments, err := assignments.All()
	require.NoError(t, err)
	assert.Len(t, gotAssignments, 1)
	gotAnnouncements, err := announcements.All()
	require.NoError(t, err)
	assert.Len(t, gotAnnouncements, 1)
}

func TestMergeSkipsRecordsWithoutID(t *testing.T) {
	m, courses, assignments, _ := newTestMerger(t)

	stats, err := m.Courses([]planner.Course{
		{ID: "", Name: "Orphan"},
		{ID: "1", Name: "CS 311"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Fetched)
	assert.Equal(t, 1, stats.Added)

	all, err := courses.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1", all[0].ID)

	stats, err = m.Assignments([]planner.Assignment{{CourseID: "1", Name: "Ghost quiz"}})
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	got, err := assignments.All()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMergeSurfacesStorageErrors(t *testing.T) {
	dir := t.TempDir()
	m := New(store.NewCourses(dir), store.NewAssignments(dir), store.NewAnnouncements(dir))

	// A directory squatting on the data file makes every read fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, constants.AssignmentsFile), 0o755))

	_, err := m.Assignments([]planner.Assignment{{ID: "9", CourseID: "1", Name: "Essay"}})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsStorage(err))

	_, err = m.All(
		[]planner.Course{{ID: "1", Name: "CS 311"}},
		[]planner.Assignment{{ID: "9", CourseID: "1", Name: "Essay"}},
		nil,
	)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsStorage(err))
}

func TestMergeAnnouncementsUnion(t *testing.T) {
	m, _, _, announcements := newTestMerger(t)

	require.NoError(t, announcements.Upsert(planner.Announcement{
		ID: "1", CourseID: "101", Title: "Old news",
	}))

	stats, err := m.Announcements([]planner.Announcement{{
		ID:       "2",
		CourseID: "101",
		Title:    "Midterm moved",
		PostedAt: dates.NewStamp(dates.NewDate(2026, time.March, 3), dates.NewClock(9, 15)),
		Body:     "See the syllabus.",
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Missing)

	all, err := announcements.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
