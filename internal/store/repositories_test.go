package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

func TestCoursesUpsertAllRoundTrip(t *testing.T) {
	repo := NewCourses(t.TempDir())

	require.NoError(t, repo.UpsertAll([]planner.Course{
		{ID: "2", Name: "MATH 210"},
		{ID: "1", Name: "CS 441"},
	}))

	courses, err := repo.All()
	require.NoError(t, err)
	require.Len(t, courses, 2)
	// Rows are written in ID order, so reads are deterministic.
	assert.Equal(t, planner.Course{ID: "1", Name: "CS 441"}, courses[0])
	assert.Equal(t, planner.Course{ID: "2", Name: "MATH 210"}, courses[1])
}

func TestCoursesUpsertReplacesByID(t *testing.T) {
	repo := NewCourses(t.TempDir())

	require.NoError(t, repo.Upsert(planner.Course{ID: "1", Name: "CS 441"}))
	require.NoError(t, repo.Upsert(planner.Course{ID: "1", Name: "CS 441L"}))

	courses, err := repo.All()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS 441L", courses[0].Name)
}

func TestAssignmentsDifficultyColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assignments.csv")
	content := "assignment_id,course_id,assignment_name,due_date,due_time,difficulty\n" +
		"1,10,Essay,2025-03-01,23:59,4\n" +
		"2,10,Quiz,2025-03-02,,\n" +
		"3,10,Lab,2025-03-03,10:00,not-a-number\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewAssignments(dir)
	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, 4, all[0].Difficulty)
	assert.False(t, all[1].HasDifficulty())
	assert.False(t, all[2].HasDifficulty(), "non-numeric difficulty reads as unset")
}

func TestAssignmentsRangeHalfOpen(t *testing.T) {
	repo := NewAssignments(t.TempDir())
	require.NoError(t, repo.UpsertAll([]planner.Assignment{
		{ID: "1", CourseID: "10", Name: "on start", DueDate: dates.ParseDate("2025-03-03")},
		{ID: "2", CourseID: "10", Name: "mid week", DueDate: dates.ParseDate("2025-03-06")},
		{ID: "3", CourseID: "10", Name: "on end", DueDate: dates.ParseDate("2025-03-10")},
		{ID: "4", CourseID: "10", Name: "no due date"},
	}))

	week := dates.WeekRange{Start: dates.ParseDate("2025-03-03"), End: dates.ParseDate("2025-03-10")}
	inRange, err := repo.Range(week)
	require.NoError(t, err)

	ids := make([]string, 0, len(inRange))
	for _, a := range inRange {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "2"}, ids)
}

func TestAssignmentsDay(t *testing.T) {
	repo := NewAssignments(t.TempDir())
	require.NoError(t, repo.UpsertAll([]planner.Assignment{
		{ID: "1", CourseID: "10", Name: "a", DueDate: dates.ParseDate("2025-03-03")},
		{ID: "2", CourseID: "10", Name: "b", DueDate: dates.ParseDate("2025-03-04")},
	}))

	day, err := repo.Day(dates.ParseDate("2025-03-04"))
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "2", day[0].ID)
}

func TestAssignmentFieldsSurviveRewrite(t *testing.T) {
	repo := NewAssignments(t.TempDir())
	original := planner.Assignment{
		ID:         "9",
		CourseID:   "1",
		Name:       "Essay, part 1",
		DueDate:    dates.ParseDate("2025-03-01"),
		DueTime:    dates.ParseClock("23:59"),
		Difficulty: 4,
	}
	require.NoError(t, repo.Upsert(original))
	// A second write forces a full read-modify-rewrite cycle.
	require.NoError(t, repo.Upsert(planner.Assignment{ID: "10", CourseID: "1", Name: "Quiz"}))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, original, all[0])
}

func TestAnnouncementsRangeAndBody(t *testing.T) {
	repo := NewAnnouncements(t.TempDir())
	require.NoError(t, repo.UpsertAll([]planner.Announcement{
		{ID: "1", CourseID: "10", Title: "Welcome", PostedAt: dates.ParseStamp("2025-03-03 09:00"), Body: "line one\nline two"},
		{ID: "2", CourseID: "10", Title: "Later", PostedAt: dates.ParseStamp("2025-03-12 09:00")},
	}))

	week := dates.WeekRange{Start: dates.ParseDate("2025-03-03"), End: dates.ParseDate("2025-03-10")}
	inRange, err := repo.Range(week)
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "Welcome", inRange[0].Title)
	assert.Equal(t, "line one\nline two", inRange[0].Body)
}

func TestUpsertSkipsEmptyIDs(t *testing.T) {
	repo := NewCourses(t.TempDir())
	require.NoError(t, repo.UpsertAll([]planner.Course{
		{ID: "", Name: "ghost"},
		{ID: "1", Name: "CS 441"},
	}))

	courses, err := repo.All()
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "1", courses[0].ID)
}
