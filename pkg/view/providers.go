package view

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// AssignmentView is an assignment joined with its resolved course name.
type AssignmentView struct {
	planner.Assignment
	CourseName string
}

// AnnouncementView is an announcement joined with its resolved course name.
type AnnouncementView struct {
	planner.Announcement
	CourseName string
}

// AssignmentSource lists stored assignments by range or day.
type AssignmentSource interface {
	Range(week dates.WeekRange) ([]planner.Assignment, error)
	Day(day dates.Date) ([]planner.Assignment, error)
}

// AnnouncementSource lists stored announcements by range or day.
type AnnouncementSource interface {
	Range(week dates.WeekRange) ([]planner.Announcement, error)
	Day(day dates.Date) ([]planner.Announcement, error)
}

// Assignments provides sorted assignment rows for display.
type Assignments struct {
	source   AssignmentSource
	names    *CourseNames
	collator *collate.Collator
}

// NewAssignments creates an assignment provider.
func NewAssignments(source AssignmentSource, names *CourseNames) *Assignments {
	return &Assignments{
		source:   source,
		names:    names,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Week returns the week's assignments sorted by the given mode.
func (p *Assignments) Week(week dates.WeekRange, mode planner.SortMode, order planner.DifficultyOrder) ([]AssignmentView, error) {
	assignments, err := p.source.Range(week)
	if err != nil {
		return nil, err
	}
	return p.sorted(assignments, mode, order), nil
}

// Day returns one day's assignments sorted by the given mode.
func (p *Assignments) Day(day dates.Date, mode planner.SortMode, order planner.DifficultyOrder) ([]AssignmentView, error) {
	assignments, err := p.source.Day(day)
	if err != nil {
		return nil, err
	}
	return p.sorted(assignments, mode, order), nil
}

func (p *Assignments) sorted(assignments []planner.Assignment, mode planner.SortMode, order planner.DifficultyOrder) []AssignmentView {
	views := make([]AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, AssignmentView{
			Assignment: a,
			CourseName: p.names.Resolve(a.CourseID),
		})
	}

	slices.SortStableFunc(views, func(a, b AssignmentView) int {
		if mode == planner.SortByDifficulty {
			if c := compareDifficulty(a.Assignment, b.Assignment, order); c != 0 {
				return c
			}
		}
		return p.compareSchedule(a, b)
	})
	return views
}

// compareSchedule is the date_time ordering: due date, due time, course name,
// then assignment name, with absent values last.
func (p *Assignments) compareSchedule(a, b AssignmentView) int {
	if c := a.DueDate.Compare(b.DueDate); c != 0 {
		return c
	}
	if c := a.DueTime.Compare(b.DueTime); c != 0 {
		return c
	}
	if c := p.collator.CompareString(a.CourseName, b.CourseName); c != 0 {
		return c
	}
	return p.collator.CompareString(a.Name, b.Name)
}

// compareDifficulty orders by rating in the requested direction. Unrated
// assignments sort last regardless of direction.
func compareDifficulty(a, b planner.Assignment, order planner.DifficultyOrder) int {
	switch {
	case !a.HasDifficulty() && !b.HasDifficulty():
		return 0
	case !a.HasDifficulty():
		return 1
	case !b.HasDifficulty():
		return -1
	}
	c := a.Difficulty - b.Difficulty
	if order == planner.DifficultyDescending {
		c = -c
	}
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

// Announcements provides sorted announcement rows for display.
type Announcements struct {
	source   AnnouncementSource
	names    *CourseNames
	collator *collate.Collator
}

// NewAnnouncements creates an announcement provider.
func NewAnnouncements(source AnnouncementSource, names *CourseNames) *Announcements {
	return &Announcements{
		source:   source,
		names:    names,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Week returns the week's announcements sorted by posted time, then course
// name, then title.
func (p *Announcements) Week(week dates.WeekRange) ([]AnnouncementView, error) {
	announcements, err := p.source.Range(week)
	if err != nil {
		return nil, err
	}
	return p.sorted(announcements), nil
}

// Day returns one day's announcements in the same order.
func (p *Announcements) Day(day dates.Date) ([]AnnouncementView, error) {
	announcements, err := p.source.Day(day)
	if err != nil {
		return nil, err
	}
	return p.sorted(announcements), nil
}

func (p *Announcements) sorted(announcements []planner.Announcement) []AnnouncementView {
	views := make([]AnnouncementView, 0, len(announcements))
	for _, a := range announcements {
		views = append(views, AnnouncementView{
			Announcement: a,
			CourseName:   p.names.Resolve(a.CourseID),
		})
	}

	slices.SortStableFunc(views, func(a, b AnnouncementView) int {
		if c := a.PostedAt.Compare(b.PostedAt); c != 0 {
			return c
		}
		if c := p.collator.CompareString(a.CourseName, b.CourseName); c != 0 {
			return c
		}
		return p.collator.CompareString(a.Title, b.Title)
	})
	return views
}
