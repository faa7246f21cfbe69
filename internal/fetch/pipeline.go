// Package fetch converts raw Canvas payloads into domain entities filtered to
// a requested week. Per-course failures are isolated: one bad course never
// aborts the rest of the pipeline.
package fetch

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielzdev/cougarplanner/internal/canvas"
	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/errors"
	"github.com/danielzdev/cougarplanner/pkg/logging"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// Pipeline fetches and transforms remote data for one Canvas account.
type Pipeline struct {
	client *canvas.Client
	loc    *time.Location
	limit  int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLocation sets the zone absolute instants are converted into.
// Defaults to the system's local zone.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) { p.loc = loc }
}

// WithFetchLimit bounds the per-course assignment fan-out.
func WithFetchLimit(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.limit = n
		}
	}
}

// New creates a pipeline over the given client.
func New(client *canvas.Client, opts ...Option) *Pipeline {
	p := &Pipeline{
		client: client,
		loc:    time.Local,
		limit:  constants.MaxConcurrentCourseFetches,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type courseDTO struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type assignmentDTO struct {
	ID       *int64 `json:"id"`
	CourseID *int64 `json:"course_id"`
	Name     string `json:"name"`
	DueAt    string `json:"due_at"`
}

type announcementDTO struct {
	ID       *int64 `json:"id"`
	CourseID *int64 `json:"course_id"`
	Title    string `json:"title"`
	PostedAt string `json:"posted_at"`
	Message  string `json:"message"`
	Body     string `json:"body"`
}

// Courses fetches and parses the active course list. Entries without an ID
// are skipped. Any fetch or parse failure yields an empty list, never partial
// garbage.
func (p *Pipeline) Courses(ctx context.Context) []planner.Course {
	payload, ok := p.client.CoursesRaw(ctx)
	if !ok {
		return nil
	}

	var dtos []courseDTO
	if err := json.Unmarshal(payload, &dtos); err != nil {
		logging.FromContext(ctx).Warn().
			Err(errors.WrapParse("json", "courses", err)).
			Msg("Failed to parse course payload")
		return nil
	}

	courses := make([]planner.Course, 0, len(dtos))
	for _, dto := range dtos {
		if dto.ID == nil {
			continue
		}
		courses = append(courses, planner.Course{
			ID:   strconv.FormatInt(*dto.ID, 10),
			Name: planner.ExtractCourseCode(strings.TrimSpace(dto.Name)),
		})
	}
	return courses
}

// Assignments fetches each course's assignments independently with bounded
// parallelism and keeps those due inside the half-open week range. A course
// whose fetch or parse fails is skipped. Fetched assignments always carry an
// unset difficulty.
func (p *Pipeline) Assignments(ctx context.Context, courses []planner.Course, week dates.WeekRange) []planner.Assignment {
	if len(courses) == 0 {
		return nil
	}

	var (
		mu  sync.Mutex
		out []planner.Assignment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)
	for _, course := range courses {
		course := course
		g.Go(func() error {
			fetched := p.courseAssignments(ctx, course, week)
			if len(fetched) == 0 {
				return nil
			}
			mu.Lock()
			out = append(out, fetched...)
			mu.Unlock()
			return nil
		})
	}
	// Workers never return an error; failures are skips.
	_ = g.Wait()

	return out
}

// courseAssignments handles a single course's fetch, parse and filter.
func (p *Pipeline) courseAssignments(ctx context.Context, course planner.Course, week dates.WeekRange) []planner.Assignment {
	ctx = logging.WithCourse(ctx, course.ID)
	log := logging.FromContext(ctx)

	payload, ok := p.client.AssignmentsRaw(ctx, course.ID)
	if !ok {
		log.Debug().Msg("Skipping course: fetch failed")
		return nil
	}

	var dtos []assignmentDTO
	if err := json.Unmarshal(payload, &dtos); err != nil {
		log.Warn().
			Err(errors.WrapParse("json", "assignments", err)).
			Msg("Skipping course: bad assignment payload")
		return nil
	}

	var out []planner.Assignment
	for _, dto := range dtos {
		if dto.ID == nil || dto.CourseID == nil {
			continue
		}
		dueDate, dueTime := dates.Extract(dto.DueAt, p.loc)
		if !week.Contains(dueDate) {
			continue
		}
		out = append(out, planner.Assignment{
			ID:       strconv.FormatInt(*dto.ID, 10),
			CourseID: strconv.FormatInt(*dto.CourseID, 10),
			Name:     strings.TrimSpace(dto.Name),
			DueDate:  dueDate,
			DueTime:  dueTime,
			// Difficulty stays unset: it is locally owned.
		})
	}
	return out
}

// Announcements fetches recent announcements across the given courses in a
// single request and keeps those posted inside the half-open week range.
func (p *Pipeline) Announcements(ctx context.Context, courses []planner.Course, week dates.WeekRange) []planner.Announcement {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	payload, ok := p.client.AnnouncementsRaw(ctx, ids)
	if !ok {
		return nil
	}

	var dtos []announcementDTO
	if err := json.Unmarshal(payload, &dtos); err != nil {
		logging.FromContext(ctx).Warn().
			Err(errors.WrapParse("json", "announcements", err)).
			Msg("Failed to parse announcement payload")
		return nil
	}

	var out []planner.Announcement
	for _, dto := range dtos {
		if dto.ID == nil || dto.CourseID == nil {
			continue
		}
		postedDate, postedTime := dates.Extract(dto.PostedAt, p.loc)
		if !week.Contains(postedDate) {
			continue
		}
		out = append(out, planner.Announcement{
			ID:       strconv.FormatInt(*dto.ID, 10),
			CourseID: strconv.FormatInt(*dto.CourseID, 10),
			Title:    strings.TrimSpace(dto.Title),
			PostedAt: dates.NewStamp(postedDate, postedTime),
			Body:     announcementBody(dto),
		})
	}
	return out
}

// announcementBody prefers the full message text over the short body form.
func announcementBody(dto announcementDTO) string {
	if msg := strings.TrimSpace(dto.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(dto.Body)
}
