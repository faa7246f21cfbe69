package store

import (
	"path/filepath"
	"sort"

	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// announcementColumns is the fixed column order of announcements.csv.
var announcementColumns = []string{
	"announcement_id", "course_id", "title", "posted_at", "body",
}

// Announcements is the repository for persisted announcements.
type Announcements struct {
	path string
}

// NewAnnouncements returns an announcement repository rooted at the given
// data directory.
func NewAnnouncements(dir string) *Announcements {
	return &Announcements{path: filepath.Join(dir, constants.AnnouncementsFile)}
}

// Path returns the backing file path.
func (r *Announcements) Path() string { return r.path }

// All returns every persisted announcement. A missing store file yields an
// empty slice.
func (r *Announcements) All() ([]planner.Announcement, error) {
	records, err := ReadAll(r.path)
	if err != nil {
		return nil, err
	}
	announcements := make([]planner.Announcement, 0, len(records))
	for _, record := range records {
		announcements = append(announcements, decodeAnnouncement(record))
	}
	return announcements, nil
}

// Range returns announcements posted inside the half-open week range.
// Announcements without a posted stamp are excluded.
func (r *Announcements) Range(week dates.WeekRange) ([]planner.Announcement, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var out []planner.Announcement
	for _, a := range all {
		if week.Contains(a.PostedAt.Date) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Day returns announcements posted on exactly the given date.
func (r *Announcements) Day(day dates.Date) ([]planner.Announcement, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	var out []planner.Announcement
	for _, a := range all {
		if !a.PostedAt.Date.IsZero() && a.PostedAt.Date.Equal(day) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Upsert replaces or inserts a single announcement by ID and rewrites the
// store.
func (r *Announcements) Upsert(announcement planner.Announcement) error {
	return r.UpsertAll([]planner.Announcement{announcement})
}

// UpsertAll replaces or inserts each announcement by ID over the full
// persisted set, then rewrites the store in one atomic pass.
func (r *Announcements) UpsertAll(announcements []planner.Announcement) error {
	mu := pathLock(r.path)
	mu.Lock()
	defer mu.Unlock()

	existing, err := r.All()
	if err != nil {
		return err
	}

	byID := make(map[string]planner.Announcement, len(existing))
	for _, a := range existing {
		byID[a.ID] = a
	}
	for _, a := range announcements {
		if a.ID == "" {
			continue
		}
		byID[a.ID] = a
	}

	return WriteAll(r.path, announcementColumns, encodeAnnouncements(byID))
}

func decodeAnnouncement(record map[string]string) planner.Announcement {
	return planner.Announcement{
		ID:       record["announcement_id"],
		CourseID: record["course_id"],
		Title:    record["title"],
		PostedAt: dates.ParseStamp(record["posted_at"]),
		Body:     record["body"],
	}
}

func encodeAnnouncements(byID map[string]planner.Announcement) []map[string]string {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		a := byID[id]
		records = append(records, map[string]string{
			"announcement_id": a.ID,
			"course_id":       a.CourseID,
			"title":           a.Title,
			"posted_at":       a.PostedAt.String(),
			"body":            a.Body,
		})
	}
	return records
}
