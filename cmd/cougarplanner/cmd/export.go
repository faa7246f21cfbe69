package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/danielzdev/cougarplanner/pkg/constants"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the local store as a YAML document",
	Long: `Export writes the full contents of the CSV store (courses,
assignments, and announcements) as a single YAML document for scripting
and inspection.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

// exportDoc is the YAML shape of a full store dump.
type exportDoc struct {
	Courses       []exportCourse       `yaml:"courses"`
	Assignments   []exportAssignment   `yaml:"assignments"`
	Announcements []exportAnnouncement `yaml:"announcements"`
}

type exportCourse struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type exportAssignment struct {
	ID         string `yaml:"id"`
	CourseID   string `yaml:"course_id"`
	Name       string `yaml:"name"`
	DueDate    string `yaml:"due_date,omitempty"`
	DueTime    string `yaml:"due_time,omitempty"`
	Difficulty int    `yaml:"difficulty,omitempty"`
}

type exportAnnouncement struct {
	ID       string `yaml:"id"`
	CourseID string `yaml:"course_id"`
	Title    string `yaml:"title"`
	PostedAt string `yaml:"posted_at,omitempty"`
	Body     string `yaml:"body,omitempty"`
}

func runExport(cmd *cobra.Command, _ []string) error {
	courses, assignments, announcements := stores()

	doc := exportDoc{}

	allCourses, err := courses.All()
	if err != nil {
		return err
	}
	for _, c := range allCourses {
		doc.Courses = append(doc.Courses, exportCourse{ID: c.ID, Name: c.Name})
	}

	allAssignments, err := assignments.All()
	if err != nil {
		return err
	}
	for _, a := range allAssignments {
		doc.Assignments = append(doc.Assignments, exportAssignment{
			ID:         a.ID,
			CourseID:   a.CourseID,
			Name:       a.Name,
			DueDate:    a.DueDate.String(),
			DueTime:    a.DueTime.String(),
			Difficulty: a.Difficulty,
		})
	}

	allAnnouncements, err := announcements.All()
	if err != nil {
		return err
	}
	for _, a := range allAnnouncements {
		doc.Announcements = append(doc.Announcements, exportAnnouncement{
			ID:       a.ID,
			CourseID: a.CourseID,
			Title:    a.Title,
			PostedAt: a.PostedAt.String(),
			Body:     a.Body,
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if exportOutput != "" {
		return os.WriteFile(exportOutput, data, constants.FilePermissions)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
