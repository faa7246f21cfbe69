package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielzdev/cougarplanner/internal/config"
	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/view"
)

var (
	listDate   string
	listOffset int
	listDay    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stored assignments and announcements",
}

var listAssignmentsCmd = &cobra.Command{
	Use:     "assignments",
	Aliases: []string{"a"},
	Short:   "List the week's assignments in the configured sort order",
	RunE:    runListAssignments,
}

var listAnnouncementsCmd = &cobra.Command{
	Use:     "announcements",
	Aliases: []string{"n"},
	Short:   "List the week's announcements by posted time",
	RunE:    runListAnnouncements,
}

func init() {
	for _, c := range []*cobra.Command{listAssignmentsCmd, listAnnouncementsCmd} {
		c.Flags().StringVar(&listDate, "date", "", "anchor date inside the week (YYYY-MM-DD, default today)")
		c.Flags().IntVar(&listOffset, "week-offset", 0, "shift the week by N weeks (negative for past)")
		c.Flags().StringVar(&listDay, "day", "", "limit to a single day (YYYY-MM-DD)")
		listCmd.AddCommand(c)
	}
	rootCmd.AddCommand(listCmd)
}

func runListAssignments(cmd *cobra.Command, _ []string) error {
	courses, assignments, _ := stores()
	provider := view.NewAssignments(assignments, view.NewCourseNames(courses))
	mode, order := config.SortMode(), config.DifficultyOrder()

	var (
		views []view.AssignmentView
		err   error
	)
	if listDay != "" {
		day := dates.ParseDate(listDay)
		if day.IsZero() {
			return fmt.Errorf("invalid day %q, want YYYY-MM-DD", listDay)
		}
		views, err = provider.Day(day, mode, order)
	} else {
		week, werr := resolveWeek(listDate, listOffset)
		if werr != nil {
			return werr
		}
		views, err = provider.Week(week, mode, order)
	}
	if err != nil {
		return err
	}

	printAssignments(cmd.OutOrStdout(), views)
	return nil
}

func runListAnnouncements(cmd *cobra.Command, _ []string) error {
	courses, _, announcements := stores()
	provider := view.NewAnnouncements(announcements, view.NewCourseNames(courses))

	var (
		views []view.AnnouncementView
		err   error
	)
	if listDay != "" {
		day := dates.ParseDate(listDay)
		if day.IsZero() {
			return fmt.Errorf("invalid day %q, want YYYY-MM-DD", listDay)
		}
		views, err = provider.Day(day)
	} else {
		week, werr := resolveWeek(listDate, listOffset)
		if werr != nil {
			return werr
		}
		views, err = provider.Week(week)
	}
	if err != nil {
		return err
	}

	printAnnouncements(cmd.OutOrStdout(), views)
	return nil
}

func printAssignments(w io.Writer, views []view.AssignmentView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No assignments")
		return
	}
	for _, v := range views {
		due := v.DueDate.String()
		if due == "" {
			due = "no due date"
		}
		if t := v.DueTime.String(); t != "" {
			due += " " + t
		}
		rating := ""
		if v.HasDifficulty() {
			rating = fmt.Sprintf("  [difficulty %d]", v.Difficulty)
		}
		fmt.Fprintf(w, "%s  %s  %s%s\n", due, v.CourseName, v.Name, rating)
	}
}

func printAnnouncements(w io.Writer, views []view.AnnouncementView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No announcements")
		return
	}
	for _, v := range views {
		posted := v.PostedAt.String()
		if posted == "" {
			posted = "undated"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", posted, v.CourseName, v.Title)
	}
}
