// Package constants provides shared constants used throughout the planner codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DialTimeout is the timeout for establishing a connection to the Canvas API
	DialTimeout = 3 * time.Second

	// RequestTimeout is the overall timeout for a single Canvas API request
	RequestTimeout = 20 * time.Second

	// SyncTimeout bounds a full sync cycle across all per-course requests
	SyncTimeout = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxConcurrentCourseFetches bounds the per-course assignment fan-out
	MaxConcurrentCourseFetches = 4

	// PageSize is the number of items requested per page from the Canvas API
	PageSize = 100

	// MinDifficulty and MaxDifficulty bound the user-assigned difficulty rating
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Store file names inside the data directory
const (
	CoursesFile       = "courses.csv"
	AssignmentsFile   = "assignments.csv"
	AnnouncementsFile = "announcements.csv"
)
