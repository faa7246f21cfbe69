// Package config resolves runtime settings from Viper, which layers CLI
// flags, environment variables, and .env files.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/danielzdev/cougarplanner/pkg/dates"
	"github.com/danielzdev/cougarplanner/pkg/errors"
	"github.com/danielzdev/cougarplanner/pkg/planner"
)

// Setting keys. Environment variables use the same names.
const (
	KeyToken           = "CANVAS_TOKEN"
	KeyBaseURL         = "CANVAS_BASE_URL"
	KeyDataDir         = "PLANNER_DATA_DIR"
	KeyWeekStart       = "PLANNER_WEEK_START"
	KeySortMode        = "PLANNER_SORT_MODE"
	KeyDifficultyOrder = "PLANNER_DIFFICULTY_ORDER"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// Token returns the Canvas API token, or an error when none is configured.
func Token() (string, error) {
	token := GetString(KeyToken)
	if token == "" {
		return "", errors.ErrTokenRequired
	}
	return token, nil
}

// BaseURL returns the configured Canvas base URL, or "" to select the
// client's default instance.
func BaseURL() string {
	return GetString(KeyBaseURL)
}

// DataDir returns the directory holding the CSV store, defaulting to
// ~/.cougarplanner (or ./.cougarplanner when no home is resolvable).
func DataDir() string {
	if dir := GetString(KeyDataDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cougarplanner"
	}
	return filepath.Join(home, ".cougarplanner")
}

// WeekStart returns the configured first day of the week.
func WeekStart() time.Weekday {
	return dates.ParseWeekday(GetString(KeyWeekStart))
}

// SortMode returns the configured assignment sort mode.
func SortMode() planner.SortMode {
	return planner.ParseSortMode(GetString(KeySortMode))
}

// DifficultyOrder returns the configured difficulty sort direction.
func DifficultyOrder() planner.DifficultyOrder {
	return planner.ParseDifficultyOrder(GetString(KeyDifficultyOrder))
}
