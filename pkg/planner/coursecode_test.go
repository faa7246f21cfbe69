package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCourseCode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"code with trailing title", "CS 441 - Software Engineering", "CS 441"},
		{"code embedded mid-string", "Spring 2025 CS 441 Lecture", "CS 441"},
		{"no code, hyphen separator", "Intro to Philosophy - Section 2", "Intro to Philosophy"},
		{"no code, colon separator", "Biology: Cells and Systems", "Biology"},
		{"no code, no separator", "Senior Seminar", "Senior Seminar"},
		{"lowercase letters do not match code", "cs 441 - Software Engineering", "cs 441"},
		{"empty", "", ""},
		{"leading separator falls back to raw", "- Orphan Title", "- Orphan Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCourseCode(tt.raw))
		})
	}
}
